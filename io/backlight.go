// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package io

import (
	"fmt"
	"log"
	"os"
	"time"
)

// Backlight period.
const backlightPeriod = time.Millisecond

// Backlight sets the display brightness according to the display mode.
type Backlight struct {
	pwm    PWM
	active int // Duty cycle percentage in interactive mode
	dim    int // Duty cycle percentage in ambient mode
}

// PWM is a PWM output.
type PWM interface {
	Set(time.Duration, int) error
	Close()
}

// NewBacklight creates a Backlight driving pwm, initially at the active level.
func NewBacklight(pwm PWM, active, dim int) (*Backlight, error) {
	b := &Backlight{pwm: pwm, active: active, dim: dim}
	if err := b.pwm.Set(backlightPeriod, active); err != nil {
		return nil, err
	}
	return b, nil
}

// SetAmbient dims the backlight in ambient mode, and restores it otherwise.
func (b *Backlight) SetAmbient(ambient bool) {
	duty := b.active
	if ambient {
		duty = b.dim
	}
	if err := b.pwm.Set(backlightPeriod, duty); err != nil {
		log.Printf("backlight: duty %d%%: %v", duty, err)
	}
}

// Close turns off the backlight.
func (b *Backlight) Close() {
	b.pwm.Close()
}

const (
	pwmBaseDir      = "/sys/class/pwm/pwmchip0/"
	pwmExportFile   = pwmBaseDir + "export"
	pwmUnexportFile = pwmBaseDir + "unexport"
)

// HwPwm is a hardware PWM unit, used to drive the display backlight.
type HwPwm struct {
	unit   int
	base   string
	pFile  *os.File
	dFile  *os.File
	period int64 // Current period in nanoseconds
	duty   int64 // Current duty cycle in nanoseconds
}

// NewHwPWM exports and enables a hardware PWM unit.
func NewHwPWM(unit int) (*HwPwm, error) {
	p := &HwPwm{unit: unit, period: -1, duty: -1}
	p.base = fmt.Sprintf("%spwm%d/", pwmBaseDir, unit)
	err := export(p.base+"period", pwmExportFile, unit)
	if err != nil {
		return nil, err
	}
	if err = verifyFile(p.base + "duty_cycle"); err == nil {
		p.pFile, err = os.OpenFile(p.base+"period", os.O_RDWR, 0600)
	}
	if err == nil {
		p.dFile, err = os.OpenFile(p.base+"duty_cycle", os.O_RDWR, 0600)
	}
	if err == nil {
		err = writeFile(p.base+"enable", "1")
	}
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("pwm%d: %v", unit, err)
	}
	return p, nil
}

// Close disables and unexports the PWM unit.
func (p *HwPwm) Close() {
	writeFile(p.base+"enable", "0")
	if p.pFile != nil {
		p.pFile.Close()
	}
	if p.dFile != nil {
		p.dFile.Close()
	}
	unexport(pwmUnexportFile, p.unit)
}

// Set sets the period and the duty cycle as a percentage of the period.
func (p *HwPwm) Set(period time.Duration, duty int) error {
	if duty < 0 || duty > 100 {
		return fmt.Errorf("%d: invalid duty cycle percentage", duty)
	}
	pNano := period.Nanoseconds()
	if pNano < 15 {
		return fmt.Errorf("%s: invalid period", period)
	}
	dNano := pNano * int64(duty) / 100
	// The duty cycle can never exceed the period, so when the new duty
	// cycle is longer than the current period, the period goes first.
	var err error
	if dNano > p.period {
		err = p.write(p.pFile, pNano, &p.period)
		if err == nil {
			err = p.write(p.dFile, dNano, &p.duty)
		}
	} else {
		err = p.write(p.dFile, dNano, &p.duty)
		if err == nil {
			err = p.write(p.pFile, pNano, &p.period)
		}
	}
	return err
}

// write updates a PWM file if the value has changed.
func (p *HwPwm) write(f *os.File, v int64, current *int64) error {
	if v == *current {
		return nil
	}
	if _, err := f.WriteAt([]byte(fmt.Sprintf("%d", v)), 0); err != nil {
		return err
	}
	*current = v
	return nil
}
