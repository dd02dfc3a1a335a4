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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func writeTestFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, v := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(v), 0644); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}

func TestBatteryLevel(t *testing.T) {
	tests := []struct {
		name         string
		files        map[string]string
		level, scale int
	}{
		{"capacity", map[string]string{"capacity": "87\n", "charge_now": "1", "charge_full": "2"}, 87, 100},
		{"charge", map[string]string{"charge_now": "2400000\n", "charge_full": "4800000\n"}, 2400000, 4800000},
		{"energy", map[string]string{"energy_now": "100", "energy_full": "400", "charge_now": "5"}, 100, 400},
	}
	for _, tc := range tests {
		dir := t.TempDir()
		writeTestFiles(t, dir, tc.files)
		level, scale, err := NewBattery(dir).Level()
		if err != nil {
			t.Errorf("%s: %v", tc.name, err)
			continue
		}
		if level != tc.level || scale != tc.scale {
			t.Errorf("%s: got %d/%d, want %d/%d", tc.name, level, scale, tc.level, tc.scale)
		}
	}
}

func TestBatteryErrors(t *testing.T) {
	if _, _, err := NewBattery(t.TempDir()).Level(); err == nil {
		t.Errorf("empty supply: expected error")
	}
	dir := t.TempDir()
	writeTestFiles(t, dir, map[string]string{"capacity": "full"})
	if _, _, err := NewBattery(dir).Level(); err == nil {
		t.Errorf("bad capacity: expected error")
	}
}

// fakeInput replays a sequence of values, then fails.
// A negative value is returned as an interrupted read.
type fakeInput struct {
	values []int
}

var errDone = errors.New("done")

func (f *fakeInput) Get() (int, error) {
	if len(f.values) == 0 {
		return 0, errDone
	}
	v := f.values[0]
	f.values = f.values[1:]
	if v < 0 {
		return 0, fmt.Errorf("poll: %w", unix.EINTR)
	}
	return v, nil
}

func TestButtonTaps(t *testing.T) {
	in := &fakeInput{values: []int{1, 0, 1, 0, 0, 1, 1, 0}}
	taps := 0
	b := NewButton("button", in, func() { taps++ })
	now := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	b.now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	if err := b.Watch(); err != errDone {
		t.Errorf("Watch returned %v, want %v", err, errDone)
	}
	if taps != 3 || b.Taps != 3 {
		t.Errorf("taps %d (counted %d), want 3", taps, b.Taps)
	}
}

func TestButtonDebounce(t *testing.T) {
	in := &fakeInput{values: []int{0, 1, 0, 1, 0}}
	taps := 0
	b := NewButton("button", in, func() { taps++ })
	now := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	b.now = func() time.Time {
		now = now.Add(30 * time.Millisecond)
		return now
	}
	b.Watch()
	// Presses 30ms apart: the second is a bounce, the third is 60ms after the first.
	if taps != 2 {
		t.Errorf("taps %d, want 2", taps)
	}
}

func TestButtonInterrupted(t *testing.T) {
	in := &fakeInput{values: []int{0, -1, 1, -1, -1, 0}}
	taps := 0
	b := NewButton("button", in, func() { taps++ })
	now := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	b.now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	if err := b.Watch(); err != errDone {
		t.Errorf("Watch returned %v, want %v", err, errDone)
	}
	if taps != 2 {
		t.Errorf("taps %d, want 2", taps)
	}
}

type fakePWM struct {
	duties []int
	closed bool
	err    error
}

func (p *fakePWM) Set(period time.Duration, duty int) error {
	if period != backlightPeriod {
		return errors.New("unexpected period")
	}
	p.duties = append(p.duties, duty)
	return p.err
}

func (p *fakePWM) Close() {
	p.closed = true
}

func TestBacklight(t *testing.T) {
	p := new(fakePWM)
	b, err := NewBacklight(p, 80, 15)
	if err != nil {
		t.Fatalf("NewBacklight: %v", err)
	}
	b.SetAmbient(true)
	b.SetAmbient(false)
	p.err = errors.New("write failed")
	b.SetAmbient(true)
	b.Close()
	want := []int{80, 15, 80, 15}
	if len(p.duties) != len(want) {
		t.Fatalf("duties %v, want %v", p.duties, want)
	}
	for i := range want {
		if p.duties[i] != want[i] {
			t.Errorf("duties %v, want %v", p.duties, want)
			break
		}
	}
	if !p.closed {
		t.Errorf("PWM not closed")
	}
	if _, err := NewBacklight(&fakePWM{err: errors.New("no pwm")}, 80, 15); err == nil {
		t.Errorf("NewBacklight: expected error")
	}
}

func readTestFile(t *testing.T, f *os.File) string {
	t.Helper()
	b, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatalf("%s: %v", f.Name(), err)
	}
	return string(b)
}

func TestHwPwmSet(t *testing.T) {
	dir := t.TempDir()
	writeTestFiles(t, dir, map[string]string{"period": "", "duty_cycle": ""})
	pf, err := os.OpenFile(filepath.Join(dir, "period"), os.O_RDWR, 0600)
	if err != nil {
		t.Fatal(err)
	}
	defer pf.Close()
	df, err := os.OpenFile(filepath.Join(dir, "duty_cycle"), os.O_RDWR, 0600)
	if err != nil {
		t.Fatal(err)
	}
	defer df.Close()
	p := &HwPwm{pFile: pf, dFile: df, period: -1, duty: -1}
	if err := p.Set(time.Millisecond, 50); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := readTestFile(t, pf); got != "1000000" {
		t.Errorf("period %q, want 1000000", got)
	}
	if got := readTestFile(t, df); got != "500000" {
		t.Errorf("duty %q, want 500000", got)
	}
	if err := p.Set(time.Millisecond, 101); err == nil {
		t.Errorf("duty 101: expected error")
	}
	if err := p.Set(time.Nanosecond, 50); err == nil {
		t.Errorf("period 1ns: expected error")
	}
	if p.period != 1000000 || p.duty != 500000 {
		t.Errorf("rejected Set changed state: period %d, duty %d", p.period, p.duty)
	}
}
