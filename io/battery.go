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
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Battery reads the charge level of a sysfs power supply
// e.g /sys/class/power_supply/BAT0
type Battery struct {
	dir string
}

// Pairs of files giving the current and full charge, in order of preference.
var chargeFiles = [][2]string{
	{"charge_now", "charge_full"},
	{"energy_now", "energy_full"},
}

// NewBattery creates a Battery for the power supply directory.
func NewBattery(dir string) *Battery {
	return &Battery{dir: dir}
}

// Level returns the current charge as level out of scale.
// The capacity file is a percentage; if it is not present the raw
// charge or energy counters are used.
func (b *Battery) Level() (int, int, error) {
	f := filepath.Join(b.dir, "capacity")
	if unix.Access(f, unix.R_OK) == nil {
		v, err := readInt(f)
		if err != nil {
			return 0, 0, err
		}
		return v, 100, nil
	}
	for _, cf := range chargeFiles {
		now := filepath.Join(b.dir, cf[0])
		full := filepath.Join(b.dir, cf[1])
		if unix.Access(now, unix.R_OK) != nil || unix.Access(full, unix.R_OK) != nil {
			continue
		}
		level, err := readInt(now)
		if err != nil {
			return 0, 0, err
		}
		scale, err := readInt(full)
		if err != nil {
			return 0, 0, err
		}
		return level, scale, nil
	}
	return 0, 0, fmt.Errorf("%s: no readable charge level", b.dir)
}
