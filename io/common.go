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

// Package io provides access to the sysfs devices used by the face:
// the power supply, a tap button on a GPIO and a PWM backlight.
package io

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// Time allowed for udev to make a newly exported device file accessible.
var settleTimeout = 2 * time.Second

// WaitForAccess makes export wait until the exported files are writable.
// When not running as root, the group permissions of the sysfs device
// files are set by udev some time after the export.
var WaitForAccess = false

func init() {
	if u, err := user.Current(); err == nil && u.Uid != "0" {
		WaitForAccess = true
	}
}

// unexport releases sysfs device unit by writing it to the unexport file.
func unexport(unexportFile string, unit int) error {
	return writeFile(unexportFile, strconv.Itoa(unit))
}

// export makes device file f available by writing unit to exportFile.
// Nothing is written if f is already accessible.
func export(f, exportFile string, unit int) error {
	if unix.Access(f, unix.W_OK|unix.R_OK) == nil {
		return nil
	}
	if err := writeFile(exportFile, strconv.Itoa(unit)); err != nil {
		return err
	}
	if WaitForAccess {
		return verifyFile(f)
	}
	return nil
}

// writeFile writes s to an existing sysfs attribute file.
func writeFile(fname, s string) error {
	f, err := os.OpenFile(fname, os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	_, err = f.WriteString(s)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// verifyFile polls until f is writable or settleTimeout has passed.
func verifyFile(f string) error {
	deadline := time.Now().Add(settleTimeout)
	for unix.Access(f, unix.W_OK) != nil {
		if time.Now().After(deadline) {
			return fmt.Errorf("%s: not writable", f)
		}
		time.Sleep(time.Millisecond)
	}
	return nil
}

// readInt reads a file holding a single decimal value.
func readInt(fname string) (int, error) {
	b, err := os.ReadFile(fname)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, fmt.Errorf("%s: %v", fname, err)
	}
	return v, nil
}
