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
	"os"

	"golang.org/x/sys/unix"
)

// Edge
const (
	NONE    = iota // Default
	RISING  = iota
	FALLING = iota
	BOTH    = iota
)

var edgeNames = []string{"none", "rising", "falling", "both"}

const (
	gpioBaseDir      = "/sys/class/gpio/"
	gpioExportFile   = gpioBaseDir + "export"
	gpioUnexportFile = gpioBaseDir + "unexport"
)

// Gpio is a GPIO pin used as an edge triggered input.
type Gpio struct {
	number int
	value  *os.File
	buf    []byte
	edge   int
	pollfd []unix.PollFd
}

// Pin exports a GPIO pin and opens it as an input.
func Pin(gpio int) (*Gpio, error) {
	g := new(Gpio)
	g.number = gpio
	g.buf = make([]byte, 1)
	base := fmt.Sprintf("%sgpio%d", gpioBaseDir, gpio)
	err := export(base+"/value", gpioExportFile, gpio)
	if err != nil {
		return nil, err
	}
	err = writeFile(base+"/direction", "in")
	if err != nil {
		unexport(gpioUnexportFile, gpio)
		return nil, err
	}
	g.value, err = os.OpenFile(base+"/value", os.O_RDWR, 0600)
	if err != nil {
		unexport(gpioUnexportFile, gpio)
		return nil, err
	}
	g.pollfd = []unix.PollFd{{Fd: int32(g.value.Fd()), Events: unix.POLLPRI | unix.POLLERR}}
	return g, nil
}

// Edge sets the edge detection on the GPIO pin.
func (g *Gpio) Edge(e int) error {
	if e < NONE || e > BOTH {
		return fmt.Errorf("gpio%d: unknown edge %d", g.number, e)
	}
	err := writeFile(fmt.Sprintf("%sgpio%d/edge", gpioBaseDir, g.number), edgeNames[e])
	if err == nil {
		g.edge = e
	}
	return err
}

// Get returns the value of the GPIO pin. If edge detection is
// enabled, Get waits for an edge before reading the value.
func (g *Gpio) Get() (int, error) {
	if g.edge != NONE {
		for {
			g.pollfd[0].Revents = 0
			_, err := unix.Poll(g.pollfd, -1)
			if err == nil {
				break
			}
			if err != unix.EINTR {
				return 0, err
			}
		}
	}
	_, err := g.value.ReadAt(g.buf, 0)
	if err != nil {
		return 0, err
	}
	switch g.buf[0] {
	case '0':
		return 0, nil
	case '1':
		return 1, nil
	}
	return 0, fmt.Errorf("gpio%d: unknown value %s", g.number, g.buf)
}

// Close the GPIO pin and unexport it.
func (g *Gpio) Close() {
	g.value.Close()
	unexport(gpioUnexportFile, g.number)
}
