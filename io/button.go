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

// Tap button driver.

package io

import (
	"errors"
	"log"
	"time"

	"golang.org/x/sys/unix"
)

// Input returns the value of an input when it changes.
type Input interface {
	Get() (int, error)
}

// Button turns presses of an input into tap notifications.
// A press is a 1->0 transition (the button pulls the input low);
// presses closer together than the debounce interval are discarded.
type Button struct {
	Name     string
	Taps     int
	in       Input
	tap      func()
	debounce time.Duration
	now      func() time.Time
	last     time.Time
}

const debounce = 50 * time.Millisecond

// NewButton creates a Button calling tap for every press of in.
// Watch must be called to start listening.
func NewButton(name string, in Input, tap func()) *Button {
	b := new(Button)
	b.Name = name
	b.in = in
	b.tap = tap
	b.debounce = debounce
	b.now = time.Now
	return b
}

// Watch waits for button presses until the input fails.
// Interrupted reads are retried.
func (b *Button) Watch() error {
	prev := 1
	for {
		v, err := b.in.Get()
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			log.Printf("%s: input: %v", b.Name, err)
			return err
		}
		b.edge(prev, v)
		prev = v
	}
}

// edge processes one transition of the input.
func (b *Button) edge(prev, v int) {
	if prev != 1 || v != 0 {
		return
	}
	n := b.now()
	if !b.last.IsZero() && n.Sub(b.last) < b.debounce {
		return
	}
	b.last = n
	b.Taps++
	b.tap()
}
