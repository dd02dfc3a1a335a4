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

// Host side of the face: delivers notifications to the engine loop.

package main

import (
	"log"
	"sync"
	"time"

	"github.com/aamcrae/timeoclock/face"
	"github.com/aamcrae/timeoclock/io"
)

// host owns the engine and its event loop. All notifications are
// posted to the loop, so they are applied one at a time between redraws.
type host struct {
	loop      *face.Looper
	engine    *face.Engine
	mu        sync.Mutex // Guards zone
	zone      *time.Location
	pin       *io.Gpio
	backlight *io.Backlight
	closeOnce sync.Once
}

func newHost(conf *face.Config, out face.Renderer, power face.PowerSource) (*host, error) {
	h := &host{zone: time.Local}
	h.loop = face.NewLooper()
	h.engine = face.NewEngine(conf, face.NewLoopTimer(h.loop), face.SystemClock{}, h.location, power, out)
	if err := h.engine.SurfaceChanged(conf.Width, conf.Height); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *host) location() *time.Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.zone
}

func (h *host) SetVisible(v bool) {
	h.loop.Post(func() { h.engine.SetVisible(v) })
}

func (h *host) SetAmbient(a bool) {
	h.loop.Post(func() { h.engine.SetAmbient(a) })
}

func (h *host) Tap() {
	h.loop.Post(h.engine.Tap)
}

func (h *host) SetZone(loc *time.Location) {
	h.mu.Lock()
	h.zone = loc
	h.mu.Unlock()
	h.loop.Post(h.engine.TimeZoneChanged)
}

func (h *host) Status() face.Status {
	var s face.Status
	h.loop.Call(func() { s = h.engine.Status() })
	return s
}

// watchButton starts delivering taps from a button on a GPIO.
func (h *host) watchButton(gpio int) error {
	pin, err := io.Pin(gpio)
	if err != nil {
		return err
	}
	if err := pin.Edge(io.BOTH); err != nil {
		pin.Close()
		return err
	}
	h.pin = pin
	b := io.NewButton("button", pin, h.Tap)
	go b.Watch()
	return nil
}

// openBacklight dims the backlight in ambient mode.
func (h *host) openBacklight(conf *face.Config) error {
	pwm, err := io.NewHwPWM(conf.Backlight)
	if err != nil {
		return err
	}
	bl, err := io.NewBacklight(pwm, conf.Active, conf.Dim)
	if err != nil {
		pwm.Close()
		return err
	}
	h.backlight = bl
	h.loop.Post(func() { h.engine.OnAmbient = bl.SetAmbient })
	return nil
}

// timeTicks delivers the once a minute time tick, aligned to the minute.
func (h *host) timeTicks() {
	n := time.Now()
	time.Sleep(n.Truncate(time.Minute).Add(time.Minute).Sub(n))
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		if !h.loop.Post(h.engine.TimeTick) {
			return
		}
		<-ticker.C
	}
}

// Close tears down the engine before the loop, so that the
// outstanding wake up is cancelled and no more redraws happen.
func (h *host) Close() {
	h.closeOnce.Do(func() {
		h.loop.Post(h.engine.Close)
		h.loop.Close()
		if h.backlight != nil {
			h.backlight.Close()
		}
		if h.pin != nil {
			h.pin.Close()
		}
		log.Printf("face: closed")
	})
}
