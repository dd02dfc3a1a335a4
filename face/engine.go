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

// Package face computes and draws the ring clock face.
package face

import (
	"errors"
	"fmt"
	"log"
	"time"
)

var errClosed = errors.New("face: engine closed")

const (
	background = "000000"
	ambientFG  = "808080"
)

// Renderer draws the face. Colours are hex strings (RRGGBB or RRGGBBAA).
// Resize is called whenever the ring geometry changes so that derived
// resources (glyph images, fonts) can be rebuilt; all other calls draw
// one frame, which is complete when Flush is called.
type Renderer interface {
	Resize(r *Ring)
	Clear(color string)
	Arc(start, sweep, width float64, color string)
	Marks(marks []Mark)
	Glyph(origin Point, label string)
	// Text draws text centred horizontally on at, with the baseline at at.Y.
	Text(at Point, text, color string)
	// LowBattery draws the low battery icon centred horizontally on top.X,
	// with the top edge at top.Y.
	LowBattery(top Point)
	Flush()
}

// Clock provides the current wall clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real time clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Status is a snapshot of the engine.
type Status struct {
	Visible bool
	Ambient bool
	State   State
	Battery float64
	Frames  int
	Time    time.Time
	Layout  Layout
}

// Engine owns the face: the ring geometry for the current surface, the
// redraw Scheduler, and the inputs read on each redraw.
// Engine methods must all be called from the same goroutine, normally
// through a Looper.
type Engine struct {
	OnAmbient func(ambient bool) // Called when the display mode changes
	conf      *Config
	clock     Clock
	zone      func() *time.Location
	loc       *time.Location
	power     PowerSource
	out       Renderer
	sched     *Scheduler
	ring      *Ring
	marks     []Mark
	visible   bool
	ambient   bool
	closed    bool
	battery   float64
	frames    int
	last      time.Time
	layout    Layout
}

// NewEngine creates an Engine. The Engine is invisible and draws nothing
// until a surface size is set with SurfaceChanged.
// zone is consulted for the time zone when the face becomes visible
// and when the time zone changes.
func NewEngine(conf *Config, timer Timer, clock Clock, zone func() *time.Location, power PowerSource, out Renderer) *Engine {
	e := new(Engine)
	e.conf = conf
	e.clock = clock
	e.zone = zone
	e.loadZone()
	e.power = power
	e.out = out
	e.battery = 1
	e.sched = NewScheduler(timer, conf.Tick, clock.Now, e.Draw)
	return e
}

// SurfaceChanged rebuilds the ring geometry and the renderer resources for
// a new surface size. An invalid size is rejected and the previous
// geometry is kept.
func (e *Engine) SurfaceChanged(width, height int) error {
	if e.closed {
		return errClosed
	}
	r, err := NewRing(width, height, e.conf.Gauge, e.conf.Diameter)
	if err != nil {
		return err
	}
	e.ring = r
	e.marks = r.Marks()
	e.out.Resize(r)
	log.Printf("face: surface %dx%d, glyph diameter %.0f, ring radius %.1f", width, height, r.Diameter, r.Radius)
	e.sched.Invalidate()
	return nil
}

// Ring returns the current ring geometry, or nil if no surface has been set.
func (e *Engine) Ring() *Ring {
	return e.ring
}

// SetVisible is called when the face is shown or hidden.
func (e *Engine) SetVisible(visible bool) {
	if e.closed {
		return
	}
	e.visible = visible
	if visible {
		// The zone may have changed while hidden.
		e.loadZone()
		if e.ambient {
			e.sched.Invalidate()
		}
	}
	e.sched.SetVisible(visible)
}

// SetAmbient is called when entering or leaving ambient (low power) mode.
func (e *Engine) SetAmbient(ambient bool) {
	if e.closed {
		return
	}
	changed := e.ambient != ambient
	e.ambient = ambient
	e.sched.SetLowPower(ambient)
	if changed && e.OnAmbient != nil {
		e.OnAmbient(ambient)
	}
	if ambient && e.visible {
		e.sched.Invalidate()
	}
}

// TimeZoneChanged reloads the time zone and redraws.
func (e *Engine) TimeZoneChanged() {
	if e.closed {
		return
	}
	e.loadZone()
	e.sched.Invalidate()
}

// TimeTick is the once a minute notification delivered in ambient mode.
func (e *Engine) TimeTick() {
	e.sched.Invalidate()
}

// Tap handles a tap on the face.
func (e *Engine) Tap() {
	if e.closed {
		return
	}
	log.Printf("face: tap")
	e.sched.Invalidate()
}

func (e *Engine) loadZone() {
	e.loc = e.zone()
	if e.loc == nil {
		e.loc = time.Local
	}
}

// Close tears down the scheduler. All later notifications are dropped
// and the engine draws nothing afterwards.
func (e *Engine) Close() {
	e.closed = true
	e.sched.Close()
}

// Scheduler returns the redraw scheduler owned by the engine.
func (e *Engine) Scheduler() *Scheduler {
	return e.sched
}

// Status returns a snapshot of the engine state.
func (e *Engine) Status() Status {
	return Status{
		Visible: e.visible,
		Ambient: e.ambient,
		State:   e.sched.State(),
		Battery: e.battery,
		Frames:  e.frames,
		Time:    e.last,
		Layout:  e.layout,
	}
}

// Draw renders one frame at the current time.
func (e *Engine) Draw() {
	e.DrawAt(e.clock.Now().In(e.loc), BatteryFraction(e.power))
}

// DrawAt renders one frame for time t and the battery fraction.
func (e *Engine) DrawAt(t time.Time, battery float64) {
	if e.ring == nil {
		return
	}
	e.last = t
	e.battery = battery
	e.out.Clear(background)
	if !e.ambient {
		e.drawGauge()
		e.out.Marks(e.marks)
		e.drawActive(t)
	} else {
		e.drawAmbient(t)
	}
	e.out.Flush()
	e.frames++
}

func (e *Engine) drawGauge() {
	start, sweep := BatteryArc(e.battery)
	e.out.Arc(start, sweep, float64(e.conf.Gauge), e.conf.Theme)
}

func (e *Engine) drawActive(t time.Time) {
	e.layout = e.ring.Place(TimeOf(t))
	labels := [3]string{
		Seconds: fmt.Sprintf(":%02d", t.Second()),
		Minutes: fmt.Sprintf("%02d", t.Minute()),
		Hours:   fmt.Sprintf("%02d:", t.Hour()),
	}
	// Draw in layout order, so the hour hand is on top.
	for h := Seconds; h <= Hours; h++ {
		e.out.Glyph(e.layout[h].Origin(e.ring), labels[h])
	}
}

func (e *Engine) drawAmbient(t time.Time) {
	c := e.ring.Center
	textSize := e.ring.Diameter * 0.4 * 1.5
	e.out.Text(Point{c.X, c.Y - 5}, t.Format("15:04"), ambientFG)
	e.out.Text(Point{c.X, c.Y + textSize - 8}, t.Format("Mon 2"), ambientFG)
	if e.battery < e.conf.LowBattery {
		e.out.LowBattery(Point{c.X, c.Y + e.ring.Diameter/4 + 5})
	}
}
