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

// Redraw scheduling

package face

import (
	"time"
)

// DefaultTick is the redraw interval in interactive mode.
const DefaultTick = 50 * time.Millisecond

// Token identifies a scheduled wake up.
type Token uint64

// Timer schedules single wake ups. wake is called with the token
// returned by ScheduleOnce when the delay has expired, unless the token
// has been cancelled.
type Timer interface {
	ScheduleOnce(delay time.Duration, wake func(Token)) Token
	Cancel(Token)
}

// State is the state of the Scheduler.
type State int

const (
	Idle State = iota
	Armed
)

func (s State) String() string {
	if s == Armed {
		return "armed"
	}
	return "idle"
}

// Scheduler decides when the face is redrawn.
// While the face is visible and not in low power mode, the scheduler is
// armed and requests a redraw on every tick boundary. Otherwise it is idle,
// and redraws only happen through Invalidate.
// There is never more than one wake up outstanding.
// The Scheduler is not safe for concurrent use; all calls are expected
// to come from the event loop that owns it.
type Scheduler struct {
	timer    Timer
	tick     time.Duration
	now      func() time.Time
	redraw   func()
	visible  bool
	lowPower bool
	closed   bool
	pending  bool
	token    Token
	Wakes    int // Number of timer wake ups handled
}

// NewScheduler creates an idle Scheduler. redraw is called for every
// redraw request, and now provides the wall clock used to align the ticks.
func NewScheduler(timer Timer, tick time.Duration, now func() time.Time, redraw func()) *Scheduler {
	if tick <= 0 {
		tick = DefaultTick
	}
	s := new(Scheduler)
	s.timer = timer
	s.tick = tick
	s.now = now
	s.redraw = redraw
	return s
}

// State returns the current state.
func (s *Scheduler) State() State {
	if s.shouldRun() {
		return Armed
	}
	return Idle
}

// Pending returns the outstanding wake up token, if there is one.
func (s *Scheduler) Pending() (Token, bool) {
	return s.token, s.pending
}

// Tick returns the tick period.
func (s *Scheduler) Tick() time.Duration {
	return s.tick
}

// SetVisible records a change of visibility of the face.
func (s *Scheduler) SetVisible(visible bool) {
	s.visible = visible
	s.update()
}

// SetLowPower records entering or leaving low power (ambient) mode.
func (s *Scheduler) SetLowPower(lowPower bool) {
	s.lowPower = lowPower
	s.update()
}

// Invalidate requests a single redraw. It does not arm the scheduler.
func (s *Scheduler) Invalidate() {
	if !s.closed {
		s.redraw()
	}
}

// Close cancels any outstanding wake up. No further redraws
// are requested after Close.
func (s *Scheduler) Close() {
	s.cancel()
	s.closed = true
}

// NextDelay returns the delay from now until the next tick boundary.
// Boundaries are aligned to the wall clock rather than to now, so that
// redraws stay in phase with the seconds.
func NextDelay(now time.Time, tick time.Duration) time.Duration {
	ms := tick.Milliseconds()
	if ms <= 0 {
		return tick
	}
	return time.Duration(ms-now.UnixNano()/int64(time.Millisecond)%ms) * time.Millisecond
}

func (s *Scheduler) shouldRun() bool {
	return s.visible && !s.lowPower && !s.closed
}

// update cancels any wake up, and if the scheduler should be running,
// schedules an immediate one to restart the cadence.
func (s *Scheduler) update() {
	s.cancel()
	if s.shouldRun() {
		s.schedule(0)
	}
}

func (s *Scheduler) schedule(delay time.Duration) {
	s.token = s.timer.ScheduleOnce(delay, s.wake)
	s.pending = true
}

func (s *Scheduler) cancel() {
	if s.pending {
		s.timer.Cancel(s.token)
		s.pending = false
	}
}

// wake handles a timer expiry. Expiries of tokens that have
// been replaced or cancelled are ignored.
func (s *Scheduler) wake(t Token) {
	if !s.pending || t != s.token {
		return
	}
	s.pending = false
	s.Wakes++
	s.redraw()
	if s.shouldRun() {
		s.schedule(NextDelay(s.now(), s.tick))
	}
}
