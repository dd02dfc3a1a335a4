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

package face

import (
	"testing"
	"time"
)

// fakeTimer records scheduled wake ups, which the test fires by hand.
type fakeTimer struct {
	next      Token
	pending   map[Token]func(Token)
	delays    []time.Duration
	cancelled []Token
}

func newFakeTimer() *fakeTimer {
	return &fakeTimer{pending: make(map[Token]func(Token))}
}

func (f *fakeTimer) ScheduleOnce(d time.Duration, wake func(Token)) Token {
	f.next++
	f.pending[f.next] = wake
	f.delays = append(f.delays, d)
	return f.next
}

func (f *fakeTimer) Cancel(t Token) {
	delete(f.pending, t)
	f.cancelled = append(f.cancelled, t)
}

// fire expires all the wake ups pending when called.
func (f *fakeTimer) fire() {
	p := f.pending
	f.pending = make(map[Token]func(Token))
	for t, w := range p {
		w(t)
	}
}

func (f *fakeTimer) lastDelay() time.Duration {
	return f.delays[len(f.delays)-1]
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTestScheduler() (*Scheduler, *fakeTimer, *fakeClock, *int) {
	ft := newFakeTimer()
	clk := &fakeClock{now: time.Date(2021, 6, 1, 10, 8, 30, 234*int(time.Millisecond), time.UTC)}
	redraws := new(int)
	s := NewScheduler(ft, DefaultTick, clk.Now, func() { *redraws++ })
	return s, ft, clk, redraws
}

func TestNextDelay(t *testing.T) {
	base := time.Date(2021, 6, 1, 10, 8, 30, 0, time.UTC)
	tests := []struct {
		offset time.Duration
		tick   time.Duration
		want   time.Duration
	}{
		{234 * time.Millisecond, 50 * time.Millisecond, 16 * time.Millisecond},
		{250 * time.Millisecond, 50 * time.Millisecond, 50 * time.Millisecond},
		{999 * time.Millisecond, 50 * time.Millisecond, 1 * time.Millisecond},
		{234*time.Millisecond + 700*time.Microsecond, 50 * time.Millisecond, 16 * time.Millisecond},
		{400 * time.Millisecond, time.Second, 600 * time.Millisecond},
	}
	for _, tc := range tests {
		if got := NextDelay(base.Add(tc.offset), tc.tick); got != tc.want {
			t.Errorf("NextDelay(+%s, %s): got %s, want %s", tc.offset, tc.tick, got, tc.want)
		}
	}
}

func TestSchedulerIdleByDefault(t *testing.T) {
	s, ft, _, redraws := newTestScheduler()
	if s.State() != Idle {
		t.Errorf("state %s, want idle", s.State())
	}
	s.SetLowPower(false)
	if s.State() != Idle || len(ft.pending) != 0 || *redraws != 0 {
		t.Errorf("invisible scheduler armed: state %s, pending %d, redraws %d", s.State(), len(ft.pending), *redraws)
	}
}

func TestSchedulerArmAndIdle(t *testing.T) {
	s, ft, clk, redraws := newTestScheduler()
	s.SetVisible(true)
	if s.State() != Armed {
		t.Fatalf("state %s, want armed", s.State())
	}
	if len(ft.pending) != 1 || ft.lastDelay() != 0 {
		t.Fatalf("arming: pending %d, delay %s, want 1 immediate", len(ft.pending), ft.lastDelay())
	}
	// Immediate redraw, then the tick cadence.
	ft.fire()
	if *redraws != 1 {
		t.Errorf("redraws %d, want 1", *redraws)
	}
	if len(ft.pending) != 1 || ft.lastDelay() > DefaultTick || ft.lastDelay() <= 0 {
		t.Fatalf("after wake: pending %d, delay %s", len(ft.pending), ft.lastDelay())
	}
	for i := 0; i < 5; i++ {
		clk.now = clk.now.Add(ft.lastDelay())
		ft.fire()
		if ft.lastDelay() != DefaultTick {
			t.Errorf("aligned wake %d: delay %s, want %s", i, ft.lastDelay(), DefaultTick)
		}
	}
	if *redraws != 6 || s.Wakes != 6 {
		t.Errorf("redraws %d, wakes %d, want 6", *redraws, s.Wakes)
	}
	tok, ok := s.Pending()
	if !ok {
		t.Fatalf("no wake up pending while armed")
	}
	s.SetLowPower(true)
	if s.State() != Idle {
		t.Errorf("state %s, want idle", s.State())
	}
	if len(ft.pending) != 0 || ft.cancelled[len(ft.cancelled)-1] != tok {
		t.Errorf("low power: pending %d, cancelled %v, want %d cancelled", len(ft.pending), ft.cancelled, tok)
	}
	ft.fire()
	if *redraws != 6 {
		t.Errorf("redraws %d after idle, want 6", *redraws)
	}
	// Leaving low power re-arms with an immediate redraw.
	s.SetLowPower(false)
	if s.State() != Armed || len(ft.pending) != 1 || ft.lastDelay() != 0 {
		t.Errorf("re-arm: state %s, pending %d, delay %s", s.State(), len(ft.pending), ft.lastDelay())
	}
	s.SetVisible(false)
	if s.State() != Idle || len(ft.pending) != 0 {
		t.Errorf("hidden: state %s, pending %d", s.State(), len(ft.pending))
	}
}

func TestSchedulerRearmIdempotent(t *testing.T) {
	s, ft, _, redraws := newTestScheduler()
	s.SetVisible(true)
	s.SetVisible(true)
	s.SetLowPower(false)
	if len(ft.pending) != 1 {
		t.Fatalf("pending %d, want 1", len(ft.pending))
	}
	if len(ft.cancelled) != 2 {
		t.Errorf("cancelled %v, want 2 replaced tokens", ft.cancelled)
	}
	ft.fire()
	if *redraws != 1 {
		t.Errorf("redraws %d, want 1", *redraws)
	}
}

func TestSchedulerStaleWake(t *testing.T) {
	s, ft, _, redraws := newTestScheduler()
	s.SetVisible(true)
	// Keep the first wake function, as a timer that races with Cancel would.
	var stale func(Token)
	var staleTok Token
	for tok, w := range ft.pending {
		stale, staleTok = w, tok
	}
	s.SetLowPower(true)
	stale(staleTok)
	if *redraws != 0 || s.Wakes != 0 {
		t.Errorf("stale wake redrew: redraws %d, wakes %d", *redraws, s.Wakes)
	}
	s.SetLowPower(false)
	stale(staleTok)
	if *redraws != 0 || len(ft.pending) != 1 {
		t.Errorf("stale wake after re-arm: redraws %d, pending %d", *redraws, len(ft.pending))
	}
}

func TestSchedulerInvalidate(t *testing.T) {
	s, ft, _, redraws := newTestScheduler()
	s.SetVisible(true)
	s.SetLowPower(true)
	s.Invalidate()
	if *redraws != 1 {
		t.Errorf("redraws %d, want 1", *redraws)
	}
	if s.State() != Idle || len(ft.pending) != 0 {
		t.Errorf("Invalidate armed the scheduler: state %s, pending %d", s.State(), len(ft.pending))
	}
}

func TestSchedulerClose(t *testing.T) {
	s, ft, _, redraws := newTestScheduler()
	s.SetVisible(true)
	s.Close()
	if len(ft.pending) != 0 {
		t.Errorf("pending %d after Close", len(ft.pending))
	}
	s.SetVisible(true)
	s.SetLowPower(false)
	s.Invalidate()
	ft.fire()
	if *redraws != 0 || s.State() != Idle || len(ft.pending) != 0 {
		t.Errorf("closed scheduler: redraws %d, state %s, pending %d", *redraws, s.State(), len(ft.pending))
	}
}

func TestNewSchedulerDefaultTick(t *testing.T) {
	s := NewScheduler(newFakeTimer(), 0, time.Now, func() {})
	if s.Tick() != DefaultTick {
		t.Errorf("tick %s, want %s", s.Tick(), DefaultTick)
	}
}
