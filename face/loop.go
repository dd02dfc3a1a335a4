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

// Event loop and timer.

package face

import (
	"sync"
	"time"
)

const loopQueueSize = 20 // Size of queue for events

// Looper runs posted functions one at a time on a single goroutine.
// All engine state is only touched from functions run by the Looper,
// so notifications are fully applied before the next redraw.
type Looper struct {
	mu     sync.Mutex
	closed bool
	c      chan func()
	done   chan bool
}

// NewLooper creates a Looper. Run must be called to process events.
func NewLooper() *Looper {
	l := new(Looper)
	l.c = make(chan func(), loopQueueSize)
	l.done = make(chan bool)
	return l
}

// Post queues f to be run on the loop. It returns false if the loop
// has been closed, in which case f is dropped.
func (l *Looper) Post(f func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	l.c <- f
	return true
}

// Call runs f on the loop and waits for it to complete.
func (l *Looper) Call(f func()) bool {
	c := make(chan bool)
	ok := l.Post(func() {
		f()
		close(c)
	})
	if ok {
		<-c
	}
	return ok
}

// Run processes events until the loop is closed.
func (l *Looper) Run() {
	for f := range l.c {
		f()
	}
	close(l.done)
}

// Close stops accepting events. Events already queued are still run.
// Close waits for Run to drain the queue, so it must not be called
// from the loop itself.
func (l *Looper) Close() {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.c)
	}
	l.mu.Unlock()
	<-l.done
}

// LoopTimer is a Timer that delivers wake ups through a Looper.
type LoopTimer struct {
	loop   *Looper
	mu     sync.Mutex
	next   Token
	timers map[Token]*time.Timer
}

// NewLoopTimer creates a LoopTimer delivering wake ups on loop.
func NewLoopTimer(loop *Looper) *LoopTimer {
	return &LoopTimer{loop: loop, timers: make(map[Token]*time.Timer)}
}

// ScheduleOnce arranges for wake to be called on the loop after delay.
func (t *LoopTimer) ScheduleOnce(delay time.Duration, wake func(Token)) Token {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	tok := t.next
	t.timers[tok] = time.AfterFunc(delay, func() {
		t.mu.Lock()
		_, ok := t.timers[tok]
		delete(t.timers, tok)
		t.mu.Unlock()
		if ok {
			t.loop.Post(func() { wake(tok) })
		}
	})
	return tok
}

// Cancel stops the wake up for tok. A wake up already queued on the
// loop is still delivered, and the receiver must ignore stale tokens.
func (t *LoopTimer) Cancel(tok Token) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tm, ok := t.timers[tok]; ok {
		tm.Stop()
		delete(t.timers, tok)
	}
}

// Outstanding returns the number of wake ups that have not yet expired.
func (t *LoopTimer) Outstanding() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.timers)
}
