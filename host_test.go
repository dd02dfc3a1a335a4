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


package main

import (
	"testing"
	"time"

	"github.com/aamcrae/timeoclock/face"
	"github.com/aamcrae/timeoclock/render"
)

type fullPower struct{}

func (fullPower) Level() (int, int, error) {
	return 100, 100, nil
}

func TestHost(t *testing.T) {
	conf := face.DefaultConfig()
	conf.Tick = 10 * time.Millisecond
	canvas := render.NewCanvas(conf.Theme)
	h, err := newHost(conf, canvas, fullPower{})
	if err != nil {
		t.Fatalf("newHost: %v", err)
	}
	done := make(chan bool)
	go func() {
		h.loop.Run()
		close(done)
	}()
	h.SetVisible(true)
	deadline := time.Now().Add(5 * time.Second)
	for h.Status().Frames < 5 {
		if time.Now().After(deadline) {
			t.Fatalf("face not redrawn: %+v", h.Status())
		}
		time.Sleep(5 * time.Millisecond)
	}
	s := h.Status()
	if !s.Visible || s.State != face.Armed || s.Battery != 1 {
		t.Errorf("status %+v", s)
	}
	h.SetAmbient(true)
	h.SetZone(time.FixedZone("test", 60*60))
	if s := h.Status(); !s.Ambient || s.State != face.Idle || s.Time.Location().String() != "test" {
		t.Errorf("ambient status %+v", s)
	}
	if canvas.Frame() == nil {
		t.Errorf("no frame drawn")
	}
	h.Close()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("loop not stopped")
	}
	// Notifications after Close are dropped.
	h.Tap()
	h.SetVisible(true)
}
