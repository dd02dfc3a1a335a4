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
	"math"
	"testing"
)

func TestMarks(t *testing.T) {
	r := testRing(t, 320, 320, 0)
	marks := r.Marks()
	if len(marks) != 12 {
		t.Fatalf("got %d marks, want 12", len(marks))
	}
	for i, m := range marks {
		want := MarkMinor
		switch i {
		case 0:
			want = MarkTop
		case 3, 6, 9:
			want = MarkMajor
		}
		if m.Kind != want {
			t.Errorf("mark %d: kind %d, want %d", i, m.Kind, want)
		}
		// Outer end just inside the gauge, a quarter glyph long.
		if d := math.Hypot(m.Outer.X-r.Center.X, m.Outer.Y-r.Center.Y); math.Abs(d-149) > epsilon {
			t.Errorf("mark %d: outer radius %v, want 149", i, d)
		}
		if d := math.Hypot(m.Inner.X-r.Center.X, m.Inner.Y-r.Center.Y); math.Abs(d-133) > epsilon {
			t.Errorf("mark %d: inner radius %v, want 133", i, d)
		}
	}
	if math.Abs(marks[0].Outer.X-160) > epsilon || math.Abs(marks[0].Outer.Y-11) > epsilon {
		t.Errorf("top mark at %v, want {160 11}", marks[0].Outer)
	}
}
