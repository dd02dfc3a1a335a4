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
)

// MarkKind selects how a dial mark is drawn.
type MarkKind int

const (
	MarkTop   MarkKind = iota // Chevron at 12
	MarkMajor                 // Chevrons at 3, 6 and 9
	MarkMinor                 // Plain line
)

const markCount = 12

// Mark is a decorative hour mark on the dial, running from Outer
// towards the centre to Inner.
type Mark struct {
	Kind  MarkKind
	Angle float64
	Outer Point
	Inner Point
}

// Marks returns the 12 hour marks for the ring. The marks sit just
// inside the battery gauge and are a quarter of a glyph long.
func (r *Ring) Marks() []Mark {
	outer := r.Center.Y - r.Gauge - 1
	inner := outer - r.Diameter/4
	marks := make([]Mark, markCount)
	for i := range marks {
		theta := float64(i)*CircleRadians/markCount + RotationOffset
		kind := MarkMinor
		if i == 0 {
			kind = MarkTop
		} else if i%3 == 0 {
			kind = MarkMajor
		}
		cos, sin := math.Cos(theta), math.Sin(theta)
		marks[i] = Mark{
			Kind:  kind,
			Angle: theta,
			Outer: Point{r.Center.X + outer*cos, r.Center.Y + outer*sin},
			Inner: Point{r.Center.X + inner*cos, r.Center.Y + inner*sin},
		}
	}
	return marks
}
