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

// Hand layout

package face

import (
	"time"
)

// Hand indexes the hands in a Layout.
type Hand int

const (
	Seconds Hand = iota
	Minutes
	Hours
)

func (h Hand) String() string {
	switch h {
	case Seconds:
		return "seconds"
	case Minutes:
		return "minutes"
	case Hours:
		return "hours"
	}
	return "unknown"
}

// ClockTime holds the wall clock fields used to position the hands.
// Hour is on a 12 hour dial (0-11), Fraction is the sub-second
// part of the time (0 <= Fraction < 1).
type ClockTime struct {
	Hour     int
	Minute   int
	Second   int
	Fraction float64
}

// TimeOf extracts the clock fields from t, in t's location.
func TimeOf(t time.Time) ClockTime {
	hour, minute, sec := t.Clock()
	return ClockTime{
		Hour:     hour % 12,
		Minute:   minute,
		Second:   sec,
		Fraction: float64(t.Nanosecond()) / float64(time.Second),
	}
}

// Placement is the computed position of one hand.
type Placement struct {
	Angle        float64 // Radians, including the rotation offset
	Displacement float64 // Inward movement to avoid other hands
	Center       Point   // Centre of the glyph
}

// Layout holds the placement of all hands, indexed by Hand.
type Layout [3]Placement

// SecondsAngle returns the angle of the second hand.
func SecondsAngle(t ClockTime) float64 {
	return (float64(t.Second)+t.Fraction)/60*CircleRadians + RotationOffset
}

// MinutesAngle returns the angle of the minute hand.
// The minute hand moves once per second.
func MinutesAngle(t ClockTime) float64 {
	return float64(t.Minute*60+t.Second)/(60*60)*CircleRadians + RotationOffset
}

// HoursAngle returns the angle of the hour hand.
func HoursAngle(t ClockTime) float64 {
	return float64(t.Hour*60*60+t.Minute*60+t.Second)/(12*60*60)*CircleRadians + RotationOffset
}

// Place computes where each hand glyph is drawn.
// The second hand is never moved. The minute hand moves inwards out of the
// way of the second hand, and the hour hand moves inwards by its overlap
// with both of the other hands combined.
func (r *Ring) Place(t ClockTime) Layout {
	var l Layout
	sec := SecondsAngle(t)
	l[Seconds] = Placement{Angle: sec, Center: r.PointOnRing(sec, 0)}

	min := MinutesAngle(t)
	minOffset := r.Overlap(sec, min)
	l[Minutes] = Placement{Angle: min, Displacement: minOffset, Center: r.PointOnRing(min, minOffset)}

	hour := HoursAngle(t)
	hourOffset := r.Overlap(hour, min) + r.Overlap(hour, sec)
	l[Hours] = Placement{Angle: hour, Displacement: hourOffset, Center: r.PointOnRing(hour, hourOffset)}
	return l
}

// Origin returns the top left corner of the glyph for this placement.
func (p Placement) Origin(r *Ring) Point {
	return Point{p.Center.X - r.GlyphRadius, p.Center.Y - r.GlyphRadius}
}
