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

// PowerSource reports the current battery level as a value out of scale.
type PowerSource interface {
	Level() (level, scale int, err error)
}

// BatteryFraction reads the power source and returns the charge as a
// fraction between 0 and 1. Any failure to read the level reports
// a full battery, so that a transient failure never shows as low battery.
func BatteryFraction(p PowerSource) float64 {
	if p == nil {
		return 1
	}
	level, scale, err := p.Level()
	if err != nil || scale <= 0 || level < 0 {
		return 1
	}
	return clampFraction(float64(level) / float64(scale))
}

// BatteryArc returns the start angle and sweep in degrees of the
// battery gauge arc for this fraction of charge.
func BatteryArc(fraction float64) (start, sweep float64) {
	start = RotationOffset * RadiansToDegrees
	sweep = clampFraction(fraction) * (CircleRadians * RadiansToDegrees)
	return start, sweep
}

func clampFraction(f float64) float64 {
	if math.IsNaN(f) {
		return 1
	}
	return math.Min(1, math.Max(0, f))
}
