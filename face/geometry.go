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

// Ring geometry for the hand glyphs.

package face

import (
	"fmt"
	"math"
)

const (
	CircleRadians    = 2 * math.Pi
	RadiansToDegrees = 180 / math.Pi
	// RotationOffset rotates the geometric zero so that angle 0
	// of the dial is at the top of the face.
	RotationOffset = -0.25 * CircleRadians
)

// Limits of the derived glyph diameter.
const (
	minDiameter = 48
	maxDiameter = 96
)

// Point is a location on the drawing surface.
type Point struct {
	X, Y float64
}

// Ring holds the geometry of the circle that the hand glyphs travel on.
// A Ring is derived from the surface size and is not modified afterwards;
// a new Ring is built whenever the surface changes.
type Ring struct {
	Width, Height int
	Center        Point
	Gauge         float64 // Width reserved for the battery gauge
	OuterRadius   float64 // Outer edge of the hand path
	Radius        float64 // Radius of the glyph centres
	Diameter      float64 // Glyph diameter
	GlyphRadius   float64
}

// NewRing creates the ring geometry for a surface of width x height.
// gauge is the width reserved around the edge for the battery gauge.
// If diameter is 0, the glyph diameter is derived from the surface width.
// Sizes that cannot produce a usable face are rejected.
func NewRing(width, height, gauge, diameter int) (*Ring, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	if gauge < 0 {
		return nil, fmt.Errorf("invalid gauge width %d", gauge)
	}
	if diameter == 0 {
		diameter = clamp(int(math.Round(float64(width)/5)), minDiameter, maxDiameter)
	}
	if diameter < 0 {
		return nil, fmt.Errorf("invalid glyph diameter %d", diameter)
	}
	r := new(Ring)
	r.Width = width
	r.Height = height
	r.Center = Point{float64(width) / 2, float64(height) / 2}
	r.Gauge = float64(gauge)
	r.OuterRadius = (r.Center.X+r.Center.Y)/2 - r.Gauge
	r.Diameter = float64(diameter)
	// Integer halving, so that the glyph origin is on a whole pixel.
	r.GlyphRadius = float64(diameter / 2)
	r.Radius = r.OuterRadius - r.GlyphRadius
	if r.Radius < r.GlyphRadius {
		return nil, fmt.Errorf("glyph diameter %d too large for %dx%d surface", diameter, width, height)
	}
	return r, nil
}

// PointOnRing returns the position on the ring at angle theta,
// moved inwards towards the centre by offset.
func (r *Ring) PointOnRing(theta, offset float64) Point {
	return Point{
		X: r.Center.X + (r.Radius-offset)*math.Cos(theta),
		Y: r.Center.Y + (r.Radius-offset)*math.Sin(theta),
	}
}

// Overlap returns how far a glyph at thetaA must be moved inwards so that
// it no longer overlaps a glyph at thetaB. Both glyphs are measured
// undisplaced on the ring.
// The result is derived from the chord relationship of two equal circles
// and rounded up, so it may slightly overstate the required movement.
func (r *Ring) Overlap(thetaA, thetaB float64) float64 {
	a := r.PointOnRing(thetaA, 0)
	b := r.PointOnRing(thetaB, 0)
	diff := r.Diameter - math.Hypot(a.X-b.X, a.Y-b.Y)
	if diff <= 0 {
		return 0
	}
	frac := math.Sqrt(1 - math.Pow(1-diff/r.Diameter, 2))
	return math.Ceil(frac * r.Diameter)
}

// Chord returns the straight line distance between two undisplaced
// ring positions.
func (r *Ring) Chord(thetaA, thetaB float64) float64 {
	a := r.PointOnRing(thetaA, 0)
	b := r.PointOnRing(thetaB, 0)
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
