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

// Package render draws the face into an image, and serves the
// image over HTTP.
package render

import (
	"image"
	"image/draw"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/aamcrae/timeoclock/face"
)

const (
	markColor   = "FFFFFF"
	glyphText   = "000000"
	lowBattery  = "FF3030"
	textFactor  = 0.4 // Label text size relative to the glyph diameter
	ambientText = 1.5 // Ambient text size relative to the label text
)

// Canvas is a face.Renderer drawing with gg.
// Frames are drawn on the engine's goroutine; the last complete frame
// can be read from any goroutine with Frame.
type Canvas struct {
	theme    string
	ctx      *gg.Context
	ring     *face.Ring
	glyph    image.Image // Glyph background, rebuilt on resize
	textSize float64
	mu       sync.Mutex // Guards frame
	frame    *image.RGBA
	Frames   int
}

// NewCanvas creates a Canvas drawing glyphs and the gauge in the theme colour.
func NewCanvas(theme string) *Canvas {
	return &Canvas{theme: theme}
}

// Resize rebuilds the drawing context and the glyph image for the ring.
// Nothing is rebuilt if the ring has the same size as before.
func (c *Canvas) Resize(r *face.Ring) {
	if c.ring != nil && c.ring.Width == r.Width && c.ring.Height == r.Height && c.ring.Diameter == r.Diameter {
		c.ring = r
		return
	}
	c.ring = r
	c.ctx = gg.NewContext(r.Width, r.Height)
	c.ctx.SetFontFace(basicfont.Face7x13)
	c.textSize = r.Diameter * textFactor
	c.glyph = glyphImage(int(r.Diameter), c.theme)
}

// glyphImage draws the round glyph background, shaded towards the rim.
func glyphImage(d int, theme string) image.Image {
	g := gg.NewContext(d, d)
	r := float64(d) / 2
	g.DrawCircle(r, r, r)
	g.SetHexColor(theme)
	g.Fill()
	for i := 1; i <= 3; i++ {
		g.DrawCircle(r, r, r*(1-0.15*float64(i)))
		g.SetRGBA(1, 1, 1, 0.08)
		g.Fill()
	}
	return g.Image()
}

func (c *Canvas) Clear(color string) {
	c.ctx.SetHexColor(color)
	c.ctx.Clear()
}

// Arc strokes the battery gauge around the edge of the surface.
// Angles are in degrees, clockwise from 3 o'clock.
func (c *Canvas) Arc(start, sweep, width float64, color string) {
	if sweep <= 0 {
		return
	}
	w, h := float64(c.ring.Width), float64(c.ring.Height)
	c.ctx.SetHexColor(color)
	c.ctx.SetLineWidth(width)
	c.ctx.DrawEllipticalArc(w/2, h/2, w/2, h/2, gg.Radians(start), gg.Radians(start+sweep))
	c.ctx.Stroke()
}

// Marks draws chevrons for the top and major marks, and lines for the rest.
func (c *Canvas) Marks(marks []face.Mark) {
	c.ctx.SetHexColor(markColor)
	c.ctx.SetLineWidth(2)
	for _, m := range marks {
		switch m.Kind {
		case face.MarkMinor:
			c.ctx.DrawLine(m.Outer.X, m.Outer.Y, m.Inner.X, m.Inner.Y)
			c.ctx.Stroke()
		default:
			half := math.Hypot(m.Outer.X-m.Inner.X, m.Outer.Y-m.Inner.Y) / 2
			if m.Kind == face.MarkTop {
				half *= 1.5
			}
			// Perpendicular to the mark.
			px, py := -math.Sin(m.Angle)*half, math.Cos(m.Angle)*half
			c.ctx.MoveTo(m.Outer.X+px, m.Outer.Y+py)
			c.ctx.LineTo(m.Inner.X, m.Inner.Y)
			c.ctx.LineTo(m.Outer.X-px, m.Outer.Y-py)
			c.ctx.ClosePath()
			c.ctx.Fill()
		}
	}
}

// Glyph draws the glyph background at origin with the label centred on it.
func (c *Canvas) Glyph(origin face.Point, label string) {
	c.ctx.DrawImage(c.glyph, int(math.Round(origin.X)), int(math.Round(origin.Y)))
	cx := origin.X + c.ring.Diameter/2
	cy := origin.Y + c.ring.Diameter/2
	c.ctx.SetHexColor(glyphText)
	c.drawString(label, cx, cy, c.textSize, 0.5)
}

func (c *Canvas) Text(at face.Point, text, color string) {
	c.ctx.SetHexColor(color)
	c.drawString(text, at.X, at.Y, c.textSize*ambientText, 0)
}

// LowBattery draws a battery outline one glyph wide.
func (c *Canvas) LowBattery(top face.Point) {
	w := c.ring.Diameter
	h := w / 2
	x := top.X - w/2
	c.ctx.SetHexColor(lowBattery)
	c.ctx.SetLineWidth(2)
	c.ctx.DrawRectangle(x, top.Y, w-w/10, h)
	c.ctx.Stroke()
	c.ctx.DrawRectangle(x+w-w/10, top.Y+h/3, w/10, h/3)
	c.ctx.Fill()
	c.ctx.DrawRectangle(x+3, top.Y+3, w/8, h-6)
	c.ctx.Fill()
}

// Flush publishes the completed frame.
func (c *Canvas) Flush() {
	src := c.ctx.Image()
	b := src.Bounds()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frame == nil || c.frame.Bounds() != b {
		c.frame = image.NewRGBA(b)
	}
	draw.Draw(c.frame, b, src, b.Min, draw.Src)
	c.Frames++
}

// Frame returns a copy of the last complete frame, or nil if nothing
// has been drawn.
func (c *Canvas) Frame() image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frame == nil {
		return nil
	}
	img := image.NewRGBA(c.frame.Bounds())
	copy(img.Pix, c.frame.Pix)
	return img
}

// drawString draws s centred on x, scaling the fixed size font to size.
// ay is the vertical anchor (0 is the baseline, 0.5 is centred).
func (c *Canvas) drawString(s string, x, y, size, ay float64) {
	scale := size / float64(basicfont.Face7x13.Height)
	c.ctx.Push()
	c.ctx.ScaleAbout(scale, scale, x, y)
	c.ctx.DrawStringAnchored(s, x, y, 0.5, ay)
	c.ctx.Pop()
}
