// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/painter.go
// Summary: Clipped cell painter used by widgets to draw into a frame buffer.

package core

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is one character cell of a frame buffer.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Rect is a screen-space rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Intersect returns the overlap of r and o. The result may be empty.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// NewBuffer allocates a w x h buffer filled with blanks in style.
func NewBuffer(w, h int, style tcell.Style) [][]Cell {
	buf := make([][]Cell, h)
	for y := range buf {
		buf[y] = make([]Cell, w)
		for x := range buf[y] {
			buf[y][x] = Cell{Ch: ' ', Style: style}
		}
	}
	return buf
}

// Painter writes cells into a buffer, dropping anything outside its clip.
type Painter struct {
	buf  [][]Cell
	clip Rect
}

// NewPainter paints into buf with the whole buffer as clip.
func NewPainter(buf [][]Cell) *Painter {
	h := len(buf)
	w := 0
	if h > 0 {
		w = len(buf[0])
	}
	return &Painter{buf: buf, clip: Rect{W: w, H: h}}
}

// WithClip returns a painter restricted to the intersection of r and the
// current clip.
func (p *Painter) WithClip(r Rect) *Painter {
	return &Painter{buf: p.buf, clip: p.clip.Intersect(r)}
}

// Clip returns the active clip rectangle.
func (p *Painter) Clip() Rect { return p.clip }

// SetCell writes a single cell.
func (p *Painter) SetCell(x, y int, ch rune, style tcell.Style) {
	if !p.clip.Contains(x, y) {
		return
	}
	if y < 0 || y >= len(p.buf) || x < 0 || x >= len(p.buf[y]) {
		return
	}
	p.buf[y][x] = Cell{Ch: ch, Style: style}
}

// Cell returns the buffer cell at (x, y), ignoring the clip. Cells outside
// the buffer read as zero.
func (p *Painter) Cell(x, y int) Cell {
	if y < 0 || y >= len(p.buf) || x < 0 || x >= len(p.buf[y]) {
		return Cell{}
	}
	return p.buf[y][x]
}

// Fill paints every cell of rect.
func (p *Painter) Fill(rect Rect, ch rune, style tcell.Style) {
	r := rect.Intersect(p.clip)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			p.SetCell(x, y, ch, style)
		}
	}
}

// DrawText writes text starting at (x, y) and returns the number of
// columns consumed. Wide runes take two columns.
func (p *Painter) DrawText(x, y int, text string, style tcell.Style) int {
	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		p.SetCell(col, y, r, style)
		if w == 2 {
			p.SetCell(col+1, y, ' ', style)
		}
		col += w
	}
	return col - x
}

// DrawTextFit writes text truncated with an ellipsis to at most width columns.
func (p *Painter) DrawTextFit(x, y, width int, text string, style tcell.Style) int {
	if width <= 0 {
		return 0
	}
	return p.DrawText(x, y, runewidth.Truncate(text, width, "…"), style)
}
