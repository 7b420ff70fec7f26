// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/state.go
// Summary: Immutable scroll state shared by scrollable widgets.
// Offsets may dip below zero by at most Overscroll rows (rubber band).

package scroll

// State is a value type; every mutation returns a new State.
type State struct {
	Offset         int
	ContentHeight  int
	ViewportHeight int
	Overscroll     int
}

// NewState returns a state at offset 0.
func NewState(contentHeight, viewportHeight int) State {
	return State{ContentHeight: max(contentHeight, 0), ViewportHeight: max(viewportHeight, 0)}
}

// MaxOffset is the largest non-overscrolled offset.
func (s State) MaxOffset() int {
	return max(s.ContentHeight-s.ViewportHeight, 0)
}

// MinOffset is the most negative offset allowed.
func (s State) MinOffset() int {
	return -max(s.Overscroll, 0)
}

func (s State) clamp() State {
	if s.Offset > s.MaxOffset() {
		s.Offset = s.MaxOffset()
	}
	if s.Offset < s.MinOffset() {
		s.Offset = s.MinOffset()
	}
	return s
}

func (s State) WithContentHeight(h int) State {
	s.ContentHeight = max(h, 0)
	return s.clamp()
}

func (s State) WithViewportHeight(h int) State {
	s.ViewportHeight = max(h, 0)
	return s.clamp()
}

func (s State) WithOverscroll(rows int) State {
	s.Overscroll = max(rows, 0)
	return s.clamp()
}

// WithOffset sets the offset, clamped.
func (s State) WithOffset(offset int) State {
	s.Offset = offset
	return s.clamp()
}

// ScrollBy moves by delta rows (positive = down).
func (s State) ScrollBy(delta int) State {
	return s.WithOffset(s.Offset + delta)
}

// ScrollTo makes row visible with minimal movement.
func (s State) ScrollTo(row int) State {
	switch {
	case row < s.Offset:
		s.Offset = row
	case row >= s.Offset+s.ViewportHeight:
		s.Offset = row - s.ViewportHeight + 1
	}
	return s.clamp()
}

func (s State) ScrollToTop() State    { return s.WithOffset(0) }
func (s State) ScrollToBottom() State { return s.WithOffset(s.MaxOffset()) }

// Overscrolled reports whether the offset is in the rubber-band range.
func (s State) Overscrolled() bool { return s.Offset < 0 }

// IsRowVisible reports whether content row is inside the viewport.
func (s State) IsRowVisible(row int) bool {
	return row >= s.Offset && row < s.Offset+s.ViewportHeight
}

func (s State) CanScroll() bool     { return s.MaxOffset() > 0 }
func (s State) CanScrollUp() bool   { return s.Offset > 0 }
func (s State) CanScrollDown() bool { return s.Offset < s.MaxOffset() }
