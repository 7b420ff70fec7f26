// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package scroll

import "testing"

func TestStateScrollBy(t *testing.T) {
	s := NewState(100, 10)

	s = s.ScrollBy(20)
	if s.Offset != 20 {
		t.Errorf("Offset = %d, want 20", s.Offset)
	}
	s = s.ScrollBy(-5)
	if s.Offset != 15 {
		t.Errorf("Offset = %d, want 15", s.Offset)
	}
	s = s.ScrollBy(100)
	if s.Offset != 90 {
		t.Errorf("Offset = %d, want 90", s.Offset)
	}
	s = s.ScrollBy(-200)
	if s.Offset != 0 {
		t.Errorf("Offset = %d, want 0 without overscroll", s.Offset)
	}
}

func TestStateOverscroll(t *testing.T) {
	s := NewState(100, 10).WithOverscroll(3)
	s = s.ScrollBy(-2)
	if s.Offset != -2 || !s.Overscrolled() {
		t.Fatalf("Offset = %d overscrolled = %v", s.Offset, s.Overscrolled())
	}
	s = s.ScrollBy(-10)
	if s.Offset != -3 {
		t.Fatalf("Offset = %d, want -3", s.Offset)
	}
	if s.CanScrollUp() {
		t.Fatalf("overscrolled state should not report content above")
	}
	s = s.WithOverscroll(0)
	if s.Offset != 0 {
		t.Fatalf("dropping overscroll should clamp, got %d", s.Offset)
	}
}

func TestStateScrollTo(t *testing.T) {
	s := NewState(100, 10).ScrollTo(50)
	if s.Offset != 41 {
		t.Errorf("Offset = %d, want 41", s.Offset)
	}
	s = s.ScrollTo(45)
	if s.Offset != 41 {
		t.Errorf("Offset = %d, want 41 (no change)", s.Offset)
	}
	s = s.ScrollTo(3)
	if s.Offset != 3 || !s.IsRowVisible(12) || s.IsRowVisible(13) {
		t.Errorf("Offset = %d", s.Offset)
	}
}

func TestStateResizeClamps(t *testing.T) {
	s := NewState(100, 10).ScrollToBottom()
	if s.Offset != 90 {
		t.Fatalf("Offset = %d, want 90", s.Offset)
	}
	s = s.WithViewportHeight(40)
	if s.Offset != 60 {
		t.Fatalf("Offset = %d after grow, want 60", s.Offset)
	}
	s = s.WithContentHeight(20)
	if s.Offset != 0 || s.CanScroll() || s.CanScrollDown() {
		t.Fatalf("short content should not scroll: %+v", s)
	}
	s = s.WithContentHeight(-5)
	if s.ContentHeight != 0 {
		t.Fatalf("negative content height stored")
	}
}
