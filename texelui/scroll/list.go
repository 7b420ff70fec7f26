// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/list.go
// Summary: Scrollable line list that can sit under a collapsing header.
// Usage: Each tab of a detail screen owns one List. The list reports its own
// offset through OnScroll and accepts programmatic repositioning through
// ScrollToOffset, which makes it a scrollsync.Handle.
// Notes: The first Leading rows are transparent so the header and tab bar
// drawn by the screen show through. Offsets below zero are a rubber band
// that springs back on Tick.

package scroll

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelcine/internal/effects"
	"github.com/framegrace/texelcine/texelui/core"
)

// Span is a run of text in one style.
type Span struct {
	Text  string
	Style tcell.Style
}

// Line is one row of list content.
type Line []Span

// Text builds a single-span line.
func Text(text string, style tcell.Style) Line {
	return Line{{Text: text, Style: style}}
}

// ListConfig tunes scrolling behaviour.
type ListConfig struct {
	OverscrollRows  int
	BounceDuration  time.Duration
	AnimateDuration time.Duration // used when ScrollToOffset is animated
	Easing          effects.EasingFunc
	WheelRows       int
}

// DefaultListConfig returns the stock tuning.
func DefaultListConfig() ListConfig {
	return ListConfig{
		OverscrollRows:  3,
		BounceDuration:  220 * time.Millisecond,
		AnimateDuration: 180 * time.Millisecond,
		Easing:          effects.EaseSmoothstep,
		WheelRows:       3,
	}
}

const offsetKey = "offset"

// List is a vertically scrolling list of lines.
type List struct {
	core.BaseWidget
	Style      tcell.Style
	Indicators IndicatorConfig

	lines     []Line
	leading   int
	minTravel int
	state     State

	cfg       ListConfig
	timeline  *effects.Timeline
	animating bool
	now       func() time.Time

	onScroll func(offset float64)
	inv      func(core.Rect)
	mounted  bool
}

// NewList creates a mounted, empty list.
func NewList(cfg ListConfig) *List {
	if cfg.WheelRows <= 0 {
		cfg.WheelRows = 1
	}
	l := &List{
		Style:      tcell.StyleDefault,
		Indicators: DefaultIndicatorConfig(tcell.StyleDefault.Dim(true)),
		cfg:        cfg,
		timeline:   effects.NewTimeline(0),
		now:        time.Now,
		mounted:    true,
	}
	if cfg.Easing != nil {
		l.timeline.SetDefaultEasing(cfg.Easing)
	}
	l.state = NewState(0, 0).WithOverscroll(cfg.OverscrollRows)
	return l
}

// SetClock overrides the time source used for animations.
func (l *List) SetClock(now func() time.Time) {
	if now != nil {
		l.now = now
	}
}

// OnScroll sets the callback fired whenever the offset changes.
func (l *List) OnScroll(fn func(offset float64)) {
	l.onScroll = fn
}

// SetInvalidator implements core.InvalidationAware.
func (l *List) SetInvalidator(fn func(core.Rect)) {
	l.inv = fn
}

// SetLines replaces the content.
func (l *List) SetLines(lines []Line) {
	l.lines = lines
	l.updateContent()
}

// LineCount returns the number of content lines.
func (l *List) LineCount() int { return len(l.lines) }

// SetLeading reserves rows transparent rows above the content and
// guarantees the list can scroll at least minTravel rows, however short
// the content.
func (l *List) SetLeading(rows, minTravel int) {
	l.leading = max(rows, 0)
	l.minTravel = max(minTravel, 0)
	l.updateContent()
}

// Leading returns the number of transparent rows.
func (l *List) Leading() int { return l.leading }

func (l *List) Resize(w, h int) {
	l.BaseWidget.Resize(w, h)
	l.updateContent()
}

func (l *List) updateContent() {
	_, h := l.Size()
	content := max(l.leading+len(l.lines), h+l.minTravel)
	l.state = l.state.WithViewportHeight(h).WithContentHeight(content)
}

// State returns the scroll state.
func (l *List) State() State { return l.state }

// Offset returns the current offset in rows.
func (l *List) Offset() int { return l.state.Offset }

// Mount marks the list as attached to a screen.
func (l *List) Mount() { l.mounted = true }

// Unmount detaches the list. Handles held elsewhere become dead.
func (l *List) Unmount() {
	l.mounted = false
	l.animating = false
	l.timeline.Clear()
}

// Alive implements scrollsync.Liveness.
func (l *List) Alive() bool { return l.mounted }

// ScrollToOffset implements scrollsync.Handle. Offsets are rounded to rows
// and clamped to [0, MaxOffset]; only user scrolling overscrolls.
func (l *List) ScrollToOffset(offset float64, animated bool) {
	if !l.mounted || math.IsNaN(offset) {
		return
	}
	target := l.state.WithOffset(max(int(math.Round(offset)), 0)).Offset
	if animated && l.cfg.AnimateDuration > 0 {
		l.timeline.Set(offsetKey, float64(l.state.Offset))
		l.timeline.AnimateTo(offsetKey, float64(target), l.cfg.AnimateDuration, nil, l.now())
		l.animating = true
		return
	}
	l.StopAnimation()
	l.setOffset(target)
}

// ScrollBy is a user scroll of delta rows. Crossing above the top starts a
// rubber band that springs back to zero.
func (l *List) ScrollBy(delta int) {
	if delta == 0 {
		return
	}
	l.StopAnimation()
	l.setOffset(l.state.Offset + delta)
	if l.state.Overscrolled() {
		l.startBounce()
	}
}

// ScrollToTop animates back to offset zero.
func (l *List) ScrollToTop() {
	l.ScrollToOffset(0, true)
}

// ScrollToBottom jumps to the end of the content.
func (l *List) ScrollToBottom() {
	l.ScrollToOffset(float64(l.state.MaxOffset()), false)
}

// Animating reports whether a bounce or animated scroll is in flight.
func (l *List) Animating() bool { return l.animating }

// Tick advances animations to now and reports whether more frames are needed.
func (l *List) Tick(now time.Time) bool {
	if !l.animating {
		return false
	}
	v := l.timeline.Get(offsetKey, now)
	if !l.timeline.IsAnimating(offsetKey, now) {
		l.animating = false
		v = l.timeline.Target(offsetKey)
	}
	l.setOffset(int(math.Round(v)))
	return l.animating
}

func (l *List) startBounce() {
	l.timeline.Set(offsetKey, float64(l.state.Offset))
	l.timeline.AnimateTo(offsetKey, 0, l.cfg.BounceDuration, nil, l.now())
	l.animating = l.cfg.BounceDuration > 0
	if !l.animating {
		l.setOffset(0)
	}
}

// StopAnimation abandons a bounce or animated scroll. The offset stays
// where the last tick left it.
func (l *List) StopAnimation() {
	l.animating = false
	l.timeline.Reset(offsetKey)
}

func (l *List) setOffset(offset int) {
	old := l.state.Offset
	l.state = l.state.WithOffset(offset)
	if l.state.Offset == old {
		return
	}
	if l.inv != nil {
		l.inv(l.Rect)
	}
	if l.onScroll != nil {
		l.onScroll(float64(l.state.Offset))
	}
}

// Draw paints the visible content rows. Leading rows are left untouched.
func (l *List) Draw(p *core.Painter) {
	rect := l.Rect
	if rect.Empty() {
		return
	}
	clipped := p.WithClip(rect)
	clip := clipped.Clip()
	firstY := rect.Y + l.leading - l.state.Offset

	body := core.Rect{X: rect.X, Y: max(firstY, clip.Y), W: rect.W}
	body.H = clip.Y + clip.H - body.Y
	if body.H <= 0 || clip.Empty() {
		return
	}
	clipped.Fill(body, ' ', l.Style)

	for i, line := range l.lines {
		y := firstY + i
		if y < body.Y {
			continue
		}
		if y >= body.Y+body.H {
			break
		}
		x := rect.X + 1
		width := rect.W - 2
		for _, span := range line {
			if width <= 0 {
				break
			}
			n := clipped.DrawTextFit(x, y, width, span.Text, span.Style)
			x += n
			width -= n
		}
	}

	hiddenAbove := firstY < body.Y && len(l.lines) > 0
	hiddenBelow := firstY+len(l.lines) > body.Y+body.H
	DrawIndicators(clipped, body, hiddenAbove, hiddenBelow, l.Indicators)
}

// HandleKey scrolls on arrow, page and home/end keys.
func (l *List) HandleKey(ev *tcell.EventKey) bool {
	_, h := l.Size()
	page := max(h/2, 1)
	switch ev.Key() {
	case tcell.KeyUp:
		l.ScrollBy(-1)
	case tcell.KeyDown:
		l.ScrollBy(1)
	case tcell.KeyPgUp:
		l.ScrollBy(-page)
	case tcell.KeyPgDn:
		l.ScrollBy(page)
	case tcell.KeyHome:
		l.ScrollToTop()
	case tcell.KeyEnd:
		l.ScrollToBottom()
	default:
		return false
	}
	return true
}

// HandleMouse scrolls on wheel events inside the list.
func (l *List) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	if !l.HitTest(x, y) {
		return false
	}
	switch ev.Buttons() {
	case tcell.WheelUp:
		l.ScrollBy(-l.cfg.WheelRows)
		return true
	case tcell.WheelDown:
		l.ScrollBy(l.cfg.WheelRows)
		return true
	}
	return false
}
