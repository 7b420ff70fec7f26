// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package titledetail

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelcine/catalog"
	"github.com/framegrace/texelcine/texelui/core"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newSeededStore(t *testing.T) *catalog.Store {
	t.Helper()
	s, err := catalog.Open("")
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if _, err := s.Seed(); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return s
}

// newTestApp mounts harbor-lights on a 60x16 screen: overlay row 0, header
// rows 1-8, tab bar row 9, list body from row 10.
func newTestApp(t *testing.T) (*App, *fakeClock) {
	t.Helper()
	a, err := New(newSeededStore(t), "harbor-lights", DefaultSettings())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(a.Stop)
	clock := &fakeClock{t: time.Unix(2000, 0)}
	a.SetClock(clock.now)
	a.Resize(60, 16)
	return a, clock
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func rowText(buf [][]core.Cell, y int) string {
	var sb strings.Builder
	for _, c := range buf[y] {
		sb.WriteRune(c.Ch)
	}
	return sb.String()
}

func findRow(buf [][]core.Cell, text string) int {
	for y := range buf {
		if strings.Contains(rowText(buf, y), text) {
			return y
		}
	}
	return -1
}

func TestNewRejectsUnknownTitle(t *testing.T) {
	_, err := New(newSeededStore(t), "missing", DefaultSettings())
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestNewDefaultsToFirstTitle(t *testing.T) {
	a, err := New(newSeededStore(t), "", DefaultSettings())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Stop()
	if a.EntityID() != "harbor-lights" {
		t.Fatalf("entity = %q", a.EntityID())
	}
	if got := a.GetTitle(); got != "Title: Harbor Lights" {
		t.Fatalf("title = %q", got)
	}
}

func TestActiveScrollMirrorsInactiveTabs(t *testing.T) {
	a, _ := newTestApp(t)

	for i := 0; i < 3; i++ {
		a.HandleKey(key(tcell.KeyDown))
	}
	if y := a.ScrollY(); y != 3 {
		t.Fatalf("scrollY = %v, want 3", y)
	}
	off := a.Offsets()
	if off[TabReviews] != 3 || off[TabPlaylists] != 3 {
		t.Fatalf("expanded header not mirrored: %v", off)
	}

	a.HandleKey(key(tcell.KeyEnd))
	off = a.Offsets()
	if off[TabDetails] <= 8 {
		t.Fatalf("details should scroll past the header, got %d", off[TabDetails])
	}
	if off[TabReviews] != 8 || off[TabPlaylists] != 8 {
		t.Fatalf("collapsed header should pin others at 8: %v", off)
	}
}

func TestTabSwitchKeepsHeaderConsistent(t *testing.T) {
	a, _ := newTestApp(t)
	a.HandleKey(key(tcell.KeyEnd))
	before := a.Offsets()

	a.HandleKey(key(tcell.KeyRight))
	if a.ActiveTab() != TabReviews {
		t.Fatalf("active = %q", a.ActiveTab())
	}
	off := a.Offsets()
	if off[TabReviews] != before[TabReviews] {
		t.Fatalf("new active tab moved: %d -> %d", before[TabReviews], off[TabReviews])
	}
	if y := a.ScrollY(); y != float64(off[TabReviews]) {
		t.Fatalf("scrollY = %v, want %d", y, off[TabReviews])
	}
	if off[TabDetails] < 8 {
		t.Fatalf("outgoing tab shows the header again: %d", off[TabDetails])
	}

	a.HandleKey(key(tcell.KeyBacktab))
	a.HandleKey(runeKey('3'))
	if a.ActiveTab() != TabPlaylists {
		t.Fatalf("active = %q after '3'", a.ActiveTab())
	}
}

func TestOverscrollStretchesHeaderAndBounces(t *testing.T) {
	a, clock := newTestApp(t)

	a.HandleKey(key(tcell.KeyUp))
	if y := a.ScrollY(); y != -1 {
		t.Fatalf("scrollY = %v, want -1", y)
	}
	off := a.Offsets()
	if off[TabReviews] != 0 || off[TabPlaylists] != 0 {
		t.Fatalf("overscroll leaked into inactive tabs: %v", off)
	}

	buf := a.Render()
	if y := findRow(buf, " Details "); y != 10 {
		t.Fatalf("tab bar row = %d, want 10 while stretched", y)
	}

	if !a.tick() {
		t.Fatalf("bounce should be animating")
	}
	clock.t = clock.t.Add(time.Second)
	a.tick()
	if y := a.ScrollY(); y != 0 {
		t.Fatalf("scrollY after bounce = %v, want 0", y)
	}
	if a.tick() {
		t.Fatalf("bounce still animating")
	}
}

func TestLeavingTabCancelsAnimatedScroll(t *testing.T) {
	a, clock := newTestApp(t)
	a.HandleKey(key(tcell.KeyEnd))
	a.HandleKey(key(tcell.KeyRight))
	a.HandleKey(key(tcell.KeyLeft))
	a.HandleKey(key(tcell.KeyEnd))
	end := a.Offsets()[TabDetails]
	if end <= 8 {
		t.Fatalf("details offset = %d, want past the header", end)
	}

	// Home animates back to the top; leave before any frame runs.
	a.HandleKey(key(tcell.KeyHome))
	a.HandleKey(key(tcell.KeyRight))
	if a.tabs[0].list.Animating() {
		t.Fatalf("hidden details list still animating")
	}
	if got := a.Offsets()[TabDetails]; got != end {
		t.Fatalf("details offset after leaving = %d, want %d", got, end)
	}

	a.HandleKey(key(tcell.KeyLeft))
	before := a.ScrollY()
	clock.t = clock.t.Add(time.Second)
	a.tick()
	if y := a.ScrollY(); y != before {
		t.Fatalf("scrollY jumped %v -> %v after returning", before, y)
	}
	if got := a.Offsets()[TabDetails]; got != end {
		t.Fatalf("details offset = %d after returning, want %d", got, end)
	}
}

func TestRenderCollapsesHeaderUnderOverlay(t *testing.T) {
	a, _ := newTestApp(t)

	buf := a.Render()
	if !strings.Contains(rowText(buf, 0), "texelcine") {
		t.Fatalf("overlay row = %q", rowText(buf, 0))
	}
	if strings.Contains(rowText(buf, 0), "Harbor Lights") {
		t.Fatalf("compact title visible while header expanded")
	}
	if y := findRow(buf, "Harbor Lights"); y != 6 {
		t.Fatalf("header title row = %d, want 6", y)
	}
	if y := findRow(buf, " Details "); y != 9 {
		t.Fatalf("tab bar row = %d, want 9", y)
	}
	if y := findRow(buf, "Overview"); y != 10 {
		t.Fatalf("first content row = %d, want 10", y)
	}

	a.HandleKey(key(tcell.KeyEnd))
	buf = a.Render()
	if y := findRow(buf, " Details "); y != 1 {
		t.Fatalf("collapsed tab bar row = %d, want 1", y)
	}
	if !strings.Contains(rowText(buf, 0), "Harbor Lights") {
		t.Fatalf("compact title missing once collapsed: %q", rowText(buf, 0))
	}
}

func TestEntitySwitchResetsSync(t *testing.T) {
	a, _ := newTestApp(t)
	a.HandleKey(key(tcell.KeyEnd))
	a.HandleKey(key(tcell.KeyRight))
	old := a.tabs[0].list

	a.HandleKey(runeKey(']'))
	if a.EntityID() != "glass-orchard" {
		t.Fatalf("entity = %q", a.EntityID())
	}
	if a.ActiveTab() != TabDetails {
		t.Fatalf("active tab not reset: %q", a.ActiveTab())
	}
	if y := a.ScrollY(); y != 0 {
		t.Fatalf("scrollY carried over: %v", y)
	}
	for id, off := range a.Offsets() {
		if off != 0 {
			t.Fatalf("tab %q starts at %d", id, off)
		}
	}
	if old.Alive() {
		t.Fatalf("previous list still mounted")
	}
	if n := a.coord.Registry().Len(); n != 3 {
		t.Fatalf("registry holds %d handles, want 3", n)
	}

	a.HandleKey(runeKey('['))
	if a.EntityID() != "harbor-lights" {
		t.Fatalf("entity = %q after '['", a.EntityID())
	}
	a.HandleKey(runeKey('['))
	if a.EntityID() != "harbor-lights" {
		t.Fatalf("moved before the first title")
	}
}

func TestMouseClickSelectsTab(t *testing.T) {
	a, _ := newTestApp(t)
	a.Render()
	hit := a.tabHits[2]
	a.HandleMouse(tcell.NewEventMouse(hit[0]+1, a.tabBarY, tcell.Button1, tcell.ModNone))
	if a.ActiveTab() != TabPlaylists {
		t.Fatalf("active = %q", a.ActiveTab())
	}

	a.HandleMouse(tcell.NewEventMouse(5, 12, tcell.WheelDown, tcell.ModNone))
	if y := a.ScrollY(); y != 3 {
		t.Fatalf("wheel scrollY = %v, want 3", y)
	}
}

func TestShortScreenShrinksHeader(t *testing.T) {
	a, _ := newTestApp(t)
	a.Resize(40, 6)
	if a.header != 3 {
		t.Fatalf("header = %d, want 3", a.header)
	}
	if h := a.coord.Cells().HeaderHeight.Get(); h != 3 {
		t.Fatalf("header cell = %v", h)
	}
	buf := a.Render()
	if len(buf) != 6 || len(buf[0]) != 40 {
		t.Fatalf("buffer %dx%d", len(buf[0]), len(buf))
	}
}

func TestDebugLineShowsStats(t *testing.T) {
	a, _ := newTestApp(t)
	a.HandleKey(runeKey('d'))
	a.HandleKey(key(tcell.KeyDown))
	buf := a.Render()
	if last := rowText(buf, 15); !strings.Contains(last, "expanded") || !strings.Contains(last, "y=1") {
		t.Fatalf("debug line = %q", last)
	}
}

func TestRefreshRequestedOnScroll(t *testing.T) {
	a, _ := newTestApp(t)
	ch := make(chan bool, 1)
	a.SetRefreshNotifier(ch)
	a.HandleKey(key(tcell.KeyDown))
	select {
	case <-ch:
	default:
		t.Fatalf("no refresh after scroll")
	}
}
