// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package scrollsync

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

// recordingHandle records every imperative reposition.
type recordingHandle struct {
	calls []float64
	dead  bool
}

func (h *recordingHandle) ScrollToOffset(offset float64, animated bool) {
	h.calls = append(h.calls, offset)
}

func (h *recordingHandle) Alive() bool { return !h.dead }

func (h *recordingHandle) last() (float64, bool) {
	if len(h.calls) == 0 {
		return 0, false
	}
	return h.calls[len(h.calls)-1], true
}

const (
	tabA TabID = "details"
	tabB TabID = "reviews"
	tabC TabID = "playlists"
)

func newTestCoordinator(t *testing.T, header float64) (*Coordinator, map[TabID]*recordingHandle) {
	t.Helper()
	c := New("movie-42", Options{Routes: []TabID{tabA, tabB, tabC}, HeaderOverlayHeight: 1, TabBarHeight: 1})
	c.SetHeaderHeight(header)
	handles := map[TabID]*recordingHandle{}
	for _, id := range c.Routes() {
		h := &recordingHandle{}
		handles[id] = h
		c.Register(id, h)
	}
	for _, h := range handles {
		h.calls = nil
	}
	return c, handles
}

func TestClampedMirroring(t *testing.T) {
	c, handles := newTestCoordinator(t, 300)

	for _, v := range []float64{0, 10, 150, 299.5} {
		c.HandleHeaderDrivenScroll(v)
		for _, id := range []TabID{tabB, tabC} {
			got, ok := c.Offsets()[id]
			if !ok || got != v {
				t.Fatalf("tab %s: cached offset %v (ok=%v), want %v", id, got, ok, v)
			}
			if last, _ := handles[id].last(); last != v {
				t.Fatalf("tab %s: last reposition %v, want %v", id, last, v)
			}
		}
	}
	if len(handles[tabA].calls) != 0 {
		t.Fatalf("active tab was repositioned: %v", handles[tabA].calls)
	}
}

func TestCollapseIsIdempotent(t *testing.T) {
	c, handles := newTestCoordinator(t, 300)

	c.HandleHeaderDrivenScroll(350)
	if got := c.Offsets()[tabB]; got != 300 {
		t.Fatalf("expected tab B snapped to header, got %v", got)
	}
	calls := len(handles[tabB].calls)
	if calls != 1 {
		t.Fatalf("expected exactly one reposition, got %d", calls)
	}

	for _, v := range []float64{300, 400, 800, 1200} {
		c.HandleHeaderDrivenScroll(v)
	}
	if got := len(handles[tabB].calls); got != calls {
		t.Fatalf("collapsed tab repositioned again: %d calls", got)
	}
}

func TestNegativeOffsetsDoNotPropagate(t *testing.T) {
	c, handles := newTestCoordinator(t, 300)

	c.HandleHeaderDrivenScroll(40)
	before := c.Offsets()[tabB]
	for _, v := range []float64{-1, -50, -300} {
		c.HandleHeaderDrivenScroll(v)
	}
	for id, h := range handles {
		for _, off := range h.calls {
			if off < 0 {
				t.Fatalf("tab %s received negative offset %v", id, off)
			}
		}
	}
	if got := c.Offsets()[tabB]; got != before {
		t.Fatalf("tab B moved during overscroll: %v -> %v", before, got)
	}
	if got := c.Cells().ScrollY.Get(); got != -300 {
		t.Fatalf("raw scrollY should be preserved, got %v", got)
	}
}

func TestSwitchMatchesReconciledTargets(t *testing.T) {
	c, _ := newTestCoordinator(t, 300)
	c.HandleHeaderDrivenScroll(120)
	before := c.Offsets()

	c.SetActiveTab(1)

	after := c.Offsets()
	if after[tabB] != before[tabB] {
		t.Fatalf("new active tab cache changed: %v -> %v", before[tabB], after[tabB])
	}
	for _, id := range []TabID{tabA, tabC} {
		if after[id] != 120 {
			t.Fatalf("tab %s cached %v after switch, want 120", id, after[id])
		}
	}

	c.ReconcileAllInactive()
	again := c.Offsets()
	for id, v := range after {
		if again[id] != v {
			t.Fatalf("tab %s: switch left %v, reconcile gives %v", id, v, again[id])
		}
	}
}

func TestInitIsolatesEntities(t *testing.T) {
	c, _ := newTestCoordinator(t, 300)
	c.HandleHeaderDrivenScroll(500)
	c.SetActiveTab(2)

	old := c.Cells()
	c.Init("movie-43")

	if c.Registry().Len() != 0 {
		t.Fatalf("registry not empty after init: %v", c.Registry().IDs())
	}
	if len(c.Offsets()) != 0 {
		t.Fatalf("offset cache not empty after init: %v", c.Offsets())
	}
	if got := c.Cells().ScrollY.Get(); got != 0 {
		t.Fatalf("scrollY = %v after init", got)
	}
	if got := c.Cells().HeaderHeight.Get(); got != 0 {
		t.Fatalf("headerHeight = %v after init", got)
	}
	if got := c.Cells().HeaderOverlayHeight.Get(); got != 1 {
		t.Fatalf("overlay height should be re-seeded, got %v", got)
	}
	if idx, _, _ := c.ActiveTab(); idx != 0 {
		t.Fatalf("active index = %d after init", idx)
	}
	if old == c.Cells() {
		t.Fatalf("cells were reused across entities")
	}
	if old.ScrollY.Get() != 500 {
		t.Fatalf("old cells must not be touched, got %v", old.ScrollY.Get())
	}
}

func TestInitSameEntityIsNoop(t *testing.T) {
	c, _ := newTestCoordinator(t, 300)
	c.HandleHeaderDrivenScroll(42)
	c.Init("movie-42")
	if c.Registry().Len() != 3 {
		t.Fatalf("registry cleared by repeated init")
	}
	if got := c.Cells().ScrollY.Get(); got != 42 {
		t.Fatalf("scrollY reset by repeated init: %v", got)
	}
}

func TestScenarioMidScrollSwitch(t *testing.T) {
	c, handles := newTestCoordinator(t, 300)

	c.HandleHeaderDrivenScroll(150)
	c.SetActiveTab(1)

	if last, ok := handles[tabB].last(); !ok || last != 150 {
		t.Fatalf("tab B forced to %v (ok=%v), want 150", last, ok)
	}
}

func TestScenarioAlreadyCollapsed(t *testing.T) {
	c, handles := newTestCoordinator(t, 300)

	c.HandleHeaderDrivenScroll(320)
	if got := c.Offsets()[tabB]; got != 300 {
		t.Fatalf("precondition: tab B cached %v", got)
	}
	before := len(handles[tabB].calls)

	c.HandleHeaderDrivenScroll(400)
	c.SetActiveTab(1)

	if got := len(handles[tabB].calls); got != before {
		t.Fatalf("tab B repositioned on switch: %v", handles[tabB].calls)
	}
	if last, _ := handles[tabB].last(); last != 300 {
		t.Fatalf("tab B should rest at 300, got %v", last)
	}
}

func TestScenarioOverscrollLeavesOthers(t *testing.T) {
	c, handles := newTestCoordinator(t, 300)

	c.HandleHeaderDrivenScroll(20)
	before := len(handles[tabB].calls)
	c.HandleHeaderDrivenScroll(-50)

	if got := len(handles[tabB].calls); got != before {
		t.Fatalf("overscroll reached tab B: %v", handles[tabB].calls)
	}
	if got := c.Offsets()[tabB]; got != 20 {
		t.Fatalf("tab B cache changed to %v", got)
	}
}

func TestScenarioSecondInitClearsRegistry(t *testing.T) {
	c := New("movie-42", Options{Routes: []TabID{tabA, tabB}})
	c.Register(tabA, &recordingHandle{})
	c.Register(tabB, &recordingHandle{})
	c.HandleHeaderDrivenScroll(77)

	c.Init("movie-43")

	for _, id := range []TabID{tabA, tabB} {
		if _, ok := c.Registry().TryGet(id); ok {
			t.Fatalf("tab %s still registered", id)
		}
	}
	if got := c.Cells().ScrollY.Get(); got != 0 {
		t.Fatalf("scrollY = %v", got)
	}
}

func TestMissingAndStaleHandlesAreSkipped(t *testing.T) {
	c := New("movie-1", Options{Routes: []TabID{tabA, tabB, tabC}})
	c.SetHeaderHeight(100)
	stale := &recordingHandle{}
	c.Register(tabB, stale)
	stale.dead = true
	skipped := c.Stats().Skipped

	c.HandleHeaderDrivenScroll(30)

	if len(stale.calls) != 1 {
		t.Fatalf("stale handle should only see its registration sync, got %v", stale.calls)
	}
	if got := c.Stats().Skipped - skipped; got != 2 {
		t.Fatalf("expected two skips (missing C, stale B), got %d", got)
	}
}

func TestRegisterUnknownTabIsIgnored(t *testing.T) {
	var buf bytes.Buffer
	c := New("movie-1", Options{Routes: []TabID{tabA}, Logger: log.New(&buf, "", 0)})
	h := &recordingHandle{}
	c.Register("ghost", h)

	if c.Registry().Len() != 0 {
		t.Fatalf("unknown tab registered")
	}
	if !strings.Contains(buf.String(), `unknown tab "ghost"`) {
		t.Fatalf("expected rejection to be logged, got %q", buf.String())
	}
}

func TestLateRegistrationIsAligned(t *testing.T) {
	c := New("movie-1", Options{Routes: []TabID{tabA, tabB}})
	c.SetHeaderHeight(50)
	c.HandleHeaderDrivenScroll(80)

	late := &recordingHandle{}
	c.Register(tabB, late)
	if last, ok := late.last(); !ok || last != 50 {
		t.Fatalf("late tab forced to %v (ok=%v), want 50", last, ok)
	}

	active := &recordingHandle{}
	c.Register(tabA, active)
	if len(active.calls) != 0 {
		t.Fatalf("active tab repositioned on registration: %v", active.calls)
	}
}

func TestUnregisterForgetsOffset(t *testing.T) {
	c, _ := newTestCoordinator(t, 300)
	c.HandleHeaderDrivenScroll(350)

	c.Unregister(tabB)
	c.Unregister(tabB)
	c.Unregister("never-registered")
	if _, ok := c.Offsets()[tabB]; ok {
		t.Fatalf("offset kept for unregistered tab")
	}

	remounted := &recordingHandle{}
	c.Register(tabB, remounted)
	if last, ok := remounted.last(); !ok || last != 300 {
		t.Fatalf("remounted tab should be snapped to header, got %v (ok=%v)", last, ok)
	}
}

func TestSetRoutesPrunesAndClamps(t *testing.T) {
	c, _ := newTestCoordinator(t, 300)
	c.SetActiveTab(2)
	c.HandleHeaderDrivenScroll(10)

	c.SetRoutes([]TabID{tabA, tabB, tabA})

	if got := len(c.Routes()); got != 2 {
		t.Fatalf("routes not deduplicated: %v", c.Routes())
	}
	if _, ok := c.Registry().TryGet(tabC); ok {
		t.Fatalf("stale route still registered")
	}
	if _, ok := c.Offsets()[tabC]; ok {
		t.Fatalf("stale route still cached")
	}
	if idx, id, ok := c.ActiveTab(); !ok || idx != 1 || id != tabB {
		t.Fatalf("active tab = %d %q %v", idx, id, ok)
	}
}

func TestSetActiveTabOutOfRange(t *testing.T) {
	c, _ := newTestCoordinator(t, 300)
	passes := c.Stats().Passes
	c.SetActiveTab(7)
	c.SetActiveTab(-1)
	if idx, _, _ := c.ActiveTab(); idx != 0 {
		t.Fatalf("active index changed to %d", idx)
	}
	if c.Stats().Passes != passes {
		t.Fatalf("out-of-range switch ran a pass")
	}
}

func TestHeaderRemeasureRealigns(t *testing.T) {
	c, handles := newTestCoordinator(t, 300)
	c.HandleHeaderDrivenScroll(400)

	c.SetHeaderHeight(500)
	if last, _ := handles[tabB].last(); last != 400 {
		t.Fatalf("after header grew, tab B at %v, want 400", last)
	}
	c.SetHeaderHeight(-20)
	if got := c.Cells().HeaderHeight.Get(); got != 0 {
		t.Fatalf("negative header height stored: %v", got)
	}
}

func TestOnResetReceivesFreshCells(t *testing.T) {
	c := New("a", Options{Routes: []TabID{tabA}})
	var got *Cells
	c.OnReset(func(cells *Cells) { got = cells })
	c.Init("b")
	if got == nil || got != c.Cells() {
		t.Fatalf("OnReset not called with current cells")
	}
}

func TestDisposeStopsEverything(t *testing.T) {
	c, handles := newTestCoordinator(t, 300)
	c.Dispose()
	c.Dispose()

	c.HandleHeaderDrivenScroll(120)
	c.SetActiveTab(1)
	c.Init("movie-99")
	c.Register(tabA, &recordingHandle{})

	for id, h := range handles {
		if len(h.calls) != 0 {
			t.Fatalf("tab %s repositioned after dispose", id)
		}
	}
	if !c.Disposed() || c.EntityID() != "movie-42" {
		t.Fatalf("dispose state wrong: %v %q", c.Disposed(), c.EntityID())
	}
	if c.Registry().Len() != 0 {
		t.Fatalf("registry kept handles after dispose")
	}
}

func TestRegimeTracking(t *testing.T) {
	c, _ := newTestCoordinator(t, 100)
	c.HandleHeaderDrivenScroll(50)
	c.HandleHeaderDrivenScroll(150)
	c.HandleHeaderDrivenScroll(-5)
	if c.Regime() != RegimeOverscroll {
		t.Fatalf("regime = %v", c.Regime())
	}
	if got := c.Stats().RegimeChanges; got != 3 {
		t.Fatalf("regime changes = %d, want 3", got)
	}
}
