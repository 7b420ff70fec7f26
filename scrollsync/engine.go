// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollsync/engine.go
// Summary: Forces inactive tab lists to the offset implied by the shared
// scroll position.
// Notes: Every pass re-derives targets from the shared cells, so a dropped
// event heals on the next one. Passes run synchronously on the caller's
// goroutine.

package scrollsync

// Regime classifies a scroll value against the header height.
type Regime int

const (
	RegimeOverscroll Regime = iota
	RegimeExpanded
	RegimeCollapsed
)

func (r Regime) String() string {
	switch r {
	case RegimeOverscroll:
		return "overscroll"
	case RegimeExpanded:
		return "expanded"
	case RegimeCollapsed:
		return "collapsed"
	default:
		return "unknown"
	}
}

// RegimeOf reports where scrollY sits relative to headerHeight.
func RegimeOf(scrollY, headerHeight float64) Regime {
	switch {
	case scrollY < 0:
		return RegimeOverscroll
	case scrollY < headerHeight:
		return RegimeExpanded
	default:
		return RegimeCollapsed
	}
}

// Stats counts engine work since the last reset.
type Stats struct {
	Passes        int // reconciliation passes
	Forced        int // imperative ScrollToOffset calls
	Skipped       int // inactive tabs without a live handle
	RegimeChanges int
}

// Engine reconciles inactive tabs against the shared cells.
type Engine struct {
	cells    *Cells
	registry *Registry
	cache    *OffsetCache
	routes   func() []TabID
	active   func() (TabID, bool)

	regime Regime
	stats  Stats
}

// NewEngine wires an engine to its collaborators. routes lists the tab set
// in display order; active names the tab excluded from repositioning.
func NewEngine(cells *Cells, registry *Registry, cache *OffsetCache, routes func() []TabID, active func() (TabID, bool)) *Engine {
	return &Engine{
		cells:    cells,
		registry: registry,
		cache:    cache,
		routes:   routes,
		active:   active,
		regime:   RegimeOf(cells.ScrollY.Get(), cells.HeaderHeight.Get()),
	}
}

// Stats returns a copy of the counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Regime returns the regime observed by the last scroll event.
func (e *Engine) Regime() Regime {
	return e.regime
}

// HandleHeaderDrivenScroll records a scroll position reported by the active
// tab and reconciles the inactive tabs before returning.
func (e *Engine) HandleHeaderDrivenScroll(value float64) {
	e.cells.ScrollY.Set(value)

	regime := RegimeOf(value, e.headerHeight())
	if regime != e.regime {
		e.regime = regime
		e.stats.RegimeChanges++
	}
	// Inside [0, header] each inactive tab costs a comparison and at most
	// one reposition; outside it the collapsed check makes the pass a no-op
	// once every tab is aligned. Either way the pass is not deferred.
	e.ReconcileAllInactive()
}

// ReconcileAllInactive forces every registered tab except the active one to
// the offset implied by the current scroll position.
func (e *Engine) ReconcileAllInactive() {
	e.stats.Passes++
	active, hasActive := e.active()
	for _, id := range e.routes() {
		if hasActive && id == active {
			continue
		}
		e.reconcile(id)
	}
}

// ReconcileTab reconciles a single tab unless it is the active one.
func (e *Engine) ReconcileTab(id TabID) {
	if active, ok := e.active(); ok && active == id {
		return
	}
	e.reconcile(id)
}

func (e *Engine) reconcile(id TabID) {
	offset := e.cells.ScrollY.Get()
	if offset < 0 {
		// Only the list under the user's finger bounces.
		return
	}
	h, ok := e.registry.TryGet(id)
	if !ok {
		e.stats.Skipped++
		return
	}

	header := e.headerHeight()
	if offset < header {
		e.force(id, h, offset)
		return
	}
	if last, ok := e.cache.Get(id); ok && last >= header {
		return
	}
	e.force(id, h, header)
}

func (e *Engine) force(id TabID, h Handle, offset float64) {
	h.ScrollToOffset(offset, false)
	e.cache.Set(id, offset)
	e.stats.Forced++
}

func (e *Engine) headerHeight() float64 {
	return nonNegative(e.cells.HeaderHeight.Get())
}
