// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollsync/coordinator.go
// Summary: Screen-scoped owner of the shared scroll cells, handle registry,
// offset cache and active tab.
// Usage: One coordinator per mounted detail screen. The header and every tab
// list receive it by injection; the tab container drives SetActiveTab and
// the screen calls Init whenever the displayed entity changes.

package scrollsync

import "log"

// Options configures a coordinator.
type Options struct {
	Routes              []TabID
	HeaderOverlayHeight float64
	TabBarHeight        float64
	Logger              *log.Logger // nil disables lifecycle logging
}

// Coordinator ties the engine to the lifecycle of one displayed entity.
// It is driven from the UI event goroutine; only the cells may be read
// elsewhere.
type Coordinator struct {
	entityID string
	logger   *log.Logger

	routes      []TabID
	activeIndex int

	cells    *Cells
	registry *Registry
	cache    *OffsetCache
	engine   *Engine

	overlayHeight float64
	tabBarHeight  float64

	onReset  []func(*Cells)
	disposed bool
}

// New creates a coordinator for entityID.
func New(entityID string, opts Options) *Coordinator {
	c := &Coordinator{
		logger:        opts.Logger,
		overlayHeight: nonNegative(opts.HeaderOverlayHeight),
		tabBarHeight:  nonNegative(opts.TabBarHeight),
	}
	c.routes = dedupeRoutes(opts.Routes)
	c.reset(entityID)
	return c
}

// Init discards all synchronization state and starts over for entityID.
// Calling it again with the current id does nothing.
func (c *Coordinator) Init(entityID string) {
	if c.disposed || entityID == c.entityID {
		return
	}
	c.reset(entityID)
}

func (c *Coordinator) reset(entityID string) {
	c.entityID = entityID
	c.activeIndex = 0
	c.cells = newCells(c.overlayHeight, c.tabBarHeight)
	c.registry = NewRegistry(c.hasRoute)
	c.cache = NewOffsetCache()
	c.engine = NewEngine(c.cells, c.registry, c.cache, c.Routes, c.activeID)
	c.logf("ScrollSync: init entity %q (%d routes)", entityID, len(c.routes))
	for _, fn := range c.onReset {
		fn(c.cells)
	}
}

// OnReset registers fn to run with the fresh cells after every Init.
func (c *Coordinator) OnReset(fn func(*Cells)) {
	if fn != nil {
		c.onReset = append(c.onReset, fn)
	}
}

// Dispose releases all state. Later calls on the coordinator do nothing.
func (c *Coordinator) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.registry = NewRegistry(func(TabID) bool { return false })
	c.cache = NewOffsetCache()
	c.engine = NewEngine(c.cells, c.registry, c.cache, func() []TabID { return nil }, c.activeID)
	c.onReset = nil
	c.logf("ScrollSync: disposed entity %q", c.entityID)
}

// Disposed reports whether Dispose was called.
func (c *Coordinator) Disposed() bool { return c.disposed }

// EntityID returns the entity the state belongs to.
func (c *Coordinator) EntityID() string { return c.entityID }

// Cells returns the current cells. Init replaces them.
func (c *Coordinator) Cells() *Cells { return c.cells }

// SetRoutes replaces the ordered tab set. Registry and cache entries for
// ids that left the set are dropped and the active index is clamped.
func (c *Coordinator) SetRoutes(routes []TabID) {
	if c.disposed {
		return
	}
	c.routes = dedupeRoutes(routes)
	for _, id := range c.registry.prune(c.hasRoute) {
		c.cache.Delete(id)
		c.logf("ScrollSync: dropped stale tab %q", id)
	}
	if c.activeIndex >= len(c.routes) {
		c.activeIndex = len(c.routes) - 1
	}
	if c.activeIndex < 0 {
		c.activeIndex = 0
	}
}

// Routes returns the ordered tab set.
func (c *Coordinator) Routes() []TabID {
	return c.routes
}

func (c *Coordinator) hasRoute(id TabID) bool {
	for _, r := range c.routes {
		if r == id {
			return true
		}
	}
	return false
}

// ActiveTab returns the active index and its id. ok is false when the tab
// set is empty.
func (c *Coordinator) ActiveTab() (index int, id TabID, ok bool) {
	id, ok = c.activeID()
	return c.activeIndex, id, ok
}

func (c *Coordinator) activeID() (TabID, bool) {
	if c.activeIndex < 0 || c.activeIndex >= len(c.routes) {
		return "", false
	}
	return c.routes[c.activeIndex], true
}

// SetActiveTab makes index the active tab and reconciles every other tab
// before returning. Out-of-range indexes are ignored.
func (c *Coordinator) SetActiveTab(index int) {
	if c.disposed || index < 0 || index >= len(c.routes) {
		return
	}
	c.activeIndex = index
	c.engine.ReconcileAllInactive()
}

// Register stores the handle of a mounted tab. A tab that is not active is
// aligned at once. Ids outside the tab set are ignored.
func (c *Coordinator) Register(id TabID, h Handle) {
	if c.disposed {
		return
	}
	if !c.registry.Register(id, h) {
		c.logf("ScrollSync: ignored registration of unknown tab %q", id)
		return
	}
	c.engine.ReconcileTab(id)
}

// Unregister removes a tab's handle and its cached offset.
func (c *Coordinator) Unregister(id TabID) {
	if c.disposed {
		return
	}
	c.registry.Unregister(id)
	c.cache.Delete(id)
}

// HandleHeaderDrivenScroll is the active tab's scroll stream.
func (c *Coordinator) HandleHeaderDrivenScroll(value float64) {
	if c.disposed {
		return
	}
	c.engine.HandleHeaderDrivenScroll(value)
}

// ReconcileAllInactive runs one reconciliation pass.
func (c *Coordinator) ReconcileAllInactive() {
	if c.disposed {
		return
	}
	c.engine.ReconcileAllInactive()
}

// SetHeaderHeight records a header layout measurement and re-aligns the
// inactive tabs to it.
func (c *Coordinator) SetHeaderHeight(h float64) {
	if c.disposed {
		return
	}
	c.cells.HeaderHeight.Set(nonNegative(h))
	c.engine.ReconcileAllInactive()
}

// SetHeaderOverlayHeight records the pinned overlay height. The value is
// carried over to the next Init.
func (c *Coordinator) SetHeaderOverlayHeight(h float64) {
	if c.disposed {
		return
	}
	c.overlayHeight = nonNegative(h)
	c.cells.HeaderOverlayHeight.Set(c.overlayHeight)
}

// SetTabBarHeight records the tab bar height. The value is carried over to
// the next Init.
func (c *Coordinator) SetTabBarHeight(h float64) {
	if c.disposed {
		return
	}
	c.tabBarHeight = nonNegative(h)
	c.cells.TabBarHeight.Set(c.tabBarHeight)
}

// Registry exposes the handle registry.
func (c *Coordinator) Registry() *Registry { return c.registry }

// Offsets returns a copy of the last forced offsets.
func (c *Coordinator) Offsets() map[TabID]float64 { return c.cache.Snapshot() }

// Stats returns the engine counters for the current entity.
func (c *Coordinator) Stats() Stats { return c.engine.Stats() }

// Regime returns the regime of the last scroll event.
func (c *Coordinator) Regime() Regime { return c.engine.Regime() }

func (c *Coordinator) logf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

func dedupeRoutes(routes []TabID) []TabID {
	out := make([]TabID, 0, len(routes))
	seen := make(map[TabID]bool, len(routes))
	for _, id := range routes {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
