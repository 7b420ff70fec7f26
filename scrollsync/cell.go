// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollsync/cell.go
// Summary: Observable scalar cells shared between the scroll producer and
// header renderers.
// Notes: Writes happen on the event goroutine; reads may come from a render
// goroutine, so the value is stored as an atomic bit pattern.

package scrollsync

import (
	"math"
	"sync"
	"sync/atomic"
)

// Cell is a float64 that can be read from any goroutine and observed.
// A single logical producer writes it; listeners run synchronously on the
// writer's goroutine.
type Cell struct {
	bits atomic.Uint64

	mu        sync.RWMutex
	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn func(float64)
}

// NewCell returns a cell holding initial.
func NewCell(initial float64) *Cell {
	c := &Cell{}
	c.bits.Store(math.Float64bits(initial))
	return c
}

// Get returns the most recently committed value.
func (c *Cell) Get() float64 {
	return math.Float64frombits(c.bits.Load())
}

// Set stores v and notifies listeners in subscription order when the value
// changed.
func (c *Cell) Set(v float64) {
	old := c.bits.Swap(math.Float64bits(v))
	if old == math.Float64bits(v) {
		return
	}
	c.mu.RLock()
	fns := make([]func(float64), 0, len(c.listeners))
	for _, l := range c.listeners {
		fns = append(fns, l.fn)
	}
	c.mu.RUnlock()
	for _, fn := range fns {
		fn(v)
	}
}

// Subscribe registers fn for change notifications. The returned function
// removes the subscription and is safe to call more than once.
func (c *Cell) Subscribe(fn func(float64)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners = append(c.listeners, listener{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, l := range c.listeners {
			if l.id == id {
				c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

// Cells groups the scroll position and header geometry of one screen.
type Cells struct {
	ScrollY             *Cell
	HeaderHeight        *Cell
	HeaderOverlayHeight *Cell
	TabBarHeight        *Cell
}

func newCells(overlayHeight, tabBarHeight float64) *Cells {
	return &Cells{
		ScrollY:             NewCell(0),
		HeaderHeight:        NewCell(0),
		HeaderOverlayHeight: NewCell(nonNegative(overlayHeight)),
		TabBarHeight:        NewCell(nonNegative(tabBarHeight)),
	}
}

// Snapshot reads every cell once. Values are individually consistent; the
// group is not read atomically.
func (c *Cells) Snapshot() Geometry {
	return Geometry{
		ScrollY:             c.ScrollY.Get(),
		HeaderHeight:        c.HeaderHeight.Get(),
		HeaderOverlayHeight: c.HeaderOverlayHeight.Get(),
		TabBarHeight:        c.TabBarHeight.Get(),
	}
}

// Geometry is a plain copy of Cells.
type Geometry struct {
	ScrollY             float64
	HeaderHeight        float64
	HeaderOverlayHeight float64
	TabBarHeight        float64
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
