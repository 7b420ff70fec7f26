// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollsync/offsets.go
// Summary: Last offset forced onto each inactive tab.
// Notes: The engine consults it to skip tabs already aligned to the
// collapsed header.

package scrollsync

// OffsetCache remembers the last offset forced onto each tab.
type OffsetCache struct {
	last map[TabID]float64
}

// NewOffsetCache returns an empty cache.
func NewOffsetCache() *OffsetCache {
	return &OffsetCache{last: make(map[TabID]float64)}
}

// Get returns the last forced offset for id.
func (c *OffsetCache) Get(id TabID) (float64, bool) {
	v, ok := c.last[id]
	return v, ok
}

// Set records offset as the last value forced onto id.
func (c *OffsetCache) Set(id TabID, offset float64) {
	c.last[id] = offset
}

// Delete forgets id. Unknown ids are ignored.
func (c *OffsetCache) Delete(id TabID) {
	delete(c.last, id)
}

// Len returns the number of cached tabs.
func (c *OffsetCache) Len() int {
	return len(c.last)
}

// Snapshot copies the cache.
func (c *OffsetCache) Snapshot() map[TabID]float64 {
	out := make(map[TabID]float64, len(c.last))
	for id, v := range c.last {
		out[id] = v
	}
	return out
}

// Reset forgets every entry.
func (c *OffsetCache) Reset() {
	c.last = make(map[TabID]float64)
}
