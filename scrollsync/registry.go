// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollsync/registry.go
// Summary: Tab identity to scroll handle registry.
// Notes: The registry never owns a handle. Tab views register on mount and
// unregister on unmount; a handle that reports itself dead is skipped.

package scrollsync

import "sort"

// TabID is the stable key of one tab route.
type TabID string

// Handle repositions a tab's list.
type Handle interface {
	ScrollToOffset(offset float64, animated bool)
}

// Liveness is implemented by handles that can outlive their view. A handle
// returning false is treated as missing.
type Liveness interface {
	Alive() bool
}

// Registry maps tab ids to handles. Like the widgets that feed it, it is
// driven from the UI event goroutine and takes no locks.
type Registry struct {
	entries map[TabID]Handle
	allowed func(TabID) bool
}

// NewRegistry returns an empty registry. allowed reports whether an id
// belongs to the current tab set; nil accepts every id.
func NewRegistry(allowed func(TabID) bool) *Registry {
	return &Registry{
		entries: make(map[TabID]Handle),
		allowed: allowed,
	}
}

// Register stores h under id. Unknown ids and nil handles are ignored and
// reported as false.
func (r *Registry) Register(id TabID, h Handle) bool {
	if h == nil {
		return false
	}
	if r.allowed != nil && !r.allowed(id) {
		return false
	}
	r.entries[id] = h
	return true
}

// Unregister removes id. Missing ids are ignored.
func (r *Registry) Unregister(id TabID) {
	delete(r.entries, id)
}

// TryGet returns the live handle for id, if any.
func (r *Registry) TryGet(id TabID) (Handle, bool) {
	h, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	if l, ok := h.(Liveness); ok && !l.Alive() {
		return nil, false
	}
	return h, true
}

// Len returns the number of entries, live or not.
func (r *Registry) Len() int {
	return len(r.entries)
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []TabID {
	ids := make([]TabID, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// prune drops entries rejected by keep.
func (r *Registry) prune(keep func(TabID) bool) []TabID {
	var dropped []TabID
	for id := range r.entries {
		if !keep(id) {
			delete(r.entries, id)
			dropped = append(dropped, id)
		}
	}
	return dropped
}
