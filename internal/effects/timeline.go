// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/timeline.go
// Summary: Thread-safe animation timeline with configurable easing functions.
// Usage: Drives list bounce-back and animated scroll offsets; header fade
// curves reuse the easing functions.
// Notes: Callers pass the frame time so tests can step animations.

package effects

import (
	"sync"
	"time"
)

// EasingFunc maps progress [0,1] to eased progress [0,1].
type EasingFunc func(t float64) float64

var (
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseSmoothstep accelerates at the start and decelerates at the end.
	EaseSmoothstep EasingFunc = func(t float64) float64 {
		return t * t * (3.0 - 2.0*t)
	}

	EaseSmootherstep EasingFunc = func(t float64) float64 {
		return t * t * t * (t*(t*6.0-15.0) + 10.0)
	}

	EaseInQuad EasingFunc = func(t float64) float64 {
		return t * t
	}

	EaseOutQuad EasingFunc = func(t float64) float64 {
		return t * (2.0 - t)
	}

	EaseOutCubic EasingFunc = func(t float64) float64 {
		t1 := t - 1.0
		return t1*t1*t1 + 1.0
	}

	EaseInOutCubic EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 4.0 * t * t * t
		}
		t1 := 2.0*t - 2.0
		return 1.0 + t1*t1*t1*0.5
	}
)

// EasingByName resolves a config name. Unknown names return nil.
func EasingByName(name string) EasingFunc {
	switch name {
	case "linear":
		return EaseLinear
	case "smoothstep":
		return EaseSmoothstep
	case "smootherstep":
		return EaseSmootherstep
	case "ease-in":
		return EaseInQuad
	case "ease-out":
		return EaseOutQuad
	case "ease-out-cubic":
		return EaseOutCubic
	case "cubic", "ease-in-out":
		return EaseInOutCubic
	default:
		return nil
	}
}

// keyState tracks animation state for a single key.
type keyState struct {
	current   float64
	start     float64
	target    float64
	startTime time.Time
	duration  time.Duration
	easing    EasingFunc
}

// Timeline holds per-key animated values.
type Timeline struct {
	states         map[interface{}]*keyState
	mu             sync.RWMutex
	defaultEasing  EasingFunc
	defaultInitial float64
}

// NewTimeline creates a timeline. Keys never animated read as defaultInitial.
func NewTimeline(defaultInitial float64) *Timeline {
	return &Timeline{
		states:         make(map[interface{}]*keyState),
		defaultEasing:  EaseSmoothstep,
		defaultInitial: defaultInitial,
	}
}

// SetDefaultEasing replaces the easing used when AnimateTo gets nil.
func (tl *Timeline) SetDefaultEasing(fn EasingFunc) {
	if fn == nil {
		return
	}
	tl.mu.Lock()
	tl.defaultEasing = fn
	tl.mu.Unlock()
}

// Set jumps key to value with no animation.
func (tl *Timeline) Set(key interface{}, value float64) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.states[key] = &keyState{current: value, start: value, target: value}
}

// AnimateTo starts an animation from the key's current value towards target
// and returns the value at now. A zero duration jumps to target.
func (tl *Timeline) AnimateTo(key interface{}, target float64, duration time.Duration, easing EasingFunc, now time.Time) float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	if easing == nil {
		easing = tl.defaultEasing
	}
	state := tl.states[key]
	if state == nil {
		state = &keyState{current: tl.defaultInitial, start: tl.defaultInitial}
		tl.states[key] = state
	} else {
		state.current = tl.computeValue(state, now)
	}

	state.start = state.current
	state.target = target
	state.startTime = now
	state.duration = duration
	state.easing = easing

	if duration <= 0 || state.current == target {
		state.current = target
		state.duration = 0
	}
	return state.current
}

// Get returns the value of key at now.
func (tl *Timeline) Get(key interface{}, now time.Time) float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	state := tl.states[key]
	if state == nil {
		return tl.defaultInitial
	}
	state.current = tl.computeValue(state, now)
	return state.current
}

// Target returns where key is heading.
func (tl *Timeline) Target(key interface{}) float64 {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	if state := tl.states[key]; state != nil {
		return state.target
	}
	return tl.defaultInitial
}

// IsAnimating reports whether key has not reached its target at now.
func (tl *Timeline) IsAnimating(key interface{}, now time.Time) bool {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	state := tl.states[key]
	if state == nil || state.duration <= 0 {
		return false
	}
	return now.Sub(state.startTime) < state.duration && state.current != state.target
}

// HasActiveAnimations reports whether any key is still moving at now.
func (tl *Timeline) HasActiveAnimations(now time.Time) bool {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	for _, state := range tl.states {
		if state.duration > 0 && now.Sub(state.startTime) < state.duration && state.current != state.target {
			return true
		}
	}
	return false
}

// Reset forgets key.
func (tl *Timeline) Reset(key interface{}) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	delete(tl.states, key)
}

// Clear forgets every key.
func (tl *Timeline) Clear() {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.states = make(map[interface{}]*keyState)
}

// computeValue must be called with the lock held.
func (tl *Timeline) computeValue(state *keyState, now time.Time) float64 {
	if state.duration <= 0 {
		return state.target
	}
	if now.Before(state.startTime) {
		return state.start
	}
	elapsed := now.Sub(state.startTime)
	if elapsed >= state.duration {
		return state.target
	}

	progress := float64(elapsed) / float64(state.duration)
	easing := state.easing
	if easing == nil {
		easing = tl.defaultEasing
	}
	return state.start + (state.target-state.start)*easing(progress)
}
