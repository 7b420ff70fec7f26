// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollsync/overlay.go
// Summary: Derives header fade, zoom and overscroll stretch from the shared
// scroll cells. Pure; never writes to the cells.

package scrollsync

import (
	"math"

	"github.com/framegrace/texelcine/internal/effects"
)

const (
	DefaultMinScale        = 0.98
	DefaultMaxStretchScale = 3.0
)

// OverlayConfig tunes one header derivation. Divisor is the k of the fade
// range (header - overlay - fixed) / k; headers that fade at different
// speeds carry their own value.
type OverlayConfig struct {
	Divisor         float64
	MinScale        float64
	MaxStretchScale float64
	Easing          effects.EasingFunc // applied to fade progress; nil is linear
}

// DefaultOverlayConfig returns a linear config with the given divisor.
func DefaultOverlayConfig(divisor float64) OverlayConfig {
	return OverlayConfig{
		Divisor:         divisor,
		MinScale:        DefaultMinScale,
		MaxStretchScale: DefaultMaxStretchScale,
	}
}

// OverlayInput carries the values a header reads.
type OverlayInput struct {
	ScrollY                   float64
	HeaderHeight              float64
	HeaderOverlayHeight       float64
	ExternalFixedHeaderHeight float64
}

// InputFrom builds an OverlayInput from a geometry snapshot.
func InputFrom(g Geometry, externalFixed float64) OverlayInput {
	return OverlayInput{
		ScrollY:                   g.ScrollY,
		HeaderHeight:              g.HeaderHeight,
		HeaderOverlayHeight:       g.HeaderOverlayHeight,
		ExternalFixedHeaderHeight: externalFixed,
	}
}

// Stretch describes the rubber-band effect while overscrolled.
type Stretch struct {
	Amount     float64 // max(-scrollY, 0)
	Scale      float64 // 1 + Amount/header, capped
	TranslateY float64 // -Amount/2
}

// HeaderState is the visual state of a header for one scroll position.
type HeaderState struct {
	Opacity  float64 // 1 at rest, 0 once faded out
	Scale    float64 // 1 down to MinScale over the first half of the fade
	Collapse float64 // scrollY / header, in [0,1]
	Stretch  Stretch
}

// Derive computes the header state. Zero geometry is tolerated: every
// divisor is clamped to at least 1.
func Derive(in OverlayInput, cfg OverlayConfig) HeaderState {
	k := cfg.Divisor
	if k <= 0 || math.IsNaN(k) {
		k = 1
	}
	minScale := cfg.MinScale
	if minScale <= 0 || minScale > 1 {
		minScale = DefaultMinScale
	}
	maxStretch := cfg.MaxStretchScale
	if maxStretch < 1 {
		maxStretch = DefaultMaxStretchScale
	}

	header := nonNegative(in.HeaderHeight)
	fixed := nonNegative(in.HeaderOverlayHeight) + nonNegative(in.ExternalFixedHeaderHeight)
	fadeEnd := atLeastOne((header - fixed) / k)
	y := math.Max(in.ScrollY, 0)

	progress := clamp01(y / fadeEnd)
	if cfg.Easing != nil {
		progress = clamp01(cfg.Easing(progress))
	}
	zoom := clamp01(y / atLeastOne(fadeEnd/2))

	stretch := math.Max(-in.ScrollY, 0)
	return HeaderState{
		Opacity:  1 - progress,
		Scale:    1 - (1-minScale)*zoom,
		Collapse: clamp01(y / atLeastOne(header)),
		Stretch: Stretch{
			Amount:     stretch,
			Scale:      math.Min(1+stretch/atLeastOne(header), maxStretch),
			TranslateY: -stretch / 2,
		},
	}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func atLeastOne(v float64) float64 {
	if v < 1 || math.IsNaN(v) {
		return 1
	}
	return v
}
