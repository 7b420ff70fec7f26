// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/titledetail/settings.go
// Summary: Typed view of the "detail" config section.

package titledetail

import (
	"time"

	"github.com/framegrace/texelcine/config"
	"github.com/framegrace/texelcine/internal/effects"
	"github.com/framegrace/texelcine/internal/theming"
	"github.com/framegrace/texelcine/scrollsync"
	"github.com/framegrace/texelcine/texelui/scroll"
)

const section = "detail"

// Settings holds the layout and motion tuning of the detail screen.
type Settings struct {
	HeaderRows  int
	OverlayRows int
	TabBarRows  int

	// Fade divisors (k) for the backdrop and the header title.
	BackdropDivisor float64
	TitleDivisor    float64
	MinScale        float64
	MaxStretchScale float64

	OverscrollRows int
	Bounce         time.Duration
	Easing         string
	WheelRows      int

	Theme theming.Palette
}

// DefaultSettings mirrors the embedded defaults.
func DefaultSettings() Settings {
	return Settings{
		HeaderRows:      8,
		OverlayRows:     1,
		TabBarRows:      1,
		BackdropDivisor: 0.8,
		TitleDivisor:    2.0,
		MinScale:        scrollsync.DefaultMinScale,
		MaxStretchScale: scrollsync.DefaultMaxStretchScale,
		OverscrollRows:  3,
		Bounce:          220 * time.Millisecond,
		Easing:          "smoothstep",
		WheelRows:       3,
		Theme:           theming.Base(),
	}
}

// LoadSettings reads the detail section, falling back to defaults for
// missing or invalid values. Colours come from the theme_overrides section.
func LoadSettings(cfg config.Config) Settings {
	d := DefaultSettings()
	s := Settings{
		HeaderRows:      cfg.GetInt(section, "header_rows", d.HeaderRows),
		OverlayRows:     cfg.GetInt(section, "overlay_rows", d.OverlayRows),
		TabBarRows:      cfg.GetInt(section, "tab_bar_rows", d.TabBarRows),
		BackdropDivisor: cfg.GetFloat(section, "backdrop_fade_divisor", d.BackdropDivisor),
		TitleDivisor:    cfg.GetFloat(section, "title_fade_divisor", d.TitleDivisor),
		MinScale:        cfg.GetFloat(section, "min_scale", d.MinScale),
		MaxStretchScale: cfg.GetFloat(section, "max_stretch_scale", d.MaxStretchScale),
		OverscrollRows:  cfg.GetInt(section, "overscroll_rows", d.OverscrollRows),
		Bounce:          cfg.GetDuration(section, "bounce_ms", d.Bounce),
		Easing:          cfg.GetString(section, "easing", d.Easing),
		WheelRows:       cfg.GetInt(section, "wheel_rows", d.WheelRows),
		Theme:           theming.WithOverrides(d.Theme, cfg),
	}
	if s.HeaderRows < 0 {
		s.HeaderRows = 0
	}
	if s.OverlayRows < 0 {
		s.OverlayRows = 0
	}
	if s.TabBarRows < 1 {
		s.TabBarRows = 1
	}
	if s.OverscrollRows < 0 {
		s.OverscrollRows = 0
	}
	if s.Bounce < 0 {
		s.Bounce = 0
	}
	if s.WheelRows < 1 {
		s.WheelRows = 1
	}
	if effects.EasingByName(s.Easing) == nil {
		s.Easing = d.Easing
	}
	return s
}

func (s Settings) easing() effects.EasingFunc {
	return effects.EasingByName(s.Easing)
}

func (s Settings) listConfig() scroll.ListConfig {
	cfg := scroll.DefaultListConfig()
	cfg.OverscrollRows = s.OverscrollRows
	cfg.BounceDuration = s.Bounce
	cfg.Easing = s.easing()
	cfg.WheelRows = s.WheelRows
	return cfg
}

func (s Settings) overlayConfig(divisor float64) scrollsync.OverlayConfig {
	cfg := scrollsync.DefaultOverlayConfig(divisor)
	cfg.MinScale = s.MinScale
	cfg.MaxStretchScale = s.MaxStretchScale
	cfg.Easing = s.easing()
	return cfg
}
