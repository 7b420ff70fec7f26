// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/theming/palette.go
// Summary: Semantic colour palette with per-app overrides from config.

package theming

import (
	"log"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/framegrace/texelcine/config"
)

// Palette maps semantic colour names to colours.
type Palette map[string]colorful.Color

// Semantic names understood by the apps.
const (
	BgBase      = "bg.base"
	BgMantle    = "bg.mantle"
	BgCrust     = "bg.crust"
	TextPrimary = "text.primary"
	TextSubtle  = "text.subtle"
	TextMuted   = "text.muted"
	Accent      = "accent"
	AccentAlt   = "accent.secondary"
	Highlight   = "highlight"
)

// Catppuccin mocha.
var mocha = map[string]string{
	BgBase:      "#1e1e2e",
	BgMantle:    "#181825",
	BgCrust:     "#11111b",
	TextPrimary: "#cdd6f4",
	TextSubtle:  "#a6adc8",
	TextMuted:   "#7f849c",
	Accent:      "#89b4fa",
	AccentAlt:   "#b4befe",
	Highlight:   "#f9e2af",
}

// Base returns a fresh copy of the built-in palette.
func Base() Palette {
	p := make(Palette, len(mocha))
	for name, hex := range mocha {
		c, err := colorful.Hex(hex)
		if err != nil {
			panic("theming: bad built-in colour " + name)
		}
		p[name] = c
	}
	return p
}

// WithOverrides returns base with the "theme_overrides" section of cfg
// applied. Values are "#rrggbb" strings; invalid entries are logged and
// skipped.
func WithOverrides(base Palette, cfg config.Config) Palette {
	out := make(Palette, len(base))
	for k, v := range base {
		out[k] = v
	}
	for name, raw := range cfg.Section("theme_overrides") {
		hex, ok := raw.(string)
		if !ok {
			log.Printf("Theme: Ignoring non-string override %q", name)
			continue
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			log.Printf("Theme: Ignoring override %q: %v", name, err)
			continue
		}
		out[name] = c
	}
	return out
}

// ForApp returns the base palette merged with the app's config overrides.
func ForApp(app string) Palette {
	if app == "" {
		return Base()
	}
	return WithOverrides(Base(), config.App(app))
}

// Color returns the named colour, or black when missing.
func (p Palette) Color(name string) colorful.Color {
	return p[name]
}
