// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/indicators.go
// Summary: ▲/▼ glyphs marking content hidden above or below a list viewport.

package scroll

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelcine/texelui/core"
)

const (
	DefaultUpGlyph   = '▲'
	DefaultDownGlyph = '▼'
)

// IndicatorConfig configures the scroll indicators drawn on a list.
type IndicatorConfig struct {
	Left      bool // draw on the left edge instead of the right
	Style     tcell.Style
	UpGlyph   rune
	DownGlyph rune
}

// DefaultIndicatorConfig returns right-edge indicators with standard glyphs.
func DefaultIndicatorConfig(style tcell.Style) IndicatorConfig {
	return IndicatorConfig{Style: style, UpGlyph: DefaultUpGlyph, DownGlyph: DefaultDownGlyph}
}

// DrawIndicators marks the first visible row of rect when content is
// hidden above it and the last row when content is hidden below.
func DrawIndicators(painter *core.Painter, rect core.Rect, hiddenAbove, hiddenBelow bool, cfg IndicatorConfig) {
	if rect.Empty() {
		return
	}
	x := rect.X + rect.W - 1
	if cfg.Left {
		x = rect.X
	}
	if hiddenAbove {
		painter.SetCell(x, rect.Y, orGlyph(cfg.UpGlyph, DefaultUpGlyph), cfg.Style)
	}
	if hiddenBelow {
		painter.SetCell(x, rect.Y+rect.H-1, orGlyph(cfg.DownGlyph, DefaultDownGlyph), cfg.Style)
	}
}

func orGlyph(r, fallback rune) rune {
	if r == 0 {
		return fallback
	}
	return r
}
