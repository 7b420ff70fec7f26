// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/titledetail/render.go
// Summary: Draws the pinned overlay, collapsing header and tab bar from the
// shared scroll cells.
// Notes: Rows from the top are the overlay, then the header, then the tab
// bar. The header slides up by scrollY until only the tab bar remains under
// the overlay; a negative scrollY stretches it down instead.

package titledetail

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelcine/internal/theming"
	"github.com/framegrace/texelcine/scrollsync"
	"github.com/framegrace/texelcine/texelui/core"
)

type palette struct {
	bg, fg, overlayBg colorful.Color

	base, text, dim, heading, accent tcell.Style
	tabBar, tabActive, overlay       tcell.Style
}

func newPalette(theme theming.Palette) palette {
	if theme == nil {
		theme = theming.Base()
	}
	bg := theme.Color(theming.BgBase)
	fg := theme.Color(theming.TextPrimary)
	overlayBg := theme.Color(theming.BgCrust)
	base := tcell.StyleDefault.Background(toTcell(bg)).Foreground(toTcell(fg))
	return palette{
		bg:        bg,
		fg:        fg,
		overlayBg: overlayBg,
		base:      base,
		text:      base,
		dim:       base.Foreground(toTcell(theme.Color(theming.TextMuted))),
		heading:   base.Foreground(toTcell(theme.Color(theming.AccentAlt))).Bold(true),
		accent:    base.Foreground(toTcell(theme.Color(theming.Highlight))),
		tabBar:    tcell.StyleDefault.Background(toTcell(theme.Color(theming.BgMantle))).Foreground(toTcell(theme.Color(theming.TextSubtle))),
		tabActive: tcell.StyleDefault.Background(toTcell(theme.Color(theming.Accent))).Foreground(toTcell(overlayBg)).Bold(true),
		overlay:   tcell.StyleDefault.Background(toTcell(overlayBg)).Foreground(toTcell(fg)),
	}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// mix returns a blended toward b by t in [0,1].
func mix(a, b colorful.Color, t float64) tcell.Color {
	return toTcell(a.BlendRgb(b, math.Max(0, math.Min(1, t))))
}

// tint derives a stable backdrop colour from the entity id.
func tint(id string) colorful.Color {
	h := fnv.New32a()
	h.Write([]byte(id))
	return colorful.Hsv(float64(h.Sum32()%360), 0.55, 0.42)
}

// layout holds the row positions of one frame.
type layout struct {
	cols, rows int
	overlay    int // pinned rows at the top
	header     int // collapsible rows
	tabBar     int
	collapsed  int // header rows hidden under the overlay
	stretch    int // extra rows while overscrolled
}

func (l layout) headerTop() int { return l.overlay - l.collapsed }
func (l layout) tabBarY() int   { return l.overlay + l.header - l.collapsed + l.stretch }
func (l layout) listTop() int   { return l.tabBarY() + l.tabBar }

func frameLayout(cols, rows, overlay, header, tabBar int, g scrollsync.Geometry) layout {
	y := int(math.Round(g.ScrollY))
	return layout{
		cols:      cols,
		rows:      rows,
		overlay:   overlay,
		header:    header,
		tabBar:    tabBar,
		collapsed: min(max(y, 0), header),
		stretch:   max(-y, 0),
	}
}

// drawBackdrop fills the header area. Opacity blends the tint into the
// page background, Scale insets the edges and the stretch lightens it and
// drifts the grain by TranslateY.
func drawBackdrop(p *core.Painter, l layout, st scrollsync.HeaderState, pal palette, base colorful.Color) {
	rect := core.Rect{X: 0, Y: l.headerTop(), W: l.cols, H: l.tabBarY() - l.headerTop()}
	if rect.Empty() {
		return
	}
	inset := int(math.Round((1 - st.Scale) * float64(l.cols) / 2))
	glow := (st.Stretch.Scale - 1) * 0.35
	shift := int(math.Round(st.Stretch.TranslateY))
	white := colorful.Color{R: 1, G: 1, B: 1}

	for row := 0; row < rect.H; row++ {
		// Darker toward the tab bar.
		shade := float64(row) / float64(max(rect.H, 1))
		c := base.BlendRgb(pal.bg, 0.6*shade).BlendRgb(white, glow)
		bgc := mix(pal.bg, c, st.Opacity)
		grain := mix(pal.bg, c.BlendRgb(white, 0.25), st.Opacity)
		y := rect.Y + row
		for x := 0; x < rect.W; x++ {
			style := pal.base.Background(bgc)
			if x < inset || x >= rect.W-inset {
				p.SetCell(x, y, ' ', pal.base)
				continue
			}
			ch := ' '
			if speck(x, row+shift) {
				ch = '·'
				style = style.Foreground(grain)
			}
			p.SetCell(x, y, ch, style)
		}
	}
}

// speck is a fixed pseudo-random grain pattern.
func speck(x, y int) bool {
	v := uint32(x*73856093) ^ uint32(y*19349663)
	return v%23 == 0
}

// drawHeaderText writes the title block at the bottom of the header,
// faded by st.Opacity.
func drawHeaderText(p *core.Painter, l layout, e entity, st scrollsync.HeaderState, pal palette) {
	if st.Opacity <= 0.05 || l.header == 0 {
		return
	}
	t := e.title
	fg := mix(pal.bg, pal.fg, st.Opacity)
	rows := []struct {
		text  string
		style tcell.Style
	}{
		{t.Name, pal.base.Foreground(fg).Bold(true)},
		{fmt.Sprintf("%d · %d min · %s", t.Year, t.RuntimeMin, strings.Join(t.Genres, ", ")), pal.base.Foreground(fg)},
		{t.Tagline, pal.base.Foreground(fg).Italic(true)},
	}
	x := 2 + int(math.Round((1-st.Scale)*float64(l.cols)/2))
	y := l.tabBarY() - len(rows)
	for _, r := range rows {
		if y >= l.headerTop() {
			p.DrawTextFit(x, y, l.cols-x-1, r.text, r.style.Background(styleBackground(p, x, y)))
		}
		y++
	}
}

// styleBackground keeps text cells on the backdrop colour beneath them.
func styleBackground(p *core.Painter, x, y int) tcell.Color {
	_, bg, _ := p.Cell(x, y).Style.Decompose()
	return bg
}

// drawTabBar draws the labels and returns their column ranges.
func drawTabBar(p *core.Painter, l layout, tabs []*tab, active int, pal palette) [][2]int {
	y := l.tabBarY()
	p.Fill(core.Rect{X: 0, Y: y, W: l.cols, H: l.tabBar}, ' ', pal.tabBar)
	hits := make([][2]int, len(tabs))
	x := 1
	for i, t := range tabs {
		label := " " + t.label() + " "
		style := pal.tabBar
		if i == active {
			style = pal.tabActive
		}
		w := p.DrawText(x, y, label, style)
		hits[i] = [2]int{x, x + w}
		x += w + 1
	}
	for row := 1; row < l.tabBar; row++ {
		for col := 0; col < l.cols; col++ {
			ch := '─'
			if col >= hits[active][0] && col < hits[active][1] {
				ch = '━'
			}
			p.SetCell(col, y+row, ch, pal.tabBar)
		}
	}
	return hits
}

// drawOverlay paints the pinned rows. The compact title fades in as the
// header title fades out.
func drawOverlay(p *core.Painter, l layout, e entity, pos, total int, st scrollsync.HeaderState, pal palette) {
	if l.overlay <= 0 {
		return
	}
	p.Fill(core.Rect{X: 0, Y: 0, W: l.cols, H: l.overlay}, ' ', pal.overlay)
	left := " ◂ texelcine"
	p.DrawText(0, 0, left, pal.overlay)
	right := fmt.Sprintf("%d/%d ", pos+1, total)
	rw := runewidth.StringWidth(right)
	p.DrawText(l.cols-rw, 0, right, pal.overlay)

	reveal := 1 - st.Opacity
	lw := runewidth.StringWidth(left) + 2
	avail := l.cols - lw - rw - 2
	if reveal <= 0.05 || avail <= 0 {
		return
	}
	title := e.title.Name
	style := pal.overlay.Foreground(mix(pal.overlayBg, pal.fg, reveal)).Bold(true)
	w := min(runewidth.StringWidth(title), avail)
	x := max((l.cols-w)/2, lw)
	p.DrawTextFit(x, 0, avail, title, style)
}
