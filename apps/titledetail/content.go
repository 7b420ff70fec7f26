// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/titledetail/content.go
// Summary: Builds the list lines of the Details, Reviews and Playlists tabs.

package titledetail

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelcine/catalog"
	"github.com/framegrace/texelcine/texelui/scroll"
)

// entity is everything the screen shows for one title.
type entity struct {
	title     catalog.Title
	reviews   []catalog.Review
	playlists []catalog.Playlist
}

func loadEntity(src Source, id string) (entity, error) {
	t, err := src.Title(id)
	if err != nil {
		return entity{}, err
	}
	reviews, err := src.Reviews(id)
	if err != nil {
		return entity{}, fmt.Errorf("load reviews: %w", err)
	}
	playlists, err := src.Playlists(id)
	if err != nil {
		return entity{}, fmt.Errorf("load playlists: %w", err)
	}
	return entity{title: t, reviews: reviews, playlists: playlists}, nil
}

// Lines are drawn one column in from each edge.
func contentWidth(cols int) int {
	return max(cols-2, 0)
}

func detailsLines(e entity, width int, pal palette) []scroll.Line {
	t := e.title
	var out []scroll.Line
	out = append(out, scroll.Text("Overview", pal.heading))
	for _, l := range wrapWords(t.Synopsis, width) {
		out = append(out, scroll.Text(l, pal.text))
	}
	out = append(out, scroll.Line{})

	facts := [][2]string{
		{"Year", fmt.Sprintf("%d", t.Year)},
		{"Runtime", fmt.Sprintf("%d min", t.RuntimeMin)},
		{"Genres", strings.Join(t.Genres, ", ")},
	}
	for _, f := range facts {
		out = append(out, scroll.Line{
			{Text: padRight(f[0], 10), Style: pal.dim},
			{Text: f[1], Style: pal.text},
		})
	}

	if len(t.Credits) > 0 {
		out = append(out, scroll.Line{}, scroll.Text("Cast & Crew", pal.heading))
		col := 0
		for _, c := range t.Credits {
			col = max(col, runewidth.StringWidth(c.Person))
		}
		for _, c := range t.Credits {
			out = append(out, scroll.Line{
				{Text: padRight(c.Person, col+2), Style: pal.text},
				{Text: c.Role, Style: pal.dim},
			})
		}
	}
	return out
}

func reviewLines(e entity, width int, pal palette, style *chroma.Style) []scroll.Line {
	if len(e.reviews) == 0 {
		return []scroll.Line{scroll.Text("No reviews yet.", pal.dim)}
	}
	var out []scroll.Line
	for i, r := range e.reviews {
		if i > 0 {
			out = append(out, scroll.Line{})
		}
		out = append(out, scroll.Line{
			{Text: stars(r.Rating) + "  ", Style: pal.accent},
			{Text: r.Author, Style: pal.heading},
		})
		for _, l := range markdownLines(r.Body, width-2, pal.text, style) {
			out = append(out, append(scroll.Line{{Text: "  ", Style: pal.text}}, l...))
		}
	}
	return out
}

func playlistLines(e entity, pal palette) []scroll.Line {
	if len(e.playlists) == 0 {
		return []scroll.Line{scroll.Text("Not on any playlist.", pal.dim)}
	}
	out := make([]scroll.Line, 0, len(e.playlists))
	for _, p := range e.playlists {
		out = append(out, scroll.Line{
			{Text: p.Name, Style: pal.heading},
			{Text: fmt.Sprintf("  by %s · %d titles", p.Owner, p.Items), Style: pal.dim},
		})
	}
	return out
}

func stars(rating int) string {
	rating = min(max(rating, 0), 5)
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

func padRight(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// wrapWords breaks text at spaces so no row is wider than width cells.
// Words longer than a row are split.
func wrapWords(text string, width int) []string {
	words := strings.Fields(text)
	if width <= 0 || len(words) == 0 {
		if len(words) == 0 {
			return nil
		}
		return []string{strings.Join(words, " ")}
	}
	var out []string
	var row strings.Builder
	col := 0
	for _, w := range words {
		ww := runewidth.StringWidth(w)
		if col > 0 && col+1+ww > width {
			out = append(out, row.String())
			row.Reset()
			col = 0
		}
		for ww > width {
			head := runewidth.Truncate(w, width, "")
			if head == "" {
				head = string([]rune(w)[:1])
			}
			out = append(out, head)
			w = w[len(head):]
			ww = runewidth.StringWidth(w)
		}
		if col > 0 {
			row.WriteByte(' ')
			col++
		}
		row.WriteString(w)
		col += ww
	}
	if row.Len() > 0 {
		out = append(out, row.String())
	}
	return out
}
