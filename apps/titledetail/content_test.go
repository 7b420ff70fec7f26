// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package titledetail

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelcine/catalog"
	"github.com/framegrace/texelcine/config"
	"github.com/framegrace/texelcine/texelui/scroll"
)

func lineText(l scroll.Line) string {
	var sb strings.Builder
	for _, s := range l {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func TestWrapWords(t *testing.T) {
	got := wrapWords("the quick brown fox jumps", 10)
	want := []string{"the quick", "brown fox", "jumps"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("wrapWords = %q, want %q", got, want)
	}
	got = wrapWords("abcdefghijkl", 5)
	if strings.Join(got, "|") != "abcde|fghij|kl" {
		t.Fatalf("long word = %q", got)
	}
	if got := wrapWords("   ", 5); got != nil {
		t.Fatalf("blank text = %q", got)
	}
}

func TestMarkdownLinesKeepTextAndWrap(t *testing.T) {
	body := "# Title\n\nSome *emphasis* and **strong** words that run on for a while."
	lines := markdownLines(body, 20, tcell.StyleDefault, nil)
	var joined []string
	for _, l := range lines {
		text := lineText(l)
		if w := runewidth.StringWidth(text); w > 20 {
			t.Fatalf("line %q is %d cells wide", text, w)
		}
		joined = append(joined, text)
	}
	all := strings.Join(joined, "")
	for _, want := range []string{"# Title", "*emphasis*", "**strong**"} {
		if !strings.Contains(all, want) {
			t.Fatalf("markdown text lost %q: %q", want, joined)
		}
	}
	if joined[0] != "# Title" || joined[1] != "" {
		t.Fatalf("heading and blank line not kept: %q", joined[:2])
	}
}

func TestTokenStyle(t *testing.T) {
	style := chromaStyle("")
	base := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	text := style.Get(chroma.Text)

	got := tokenStyle(chroma.StyleEntry{Colour: text.Colour}, text.Colour, base)
	if fg, _, _ := got.Decompose(); fg != tcell.ColorWhite {
		t.Fatalf("base-coloured token recoloured to %v", fg)
	}

	got = tokenStyle(chroma.StyleEntry{Colour: chroma.MustParseColour("#ff0000"), Bold: chroma.Yes}, text.Colour, base)
	fg, _, attrs := got.Decompose()
	if fg != tcell.NewRGBColor(0xff, 0, 0) || attrs&tcell.AttrBold == 0 {
		t.Fatalf("token style = %v %v", fg, attrs)
	}
}

func TestReviewLines(t *testing.T) {
	pal := newPalette(nil)
	e := entity{reviews: []catalog.Review{
		{Author: "a", Rating: 4, Body: "fine"},
		{Author: "b", Rating: 9, Body: "great"},
	}}
	lines := reviewLines(e, 40, pal, chromaStyle(""))
	if got := lineText(lines[0]); got != "★★★★☆  a" {
		t.Fatalf("first header = %q", got)
	}
	if got := lineText(lines[1]); got != "  fine" {
		t.Fatalf("body = %q", got)
	}
	if got := lineText(lines[3]); got != "★★★★★  b" {
		t.Fatalf("rating not clamped: %q", got)
	}

	empty := reviewLines(entity{}, 40, pal, nil)
	if len(empty) != 1 || lineText(empty[0]) != "No reviews yet." {
		t.Fatalf("empty reviews = %v", empty)
	}
}

func TestDetailsLinesAlignCredits(t *testing.T) {
	e := entity{title: catalog.Title{
		Synopsis: "short",
		Year:     1999, RuntimeMin: 90, Genres: []string{"Drama"},
		Credits: []catalog.Credit{{Person: "Al", Role: "Director"}, {Person: "Beatrix", Role: "Lead"}},
	}}
	lines := detailsLines(e, 40, newPalette(nil))
	var credits []string
	for _, l := range lines {
		if s := lineText(l); strings.HasSuffix(s, "Director") || strings.HasSuffix(s, "Lead") {
			credits = append(credits, s)
		}
	}
	if len(credits) != 2 || credits[0] != "Al       Director" || credits[1] != "Beatrix  Lead" {
		t.Fatalf("credits = %q", credits)
	}
}

func TestLoadSettingsFallsBack(t *testing.T) {
	cfg := config.Config{
		"detail": map[string]interface{}{
			"header_rows":  5.0,
			"tab_bar_rows": 0.0,
			"wheel_rows":   -2.0,
			"easing":       "bogus",
			"bounce_ms":    100.0,
		},
	}
	s := LoadSettings(cfg)
	if s.HeaderRows != 5 || s.TabBarRows != 1 || s.WheelRows != 1 {
		t.Fatalf("settings = %+v", s)
	}
	if s.Easing != "smoothstep" || s.Bounce.Milliseconds() != 100 {
		t.Fatalf("easing/bounce = %q %v", s.Easing, s.Bounce)
	}
	if s.BackdropDivisor != 0.8 || s.TitleDivisor != 2 {
		t.Fatalf("divisors = %v %v", s.BackdropDivisor, s.TitleDivisor)
	}
}

func TestThemeOverridesReachPalette(t *testing.T) {
	cfg := config.Config{
		"theme_overrides": map[string]interface{}{"accent": "#ff0000"},
	}
	pal := newPalette(LoadSettings(cfg).Theme)
	if _, bg, _ := pal.tabActive.Decompose(); bg != tcell.NewRGBColor(0xff, 0, 0) {
		t.Fatalf("active tab background = %v", bg)
	}
}
