// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/titledetail/markdown.go
// Summary: Colours markdown review bodies with chroma and wraps them into
// list lines.

package titledetail

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelcine/texelui/scroll"
)

const defaultStyleName = "catppuccin-mocha"

// chromaStyle resolves a style name to a Chroma style, falling back to the default.
func chromaStyle(name string) *chroma.Style {
	if name == "" {
		name = defaultStyleName
	}
	return styles.Get(name)
}

// getLexer returns a Chroma lexer by name, or auto-detects from content.
func getLexer(name, text string) chroma.Lexer {
	if name != "" {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

// markdownLines tokenises body as markdown and returns it as styled lines
// wrapped to width cells. Tokens in the style's base colour keep base.
func markdownLines(body string, width int, base tcell.Style, style *chroma.Style) []scroll.Line {
	if body == "" {
		return nil
	}
	if style == nil {
		style = chromaStyle("")
	}
	lexer := chroma.Coalesce(getLexer("markdown", body))
	tokens, err := chroma.Tokenise(lexer, nil, body)
	if err != nil {
		return plainLines(body, width, base)
	}

	baseColour := style.Get(chroma.Text).Colour
	var out []scroll.Line
	cur := scroll.Line{}
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		st := tokenStyle(style.Get(tok.Type), baseColour, base)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				out = append(out, wrapLine(cur, width)...)
				cur = scroll.Line{}
			}
			if part != "" {
				cur = append(cur, scroll.Span{Text: part, Style: st})
			}
		}
	}
	if len(cur) > 0 {
		out = append(out, wrapLine(cur, width)...)
	}
	return out
}

func tokenStyle(entry chroma.StyleEntry, baseColour chroma.Colour, base tcell.Style) tcell.Style {
	st := base
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	if entry.Colour.IsSet() && entry.Colour != baseColour {
		st = st.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue()),
		))
	}
	return st
}

func plainLines(body string, width int, style tcell.Style) []scroll.Line {
	var out []scroll.Line
	for _, l := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		out = append(out, wrapLine(scroll.Text(l, style), width)...)
	}
	return out
}

// wrapLine breaks a line into rows of at most width cells, splitting spans
// where needed. Blank lines are kept as a single empty row.
func wrapLine(line scroll.Line, width int) []scroll.Line {
	if width <= 0 || len(line) == 0 {
		return []scroll.Line{line}
	}
	var out []scroll.Line
	row := scroll.Line{}
	col := 0
	for _, span := range line {
		var sb strings.Builder
		for _, r := range span.Text {
			w := runewidth.RuneWidth(r)
			if col+w > width && col > 0 {
				if sb.Len() > 0 {
					row = append(row, scroll.Span{Text: sb.String(), Style: span.Style})
					sb.Reset()
				}
				out = append(out, row)
				row = scroll.Line{}
				col = 0
			}
			sb.WriteRune(r)
			col += w
		}
		if sb.Len() > 0 {
			row = append(row, scroll.Span{Text: sb.String(), Style: span.Style})
		}
	}
	return append(out, row)
}
