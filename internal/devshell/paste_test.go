// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package devshell

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestPasteCollectorGathersBetweenMarkers(t *testing.T) {
	var p pasteCollector
	if _, done := p.mark(tcell.NewEventPaste(true)); done || !p.active {
		t.Fatalf("start marker not recorded")
	}
	for _, r := range "hi" {
		p.add(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	p.add(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	p.add(tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone))

	data, done := p.mark(tcell.NewEventPaste(false))
	if !done || p.active {
		t.Fatalf("end marker not recorded")
	}
	if string(data) != "hi\né" {
		t.Fatalf("paste = %q", data)
	}
	if p.buf != nil {
		t.Fatalf("buffer not cleared")
	}
}
