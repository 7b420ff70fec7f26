// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/app.go
// Summary: Contract between a runnable app and the shell hosting it.

package core

import "github.com/gdamore/tcell/v2"

// App is a full-screen program driven by a host loop. Run blocks until
// Stop; Render is called from the host's event goroutine.
type App interface {
	Run() error
	Stop()
	Resize(cols, rows int)
	Render() [][]Cell
	GetTitle() string
	HandleKey(ev *tcell.EventKey)
	SetRefreshNotifier(refreshChan chan<- bool)
}

// MouseHandler is implemented by apps that accept mouse input.
type MouseHandler interface {
	HandleMouse(ev *tcell.EventMouse)
}

// PasteHandler is implemented by apps that accept bracketed paste.
type PasteHandler interface {
	HandlePaste(data []byte)
}
