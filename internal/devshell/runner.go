// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/runner.go
// Summary: Hosts a single app full screen on a local tcell screen.
// Notes: The app renders into its own buffer; the shell copies it to the
// screen after every input event and whenever the app asks for a refresh.

package devshell

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelcine/apps/titledetail"
	"github.com/framegrace/texelcine/texel"
)

// Builder constructs a texel.App, optionally using CLI args.
type Builder func(args []string) (texel.App, error)

var registry = map[string]Builder{
	"titledetail": func(args []string) (texel.App, error) {
		titleID := ""
		if len(args) > 0 {
			titleID = args[0]
		}
		return titledetail.Open(titleID, "")
	},
}

// Register adds or replaces a named builder.
func Register(name string, b Builder) {
	registry[name] = b
}

// Apps lists the registered builder names.
func Apps() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunApp finds a registered builder by name and runs it.
func RunApp(name string, args []string) error {
	build, ok := registry[name]
	if !ok {
		return fmt.Errorf("unknown app %q (have %s)", name, strings.Join(Apps(), ", "))
	}
	return Run(build, args)
}

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil
// restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		factory = tcell.NewScreen
	}
	screenFactory = factory
}

// Run builds the app and drives it until Ctrl-C or until app.Run returns.
func Run(build Builder, args []string) error {
	app, err := build(args)
	if err != nil {
		return err
	}
	defer app.Stop()

	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	defer screen.DisableMouse()
	screen.EnablePaste()

	s := &session{app: app, screen: screen}
	return s.loop()
}

type session struct {
	app    texel.App
	screen tcell.Screen
	paste  pasteCollector
}

func (s *session) loop() error {
	s.app.Resize(s.screen.Size())
	refresh := make(chan bool, 1)
	s.app.SetRefreshNotifier(refresh)
	s.draw()

	runErr := make(chan error, 1)
	go func() {
		err := s.app.Run()
		runErr <- err
		// Wake PollEvent so the loop sees the exit.
		s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()
	go func() {
		for range refresh {
			s.screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}()

	for {
		select {
		case err := <-runErr:
			return err
		default:
		}
		ev := s.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if quit := s.handle(ev); quit {
			return nil
		}
	}
}

// handle dispatches one screen event and reports whether to quit.
func (s *session) handle(ev tcell.Event) bool {
	switch tev := ev.(type) {
	case *tcell.EventInterrupt:
	case *tcell.EventResize:
		s.app.Resize(tev.Size())
		s.screen.Sync()
	case *tcell.EventPaste:
		if data, done := s.paste.mark(tev); done {
			if ph, ok := s.app.(texel.PasteHandler); ok && len(data) > 0 {
				ph.HandlePaste(data)
			}
		}
	case *tcell.EventKey:
		if tev.Key() == tcell.KeyCtrlC {
			return true
		}
		if s.paste.active {
			s.paste.add(tev)
			return false
		}
		s.app.HandleKey(tev)
	case *tcell.EventMouse:
		mh, ok := s.app.(texel.MouseHandler)
		if !ok {
			return false
		}
		mh.HandleMouse(tev)
	default:
		return false
	}
	s.draw()
	return false
}

func (s *session) draw() {
	for y, row := range s.app.Render() {
		for x, cell := range row {
			s.screen.SetContent(x, y, cell.Ch, nil, cell.Style)
		}
	}
	s.screen.Show()
}

// pasteCollector gathers the keys tcell delivers between bracketed paste
// markers.
type pasteCollector struct {
	active bool
	buf    []byte
}

// mark handles a paste boundary. On the closing marker it returns the
// collected bytes and true.
func (p *pasteCollector) mark(ev *tcell.EventPaste) ([]byte, bool) {
	if ev.Start() {
		p.active, p.buf = true, nil
		return nil, false
	}
	data := p.buf
	p.active, p.buf = false, nil
	return data, true
}

func (p *pasteCollector) add(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		p.buf = append(p.buf, string(ev.Rune())...)
	case tcell.KeyEnter, tcell.KeyLF:
		p.buf = append(p.buf, '\n')
	case tcell.KeyTab:
		p.buf = append(p.buf, '\t')
	}
}

// Snapshot sizes app to cols x rows and returns one rendered frame as
// text, one string per row. Trailing blanks are trimmed.
func Snapshot(app texel.App, cols, rows int) []string {
	app.Resize(cols, rows)
	buffer := app.Render()
	out := make([]string, len(buffer))
	for y, row := range buffer {
		var sb strings.Builder
		for _, cell := range row {
			ch := cell.Ch
			if ch == 0 {
				ch = ' '
			}
			sb.WriteRune(ch)
		}
		out[y] = strings.TrimRight(sb.String(), " ")
	}
	return out
}
