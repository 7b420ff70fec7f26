// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/titledetail/app.go
// Summary: Title detail screen with a collapsing header shared by three
// scrollable tabs.
// Usage: Built by the dev shell; New takes a catalog source and the id of
// the first title to show.
// Notes: Only the active tab's list feeds the scroll coordinator. The
// coordinator moves the inactive lists so a tab switch never shows the
// header jump.

package titledetail

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/framegrace/texelcine/catalog"
	"github.com/framegrace/texelcine/scrollsync"
	"github.com/framegrace/texelcine/texel"
	"github.com/framegrace/texelcine/texelui/core"
	"github.com/framegrace/texelcine/texelui/scroll"
)

// Source is the catalog the screen reads from.
type Source interface {
	Titles() ([]catalog.Title, error)
	Title(id string) (catalog.Title, error)
	Reviews(id string) ([]catalog.Review, error)
	Playlists(id string) ([]catalog.Playlist, error)
}

// Tab ids, in display order.
const (
	TabDetails   scrollsync.TabID = "details"
	TabReviews   scrollsync.TabID = "reviews"
	TabPlaylists scrollsync.TabID = "playlists"
)

var routes = []scrollsync.TabID{TabDetails, TabReviews, TabPlaylists}

var tabNames = map[scrollsync.TabID]string{
	TabDetails:   "Details",
	TabReviews:   "Reviews",
	TabPlaylists: "Playlists",
}

const frameInterval = 16 * time.Millisecond

type tab struct {
	id    scrollsync.TabID
	name  string
	count int // shown next to the name when >= 0
	list  *scroll.List
}

func (t *tab) label() string {
	if t.count < 0 {
		return t.name
	}
	return fmt.Sprintf("%s %d", t.name, t.count)
}

// App is the title detail screen.
type App struct {
	mu sync.Mutex

	src      Source
	closer   io.Closer // owned source, closed by Stop
	settings Settings
	pal      palette
	style    *chroma.Style
	now      func() time.Time

	ids    []string
	pos    int
	entity entity
	tint   colorful.Color

	coord  *scrollsync.Coordinator
	tabs   []*tab
	active int

	backdropCfg scrollsync.OverlayConfig
	titleCfg    scrollsync.OverlayConfig

	width, height int
	header        int // collapsible rows after fitting to the screen
	tabHits       [][2]int
	tabBarY       int
	debug         bool

	buf         [][]core.Cell
	refreshChan chan<- bool
	stop        chan struct{}
	stopOnce    sync.Once
}

// New loads the catalog and mounts the screen on startID. An empty id
// selects the first title.
func New(src Source, startID string, settings Settings) (*App, error) {
	if src == nil {
		return nil, errors.New("titledetail: nil source")
	}
	titles, err := src.Titles()
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	if len(titles) == 0 {
		return nil, errors.New("titledetail: catalog is empty")
	}
	ids := make([]string, len(titles))
	pos := -1
	for i, t := range titles {
		ids[i] = t.ID
		if t.ID == startID {
			pos = i
		}
	}
	if startID == "" {
		pos = 0
	}
	if pos < 0 {
		return nil, fmt.Errorf("%w: %q", catalog.ErrNotFound, startID)
	}

	a := &App{
		src:         src,
		settings:    settings,
		pal:         newPalette(settings.Theme),
		style:       chromaStyle(""),
		now:         time.Now,
		ids:         ids,
		pos:         pos,
		backdropCfg: settings.overlayConfig(settings.BackdropDivisor),
		titleCfg:    settings.overlayConfig(settings.TitleDivisor),
		header:      settings.HeaderRows,
		stop:        make(chan struct{}),
	}
	for _, id := range routes {
		a.tabs = append(a.tabs, &tab{id: id, name: tabNames[id], count: -1})
	}

	e, err := loadEntity(src, ids[pos])
	if err != nil {
		return nil, err
	}
	a.coord = scrollsync.New(ids[pos], scrollsync.Options{
		Routes:              routes,
		HeaderOverlayHeight: float64(settings.OverlayRows),
		TabBarHeight:        float64(settings.TabBarRows),
		Logger:              log.Default(),
	})
	a.coord.OnReset(a.watchCells)
	a.watchCells(a.coord.Cells())
	a.mountEntity(e)
	return a, nil
}

// SetClock overrides the animation time source.
func (a *App) SetClock(now func() time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if now == nil {
		now = time.Now
	}
	a.now = now
	for _, t := range a.tabs {
		if t.list != nil {
			t.list.SetClock(now)
		}
	}
}

// watchCells asks the host for a frame whenever the header moves.
func (a *App) watchCells(c *scrollsync.Cells) {
	c.ScrollY.Subscribe(func(float64) { a.requestRefresh() })
	c.HeaderHeight.Subscribe(func(float64) { a.requestRefresh() })
}

// mountEntity builds fresh lists for e and registers them. Callers hold mu
// or have not published the app yet.
func (a *App) mountEntity(e entity) {
	a.entity = e
	a.tint = tint(e.title.ID)
	a.active = 0
	a.coord.SetActiveTab(0)

	for _, t := range a.tabs {
		l := scroll.NewList(a.settings.listConfig())
		l.Style = a.pal.base
		l.Indicators = scroll.DefaultIndicatorConfig(a.pal.dim)
		l.SetClock(a.now)
		t.list = l
		a.layoutList(t)
		a.fillList(t)

		id := t.id
		l.OnScroll(func(offset float64) { a.onListScroll(id, offset) })
		a.coord.Register(id, l)
	}
	a.coord.SetHeaderHeight(float64(a.header))
}

// unmountEntity detaches the current lists. Their handles go stale.
func (a *App) unmountEntity() {
	for _, t := range a.tabs {
		if t.list == nil {
			continue
		}
		a.coord.Unregister(t.id)
		t.list.Unmount()
	}
}

func (a *App) onListScroll(id scrollsync.TabID, offset float64) {
	if a.tabs[a.active].id != id {
		return
	}
	a.coord.HandleHeaderDrivenScroll(offset)
}

// fitHeader shrinks the header on short screens so at least one list row
// stays visible below the tab bar.
func (a *App) fitHeader() int {
	room := a.height - a.settings.OverlayRows - a.settings.TabBarRows - 1
	return min(max(room, 0), a.settings.HeaderRows)
}

func (a *App) layoutList(t *tab) {
	top := a.settings.OverlayRows
	t.list.SetPosition(0, top)
	t.list.Resize(a.width, max(a.height-top, 0))
	t.list.SetLeading(a.header+a.settings.TabBarRows, a.header)
}

func (a *App) fillList(t *tab) {
	width := contentWidth(a.width)
	switch t.id {
	case TabDetails:
		t.list.SetLines(detailsLines(a.entity, width, a.pal))
	case TabReviews:
		t.count = len(a.entity.reviews)
		t.list.SetLines(reviewLines(a.entity, width, a.pal, a.style))
	case TabPlaylists:
		t.count = len(a.entity.playlists)
		t.list.SetLines(playlistLines(a.entity, a.pal))
	}
}

// selectTab switches the active tab. The coordinator aligns the other tabs
// to the outgoing header state, then the header follows the new tab.
func (a *App) selectTab(i int) {
	if i < 0 || i >= len(a.tabs) || i == a.active {
		return
	}
	// The outgoing list must not keep moving once it is hidden.
	switch old := a.tabs[a.active].list; {
	case old.State().Overscrolled():
		old.ScrollToOffset(0, false)
	case old.Animating():
		old.StopAnimation()
	}
	a.active = i
	a.coord.SetActiveTab(i)
	a.coord.HandleHeaderDrivenScroll(float64(a.tabs[i].list.Offset()))
}

// showTitle switches the displayed entity. Synchronization state starts
// over for the new id.
func (a *App) showTitle(pos int) error {
	if pos < 0 || pos >= len(a.ids) || pos == a.pos {
		return nil
	}
	e, err := loadEntity(a.src, a.ids[pos])
	if err != nil {
		return err
	}
	a.unmountEntity()
	a.pos = pos
	a.coord.Init(a.ids[pos])
	a.mountEntity(e)
	return nil
}

// HandleKey switches tabs and titles and forwards scrolling keys to the
// active list.
func (a *App) HandleKey(ev *tcell.EventKey) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch ev.Key() {
	case tcell.KeyTab, tcell.KeyRight:
		a.selectTab((a.active + 1) % len(a.tabs))
		return
	case tcell.KeyBacktab, tcell.KeyLeft:
		a.selectTab((a.active + len(a.tabs) - 1) % len(a.tabs))
		return
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r >= '1' && r <= '9':
			a.selectTab(int(r - '1'))
			return
		case r == '[' || r == ']':
			next := a.pos + 1
			if r == '[' {
				next = a.pos - 1
			}
			if err := a.showTitle(next); err != nil {
				log.Printf("TitleDetail: cannot open title: %v", err)
			}
			return
		case r == 'd':
			a.debug = !a.debug
			return
		}
	}
	a.tabs[a.active].list.HandleKey(ev)
}

// HandleMouse selects tabs on click and scrolls the active list on wheel.
func (a *App) HandleMouse(ev *tcell.EventMouse) {
	a.mu.Lock()
	defer a.mu.Unlock()

	x, y := ev.Position()
	if ev.Buttons()&tcell.Button1 != 0 && y == a.tabBarY {
		for i, h := range a.tabHits {
			if x >= h[0] && x < h[1] {
				a.selectTab(i)
				return
			}
		}
	}
	a.tabs[a.active].list.HandleMouse(ev)
}

// SetRefreshNotifier stores the host's redraw channel.
func (a *App) SetRefreshNotifier(refreshChan chan<- bool) {
	a.mu.Lock()
	a.refreshChan = refreshChan
	a.mu.Unlock()
}

func (a *App) requestRefresh() {
	ch := a.refreshChan
	if ch == nil {
		return
	}
	select {
	case ch <- true:
	default:
	}
}

// Run drives list animations until Stop.
func (a *App) Run() error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if a.tick() {
				a.requestRefresh()
			}
		case <-a.stop:
			return nil
		}
	}
}

// tick advances the active list's animation and reports whether it moved.
func (a *App) tick() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	l := a.tabs[a.active].list
	if !l.Animating() {
		return false
	}
	l.Tick(a.now())
	return true
}

// Stop ends Run and releases the coordinator.
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		close(a.stop)
		a.mu.Lock()
		a.unmountEntity()
		a.coord.Dispose()
		a.closeSource()
		a.mu.Unlock()
	})
}

// Resize lays the screen out again and re-measures the header.
func (a *App) Resize(cols, rows int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.width, a.height = cols, rows
	a.header = a.fitHeader()
	for _, t := range a.tabs {
		a.layoutList(t)
		a.fillList(t)
	}
	a.coord.SetHeaderHeight(float64(a.header))
	// Layout clamps offsets without a scroll event.
	a.coord.HandleHeaderDrivenScroll(float64(a.tabs[a.active].list.Offset()))
}

// GetTitle returns the pane title.
func (a *App) GetTitle() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return "Title: " + a.entity.title.Name
}

// Render draws one frame.
func (a *App) Render() [][]core.Cell {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.width <= 0 || a.height <= 0 {
		return [][]core.Cell{}
	}
	if len(a.buf) != a.height || len(a.buf[0]) != a.width {
		a.buf = core.NewBuffer(a.width, a.height, a.pal.base)
	}
	p := core.NewPainter(a.buf)
	p.Fill(core.Rect{W: a.width, H: a.height}, ' ', a.pal.base)

	g := a.coord.Cells().Snapshot()
	l := frameLayout(a.width, a.height, a.settings.OverlayRows, a.header, a.settings.TabBarRows, g)
	in := scrollsync.InputFrom(g, 0)
	backdrop := scrollsync.Derive(in, a.backdropCfg)
	title := scrollsync.Derive(in, a.titleCfg)

	below := p.WithClip(core.Rect{Y: l.overlay, W: a.width, H: a.height - l.overlay})
	drawBackdrop(below, l, backdrop, a.pal, a.tint)
	drawHeaderText(below, l, a.entity, title, a.pal)
	a.tabHits = drawTabBar(below, l, a.tabs, a.active, a.pal)
	a.tabBarY = l.tabBarY()

	listTop := l.listTop()
	a.tabs[a.active].list.Draw(p.WithClip(core.Rect{Y: listTop, W: a.width, H: a.height - listTop}))

	drawOverlay(p, l, a.entity, a.pos, len(a.ids), title, a.pal)
	if a.debug {
		a.drawDebug(p, g)
	}
	return a.buf
}

func (a *App) drawDebug(p *core.Painter, g scrollsync.Geometry) {
	s := a.coord.Stats()
	line := fmt.Sprintf(" y=%.0f header=%.0f %s passes=%d forced=%d skipped=%d ",
		g.ScrollY, g.HeaderHeight, a.coord.Regime(), s.Passes, s.Forced, s.Skipped)
	p.DrawTextFit(0, a.height-1, a.width, line, a.pal.overlay)
}

// ActiveTab returns the id of the active tab.
func (a *App) ActiveTab() scrollsync.TabID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tabs[a.active].id
}

// EntityID returns the id of the displayed title.
func (a *App) EntityID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ids[a.pos]
}

// Offsets returns the row offset of every tab list.
func (a *App) Offsets() map[scrollsync.TabID]int {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[scrollsync.TabID]int, len(a.tabs))
	for _, t := range a.tabs {
		out[t.id] = t.list.Offset()
	}
	return out
}

// ScrollY returns the shared scroll position.
func (a *App) ScrollY() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.coord.Cells().ScrollY.Get()
}

var _ texel.App = (*App)(nil)
var _ texel.MouseHandler = (*App)(nil)
