// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/titledetail/launch.go
// Summary: Opens the configured catalog and builds the screen from config.

package titledetail

import (
	"fmt"
	"log"

	"github.com/framegrace/texelcine/catalog"
	"github.com/framegrace/texelcine/config"
)

const appName = "titledetail"

// Open builds the screen from the config store. An empty titleID uses
// the configured defaultTitle; an empty dbPath uses catalog.db_path.
// The catalog is closed when the app stops.
func Open(titleID, dbPath string) (*App, error) {
	sys := config.System()
	if dbPath == "" {
		dbPath = sys.GetString("catalog", "db_path", "")
	}
	if dbPath == "" {
		p, err := config.DataPath("catalog.db")
		if err != nil {
			return nil, fmt.Errorf("resolve catalog path: %w", err)
		}
		dbPath = p
	}
	store, err := catalog.Open(dbPath)
	if err != nil {
		return nil, err
	}
	if sys.GetBool("catalog", "seed_demo", true) {
		if _, err := store.Seed(); err != nil {
			store.Close()
			return nil, err
		}
	}
	if titleID == "" {
		titleID = sys.GetString("", "defaultTitle", "")
	}

	a, err := New(store, titleID, LoadSettings(config.App(appName)))
	if err != nil {
		store.Close()
		return nil, err
	}
	a.closer = store
	log.Printf("TitleDetail: opened %q from %s", a.EntityID(), dbPath)
	return a, nil
}

func (a *App) closeSource() {
	if a.closer == nil {
		return
	}
	if err := a.closer.Close(); err != nil {
		log.Printf("TitleDetail: close catalog: %v", err)
	}
	a.closer = nil
}
