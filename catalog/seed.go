// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: catalog/seed.go
// Summary: Demo content written into an empty catalog.

package catalog

import (
	"fmt"
	"log"
	"strings"
)

type seedTitle struct {
	Title
	reviews   []Review
	playlists []Playlist
}

var demoTitles = []seedTitle{
	{
		Title: Title{
			ID: "harbor-lights", Name: "Harbor Lights", Year: 1987, RuntimeMin: 112,
			Tagline:  "Every tide brings something back.",
			Synopsis: "A lighthouse keeper on a failing island ferry route finds a crate of letters that were never delivered, and starts delivering them forty years late.",
			Genres:   []string{"Drama", "Mystery"},
			Credits: []Credit{
				{Person: "Ilse Marrow", Role: "Director"},
				{Person: "Tomas Ekdahl", Role: "Writer"},
				{Person: "Ruth Okafor", Role: "Agnes Lund"},
				{Person: "Pavel Stoyan", Role: "The Ferryman"},
				{Person: "June Castellan", Role: "Postmistress"},
				{Person: "Arlo Brandt", Role: "Cinematography"},
				{Person: "Mei Kawabata", Role: "Music"},
			},
		},
		reviews: []Review{
			{Author: "tidewatcher", Rating: 5, Body: "# Quietly devastating\n\nThe *letters* sequence is the best thing on film this decade.\n\n- patient pacing\n- **that** final shot"},
			{Author: "reelnoir", Rating: 4, Body: "Slow, but the `ferry` scenes earn it. Okafor carries every frame."},
			{Author: "popcornjoe", Rating: 2, Body: "Beautiful to look at. I fell asleep twice.\n\n> nothing happens, gorgeously"},
		},
		playlists: []Playlist{
			{Name: "Sea Stories", Owner: "maren", Items: 41},
			{Name: "Sunday Slow Burn", Owner: "tidewatcher", Items: 18},
			{Name: "80s Hidden Gems", Owner: "archivist", Items: 112},
		},
	},
	{
		Title: Title{
			ID: "glass-orchard", Name: "The Glass Orchard", Year: 2004, RuntimeMin: 97,
			Tagline:  "Nothing grows here by accident.",
			Synopsis: "Two estranged sisters inherit a greenhouse full of impossible fruit and a ledger of the people who paid for it.",
			Genres:   []string{"Fantasy", "Drama"},
			Credits: []Credit{
				{Person: "Dana Velasquez", Role: "Director"},
				{Person: "Corin Hale", Role: "Writer"},
				{Person: "Nia Bellweather", Role: "Ophelia"},
				{Person: "Sasha Lind", Role: "Wren"},
			},
		},
		reviews: []Review{
			{Author: "verdant", Rating: 4, Body: "Lush and strange. The **ledger** reveal lands."},
		},
		playlists: []Playlist{
			{Name: "Weird Botany", Owner: "verdant", Items: 9},
		},
	},
	{
		Title: Title{
			ID: "signal-decay", Name: "Signal Decay", Year: 2019, RuntimeMin: 128,
			Tagline:  "The last broadcast is still on air.",
			Synopsis: "A night-shift radio engineer keeps receiving a call-in show that went off air in 1979.",
			Genres:   []string{"Thriller", "Science Fiction"},
			Credits: []Credit{
				{Person: "Oskar Renn", Role: "Director"},
				{Person: "Hale Moritz", Role: "Engineer Vos"},
			},
		},
	},
}

// Seed fills an empty catalog with demo titles. It does nothing when the
// catalog already holds titles and reports whether it wrote anything.
func (s *Store) Seed() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM titles").Scan(&n); err != nil {
		return false, fmt.Errorf("count titles: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, st := range demoTitles {
		t := st.Title
		if _, err := tx.Exec(`INSERT INTO titles (id, name, year, tagline, synopsis, runtime_min, genres)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Name, t.Year, t.Tagline, t.Synopsis, t.RuntimeMin, strings.Join(t.Genres, ",")); err != nil {
			return false, fmt.Errorf("insert title %q: %w", t.ID, err)
		}
		for _, c := range t.Credits {
			if _, err := tx.Exec(`INSERT INTO credits (title_id, person, role) VALUES (?, ?, ?)`,
				t.ID, c.Person, c.Role); err != nil {
				return false, fmt.Errorf("insert credit: %w", err)
			}
		}
		for _, r := range st.reviews {
			if _, err := tx.Exec(`INSERT INTO reviews (title_id, author, rating, body) VALUES (?, ?, ?, ?)`,
				t.ID, r.Author, r.Rating, r.Body); err != nil {
				return false, fmt.Errorf("insert review: %w", err)
			}
		}
		for _, p := range st.playlists {
			if _, err := tx.Exec(`INSERT INTO playlists (title_id, name, owner, items) VALUES (?, ?, ?, ?)`,
				t.ID, p.Name, p.Owner, p.Items); err != nil {
				return false, fmt.Errorf("insert playlist: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit seed: %w", err)
	}
	log.Printf("Catalog: Seeded %d demo titles", len(demoTitles))
	return true, nil
}
