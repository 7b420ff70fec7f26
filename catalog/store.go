// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: catalog/store.go
// Summary: SQLite-backed catalog feeding the detail screen's tab lists.
//
// Holds titles with their credits, reviews and playlists. The detail
// screen only reads from it; seeding is the one write path.

package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a title id is unknown.
var ErrNotFound = errors.New("catalog: title not found")

// Title is one catalog entry.
type Title struct {
	ID         string
	Name       string
	Year       int
	Tagline    string
	Synopsis   string
	RuntimeMin int
	Genres     []string
	Credits    []Credit
}

// Credit is one cast or crew line.
type Credit struct {
	Person string
	Role   string
}

// Review is a user review. Body is markdown.
type Review struct {
	Author string
	Rating int // 1..5
	Body   string
}

// Playlist is a user list that contains the title.
type Playlist struct {
	Name  string
	Owner string
	Items int
}

// Current schema version - increment when the layout changes
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS titles (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    year        INTEGER NOT NULL DEFAULT 0,
    tagline     TEXT NOT NULL DEFAULT '',
    synopsis    TEXT NOT NULL DEFAULT '',
    runtime_min INTEGER NOT NULL DEFAULT 0,
    genres      TEXT NOT NULL DEFAULT ''   -- comma separated
);

CREATE TABLE IF NOT EXISTS credits (
    id       INTEGER PRIMARY KEY,
    title_id TEXT NOT NULL REFERENCES titles(id),
    person   TEXT NOT NULL,
    role     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS reviews (
    id       INTEGER PRIMARY KEY,
    title_id TEXT NOT NULL REFERENCES titles(id),
    author   TEXT NOT NULL,
    rating   INTEGER NOT NULL,
    body     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS playlists (
    id       INTEGER PRIMARY KEY,
    title_id TEXT NOT NULL REFERENCES titles(id),
    name     TEXT NOT NULL,
    owner    TEXT NOT NULL,
    items    INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_credits_title ON credits(title_id);
CREATE INDEX IF NOT EXISTS idx_reviews_title ON reviews(title_id);
CREATE INDEX IF NOT EXISTS idx_playlists_title ON playlists(title_id);
`

// Store is a catalog database handle.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (or creates) the catalog at path. An empty path opens a
// private in-memory database.
func Open(path string) (*Store, error) {
	dsn := ":memory:"
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		dsn = path +
			"?_pragma=journal_mode(WAL)" +
			"&_pragma=synchronous(NORMAL)" +
			"&_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := checkSchemaVersion(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func checkSchemaVersion(db *sql.DB) error {
	var current int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&current)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current == schemaVersion {
		return nil
	}
	if current > schemaVersion {
		return fmt.Errorf("catalog schema version %d is newer than supported %d", current, schemaVersion)
	}
	log.Printf("Catalog: Migrating schema from version %d to %d", current, schemaVersion)
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to reset schema version: %w", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("failed to update schema version: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Titles lists every title ordered by year then name, without credits.
func (s *Store) Titles() ([]Title, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name, year, tagline, synopsis, runtime_min, genres
		FROM titles ORDER BY year, name`)
	if err != nil {
		return nil, fmt.Errorf("query titles: %w", err)
	}
	defer rows.Close()

	var out []Title
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Title loads one title with its credits.
func (s *Store) Title(id string) (Title, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT id, name, year, tagline, synopsis, runtime_min, genres
		FROM titles WHERE id = ?`, id)
	t, err := scanTitle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Title{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return Title{}, err
	}

	rows, err := s.db.Query(`SELECT person, role FROM credits WHERE title_id = ? ORDER BY id`, id)
	if err != nil {
		return Title{}, fmt.Errorf("query credits: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c Credit
		if err := rows.Scan(&c.Person, &c.Role); err != nil {
			return Title{}, fmt.Errorf("scan credit: %w", err)
		}
		t.Credits = append(t.Credits, c)
	}
	return t, rows.Err()
}

// Reviews returns the reviews of a title, best rated first.
func (s *Store) Reviews(id string) ([]Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT author, rating, body FROM reviews
		WHERE title_id = ? ORDER BY rating DESC, id`, id)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.Author, &r.Rating, &r.Body); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Playlists returns the playlists containing a title, largest first.
func (s *Store) Playlists(id string) ([]Playlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT name, owner, items FROM playlists
		WHERE title_id = ? ORDER BY items DESC, id`, id)
	if err != nil {
		return nil, fmt.Errorf("query playlists: %w", err)
	}
	defer rows.Close()

	var out []Playlist
	for rows.Next() {
		var p Playlist
		if err := rows.Scan(&p.Name, &p.Owner, &p.Items); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTitle(row scanner) (Title, error) {
	var t Title
	var genres string
	if err := row.Scan(&t.ID, &t.Name, &t.Year, &t.Tagline, &t.Synopsis, &t.RuntimeMin, &genres); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Title{}, err
		}
		return Title{}, fmt.Errorf("scan title: %w", err)
	}
	for _, g := range strings.Split(genres, ",") {
		if g = strings.TrimSpace(g); g != "" {
			t.Genres = append(t.Genres, g)
		}
	}
	return t, nil
}
