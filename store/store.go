// Copyright © 2025 Texwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: store/store.go
// Summary: SQLite-backed archive of named window dumps.
// Usage: Opened by long-lived processes and the texwin CLI to keep more than
// one saved screen around without scattering dump files.

package store

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/framegrace/texwin/dump"
	"github.com/framegrace/texwin/window"
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS dumps (
    name       TEXT PRIMARY KEY,
    rows       INTEGER NOT NULL,
    cols       INTEGER NOT NULL,
    created_at INTEGER NOT NULL,     -- UnixNano
    data       BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_dumps_created ON dumps(created_at);
`

var ErrNotFound = errors.New("store: no dump with that name")

// Store keeps serialized windows as blobs keyed by name. The dump codec is
// the only writer and reader of the blob contents.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Entry describes one archived dump.
type Entry struct {
	Name      string
	Rows      int
	Cols      int
	CreatedAt time.Time
	Size      int64
}

// Open opens (creating if needed) the archive at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=temp_store(MEMORY)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := ensureVersion(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func ensureVersion(db *sql.DB) error {
	var v int
	err := db.QueryRow(`SELECT version FROM schema_version LIMIT 1`).Scan(&v)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.Exec(`INSERT INTO schema_version(version) VALUES (?)`, schemaVersion)
		return err
	case err != nil:
		return fmt.Errorf("failed to check schema version: %w", err)
	case v != schemaVersion:
		return fmt.Errorf("store: unsupported schema version %d", v)
	}
	return nil
}

// Save serializes win and stores it under name, replacing any previous dump
// with that name.
func (s *Store) Save(name string, win *window.Window) error {
	var buf bytes.Buffer
	if err := dump.Putwin(win, &buf); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO dumps(name, rows, cols, created_at, data) VALUES (?, ?, ?, ?, ?)`,
		name, win.Rows, win.Cols, time.Now().UnixNano(), buf.Bytes())
	return err
}

// Load materializes the named dump into a new window.
func (s *Store) Load(name string) (*window.Window, error) {
	s.mu.Lock()
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM dumps WHERE name = ?`, name).Scan(&data)
	s.mu.Unlock()
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return dump.Getwin(bytes.NewReader(data))
}

// List returns all archived dumps, newest first.
func (s *Store) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT name, rows, cols, created_at, length(data) FROM dumps ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ns int64
		if err := rows.Scan(&e.Name, &e.Rows, &e.Cols, &ns, &e.Size); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(0, ns)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the named dump.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.Exec(`DELETE FROM dumps WHERE name = ?`, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
