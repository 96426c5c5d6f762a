// Copyright © 2025 Texwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: store/store_test.go
// Summary: Exercises the SQLite dump archive end to end.

package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/framegrace/texwin/window"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "dumps.db"))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func testWindow(rows, cols int) *window.Window {
	win := window.New(rows, cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			win.Lines[y][x] = window.Cell{Ch: rune('A' + (y+x)%26)}
		}
	}
	return win
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := openTestStore(t)
	win := testWindow(4, 10)

	if err := st.Save("main", win); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := st.Load("main")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !got.Equal(win) {
		t.Fatalf("loaded window differs from saved one")
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	st := openTestStore(t)

	if err := st.Save("main", testWindow(2, 2)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	bigger := testWindow(6, 6)
	if err := st.Save("main", bigger); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, err := st.Load("main")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Rows != 6 || got.Cols != 6 {
		t.Fatalf("expected replacement, got %dx%d", got.Rows, got.Cols)
	}

	entries, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestListReportsGeometry(t *testing.T) {
	st := openTestStore(t)
	if err := st.Save("a", testWindow(3, 9)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := st.Save("b", testWindow(5, 7)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	entries, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	byName := map[string]Entry{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	if e := byName["a"]; e.Rows != 3 || e.Cols != 9 || e.Size == 0 {
		t.Fatalf("entry a = %+v", e)
	}
	if e := byName["b"]; e.Rows != 5 || e.Cols != 7 {
		t.Fatalf("entry b = %+v", e)
	}
}

func TestLoadMissing(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	st := openTestStore(t)
	if err := st.Save("gone", testWindow(1, 1)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := st.Delete("gone"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := st.Load("gone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := st.Delete("gone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for double delete, got %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dumps.db")

	st, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := st.Save("persist", testWindow(2, 4)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	st, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer st.Close()
	got, err := st.Load("persist")
	if err != nil {
		t.Fatalf("load after reopen failed: %v", err)
	}
	if got.Rows != 2 || got.Cols != 4 {
		t.Fatalf("unexpected geometry %dx%d", got.Rows, got.Cols)
	}
}
