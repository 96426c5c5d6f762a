// Copyright © 2025 Texwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/scrdump.go
// Summary: File-level dump and restore wrappers around the current window.
// Usage: Dump/Restore persist the screen; InitFrom and Set mirror the classic
// curses entry points and carry no logic of their own.

package screen

import (
	"log"
	"os"

	"github.com/framegrace/texwin/dump"
)

// Dump writes the current window to the named file.
func (s *Screen) Dump(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	werr := dump.Putwin(s.cur, f)
	s.mu.Unlock()
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	return werr
}

// Restore replaces the visible screen contents with the window stored in the
// named file. The replacement window is copied over the current one and
// discarded; the screen is repainted before returning.
func (s *Screen) Restore(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	replacement, rerr := dump.Getwin(f)
	if cerr := f.Close(); rerr == nil {
		rerr = cerr
	}
	if rerr != nil {
		log.Printf("screen: restore from %s failed: %v", path, rerr)
		return rerr
	}

	s.mu.Lock()
	replacement.Overwrite(s.cur)
	s.paintLocked()
	s.mu.Unlock()
	return nil
}

// InitFrom exists for compatibility with the classic scr_init entry point and
// does nothing.
func (s *Screen) InitFrom(path string) error {
	return nil
}

// Set is a synonym for Restore.
func (s *Screen) Set(path string) error {
	return s.Restore(path)
}
