// Copyright © 2025 Texwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/screen.go
// Summary: Terminal screen handle pairing a tcell backend with the current window.
// Usage: Created once per process; the dump wrappers in scrdump.go operate on it.

package screen

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texwin/window"
)

// Screen manages the terminal display using tcell as the backend and holds
// the current window, the shared handle the dump/restore wrappers target.
type Screen struct {
	ts        tcell.Screen
	cur       *window.Window
	mu        sync.Mutex
	closeOnce sync.Once
}

// New initializes the real terminal with tcell.
func New() (*Screen, error) {
	ts, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewFrom(ts)
}

// NewFrom initializes a Screen over an existing tcell screen. Tests pass a
// tcell.SimulationScreen here.
func NewFrom(ts tcell.Screen) (*Screen, error) {
	if err := ts.Init(); err != nil {
		return nil, err
	}
	defStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)
	ts.SetStyle(defStyle)
	ts.HideCursor()

	cols, rows := ts.Size()
	return &Screen{
		ts:  ts,
		cur: window.New(rows, cols),
	}, nil
}

// Fini restores the terminal. Safe to call more than once.
func (s *Screen) Fini() {
	s.closeOnce.Do(func() {
		s.ts.Fini()
	})
}

// Current returns the current window.
func (s *Screen) Current() *window.Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Resize reallocates the current window to match the terminal, preserving the
// overlapping content.
func (s *Screen) Resize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cols, rows := s.ts.Size()
	if rows == s.cur.Rows && cols == s.cur.Cols {
		return
	}
	next := window.New(rows, cols)
	s.cur.Overwrite(next)
	next.Touch()
	s.cur = next
}

// Refresh paints the changed ranges of the current window to the terminal and
// clears the change tracking.
func (s *Screen) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paintLocked()
}

func (s *Screen) paintLocked() {
	win := s.cur
	for y := 0; y < win.Rows; y++ {
		if win.FirstCh[y] == window.NoChange || win.Lines[y] == nil {
			continue
		}
		last := min(win.LastCh[y], win.Cols-1)
		for x := win.FirstCh[y]; x <= last; x++ {
			c := win.Lines[y][x]
			ch := c.Ch
			if ch == 0 {
				ch = ' '
			}
			s.ts.SetContent(win.BegX+x, win.BegY+y, ch, nil, c.Style.TCell())
			if runewidth.RuneWidth(ch) == 2 {
				x++ // wide rune owns the next cell
			}
		}
	}
	win.Untouch()
	if win.Flags&window.FlagLeaveCursor == 0 {
		s.ts.ShowCursor(win.BegX+win.CurX, win.BegY+win.CurY)
	}
	s.ts.Show()
}
