// Copyright © 2025 Texwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: window/window_test.go
// Summary: Exercises window allocation, change tracking and overwrite copies.

package window

import "testing"

func TestNewAllocatesEverything(t *testing.T) {
	w := New(3, 7)
	if len(w.Lines) != 3 || len(w.FirstCh) != 3 || len(w.LastCh) != 3 {
		t.Fatalf("row-sized storage not allocated")
	}
	for y, line := range w.Lines {
		if len(line) != 7 {
			t.Fatalf("row %d has %d cells, want 7", y, len(line))
		}
		if w.FirstCh[y] != 0 || w.LastCh[y] != 6 {
			t.Fatalf("row %d not marked fully changed", y)
		}
	}
	if w.ScrollBot != 2 {
		t.Fatalf("scroll bottom %d, want 2", w.ScrollBot)
	}
}

func TestSetCellTracksChangedRange(t *testing.T) {
	w := New(2, 10)
	w.Untouch()

	w.SetCell(1, 4, Cell{Ch: 'x'})
	if w.FirstCh[1] != 4 || w.LastCh[1] != 4 {
		t.Fatalf("changed range [%d,%d], want [4,4]", w.FirstCh[1], w.LastCh[1])
	}
	w.SetCell(1, 7, Cell{Ch: 'y'})
	w.SetCell(1, 2, Cell{Ch: 'z'})
	if w.FirstCh[1] != 2 || w.LastCh[1] != 7 {
		t.Fatalf("changed range [%d,%d], want [2,7]", w.FirstCh[1], w.LastCh[1])
	}
	if w.FirstCh[0] != NoChange {
		t.Fatalf("untouched row reported changes")
	}

	// Out-of-range writes are ignored.
	w.SetCell(5, 0, Cell{Ch: '!'})
	w.SetCell(0, -1, Cell{Ch: '!'})
}

func TestTouchAndUntouch(t *testing.T) {
	w := New(4, 4)
	w.Untouch()
	for y := 0; y < 4; y++ {
		if w.FirstCh[y] != NoChange || w.LastCh[y] != NoChange {
			t.Fatalf("untouch left row %d marked", y)
		}
	}
	w.Touch()
	for y := 0; y < 4; y++ {
		if w.FirstCh[y] != 0 || w.LastCh[y] != 3 {
			t.Fatalf("touch missed row %d", y)
		}
	}
}

func TestOverwriteCopiesOverlap(t *testing.T) {
	src := New(2, 3)
	src.Lines[0][0] = Cell{Ch: 'A'}
	src.Lines[1][2] = Cell{Ch: 'F'}
	src.CurY, src.CurX = 1, 2

	dst := New(4, 2)
	dst.Untouch()
	src.Overwrite(dst)

	if dst.Lines[0][0].Ch != 'A' {
		t.Fatalf("overlap cell not copied")
	}
	if dst.FirstCh[0] != 0 || dst.LastCh[0] != 1 {
		t.Fatalf("copied row not marked changed")
	}
	if dst.FirstCh[2] != NoChange {
		t.Fatalf("row outside overlap marked changed")
	}
	if dst.CurY != 1 || dst.CurX != 1 {
		t.Fatalf("cursor not clamped into destination: (%d,%d)", dst.CurY, dst.CurX)
	}
}

func TestCellAtFallsBackToBackground(t *testing.T) {
	w := New(1, 1)
	w.Bkgd = Cell{Ch: '~'}
	if got := w.CellAt(0, 5); got.Ch != '~' {
		t.Fatalf("out-of-range read returned %q", got.Ch)
	}
	w.Lines[0] = nil
	if got := w.CellAt(0, 0); got.Ch != '~' {
		t.Fatalf("unallocated row read returned %q", got.Ch)
	}
}
