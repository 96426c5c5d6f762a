// Copyright © 2025 Texwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: window/window.go
// Summary: The in-memory window buffer persisted by the dump codec.
// Usage: Created by callers or materialized by dump.Getwin; painted by the screen layer.

package window

// NoChange marks a row whose changed range is empty.
const NoChange = -1

// Flag holds window behaviour bits carried through a dump.
type Flag uint32

const (
	FlagClearOK Flag = 1 << iota
	FlagLeaveCursor
	FlagScrollOK
	FlagNoDelay
	FlagImmediate
	FlagSyncUp
	FlagKeypad
)

// Window is a rectangular buffer of styled cells plus cursor and rendition
// state. Lines may contain nil entries past the populated prefix (a short
// window); every non-nil line has exactly Cols cells. FirstCh and LastCh
// track the changed column range per row for incremental repaints.
type Window struct {
	Rows, Cols           int
	CurY, CurX           int
	BegY, BegX           int
	ScrollTop, ScrollBot int
	Flags                Flag
	CurStyle             Style
	Bkgd                 Cell

	Lines   [][]Cell
	FirstCh []int
	LastCh  []int
}

// New creates a fully allocated window with all rows backed by a single
// contiguous block and the whole surface marked changed.
func New(rows, cols int) *Window {
	w := &Window{
		Rows: rows,
		Cols: cols,
		Bkgd: Cell{Ch: ' '},
	}
	if rows > 0 {
		w.ScrollBot = rows - 1
	}
	w.FirstCh = make([]int, rows)
	w.LastCh = make([]int, rows)
	w.AllocLines()
	w.Touch()
	return w
}

// AllocLines (re)allocates the row slices from one contiguous cell block.
func (w *Window) AllocLines() {
	w.Lines = make([][]Cell, w.Rows)
	if w.Rows == 0 || w.Cols == 0 {
		for y := range w.Lines {
			w.Lines[y] = make([]Cell, w.Cols)
		}
		return
	}
	block := make([]Cell, w.Rows*w.Cols)
	for y := 0; y < w.Rows; y++ {
		w.Lines[y] = block[y*w.Cols : (y+1)*w.Cols : (y+1)*w.Cols]
	}
}

// Touch marks every row fully changed so the next refresh repaints everything.
func (w *Window) Touch() {
	for y := 0; y < w.Rows; y++ {
		w.FirstCh[y] = 0
		w.LastCh[y] = w.Cols - 1
	}
}

// TouchLine marks a single row fully changed.
func (w *Window) TouchLine(y int) {
	if y < 0 || y >= w.Rows {
		return
	}
	w.FirstCh[y] = 0
	w.LastCh[y] = w.Cols - 1
}

// Untouch clears all change tracking.
func (w *Window) Untouch() {
	for y := 0; y < w.Rows; y++ {
		w.FirstCh[y] = NoChange
		w.LastCh[y] = NoChange
	}
}

// SetCell stores a cell and widens the row's changed range to include it.
func (w *Window) SetCell(y, x int, c Cell) {
	if y < 0 || y >= w.Rows || x < 0 || x >= w.Cols || w.Lines[y] == nil {
		return
	}
	w.Lines[y][x] = c
	if w.FirstCh[y] == NoChange || x < w.FirstCh[y] {
		w.FirstCh[y] = x
	}
	if x > w.LastCh[y] {
		w.LastCh[y] = x
	}
}

// CellAt returns the cell at the given position, or the background cell when
// the position is out of range or the row is unallocated.
func (w *Window) CellAt(y, x int) Cell {
	if y < 0 || y >= w.Rows || x < 0 || x >= w.Cols || w.Lines[y] == nil {
		return w.Bkgd
	}
	return w.Lines[y][x]
}

// Overwrite copies the overlapping region of w into dst and marks the copied
// rows changed. Scalar metadata of dst is left alone; this is the whole-window
// text copy used when restoring a dumped screen over a live one.
func (w *Window) Overwrite(dst *Window) {
	if dst == nil {
		return
	}
	rows := min(w.Rows, dst.Rows)
	cols := min(w.Cols, dst.Cols)
	for y := 0; y < rows; y++ {
		if w.Lines[y] == nil || dst.Lines[y] == nil {
			continue
		}
		copy(dst.Lines[y][:cols], w.Lines[y][:cols])
		if dst.FirstCh[y] == NoChange || dst.FirstCh[y] > 0 {
			dst.FirstCh[y] = 0
		}
		if cols-1 > dst.LastCh[y] {
			dst.LastCh[y] = cols - 1
		}
	}
	dst.CurY = max(min(w.CurY, dst.Rows-1), 0)
	dst.CurX = max(min(w.CurX, dst.Cols-1), 0)
}

// Equal reports whether two windows carry identical metadata and cell
// contents. Changed-range tracking is not compared.
func (w *Window) Equal(o *Window) bool {
	if o == nil {
		return false
	}
	if w.Rows != o.Rows || w.Cols != o.Cols ||
		w.CurY != o.CurY || w.CurX != o.CurX ||
		w.BegY != o.BegY || w.BegX != o.BegX ||
		w.ScrollTop != o.ScrollTop || w.ScrollBot != o.ScrollBot ||
		w.Flags != o.Flags || w.CurStyle != o.CurStyle || w.Bkgd != o.Bkgd {
		return false
	}
	for y := 0; y < w.Rows; y++ {
		if (w.Lines[y] == nil) != (o.Lines[y] == nil) {
			return false
		}
		for x := range w.Lines[y] {
			if w.Lines[y][x] != o.Lines[y][x] {
				return false
			}
		}
	}
	return true
}
