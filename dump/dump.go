// Copyright © 2025 Texwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dump/dump.go
// Summary: Binary window dump codec: Putwin serializes, Getwin reconstructs.
// Usage: Consumed by the screen wrappers, the dump store and the texwin CLI.
// Notes: Layout changes require a version bump; readers reject any other version.

// Package dump implements the window-state persistence format. A dump is a
// 3-byte marker, a version byte, a fixed-size header and one fixed-size blob
// per populated row. All multi-byte integers are little-endian.
package dump

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/framegrace/texwin/window"
)

// Version is the dump format revision implemented by this package. It must be
// bumped whenever the header or cell layout changes.
const Version uint8 = 1

const (
	markerLen  = 3
	headerSize = 48
	styleSize  = 12
	cellSize   = 16
)

var marker = [markerLen]byte{'T', 'X', 'W'}

var (
	ErrNilStream          = errors.New("dump: nil stream")
	ErrNilWindow          = errors.New("dump: nil window")
	ErrInvalidMarker      = errors.New("dump: invalid marker")
	ErrUnsupportedVersion = errors.New("dump: unsupported version")
	ErrShortDump          = errors.New("dump: short dump")
	ErrTooLarge           = errors.New("dump: window exceeds limits")
)

// Limits bounds the window geometry a reader is willing to materialize. A
// header declaring more is rejected before any row storage is allocated.
type Limits struct {
	MaxRows int
	MaxCols int
}

// DefaultLimits is generous enough for any real terminal.
var DefaultLimits = Limits{MaxRows: 4096, MaxCols: 4096}

// Putwin writes the window to w: marker, version, header, then row data in row
// order. Row emission stops at the first unallocated row, producing a dump
// shorter than the header's nominal size (a short window is truncated, never
// padded). The window is never mutated. Any write error aborts immediately.
func Putwin(win *window.Window, w io.Writer) error {
	if w == nil {
		return ErrNilStream
	}
	if win == nil {
		return ErrNilWindow
	}
	if win.Rows < 0 || win.Rows > 0xFFFF || win.Cols < 0 || win.Cols > 0xFFFF {
		return ErrTooLarge
	}

	buf := make([]byte, markerLen+1+headerSize)
	copy(buf, marker[:])
	buf[markerLen] = Version
	encodeHeader(buf[markerLen+1:], win)
	if _, err := w.Write(buf); err != nil {
		return err
	}

	rowBuf := make([]byte, win.Cols*cellSize)
	for y := 0; y < win.Rows && y < len(win.Lines) && win.Lines[y] != nil; y++ {
		for x := 0; x < win.Cols; x++ {
			encodeCell(rowBuf[x*cellSize:], win.Lines[y][x])
		}
		if _, err := w.Write(rowBuf); err != nil {
			return err
		}
	}
	return nil
}

// Getwin reads a dump from r using DefaultLimits and returns a fully
// populated window marked for full redraw. On any failure it returns a nil
// window; a partially reconstructed one is never handed out.
func Getwin(r io.Reader) (*window.Window, error) {
	return GetwinLimits(r, DefaultLimits)
}

// GetwinLimits is Getwin with caller-supplied geometry limits.
func GetwinLimits(r io.Reader, lim Limits) (*window.Window, error) {
	win, err := readShell(r)
	if err != nil {
		return nil, err
	}
	if win.Rows > lim.MaxRows || win.Cols > lim.MaxCols {
		return nil, ErrTooLarge
	}

	win.FirstCh = make([]int, win.Rows)
	win.LastCh = make([]int, win.Rows)
	win.AllocLines()

	rowBuf := make([]byte, win.Cols*cellSize)
	for y := 0; y < win.Rows; y++ {
		if _, err := io.ReadFull(r, rowBuf); err != nil {
			return nil, shortErr(err)
		}
		for x := 0; x < win.Cols; x++ {
			win.Lines[y][x] = decodeCell(rowBuf[x*cellSize:])
		}
	}

	win.Touch()
	return win, nil
}

// ReadHeader validates the marker and version and decodes the fixed header,
// returning a window shell with no row storage. It works on truncated dumps,
// which makes it suitable for inspection tools.
func ReadHeader(r io.Reader) (window.Window, error) {
	win, err := readShell(r)
	if err != nil {
		return window.Window{}, err
	}
	return *win, nil
}

func readShell(r io.Reader) (*window.Window, error) {
	if r == nil {
		return nil, ErrNilStream
	}

	var pre [markerLen + 1]byte
	if _, err := io.ReadFull(r, pre[:]); err != nil {
		return nil, shortErr(err)
	}
	if pre[0] != marker[0] || pre[1] != marker[1] || pre[2] != marker[2] {
		return nil, ErrInvalidMarker
	}
	if pre[markerLen] != Version {
		return nil, ErrUnsupportedVersion
	}

	hdr := make([]byte, headerSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, shortErr(err)
	}
	return decodeHeader(hdr), nil
}

func shortErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrShortDump
	}
	return err
}

func encodeHeader(b []byte, win *window.Window) {
	binary.LittleEndian.PutUint16(b[0:], uint16(win.Rows))
	binary.LittleEndian.PutUint16(b[2:], uint16(win.Cols))
	binary.LittleEndian.PutUint16(b[4:], uint16(win.CurY))
	binary.LittleEndian.PutUint16(b[6:], uint16(win.CurX))
	binary.LittleEndian.PutUint16(b[8:], uint16(win.BegY))
	binary.LittleEndian.PutUint16(b[10:], uint16(win.BegX))
	binary.LittleEndian.PutUint16(b[12:], uint16(win.ScrollTop))
	binary.LittleEndian.PutUint16(b[14:], uint16(win.ScrollBot))
	binary.LittleEndian.PutUint32(b[16:], uint32(win.Flags))
	encodeStyle(b[20:], win.CurStyle)
	encodeCell(b[20+styleSize:], win.Bkgd)
}

func decodeHeader(b []byte) *window.Window {
	win := &window.Window{}
	win.Rows = int(binary.LittleEndian.Uint16(b[0:]))
	win.Cols = int(binary.LittleEndian.Uint16(b[2:]))
	win.CurY = int(binary.LittleEndian.Uint16(b[4:]))
	win.CurX = int(binary.LittleEndian.Uint16(b[6:]))
	win.BegY = int(binary.LittleEndian.Uint16(b[8:]))
	win.BegX = int(binary.LittleEndian.Uint16(b[10:]))
	win.ScrollTop = int(binary.LittleEndian.Uint16(b[12:]))
	win.ScrollBot = int(binary.LittleEndian.Uint16(b[14:]))
	win.Flags = window.Flag(binary.LittleEndian.Uint32(b[16:]))
	win.CurStyle = decodeStyle(b[20:])
	win.Bkgd = decodeCell(b[20+styleSize:])
	return win
}

func encodeStyle(b []byte, s window.Style) {
	binary.LittleEndian.PutUint16(b[0:], uint16(s.Attr))
	b[2] = byte(s.Fg.Mode)
	b[3] = s.Fg.Value
	b[4], b[5], b[6] = s.Fg.R, s.Fg.G, s.Fg.B
	b[7] = byte(s.Bg.Mode)
	b[8] = s.Bg.Value
	b[9], b[10], b[11] = s.Bg.R, s.Bg.G, s.Bg.B
}

func decodeStyle(b []byte) window.Style {
	var s window.Style
	s.Attr = window.Attribute(binary.LittleEndian.Uint16(b[0:]))
	s.Fg.Mode = window.ColorMode(b[2])
	s.Fg.Value = b[3]
	s.Fg.R, s.Fg.G, s.Fg.B = b[4], b[5], b[6]
	s.Bg.Mode = window.ColorMode(b[7])
	s.Bg.Value = b[8]
	s.Bg.R, s.Bg.G, s.Bg.B = b[9], b[10], b[11]
	return s
}

func encodeCell(b []byte, c window.Cell) {
	binary.LittleEndian.PutUint32(b[0:], uint32(c.Ch))
	encodeStyle(b[4:], c.Style)
}

func decodeCell(b []byte) window.Cell {
	var c window.Cell
	c.Ch = rune(binary.LittleEndian.Uint32(b[0:]))
	c.Style = decodeStyle(b[4:])
	return c
}
