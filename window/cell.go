// Copyright © 2025 Texwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: window/cell.go
// Summary: Cell, color and style primitives for window buffers.
// Usage: Consumed by the dump codec and the screen layer.
// Notes: Values are raw integers; translation to tcell happens only at the edges.

package window

import "github.com/gdamore/tcell/v2"

// Attribute holds the rendition flags applied to a cell.
type Attribute uint16

const (
	AttrBold Attribute = 1 << iota
	AttrUnderline
	AttrReverse
	AttrBlink
	AttrDim
	AttrItalic
)

// ColorMode defines the type of color stored.
type ColorMode uint8

const (
	ColorDefault  ColorMode = iota // Default terminal color
	ColorStandard                  // The basic 16 ANSI colors
	Color256                       // 256-color palette
	ColorRGB                       // 24-bit "true" color
)

// Color represents a color in potentially different modes.
type Color struct {
	Mode    ColorMode
	Value   uint8 // Holds the palette index for Standard and 256 modes
	R, G, B uint8 // Holds the channels for RGB mode
}

// Style pairs an attribute set with foreground and background colors.
type Style struct {
	Attr Attribute
	Fg   Color
	Bg   Color
}

// Cell represents a single character position in a window buffer.
type Cell struct {
	Ch    rune
	Style Style
}

// TCell converts the color to its tcell representation.
func (c Color) TCell() tcell.Color {
	switch c.Mode {
	case ColorStandard, Color256:
		return tcell.PaletteColor(int(c.Value))
	case ColorRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	default:
		return tcell.ColorDefault
	}
}

// ColorFromTCell converts a tcell color to the raw model.
func ColorFromTCell(tc tcell.Color) Color {
	if !tc.Valid() {
		return Color{Mode: ColorDefault}
	}
	if tc.IsRGB() {
		r, g, b := tc.RGB()
		return Color{Mode: ColorRGB, R: uint8(r), G: uint8(g), B: uint8(b)}
	}
	idx := int(tc) - int(tcell.ColorValid)
	if idx < 16 {
		return Color{Mode: ColorStandard, Value: uint8(idx)}
	}
	return Color{Mode: Color256, Value: uint8(idx)}
}

// TCell converts the style to its tcell representation.
func (s Style) TCell() tcell.Style {
	st := tcell.StyleDefault.Foreground(s.Fg.TCell()).Background(s.Bg.TCell())
	st = st.Bold(s.Attr&AttrBold != 0)
	st = st.Underline(s.Attr&AttrUnderline != 0)
	st = st.Reverse(s.Attr&AttrReverse != 0)
	st = st.Blink(s.Attr&AttrBlink != 0)
	st = st.Dim(s.Attr&AttrDim != 0)
	st = st.Italic(s.Attr&AttrItalic != 0)
	return st
}

// StyleFromTCell converts a tcell style to the raw model.
func StyleFromTCell(ts tcell.Style) Style {
	fg, bg, attrs := ts.Decompose()
	var s Style
	s.Fg = ColorFromTCell(fg)
	s.Bg = ColorFromTCell(bg)
	if attrs&tcell.AttrBold != 0 {
		s.Attr |= AttrBold
	}
	if attrs&tcell.AttrUnderline != 0 {
		s.Attr |= AttrUnderline
	}
	if attrs&tcell.AttrReverse != 0 {
		s.Attr |= AttrReverse
	}
	if attrs&tcell.AttrBlink != 0 {
		s.Attr |= AttrBlink
	}
	if attrs&tcell.AttrDim != 0 {
		s.Attr |= AttrDim
	}
	if attrs&tcell.AttrItalic != 0 {
		s.Attr |= AttrItalic
	}
	return s
}
