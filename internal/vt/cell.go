// Package vt implements a terminal emulator: an escape-sequence parser and a
// styled character grid driven by it. It understands C0 controls, the CSI
// cursor/erase/SGR families (including 256-color and true-color), scroll
// regions, and the alternate screen. OSC and DCS sequences are consumed and
// ignored. The emulator is headless; rendering is up to the caller.
package vt

// Attr is a bitset of text attributes carried by a cell.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrItalic
	AttrUnderline
	AttrInverse
	AttrBlink
)

// ColorKind discriminates the color encodings a cell can carry.
type ColorKind uint8

const (
	// ColorDefault means the terminal's default foreground or background.
	ColorDefault ColorKind = iota
	// ColorIndexed is a palette index 0-255 (0-7 normal, 8-15 bright).
	ColorIndexed
	// ColorRGB is a 24-bit true color.
	ColorRGB
)

// Color is a terminal color in one of three encodings.
type Color struct {
	Kind    ColorKind
	Index   uint8
	R, G, B uint8
}

// DefaultColor returns the terminal-default color.
func DefaultColor() Color {
	return Color{Kind: ColorDefault}
}

// IndexedColor returns a palette color.
func IndexedColor(idx uint8) Color {
	return Color{Kind: ColorIndexed, Index: idx}
}

// RGBColor returns a true color.
func RGBColor(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// Style is the SGR state applied to newly printed cells. It persists across
// prints until changed by another SGR sequence.
type Style struct {
	FG    Color
	BG    Color
	Attrs Attr
}

// DefaultStyle returns the reset style: default colors, no attributes.
func DefaultStyle() Style {
	return Style{FG: DefaultColor(), BG: DefaultColor()}
}

// IsDefault reports whether the style equals the reset style.
func (s Style) IsDefault() bool {
	return s == DefaultStyle()
}

// Cell is one displayed grid unit. Cells are immutable values, replaced
// wholesale on write. Width is 0 for the spacer half of a wide character,
// otherwise 1 or 2.
type Cell struct {
	Rune  rune
	Width int8
	Style Style
}

// blankCell returns an empty cell carrying the given style's background.
func blankCell(style Style) Cell {
	return Cell{Rune: ' ', Width: 1, Style: Style{FG: DefaultColor(), BG: style.BG}}
}
