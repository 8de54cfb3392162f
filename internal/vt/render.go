package vt

import (
	"io"
	"strconv"
	"strings"
)

// Render writes the active screen as ANSI-styled text, one line per row.
// SGR codes are emitted only on style changes, and a reset terminates the
// output so trailing style never leaks into the surrounding UI.
func (t *Terminal) Render(w io.Writer) error {
	var sb strings.Builder
	cur := DefaultStyle()
	for r := 0; r < t.active.Rows(); r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < t.active.Cols(); c++ {
			cell := t.active.Cell(r, c)
			if cell.Width == 0 {
				continue
			}
			if cell.Style != cur {
				writeSGR(&sb, cell.Style)
				cur = cell.Style
			}
			if cell.Rune == 0 {
				sb.WriteByte(' ')
			} else {
				sb.WriteRune(cell.Rune)
			}
		}
	}
	if !cur.IsDefault() {
		sb.WriteString("\x1b[0m")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// writeSGR emits a single reset-then-set SGR sequence for the style.
func writeSGR(sb *strings.Builder, s Style) {
	sb.WriteString("\x1b[0")
	if s.Attrs&AttrBold != 0 {
		sb.WriteString(";1")
	}
	if s.Attrs&AttrItalic != 0 {
		sb.WriteString(";3")
	}
	if s.Attrs&AttrUnderline != 0 {
		sb.WriteString(";4")
	}
	if s.Attrs&AttrBlink != 0 {
		sb.WriteString(";5")
	}
	if s.Attrs&AttrInverse != 0 {
		sb.WriteString(";7")
	}
	writeColor(sb, s.FG, false)
	writeColor(sb, s.BG, true)
	sb.WriteByte('m')
}

func writeColor(sb *strings.Builder, c Color, bg bool) {
	base := 30
	if bg {
		base = 40
	}
	switch c.Kind {
	case ColorDefault:
		// reset already implied default
	case ColorIndexed:
		switch {
		case c.Index < 8:
			sb.WriteByte(';')
			sb.WriteString(strconv.Itoa(base + int(c.Index)))
		case c.Index < 16:
			sb.WriteByte(';')
			sb.WriteString(strconv.Itoa(base + 60 + int(c.Index) - 8))
		default:
			sb.WriteByte(';')
			sb.WriteString(strconv.Itoa(base + 8))
			sb.WriteString(";5;")
			sb.WriteString(strconv.Itoa(int(c.Index)))
		}
	case ColorRGB:
		sb.WriteByte(';')
		sb.WriteString(strconv.Itoa(base + 8))
		sb.WriteString(";2;")
		sb.WriteString(strconv.Itoa(int(c.R)))
		sb.WriteByte(';')
		sb.WriteString(strconv.Itoa(int(c.G)))
		sb.WriteByte(';')
		sb.WriteString(strconv.Itoa(int(c.B)))
	}
}
