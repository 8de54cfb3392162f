package vt

// applySGR mutates the pending style from an SGR parameter list. The style
// persists across printed cells until the next SGR. Unknown parameters are
// skipped without desynchronizing the rest of the list.
func (t *Terminal) applySGR(params []int) {
	if len(params) == 0 {
		t.style = DefaultStyle()
		return
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			t.style = DefaultStyle()
		case p == 1:
			t.style.Attrs |= AttrBold
		case p == 3:
			t.style.Attrs |= AttrItalic
		case p == 4:
			t.style.Attrs |= AttrUnderline
		case p == 5:
			t.style.Attrs |= AttrBlink
		case p == 7:
			t.style.Attrs |= AttrInverse
		case p == 22:
			t.style.Attrs &^= AttrBold
		case p == 23:
			t.style.Attrs &^= AttrItalic
		case p == 24:
			t.style.Attrs &^= AttrUnderline
		case p == 25:
			t.style.Attrs &^= AttrBlink
		case p == 27:
			t.style.Attrs &^= AttrInverse
		case p >= 30 && p <= 37:
			t.style.FG = IndexedColor(uint8(p - 30))
		case p == 38:
			if c, n := extendedColor(params[i+1:]); n > 0 {
				t.style.FG = c
				i += n
			} else {
				return
			}
		case p == 39:
			t.style.FG = DefaultColor()
		case p >= 40 && p <= 47:
			t.style.BG = IndexedColor(uint8(p - 40))
		case p == 48:
			if c, n := extendedColor(params[i+1:]); n > 0 {
				t.style.BG = c
				i += n
			} else {
				return
			}
		case p == 49:
			t.style.BG = DefaultColor()
		case p >= 90 && p <= 97:
			t.style.FG = IndexedColor(uint8(p - 90 + 8))
		case p >= 100 && p <= 107:
			t.style.BG = IndexedColor(uint8(p - 100 + 8))
		}
	}
}

// extendedColor decodes the tail of a 38/48 sequence: "5;n" for indexed,
// "2;r;g;b" for true color. It returns the color and how many parameters it
// consumed, or 0 when the tail is malformed.
func extendedColor(rest []int) (Color, int) {
	if len(rest) == 0 {
		return Color{}, 0
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return Color{}, 0
		}
		return IndexedColor(uint8(clamp(rest[1], 0, 255))), 2
	case 2:
		if len(rest) < 4 {
			return Color{}, 0
		}
		return RGBColor(
			uint8(clamp(rest[1], 0, 255)),
			uint8(clamp(rest[2], 0, 255)),
			uint8(clamp(rest[3], 0, 255)),
		), 4
	}
	return Color{}, 0
}
