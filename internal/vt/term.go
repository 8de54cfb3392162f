package vt

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const tabWidth = 8

// Cursor is a grid position with visibility state. Row and Col are always
// within the active grid's bounds.
type Cursor struct {
	Row, Col int
	Visible  bool
}

// Terminal interprets a byte stream into a styled grid. It owns a primary
// and an alternate screen; full-screen programs switch between them with the
// standard private-mode sequences, so no caller-side mode switching exists.
//
// Terminal is not safe for concurrent use; callers serialize access (the
// panel layer wraps it in a mutex).
type Terminal struct {
	parser  *Parser
	primary *Screen
	alt     *Screen
	active  *Screen

	altActive    bool
	cur          Cursor
	savedPrimary Cursor
	savedAlt     Cursor
	style        Style

	// scroll region, 0-based inclusive rows
	scrollTop    int
	scrollBottom int

	dirty bool
}

// NewTerminal returns a terminal with blank screens of the given size.
// Dimensions are clamped to at least 1x1.
func NewTerminal(rows, cols int) *Terminal {
	p := NewScreen(rows, cols)
	t := &Terminal{
		parser:       NewParser(),
		primary:      p,
		alt:          NewScreen(rows, cols),
		active:       p,
		cur:          Cursor{Visible: true},
		style:        DefaultStyle(),
		scrollBottom: p.Rows() - 1,
	}
	return t
}

// Rows returns the grid height.
func (t *Terminal) Rows() int { return t.active.Rows() }

// Cols returns the grid width.
func (t *Terminal) Cols() int { return t.active.Cols() }

// Cursor returns the current cursor state.
func (t *Terminal) Cursor() Cursor { return t.cur }

// Cell returns the cell at (row, col) on the active screen.
func (t *Terminal) Cell(row, col int) Cell { return t.active.Cell(row, col) }

// Row returns a copy of the given row of the active screen.
func (t *Terminal) Row(row int) []Cell { return t.active.Row(row) }

// AltActive reports whether the alternate screen is showing.
func (t *Terminal) AltActive() bool { return t.altActive }

// Dirty reports whether the grid changed since the last ClearDirty.
func (t *Terminal) Dirty() bool { return t.dirty }

// ClearDirty marks the current grid state as rendered.
func (t *Terminal) ClearDirty() { t.dirty = false }

// Feed consumes a chunk of bytes. Sequences split across Feed calls resume
// exactly where they left off.
func (t *Terminal) Feed(data []byte) {
	for _, b := range data {
		act := t.parser.Advance(b)
		switch act.Kind {
		case ActionPrint:
			t.print(act.Rune)
		case ActionExecute:
			t.execute(act.Byte)
		case ActionCSI:
			t.csiDispatch(act)
		case ActionESC:
			t.escDispatch(act)
		case ActionOSC, ActionDCS:
			// consumed whole, deliberately unhandled
		}
	}
	if len(data) > 0 {
		t.dirty = true
	}
}

// Write implements io.Writer over Feed.
func (t *Terminal) Write(data []byte) (int, error) {
	t.Feed(data)
	return len(data), nil
}

// Resize changes both screens to the new dimensions, preserving top-left
// content, clamping the cursor and resetting the scroll region.
func (t *Terminal) Resize(rows, cols int) {
	t.primary.Resize(rows, cols)
	t.alt.Resize(rows, cols)
	t.scrollTop = 0
	t.scrollBottom = t.active.Rows() - 1
	t.clampCursor()
	t.dirty = true
}

func (t *Terminal) clampCursor() {
	t.cur.Row = clamp(t.cur.Row, 0, t.active.Rows()-1)
	t.cur.Col = clamp(t.cur.Col, 0, t.active.Cols()-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (t *Terminal) print(r rune) {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		// combining marks and zero-width runes are dropped
		return
	}
	cols := t.active.Cols()
	if t.cur.Col+w > cols {
		t.cur.Col = 0
		t.lineFeed()
	}
	t.active.SetCell(t.cur.Row, t.cur.Col, Cell{Rune: r, Width: int8(w), Style: t.style})
	if w == 2 {
		t.active.SetCell(t.cur.Row, t.cur.Col+1, Cell{Rune: 0, Width: 0, Style: t.style})
	}
	t.cur.Col += w
	if t.cur.Col >= cols {
		t.cur.Col = 0
		t.lineFeed()
	}
}

// lineFeed advances the cursor one row, scrolling the region when the cursor
// sits on its bottom row.
func (t *Terminal) lineFeed() {
	if t.cur.Row == t.scrollBottom {
		t.active.ScrollUp(t.scrollTop, t.scrollBottom, 1, t.style)
	} else if t.cur.Row < t.active.Rows()-1 {
		t.cur.Row++
	}
}

func (t *Terminal) reverseLineFeed() {
	if t.cur.Row == t.scrollTop {
		t.active.ScrollDown(t.scrollTop, t.scrollBottom, 1, t.style)
	} else if t.cur.Row > 0 {
		t.cur.Row--
	}
}

func (t *Terminal) execute(b byte) {
	switch b {
	case 0x08: // BS
		if t.cur.Col > 0 {
			t.cur.Col--
		}
	case 0x09: // HT
		next := (t.cur.Col/tabWidth + 1) * tabWidth
		t.cur.Col = clamp(next, 0, t.active.Cols()-1)
	case 0x0a, 0x0b, 0x0c: // LF, VT, FF
		t.lineFeed()
	case 0x0d: // CR
		t.cur.Col = 0
	case 0x07: // BEL
	}
}

func (t *Terminal) escDispatch(act Action) {
	if act.Intermediate != 0 {
		// charset designations and similar; nothing to do
		return
	}
	switch act.Final {
	case '7':
		t.saveCursor()
	case '8':
		t.restoreCursor()
	case 'D': // IND
		t.lineFeed()
	case 'E': // NEL
		t.cur.Col = 0
		t.lineFeed()
	case 'M': // RI
		t.reverseLineFeed()
	case 'c': // RIS
		t.fullReset()
	}
}

func (t *Terminal) saveCursor() {
	if t.altActive {
		t.savedAlt = t.cur
	} else {
		t.savedPrimary = t.cur
	}
}

func (t *Terminal) restoreCursor() {
	if t.altActive {
		t.cur = t.savedAlt
	} else {
		t.cur = t.savedPrimary
	}
	t.clampCursor()
}

func (t *Terminal) fullReset() {
	t.primary.ClearAll(DefaultStyle())
	t.alt.ClearAll(DefaultStyle())
	t.active = t.primary
	t.altActive = false
	t.cur = Cursor{Visible: true}
	t.savedPrimary = Cursor{}
	t.savedAlt = Cursor{}
	t.style = DefaultStyle()
	t.scrollTop = 0
	t.scrollBottom = t.active.Rows() - 1
}

// param returns the i'th CSI parameter, or def when absent or zero.
func param(params []int, i, def int) int {
	if i >= len(params) || params[i] == 0 {
		return def
	}
	return params[i]
}

func (t *Terminal) csiDispatch(act Action) {
	if act.Private == '?' {
		t.privateMode(act)
		return
	}
	if act.Private != 0 || act.Intermediate != 0 {
		// unsupported variants are swallowed whole
		return
	}
	rows := t.active.Rows()
	cols := t.active.Cols()
	switch act.Final {
	case 'A': // CUU
		t.cur.Row = clamp(t.cur.Row-param(act.Params, 0, 1), 0, rows-1)
	case 'B', 'e': // CUD, VPR
		t.cur.Row = clamp(t.cur.Row+param(act.Params, 0, 1), 0, rows-1)
	case 'C', 'a': // CUF, HPR
		t.cur.Col = clamp(t.cur.Col+param(act.Params, 0, 1), 0, cols-1)
	case 'D': // CUB
		t.cur.Col = clamp(t.cur.Col-param(act.Params, 0, 1), 0, cols-1)
	case 'E': // CNL
		t.cur.Row = clamp(t.cur.Row+param(act.Params, 0, 1), 0, rows-1)
		t.cur.Col = 0
	case 'F': // CPL
		t.cur.Row = clamp(t.cur.Row-param(act.Params, 0, 1), 0, rows-1)
		t.cur.Col = 0
	case 'G', '`': // CHA, HPA
		t.cur.Col = clamp(param(act.Params, 0, 1)-1, 0, cols-1)
	case 'H', 'f': // CUP, HVP
		t.cur.Row = clamp(param(act.Params, 0, 1)-1, 0, rows-1)
		t.cur.Col = clamp(param(act.Params, 1, 1)-1, 0, cols-1)
	case 'd': // VPA
		t.cur.Row = clamp(param(act.Params, 0, 1)-1, 0, rows-1)
	case 'J':
		t.eraseDisplay(param(act.Params, 0, 0))
	case 'K':
		t.eraseLine(param(act.Params, 0, 0))
	case 'L': // IL
		if t.cur.Row >= t.scrollTop && t.cur.Row <= t.scrollBottom {
			t.active.ScrollDown(t.cur.Row, t.scrollBottom, param(act.Params, 0, 1), t.style)
		}
	case 'M': // DL
		if t.cur.Row >= t.scrollTop && t.cur.Row <= t.scrollBottom {
			t.active.ScrollUp(t.cur.Row, t.scrollBottom, param(act.Params, 0, 1), t.style)
		}
	case 'P': // DCH
		t.active.DeleteChars(t.cur.Row, t.cur.Col, param(act.Params, 0, 1), t.style)
	case '@': // ICH
		t.active.InsertChars(t.cur.Row, t.cur.Col, param(act.Params, 0, 1), t.style)
	case 'X': // ECH
		t.active.ClearLine(t.cur.Row, t.cur.Col, t.cur.Col+param(act.Params, 0, 1), t.style)
	case 'S': // SU
		t.active.ScrollUp(t.scrollTop, t.scrollBottom, param(act.Params, 0, 1), t.style)
	case 'T': // SD
		t.active.ScrollDown(t.scrollTop, t.scrollBottom, param(act.Params, 0, 1), t.style)
	case 'r': // DECSTBM
		top := clamp(param(act.Params, 0, 1)-1, 0, rows-1)
		bottom := clamp(param(act.Params, 1, rows)-1, 0, rows-1)
		if top < bottom {
			t.scrollTop = top
			t.scrollBottom = bottom
			t.cur.Row, t.cur.Col = 0, 0
		}
	case 'm':
		t.applySGR(act.Params)
	case 's':
		t.saveCursor()
	case 'u':
		t.restoreCursor()
	}
	// unknown finals fall through silently so the stream stays in sync
}

func (t *Terminal) eraseDisplay(mode int) {
	switch mode {
	case 0: // cursor to end
		t.active.ClearLine(t.cur.Row, t.cur.Col, t.active.Cols(), t.style)
		t.active.ClearRows(t.cur.Row+1, t.active.Rows(), t.style)
	case 1: // start to cursor, inclusive
		t.active.ClearRows(0, t.cur.Row, t.style)
		t.active.ClearLine(t.cur.Row, 0, t.cur.Col+1, t.style)
	case 2, 3:
		t.active.ClearAll(t.style)
	}
}

func (t *Terminal) eraseLine(mode int) {
	switch mode {
	case 0:
		t.active.ClearLine(t.cur.Row, t.cur.Col, t.active.Cols(), t.style)
	case 1:
		t.active.ClearLine(t.cur.Row, 0, t.cur.Col+1, t.style)
	case 2:
		t.active.ClearLine(t.cur.Row, 0, t.active.Cols(), t.style)
	}
}

func (t *Terminal) privateMode(act Action) {
	set := act.Final == 'h'
	if act.Final != 'h' && act.Final != 'l' {
		return
	}
	for _, p := range act.Params {
		switch p {
		case 25:
			t.cur.Visible = set
		case 47, 1047:
			t.setAltScreen(set, false)
		case 1048:
			if set {
				t.saveCursor()
			} else {
				t.restoreCursor()
			}
		case 1049:
			t.setAltScreen(set, true)
		}
	}
}

// setAltScreen switches the active grid. With cursor handling (mode 1049)
// the cursor is saved on entry and restored on exit, and the alternate
// screen starts blank.
func (t *Terminal) setAltScreen(enter, withCursor bool) {
	if enter == t.altActive {
		return
	}
	if enter {
		if withCursor {
			t.savedPrimary = t.cur
		}
		t.altActive = true
		t.active = t.alt
		if withCursor {
			t.alt.ClearAll(DefaultStyle())
			t.cur.Row, t.cur.Col = 0, 0
		}
	} else {
		t.altActive = false
		t.active = t.primary
		if withCursor {
			t.cur = t.savedPrimary
		}
	}
	t.scrollTop = 0
	t.scrollBottom = t.active.Rows() - 1
	t.clampCursor()
}

// Text returns the active screen contents as one string per row, trailing
// blanks trimmed. Intended for tests and diagnostics.
func (t *Terminal) Text() []string {
	out := make([]string, t.active.Rows())
	var sb strings.Builder
	for r := 0; r < t.active.Rows(); r++ {
		sb.Reset()
		for c := 0; c < t.active.Cols(); c++ {
			cell := t.active.Cell(r, c)
			if cell.Width == 0 {
				continue
			}
			sb.WriteRune(cell.Rune)
		}
		out[r] = strings.TrimRight(sb.String(), " ")
	}
	return out
}
