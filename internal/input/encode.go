package input

import (
	"github.com/jesseduffield/gocui"
)

// specialKeys maps gocui's out-of-band keys to the byte sequences a real
// terminal sends for them.
var specialKeys = map[gocui.Key][]byte{
	gocui.KeyArrowUp:    []byte("\x1b[A"),
	gocui.KeyArrowDown:  []byte("\x1b[B"),
	gocui.KeyArrowRight: []byte("\x1b[C"),
	gocui.KeyArrowLeft:  []byte("\x1b[D"),
	gocui.KeyHome:       []byte("\x1b[H"),
	gocui.KeyEnd:        []byte("\x1b[F"),
	gocui.KeyInsert:     []byte("\x1b[2~"),
	gocui.KeyDelete:     []byte("\x1b[3~"),
	gocui.KeyPgup:       []byte("\x1b[5~"),
	gocui.KeyPgdn:       []byte("\x1b[6~"),
	gocui.KeyF1:         []byte("\x1bOP"),
	gocui.KeyF2:         []byte("\x1bOQ"),
	gocui.KeyF3:         []byte("\x1bOR"),
	gocui.KeyF4:         []byte("\x1bOS"),
	gocui.KeyF5:         []byte("\x1b[15~"),
	gocui.KeyF6:         []byte("\x1b[17~"),
	gocui.KeyF7:         []byte("\x1b[18~"),
	gocui.KeyF8:         []byte("\x1b[19~"),
	gocui.KeyF9:         []byte("\x1b[20~"),
	gocui.KeyF10:        []byte("\x1b[21~"),
	gocui.KeyF11:        []byte("\x1b[23~"),
	gocui.KeyF12:        []byte("\x1b[24~"),
}

// EncodeKey translates one gocui key event into the bytes to write to the
// session, per conventional xterm encoding. A nil result means the event has
// no terminal representation and should be dropped.
func EncodeKey(key gocui.Key, ch rune, mod gocui.Modifier) []byte {
	// printable characters, with ESC prefix for alt
	if ch != 0 {
		b := []byte(string(ch))
		if mod == gocui.ModAlt {
			return append([]byte{0x1b}, b...)
		}
		return b
	}

	if seq, ok := specialKeys[key]; ok {
		out := seq
		if mod == gocui.ModAlt {
			out = append([]byte{0x1b}, seq...)
		}
		return out
	}

	// remaining in-band keys: control bytes (Ctrl-A..Ctrl-Z, Enter, Tab,
	// Esc), space, and DEL for backspace
	if key <= 0x7f {
		return []byte{byte(key)}
	}
	return nil
}
