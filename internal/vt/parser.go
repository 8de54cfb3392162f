package vt

import "unicode/utf8"

// ActionKind tags the closed set of events the parser can yield.
type ActionKind uint8

const (
	// ActionNone means the byte was absorbed with nothing to dispatch.
	ActionNone ActionKind = iota
	// ActionPrint carries a decoded printable rune.
	ActionPrint
	// ActionExecute carries a C0 control byte.
	ActionExecute
	// ActionCSI carries a complete control sequence: params, optional
	// private marker and intermediate, and the final byte.
	ActionCSI
	// ActionESC carries a non-CSI escape sequence final byte.
	ActionESC
	// ActionOSC carries a complete operating-system-command string.
	ActionOSC
	// ActionDCS carries a complete device-control string.
	ActionDCS
)

// Action is one parser event. Which fields are meaningful depends on Kind.
type Action struct {
	Kind         ActionKind
	Rune         rune   // Print
	Byte         byte   // Execute
	Params       []int  // CSI
	Private      byte   // CSI: '?', '>' or 0
	Intermediate byte   // CSI/ESC intermediate, or 0
	Final        byte   // CSI/ESC final byte
	Data         []byte // OSC/DCS payload
}

type parserState uint8

const (
	stateGround parserState = iota
	stateEscape
	stateEscapeIntermediate
	stateCSIEntry
	stateCSIParam
	stateCSIIgnore
	stateOSCString
	stateDCSString
	stateStringIgnore // SOS/PM/APC, consumed to ST
)

const (
	maxParams    = 32
	maxStringLen = 4096
)

// Parser is a resumable escape-sequence state machine. Feed it one byte at a
// time with Advance; a sequence split across arbitrary chunk boundaries
// yields the same actions as the concatenated input. The zero value is not
// usable; call NewParser.
type Parser struct {
	state parserState

	params       []int
	curParam     int
	private      byte
	intermediate byte

	str      []byte
	strKind  ActionKind
	escInStr bool // saw ESC inside a string state, deciding on ST

	// pending multibyte rune
	utf8Buf  [utf8.UTFMax]byte
	utf8Len  int
	utf8Need int
}

// NewParser returns a parser in the ground state.
func NewParser() *Parser {
	return &Parser{
		params: make([]int, 0, maxParams),
		str:    make([]byte, 0, 64),
	}
}

// Advance consumes one byte and reports the action it completes, if any.
// Malformed sequences are discarded and parsing resumes at the next byte;
// Advance never fails.
func (p *Parser) Advance(b byte) Action {
	// ESC interrupts any state except a string state, where it may start
	// the ST terminator.
	if b == 0x1b && p.state != stateOSCString && p.state != stateDCSString && p.state != stateStringIgnore {
		p.reset(stateEscape)
		return Action{}
	}

	switch p.state {
	case stateGround:
		return p.ground(b)
	case stateEscape:
		return p.escape(b)
	case stateEscapeIntermediate:
		return p.escapeIntermediate(b)
	case stateCSIEntry, stateCSIParam:
		return p.csi(b)
	case stateCSIIgnore:
		if b >= 0x40 && b <= 0x7e {
			p.state = stateGround
		}
		return Action{}
	case stateOSCString, stateDCSString, stateStringIgnore:
		return p.stringState(b)
	}
	return Action{}
}

func (p *Parser) reset(next parserState) {
	p.state = next
	p.params = p.params[:0]
	p.curParam = 0
	p.private = 0
	p.intermediate = 0
	p.str = p.str[:0]
	p.escInStr = false
	p.utf8Len = 0
	p.utf8Need = 0
}

func (p *Parser) ground(b byte) Action {
	if p.utf8Need > 0 {
		// continuation byte expected
		if b&0xc0 != 0x80 {
			// broken sequence, drop it and reprocess b fresh
			p.utf8Len = 0
			p.utf8Need = 0
			return p.ground(b)
		}
		p.utf8Buf[p.utf8Len] = b
		p.utf8Len++
		if p.utf8Len < p.utf8Need {
			return Action{}
		}
		r, _ := utf8.DecodeRune(p.utf8Buf[:p.utf8Len])
		p.utf8Len = 0
		p.utf8Need = 0
		if r == utf8.RuneError {
			return Action{}
		}
		return Action{Kind: ActionPrint, Rune: r}
	}

	switch {
	case b < 0x20 || b == 0x7f:
		return Action{Kind: ActionExecute, Byte: b}
	case b < 0x80:
		return Action{Kind: ActionPrint, Rune: rune(b)}
	case b&0xe0 == 0xc0:
		p.utf8Buf[0] = b
		p.utf8Len = 1
		p.utf8Need = 2
	case b&0xf0 == 0xe0:
		p.utf8Buf[0] = b
		p.utf8Len = 1
		p.utf8Need = 3
	case b&0xf8 == 0xf0:
		p.utf8Buf[0] = b
		p.utf8Len = 1
		p.utf8Need = 4
	}
	// stray continuation bytes fall through and are dropped
	return Action{}
}

func (p *Parser) escape(b byte) Action {
	switch {
	case b == '[':
		p.reset(stateCSIEntry)
	case b == ']':
		p.reset(stateOSCString)
		p.strKind = ActionOSC
	case b == 'P':
		p.reset(stateDCSString)
		p.strKind = ActionDCS
	case b == 'X' || b == '^' || b == '_': // SOS, PM, APC
		p.reset(stateStringIgnore)
	case b >= 0x20 && b <= 0x2f:
		p.intermediate = b
		p.state = stateEscapeIntermediate
	case b >= 0x30 && b <= 0x7e:
		p.state = stateGround
		return Action{Kind: ActionESC, Final: b}
	default:
		// C0 inside an escape executes without leaving the state
		if b < 0x20 {
			return Action{Kind: ActionExecute, Byte: b}
		}
		p.state = stateGround
	}
	return Action{}
}

func (p *Parser) escapeIntermediate(b byte) Action {
	if b >= 0x30 && b <= 0x7e {
		act := Action{Kind: ActionESC, Intermediate: p.intermediate, Final: b}
		p.state = stateGround
		return act
	}
	if b >= 0x20 && b <= 0x2f {
		p.intermediate = b
		return Action{}
	}
	p.state = stateGround
	return Action{}
}

func (p *Parser) csi(b byte) Action {
	switch {
	case b >= '0' && b <= '9':
		p.state = stateCSIParam
		// saturate instead of overflowing on hostile input
		if p.curParam < 1<<24 {
			p.curParam = p.curParam*10 + int(b-'0')
		}
	case b == ';' || b == ':':
		p.state = stateCSIParam
		p.pushParam()
	case b == '?' || b == '>' || b == '<' || b == '=':
		if p.state == stateCSIEntry {
			p.private = b
		} else {
			p.state = stateCSIIgnore
		}
	case b >= 0x20 && b <= 0x2f:
		p.intermediate = b
	case b >= 0x40 && b <= 0x7e:
		p.pushParam()
		act := Action{
			Kind:         ActionCSI,
			Params:       append([]int(nil), p.params...),
			Private:      p.private,
			Intermediate: p.intermediate,
			Final:        b,
		}
		p.state = stateGround
		return act
	case b < 0x20:
		// C0 executes mid-sequence
		return Action{Kind: ActionExecute, Byte: b}
	default:
		p.state = stateCSIIgnore
	}
	return Action{}
}

func (p *Parser) pushParam() {
	if len(p.params) < maxParams {
		p.params = append(p.params, p.curParam)
	}
	p.curParam = 0
}

func (p *Parser) stringState(b byte) Action {
	// Strings end on BEL (OSC convention) or ST (ESC \).
	if p.escInStr {
		p.escInStr = false
		if b == '\\' {
			return p.endString()
		}
		// not a terminator; keep both bytes in the payload
		if len(p.str) < maxStringLen {
			p.str = append(p.str, 0x1b, b)
		}
		return Action{}
	}
	switch b {
	case 0x1b:
		p.escInStr = true
	case 0x07:
		return p.endString()
	default:
		if len(p.str) < maxStringLen {
			p.str = append(p.str, b)
		}
	}
	return Action{}
}

func (p *Parser) endString() Action {
	kind := p.strKind
	data := append([]byte(nil), p.str...)
	ignored := p.state == stateStringIgnore
	p.reset(stateGround)
	if ignored {
		return Action{}
	}
	return Action{Kind: kind, Data: data}
}
