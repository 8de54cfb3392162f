// Package input provides modal input handling: deciding whether keystrokes
// drive the UI chrome or get encoded and forwarded into the attached
// session.
package input

// Mode represents the current input mode.
type Mode int

const (
	// ModeNormal is the default mode: keys navigate the host list and run
	// chrome commands.
	ModeNormal Mode = iota
	// ModeTerminal forwards all input to the attached session, except the
	// reserved detach chord.
	ModeTerminal
	// ModeFilter is incremental host filtering; printable keys edit the
	// filter string.
	ModeFilter
	// ModeWizard is the add-host form.
	ModeWizard
	// ModeConfirm is a yes/no prompt.
	ModeConfirm
)

// String returns the human-readable mode name for the status bar.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeTerminal:
		return "TERMINAL"
	case ModeFilter:
		return "FILTER"
	case ModeWizard:
		return "WIZARD"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

// IsTerminal returns true if the mode forwards input to the session.
func (m Mode) IsTerminal() bool {
	return m == ModeTerminal
}

// IsNormal returns true if the mode is normal (navigation) mode.
func (m Mode) IsNormal() bool {
	return m == ModeNormal
}

// IsModal returns true when a text-entry modal owns the keyboard.
func (m Mode) IsModal() bool {
	return m == ModeFilter || m == ModeWizard || m == ModeConfirm
}
