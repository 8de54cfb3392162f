package input

import "testing"

func TestModeStrings(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeNormal, "NORMAL"},
		{ModeTerminal, "TERMINAL"},
		{ModeFilter, "FILTER"},
		{ModeWizard, "WIZARD"},
		{ModeConfirm, "CONFIRM"},
		{Mode(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestModePredicates(t *testing.T) {
	if !ModeNormal.IsNormal() || ModeNormal.IsTerminal() || ModeNormal.IsModal() {
		t.Error("ModeNormal predicates wrong")
	}
	if !ModeTerminal.IsTerminal() || ModeTerminal.IsModal() {
		t.Error("ModeTerminal predicates wrong")
	}
	for _, m := range []Mode{ModeFilter, ModeWizard, ModeConfirm} {
		if !m.IsModal() {
			t.Errorf("%v should be modal", m)
		}
	}
}

func TestHandlerModeTransitions(t *testing.T) {
	h := NewHandler()
	if h.Mode() != ModeNormal {
		t.Fatal("handler should start in normal mode")
	}

	h.EnterTerminalMode()
	if h.Mode() != ModeTerminal {
		t.Fatal("EnterTerminalMode failed")
	}

	h.EnterNormalMode()
	if h.Mode() != ModeNormal {
		t.Fatal("EnterNormalMode failed")
	}
}

func TestHandlerPrefix(t *testing.T) {
	h := NewHandler()
	h.EnterTerminalMode()

	if h.HasPrefix() {
		t.Fatal("fresh handler has prefix pending")
	}
	h.SetPrefix()
	if !h.HasPrefix() {
		t.Fatal("SetPrefix did not register")
	}
	if !h.ConsumePrefix() {
		t.Fatal("ConsumePrefix returned false")
	}
	if h.ConsumePrefix() {
		t.Fatal("prefix survived consumption")
	}
}

func TestHandlerPrefixClearedOnModeChange(t *testing.T) {
	h := NewHandler()
	h.EnterTerminalMode()
	h.SetPrefix()

	h.EnterNormalMode()
	if h.HasPrefix() {
		t.Fatal("prefix survived mode change")
	}
}

func TestHandlerBuffer(t *testing.T) {
	h := NewHandler()
	h.SetMode(ModeFilter)

	h.AppendBuffer('w')
	h.AppendBuffer('e')
	h.AppendBuffer('b')
	if h.Buffer() != "web" {
		t.Fatalf("buffer = %q", h.Buffer())
	}

	h.BackspaceBuffer()
	if h.Buffer() != "we" {
		t.Fatalf("buffer after backspace = %q", h.Buffer())
	}

	got := h.ConsumeBuffer()
	if got != "we" {
		t.Fatalf("consumed = %q", got)
	}
	if h.Buffer() != "" || h.Mode() != ModeNormal {
		t.Fatal("ConsumeBuffer did not reset state")
	}

	// backspacing an empty buffer is a no-op
	h.BackspaceBuffer()
	if h.Buffer() != "" {
		t.Fatal("backspace on empty buffer changed it")
	}
}

func TestHandlerBufferClearedLeavingModal(t *testing.T) {
	h := NewHandler()
	h.SetMode(ModeWizard)
	h.AppendBuffer('x')
	h.SetMode(ModeNormal)
	if h.Buffer() != "" {
		t.Fatal("wizard buffer survived mode change")
	}
}
