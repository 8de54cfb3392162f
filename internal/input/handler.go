package input

import (
	"sync"
)

// Handler manages mode state, the text buffer shared by the modal modes,
// and the pending detach-chord prefix in terminal mode.
type Handler struct {
	mode   Mode
	buffer string
	prefix bool
	mu     sync.RWMutex
}

// NewHandler creates a handler in normal mode.
func NewHandler() *Handler {
	return &Handler{
		mode: ModeNormal,
	}
}

// Mode returns the current input mode.
func (h *Handler) Mode() Mode {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.mode
}

// SetMode changes the current input mode. Leaving terminal mode always
// clears a pending chord prefix.
func (h *Handler) SetMode(mode Mode) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mode = mode
	h.prefix = false
	if mode != ModeFilter {
		h.buffer = ""
	}
}

// EnterTerminalMode switches to terminal mode.
func (h *Handler) EnterTerminalMode() {
	h.SetMode(ModeTerminal)
}

// EnterNormalMode switches to normal mode.
func (h *Handler) EnterNormalMode() {
	h.SetMode(ModeNormal)
}

// SetPrefix records that the chord prefix key was pressed; the next key
// decides between detach, literal passthrough, or nothing.
func (h *Handler) SetPrefix() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.prefix = true
}

// ConsumePrefix reports and clears the pending prefix.
func (h *Handler) ConsumePrefix() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	was := h.prefix
	h.prefix = false
	return was
}

// HasPrefix reports a pending prefix without clearing it.
func (h *Handler) HasPrefix() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.prefix
}

// Buffer returns the modal text buffer.
func (h *Handler) Buffer() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buffer
}

// SetBuffer replaces the modal text buffer.
func (h *Handler) SetBuffer(s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buffer = s
}

// AppendBuffer adds a character to the modal text buffer.
func (h *Handler) AppendBuffer(ch rune) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buffer += string(ch)
}

// BackspaceBuffer removes the last character from the modal text buffer.
func (h *Handler) BackspaceBuffer() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.buffer) > 0 {
		h.buffer = h.buffer[:len(h.buffer)-1]
	}
}

// ConsumeBuffer returns and clears the buffer, dropping back to normal mode.
func (h *Handler) ConsumeBuffer() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	result := h.buffer
	h.buffer = ""
	h.mode = ModeNormal
	return result
}
