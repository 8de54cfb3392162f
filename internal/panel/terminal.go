// Package panel ties a host's session transport to a terminal emulator and
// manages the set of open panels.
package panel

import (
	"strings"
	"sync"

	"github.com/wrenholt/sshdeck/internal/vt"
)

// SafeTerminal wraps vt.Terminal with a mutex for thread-safe access.
// All reads and writes to the terminal must go through this wrapper; holding
// the mutex across a whole Write or Render keeps feed-then-render atomic, so
// a half-applied escape sequence is never visible in a frame.
type SafeTerminal struct {
	term *vt.Terminal
	mu   sync.Mutex
}

// NewSafeTerminal creates a thread-safe terminal with the given dimensions.
func NewSafeTerminal(rows, cols int) *SafeTerminal {
	return &SafeTerminal{
		term: vt.NewTerminal(rows, cols),
	}
}

// Write feeds data to the terminal emulator. Thread-safe.
func (t *SafeTerminal) Write(data []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.term.Write(data)
}

// Resize changes the terminal dimensions. Thread-safe.
func (t *SafeTerminal) Resize(rows, cols int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.term.Resize(rows, cols)
}

// Render writes the grid as ANSI-styled text. Thread-safe.
func (t *SafeTerminal) Render(w *strings.Builder) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.term.Rows() <= 0 || t.term.Cols() <= 0 {
		return nil
	}
	err := t.term.Render(w)
	t.term.ClearDirty()
	return err
}

// Cursor returns the cursor position as view coordinates (x=col, y=row).
// Thread-safe.
func (t *SafeTerminal) Cursor() (x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur := t.term.Cursor()
	return cur.Col, cur.Row
}

// CursorVisible reports whether the application wants the cursor drawn.
// Full-screen programs hide it while painting. Thread-safe.
func (t *SafeTerminal) CursorVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.term.Cursor().Visible
}

// Dimensions returns the terminal size. Thread-safe.
func (t *SafeTerminal) Dimensions() (rows, cols int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.term.Rows(), t.term.Cols()
}

// Dirty reports whether the grid changed since the last Render. Thread-safe.
func (t *SafeTerminal) Dirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.term.Dirty()
}
