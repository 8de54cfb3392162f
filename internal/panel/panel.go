package panel

import (
	"fmt"
	"sync"

	"github.com/wrenholt/sshdeck/internal/session"
)

// Panel is one host's terminal surface: the emulator grid plus, once
// connected, the owning session transport. A panel has at most one session
// at a time.
type Panel struct {
	Host     string
	ViewName string
	Term     *SafeTerminal

	mu         sync.Mutex
	sess       session.Session
	connecting bool
	lastErr    error
}

// New creates a panel for the named host with the given terminal size.
func New(host string, rows, cols int) *Panel {
	if rows < 1 {
		rows = 24
	}
	if cols < 1 {
		cols = 80
	}
	return &Panel{
		Host:     host,
		ViewName: fmt.Sprintf("panel-%s", host),
		Term:     NewSafeTerminal(rows, cols),
	}
}

// SetConnecting marks the panel as dialing. Cleared by Attach or Fail.
func (p *Panel) SetConnecting() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connecting = true
	p.lastErr = nil
}

// Attach hands the panel its connected session.
func (p *Panel) Attach(s session.Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sess = s
	p.connecting = false
	p.lastErr = nil
}

// Fail records a connect failure.
func (p *Panel) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connecting = false
	p.lastErr = err
}

// Session returns the attached session, or nil.
func (p *Panel) Session() session.Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sess
}

// Status reports the panel's lifecycle state, folding in the dial that may
// still be in flight.
func (p *Panel) Status() session.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.connecting {
		return session.StatusConnecting
	}
	if p.lastErr != nil {
		return session.StatusFailed
	}
	if p.sess == nil {
		return session.StatusIdle
	}
	st := p.sess.Status()
	if err := p.sess.Err(); err != nil && st == session.StatusDisconnected {
		return session.StatusFailed
	}
	return st
}

// Err returns the connect or transport error behind a Failed status.
func (p *Panel) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastErr != nil {
		return p.lastErr
	}
	if p.sess != nil {
		return p.sess.Err()
	}
	return nil
}

// Connected reports whether input should be forwarded to the session.
func (p *Panel) Connected() bool {
	return p.Status() == session.StatusConnected
}

// WriteToTerminal feeds received bytes into the emulator grid.
func (p *Panel) WriteToTerminal(data []byte) {
	p.Term.Write(data)
}

// WriteToSession forwards encoded input bytes to the remote process.
// Writes while not connected are dropped.
func (p *Panel) WriteToSession(data []byte) {
	p.mu.Lock()
	s := p.sess
	p.mu.Unlock()
	if s == nil || s.Status() != session.StatusConnected {
		return
	}
	s.Write(data)
}

// Resize reflows the grid and, when connected, notifies the remote end of
// the new window size. The grid resize happens first so the next frame
// always draws with matching dimensions.
func (p *Panel) Resize(rows, cols int) {
	p.Term.Resize(rows, cols)
	p.mu.Lock()
	s := p.sess
	p.mu.Unlock()
	if s != nil && s.Status() == session.StatusConnected {
		s.Resize(rows, cols)
	}
}

// Output returns the session's output channel, or nil when detached.
// Receiving from a nil channel blocks forever, so callers check first.
func (p *Panel) Output() <-chan []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sess == nil {
		return nil
	}
	return p.sess.Output()
}

// Close tears down the session, if any. The panel keeps its last grid so
// the UI can show what the remote printed before the disconnect.
func (p *Panel) Close() error {
	p.mu.Lock()
	s := p.sess
	p.mu.Unlock()
	if s == nil {
		return nil
	}
	return s.Close()
}
