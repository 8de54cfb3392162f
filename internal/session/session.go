// Package session owns the transport side of an attached terminal: an SSH
// channel or a local pty, exposed as a byte-stream with window-size
// negotiation. It knows nothing about grids or UI.
package session

import (
	"fmt"

	"github.com/go-errors/errors"
)

// Status is the coarse lifecycle state surfaced to the UI chrome.
type Status int32

const (
	// StatusIdle means no transport exists yet.
	StatusIdle Status = iota
	// StatusConnecting means dialing is in flight.
	StatusConnecting
	// StatusConnected means the remote process is live.
	StatusConnected
	// StatusDisconnected means the transport ended (remote closed or local
	// Close); the last rendered grid is kept.
	StatusDisconnected
	// StatusFailed means connecting failed; Err carries the reason.
	StatusFailed
)

// String returns the status label shown in the host list and status bar.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusDisconnected:
		return "disconnected"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Classification sentinels for connect failures. Callers match with
// errors.Is; the wrapped error keeps the underlying detail.
var (
	ErrAuth     = errors.New("authentication failed")
	ErrNetwork  = errors.New("network unreachable")
	ErrTimeout  = errors.New("connect timed out")
	ErrResource = errors.New("could not allocate remote terminal")
)

// Auth describes how to authenticate a target.
type Auth struct {
	// Method is "password", "key" or "agent".
	Method string
	// KeyFile is the private key path for the key method.
	KeyFile string
	// Passphrase unlocks an encrypted key file.
	Passphrase string
	// Password is the resolved password for the password method.
	Password string
}

// Target identifies where and how to connect. It is supplied by the
// configuration layer; this package never reads config files.
type Target struct {
	Name string
	Host string
	Port int
	User string
	Auth Auth
}

// Addr returns the dialable host:port, defaulting the port to 22.
func (t Target) Addr() string {
	port := t.Port
	if port == 0 {
		port = 22
	}
	return fmt.Sprintf("%s:%d", t.Host, port)
}

// Session is one attached process: an SSH shell or a local pty. Output
// delivers byte chunks in receipt order on a single-consumer channel; the
// channel closes when the transport ends. After Close or remote EOF the
// status is Disconnected and Err reports the terminal error, if any.
type Session interface {
	// Write sends bytes to the remote process's input.
	Write(p []byte) (int, error)
	// Resize propagates a window-size change to the remote end.
	Resize(rows, cols int) error
	// Output is the stream of received byte chunks.
	Output() <-chan []byte
	// Status reports the current lifecycle state.
	Status() Status
	// Err returns the error that ended the transport, or nil.
	Err() error
	// Close tears the transport down and releases its resources. Safe to
	// call more than once.
	Close() error
}

// outputBufferSize bounds how many chunks can queue between the transport
// reader and the UI dispatcher before the reader blocks.
const outputBufferSize = 100

// readBufferSize is the transport read granularity.
const readBufferSize = 8192
