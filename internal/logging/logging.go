// Package logging wires the application log file. The UI owns the terminal,
// so logs never go to stdout or stderr; everything lands in a structured log
// file under the data directory.
package logging

import (
	"io"
	"os"

	"pkt.systems/pslog"
)

// ParseLevel maps a config log level string to a pslog level. Unknown
// strings map to info.
func ParseLevel(s string) pslog.Level {
	switch s {
	case "trace":
		return pslog.TraceLevel
	case "debug":
		return pslog.DebugLevel
	case "info":
		return pslog.InfoLevel
	case "warn":
		return pslog.WarnLevel
	case "error":
		return pslog.ErrorLevel
	default:
		return pslog.InfoLevel
	}
}

// Open creates a structured logger writing to the given file path. The
// returned closer owns the underlying file.
func Open(path string, level string) (pslog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, err
	}
	logger := pslog.NewWithOptions(f, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: ParseLevel(level),
	})
	return logger, f, nil
}

// New creates a structured logger writing to w, for tests and callers that
// manage their own sink.
func New(w io.Writer, level string) pslog.Logger {
	return pslog.NewWithOptions(w, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: ParseLevel(level),
	})
}
