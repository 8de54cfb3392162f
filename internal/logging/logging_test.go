package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"pkt.systems/pslog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want pslog.Level
	}{
		{"trace", pslog.TraceLevel},
		{"debug", pslog.DebugLevel},
		{"info", pslog.InfoLevel},
		{"warn", pslog.WarnLevel},
		{"error", pslog.ErrorLevel},
		{"bogus", pslog.InfoLevel},
		{"", pslog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info")

	logger.Debug("should be dropped")
	logger.Info("kept", "host", "web1")

	data := buf.Bytes()
	if len(data) == 0 {
		t.Fatal("no log output")
	}
	idx := bytes.IndexByte(data, '\n')
	if idx == -1 {
		idx = len(data)
	}
	entry := map[string]any{}
	if err := json.Unmarshal(bytes.TrimSpace(data[:idx]), &entry); err != nil {
		t.Fatalf("parse log entry: %v\n%s", err, data)
	}
	if entry["host"] != "web1" {
		t.Errorf("missing field: %v", entry)
	}
	if bytes.Contains(data, []byte("dropped")) {
		t.Error("debug line was not filtered at info level")
	}
}

func TestOpenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sshdeck.log")

	logger, closer, err := Open(path, "debug")
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("first run")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	logger, closer, err = Open(path, "debug")
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("second run")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("first run")) || !bytes.Contains(data, []byte("second run")) {
		t.Errorf("log file should contain both runs:\n%s", data)
	}
}
