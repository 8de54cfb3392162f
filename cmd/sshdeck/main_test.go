package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommandFlags(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"data-dir", "log-level", "connect"} {
		if root.Flags().Lookup(name) == nil {
			t.Errorf("missing --%s flag", name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "sshdeck ") {
		t.Errorf("version output = %q", buf.String())
	}
}
