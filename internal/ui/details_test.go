package ui

import (
	"strings"
	"testing"

	"github.com/go-errors/errors"

	"github.com/wrenholt/sshdeck/internal/config"
	"github.com/wrenholt/sshdeck/internal/session"
)

func TestRenderHostDetails(t *testing.T) {
	host := &config.Host{
		Name:     "web1",
		Hostname: "web1.example.com",
		Port:     2222,
		User:     "deploy",
	}

	var sb strings.Builder
	RenderHostDetails(&sb, host, session.StatusConnected, nil, config.DefaultTheme(), 40)
	got := sb.String()

	if !strings.Contains(got, "CONNECTED") {
		t.Error("details should show the status label")
	}
	for _, want := range []string{"web1", "web1.example.com", "2222", "deploy"} {
		if !strings.Contains(got, want) {
			t.Errorf("details missing %q:\n%s", want, got)
		}
	}
}

func TestRenderHostDetailsError(t *testing.T) {
	host := &config.Host{Name: "db1", Hostname: "10.0.0.5"}

	var sb strings.Builder
	RenderHostDetails(&sb, host, session.StatusFailed, errors.New("authentication failed"), config.DefaultTheme(), 60)
	got := sb.String()

	if !strings.Contains(got, "authentication failed") {
		t.Errorf("details should show the last error:\n%s", got)
	}
}

func TestRenderHostDetailsNil(t *testing.T) {
	var sb strings.Builder
	RenderHostDetails(&sb, nil, session.StatusIdle, nil, config.DefaultTheme(), 40)
	if !strings.Contains(sb.String(), "no host selected") {
		t.Errorf("got %q", sb.String())
	}
}
