package ui

import (
	"strings"
	"testing"

	"github.com/wrenholt/sshdeck/internal/config"
	"github.com/wrenholt/sshdeck/internal/session"
)

func TestColorCode(t *testing.T) {
	if ColorCode("green") != ColorGreen {
		t.Error("green did not map to its escape")
	}
	if ColorCode("Red") != ColorRed {
		t.Error("color names should be case-insensitive")
	}
	if ColorCode("default") != "" || ColorCode("nope") != "" {
		t.Error("default and unknown colors should map to empty string")
	}
}

func TestStatusStyle(t *testing.T) {
	theme := config.DefaultTheme()

	got := StatusStyle(theme, session.StatusConnected)
	if got.Label != "CONNECTED" {
		t.Errorf("connected label = %q", got.Label)
	}

	// unknown status falls back to idle
	got = StatusStyle(theme, session.Status(99))
	if got.Label != theme.Status["idle"].Label {
		t.Errorf("fallback label = %q", got.Label)
	}
}

func TestFilterHosts(t *testing.T) {
	hosts := []config.Host{
		{Name: "web1", Hostname: "web1.example.com", Group: "frontend"},
		{Name: "db1", Hostname: "10.0.0.5", Group: "databases"},
		{Name: "cache", Hostname: "redis.internal", Group: "databases"},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"web1", "db1", "cache"}},
		{"web", []string{"web1"}},
		{"DATA", []string{"db1", "cache"}},
		{"redis", []string{"cache"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		got := FilterHosts(hosts, tt.query)
		if len(got) != len(tt.want) {
			t.Errorf("FilterHosts(%q) returned %d hosts, want %d", tt.query, len(got), len(tt.want))
			continue
		}
		for i, h := range got {
			if h.Name != tt.want[i] {
				t.Errorf("FilterHosts(%q)[%d] = %q, want %q", tt.query, i, h.Name, tt.want[i])
			}
		}
	}
}

func TestRenderHostList(t *testing.T) {
	theme := config.DefaultTheme()
	entries := []HostEntry{
		{Host: config.Host{Name: "web1", Group: "frontend"}, Status: session.StatusConnected},
		{Host: config.Host{Name: "web2", Group: "frontend"}, Status: session.StatusIdle},
		{Host: config.Host{Name: "db1", Group: "databases"}, Status: session.StatusFailed},
	}

	lines := RenderHostList(entries, 1, 24, theme)

	// 3 hosts plus 2 group headers
	if len(lines) != 5 {
		t.Fatalf("got %d lines: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "frontend") {
		t.Errorf("first line should be the frontend header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "web1") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.Contains(lines[2], ColorBold) {
		t.Errorf("selected row should be bold: %q", lines[2])
	}
	if !strings.Contains(lines[3], "databases") {
		t.Errorf("group change should insert a header: %q", lines[3])
	}
	if !strings.Contains(lines[4], theme.Status["failed"].Icon) {
		t.Errorf("failed host should carry the failed icon: %q", lines[4])
	}
}

func TestRenderHostListUngrouped(t *testing.T) {
	theme := config.DefaultTheme()
	entries := []HostEntry{
		{Host: config.Host{Name: "solo"}, Status: session.StatusIdle},
	}
	lines := RenderHostList(entries, 0, 24, theme)
	if len(lines) != 1 {
		t.Fatalf("ungrouped host should render without a header: %q", lines)
	}
}

func TestRenderStatusBar(t *testing.T) {
	got := RenderStatusBar("normal", "web1", "CONNECTED", 2, "q:quit", "dev", 100)
	for _, want := range []string{"[normal]", "web1", "CONNECTED", "2 connected", "q:quit", "dev"} {
		if !strings.Contains(got, want) {
			t.Errorf("status bar missing %q: %q", want, got)
		}
	}

	// no selected host
	got = RenderStatusBar("normal", "", "", 0, "", "dev", 80)
	if !strings.Contains(got, "0 connected") {
		t.Errorf("status bar = %q", got)
	}
}

func TestHelpText(t *testing.T) {
	text := HelpText(config.DefaultKeyBindings())
	for _, want := range []string{"Navigation", "Hosts", "ctrl+b d", "Enter"} {
		if !strings.Contains(text, want) {
			t.Errorf("help text missing %q", want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"ab", 3, "ab"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		got := Truncate(tt.s, tt.width)
		if got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"test", 8, "test    "},
		{"test", 4, "test"},
		{"test", 2, "te"},
		{"", 3, "   "},
	}
	for _, tt := range tests {
		got := PadRight(tt.s, tt.width)
		if got != tt.want {
			t.Errorf("PadRight(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestPadLeft(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"test", 8, "    test"},
		{"test", 4, "test"},
		{"test", 2, "te"},
	}
	for _, tt := range tests {
		got := PadLeft(tt.s, tt.width)
		if got != tt.want {
			t.Errorf("PadLeft(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestCenter(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"test", 8, "  test  "},
		{"test", 4, "test"},
		{"ab", 5, " ab  "},
		{"", 4, "    "},
	}
	for _, tt := range tests {
		got := Center(tt.s, tt.width)
		if got != tt.want {
			t.Errorf("Center(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  int // expected minimum number of lines
	}{
		{"short", 10, 1},
		{"this is a longer text that should wrap", 10, 4},
		{"line1\nline2\nline3", 100, 3},
		{"", 10, 1},
	}
	for _, tt := range tests {
		got := WrapText(tt.text, tt.width)
		if len(got) < tt.want {
			t.Errorf("WrapText(%q, %d) = %d lines, want at least %d", tt.text, tt.width, len(got), tt.want)
		}
	}
}
