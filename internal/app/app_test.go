package app

import (
	"io"
	"os"
	"testing"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/wrenholt/sshdeck/internal/config"
	"github.com/wrenholt/sshdeck/internal/input"
	"github.com/wrenholt/sshdeck/internal/logging"
	"github.com/wrenholt/sshdeck/internal/panel"
	"github.com/wrenholt/sshdeck/internal/session"
)

// newTestApp builds an App without a GUI; everything exercised here runs on
// plain state.
func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	return &App{
		panels: panel.NewManager(),
		input:  input.NewHandler(),
		log:    logging.New(io.Discard, "error"),
		cfg:    cfg,
	}
}

type fakeSession struct {
	status session.Status
	out    chan []byte
	wrote  [][]byte
	closed bool
}

func newFakeSession(status session.Status) *fakeSession {
	return &fakeSession{status: status, out: make(chan []byte, 1)}
}

func (f *fakeSession) Write(p []byte) (int, error) {
	f.wrote = append(f.wrote, append([]byte(nil), p...))
	return len(p), nil
}

func (f *fakeSession) Resize(rows, cols int) error { return nil }
func (f *fakeSession) Output() <-chan []byte       { return f.out }
func (f *fakeSession) Status() session.Status      { return f.status }
func (f *fakeSession) Err() error                  { return nil }

func (f *fakeSession) Close() error {
	f.closed = true
	f.status = session.StatusDisconnected
	return nil
}

func TestResolveTarget(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultUser = "fallback"

	t.Setenv("SSHDECK_TEST_PASS", "hunter2")
	t.Setenv("SSHDECK_TEST_PHRASE", "opensesame")

	host := config.Host{
		Name:     "web1",
		Hostname: "web1.example.com",
		Port:     2222,
		Auth: config.HostAuth{
			Method:        "password",
			PasswordEnv:   "SSHDECK_TEST_PASS",
			PassphraseEnv: "SSHDECK_TEST_PHRASE",
		},
	}

	target := resolveTarget(cfg, host)
	if target.User != "fallback" {
		t.Errorf("User = %q, want default user", target.User)
	}
	if target.Auth.Password != "hunter2" {
		t.Errorf("Password = %q", target.Auth.Password)
	}
	if target.Auth.Passphrase != "opensesame" {
		t.Errorf("Passphrase = %q", target.Auth.Passphrase)
	}
	if target.Addr() != "web1.example.com:2222" {
		t.Errorf("Addr = %q", target.Addr())
	}

	host.User = "deploy"
	if got := resolveTarget(cfg, host); got.User != "deploy" {
		t.Errorf("host user should win: %q", got.User)
	}
}

func TestVisibleEntriesFilterAndLocal(t *testing.T) {
	a := newTestApp(t)
	a.cfg.Hosts = []config.Host{
		{Name: "web1", Hostname: "h1", Group: "frontend"},
		{Name: "db1", Hostname: "h2", Group: "databases"},
	}

	if got := a.visibleEntries(); len(got) != 2 {
		t.Fatalf("unfiltered entries = %d", len(got))
	}

	a.filter = "db"
	got := a.visibleEntries()
	if len(got) != 1 || got[0].Host.Name != "db1" {
		t.Fatalf("filtered entries = %+v", got)
	}

	// an open local panel is appended regardless of filter
	a.panels.Add(panel.New(localHostName, 24, 80))
	got = a.visibleEntries()
	if len(got) != 2 || got[1].Host.Name != localHostName {
		t.Fatalf("entries with local = %+v", got)
	}
}

func TestMoveSelectionClamps(t *testing.T) {
	a := newTestApp(t)
	a.cfg.Hosts = []config.Host{
		{Name: "a", Hostname: "h"},
		{Name: "b", Hostname: "h"},
	}

	a.moveSelection(-1)
	if a.selected != 0 {
		t.Errorf("selected = %d after up from top", a.selected)
	}
	a.moveSelection(1)
	a.moveSelection(1)
	a.moveSelection(1)
	if a.selected != 1 {
		t.Errorf("selected = %d after down past bottom", a.selected)
	}
}

func TestWizardFlow(t *testing.T) {
	a := newTestApp(t)

	if err := a.addHostAction(); err != nil {
		t.Fatal(err)
	}
	if a.input.Mode() != input.ModeWizard {
		t.Fatalf("mode = %v", a.input.Mode())
	}

	// empty name is rejected, wizard stays on step 0
	if err := a.wizardAdvance(); err != nil {
		t.Fatal(err)
	}
	if a.wizard.step != 0 {
		t.Fatalf("step advanced on empty name")
	}

	a.input.SetBuffer("web1")
	a.wizardAdvance()
	a.input.SetBuffer("web1.example.com")
	a.wizardAdvance()
	a.input.SetBuffer("deploy")
	a.wizardAdvance()

	if a.wizard != nil {
		t.Fatal("wizard should be done")
	}
	if a.input.Mode() != input.ModeNormal {
		t.Errorf("mode = %v after wizard", a.input.Mode())
	}
	h := a.Config().FindHost("web1")
	if h == nil || h.Hostname != "web1.example.com" || h.User != "deploy" {
		t.Fatalf("host = %+v", h)
	}
	if _, err := os.Stat(a.Config().ConfigFile()); err != nil {
		t.Errorf("config was not persisted: %v", err)
	}
}

func TestWizardRejectsReservedName(t *testing.T) {
	a := newTestApp(t)
	a.addHostAction()
	a.input.SetBuffer(localHostName)
	a.wizardAdvance()
	if a.wizard.step != 0 {
		t.Error("reserved name should not advance the wizard")
	}
	if a.notice == "" {
		t.Error("expected a notice")
	}
}

func TestAddHostRejectsDuplicate(t *testing.T) {
	a := newTestApp(t)
	a.cfg.Hosts = []config.Host{{Name: "web1", Hostname: "h"}}

	a.addHost(config.Host{Name: "web1", Hostname: "other"})
	if len(a.Config().Hosts) != 1 {
		t.Errorf("duplicate host was added: %+v", a.Config().Hosts)
	}
	if a.notice == "" {
		t.Error("expected a notice")
	}
}

func TestRemoveHost(t *testing.T) {
	a := newTestApp(t)
	a.cfg.Hosts = []config.Host{
		{Name: "web1", Hostname: "h1"},
		{Name: "db1", Hostname: "h2"},
	}
	p := panel.New("web1", 24, 80)
	fake := newFakeSession(session.StatusConnected)
	p.Attach(fake)
	a.panels.Add(p)

	a.removeHost("web1")

	if a.Config().FindHost("web1") != nil {
		t.Error("host still in inventory")
	}
	if a.panels.Get("web1") != nil {
		t.Error("panel still registered")
	}
	if !fake.closed {
		t.Error("session was not closed")
	}
}

func TestQuitAction(t *testing.T) {
	a := newTestApp(t)

	// no sessions: quits immediately
	if err := a.quitAction(); !errors.Is(err, gocui.ErrQuit) {
		t.Fatalf("quit returned %v", err)
	}

	// live session: asks first
	p := panel.New("web1", 24, 80)
	p.Attach(newFakeSession(session.StatusConnected))
	a.panels.Add(p)

	if err := a.quitAction(); err != nil {
		t.Fatalf("quit with sessions returned %v", err)
	}
	if a.input.Mode() != input.ModeConfirm || a.confirm == nil {
		t.Fatal("expected a confirm prompt")
	}
	if err := a.runConfirm(); !errors.Is(err, gocui.ErrQuit) {
		t.Fatalf("confirmed quit returned %v", err)
	}
}

func TestConfirmCancel(t *testing.T) {
	a := newTestApp(t)
	ran := false
	a.openConfirm("sure?", func() error { ran = true; return nil })

	// esc path
	a.confirm = nil
	a.input.EnterNormalMode()
	if ran {
		t.Error("action ran after cancel")
	}
	if a.input.Mode() != input.ModeNormal {
		t.Errorf("mode = %v", a.input.Mode())
	}
}

func TestTerminalKeyChord(t *testing.T) {
	a := newTestApp(t)
	p := panel.New("web1", 24, 80)
	fake := newFakeSession(session.StatusConnected)
	p.Attach(fake)
	a.panels.Add(p)
	a.panels.SetActive("web1")
	a.input.EnterTerminalMode()

	// plain keys pass through encoded
	a.terminalKey(0, 'x', gocui.ModNone)
	if len(fake.wrote) != 1 || string(fake.wrote[0]) != "x" {
		t.Fatalf("wrote = %q", fake.wrote)
	}

	// ctrl+b arms the prefix, nothing is sent
	a.terminalKey(gocui.KeyCtrlB, 0, gocui.ModNone)
	if len(fake.wrote) != 1 {
		t.Fatalf("prefix leaked to session: %q", fake.wrote)
	}
	if !a.input.HasPrefix() {
		t.Fatal("prefix not armed")
	}

	// ctrl+b d detaches
	a.terminalKey(0, 'd', gocui.ModNone)
	if a.input.Mode() != input.ModeNormal {
		t.Errorf("mode = %v after detach chord", a.input.Mode())
	}
	if len(fake.wrote) != 1 {
		t.Errorf("detach chord leaked to session: %q", fake.wrote)
	}

	// ctrl+b ctrl+b sends a literal 0x02
	a.input.EnterTerminalMode()
	a.terminalKey(gocui.KeyCtrlB, 0, gocui.ModNone)
	a.terminalKey(gocui.KeyCtrlB, 0, gocui.ModNone)
	if len(fake.wrote) != 2 || fake.wrote[1][0] != 0x02 {
		t.Errorf("literal chord wrote %q", fake.wrote)
	}

	// ctrl+b followed by an unrelated key swallows both
	a.terminalKey(gocui.KeyCtrlB, 0, gocui.ModNone)
	a.terminalKey(0, 'z', gocui.ModNone)
	if len(fake.wrote) != 2 {
		t.Errorf("unrecognized chord leaked: %q", fake.wrote)
	}
	if a.input.Mode() != input.ModeTerminal {
		t.Errorf("mode = %v", a.input.Mode())
	}
}

func TestStartupConnect(t *testing.T) {
	a := newTestApp(t)
	a.cfg.Hosts = []config.Host{
		{Name: "web1", Hostname: "h1"},
		{Name: "db1", Hostname: "h2"},
	}

	// unknown host: reported, flag consumed
	a.connectOnStart = "nope"
	a.startupConnect()
	if a.notice == "" {
		t.Error("expected a notice for an unknown host")
	}
	if a.connectOnStart != "" {
		t.Error("startup host survived the attempt")
	}

	// known host: selection follows it and the dial begins
	p := panel.New("db1", 24, 80)
	p.SetConnecting()
	a.panels.Add(p)
	a.connectOnStart = "db1"
	a.startupConnect()
	if a.selected != 1 {
		t.Errorf("selected = %d, want 1", a.selected)
	}
	if a.connectOnStart != "" {
		t.Error("startup host survived the attempt")
	}
}

func TestEscClearsFilter(t *testing.T) {
	a := newTestApp(t)
	a.cfg.Hosts = []config.Host{{Name: "web1", Hostname: "h"}}
	a.filter = "web"

	if err := a.escHandler(nil, nil); err != nil {
		t.Fatal(err)
	}
	if a.filter != "" {
		t.Errorf("filter = %q", a.filter)
	}
}
