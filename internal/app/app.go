// Package app provides application lifecycle and orchestration: the gocui
// event loop, the deck layout, and the wiring between host inventory,
// sessions and panels.
package app

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"
	"pkt.systems/pslog"

	"github.com/wrenholt/sshdeck/internal/config"
	"github.com/wrenholt/sshdeck/internal/input"
	"github.com/wrenholt/sshdeck/internal/panel"
	"github.com/wrenholt/sshdeck/internal/session"
	"github.com/wrenholt/sshdeck/internal/ui"
	"github.com/wrenholt/sshdeck/internal/version"
)

// View names for the fixed chrome views.
const (
	viewHosts     = "hosts"
	viewDetails   = "details"
	viewStatusBar = "statusbar"
	viewHelp      = "help"
	viewPrompt    = "prompt"
	viewPanelNone = "panel-empty"
)

// App is the sshdeck application.
type App struct {
	gui    *gocui.Gui
	panels *panel.Manager
	input  *input.Handler
	log    pslog.Logger

	cfgMu sync.RWMutex
	cfg   *config.Config

	watcher *config.Watcher

	// host list state; only touched from the UI goroutine
	selected int
	filter   string
	helpOpen bool
	notice   string
	wizard   *wizardState
	confirm  *confirmState

	// layout state for resize detection
	lastMaxX, lastMaxY int
	lastPanelView      string
	firstCall          bool

	// host to connect to once the first layout has sized the deck
	connectOnStart string
}

// wizardState is the in-flight add-host form.
type wizardState struct {
	step int // 0 name, 1 hostname, 2 user
	host config.Host
}

// confirmState is a pending yes/no prompt.
type confirmState struct {
	prompt string
	action func() error
}

// New creates the application. The logger should already write to the log
// file; the terminal belongs to gocui.
func New(cfg *config.Config, log pslog.Logger) (*App, error) {
	g, err := gocui.NewGui(gocui.NewGuiOpts{
		OutputMode: gocui.OutputTrue,
	})
	if err != nil {
		return nil, errors.Errorf("initializing GUI: %v", err)
	}

	a := &App{
		gui:       g,
		panels:    panel.NewManager(),
		input:     input.NewHandler(),
		log:       log,
		cfg:       cfg,
		firstCall: true,
	}
	return a, nil
}

// ConnectOnStart queues a host to dial as soon as the UI is up. An empty
// name is a no-op.
func (a *App) ConnectOnStart(name string) {
	a.connectOnStart = name
}

// Config returns the current configuration snapshot.
func (a *App) Config() *config.Config {
	a.cfgMu.RLock()
	defer a.cfgMu.RUnlock()
	return a.cfg
}

func (a *App) setConfig(cfg *config.Config) {
	a.cfgMu.Lock()
	a.cfg = cfg
	a.cfgMu.Unlock()
}

// Run starts the main event loop and blocks until quit.
func (a *App) Run() error {
	defer a.Close()

	a.gui.SetManagerFunc(a.layout)

	if err := a.setupKeybindings(); err != nil {
		return errors.Errorf("setting up keybindings: %v", err)
	}

	a.startWatcher()

	// SIGINT/SIGTERM exit the loop cleanly; sessions are closed in Close
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		a.gui.Update(func(g *gocui.Gui) error {
			return gocui.ErrQuit
		})
	}()

	a.log.Info("event loop starting", "hosts", len(a.Config().Hosts))
	if err := a.gui.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) && err.Error() != "quit" {
		return errors.Errorf("main loop: %v", err)
	}
	return nil
}

// Close tears down all sessions and releases the terminal.
func (a *App) Close() {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	a.panels.CloseAll()
	a.gui.Close()
	a.log.Info("shut down")
}

// startWatcher begins config hot-reload. Watch failures are logged and the
// app continues with the startup config.
func (a *App) startWatcher() {
	cfg := a.Config()
	if err := cfg.EnsureDataDir(); err != nil {
		a.log.Warn("config watch disabled", "err", err)
		return
	}
	w, err := config.Watch(cfg.DataDir, func(fresh *config.Config) {
		a.gui.Update(func(g *gocui.Gui) error {
			a.applyConfig(fresh)
			return nil
		})
	}, func(err error) {
		a.log.Warn("config reload failed", "err", err)
	})
	if err != nil {
		a.log.Warn("config watch disabled", "err", err)
		return
	}
	a.watcher = w
}

// applyConfig swaps in a reloaded config. Runs on the UI goroutine. Open
// sessions keep their original targets; the inventory, keys and theme take
// effect immediately.
func (a *App) applyConfig(fresh *config.Config) {
	old := a.Config()
	fresh.DataDir = old.DataDir
	a.setConfig(fresh)
	a.clampSelection()
	a.log.Info("config reloaded", "hosts", len(fresh.Hosts))

	if keysChanged(old.Keys, fresh.Keys) {
		// all bindings live on the global ("") view scope
		a.gui.DeleteViewKeybindings("")
		if err := a.setupKeybindings(); err != nil {
			a.log.Error("rebinding keys failed", "err", err)
		}
	}
}

func keysChanged(a, b config.KeyBindings) bool {
	return a != b
}

// visibleEntries returns the filtered host list plus live statuses, in
// inventory order. The local shell panel is appended when open.
func (a *App) visibleEntries() []ui.HostEntry {
	cfg := a.Config()
	query := a.filter
	if a.input.Mode() == input.ModeFilter {
		query = a.input.Buffer()
	}
	hosts := ui.FilterHosts(cfg.Hosts, query)

	entries := make([]ui.HostEntry, 0, len(hosts)+1)
	for _, h := range hosts {
		status := session.StatusIdle
		if p := a.panels.Get(h.Name); p != nil {
			status = p.Status()
		}
		entries = append(entries, ui.HostEntry{Host: h, Status: status})
	}
	if p := a.panels.Get(localHostName); p != nil {
		entries = append(entries, ui.HostEntry{
			Host:   config.Host{Name: localHostName},
			Status: p.Status(),
		})
	}
	return entries
}

// selectedEntry returns the highlighted entry, or nil when the list is
// empty.
func (a *App) selectedEntry() *ui.HostEntry {
	entries := a.visibleEntries()
	if len(entries) == 0 {
		return nil
	}
	if a.selected >= len(entries) {
		a.selected = len(entries) - 1
	}
	if a.selected < 0 {
		a.selected = 0
	}
	e := entries[a.selected]
	return &e
}

func (a *App) clampSelection() {
	if n := len(a.visibleEntries()); a.selected >= n {
		a.selected = n - 1
	}
	if a.selected < 0 {
		a.selected = 0
	}
}

func (a *App) moveSelection(delta int) {
	entries := a.visibleEntries()
	if len(entries) == 0 {
		return
	}
	a.selected += delta
	if a.selected < 0 {
		a.selected = 0
	}
	if a.selected >= len(entries) {
		a.selected = len(entries) - 1
	}
}

// connectedCount returns how many panels hold a live session.
func (a *App) connectedCount() int {
	n := 0
	for _, p := range a.panels.All() {
		if p.Connected() {
			n++
		}
	}
	return n
}

// setNotice records a one-line message for the status bar.
func (a *App) setNotice(format string, args ...any) {
	a.notice = fmt.Sprintf(format, args...)
}

func (a *App) clearNotice() {
	a.notice = ""
}

// statusHints picks the middle text of the status bar.
func (a *App) statusHints(cfg *config.Config, mode input.Mode) string {
	if a.notice != "" {
		return a.notice
	}
	return ui.DefaultHints(cfg.Keys, strings.ToLower(mode.String()))
}

// versionString is what the status bar shows on the right.
func versionString() string {
	return "sshdeck " + version.Short()
}
