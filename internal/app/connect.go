package app

import (
	"context"
	"os"
	"time"

	"github.com/jesseduffield/gocui"

	"github.com/wrenholt/sshdeck/internal/config"
	"github.com/wrenholt/sshdeck/internal/panel"
	"github.com/wrenholt/sshdeck/internal/session"
)

// localHostName is the reserved list entry for the local shell panel.
const localHostName = "local"

// resolveTarget turns an inventory host into a dialable target, filling in
// the default user and pulling secrets from the environment.
func resolveTarget(cfg *config.Config, host config.Host) session.Target {
	user := host.User
	if user == "" {
		user = cfg.DefaultUser
	}
	auth := session.Auth{
		Method:  host.Auth.Method,
		KeyFile: host.Auth.KeyFile,
	}
	if host.Auth.PassphraseEnv != "" {
		auth.Passphrase = os.Getenv(host.Auth.PassphraseEnv)
	}
	if host.Auth.PasswordEnv != "" {
		auth.Password = os.Getenv(host.Auth.PasswordEnv)
	}
	return session.Target{
		Name: host.Name,
		Host: host.Hostname,
		Port: host.Port,
		User: user,
		Auth: auth,
	}
}

// panelSize returns the terminal dimensions the main area currently offers.
func (a *App) panelSize() (rows, cols int) {
	maxX, maxY := a.gui.Size()
	deck := panel.CalculateDeckLayout(maxX, maxY)
	return deck.Main.Height(), deck.Main.Width()
}

// ensurePanel returns the panel for the host, creating it at the current
// main-area size if needed.
func (a *App) ensurePanel(host string) *panel.Panel {
	if p := a.panels.Get(host); p != nil {
		return p
	}
	rows, cols := a.panelSize()
	p := panel.New(host, rows, cols)
	a.panels.Add(p)
	return p
}

// connectHost dials the selected host in the background and attaches the
// panel on success. Runs on the UI goroutine; the dial itself does not.
func (a *App) connectHost(host config.Host) {
	p := a.ensurePanel(host.Name)
	switch p.Status() {
	case session.StatusConnected:
		a.panels.SetActive(host.Name)
		a.input.EnterTerminalMode()
		return
	case session.StatusConnecting:
		return
	}

	cfg := a.Config()
	target := resolveTarget(cfg, host)
	timeout := time.Duration(cfg.ConnectTimeout) * time.Second

	p.SetConnecting()
	a.panels.SetActive(host.Name)
	a.log.Info("connecting", "host", host.Name, "addr", target.Addr())

	go func() {
		rows, cols := p.Term.Dimensions()
		remote, err := session.Dial(context.Background(), target, session.DialOptions{
			Timeout: timeout,
			Rows:    rows,
			Cols:    cols,
		})
		a.gui.Update(func(g *gocui.Gui) error {
			if err != nil {
				p.Fail(err)
				a.log.Error("connect failed", "host", host.Name, "err", err)
				return nil
			}
			p.Attach(remote)
			a.input.EnterTerminalMode()
			a.log.Info("connected", "host", host.Name)
			go a.processOutput(p)
			return nil
		})
	}()
}

// connectLocal opens (or focuses) the local shell panel.
func (a *App) connectLocal() {
	p := a.ensurePanel(localHostName)
	if p.Connected() {
		a.panels.SetActive(localHostName)
		a.input.EnterTerminalMode()
		return
	}

	shell := a.Config().LocalShell
	rows, cols := p.Term.Dimensions()
	local, err := session.StartLocal(shell, rows, cols)
	if err != nil {
		p.Fail(err)
		a.log.Error("local shell failed", "shell", shell, "err", err)
		return
	}
	p.Attach(local)
	a.panels.SetActive(localHostName)
	a.input.EnterTerminalMode()
	a.log.Info("local shell started", "shell", shell)
	go a.processOutput(p)
}

// processOutput pumps session output into the panel's emulator and schedules
// redraws. Exits when the session's output channel closes; one final update
// repaints the disconnected state.
func (a *App) processOutput(p *panel.Panel) {
	ch := p.Output()
	if ch == nil {
		return
	}
	for data := range ch {
		p.WriteToTerminal(data)
		a.gui.Update(func(g *gocui.Gui) error { return nil })
	}
	a.log.Info("session ended", "host", p.Host)
	a.gui.Update(func(g *gocui.Gui) error {
		if a.panels.Active() == p && a.input.Mode().IsTerminal() {
			a.input.EnterNormalMode()
		}
		return nil
	})
}

// startupConnect dials the host named by the --connect flag. Runs once,
// from the first layout pass.
func (a *App) startupConnect() {
	name := a.connectOnStart
	a.connectOnStart = ""
	if name == "" {
		return
	}
	if name == localHostName {
		a.connectLocal()
		return
	}
	host := a.Config().FindHost(name)
	if host == nil {
		a.setNotice("unknown host %q", name)
		a.log.Warn("startup connect skipped", "host", name)
		return
	}
	for i, e := range a.visibleEntries() {
		if e.Host.Name == name {
			a.selected = i
			break
		}
	}
	a.connectHost(*host)
}

// detach leaves terminal mode; the session keeps running in the background.
func (a *App) detach() {
	a.input.EnterNormalMode()
	if p := a.panels.Active(); p != nil {
		a.log.Debug("detached", "host", p.Host)
	}
}

// disconnect closes the selected host's session. The panel and its last
// rendered grid stay around.
func (a *App) disconnect(host string) {
	p := a.panels.Get(host)
	if p == nil {
		return
	}
	if err := p.Close(); err != nil {
		a.log.Warn("close failed", "host", host, "err", err)
	}
	a.log.Info("disconnected", "host", host)
}
