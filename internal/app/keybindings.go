package app

import (
	"strings"

	"github.com/jesseduffield/gocui"

	"github.com/wrenholt/sshdeck/internal/config"
	"github.com/wrenholt/sshdeck/internal/input"
)

// setupKeybindings installs the global key handlers. Configurable keys come
// from the config; Enter, Esc, arrows and Backspace are fixed chrome.
// Every handler dispatches on the current mode, because gocui keybindings
// fire before view editors: a bound key pressed in terminal mode must still
// reach the remote program.
func (a *App) setupKeybindings() error {
	cfg := a.Config()

	actions := []struct {
		keyStr string
		action func() error
	}{
		{cfg.Keys.Quit, a.quitAction},
		{cfg.Keys.Help, a.helpAction},
		{cfg.Keys.Filter, a.filterAction},
		{cfg.Keys.NavDown, func() error { a.moveSelection(1); return nil }},
		{cfg.Keys.NavUp, func() error { a.moveSelection(-1); return nil }},
		{cfg.Keys.AddHost, a.addHostAction},
		{cfg.Keys.DeleteHost, a.deleteHostAction},
		{cfg.Keys.Disconnect, a.disconnectAction},
		{cfg.Keys.LocalShell, a.localShellAction},
	}
	for _, binding := range actions {
		if err := a.bindConfigured(binding.keyStr, binding.action); err != nil {
			return err
		}
	}

	fixed := []struct {
		key     gocui.Key
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{gocui.KeyEnter, a.enterHandler},
		{gocui.KeyEsc, a.escHandler},
		{gocui.KeyArrowDown, a.arrowHandler(gocui.KeyArrowDown, 1)},
		{gocui.KeyArrowUp, a.arrowHandler(gocui.KeyArrowUp, -1)},
		{gocui.KeyBackspace, a.backspaceHandler(gocui.KeyBackspace)},
		{gocui.KeyBackspace2, a.backspaceHandler(gocui.KeyBackspace2)},
	}
	for _, binding := range fixed {
		if err := a.gui.SetKeybinding("", binding.key, gocui.ModNone, binding.handler); err != nil {
			return err
		}
	}
	return nil
}

// bindConfigured installs one configurable key with mode dispatch.
func (a *App) bindConfigured(keyStr string, action func() error) error {
	k, err := config.ParseKey(keyStr)
	if err != nil {
		return err
	}
	handler := func(g *gocui.Gui, v *gocui.View) error {
		if a.closeHelpIfOpen() {
			return nil
		}
		mode := a.input.Mode()
		switch {
		case mode.IsTerminal():
			if k.IsRune() {
				a.terminalKey(0, k.Rune(), gocui.ModNone)
			} else {
				a.terminalKey(k.GocuiKey(), 0, gocui.ModNone)
			}
			return nil
		case mode.IsModal():
			// text modals still want this character
			if k.IsRune() && mode != input.ModeConfirm {
				a.input.AppendBuffer(k.Rune())
			}
			return nil
		default:
			a.clearNotice()
			return action()
		}
	}
	if k.IsRune() {
		return a.gui.SetKeybinding("", k.Rune(), k.Mod, handler)
	}
	return a.gui.SetKeybinding("", k.GocuiKey(), k.Mod, handler)
}

func (a *App) closeHelpIfOpen() bool {
	if a.helpOpen {
		a.helpOpen = false
		return true
	}
	return false
}

// enterHandler: confirm accepts, modals advance, normal mode connects.
func (a *App) enterHandler(g *gocui.Gui, v *gocui.View) error {
	if a.closeHelpIfOpen() {
		return nil
	}
	switch a.input.Mode() {
	case input.ModeTerminal:
		a.terminalKey(gocui.KeyEnter, 0, gocui.ModNone)
		return nil
	case input.ModeConfirm:
		return a.runConfirm()
	case input.ModeWizard:
		return a.wizardAdvance()
	case input.ModeFilter:
		a.filter = strings.TrimSpace(a.input.ConsumeBuffer())
		a.clampSelection()
		return nil
	default:
		entry := a.selectedEntry()
		if entry == nil {
			return nil
		}
		if entry.Host.Name == localHostName {
			a.connectLocal()
			return nil
		}
		a.connectHost(entry.Host)
		return nil
	}
}

// escHandler: modals cancel, terminal mode forwards ESC, normal mode clears
// the filter.
func (a *App) escHandler(g *gocui.Gui, v *gocui.View) error {
	if a.closeHelpIfOpen() {
		return nil
	}
	switch a.input.Mode() {
	case input.ModeTerminal:
		a.terminalKey(gocui.KeyEsc, 0, gocui.ModNone)
	case input.ModeConfirm:
		a.confirm = nil
		a.input.EnterNormalMode()
	case input.ModeWizard:
		a.wizard = nil
		a.input.EnterNormalMode()
	case input.ModeFilter:
		a.input.EnterNormalMode()
	default:
		a.filter = ""
		a.clearNotice()
		a.clampSelection()
	}
	return nil
}

func (a *App) arrowHandler(key gocui.Key, delta int) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		if a.closeHelpIfOpen() {
			return nil
		}
		mode := a.input.Mode()
		switch {
		case mode.IsTerminal():
			a.terminalKey(key, 0, gocui.ModNone)
		case mode.IsModal():
			// nothing
		default:
			a.moveSelection(delta)
		}
		return nil
	}
}

func (a *App) backspaceHandler(key gocui.Key) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		if a.closeHelpIfOpen() {
			return nil
		}
		mode := a.input.Mode()
		switch {
		case mode.IsTerminal():
			a.terminalKey(key, 0, gocui.ModNone)
		case mode == input.ModeFilter || mode == input.ModeWizard:
			a.input.BackspaceBuffer()
		}
		return nil
	}
}

// === normal mode actions ===

func (a *App) quitAction() error {
	if n := a.connectedCount(); n > 0 {
		a.openConfirm("close all sessions and quit?", func() error {
			return gocui.ErrQuit
		})
		return nil
	}
	return gocui.ErrQuit
}

func (a *App) helpAction() error {
	a.helpOpen = true
	return nil
}

func (a *App) filterAction() error {
	a.input.SetMode(input.ModeFilter)
	a.input.SetBuffer(a.filter)
	return nil
}

func (a *App) addHostAction() error {
	a.wizard = &wizardState{}
	a.input.SetMode(input.ModeWizard)
	return nil
}

func (a *App) deleteHostAction() error {
	entry := a.selectedEntry()
	if entry == nil || entry.Host.Name == localHostName {
		return nil
	}
	name := entry.Host.Name
	a.openConfirm("delete host "+name+"?", func() error {
		a.removeHost(name)
		return nil
	})
	return nil
}

func (a *App) disconnectAction() error {
	entry := a.selectedEntry()
	if entry == nil {
		return nil
	}
	a.disconnect(entry.Host.Name)
	return nil
}

func (a *App) localShellAction() error {
	a.connectLocal()
	return nil
}

// === confirm modal ===

func (a *App) openConfirm(prompt string, action func() error) {
	a.confirm = &confirmState{prompt: prompt, action: action}
	a.input.SetMode(input.ModeConfirm)
}

func (a *App) runConfirm() error {
	c := a.confirm
	a.confirm = nil
	a.input.EnterNormalMode()
	if c == nil {
		return nil
	}
	return c.action()
}

// removeHost drops a host from the inventory and persists the change.
func (a *App) removeHost(name string) {
	old := a.Config()
	fresh := *old
	fresh.Hosts = make([]config.Host, 0, len(old.Hosts))
	for _, h := range old.Hosts {
		if h.Name != name {
			fresh.Hosts = append(fresh.Hosts, h)
		}
	}
	a.setConfig(&fresh)
	a.panels.Remove(name)
	a.clampSelection()

	if err := fresh.Save(); err != nil {
		a.log.Error("saving config failed", "err", err)
		a.setNotice("save failed: %v", err)
		return
	}
	a.log.Info("host removed", "host", name)
}
