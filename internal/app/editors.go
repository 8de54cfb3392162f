package app

import (
	"strings"
	"unicode"

	"github.com/jesseduffield/gocui"

	"github.com/wrenholt/sshdeck/internal/config"
	"github.com/wrenholt/sshdeck/internal/input"
)

// terminalEditor receives every key event the global bindings did not
// claim while the panel view is focused and editable.
func (a *App) terminalEditor(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	if !a.input.Mode().IsTerminal() {
		return false
	}
	a.terminalKey(key, ch, mod)
	return true
}

// terminalKey routes one key event in terminal mode: the detach chord is
// interpreted here, everything else is encoded and written to the session.
func (a *App) terminalKey(key gocui.Key, ch rune, mod gocui.Modifier) {
	p := a.panels.Active()
	if p == nil {
		a.input.EnterNormalMode()
		return
	}

	if a.input.ConsumePrefix() {
		switch {
		case ch == 'd':
			a.detach()
		case key == gocui.KeyCtrlB && ch == 0:
			// ctrl+b ctrl+b sends a literal ctrl+b
			p.WriteToSession([]byte{0x02})
		default:
			// unrecognized chord: swallow both keys
		}
		return
	}

	if key == gocui.KeyCtrlB && ch == 0 {
		a.input.SetPrefix()
		return
	}

	if data := input.EncodeKey(key, ch, mod); data != nil {
		p.WriteToSession(data)
	}
}

// promptEditor handles unbound keys inside the filter/wizard/confirm modal.
func (a *App) promptEditor(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	mode := a.input.Mode()
	if !mode.IsModal() {
		return false
	}

	if mode == input.ModeConfirm {
		switch ch {
		case 'y', 'Y':
			if err := a.runConfirm(); err != nil {
				// quit confirmations resolve to gocui.ErrQuit, which must
				// come out of the main loop, not an editor
				a.gui.Update(func(g *gocui.Gui) error { return err })
			}
		case 'n', 'N':
			a.confirm = nil
			a.input.EnterNormalMode()
		}
		return true
	}

	if key == gocui.KeySpace {
		a.input.AppendBuffer(' ')
		return true
	}
	if ch != 0 && mod == gocui.ModNone && unicode.IsPrint(ch) {
		a.input.AppendBuffer(ch)
		return true
	}
	return false
}

// helpEditor closes the help overlay on any key.
func (a *App) helpEditor(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	a.helpOpen = false
	return true
}

// === add-host wizard ===

func wizardFieldName(step int) string {
	switch step {
	case 0:
		return "name"
	case 1:
		return "hostname"
	default:
		return "user (optional)"
	}
}

// wizardAdvance consumes the buffer into the current field and moves on.
// The final step validates and persists the new host.
func (a *App) wizardAdvance() error {
	w := a.wizard
	if w == nil {
		a.input.EnterNormalMode()
		return nil
	}
	value := strings.TrimSpace(a.input.Buffer())
	a.input.SetBuffer("")

	switch w.step {
	case 0:
		if value == "" {
			a.setNotice("name is required")
			return nil
		}
		if value == localHostName {
			a.setNotice("%q is reserved", localHostName)
			return nil
		}
		w.host.Name = value
		w.step++
	case 1:
		if value == "" {
			a.setNotice("hostname is required")
			return nil
		}
		w.host.Hostname = value
		w.step++
	default:
		w.host.User = value
		a.wizard = nil
		a.input.EnterNormalMode()
		a.addHost(w.host)
	}
	return nil
}

// addHost validates and persists a wizard result.
func (a *App) addHost(host config.Host) {
	old := a.Config()
	hosts := append(append([]config.Host(nil), old.Hosts...), host)
	if err := config.ValidateHosts(hosts); err != nil {
		a.log.Warn("rejected new host", "host", host.Name, "err", err)
		a.setNotice("invalid host: %v", err)
		return
	}

	fresh := *old
	fresh.Hosts = hosts
	a.setConfig(&fresh)

	if err := fresh.Save(); err != nil {
		a.log.Error("saving config failed", "err", err)
		a.setNotice("save failed: %v", err)
		return
	}
	a.log.Info("host added", "host", host.Name, "hostname", host.Hostname)
}
