package app

import (
	"fmt"
	"strings"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/wrenholt/sshdeck/internal/config"
	"github.com/wrenholt/sshdeck/internal/input"
	"github.com/wrenholt/sshdeck/internal/panel"
	"github.com/wrenholt/sshdeck/internal/session"
	"github.com/wrenholt/sshdeck/internal/ui"
)

// layout is the gocui manager function. It arranges the four chrome regions
// and the active panel, resizing the attached session when the window
// changed since the last frame.
func (a *App) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	cfg := a.Config()
	mode := a.input.Mode()
	deck := panel.CalculateDeckLayout(maxX, maxY)

	resized := maxX != a.lastMaxX || maxY != a.lastMaxY
	a.lastMaxX, a.lastMaxY = maxX, maxY

	if err := a.layoutHosts(g, deck, cfg, mode); err != nil {
		return err
	}
	if err := a.layoutDetails(g, deck, cfg); err != nil {
		return err
	}
	if err := a.layoutMain(g, deck, mode, resized); err != nil {
		return err
	}
	if err := a.layoutStatusBar(g, deck, cfg, mode); err != nil {
		return err
	}
	if err := a.layoutModals(g, maxX, maxY, mode); err != nil {
		return err
	}

	a.focus(g, mode)
	if a.firstCall && a.connectOnStart != "" {
		// the deck is sized now, so the panel can be created at its real
		// dimensions
		a.startupConnect()
	}
	a.firstCall = false
	return nil
}

// setView wraps gocui.SetView, tolerating the unknown-view error that the
// first creation of every view reports.
func setView(g *gocui.Gui, name string, l panel.Layout) (*gocui.View, error) {
	v, err := g.SetView(name, l.X0, l.Y0, l.X1, l.Y1, 0)
	if err != nil && !errors.Is(err, gocui.ErrUnknownView) && err.Error() != "unknown view" {
		return nil, err
	}
	return v, nil
}

func (a *App) layoutHosts(g *gocui.Gui, deck panel.DeckLayout, cfg *config.Config, mode input.Mode) error {
	v, err := setView(g, viewHosts, deck.Hosts)
	if err != nil {
		return err
	}
	v.Title = " hosts "
	v.Frame = true
	v.Wrap = false

	entries := a.visibleEntries()
	if a.selected >= len(entries) && len(entries) > 0 {
		a.selected = len(entries) - 1
	}

	v.Clear()
	width := deck.Hosts.Width()
	for _, line := range ui.RenderHostList(entries, a.selected, width, cfg.Theme) {
		fmt.Fprintln(v, line)
	}
	return nil
}

func (a *App) layoutDetails(g *gocui.Gui, deck panel.DeckLayout, cfg *config.Config) error {
	v, err := setView(g, viewDetails, deck.Details)
	if err != nil {
		return err
	}
	v.Title = " details "
	v.Frame = true
	v.Wrap = true

	v.Clear()
	entry := a.selectedEntry()
	if entry == nil {
		ui.RenderHostDetails(v, nil, session.StatusIdle, nil, cfg.Theme, deck.Details.Width())
		return nil
	}
	var lastErr error
	if p := a.panels.Get(entry.Host.Name); p != nil {
		lastErr = p.Err()
	}
	host := entry.Host
	ui.RenderHostDetails(v, &host, entry.Status, lastErr, cfg.Theme, deck.Details.Width())
	return nil
}

// layoutMain draws the attached panel's terminal, or a placeholder when
// nothing is attached. The grid resize happens before the view renders so
// the frame is drawn with matching dimensions.
func (a *App) layoutMain(g *gocui.Gui, deck panel.DeckLayout, mode input.Mode, resized bool) error {
	active := a.panels.Active()

	if active == nil {
		g.DeleteView(a.lastPanelView)
		a.lastPanelView = ""
		v, err := setView(g, viewPanelNone, deck.Main)
		if err != nil {
			return err
		}
		v.Title = " sshdeck "
		v.Frame = true
		v.Wrap = false
		v.Clear()
		fmt.Fprint(v, "\n\n  no session attached\n\n  select a host and press enter to connect")
		return nil
	}

	g.DeleteView(viewPanelNone)
	if a.lastPanelView != "" && a.lastPanelView != active.ViewName {
		g.DeleteView(a.lastPanelView)
	}
	a.lastPanelView = active.ViewName

	width := deck.Main.Width()
	height := deck.Main.Height()
	rows, cols := active.Term.Dimensions()
	if resized || rows != height || cols != width {
		if width > 0 && height > 0 {
			active.Resize(height, width)
		}
	}

	v, err := setView(g, active.ViewName, deck.Main)
	if err != nil {
		return err
	}
	ui.ConfigurePanelView(v, active, true, mode)
	v.Editor = gocui.EditorFunc(a.terminalEditor)

	v.Clear()
	ui.RenderTerminal(v, active.Term)
	return nil
}

func (a *App) layoutStatusBar(g *gocui.Gui, deck panel.DeckLayout, cfg *config.Config, mode input.Mode) error {
	v, err := setView(g, viewStatusBar, deck.StatusBar)
	if err != nil {
		return err
	}
	v.Frame = false
	v.Wrap = false

	host := ""
	label := ""
	if entry := a.selectedEntry(); entry != nil {
		host = entry.Host.Name
		label = ui.StatusStyle(cfg.Theme, entry.Status).Label
	}

	v.Clear()
	bar := ui.RenderStatusBar(
		strings.ToLower(mode.String()), host, label,
		a.connectedCount(), a.statusHints(cfg, mode),
		versionString(), deck.StatusBar.Width(),
	)
	fg := ui.ColorCode(cfg.Theme.Colors.StatusBarFg)
	fmt.Fprint(v, fg+bar+ui.ColorReset)
	return nil
}

// layoutModals draws the help overlay and the prompt modal for filter,
// wizard and confirm modes.
func (a *App) layoutModals(g *gocui.Gui, maxX, maxY int, mode input.Mode) error {
	cfg := a.Config()

	if a.helpOpen {
		text := ui.HelpText(cfg.Keys)
		w, h := modalSizeFor(text, maxX, maxY)
		x0, y0, x1, y1 := ui.ModalDimensions(maxX, maxY, w, h)
		v, err := setView(g, viewHelp, panel.Layout{X0: x0, Y0: y0, X1: x1, Y1: y1})
		if err != nil {
			return err
		}
		v.Title = " help "
		v.Frame = true
		v.FrameRunes = []rune{'━', '┃', '┏', '┓', '┗', '┛'}
		v.Wrap = true
		v.Editable = true
		v.Editor = gocui.EditorFunc(a.helpEditor)
		v.Clear()
		fmt.Fprint(v, text)
		return nil
	}
	g.DeleteView(viewHelp)

	if mode.IsModal() {
		x0, y0, x1, y1 := ui.ModalDimensions(maxX, maxY, 50, 2)
		v, err := setView(g, viewPrompt, panel.Layout{X0: x0, Y0: y0, X1: x1, Y1: y1})
		if err != nil {
			return err
		}
		ui.ConfigurePromptView(v, a.promptTitle(mode), a.promptBody(mode))
		v.Editor = gocui.EditorFunc(a.promptEditor)
		return nil
	}
	g.DeleteView(viewPrompt)
	return nil
}

// promptTitle returns the modal title for the current modal mode.
func (a *App) promptTitle(mode input.Mode) string {
	switch mode {
	case input.ModeFilter:
		return " filter hosts (enter=apply, esc=cancel) "
	case input.ModeWizard:
		if a.wizard != nil {
			return fmt.Sprintf(" add host: %s (enter=next, esc=cancel) ", wizardFieldName(a.wizard.step))
		}
		return " add host "
	case input.ModeConfirm:
		if a.confirm != nil {
			return fmt.Sprintf(" %s (y/n) ", a.confirm.prompt)
		}
		return " confirm (y/n) "
	default:
		return ""
	}
}

// promptBody returns the editable text shown inside the modal.
func (a *App) promptBody(mode input.Mode) string {
	if mode == input.ModeConfirm {
		return ""
	}
	return a.input.Buffer()
}

// focus decides which view owns the cursor.
func (a *App) focus(g *gocui.Gui, mode input.Mode) {
	switch {
	case a.helpOpen:
		g.SetCurrentView(viewHelp)
		g.Cursor = false
	case mode.IsModal():
		if v, err := g.View(viewPrompt); err == nil {
			g.SetCurrentView(viewPrompt)
			g.Cursor = mode != input.ModeConfirm
			v.SetCursor(len(a.input.Buffer())+1, 0)
		}
	default:
		active := a.panels.Active()
		if active == nil {
			g.SetCurrentView(viewHosts)
			g.Cursor = false
			return
		}
		if _, err := g.SetCurrentView(active.ViewName); err != nil && a.firstCall {
			return
		}
		if mode.IsTerminal() && active.Connected() && active.Term.CursorVisible() {
			x, y := active.Term.Cursor()
			if v, err := g.View(active.ViewName); err == nil {
				v.SetCursor(x, y)
			}
			g.Cursor = true
		} else {
			g.Cursor = false
		}
	}
}

// modalSizeFor sizes a modal to its content, capped to the screen.
func modalSizeFor(text string, maxX, maxY int) (w, h int) {
	w, h = 0, 2
	for _, line := range strings.Split(text, "\n") {
		if len(line) > w {
			w = len(line)
		}
		h++
	}
	w += 4
	if w > maxX-2 {
		w = maxX - 2
	}
	if h > maxY-2 {
		h = maxY - 2
	}
	return w, h
}
