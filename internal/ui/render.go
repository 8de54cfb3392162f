package ui

import (
	"fmt"
	"strings"

	"github.com/jesseduffield/gocui"

	"github.com/wrenholt/sshdeck/internal/input"
	"github.com/wrenholt/sshdeck/internal/panel"
)

// RenderTerminal renders a panel's terminal content to a gocui view.
// Recovers from panics that can occur during resize race conditions.
func RenderTerminal(v *gocui.View, term *panel.SafeTerminal) {
	defer func() {
		if r := recover(); r != nil {
			// will redraw on next update
		}
	}()

	var sb strings.Builder
	if err := term.Render(&sb); err != nil {
		return
	}
	fmt.Fprint(v, sb.String())
}

// ConfigurePanelView sets up the gocui view holding a host's terminal.
func ConfigurePanelView(v *gocui.View, p *panel.Panel, isActive bool, mode input.Mode) {
	title := fmt.Sprintf(" %s [%s] ", p.Host, p.Status())
	if isActive {
		v.Title = fmt.Sprintf(" [%s]%s", mode, title)
		// heavy box-drawing frame marks the focused panel
		v.FrameRunes = []rune{'━', '┃', '┏', '┓', '┗', '┛'}
		if mode.IsTerminal() {
			v.FrameColor = gocui.ColorGreen
		} else {
			v.FrameColor = gocui.ColorBlue
		}
	} else {
		v.Title = title
		v.FrameRunes = []rune{'─', '│', '┌', '┐', '└', '┘'}
		v.FrameColor = gocui.ColorDefault
	}
	v.Frame = true
	v.Wrap = false
	v.Editable = mode.IsTerminal() && isActive
}

// ConfigurePromptView sets up a one-line input modal (filter, wizard fields).
func ConfigurePromptView(v *gocui.View, title, buffer string) {
	v.Title = title
	v.Frame = true
	v.FrameRunes = []rune{'━', '┃', '┏', '┓', '┗', '┛'}
	v.FrameColor = gocui.ColorYellow
	v.Editable = true
	v.Clear()
	fmt.Fprintf(v, " %s", buffer)
}

// ModalDimensions calculates centered modal dimensions.
func ModalDimensions(maxX, maxY, width, height int) (x0, y0, x1, y1 int) {
	x0 = (maxX - width) / 2
	y0 = (maxY - height) / 2
	x1 = x0 + width
	y1 = y0 + height
	return
}
