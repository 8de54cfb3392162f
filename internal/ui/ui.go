// Package ui provides shared rendering helpers for sshdeck: host list,
// details panel, status bar and text utilities.
package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/wrenholt/sshdeck/internal/config"
	"github.com/wrenholt/sshdeck/internal/session"
)

// Colors and styles for the TUI
const (
	ColorReset   = "\033[0m"
	ColorBold    = "\033[1m"
	ColorDim     = "\033[2m"
	ColorBlack   = "\033[30m"
	ColorRed     = "\033[31m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorWhite   = "\033[37m"
)

// ColorCode maps a theme color name to its ANSI escape. Unknown names and
// "default" map to the empty string, which renders in the terminal default.
func ColorCode(name string) string {
	switch strings.ToLower(name) {
	case "black":
		return ColorBlack
	case "red":
		return ColorRed
	case "green":
		return ColorGreen
	case "yellow":
		return ColorYellow
	case "blue":
		return ColorBlue
	case "magenta":
		return ColorMagenta
	case "cyan":
		return ColorCyan
	case "white":
		return ColorWhite
	default:
		return ""
	}
}

// StatusStyle looks up the theme style for a session status, falling back to
// the idle style for statuses the theme does not name.
func StatusStyle(theme config.Theme, status session.Status) config.StatusStyle {
	if style, ok := theme.Status[status.String()]; ok {
		return style
	}
	return theme.Status["idle"]
}

// HostEntry pairs a host with its live panel status for list rendering.
type HostEntry struct {
	Host   config.Host
	Status session.Status
}

// FilterHosts returns the hosts whose name, hostname or group contains the
// query, case-insensitively. An empty query keeps everything.
func FilterHosts(hosts []config.Host, query string) []config.Host {
	if query == "" {
		return hosts
	}
	q := strings.ToLower(query)
	var out []config.Host
	for _, h := range hosts {
		if strings.Contains(strings.ToLower(h.Name), q) ||
			strings.Contains(strings.ToLower(h.Hostname), q) ||
			strings.Contains(strings.ToLower(h.Group), q) {
			out = append(out, h)
		}
	}
	return out
}

// RenderHostList renders the sidebar host list. Hosts are shown in inventory
// order with group headers inserted on group change; ungrouped hosts come
// under no header. Returns one string per line.
func RenderHostList(entries []HostEntry, selected int, width int, theme config.Theme) []string {
	lines := make([]string, 0, len(entries)+4)
	lastGroup := ""
	first := true
	for i, e := range entries {
		if e.Host.Group != lastGroup || first {
			if e.Host.Group != "" {
				lines = append(lines, ColorDim+Truncate(e.Host.Group, width)+ColorReset)
			}
			lastGroup = e.Host.Group
			first = false
		}
		lines = append(lines, hostLine(e, i == selected, width, theme))
	}
	return lines
}

// hostLine renders one host row: status icon, name, and the selection
// highlight from the theme.
func hostLine(e HostEntry, selected bool, width int, theme config.Theme) string {
	style := StatusStyle(theme, e.Status)
	icon := style.Icon
	if icon == "" {
		icon = "?"
	}

	label := fmt.Sprintf(" %s %s", icon, e.Host.Name)
	label = PadRight(label, width)

	if selected {
		fg := ColorCode(theme.Colors.SelectionFg)
		bg := bgCode(theme.Colors.SelectionBg)
		return ColorBold + fg + bg + label + ColorReset
	}
	return ColorCode(style.Color) + label + ColorReset
}

// bgCode maps a theme color name to a background ANSI escape.
func bgCode(name string) string {
	fg := ColorCode(name)
	if fg == "" {
		return ""
	}
	// foreground escapes are \033[3Xm; backgrounds are \033[4Xm
	return strings.Replace(fg, "[3", "[4", 1)
}

// RenderStatusBar creates the bottom status bar content: mode, selected host
// with its status label, session count, and the key hints.
func RenderStatusBar(mode string, host string, statusLabel string, connected int, hints string, version string, width int) string {
	left := fmt.Sprintf(" [%s]", mode)
	if host != "" {
		left += fmt.Sprintf(" %s: %s", host, statusLabel)
	}
	left += fmt.Sprintf(" │ %d connected", connected)

	right := version + " "
	middle := hints

	used := runewidth.StringWidth(left) + runewidth.StringWidth(right)
	space := width - used
	if space < 0 {
		return Truncate(left, width)
	}
	return left + Center(middle, space) + right
}

// DefaultHints returns the key hints shown in the status bar for a mode.
func DefaultHints(keys config.KeyBindings, mode string) string {
	switch mode {
	case "terminal":
		return "ctrl+b d:detach  ctrl+b ctrl+b:literal"
	case "filter":
		return "enter:apply  esc:cancel"
	default:
		return fmt.Sprintf("%s/%s:nav enter:connect %s:disconnect %s:add %s:del %s:filter %s:help %s:quit",
			keys.NavDown, keys.NavUp, keys.Disconnect, keys.AddHost, keys.DeleteHost, keys.Filter, keys.Help, keys.Quit)
	}
}

// HelpText returns the help modal content.
func HelpText(keys config.KeyBindings) string {
	return fmt.Sprintf(`sshdeck - SSH Connection Manager

Navigation
  %s/%s or arrows     Move through the host list
  Enter              Connect to selected host (or focus if connected)
  %s                  Filter the host list
  Esc                Leave the terminal / close a modal

Hosts
  %s                  Add a host
  %s                  Delete selected host
  %s                  Disconnect selected host
  %s                  Open a local shell

Inside a session
  ctrl+b d           Detach back to the host list
  ctrl+b ctrl+b      Send a literal ctrl+b
  (everything else goes to the remote program)

Other
  %s                  Show this help
  %s                  Quit

Press any key to close this help...`,
		keys.NavDown, keys.NavUp, keys.Filter,
		keys.AddHost, keys.DeleteHost, keys.Disconnect, keys.LocalShell,
		keys.Help, keys.Quit)
}

// Truncate shortens a string to fit in the given width.
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// PadRight pads a string to the right.
func PadRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-sw)
}

// PadLeft pads a string to the left.
func PadLeft(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "")
	}
	return strings.Repeat(" ", width-sw) + s
}

// Center centers a string in the given width.
func Center(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "")
	}
	padding := (width - sw) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-sw-padding)
}

// WrapText wraps text to fit within the given width.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if runewidth.StringWidth(line) <= width {
			lines = append(lines, line)
			continue
		}

		for runewidth.StringWidth(line) > width {
			breakIdx := 0
			currentWidth := 0
			lastSpace := -1
			for i, r := range line {
				rw := runewidth.RuneWidth(r)
				if currentWidth+rw > width {
					break
				}
				currentWidth += rw
				breakIdx = i + len(string(r))
				if r == ' ' {
					lastSpace = breakIdx
				}
			}
			if lastSpace > 0 {
				breakIdx = lastSpace
			}
			lines = append(lines, line[:breakIdx])
			line = strings.TrimSpace(line[breakIdx:])
		}
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
