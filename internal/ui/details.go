package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"gopkg.in/yaml.v3"

	"github.com/wrenholt/sshdeck/internal/config"
	"github.com/wrenholt/sshdeck/internal/session"
)

// detailsStyle is the chroma style used for the host details YAML.
const detailsStyle = "monokai"

// RenderHostDetails writes the details panel for the selected host: its
// inventory entry as highlighted YAML, the live status line, and the last
// connect error if any.
func RenderHostDetails(w io.Writer, host *config.Host, status session.Status, lastErr error, theme config.Theme, width int) {
	if host == nil {
		fmt.Fprint(w, ColorDim+" no host selected"+ColorReset)
		return
	}

	style := StatusStyle(theme, status)
	fmt.Fprintf(w, " %s%s %s%s\n", ColorCode(style.Color), style.Icon, style.Label, ColorReset)

	fmt.Fprint(w, highlightHost(host))

	if lastErr != nil {
		fmt.Fprintln(w)
		for _, line := range WrapText(lastErr.Error(), max(1, width-2)) {
			fmt.Fprintf(w, " %s%s%s\n", ColorRed, line, ColorReset)
		}
	}
}

// highlightHost renders a host's YAML with syntax highlighting. Falls back
// to plain text if highlighting fails.
func highlightHost(host *config.Host) string {
	data, err := yaml.Marshal(host)
	if err != nil {
		return ""
	}
	src := string(data)

	var sb strings.Builder
	if err := quick.Highlight(&sb, src, "yaml", "terminal256", detailsStyle); err != nil {
		return src
	}
	return sb.String()
}
