package report

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderTerminal renders markdown for a terminal of the given width. style is a glamour
// standard style name ("dark", "light", "notty", ...); empty means "dark".
func RenderTerminal(md string, width int, style string) (string, error) {
	if width < 20 {
		width = 80
	}
	if strings.TrimSpace(style) == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
