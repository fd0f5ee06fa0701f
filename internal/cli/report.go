package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ticketdesk/internal/model"
	"ticketdesk/internal/report"

	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	var asHTML bool
	var render bool
	var details bool
	var title string
	var out string
	var width int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export a markdown (or HTML) report of the filtered tickets",
		Args:  cobra.NoArgs,
	}
	filters := addFilterFlags(cmd.Flags())
	cmd.Flags().BoolVar(&asHTML, "html", false, "Render the report as a standalone HTML page")
	cmd.Flags().BoolVar(&render, "render", false, "Render the markdown for the terminal")
	cmd.Flags().BoolVar(&details, "details", false, "Add a section per ticket (description, attachments, chat)")
	cmd.Flags().StringVar(&title, "title", "", "Report heading")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().IntVar(&width, "width", 100, "Wrap width for --render")
	cmd.MarkFlagsMutuallyExclusive("html", "render")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		st, err := loadStore(app)
		if err != nil {
			return writeErr(cmd, err)
		}
		if err := filters.apply(st.SetFilter); err != nil {
			return writeErr(cmd, err)
		}

		shown := st.Displayed()
		msgs := make(map[string][]model.Message, len(shown))
		for _, t := range shown {
			if m := st.Messages(t.ID); len(m) > 0 {
				msgs[t.ID] = m
			}
		}
		in := report.Input{All: st.Tickets(), Tickets: shown, Messages: msgs}
		opt := report.Options{Title: title, Criteria: st.Criteria(), Details: details}

		var body string
		switch {
		case asHTML:
			body, err = report.RenderHTML(in, opt)
		case render:
			body, err = report.RenderTerminal(report.RenderMarkdown(in, opt), width, terminalStyle())
		default:
			body = report.RenderMarkdown(in, opt)
		}
		if err != nil {
			return writeErr(cmd, err)
		}

		if strings.TrimSpace(out) == "" {
			_, err := fmt.Fprint(cmd.OutOrStdout(), body)
			return err
		}
		path := filepath.Clean(out)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return writeErr(cmd, err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return writeErr(cmd, err)
		}
		app.log.Info().Str("path", path).Int("tickets", len(shown)).Msg("report written")
		return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": path, "tickets": len(shown)}})
	}
	return cmd
}

// terminalStyle is the glamour standard style for CLI rendering.
func terminalStyle() string {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return "notty"
	}
	if s := strings.TrimSpace(os.Getenv("GLAMOUR_STYLE")); s != "" {
		return s
	}
	return "dark"
}
