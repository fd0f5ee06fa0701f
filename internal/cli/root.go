package cli

import (
	"fmt"
	"os"
	"strings"

	"ticketdesk/internal/config"
	"ticketdesk/internal/format"
	"ticketdesk/internal/logging"
	"ticketdesk/internal/seed"
	"ticketdesk/internal/store"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type App struct {
	ConfigPath string
	DataPath   string
	LogFile    string
	LogLevel   string
	Verbose    bool
	PrettyJSON bool
	Format     enumValue

	cfg      *config.Config
	cfgPath  string
	log      zerolog.Logger
	closeLog func() error
}

func NewRootCmd() *cobra.Command {
	app := &App{
		Format: newEnumValue(envOr("TICKETDESK_FORMAT", "json"), format.Formats...),
		log:    zerolog.Nop(),
	}

	cmd := &cobra.Command{
		Use:          "ticketdesk",
		Short:        "Support ticket desk (TUI + scriptable CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  ticketdesk

  # Open tickets from 2024, as a table
  ticketdesk tickets list --status open --year 2024 --format table

  # Direct ticket lookup (shortcut for: ticketdesk tickets show TKT-007)
  ticketdesk TKT-007
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		interactive := cmd == cmd.Root() || cmd.Name() == "tui"
		if err := app.setup(cmd, interactive); err != nil {
			return writeErr(cmd, err)
		}
		return nil
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.closeLog != nil {
			return app.closeLog()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("TICKETDESK_CONFIG", ""), "Config file (default: <user config dir>/ticketdesk/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.DataPath, "data", "", "Seed file (.yaml, .yml, .json, .jsonc); default: embedded sample")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Write JSON logs to this file")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Log to stderr (CLI commands only)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().Var(&app.Format, "format", "Output format ("+strings.Join(format.Formats, "|")+")")

	cmd.AddCommand(newTicketsCmd(app))
	cmd.AddCommand(newReportCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newTUICmd(app))

	return cmd
}

// setup resolves config, environment and flags (in increasing precedence) and builds
// the logger. The TUI owns the terminal, so it only ever logs to a file.
func (app *App) setup(cmd *cobra.Command, interactive bool) error {
	cfg, path, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Data = app.DataPath
	}
	if flags.Changed("log-file") {
		cfg.Log.File = app.LogFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = app.LogLevel
	}
	app.cfg = cfg
	app.cfgPath = path

	l, closeFn, err := logging.New(logging.Options{
		File:    cfg.Log.File,
		Level:   cfg.Log.Level,
		Console: app.Verbose && !interactive,
		Stderr:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	app.log = l.With().Str("cmd", cmd.CommandPath()).Logger()
	app.closeLog = closeFn
	app.log.Debug().Str("config", path).Str("data", cfg.Data).Msg("config resolved")
	return nil
}

// loadStore builds a fresh store from the configured seed.
func loadStore(app *App) (*store.Store, error) {
	data, err := seed.Load(app.cfg.Data)
	if err != nil {
		return nil, fmt.Errorf("loading seed: %w", err)
	}
	st := store.New(data.Tickets,
		store.WithLogger(app.log),
		store.WithMessages(data.Messages),
		store.WithTouchUpdatedAt(app.cfg.Tickets.TouchUpdatedAt),
		store.WithClearSelectionAfterBulk(app.cfg.QuickEdit.ClearSelection),
	)
	app.log.Debug().Int("tickets", st.Len()).Int("messages", len(data.Messages)).Msg("seed loaded")
	return st, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format.String(), app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
