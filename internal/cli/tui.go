package cli

import (
	"ticketdesk/internal/config"
	"ticketdesk/internal/filter"
	"ticketdesk/internal/store"
	"ticketdesk/internal/tui"

	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive ticket desk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	st, err := loadStore(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	sortKey, err := filter.ParseSortKey(app.cfg.Table.Sort)
	if err != nil {
		app.log.Warn().Err(err).Msg("ignoring table.sort from config")
		sortKey = filter.SortByID
	}
	app.log.Info().Int("tickets", st.Len()).Msg("tui started")
	err = tui.Run(st, tui.Options{
		Logger: app.log,
		Sort:   sortKey,
		Desc:   app.cfg.Table.Desc,
		Reload: func() (*store.Store, error) {
			return loadStore(app)
		},
		SaveTable: func(key filter.SortKey, desc bool) error {
			return saveTablePreference(app, key, desc)
		},
	})
	if err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

// saveTablePreference writes the table sort back to the config file. Only the file's own
// values are saved, so env and flag overrides are not persisted.
func saveTablePreference(app *App, key filter.SortKey, desc bool) error {
	cfg, path, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}
	cfg.Table.Sort = string(key)
	cfg.Table.Desc = desc
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	app.cfg.Table = cfg.Table
	return nil
}
