package tui

import (
	"ticketdesk/internal/filter"
	"ticketdesk/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type Options struct {
	Logger zerolog.Logger

	Sort filter.SortKey
	Desc bool

	// Reload rebuilds the store from its seed (ctrl+r). nil disables reloading.
	Reload func() (*store.Store, error)
	// SaveTable persists the table sort preference after s/S.
	SaveTable func(key filter.SortKey, desc bool) error

	// PickerDir is where the attachment file picker starts; empty means the home dir.
	PickerDir string
}

func Run(st *store.Store, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(st, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
