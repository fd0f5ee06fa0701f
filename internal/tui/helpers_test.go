package tui

import (
	"testing"
	"time"

	"ticketdesk/internal/model"
	"ticketdesk/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func testClock() time.Time { return time.Date(2024, 12, 3, 9, 30, 0, 0, time.UTC) }

func testTickets() []model.Ticket {
	return []model.Ticket{
		{ID: "TKT-001", Title: "Printer jam", Status: model.StatusOpen, Category: model.CategoryHardware, Description: "Paper stuck in **tray 2**.", CreatedAt: "2024-10-09", UpdatedAt: "2024-10-09",
			AssignedTo: &model.Assignee{ID: "u-1", Name: "@bentot", Role: model.RoleSupport}},
		{ID: "TKT-002", Title: "VPN drops", Status: model.StatusInProgress, Category: model.CategoryNetwork, Description: "Every hour.", CreatedAt: "2024-11-15", UpdatedAt: "2024-11-15"},
		{ID: "TKT-003", Title: "License key", Status: model.StatusResolved, Category: model.CategorySoftware, Description: "Expired.", CreatedAt: "2023-01-01", UpdatedAt: "2023-01-02"},
		{ID: "TKT-004", Title: "Badge access", Status: model.StatusOpen, Category: model.CategoryAccess, Description: "Door 3.", CreatedAt: "2024-10-20", UpdatedAt: "2024-10-21"},
	}
}

func newTestStore() *store.Store {
	return store.New(testTickets(), store.WithClock(testClock))
}

func newTestModel(t *testing.T) appModel {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	m := newAppModel(newTestStore(), Options{})
	mAny, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return mAny.(appModel)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

var spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

// press feeds msgs through Update in order and returns the resulting model.
func press(t *testing.T, m appModel, msgs ...tea.KeyMsg) appModel {
	t.Helper()
	for _, msg := range msgs {
		mAny, _ := m.Update(msg)
		m = mAny.(appModel)
	}
	return m
}

func rowIDs(m appModel) []string {
	out := make([]string, 0, len(m.rows))
	for _, t := range m.rows {
		out = append(out, t.ID)
	}
	return out
}
