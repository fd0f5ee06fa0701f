package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ticketdesk/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

func openTestForm(t *testing.T) appModel {
	t.Helper()
	m := press(t, newTestModel(t), runes("n"))
	if m.mode != modeForm {
		t.Fatalf("expected form mode, got %v", m.mode)
	}
	return m
}

func TestForm_ValidationAlertKeepsInput(t *testing.T) {
	m := openTestForm(t)
	m = press(t, m, keyOf(tea.KeyCtrlS))
	if m.alert == nil || m.alert.body != "Please enter a title" {
		t.Fatalf("expected title alert, got %+v", m.alert)
	}
	m = press(t, m, keyOf(tea.KeyEnter))
	if m.alert != nil {
		t.Fatalf("expected enter to dismiss the alert")
	}

	m = press(t, m, runes("Mouse broken"))
	m = press(t, m, keyOf(tea.KeyCtrlS))
	if m.alert == nil || m.alert.body != "Please choose a category" {
		t.Fatalf("expected category alert, got %+v", m.alert)
	}
	if m.form.focus != fieldCategory {
		t.Fatalf("expected focus moved to category, got %v", m.form.focus)
	}
	m = press(t, m, keyOf(tea.KeyEsc))
	if m.mode != modeForm || m.form.title.Value() != "Mouse broken" {
		t.Fatalf("expected form input kept, mode=%v title=%q", m.mode, m.form.title.Value())
	}
	if m.st.Len() != 4 {
		t.Fatalf("invalid draft must not add a ticket")
	}
}

func TestForm_SubmitCreatesTicket(t *testing.T) {
	m := openTestForm(t)
	m = press(t, m, runes("Mouse broken"), keyOf(tea.KeyTab), keyOf(tea.KeyRight))
	if got := categoryChoices[m.form.category]; got != model.CategoryHardware {
		t.Fatalf("expected Hardware, got %q", got)
	}
	m = press(t, m, keyOf(tea.KeyTab))
	m.form.description.SetValue("Left button sticks.")
	m = press(t, m, keyOf(tea.KeyCtrlS))

	if m.alert != nil {
		t.Fatalf("unexpected alert: %+v", m.alert)
	}
	if m.mode != modeTable || m.status != "Created TKT-005" {
		t.Fatalf("expected table mode and created status, got mode=%v status=%q", m.mode, m.status)
	}
	tk, ok := m.st.Find("TKT-005")
	if !ok {
		t.Fatalf("expected TKT-005 in store")
	}
	if tk.Status != model.StatusOpen || tk.CreatedAt != "2024-12-03" || tk.AssignedTo != nil {
		t.Fatalf("unexpected new ticket: %+v", tk)
	}
	if cur, _ := m.current(); cur.ID != "TKT-005" {
		t.Fatalf("expected cursor on the new ticket, got %q", cur.ID)
	}
}

func TestForm_EscDiscardsDraft(t *testing.T) {
	m := openTestForm(t)
	m = press(t, m, runes("half typed"), keyOf(tea.KeyEsc))
	if m.mode != modeTable {
		t.Fatalf("expected table mode after esc")
	}
	m = press(t, m, runes("n"))
	if m.form.title.Value() != "" {
		t.Fatalf("expected a fresh form, got %q", m.form.title.Value())
	}
}

func TestForm_AttachDuplicateRaisesAlert(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m := openTestForm(t)

	m.attachFile(path)
	if len(m.form.files) != 1 || m.form.files[0].Size != 5 {
		t.Fatalf("unexpected attachments: %+v", m.form.files)
	}
	m.attachFile(path)
	if m.alert == nil || m.alert.title != "Duplicate files" {
		t.Fatalf("expected duplicate alert, got %+v", m.alert)
	}
	if !strings.Contains(m.alert.body, "b.txt") {
		t.Fatalf("expected alert to name b.txt, got %q", m.alert.body)
	}
	if len(m.form.files) != 1 {
		t.Fatalf("duplicate must not be added twice")
	}
}

func TestForm_RemoveAttachment(t *testing.T) {
	m := openTestForm(t)
	m.form.files = []model.Attachment{{Name: "a.txt", Size: 1}, {Name: "b.txt", Size: 2}}
	m.form.fileCursor = 1
	m = press(t, m, keyOf(tea.KeyCtrlD))
	if len(m.form.files) != 1 || m.form.files[0].Name != "a.txt" || m.form.fileCursor != 0 {
		t.Fatalf("unexpected files after remove: %+v cursor=%d", m.form.files, m.form.fileCursor)
	}
}

func TestForm_ViewShowsNextID(t *testing.T) {
	m := openTestForm(t)
	if out := m.View(); !strings.Contains(out, "TKT-005") || !strings.Contains(out, "Category") {
		t.Fatalf("expected form view with next ID")
	}
}

func TestAlert_ViewAndDismiss(t *testing.T) {
	m := newTestModel(t)
	m.showAlert("Reload failed", "boom")
	if out := m.View(); !strings.Contains(out, "Reload failed") || !strings.Contains(out, "boom") {
		t.Fatalf("expected alert in view")
	}
	m = press(t, m, runes("j"))
	if m.alert == nil || m.cursor != 0 {
		t.Fatalf("keys other than dismiss must be swallowed")
	}
	m = press(t, m, spaceKey)
	if m.alert != nil {
		t.Fatalf("expected space to dismiss")
	}
}
