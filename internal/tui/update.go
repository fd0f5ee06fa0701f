package tui

import (
	"fmt"
	"strings"

	"ticketdesk/internal/filter"
	"ticketdesk/internal/model"
	"ticketdesk/internal/mutate"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.alert != nil {
			switch msg.String() {
			case "enter", "esc", " ", "q":
				m.alert = nil
			}
			return m, nil
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modePicker:
			return m.updatePicker(msg)
		}
		return m.updateTable(msg)
	}

	// Non-key messages (cursor blink, directory reads) go to whichever widget is live.
	var cmd tea.Cmd
	switch m.mode {
	case modePicker:
		return m.updatePicker(msg)
	case modeForm:
		m.form, cmd = m.form.update(msg)
	default:
		if m.chatFocused {
			m.chat, cmd = m.chat.Update(msg)
		}
	}
	return m, cmd
}

func (m appModel) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.chatFocused {
		return m.updateChat(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.New):
		return m.openForm()
	case key.Matches(msg, m.keys.Reload):
		m.reload()
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.tab = panelTabs[(int(m.tab)+1)%len(panelTabs)]
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = panelTabs[(int(m.tab)+len(panelTabs)-1)%len(panelTabs)]
		return m, nil
	case key.Matches(msg, m.keys.Tab1):
		m.tab = tabDetails
		return m, nil
	case key.Matches(msg, m.keys.Tab2):
		m.tab = tabChat
		return m, nil
	case key.Matches(msg, m.keys.Tab3):
		m.tab = tabFilter
		return m, nil
	case key.Matches(msg, m.keys.Tab4):
		m.tab = tabQuickEdit
		return m, nil
	case key.Matches(msg, m.keys.Undo):
		m.undo()
		return m, nil
	}

	switch m.tab {
	case tabFilter:
		if handled := m.updateFilterPanel(msg); handled {
			return m, nil
		}
	case tabQuickEdit:
		if handled := m.updateQuickEditPanel(msg); handled {
			return m, nil
		}
	case tabChat:
		if key.Matches(msg, m.keys.Write) {
			if _, ok := m.current(); !ok {
				return m, nil
			}
			m.chatFocused = true
			cmd := m.chat.Focus()
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.current(); ok {
			m.st.ToggleSelection(t.ID)
		}
	case key.Matches(msg, m.keys.ToggleAll):
		m.st.ToggleSelectAll()
	case key.Matches(msg, m.keys.Sort):
		m.sortKey = m.sortKey.Next()
		m.refreshRows("")
		m.saveTable()
	case key.Matches(msg, m.keys.SortDir):
		m.sortDesc = !m.sortDesc
		m.refreshRows("")
		m.saveTable()
	}
	return m, nil
}

// updateFilterPanel handles the Filter tab keys and reports whether msg was used.
func (m *appModel) updateFilterPanel(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.RowUp):
		if m.filterRow > 0 {
			m.filterRow--
		}
	case key.Matches(msg, m.keys.RowDown):
		if m.filterRow < len(filter.Axes)-1 {
			m.filterRow++
		}
	case key.Matches(msg, m.keys.Left):
		m.cycleFilter(-1)
	case key.Matches(msg, m.keys.Right):
		m.cycleFilter(1)
	case key.Matches(msg, m.keys.ResetFilters):
		m.st.ResetFilters()
		m.refreshRows("")
		m.setStatus("Filters reset", true)
	default:
		return false
	}
	return true
}

// filterChoices is None followed by the options of axis.
func (m appModel) filterChoices(axis filter.Axis) []string {
	return append([]string{model.None}, filter.Options(axis, m.st.Tickets(), m.st.Now())...)
}

// filterValueLabel is the current value of axis as the Filter tab shows it.
func (m appModel) filterValueLabel(axis filter.Axis) string {
	v := m.st.Criteria().Get(axis)
	if axis == filter.AxisMonth && v != model.None {
		return filter.MonthName(v)
	}
	return v
}

func (m *appModel) cycleFilter(delta int) {
	axis := filter.Axes[m.filterRow]
	choices := m.filterChoices(axis)
	cur := m.filterValueLabel(axis)
	i := 0
	for j, c := range choices {
		if c == cur {
			i = j
			break
		}
	}
	i = (i + delta + len(choices)) % len(choices)
	if err := m.st.SetFilter(axis, choices[i]); err != nil {
		m.setStatus(err.Error(), false)
		return
	}
	m.refreshRows("")
	m.setStatus(fmt.Sprintf("%d of %d tickets shown", len(m.rows), m.st.Len()), true)
}

// updateQuickEditPanel handles the Quick Edit tab keys and reports whether msg was used.
func (m *appModel) updateQuickEditPanel(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.cycleAction(-1)
	case key.Matches(msg, m.keys.Right):
		m.cycleAction(1)
	case key.Matches(msg, m.keys.Apply):
		m.applyAction()
	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
	case key.Matches(msg, m.keys.Cancel):
		m.action = mutate.ActionNone
		m.st.ClearSelection()
		m.setStatus("Quick edit cancelled", true)
	default:
		return false
	}
	return true
}

func (m *appModel) cycleAction(delta int) {
	i := 0
	for j, a := range mutate.Actions {
		if a == m.action {
			i = j
		}
	}
	n := len(mutate.Actions)
	m.action = mutate.Actions[(i+delta+n)%n]
}

func (m *appModel) applyAction() {
	if m.action == mutate.ActionNone {
		m.setStatus("Pick an action first", false)
		return
	}
	if m.st.SelectionCount() == 0 {
		m.setStatus("No tickets selected", false)
		return
	}
	res, err := mutate.ApplyStatus(m.st, m.action)
	if err != nil {
		m.setStatus(err.Error(), false)
		return
	}
	m.refreshRows("")
	verb := "Closed"
	if m.action == mutate.ActionReopen {
		verb = "Re-opened"
	}
	m.setStatus(fmt.Sprintf("%s %s (u to undo)", verb, plural(res.Changed, "ticket")), true)
	m.action = mutate.ActionNone
}

func (m *appModel) deleteSelected() {
	if m.st.SelectionCount() == 0 {
		m.setStatus("No tickets selected", false)
		return
	}
	res, err := mutate.DeleteSelected(m.st)
	if err != nil {
		m.setStatus(err.Error(), false)
		return
	}
	m.refreshRows("")
	m.setStatus(fmt.Sprintf("Deleted %s (u to undo)", plural(res.Changed, "ticket")), true)
}

func (m *appModel) undo() {
	res, _ := mutate.Undo(m.st)
	if res.Changed == 0 {
		m.setStatus("Nothing to undo", false)
		return
	}
	m.refreshRows("")
	m.setStatus(fmt.Sprintf("Restored %s", plural(res.Changed, "ticket")), true)
}

func (m appModel) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.chatFocused = false
		m.chat.Blur()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		t, ok := m.current()
		if !ok {
			return m, nil
		}
		body := m.chat.Value()
		if strings.TrimSpace(body) == "" {
			return m, nil
		}
		if _, err := m.st.PostMessage(t.ID, model.SourceYou, body); err != nil {
			m.setStatus(err.Error(), false)
			return m, nil
		}
		m.chat.Reset()
		return m, nil
	}
	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

func (m *appModel) reload() {
	if m.opts.Reload == nil {
		m.setStatus("Reload is not available", false)
		return
	}
	st, err := m.opts.Reload()
	if err != nil {
		m.log.Error().Err(err).Msg("reload failed")
		m.showAlert("Reload failed", err.Error())
		return
	}
	if st == nil {
		m.showAlert("Reload failed", "The seed produced no data.")
		return
	}
	m.st = st
	m.cursor = 0
	m.action = mutate.ActionNone
	m.chatFocused = false
	m.chat.Reset()
	m.refreshRows("")
	m.setStatus(fmt.Sprintf("Reloaded %s", plural(st.Len(), "ticket")), true)
}

func (m *appModel) saveTable() {
	if m.opts.SaveTable == nil {
		return
	}
	if err := m.opts.SaveTable(m.sortKey, m.sortDesc); err != nil {
		m.log.Warn().Err(err).Msg("saving table preference")
		m.setStatus("Could not save sort preference: "+err.Error(), false)
	}
}

func (m *appModel) resize() {
	_, panelW := m.paneWidths()
	m.chat.SetWidth(max(panelW-2, 10))
	m.form.resize(m.width)
	m.picker.Height = pickerHeight(m.height)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
