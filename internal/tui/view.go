package tui

import (
	"fmt"
	"strings"
	"time"

	"ticketdesk/internal/filter"
	"ticketdesk/internal/model"
	"ticketdesk/internal/mutate"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const (
	wideLayoutMin = 100
	emptyTable    = "No available tickets"
)

func (m appModel) View() string {
	if m.alert != nil {
		return m.renderAlert()
	}
	switch m.mode {
	case modePicker:
		return m.renderPicker()
	case modeForm:
		return m.renderForm()
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	bodyH := 0
	if m.height > 0 {
		bodyH = max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 6)
	}

	tableW, panelW := m.paneWidths()
	var body string
	if m.width >= wideLayoutMin {
		table := normalizePane(m.renderTable(tableW, bodyH), tableW, bodyH)
		panel := normalizePane(m.renderPanel(panelW), panelW, bodyH)
		gap := normalizePane("", 1, bodyH)
		body = lipgloss.JoinHorizontal(lipgloss.Top, table, gap, panel)
	} else {
		tableH := 0
		if bodyH > 0 {
			tableH = max(bodyH/2, 4)
		}
		table := m.renderTable(tableW, tableH)
		panel := m.renderPanel(panelW)
		if bodyH > 0 {
			panel = normalizePane(panel, panelW, max(bodyH-tableH-1, 1))
		}
		body = table + "\n\n" + panel
	}
	return header + "\n" + body + "\n" + footer
}

// paneWidths splits the screen between table and side panel. Below wideLayoutMin
// both take the full width and stack.
func (m appModel) paneWidths() (table, panel int) {
	w := m.width
	if w <= 0 {
		w = 120
	}
	if w < wideLayoutMin {
		return w, w
	}
	panel = min(max(w*2/5, 40), 60)
	return w - panel - 1, panel
}

func (m appModel) renderHeader() string {
	title := styleTitle().Render("ticketdesk")
	meta := styleMuted().Render(fmt.Sprintf("  %d tickets · %d shown · %d selected",
		m.st.Len(), len(m.rows), m.st.SelectionCount()))

	summary := m.st.Summary()
	cardW := 16
	if m.width > 0 {
		cardW = min(max((m.width-len(summary)*2)/len(summary), 12), 24)
	}
	cards := make([]string, 0, len(summary))
	for _, sc := range summary {
		card := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorCardBorder).
			Padding(0, 1).
			Width(cardW).
			Render(styleStatus(sc.Status).Bold(true).Render(fmt.Sprintf("%d", sc.Count)) + " " + string(sc.Status))
		cards = append(cards, card)
	}
	return title + meta + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m appModel) renderFooter() string {
	status := ""
	if m.status != "" {
		if m.statusOK {
			status = lipgloss.NewStyle().Foreground(colorAccent).Render(m.status)
		} else {
			status = styleError().Render(m.status)
		}
	}
	return status + "\n" + m.help.View(m.keys)
}

type column struct {
	title string
	key   filter.SortKey
	width int
}

func tableColumns(width int) []column {
	cols := []column{
		{title: "", width: 3},
		{title: "ID", key: filter.SortByID, width: 8},
		{title: "Title", key: filter.SortByTitle},
		{title: "Status", key: filter.SortByStatus, width: 11},
		{title: "Category", key: filter.SortByCategory, width: 8},
		{title: "Created", key: filter.SortByCreated, width: 10},
		{title: "Assignee", key: filter.SortByAssignee, width: 10},
	}
	fixed := 0
	for _, c := range cols {
		fixed += c.width + 1
	}
	cols[2].width = max(width-fixed, 8)
	return cols
}

func (m appModel) renderTable(width, height int) string {
	cols := tableColumns(width)
	var b strings.Builder

	head := make([]string, 0, len(cols))
	for _, c := range cols {
		t := c.title
		if c.key != "" && c.key == m.sortKey {
			if m.sortDesc {
				t += " ▼"
			} else {
				t += " ▲"
			}
		}
		head = append(head, fit(t, c.width))
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Underline(true).Render(strings.Join(head, " ")))
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(styleMuted().Render(emptyTable))
		return b.String()
	}

	// Keep the cursor inside the visible window.
	visible := len(m.rows)
	if height > 1 {
		visible = min(visible, height-1)
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	for i := start; i < start+visible && i < len(m.rows); i++ {
		t := m.rows[i]
		check := "[ ]"
		if m.st.IsSelected(t.ID) {
			check = "[x]"
		}
		assignee := t.AssigneeName()
		if assignee == "" {
			assignee = "-"
		}
		cells := []string{check, t.ID, t.Title, string(t.Status), string(t.Category), t.CreatedAt, assignee}
		for j := range cells {
			cells[j] = fit(cells[j], cols[j].width)
		}
		if i == m.cursor {
			b.WriteString(styleSelectedRow().Render(strings.Join(cells, " ")))
		} else {
			cells[3] = styleStatus(t.Status).Render(cells[3])
			b.WriteString(strings.Join(cells, " "))
		}
		if i < start+visible-1 && i < len(m.rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m appModel) renderPanel(width int) string {
	tabs := make([]string, 0, len(panelTabs))
	for i, t := range panelTabs {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == m.tab {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent).Bold(true).Padding(0, 1).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(colorSurfaceFg).Background(colorControlBg).Padding(0, 1).Render(label))
		}
	}
	head := strings.Join(tabs, " ")

	var body string
	switch m.tab {
	case tabDetails:
		body = m.renderDetails(width)
	case tabChat:
		body = m.renderChat(width)
	case tabFilter:
		body = m.renderFilter()
	case tabQuickEdit:
		body = m.renderQuickEdit()
	}
	return head + "\n\n" + body
}

func (m appModel) renderDetails(width int) string {
	t, ok := m.current()
	if !ok {
		return styleMuted().Render("No ticket selected")
	}
	var b strings.Builder
	b.WriteString(styleTitle().Render(t.ID+"  "+t.Title) + "\n\n")
	field := func(label, value string) {
		b.WriteString(styleMuted().Render(fit(label, 10)) + value + "\n")
	}
	field("Status", styleStatus(t.Status).Render(string(t.Status)))
	field("Category", string(t.Category))
	field("Created", t.CreatedAt)
	field("Updated", t.UpdatedAt)
	if t.AssignedTo != nil {
		field("Assigned", fmt.Sprintf("%s (%s)", t.AssignedTo.Name, t.AssignedTo.Role))
	} else {
		field("Assigned", filter.Unassigned)
	}
	if desc := renderMarkdown(t.Description, width); desc != "" {
		b.WriteString("\n" + desc + "\n")
	}
	if len(t.Files) > 0 {
		b.WriteString("\n" + styleTitle().Render("Attachments") + "\n")
		for _, f := range t.Files {
			b.WriteString(fmt.Sprintf("  %s  %s\n", f.Name, styleMuted().Render(humanize.Bytes(uint64(max(f.Size, 0))))))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m appModel) renderChat(width int) string {
	t, ok := m.current()
	if !ok {
		return styleMuted().Render("No ticket selected")
	}
	var b strings.Builder
	msgs := m.st.Messages(t.ID)
	if len(msgs) == 0 {
		b.WriteString(styleMuted().Render("No messages yet") + "\n")
	}
	now := m.st.Now()
	for _, msg := range msgs {
		who := "Support"
		align := lipgloss.Left
		if msg.Source == model.SourceYou {
			who = "You"
			align = lipgloss.Right
		}
		when := msg.Date
		if ts, err := time.Parse(time.RFC3339, msg.Date); err == nil {
			when = humanize.RelTime(ts, now, "ago", "from now")
		}
		line := lipgloss.NewStyle().Bold(true).Render(who) + " " + styleMuted().Render(when) + "\n" + msg.Body
		b.WriteString(lipgloss.NewStyle().Width(max(width-2, 10)).Align(align).Render(line) + "\n\n")
	}
	if m.chatFocused {
		b.WriteString(m.chat.View() + "\n")
		b.WriteString(styleMuted().Render("enter: send   esc: done"))
	} else {
		b.WriteString(styleMuted().Render("i: write a message"))
	}
	return b.String()
}

func (m appModel) renderFilter() string {
	var b strings.Builder
	for i, axis := range filter.Axes {
		label := fit(strings.ToUpper(string(axis)[:1])+string(axis)[1:], 12)
		value := "‹ " + m.filterValueLabel(axis) + " ›"
		if i == m.filterRow {
			b.WriteString(styleSelectedRow().Render("› "+label+value) + "\n")
		} else {
			b.WriteString("  " + label + value + "\n")
		}
	}
	b.WriteString("\n" + styleMuted().Render(fmt.Sprintf("%d of %d tickets shown", len(m.rows), m.st.Len())))
	b.WriteString("\n" + styleMuted().Render("↑/↓: row   ←/→: value   R: reset"))
	return b.String()
}

func (m appModel) renderQuickEdit() string {
	var b strings.Builder
	all := "[ ]"
	if m.st.AllDisplayedSelected() {
		all = "[x]"
	}
	b.WriteString(fmt.Sprintf("%s Select all (A)\n", all))
	b.WriteString(fmt.Sprintf("Selected: %d\n\n", m.st.SelectionCount()))

	actions := make([]string, 0, len(mutate.Actions))
	for _, a := range mutate.Actions {
		if a == m.action {
			actions = append(actions, styleSelectedRow().Render(" "+string(a)+" "))
		} else {
			actions = append(actions, " "+string(a)+" ")
		}
	}
	b.WriteString("Action  " + strings.Join(actions, " ") + "\n\n")
	b.WriteString(styleMuted().Render("←/→: action   enter: apply   esc: cancel   x: delete   u: undo"))
	if m.st.HasSnapshot() {
		b.WriteString("\n" + styleMuted().Render("Undo restores "+strings.Join(m.st.SnapshotIDs(), ", ")))
	}
	return b.String()
}

func (m appModel) renderForm() string {
	f := m.form
	label := func(field formField, s string) string {
		if f.focus == field {
			return lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("› " + s)
		}
		return "  " + s
	}

	var b strings.Builder
	b.WriteString(styleTitle().Render("New ticket") + styleMuted().Render("  "+m.st.NextTicketID()) + "\n\n")
	b.WriteString(label(fieldTitle, "Title") + "\n  " + f.title.View() + "\n\n")
	b.WriteString(label(fieldCategory, "Category") + "\n  ‹ " + string(categoryChoices[f.category]) + " ›\n\n")
	b.WriteString(label(fieldDescription, "Description") + "\n" + f.description.View() + "\n\n")
	b.WriteString(label(fieldFiles, "Attachments") + "\n")
	if len(f.files) == 0 {
		b.WriteString(styleMuted().Render("  none (ctrl+a to attach)") + "\n")
	}
	for i, a := range f.files {
		line := fmt.Sprintf("%s  %s", a.Name, humanize.Bytes(uint64(max(a.Size, 0))))
		if f.focus == fieldFiles && i == f.fileCursor {
			b.WriteString("  " + styleSelectedRow().Render(line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	status := ""
	if m.status != "" {
		status = "\n" + styleMuted().Render(m.status)
	}
	return b.String() + status + "\n" + m.help.View(m.formKeys)
}
