package tui

import (
	"errors"
	"os"
	"strings"

	"ticketdesk/internal/model"
	"ticketdesk/internal/mutate"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formField int

const (
	fieldTitle formField = iota
	fieldCategory
	fieldDescription
	fieldFiles
	fieldCount
)

// categoryChoices is the category picker: None first, then every category.
var categoryChoices = append([]model.Category{model.CategoryNone}, model.Categories...)

type ticketForm struct {
	title       textinput.Model
	category    int
	description textarea.Model
	files       []model.Attachment
	fileCursor  int
	focus       formField
}

func newTicketForm() ticketForm {
	ti := textinput.New()
	ti.Placeholder = "Short summary"
	ti.CharLimit = 120
	ti.Prompt = ""

	ta := textarea.New()
	ta.Placeholder = "What happened?"
	ta.ShowLineNumbers = false
	ta.SetHeight(6)
	ta.CharLimit = 4000

	f := ticketForm{title: ti, description: ta}
	f.title.Focus()
	return f
}

func newChatInput() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Write a message…"
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.CharLimit = 2000
	return ta
}

func (f ticketForm) draft() mutate.Draft {
	return mutate.Draft{
		Title:       f.title.Value(),
		Category:    string(categoryChoices[f.category]),
		Description: f.description.Value(),
		Files:       f.files,
	}
}

func (f *ticketForm) setFocus(field formField) tea.Cmd {
	f.focus = field
	f.title.Blur()
	f.description.Blur()
	switch field {
	case fieldTitle:
		return f.title.Focus()
	case fieldDescription:
		return f.description.Focus()
	}
	return nil
}

func (f *ticketForm) resize(width int) {
	w := max(min(width-8, 80), 20)
	f.title.Width = w
	f.description.SetWidth(w)
}

// update forwards msg to the focused widget.
func (f ticketForm) update(msg tea.Msg) (ticketForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	}
	return f, cmd
}

func (m appModel) openForm() (tea.Model, tea.Cmd) {
	m.mode = modeForm
	m.form = newTicketForm()
	m.form.resize(m.width)
	cmd := m.form.setFocus(fieldTitle)
	return m, cmd
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.form
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.formKeys.Cancel):
		m.mode = modeTable
		m.form = newTicketForm()
		return m, nil
	case key.Matches(msg, m.formKeys.Submit):
		m.submitForm()
		return m, nil
	case key.Matches(msg, m.formKeys.Clear):
		m.form = newTicketForm()
		m.form.resize(m.width)
		cmd := m.form.setFocus(fieldTitle)
		return m, cmd
	case key.Matches(msg, m.formKeys.Attach):
		return m.openPicker()
	case key.Matches(msg, m.formKeys.Remove):
		if len(f.files) > 0 {
			name := f.files[f.fileCursor].Name
			f.files, _ = mutate.RemoveAttachment(f.files, name)
			if f.fileCursor >= len(f.files) {
				f.fileCursor = max(len(f.files)-1, 0)
			}
			m.setStatus("Removed "+name, true)
		}
		return m, nil
	case key.Matches(msg, m.formKeys.Next):
		cmd := f.setFocus((f.focus + 1) % fieldCount)
		return m, cmd
	case key.Matches(msg, m.formKeys.Prev):
		cmd := f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return m, cmd
	}

	switch f.focus {
	case fieldCategory:
		switch msg.String() {
		case "left", "h", "up", "k":
			f.category = (f.category + len(categoryChoices) - 1) % len(categoryChoices)
		case "right", "l", "down", "j", " ":
			f.category = (f.category + 1) % len(categoryChoices)
		}
		return m, nil
	case fieldFiles:
		switch msg.String() {
		case "up", "k":
			if f.fileCursor > 0 {
				f.fileCursor--
			}
		case "down", "j":
			if f.fileCursor < len(f.files)-1 {
				f.fileCursor++
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// submitForm creates the ticket or raises an alert naming the first missing field.
// On failure the form keeps its input.
func (m *appModel) submitForm() {
	t, err := mutate.CreateTicket(m.st, m.form.draft())
	if err != nil {
		var ve mutate.ValidationError
		if errors.As(err, &ve) {
			m.log.Info().Str("field", ve.Field).Msg("ticket draft rejected")
			m.showAlert("Missing information", ve.Message)
			switch ve.Field {
			case "title":
				m.form.setFocus(fieldTitle)
			case "category":
				m.form.setFocus(fieldCategory)
			case "description":
				m.form.setFocus(fieldDescription)
			}
			return
		}
		m.showAlert("Could not create ticket", err.Error())
		return
	}
	m.log.Info().Str("id", t.ID).Int("files", len(t.Files)).Msg("ticket created")
	m.mode = modeTable
	m.form = newTicketForm()
	m.refreshRows(t.ID)
	m.setStatus("Created "+t.ID, true)
}

// attachFile adds the file at path to the draft. Duplicate names raise one alert
// listing them.
func (m *appModel) attachFile(path string) {
	a, err := mutate.AttachmentFromPath(path, m.st.Now())
	if err != nil {
		m.showAlert("Could not attach file", err.Error())
		return
	}
	files, err := mutate.AddAttachments(m.form.files, []model.Attachment{a})
	m.form.files = files
	var dup *mutate.DuplicateAttachmentsError
	if errors.As(err, &dup) {
		m.log.Info().Strs("names", dup.Names).Msg("duplicate attachments rejected")
		m.showAlert("Duplicate files", dup.Error())
		return
	}
	m.form.fileCursor = len(m.form.files) - 1
	m.setStatus("Attached "+a.Name, true)
}

func pickerStartDir(last string) string {
	if d := strings.TrimSpace(last); d != "" {
		return d
	}
	if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
		return home
	}
	return "."
}
