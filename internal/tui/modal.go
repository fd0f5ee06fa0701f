package tui

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func pickerHeight(screenH int) int {
	return min(max(screenH-16, 8), 18)
}

func (m appModel) openPicker() (tea.Model, tea.Cmd) {
	fp := filepicker.New()
	fp.AllowedTypes = nil
	fp.FileAllowed = true
	fp.DirAllowed = false
	fp.ShowHidden = false
	fp.ShowPermissions = false
	fp.ShowSize = true
	fp.AutoHeight = false
	fp.Height = pickerHeight(m.height)
	fp.Cursor = "›"
	fp.KeyMap.Back = key.NewBinding(
		key.WithKeys("h", "backspace", "left"),
		key.WithHelp("h", "up"),
	)

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.DisabledFile = styleMuted()
	fp.Styles.DisabledSelected = styleMuted()
	fp.Styles.Permission = styleMuted()
	fp.Styles.FileSize = styleMuted().Width(fp.Styles.FileSize.GetWidth()).Align(lipgloss.Right)
	fp.CurrentDirectory = pickerStartDir(m.pickerLastDir)

	m.picker = fp
	m.mode = modePicker
	return m, fp.Init()
}

func (m appModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc", "q":
			m.mode = modeForm
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.pickerLastDir = filepath.Dir(path)
		m.mode = modeForm
		m.attachFile(path)
		return m, nil
	}
	return m, cmd
}

func (m appModel) renderPicker() string {
	body := strings.Join([]string{
		styleMuted().Render(m.picker.CurrentDirectory),
		"",
		m.picker.View(),
		"",
		styleMuted().Render("enter: attach   h/←: up   esc: back"),
	}, "\n")
	return m.renderModalBox("Attach a file", body)
}

func (m appModel) renderAlert() string {
	if m.alert == nil {
		return ""
	}
	body := m.alert.body + "\n\n" + styleMuted().Render("enter: OK")
	return m.renderModalBox(m.alert.title, body)
}

func modalWidth(screenW int) int {
	if screenW <= 0 {
		return 60
	}
	return min(max(screenW-10, 30), 72)
}

func (m appModel) renderModalBox(title, body string) string {
	w := modalWidth(m.width)
	head := styleTitle().Render(title)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorModalBorder).
		Padding(1, 2).
		Width(w).
		Render(head + "\n\n" + body)
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
