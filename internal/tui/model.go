package tui

import (
	"slices"

	"ticketdesk/internal/filter"
	"ticketdesk/internal/model"
	"ticketdesk/internal/mutate"
	"ticketdesk/internal/store"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type mode int

const (
	modeTable mode = iota
	modeForm
	modePicker
)

type panelTab int

const (
	tabDetails panelTab = iota
	tabChat
	tabFilter
	tabQuickEdit
)

var panelTabs = []panelTab{tabDetails, tabChat, tabFilter, tabQuickEdit}

func (t panelTab) String() string {
	switch t {
	case tabDetails:
		return "Details"
	case tabChat:
		return "Chat"
	case tabFilter:
		return "Filter"
	case tabQuickEdit:
		return "Quick Edit"
	}
	return ""
}

// alert is the blocking message box; any of enter/esc/space dismisses it.
type alert struct {
	title string
	body  string
}

type appModel struct {
	st   *store.Store
	opts Options
	log  zerolog.Logger

	width  int
	height int

	mode mode
	tab  panelTab

	// rows is the displayed list in table order.
	rows     []model.Ticket
	cursor   int
	sortKey  filter.SortKey
	sortDesc bool

	filterRow int
	action    mutate.QuickEditAction

	chat        textarea.Model
	chatFocused bool

	form          ticketForm
	picker        filepicker.Model
	pickerLastDir string

	alert    *alert
	status   string
	statusOK bool

	keys     keyMap
	formKeys formKeyMap
	help     help.Model
}

func newAppModel(st *store.Store, opts Options) appModel {
	if st == nil {
		panic("tui: nil store")
	}
	sortKey, err := filter.ParseSortKey(string(opts.Sort))
	if err != nil {
		sortKey = filter.SortByID
	}
	m := appModel{
		st:       st,
		opts:     opts,
		log:      opts.Logger,
		mode:     modeTable,
		tab:      tabDetails,
		sortKey:  sortKey,
		sortDesc: opts.Desc,
		action:   mutate.ActionNone,
		chat:     newChatInput(),
		form:     newTicketForm(),
		keys:     newKeyMap(),
		formKeys: newFormKeyMap(),
		help:     help.New(),
	}
	m.pickerLastDir = opts.PickerDir
	m.refreshRows("")
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

// refreshRows re-reads the displayed list from the store and sorts it. The cursor
// follows keepID when it is still displayed, otherwise it is clamped.
func (m *appModel) refreshRows(keepID string) {
	if keepID == "" {
		if t, ok := m.current(); ok {
			keepID = t.ID
		}
	}
	m.rows = m.st.Displayed()
	filter.Sort(m.rows, m.sortKey, m.sortDesc)
	if keepID != "" {
		if i := slices.IndexFunc(m.rows, func(t model.Ticket) bool { return t.ID == keepID }); i >= 0 {
			m.cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m *appModel) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m appModel) current() (model.Ticket, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return model.Ticket{}, false
	}
	return m.rows[m.cursor], true
}

func (m *appModel) setStatus(msg string, ok bool) {
	m.status = msg
	m.statusOK = ok
}

func (m *appModel) showAlert(title, body string) {
	m.alert = &alert{title: title, body: body}
}
