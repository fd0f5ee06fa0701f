package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down       key.Binding
	Toggle         key.Binding
	ToggleAll      key.Binding
	Sort, SortDir  key.Binding
	NextTab        key.Binding
	PrevTab        key.Binding
	Tab1, Tab2     key.Binding
	Tab3, Tab4     key.Binding
	New            key.Binding
	Reload         key.Binding
	Undo           key.Binding
	Help           key.Binding
	Quit           key.Binding
	Left, Right    key.Binding
	RowUp, RowDown key.Binding
	ResetFilters   key.Binding
	Apply          key.Binding
	Delete         key.Binding
	Cancel         key.Binding
	Write          key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("j/k", "move")),
		Down:         key.NewBinding(key.WithKeys("j", "down")),
		Toggle:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		ToggleAll:    key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "select all")),
		Sort:         key.NewBinding(key.WithKeys("s"), key.WithHelp("s/S", "sort")),
		SortDir:      key.NewBinding(key.WithKeys("S")),
		NextTab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "panel")),
		PrevTab:      key.NewBinding(key.WithKeys("shift+tab")),
		Tab1:         key.NewBinding(key.WithKeys("1")),
		Tab2:         key.NewBinding(key.WithKeys("2")),
		Tab3:         key.NewBinding(key.WithKeys("3")),
		Tab4:         key.NewBinding(key.WithKeys("4")),
		New:          key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new ticket")),
		Reload:       key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		Undo:         key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Left:         key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "change")),
		Right:        key.NewBinding(key.WithKeys("right", "l")),
		RowUp:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "filter row")),
		RowDown:      key.NewBinding(key.WithKeys("down")),
		ResetFilters: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset filters")),
		Apply:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Delete:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete selected")),
		Cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Write:        key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "write message")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Toggle, k.ToggleAll, k.NextTab, k.New, k.Undo, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Toggle, k.ToggleAll, k.Sort},
		{k.NextTab, k.RowUp, k.Left, k.ResetFilters},
		{k.Apply, k.Cancel, k.Delete, k.Undo, k.Write},
		{k.New, k.Reload, k.Help, k.Quit},
	}
}

type formKeyMap struct {
	Next, Prev key.Binding
	Attach     key.Binding
	Remove     key.Binding
	Submit     key.Binding
	Clear      key.Binding
	Cancel     key.Binding
}

func newFormKeyMap() formKeyMap {
	return formKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab")),
		Attach: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "attach")),
		Remove: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "remove file")),
		Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		Clear:  key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Attach, k.Remove, k.Submit, k.Clear, k.Cancel}
}

func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
