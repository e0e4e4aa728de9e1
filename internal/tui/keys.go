package tui

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	Delete key.Binding
	Filter key.Binding
	Accept key.Binding
	Cancel key.Binding
	UpDown key.Binding
	Undo   key.Binding
	Quit   key.Binding
}

func newListKeyMap(undo key.Binding) listKeyMap {
	return listKeyMap{
		Delete: key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "delete")),
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Accept: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply filter")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),
		UpDown: key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "select")),
		Undo:   undo,
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.UpDown, k.Delete, k.Undo, k.Filter, k.Quit}
}

func (k listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.UpDown, k.Delete, k.Undo}, {k.Filter, k.Accept, k.Cancel, k.Quit}}
}

type filterKeyMap struct {
	listKeyMap
}

func (k filterKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Cancel}
}

func (k filterKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Accept, k.Cancel}}
}

type appKeyMap struct {
	Focus     key.Binding
	Press     key.Binding
	Markdown  key.Binding
	Undo      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func newAppKeyMap(undo key.Binding) appKeyMap {
	return appKeyMap{
		Focus:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch focus")),
		Press:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "show banner")),
		Markdown:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "markdown banner")),
		Undo:      undo,
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k appKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Press, k.Markdown, k.Undo, k.Quit}
}

func (k appKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
