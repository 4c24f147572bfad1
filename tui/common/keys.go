package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	Refresh     key.Binding
	NewInline   key.Binding // n: compose inline
	NewEditor   key.Binding // N: compose via $EDITOR
	Edit        key.Binding // e: edit selected post inline
	EditEditor  key.Binding // E: edit selected post via $EDITOR
	Delete      key.Binding // d: delete selected post
	Up          key.Binding
	Down        key.Binding
	Open        key.Binding // enter: post detail
	Back        key.Binding
	FilterUser  key.Binding // u: only the selected author's posts
	Count       key.Binding // +: auxiliary counter
	React       []key.Binding
	ToggleHints key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		NewInline: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new post"),
		),
		NewEditor: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "new post ($EDITOR)"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		EditEditor: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "edit ($EDITOR)"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		FilterUser: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "author filter"),
		),
		Count: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "count"),
		),
		React: []key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "👍")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "😮")),
			key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "❤️")),
			key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "🚀")),
			key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "☕")),
		},
		ToggleHints: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "all keys"),
		),
	}
}

// ShortHelp is the one-line hint bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.NewInline, k.FilterUser, k.Quit, k.ToggleHints}
}

// FullHelp groups every binding for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Back},
		{k.NewInline, k.NewEditor, k.Edit, k.EditEditor, k.Delete},
		append([]key.Binding{k.FilterUser, k.Count}, k.React...),
		{k.Refresh, k.ToggleHints, k.Quit, k.ForceQuit},
	}
}
