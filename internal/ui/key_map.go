package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	search key.Binding
	create key.Binding
	edit   key.Binding
	remove key.Binding
	copy   key.Binding
	share  key.Binding
	save   key.Binding
	next   key.Binding
	back   key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		create: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		edit:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		remove: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		copy:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		share:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share")),
		save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.search},
		{k.create, k.edit, k.remove},
		{k.copy, k.share, k.quit},
	}
}

func (k keyMap) listingHelp() []key.Binding {
	return []key.Binding{k.search, k.create, k.edit, k.remove, k.copy, k.share, k.quit}
}

func (k keyMap) editorHelp() []key.Binding {
	return []key.Binding{k.save, k.next, k.back}
}
