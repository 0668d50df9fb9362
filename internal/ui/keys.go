package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the reader's key bindings.
type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Favorite  key.Binding
	Star      key.Binding
	Hide      key.Binding
	NotBased  key.Binding
	Exclude   key.Binding
	Shuffle   key.Binding
	AllQueue  key.Binding
	FavQueue  key.Binding
	StarQueue key.Binding
	Satire    key.Binding
	BookKind  key.Binding
	Roster    key.Binding
	Queues    key.Binding
	SaveQueue key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("j", "right", "l", " "), key.WithHelp("j/→", "next quote")),
		Prev:      key.NewBinding(key.WithKeys("k", "left", "h"), key.WithHelp("k/←", "previous quote")),
		Favorite:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle favorite")),
		Star:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "star author")),
		Hide:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hide quote")),
		NotBased:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "not based")),
		Exclude:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "exclude work")),
		Shuffle:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "reshuffle feed")),
		AllQueue:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all quotes")),
		FavQueue:  key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "favorites queue")),
		StarQueue: key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "starred queue")),
		Satire:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle satire")),
		BookKind:  key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "book/figure author")),
		Roster:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "author roster")),
		Queues:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "saved queues")),
		SaveQueue: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "save queue as...")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "Q"), key.WithHelp("Q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Favorite, k.Roster, k.Queues, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Favorite, k.Star, k.Hide, k.NotBased},
		{k.Exclude, k.Shuffle, k.AllQueue, k.FavQueue, k.StarQueue, k.Satire, k.BookKind},
		{k.Roster, k.Queues, k.SaveQueue, k.Help, k.Quit},
	}
}
