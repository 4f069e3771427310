package ui

import "github.com/charmbracelet/bubbles/key"

// Key bindings
var keys = struct {
	Quit          key.Binding
	Up            key.Binding
	Down          key.Binding
	Top           key.Binding
	Bottom        key.Binding
	Detail        key.Binding
	Search        key.Binding
	Tags          key.Binding
	PrevRegion    key.Binding
	NextRegion    key.Binding
	Favorite      key.Binding
	FavoritesOnly key.Binding
	Sort          key.Binding
	Shuffle       key.Binding
	Retry         key.Binding
	Escape        key.Binding
	Enter         key.Binding
	ClearTags     key.Binding
}{
	Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c")),
	Up:            key.NewBinding(key.WithKeys("k", "up")),
	Down:          key.NewBinding(key.WithKeys("j", "down")),
	Top:           key.NewBinding(key.WithKeys("g", "home")),
	Bottom:        key.NewBinding(key.WithKeys("G", "end")),
	Detail:        key.NewBinding(key.WithKeys("enter")),
	Search:        key.NewBinding(key.WithKeys("/")),
	Tags:          key.NewBinding(key.WithKeys("t")),
	PrevRegion:    key.NewBinding(key.WithKeys("[")),
	NextRegion:    key.NewBinding(key.WithKeys("]")),
	Favorite:      key.NewBinding(key.WithKeys("f")),
	FavoritesOnly: key.NewBinding(key.WithKeys("F")),
	Sort:          key.NewBinding(key.WithKeys("s")),
	Shuffle:       key.NewBinding(key.WithKeys("x")),
	Retry:         key.NewBinding(key.WithKeys("r")),
	Escape:        key.NewBinding(key.WithKeys("esc")),
	Enter:         key.NewBinding(key.WithKeys("enter")),
	ClearTags:     key.NewBinding(key.WithKeys("ctrl+r")),
}
