package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	nextPage  key.Binding
	prevPage  key.Binding
	enter     key.Binding
	esc       key.Binding
	tab       key.Binding
	backtab   key.Binding
	quit      key.Binding
	sort      key.Binding
	category  key.Binding
	search    key.Binding
	curation  key.Binding
	relay     key.Binding
	connect   key.Binding
	logout    key.Binding
	refresh   key.Binding
	copy      key.Binding
	buildInfo key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	nextPage:  key.NewBinding(key.WithKeys("right", "l")),
	prevPage:  key.NewBinding(key.WithKeys("left", "h")),
	enter:     key.NewBinding(key.WithKeys("enter")),
	esc:       key.NewBinding(key.WithKeys("esc")),
	tab:       key.NewBinding(key.WithKeys("tab")),
	backtab:   key.NewBinding(key.WithKeys("shift+tab")),
	quit:      key.NewBinding(key.WithKeys("q", "ctrl+c")),
	sort:      key.NewBinding(key.WithKeys("o")),
	category:  key.NewBinding(key.WithKeys("g")),
	search:    key.NewBinding(key.WithKeys("/")),
	curation:  key.NewBinding(key.WithKeys("u")),
	relay:     key.NewBinding(key.WithKeys("r")),
	connect:   key.NewBinding(key.WithKeys("w")),
	logout:    key.NewBinding(key.WithKeys("x")),
	refresh:   key.NewBinding(key.WithKeys("b")),
	copy:      key.NewBinding(key.WithKeys("c")),
	buildInfo: key.NewBinding(key.WithKeys("i")),
}
