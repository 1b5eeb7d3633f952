package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the global key bindings.
type keyMap struct {
	Quit       key.Binding
	Schedule   key.Binding
	Homework   key.Binding
	Records    key.Binding
	Courses    key.Binding
	Students   key.Binding
	Refresh    key.Binding
	LoadMore   key.Binding
	Filter     key.Binding
	Search     key.Binding
	Toggle     key.Binding
	Theme      key.Binding
	Logout     key.Binding
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Back       key.Binding
	NextField  key.Binding
	SubmitForm key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	Schedule:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "schedule")),
	Homework:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "homework")),
	Records:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "records")),
	Courses:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "courses")),
	Students:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "switch student")),
	Refresh:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh")),
	LoadMore:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more")),
	Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle filter")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Toggle:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upcoming/all")),
	Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Logout:     key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	NextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	SubmitForm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sign in")),
}
