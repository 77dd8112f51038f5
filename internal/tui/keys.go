package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Back key.Binding

	// Navigation
	Dashboard key.Binding
	Invoices  key.Binding
	History   key.Binding
	Payments  key.Binding
	Settings  key.Binding

	// Review
	Select    key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Clear     key.Binding
	Approve   key.Binding
	Reject    key.Binding
	Comment   key.Binding

	// Payment methods
	New        key.Binding
	SetDefault key.Binding
	Remove     key.Binding

	// Movement
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:       key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Dashboard:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "overview")),
	Invoices:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "invoices")),
	History:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
	Payments:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "payments")),
	Settings:   key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
	Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Toggle:     key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select")),
	ToggleAll:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
	Clear:      key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "clear selection")),
	Approve:    key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "approve")),
	Reject:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reject")),
	Comment:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comment")),
	New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	SetDefault: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "make default")),
	Remove:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous")),
	Right:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
}
