package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application. Letters go to the
// query input, so every binding uses a control or navigation key.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Actions
	Run           key.Binding
	OpenFolder    key.Binding
	ShowInLibrary key.Binding
	Refresh       key.Binding
	Clear         key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p", "ctrl+k"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n", "ctrl+j"),
			key.WithHelp("↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),

		// Actions
		Run: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		OpenFolder: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "open folder"),
		),
		ShowInLibrary: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "show in library"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "refresh"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("C-u", "clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.ShowInLibrary, k.OpenFolder, k.Refresh, k.Quit}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
