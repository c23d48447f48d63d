package update

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the bindings of the shopping screen.
type KeyMap struct {
	Quit     key.Binding
	Toggle   key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	Submit   key.Binding
	Clear    key.Binding
	Up       key.Binding
	Down     key.Binding
	Increase key.Binding
	Decrease key.Binding
	Remove   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "scanner on/off"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "add"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "skip"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add code"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Increase: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "less"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
	}
}

// Keys is the active key map.
var Keys = DefaultKeyMap()

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Submit, k.Increase, k.Decrease, k.Remove, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Submit, k.Clear},
		{k.Up, k.Down, k.Increase, k.Decrease, k.Remove},
		{k.Confirm, k.Cancel, k.Quit},
	}
}

// ConfirmHelp is shown while a scan waits for a decision.
func (k KeyMap) ConfirmHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel, k.Quit}
}
