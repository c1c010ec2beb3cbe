package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the bindings the composer reacts to. Menu bindings are only
// consulted while the candidate menu is open.
type KeyMap struct {
	MenuUp       key.Binding
	MenuDown     key.Binding
	MenuPageUp   key.Binding
	MenuPageDown key.Binding
	MenuFirst    key.Binding
	MenuLast     key.Binding
	Commit       key.Binding
	Complete     key.Binding
	Dismiss      key.Binding

	Left       key.Binding
	Right      key.Binding
	LineUp     key.Binding
	LineDown   key.Binding
	Home       key.Binding
	End        key.Binding
	Backspace  key.Binding
	Delete     key.Binding
	DeleteWord key.Binding
	Newline    key.Binding
	Submit     key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		MenuUp:       key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "prev")),
		MenuDown:     key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
		MenuPageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		MenuPageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		MenuFirst:    key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("ctrl+home", "first")),
		MenuLast:     key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("ctrl+end", "last")),
		Commit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "insert")),
		Complete:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "insert")),
		Dismiss:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),

		Left:       key.NewBinding(key.WithKeys("left", "ctrl+b")),
		Right:      key.NewBinding(key.WithKeys("right", "ctrl+f")),
		LineUp:     key.NewBinding(key.WithKeys("up")),
		LineDown:   key.NewBinding(key.WithKeys("down")),
		Home:       key.NewBinding(key.WithKeys("home", "ctrl+a")),
		End:        key.NewBinding(key.WithKeys("end", "ctrl+e")),
		Backspace:  key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
		Delete:     key.NewBinding(key.WithKeys("delete")),
		DeleteWord: key.NewBinding(key.WithKeys("ctrl+w", "alt+backspace")),
		Newline:    key.NewBinding(key.WithKeys("enter", "ctrl+j", "alt+enter")),
		Submit:     key.NewBinding(key.WithKeys("ctrl+d", "ctrl+s"), key.WithHelp("ctrl+d", "submit")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "cancel")),
	}
}

func (k KeyMap) menuHelp() []key.Binding {
	return []key.Binding{k.MenuUp, k.MenuDown, k.Commit, k.Dismiss}
}

func (k KeyMap) editorHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Quit}
}
