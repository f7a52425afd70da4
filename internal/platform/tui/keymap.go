package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/portfolio-drive/internal/core"
)

// KeyMap defines the key bindings of the drive session.
// Only the arrow keys reach the game; the rest drive the platform.
type KeyMap struct {
	Forward    key.Binding
	Left       key.Binding
	Right      key.Binding
	Confirm    key.Binding
	Close      key.Binding
	Contact    key.Binding
	Scores     key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Forward: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "drive"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "ok"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "x"),
			key.WithHelp("esc/x", "close"),
		),
		Contact: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "contact"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// GameAction translates a key message to the game action it drives.
// Returns ActionNone for keys the game ignores.
func (k KeyMap) GameAction(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Forward):
		return core.ActionForward
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	}
	return core.ActionNone
}

// PlatformAction translates a key message to a platform action.
func (k KeyMap) PlatformAction(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Close):
		return core.ActionClose
	case key.Matches(msg, k.Contact):
		return core.ActionContact
	}
	return core.ActionNone
}

// bindings is a help.KeyMap over a fixed list of bindings.
type bindings []key.Binding

// ShortHelp returns key bindings for the short help view.
func (b bindings) ShortHelp() []key.Binding {
	return b
}

// FullHelp returns key bindings for the full help view.
func (b bindings) FullHelp() [][]key.Binding {
	return [][]key.Binding{b}
}

// helpFor returns the bindings worth showing in the given session state.
func (k KeyMap) helpFor(p phase, intro, popup bool) bindings {
	switch {
	case intro:
		return bindings{k.Confirm, k.Close, k.Quit}
	case popup:
		return bindings{k.Confirm, k.Close, k.Forward, k.Left, k.Right, k.Quit}
	case p == phaseStart:
		return bindings{k.Confirm, k.Contact, k.Scores, k.Quit}
	default:
		return bindings{k.Forward, k.Left, k.Right, k.Contact, k.Screenshot, k.Quit}
	}
}
