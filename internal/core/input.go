package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionForward        // Up arrow - drive forward
	ActionLeft           // Left arrow - steer left
	ActionRight          // Right arrow - steer right
	ActionConfirm        // Enter - confirm popup / press focused button
	ActionClose          // Esc, X - close popup
	ActionContact        // C - open contact details
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionForward:
		return "Forward"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionClose:
		return "Close"
	case ActionContact:
		return "Contact"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input events delivered during one simulation tick.
// Actions holds key-down events, Released holds key-up events. A key can be
// pressed and released within the same frame; presses are applied first.
type InputFrame struct {
	Actions  map[Action]bool
	Released map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions:  make(map[Action]bool),
		Released: make(map[Action]bool),
	}
}

// Set marks an action as pressed in this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Release marks an action as released in this frame.
func (f *InputFrame) Release(a Action) {
	if f.Released == nil {
		f.Released = make(map[Action]bool)
	}
	f.Released[a] = true
}

// Has returns true if the given action was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// WasReleased returns true if the given action was released this frame.
func (f InputFrame) WasReleased(a Action) bool {
	return f.Released[a]
}

// Empty reports whether the frame carries no events.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.Released) == 0
}

// Clear resets all events for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	clear(f.Released)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.Released {
		clone.Released[k] = v
	}
	return clone
}
