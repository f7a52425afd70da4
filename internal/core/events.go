package core

import "context"

// Popup is the content of a dismissible message box: a title, a one-line
// message and a longer body.
type Popup struct {
	Title   string `yaml:"title"`
	Message string `yaml:"message"`
	Content string `yaml:"content"`
}

// Event is a notification a game publishes for the display layer.
// The platform drains events once per tick.
type Event interface {
	event()
}

// LevelStartedEvent is published whenever a level is (re)started.
type LevelStartedEvent struct {
	Level       int
	Title       string
	Description string
}

func (LevelStartedEvent) event() {}

// CollisionEvent is published when the player hits an obstacle.
type CollisionEvent struct {
	Level int
	Popup Popup
}

func (CollisionEvent) event() {}

// LevelCompletedEvent is published when the player reaches the finish marker.
type LevelCompletedEvent struct {
	Level      int
	Popup      Popup
	Ticks      uint64  // Ticks spent in the level since it last started
	Distance   float64 // Forward distance traveled in the level
	Collisions int     // Restarts of this level before it was completed
}

func (LevelCompletedEvent) event() {}

// AdvancedEvent is published when the game moves to another level.
type AdvancedEvent struct {
	From   int
	To     int
	Manual bool // True when forced by a key press rather than the timer
}

func (AdvancedEvent) event() {}

// Asset is a named resource a game needs before some of its objects exist.
// Load may block; the platform calls it off the simulation path.
type Asset struct {
	Name string
	Load func(ctx context.Context) ([]byte, error)
}
