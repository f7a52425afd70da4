package core

// Color names the role of a screen cell. The platform decides how each
// role looks in the terminal.
type Color uint8

// Palette of the drive scene and its overlays.
const (
	ColorDefault   Color = iota
	ColorTitle           // Level title, popup title, finish checkers
	ColorMuted           // Descriptions, separators, horizon
	ColorTrack           // Road surface
	ColorEdge            // Road edges
	ColorObstacle        // Obstacle blocks
	ColorCar             // Player car
	ColorAccent          // Start screen title, contact label
	ColorHighlight       // Popup frame and message
	ColorAction          // Buttons and calls to action
	ColorAlert           // Close glyph
)
