package drive

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/portfolio-drive/internal/core"
)

// LevelCount is the number of hand-authored levels. Advancing past the
// last one wraps to level 1.
const LevelCount = 3

// Track and obstacle geometry, in world units.
const (
	ObstacleHeight  = 0.5  // Y of every obstacle and of the finish marker
	ObstacleSpacing = 10.0 // Z gap between consecutive obstacles
	ObstacleLead    = 5.0  // Z gap between the level start and the first obstacle
	LevelShift      = 20.0 // Extra Z offset of each later level's obstacles
	LateralSpread   = 10.0 // Obstacles are spread over X in [-5, 5)

	TrackWidth  = 50.0
	TrackLength = 500.0
	TrackY      = -1.0
	TrackShift  = 50.0 // Z offset of each later level's track panel
)

// ErrUnknownLevel is returned when a level number is outside 1..LevelCount.
var ErrUnknownLevel = errors.New("drive: unknown level")

// ObstacleCount returns how many obstacles a level has.
// Levels 1 and 2 scale with the level number; level 3 is fixed at 15.
func ObstacleCount(level int) int {
	if level == 3 {
		return 15
	}
	return level * 5
}

// FinishDistance returns how far down the track the finish marker sits.
func FinishDistance(level int) float64 {
	switch level {
	case 1:
		return 50
	case 2:
		return 100
	default:
		return 150
	}
}

// ObstacleZ returns the Z coordinate of the i-th obstacle of a level.
func ObstacleZ(level, i int) float64 {
	return -float64(i)*ObstacleSpacing - ObstacleLead - float64(level-1)*LevelShift
}

// TrackZ returns the Z coordinate of the center of a level's track panel.
func TrackZ(level int) float64 {
	return -float64(level-1) * TrackShift
}

// FinishPosition returns the world position of a level's finish marker.
func FinishPosition(level int) core.Vec3 {
	return core.NewVec3(0, ObstacleHeight, -FinishDistance(level))
}

// NextLevel returns the level that follows the given one, wrapping after the last.
func NextLevel(level int) int {
	if level < LevelCount {
		return level + 1
	}
	return 1
}

// LevelTitle returns the heading shown while a level is being played.
func LevelTitle(level int) string {
	return fmt.Sprintf("Level %d: Portfolio Section", level)
}

// LevelDescription returns the text shown under the level heading.
func LevelDescription(level int) string {
	return fmt.Sprintf("Information about portfolio at the end of the level %d.", level)
}

// Layout is the set of objects placed for one run of a level.
// A new Layout replaces the previous one wholesale on every level start.
type Layout struct {
	Level     int
	TrackZ    float64
	Obstacles []core.Vec3 // In creation order
	Finish    *core.Vec3  // Nil until the finish sprite is ready
}

// NewLayout lays out a level: the track panel position and ObstacleCount
// obstacles at random lateral offsets. The finish marker is left to the caller.
func NewLayout(level int, rng *rand.Rand) Layout {
	count := ObstacleCount(level)
	obstacles := make([]core.Vec3, 0, count)
	for i := 0; i < count; i++ {
		x := (rng.Float64() - 0.5) * LateralSpread
		obstacles = append(obstacles, core.NewVec3(x, ObstacleHeight, ObstacleZ(level, i)))
	}

	return Layout{
		Level:     level,
		TrackZ:    TrackZ(level),
		Obstacles: obstacles,
	}
}

// PlaceFinish sets the finish marker for the layout's level.
func (l *Layout) PlaceFinish() {
	pos := FinishPosition(l.Level)
	l.Finish = &pos
}
