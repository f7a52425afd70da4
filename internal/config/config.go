// Package config provides YAML-based configuration loading for the drive game.
package config

import (
	"time"

	"github.com/vovakirdan/portfolio-drive/internal/core"
)

// DriveConfig contains all configuration for the portfolio drive game.
type DriveConfig struct {
	Physics DrivePhysics `yaml:"physics"`
	Timing  DriveTiming  `yaml:"timing"`
	Camera  DriveCamera  `yaml:"camera"`
	Input   DriveInput   `yaml:"input"`
	Assets  DriveAssets  `yaml:"assets"`
	Content DriveContent `yaml:"content"`
}

// DrivePhysics defines motion and collision parameters.
type DrivePhysics struct {
	Speed           float64 `yaml:"speed"`            // Forward distance per frame; lateral moves at half
	CollisionRadius float64 `yaml:"collision_radius"` // Distance below which two objects touch
}

// DriveTiming defines delays between game phases.
type DriveTiming struct {
	AdvanceDelayMS int `yaml:"advance_delay_ms"` // Delay between reaching the finish and the next level
}

// AdvanceDelay returns the advance delay as a duration.
func (t DriveTiming) AdvanceDelay() time.Duration {
	return time.Duration(t.AdvanceDelayMS) * time.Millisecond
}

// DriveCamera defines the chase camera placement relative to the player.
type DriveCamera struct {
	FollowOffset float64 `yaml:"follow_offset"` // Camera Z = player Z + offset
	Height       float64 `yaml:"height"`
}

// DriveInput defines how terminal key repeats are turned into held keys.
// A fresh press waits out the OS auto-repeat delay; once repeats flow, a
// short gap between them means the key was let go.
type DriveInput struct {
	HoldInitialMS int `yaml:"hold_initial_ms"` // Silence after the first press before release
	HoldRepeatMS  int `yaml:"hold_repeat_ms"`  // Silence between repeats before release
}

// HoldInitial returns the release timeout before the first repeat.
func (i DriveInput) HoldInitial() time.Duration {
	return time.Duration(i.HoldInitialMS) * time.Millisecond
}

// HoldRepeat returns the release timeout once the key is repeating.
func (i DriveInput) HoldRepeat() time.Duration {
	return time.Duration(i.HoldRepeatMS) * time.Millisecond
}

// DriveAssets points at an optional directory of sprite overrides.
type DriveAssets struct {
	Dir string `yaml:"dir"`
}

// DriveContent holds every text shown in popups.
type DriveContent struct {
	Levels    []core.Popup `yaml:"levels"` // One completion popup per level, in order
	Collision core.Popup   `yaml:"collision"`
	Contact   core.Popup   `yaml:"contact"`
	Intro     core.Popup   `yaml:"intro"`
}
