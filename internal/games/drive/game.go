// Package drive implements the portfolio driving game: a car drives down a
// straight track, avoids obstacles and reaches a finish line that reveals a
// portfolio section, across three levels of increasing obstacle density.
package drive

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/portfolio-drive/internal/config"
	"github.com/vovakirdan/portfolio-drive/internal/core"
	"github.com/vovakirdan/portfolio-drive/internal/registry"
)

// GameID is the registry identifier of the drive game.
const GameID = "drive"

// Game implements the level manager and the per-frame motion and collision loop.
type Game struct {
	cfg     config.DriveConfig
	runtime core.RuntimeConfig
	rng     *rand.Rand
	fixed   bool // Config was supplied by the caller and is not reloaded on Reset

	// Level state
	level      int
	completed  bool    // End-of-level transition pending; motion and collisions stop
	distance   float64 // Forward distance since the level started; no rule reads it
	layout     Layout
	collisions int // Restarts since the level was entered from another level

	controls Controls
	player   *core.Vec3 // Nil until the car sprite is ready
	cameraZ  float64

	// Timed advance. A pending advance only fires if no level start
	// happened after it was scheduled.
	tick           uint64
	levelStartTick uint64
	generation     uint64
	advancePending bool
	advanceAt      uint64
	advanceGen     uint64

	carSprite    *Sprite
	finishSprite *Sprite
	assetErrs    map[string]error

	events    []core.Event
	configErr error
}

var (
	configPath         string
	selectedStartLevel int
)

// SetConfigPath sets the custom config path games created by New load on Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetStartLevel sets the level the next Reset starts from (1-3). 0 means level 1.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// New creates a game that loads its config on Reset.
func New() *Game {
	return &Game{
		cfg:       config.DefaultDriveConfig(),
		assetErrs: make(map[string]error),
	}
}

// NewWithConfig creates a game with a fixed config.
func NewWithConfig(cfg config.DriveConfig) *Game {
	g := New()
	g.cfg = cfg
	g.fixed = true
	return g
}

// ConfigError reports why the last Reset fell back to the default config.
func (g *Game) ConfigError() error {
	return g.configErr
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Portfolio Drive"
}

// Config returns the active configuration.
func (g *Game) Config() config.DriveConfig {
	return g.cfg
}

// Reset starts a new game at the selected start level. Loaded sprites
// survive a reset, so the car reappears at the origin if it was ready.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.runtime.TickRate <= 0 {
		g.runtime.TickRate = core.DefaultConfig().TickRate
	}

	if !g.fixed {
		cfg, err := config.LoadDrive(configPath)
		g.configErr = err
		if err != nil {
			cfg = config.DefaultDriveConfig()
		}
		g.cfg = cfg
	}

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.tick = 0
	g.generation = 0
	g.advancePending = false
	g.collisions = 0
	g.controls = Controls{}
	g.events = nil
	g.player = nil
	if g.carSprite != nil {
		g.spawnPlayer()
	}

	level := 1
	if selectedStartLevel >= 1 && selectedStartLevel <= LevelCount {
		level = selectedStartLevel
	}
	//nolint:errcheck // level is always in range here
	g.StartLevel(level)
}

// StartLevel (re)starts a level: it clears the completed flag, the forward
// key and the distance counter, cancels any pending advance, discards the
// previous obstacles and finish marker and lays out new ones.
func (g *Game) StartLevel(level int) error {
	if level < 1 || level > LevelCount {
		return ErrUnknownLevel
	}

	g.level = level
	g.completed = false
	g.controls.Forward = false
	g.distance = 0

	g.generation++
	g.advancePending = false

	g.layout = NewLayout(level, g.rng)
	if g.finishSprite != nil {
		g.layout.PlaceFinish()
	}
	g.levelStartTick = g.tick

	g.publish(core.LevelStartedEvent{
		Level:       level,
		Title:       LevelTitle(level),
		Description: LevelDescription(level),
	})
	return nil
}

// Advance moves to the next level, wrapping from the last level to the first.
func (g *Game) Advance() {
	g.advance(false)
}

func (g *Game) advance(manual bool) {
	from := g.level
	to := NextLevel(from)
	g.collisions = 0
	g.publish(core.AdvancedEvent{From: from, To: to, Manual: manual})
	//nolint:errcheck // NextLevel always returns a valid level
	g.StartLevel(to)
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.controls.apply(in, g.completed) && g.completed {
		g.advance(true)
	}

	if g.advancePending && g.tick >= g.advanceAt {
		g.advancePending = false
		if g.advanceGen == g.generation {
			g.advance(false)
		}
	}

	if g.player == nil {
		return core.StepResult{State: g.State()}
	}

	g.move()
	g.cameraZ = g.player.Z + g.cfg.Camera.FollowOffset
	g.detectCollisions()

	return core.StepResult{State: g.State()}
}

// move applies the held keys to the player position.
func (g *Game) move() {
	if g.completed {
		return
	}

	speed := g.cfg.Physics.Speed
	if g.controls.Forward {
		g.player.Z -= speed
		g.distance += speed
	}
	if g.controls.Left {
		g.player.X -= speed / 2
	}
	if g.controls.Right {
		g.player.X += speed / 2
	}
}

// detectCollisions checks obstacles in creation order, then the finish marker.
// The first obstacle hit restarts the level and ends the check.
func (g *Game) detectCollisions() {
	if g.completed {
		return
	}

	radius := g.cfg.Physics.CollisionRadius
	for _, obs := range g.layout.Obstacles {
		if g.player.DistanceTo(obs) < radius {
			g.collisions++
			g.publish(core.CollisionEvent{
				Level: g.level,
				Popup: g.cfg.Content.Collision,
			})
			//nolint:errcheck // current level is always valid
			g.StartLevel(g.level)
			return
		}
	}

	if g.layout.Finish != nil && g.player.DistanceTo(*g.layout.Finish) < radius {
		g.completed = true
		g.publish(core.LevelCompletedEvent{
			Level:      g.level,
			Popup:      g.completionPopup(g.level),
			Ticks:      g.tick - g.levelStartTick,
			Distance:   g.distance,
			Collisions: g.collisions,
		})
		g.scheduleAdvance()
	}
}

// scheduleAdvance arms the timed advance for the current level generation.
func (g *Game) scheduleAdvance() {
	delay := g.cfg.Timing.AdvanceDelay().Seconds()
	ticks := uint64(math.Ceil(delay * float64(g.runtime.TickRate)))

	g.advancePending = true
	g.advanceAt = g.tick + ticks
	g.advanceGen = g.generation
}

// completionPopup returns the success popup of a level.
func (g *Game) completionPopup(level int) core.Popup {
	if level >= 1 && level <= len(g.cfg.Content.Levels) {
		return g.cfg.Content.Levels[level-1]
	}
	return core.Popup{Title: LevelTitle(level)}
}

// spawnPlayer creates the player car at the world origin.
func (g *Game) spawnPlayer() {
	g.player = &core.Vec3{}
	g.cameraZ = g.player.Z + g.cfg.Camera.FollowOffset
}

func (g *Game) publish(e core.Event) {
	g.events = append(g.events, e)
}

// Events drains the display events published since the last call.
func (g *Game) Events() []core.Event {
	events := g.events
	g.events = nil
	return events
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Level:     g.level,
		Completed: g.completed,
		Distance:  g.distance,
		Ready:     g.player != nil,
	}
}

// Level returns the current level number.
func (g *Game) Level() int {
	return g.level
}

// Controls returns the currently held keys.
func (g *Game) Controls() Controls {
	return g.controls
}

// Player returns the player position and whether the player exists.
func (g *Game) Player() (core.Vec3, bool) {
	if g.player == nil {
		return core.Vec3{}, false
	}
	return *g.player, true
}

// Obstacles returns a copy of the current obstacle positions in creation order.
func (g *Game) Obstacles() []core.Vec3 {
	out := make([]core.Vec3, len(g.layout.Obstacles))
	copy(out, g.layout.Obstacles)
	return out
}

// Finish returns the finish marker position and whether it has been placed.
func (g *Game) Finish() (core.Vec3, bool) {
	if g.layout.Finish == nil {
		return core.Vec3{}, false
	}
	return *g.layout.Finish, true
}

// CameraZ returns the chase camera's Z coordinate.
func (g *Game) CameraZ() float64 {
	return g.cameraZ
}

// AdvancePending reports whether a timed advance is armed.
func (g *Game) AdvancePending() bool {
	return g.advancePending
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
