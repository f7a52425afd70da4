package drive

import "math"

// Snapshot contains the complete game state for replay and determinism checks.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick       uint64
	Level      int
	Completed  bool
	Distance   float64
	Collisions int

	// Held keys
	Forward bool
	Left    bool
	Right   bool

	// Player state (absent until the car sprite is ready)
	HasPlayer bool
	PlayerX   float64
	PlayerZ   float64
	CameraZ   float64

	// Layout (each obstacle is 3 floats: X, Y, Z)
	ObstacleData []float64
	HasFinish    bool
	FinishZ      float64

	// Timed advance
	Generation     uint64
	AdvancePending bool
	AdvanceAt      uint64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	obstacleData := make([]float64, 0, len(g.layout.Obstacles)*3)
	for _, obs := range g.layout.Obstacles {
		obstacleData = append(obstacleData, obs.X, obs.Y, obs.Z)
	}

	snap := Snapshot{
		Tick:       g.tick,
		Level:      g.level,
		Completed:  g.completed,
		Distance:   g.distance,
		Collisions: g.collisions,

		Forward: g.controls.Forward,
		Left:    g.controls.Left,
		Right:   g.controls.Right,

		CameraZ:      g.cameraZ,
		ObstacleData: obstacleData,

		Generation:     g.generation,
		AdvancePending: g.advancePending,
		AdvanceAt:      g.advanceAt,
	}

	if g.player != nil {
		snap.HasPlayer = true
		snap.PlayerX = g.player.X
		snap.PlayerZ = g.player.Z
	}
	if g.layout.Finish != nil {
		snap.HasFinish = true
		snap.FinishZ = g.layout.Finish.Z
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Level)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Collisions) //#nosec G115 -- hash computation
	h = h*31 + boolBits(snap.Completed)
	h = h*31 + math.Float64bits(snap.Distance)
	h = h*31 + boolBits(snap.Forward)
	h = h*31 + boolBits(snap.Left)
	h = h*31 + boolBits(snap.Right)
	h = h*31 + boolBits(snap.HasPlayer)
	h = h*31 + math.Float64bits(snap.PlayerX)
	h = h*31 + math.Float64bits(snap.PlayerZ)
	h = h*31 + math.Float64bits(snap.CameraZ)
	h = h*31 + boolBits(snap.HasFinish)
	h = h*31 + math.Float64bits(snap.FinishZ)
	h = h*31 + snap.Generation
	h = h*31 + boolBits(snap.AdvancePending)
	h = h*31 + snap.AdvanceAt

	for _, v := range snap.ObstacleData {
		h = h*31 + math.Float64bits(v)
	}

	return h
}

func boolBits(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
