package drive

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/portfolio-drive/internal/config"
	"github.com/vovakirdan/portfolio-drive/internal/core"
	"github.com/vovakirdan/portfolio-drive/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

// newTestGame returns a reset game with no assets loaded.
func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := NewWithConfig(config.DefaultDriveConfig())
	g.Reset(testRuntime(42))
	return g
}

// newReadyGame returns a reset game with both sprites loaded and the
// reset events drained.
func newReadyGame(t *testing.T) *Game {
	t.Helper()
	g := newTestGame(t)
	loadAsset(t, g, AssetCar)
	loadAsset(t, g, AssetFinish)
	g.Events()
	return g
}

func loadAsset(t *testing.T, g *Game, name string) {
	t.Helper()
	for _, a := range g.Assets() {
		if a.Name != name {
			continue
		}
		data, err := a.Load(context.Background())
		require.NoError(t, err)
		g.AssetLoaded(a.Name, data, nil)
		return
	}
	t.Fatalf("unknown asset %q", name)
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func release(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Release(a)
	}
	return in
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

// placePlayer moves the car to a world position.
func placePlayer(g *Game, pos core.Vec3) {
	p := pos
	g.player = &p
}

func stepN(g *Game, n int, in core.InputFrame) {
	for range n {
		g.Step(in)
	}
}

func eventsOf[T core.Event](events []core.Event) []T {
	var out []T
	for _, e := range events {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func TestRegistered(t *testing.T) {
	require.True(t, registry.Exists(GameID))

	g, err := registry.Create(GameID)
	require.NoError(t, err)
	require.Equal(t, "Portfolio Drive", g.Title())
}

func TestReset(t *testing.T) {
	g := newReadyGame(t)
	stepN(g, 20, press(core.ActionForward, core.ActionLeft))

	g.Reset(testRuntime(42))

	state := g.State()
	require.Equal(t, 1, state.Level)
	require.False(t, state.Completed)
	require.Zero(t, state.Distance)
	require.Zero(t, g.tick)
	require.Equal(t, Controls{}, g.Controls())

	pos, ok := g.Player()
	require.True(t, ok, "a loaded car survives reset")
	require.Zero(t, pos.Len())

	started := eventsOf[core.LevelStartedEvent](g.Events())
	require.Len(t, started, 1)
	require.Equal(t, "Level 1: Portfolio Section", started[0].Title)
}

func TestResetStartLevel(t *testing.T) {
	SetStartLevel(3)
	t.Cleanup(func() { SetStartLevel(0) })

	g := newTestGame(t)
	require.Equal(t, 3, g.Level())
	require.Len(t, g.Obstacles(), 15)
}

func TestResetLoadsConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drive.yaml")
	require.NoError(t, os.WriteFile(path, []byte("content:\n  collision:\n    title: Bump\n"), 0o644))
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.Reset(testRuntime(1))
	require.NoError(t, g.ConfigError())
	require.Equal(t, "Bump", g.Config().Content.Collision.Title)
}

func TestResetConfigFallback(t *testing.T) {
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.Reset(testRuntime(1))
	require.Error(t, g.ConfigError())
	require.Equal(t, config.DefaultDriveConfig(), g.Config())
	require.Equal(t, 1, g.Level())
}

func TestFixedConfigIgnoresConfigPath(t *testing.T) {
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	t.Cleanup(func() { SetConfigPath("") })

	cfg := config.DefaultDriveConfig()
	cfg.Content.Collision.Title = "Crash"
	g := NewWithConfig(cfg)
	g.Reset(testRuntime(1))
	require.NoError(t, g.ConfigError())
	require.Equal(t, "Crash", g.Config().Content.Collision.Title)
}

func TestStartLevelUnknown(t *testing.T) {
	g := newTestGame(t)
	require.ErrorIs(t, g.StartLevel(0), ErrUnknownLevel)
	require.ErrorIs(t, g.StartLevel(4), ErrUnknownLevel)
	require.Equal(t, 1, g.Level())
}

func TestStartLevelResetsState(t *testing.T) {
	g := newReadyGame(t)

	stepN(g, 10, press(core.ActionForward))
	require.Positive(t, g.State().Distance)
	require.True(t, g.Controls().Forward)

	g.completed = true
	require.NoError(t, g.StartLevel(2))

	state := g.State()
	require.Equal(t, 2, state.Level)
	require.False(t, state.Completed)
	require.Zero(t, state.Distance)
	require.False(t, g.Controls().Forward)
	require.Len(t, g.Obstacles(), 10)

	fin, ok := g.Finish()
	require.True(t, ok)
	require.Equal(t, -100.0, fin.Z)
}

func TestForwardMotion(t *testing.T) {
	g := newReadyGame(t)
	placePlayer(g, core.NewVec3(20, 0, 0)) // Clear of every obstacle

	g.Step(press(core.ActionForward))
	stepN(g, 99, idle())

	pos, _ := g.Player()
	require.InDelta(t, -0.07*100, pos.Z, 1e-9)
	require.InDelta(t, 0.07*100, g.State().Distance, 1e-9)
	require.InDelta(t, pos.Z+5, g.CameraZ(), 1e-9)
}

func TestSteering(t *testing.T) {
	g := newReadyGame(t)

	stepN(g, 10, press(core.ActionLeft))
	pos, _ := g.Player()
	require.InDelta(t, -0.035*10, pos.X, 1e-9)
	require.Zero(t, pos.Z)

	g.Step(release(core.ActionLeft))
	g.Step(press(core.ActionRight))
	stepN(g, 3, idle())
	g.Step(release(core.ActionRight))

	pos, _ = g.Player()
	require.InDelta(t, -0.035*10+0.035*4, pos.X, 1e-9)
	require.Equal(t, Controls{}, g.Controls())
}

func TestCollisionRestartsLevel(t *testing.T) {
	g := newReadyGame(t)
	stepN(g, 5, press(core.ActionForward))

	before := g.Obstacles()
	placePlayer(g, before[0])
	gen := g.generation

	g.Step(idle())

	state := g.State()
	require.Equal(t, 1, state.Level)
	require.Zero(t, state.Distance)
	require.False(t, g.Controls().Forward)
	require.Equal(t, gen+1, g.generation)

	// The layout is rebuilt: same count and depths, fresh lateral positions
	after := g.Obstacles()
	require.Len(t, after, len(before), "obstacle count unchanged")
	moved := false
	for i := range after {
		require.Equal(t, before[i].Z, after[i].Z)
		if after[i].X != before[i].X {
			moved = true
		}
	}
	require.True(t, moved, "obstacles were not regenerated")

	events := g.Events()
	collisions := eventsOf[core.CollisionEvent](events)
	require.Len(t, collisions, 1)
	require.Equal(t, "Collision Alert", collisions[0].Popup.Title)
	require.Equal(t, "You hit an obstacle! Restarting level...", collisions[0].Popup.Message)
	require.Len(t, eventsOf[core.LevelStartedEvent](events), 1)
}

func TestReachFinish(t *testing.T) {
	g := newReadyGame(t)
	placePlayer(g, FinishPosition(1))

	g.Step(idle())

	require.True(t, g.State().Completed)
	require.True(t, g.AdvancePending())

	done := eventsOf[core.LevelCompletedEvent](g.Events())
	require.Len(t, done, 1)
	require.Equal(t, 1, done[0].Level)
	require.Equal(t, "Level 1 Complete!", done[0].Popup.Title)
	require.Equal(t, "Welcome to Level 2", done[0].Popup.Message)

	// Motion and collisions stop until the level changes
	before, _ := g.Player()
	stepN(g, 10, press(core.ActionLeft))
	after, _ := g.Player()
	require.Equal(t, before, after)
	require.Empty(t, eventsOf[core.LevelCompletedEvent](g.Events()))
}

func TestTimedAdvance(t *testing.T) {
	g := newReadyGame(t)
	placePlayer(g, FinishPosition(1))
	g.Step(idle())
	g.Events()

	stepN(g, 59, idle())
	require.Equal(t, 1, g.Level())
	require.True(t, g.State().Completed)

	g.Step(idle())
	require.Equal(t, 2, g.Level())
	require.False(t, g.State().Completed)
	require.False(t, g.AdvancePending())

	advanced := eventsOf[core.AdvancedEvent](g.Events())
	require.Len(t, advanced, 1)
	require.Equal(t, core.AdvancedEvent{From: 1, To: 2, Manual: false}, advanced[0])
}

func TestAdvanceFromLevelTwo(t *testing.T) {
	g := newReadyGame(t)
	require.NoError(t, g.StartLevel(2))
	placePlayer(g, FinishPosition(2))

	g.Step(idle())
	stepN(g, 60, idle())

	require.Equal(t, 3, g.Level())
	require.Len(t, g.Obstacles(), 15)
	fin, ok := g.Finish()
	require.True(t, ok)
	require.Equal(t, -150.0, fin.Z)
}

func TestLastLevelWraps(t *testing.T) {
	g := newReadyGame(t)
	require.NoError(t, g.StartLevel(3))
	placePlayer(g, FinishPosition(3))

	g.Step(idle())
	done := eventsOf[core.LevelCompletedEvent](g.Events())
	require.Len(t, done, 1)
	require.Equal(t, "Congratulations!", done[0].Popup.Title)

	stepN(g, 60, idle())
	require.Equal(t, 1, g.Level())
	require.Len(t, g.Obstacles(), 5)
}

func TestManualAdvanceCancelsTimer(t *testing.T) {
	g := newReadyGame(t)
	placePlayer(g, FinishPosition(1))
	g.Step(idle())
	g.Events()

	stepN(g, 10, idle())
	g.Step(press(core.ActionForward))

	require.Equal(t, 2, g.Level())
	require.False(t, g.Controls().Forward, "the advancing press does not drive")
	require.False(t, g.AdvancePending())

	advanced := eventsOf[core.AdvancedEvent](g.Events())
	require.Len(t, advanced, 1)
	require.True(t, advanced[0].Manual)

	// The old deadline passes without a second advance
	stepN(g, 120, idle())
	require.Equal(t, 2, g.Level())
	require.Empty(t, eventsOf[core.AdvancedEvent](g.Events()))
}

func TestManualAdvanceWrapsFromLastLevel(t *testing.T) {
	g := newReadyGame(t)
	require.NoError(t, g.StartLevel(3))
	placePlayer(g, FinishPosition(3))
	g.Step(idle())

	g.Step(press(core.ActionForward))
	require.Equal(t, 1, g.Level())
}

func TestCompletionStats(t *testing.T) {
	g := newReadyGame(t)
	placePlayer(g, g.Obstacles()[0])
	g.Step(idle())
	placePlayer(g, core.NewVec3(20, 0, 0))

	stepN(g, 9, idle())
	placePlayer(g, FinishPosition(1))
	g.Step(idle())

	done := eventsOf[core.LevelCompletedEvent](g.Events())
	require.Len(t, done, 1)
	require.Equal(t, 1, done[0].Collisions)
	require.Equal(t, uint64(10), done[0].Ticks)
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 300)
	for i := range inputs {
		switch {
		case i == 0:
			inputs[i] = press(core.ActionForward)
		case i%40 == 10:
			inputs[i] = press(core.ActionLeft)
		case i%40 == 20:
			inputs[i] = release(core.ActionLeft)
		case i%40 == 25:
			inputs[i] = press(core.ActionRight)
		case i%40 == 35:
			inputs[i] = release(core.ActionRight)
		default:
			inputs[i] = idle()
		}
	}

	run := func(seed int64) Snapshot {
		g := NewWithConfig(config.DefaultDriveConfig())
		g.Reset(testRuntime(seed))
		loadAsset(t, g, AssetCar)
		loadAsset(t, g, AssetFinish)
		for _, in := range inputs {
			g.Step(in)
		}
		return g.Snapshot()
	}

	snap1 := run(12345)
	snap2 := run(12345)
	require.Equal(t, snap1.Hash(), snap2.Hash())
	require.Equal(t, snap1, snap2)

	snap3 := run(999)
	require.NotEqual(t, snap1.ObstacleData, snap3.ObstacleData)
}

func TestEventsDrain(t *testing.T) {
	g := newTestGame(t)
	require.NotEmpty(t, g.Events())
	require.Empty(t, g.Events())
}
