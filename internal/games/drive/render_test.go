package drive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/portfolio-drive/internal/core"
)

func TestRenderHUD(t *testing.T) {
	g := newReadyGame(t)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	require.Contains(t, screen.Row(0), "Level 1: Portfolio Section")
	require.Contains(t, screen.Row(1), "Information about portfolio at the end of the level 1.")
	require.Contains(t, screen.Row(23), "Distance: 0.0")
	require.Contains(t, screen.Row(23), "Finish: 50")
}

func TestRenderScene(t *testing.T) {
	g := newReadyGame(t)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()

	require.Contains(t, out, string(BlockRune), "obstacles are drawn")
	require.Contains(t, out, string(EdgeRune), "track edges are drawn")
	require.Contains(t, out, "▄▀▀▀▄", "car sprite is drawn")
}

func TestRenderLoading(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	require.Contains(t, screen.String(), "Loading car...")
}

func TestRenderTooSmall(t *testing.T) {
	g := newReadyGame(t)
	screen := core.NewScreen(30, 10)

	g.Render(screen)
	require.Contains(t, screen.String(), "Window too small")
}

func TestRenderCompleted(t *testing.T) {
	g := newReadyGame(t)
	placePlayer(g, FinishPosition(1))
	g.Step(idle())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	require.True(t, strings.Contains(screen.Row(23), "Level complete!"))
}

func TestProjection(t *testing.T) {
	g := newReadyGame(t)
	screen := core.NewScreen(80, 24)
	v := g.newView(screen)

	// Farther objects sit closer to the horizon
	_, nearY, ok := v.project(core.NewVec3(0, 0, -5))
	require.True(t, ok)
	_, farY, ok := v.project(core.NewVec3(0, 0, -50))
	require.True(t, ok)
	require.Greater(t, nearY, farY)
	require.Greater(t, farY, float64(v.horizon))

	// Points behind the camera are culled
	_, _, ok = v.project(core.NewVec3(0, 0, 10))
	require.False(t, ok)
}
