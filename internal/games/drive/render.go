package drive

import (
	"fmt"
	"math"
	"sort"

	"github.com/vovakirdan/portfolio-drive/internal/core"
)

// Minimum screen size for the chase view.
const (
	MinScreenW = 40
	MinScreenH = 16
)

// Rendering constants
const (
	hudRows      = 3    // Title, description, separator
	focalScale   = 0.65 // Focal length as a share of the viewport height
	aspect       = 2.0  // Terminal cells are about twice as tall as wide
	nearPlane    = 0.5
	farPlane     = 220.0
	obstacleSize = 1.0
	finishWidth  = 5.0
	carWidth     = 1.0

	TrackRune   = '.'
	StripeRune  = ':'
	EdgeRune    = '|'
	HorizonRune = '─'
	BlockRune   = '█'
)

// view projects world coordinates onto the viewport with a chase camera
// looking down the negative Z axis.
type view struct {
	top, bottom int // Viewport rows, bottom exclusive
	horizon     int
	cx          float64
	f, fx       float64
	camY, camZ  float64
}

func (g *Game) newView(dst *core.Screen) view {
	top := hudRows
	bottom := dst.Height() - 1
	h := bottom - top
	f := focalScale * float64(h)

	camZ := g.cameraZ
	if g.player == nil {
		camZ = g.cfg.Camera.FollowOffset
	}

	return view{
		top:     top,
		bottom:  bottom,
		horizon: top + h/4,
		cx:      float64(dst.Width()) / 2,
		f:       f,
		fx:      f * aspect,
		camY:    g.cfg.Camera.Height,
		camZ:    camZ,
	}
}

// depth returns the distance from the camera plane to z.
func (v view) depth(z float64) float64 {
	return v.camZ - z
}

// project maps a world point to screen coordinates. ok is false when the
// point lies outside the near and far planes.
func (v view) project(p core.Vec3) (sx, sy float64, ok bool) {
	d := v.depth(p.Z)
	if d < nearPlane || d > farPlane {
		return 0, 0, false
	}
	sx = v.cx + p.X*v.fx/d
	sy = float64(v.horizon) + (v.camY-p.Y)*v.f/d
	return sx, sy, true
}

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	g.renderHUD(dst)

	v := g.newView(dst)
	g.renderTrack(dst, v)
	g.renderObjects(dst, v)
	g.renderCar(dst, v)
	g.renderStatus(dst)
}

// renderHUD draws the level heading and description.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextColored(1, 0, LevelTitle(g.level), core.ColorTitle)
	dst.DrawTextColored(1, 1, LevelDescription(g.level), core.ColorMuted)
	dst.DrawHLine(0, 2, dst.Width(), HorizonRune, core.ColorMuted)
}

// renderTrack draws the current level's track panel row by row, walking
// each screen row back to the ground depth it shows.
func (g *Game) renderTrack(dst *core.Screen, v view) {
	dst.DrawHLine(0, v.horizon, dst.Width(), HorizonRune, core.ColorMuted)

	near := g.layout.TrackZ + TrackLength/2
	far := g.layout.TrackZ - TrackLength/2
	height := v.camY - TrackY

	for y := v.horizon + 1; y < v.bottom; y++ {
		d := height * v.f / (float64(y-v.horizon) + 0.5)
		z := v.camZ - d
		if z > near || z < far || d > farPlane {
			continue
		}

		half := (TrackWidth / 2) * v.fx / d
		left := int(math.Round(v.cx - half))
		right := int(math.Round(v.cx + half))

		r := TrackRune
		if int(math.Floor(z/2))%2 == 0 {
			r = StripeRune
		}
		for x := max(left, 0); x <= min(right, dst.Width()-1); x++ {
			dst.SetColored(x, y, r, core.ColorTrack)
		}
		dst.SetColored(left, y, EdgeRune, core.ColorEdge)
		dst.SetColored(right, y, EdgeRune, core.ColorEdge)
	}
}

type drawable struct {
	pos    core.Vec3
	finish bool
}

// renderObjects draws obstacles and the finish marker from far to near.
func (g *Game) renderObjects(dst *core.Screen, v view) {
	items := make([]drawable, 0, len(g.layout.Obstacles)+1)
	for _, obs := range g.layout.Obstacles {
		items = append(items, drawable{pos: obs})
	}
	if g.layout.Finish != nil {
		items = append(items, drawable{pos: *g.layout.Finish, finish: true})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return v.depth(items[i].pos.Z) > v.depth(items[j].pos.Z)
	})

	for _, it := range items {
		if it.finish {
			g.renderFinish(dst, v, it.pos)
		} else {
			renderObstacle(dst, v, it.pos)
		}
	}
}

// renderObstacle draws a unit cube as a solid block.
func renderObstacle(dst *core.Screen, v view, pos core.Vec3) {
	sx, sy, ok := v.project(pos)
	if !ok {
		return
	}

	d := v.depth(pos.Z)
	w := max(1, int(math.Round(obstacleSize*v.fx/d)))
	h := max(1, int(math.Round(obstacleSize*v.f/d)))
	x0 := int(math.Round(sx)) - w/2
	y0 := max(int(math.Round(sy))-h/2, v.top)
	y1 := min(int(math.Round(sy))-h/2+h, v.bottom)
	if y1 <= y0 {
		return
	}

	dst.DrawRect(core.NewRect(x0, y0, w, y1-y0), BlockRune, core.ColorObstacle)
}

// renderFinish draws the finish marker as a checkered band.
func (g *Game) renderFinish(dst *core.Screen, v view, pos core.Vec3) {
	sx, sy, ok := v.project(pos)
	if !ok {
		return
	}

	pattern := []rune{'▀', '▄'}
	if g.finishSprite != nil && len(g.finishSprite.Rows[0]) > 0 {
		pattern = g.finishSprite.Rows[0]
	}

	d := v.depth(pos.Z)
	w := max(len(pattern), int(math.Round(finishWidth*v.fx/d)))
	x0 := int(math.Round(sx)) - w/2
	y := int(math.Round(sy))
	if y < v.top || y >= v.bottom {
		return
	}
	for i := 0; i < w; i++ {
		dst.SetColored(x0+i, y, pattern[i%len(pattern)], core.ColorTitle)
	}
}

// renderCar draws the car sprite at the player's projected position.
func (g *Game) renderCar(dst *core.Screen, v view) {
	if g.player == nil || g.carSprite == nil {
		msg := "Loading car..."
		if err := g.AssetError(AssetCar); err != nil {
			msg = "Car unavailable"
		}
		dst.DrawTextCentered(v.bottom-2, msg)
		return
	}

	sx, sy, ok := v.project(*g.player)
	if !ok {
		return
	}

	s := g.carSprite
	x0 := int(math.Round(sx)) - s.Width/2
	y0 := min(int(math.Round(sy))-s.Height()/2, v.bottom-s.Height())
	for dy, row := range s.Rows {
		for dx, r := range row {
			if r == ' ' {
				continue
			}
			dst.SetColored(x0+dx, y0+dy, r, core.ColorCar)
		}
	}
}

// renderStatus draws the bottom status line.
func (g *Game) renderStatus(dst *core.Screen) {
	y := dst.Height() - 1
	dst.DrawText(1, y, fmt.Sprintf("Distance: %.1f", g.distance))

	if g.completed {
		msg := "Level complete! ↑ to continue"
		dst.DrawTextColored(dst.Width()-len([]rune(msg))-1, y, msg, core.ColorAction)
		return
	}

	if fin, ok := g.Finish(); ok && g.player != nil {
		msg := fmt.Sprintf("Finish: %.0f", math.Max(0, g.player.Z-fin.Z))
		dst.DrawText(dst.Width()-len(msg)-1, y, msg)
	}
}
