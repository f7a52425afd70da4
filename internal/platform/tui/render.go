package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/portfolio-drive/internal/core"
)

// palette maps each cell role to its terminal style. Track and obstacle
// use the grey road and red boxes of the browser scene.
var palette = map[core.Color]lipgloss.Style{
	core.ColorTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorMuted:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorTrack:     lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")),
	core.ColorEdge:      lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorObstacle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
	core.ColorCar:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorAccent:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorHighlight: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorAction:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorAlert:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of one role share a single styled run; default cells
// are written bare.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		for x := 0; x < s.Width(); {
			role := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != role {
					break
				}
				run.WriteRune(cell.Rune)
			}

			style, ok := palette[role]
			if !ok {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
