// Package tui provides the Bubble Tea front end of the drive game.
// It handles the terminal UI loop, input mapping, popups and SSH sessions.
package tui

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// The session clock counts frames. Wall-clock settings are converted to
// frames once, so gameplay never reads the real time.

// frameInterval is the wall time of one frame at tickRate.
func frameInterval(tickRate int) time.Duration {
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next frame.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(frameInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// durationTicks converts d to whole frames, rounding up, never below one.
func durationTicks(d time.Duration, tickRate int) uint64 {
	ticks := uint64(math.Ceil(d.Seconds() * float64(tickRate)))
	return max(ticks, 1)
}

// formatTicks renders a frame count as seconds at the given rate.
func formatTicks(ticks uint64, tickRate int) string {
	return fmt.Sprintf("%.2fs", float64(ticks)/float64(tickRate))
}
