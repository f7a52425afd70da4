package tui

import (
	"unicode/utf8"

	"github.com/vovakirdan/portfolio-drive/internal/core"
)

const (
	startLabel   = "[ Start Game ]"
	contactLabel = "[c] Contact"
)

// startButton returns the screen area of the Start Game button.
func (m Model) startButton() core.Rect {
	w := utf8.RuneCountInString(startLabel)
	return core.NewRect((m.screen.Width()-w)/2, m.screen.Height()/2+1, w, 1)
}

// contactRect returns the screen area of the contact label.
func (m Model) contactRect() core.Rect {
	w := utf8.RuneCountInString(contactLabel)
	return core.NewRect(m.screen.Width()-w-1, 0, w, 1)
}

// renderStart draws the start screen.
func (m Model) renderStart(dst *core.Screen) {
	dst.Clear()

	mid := dst.Height() / 2
	title := m.game.Title()
	dst.DrawTextColored((dst.Width()-utf8.RuneCountInString(title))/2, mid-4, title, core.ColorAccent)
	dst.DrawTextCentered(mid-2, "Drive to the finish line to unlock each portfolio section.")

	b := m.startButton()
	dst.DrawTextColored(b.X, b.Y, startLabel, core.ColorAction)

	dst.DrawTextCentered(mid+4, "↑ drive   ← → steer   avoid the red blocks")
}
