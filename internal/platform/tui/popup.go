package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/portfolio-drive/internal/core"
)

// Popup geometry
const (
	popupMaxInner = 56
	popupMinInner = 16
	popupPadding  = 2 // Border plus one space on each side
	closeGlyph    = "×"
)

type popupLine struct {
	text  string
	color core.Color
}

// popupLayout is a popup placed on a screen of a given size. The same
// layout is used to draw the popup and to hit-test mouse clicks.
type popupLayout struct {
	Box     core.Rect
	Close   core.Rect
	Confirm core.Rect
	label   string
	lines   []popupLine
}

// layoutPopup wraps the popup text to fit the screen and centers the box.
func layoutPopup(p core.Popup, confirmLabel string, screenW, screenH int) popupLayout {
	inner := core.Clamp(screenW-2*popupPadding-2, popupMinInner, popupMaxInner)

	var lines []popupLine
	add := func(text string, c core.Color) {
		for _, l := range wrapText(text, inner) {
			lines = append(lines, popupLine{text: l, color: c})
		}
	}

	add(p.Title, core.ColorTitle)
	if p.Message != "" {
		lines = append(lines, popupLine{})
		add(p.Message, core.ColorHighlight)
	}
	if p.Content != "" {
		lines = append(lines, popupLine{})
		add(p.Content, core.ColorDefault)
	}

	label := "[ " + confirmLabel + " ]"
	lines = append(lines, popupLine{}, popupLine{})

	width := lipgloss.Width(label)
	for _, l := range lines {
		width = max(width, lipgloss.Width(l.text))
	}
	// Room for the close glyph beside the title
	width = max(width, lipgloss.Width(lines[0].text)+2)

	boxW := width + 2*popupPadding
	boxH := len(lines) + 2
	box := core.NewRect(0, 0, screenW, screenH).Centered(boxW, boxH)

	labelW := lipgloss.Width(label)
	buttonY := box.Bottom() - 2

	return popupLayout{
		Box:     box,
		Close:   core.NewRect(box.Right()-4, box.Y, 4, 2),
		Confirm: core.NewRect(box.X+(boxW-labelW)/2, buttonY, labelW, 1),
		label:   label,
		lines:   lines,
	}
}

// wrapText word-wraps text to width, keeping explicit line breaks.
func wrapText(text string, width int) []string {
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	rows := strings.Split(ansi.Strip(wrapped), "\n")
	for i, r := range rows {
		rows[i] = strings.TrimRight(r, " ")
	}
	return rows
}

// draw stamps the popup onto the screen over whatever is beneath it.
func (l popupLayout) draw(dst *core.Screen) {
	dst.DrawRect(l.Box, ' ', core.ColorDefault)
	dst.DrawBox(l.Box, core.ColorHighlight)

	x := l.Box.X + popupPadding
	for i, line := range l.lines {
		dst.DrawTextColored(x, l.Box.Y+1+i, line.text, line.color)
	}

	dst.DrawTextColored(l.Close.X+1, l.Close.Y+1, closeGlyph, core.ColorAlert)
	dst.DrawTextColored(l.Confirm.X, l.Confirm.Y, l.label, core.ColorAction)
}
