package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Box colors per configuration field.
var (
	colorMap    = lipgloss.Color("#3498db")
	colorMode   = lipgloss.Color("#e74c3c")
	colorHero   = lipgloss.Color("#9b59b6")
	colorTowers = lipgloss.Color("#2ecc71")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	advisoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// fieldBox renders a labelled box in the given accent color.
func fieldBox(label, body string, color lipgloss.Color, width int) string {
	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(color)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)
	if width > 0 {
		box = box.Width(width)
	}
	return box.Render(labelStyle.Render(label) + "\n" + body)
}

// checkbox renders a selection marker.
func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// truncate shortens s to at most n cells, marking the cut with a dot.
func truncate(s string, n int) string {
	if n <= 1 || lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) > n-1 {
		r = r[:n-1]
	}
	return string(r) + "."
}
