package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	inputRows  = 3
	borderRows = 2
	headerRows = 1
)

// LogCapacity returns how many log lines fit in the logs pane of a terminal
// that is height rows tall.
func LogCapacity(height int) int {
	return max(0, height-inputRows-borderRows-headerRows)
}

// fitLines truncates every line to width cells and keeps at most the last
// rows lines.
func fitLines(lines []string, width, rows int) string {
	if rows <= 0 {
		return ""
	}
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = fitText(line, width)
	}
	return strings.Join(out, "\n")
}

func fitText(v string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(v, width, "…")
}

// withTitle writes title into the top border line of a rendered box.
func withTitle(box, title string, style lipgloss.Style) string {
	lines := strings.Split(box, "\n")
	width := lipgloss.Width(lines[0])
	label := "─ " + title + " "
	if width < lipgloss.Width(label)+2 {
		return box
	}

	top := "╭" + label + strings.Repeat("─", width-lipgloss.Width(label)-2) + "╮"
	lines[0] = style.Render(top)
	return strings.Join(lines, "\n")
}
