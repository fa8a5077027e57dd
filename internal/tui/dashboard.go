package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/p2p-rendezvous-server/internal/event"
	"github.com/MKhiriev/p2p-rendezvous-server/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	statusTitle = "Status"
	logsTitle   = "Logs"
	inputTitle  = "Input"
)

// dashboardModel draws the latest snapshot. It holds no session state of
// its own besides the terminal size.
type dashboardModel struct {
	term *Terminal
	snap session.Snapshot

	width  int
	height int
}

func newDashboardModel(t *Terminal) dashboardModel {
	return dashboardModel{term: t}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.term.waitForRedraw()
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if err := m.term.forward(event.KeyInput(msg)); err != nil {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if err := m.term.forward(event.ResizeInput(msg)); err != nil {
			return m, tea.Quit
		}
	case redrawMsg:
		if snap, ok := m.term.latest(); ok {
			m.snap = snap
		}
		return m, m.term.waitForRedraw()
	case quitMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m dashboardModel) View() string {
	return renderDashboard(m.snap, m.width, m.height)
}

// renderDashboard lays out the status and logs panes side by side above
// the input box.
func renderDashboard(s session.Snapshot, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	rows := LogCapacity(height)
	statusWidth := width / 2
	logsWidth := width - statusWidth

	status := renderPane(statusTitle, statusLines(s.State), statusWidth, rows)
	logs := renderPane(logsTitle, logLines(s), logsWidth, rows)
	body := lipgloss.JoinHorizontal(lipgloss.Top, status, logs)

	return lipgloss.JoinVertical(lipgloss.Left, body, renderInput(s, width))
}

// renderPane draws a bordered pane with a header row and room for rows
// content lines.
func renderPane(title string, lines []string, outerWidth, rows int) string {
	inner := max(0, outerWidth-paneStyle.GetHorizontalFrameSize())
	content := headerStyle.Render(fitText(title, inner))
	if rows > 0 {
		content += "\n" + fitLines(lines, inner, rows)
	}

	return paneStyle.
		Width(inner + paneStyle.GetHorizontalPadding()).
		Height(rows + headerRows).
		Render(content)
}

func renderInput(s session.Snapshot, width int) string {
	style, border := inputStyle, lipgloss.NewStyle()
	text := "> " + s.Input
	if s.InputErr {
		style, border = inputErrStyle, lipgloss.NewStyle().Foreground(errorColor)
		text = s.Input
	}

	inner := max(0, width-style.GetHorizontalFrameSize())
	box := style.Width(inner + style.GetHorizontalPadding()).Render(fitText(text, inner))
	return withTitle(box, inputTitle, border)
}

func statusLines(st session.State) []string {
	switch st.Status {
	case session.Running:
		return []string{
			runningStyle.Render("Running"),
			"",
			"Local:  " + st.Endpoints.Local().String(),
			"Public: " + st.Endpoints.Public().String(),
		}
	case session.Failed:
		lines := []string{errorStyle.Render("Startup failed")}
		if st.Err != nil {
			lines = append(lines, "", st.Err.Kind.String())
			if st.Err.Err != nil {
				lines = append(lines, st.Err.Err.Error())
			}
		}
		return lines
	default:
		lines := []string{"Starting..."}
		for _, h := range st.Hints {
			lines = append(lines, "- "+h)
		}
		return lines
	}
}

func logLines(s session.Snapshot) []string {
	if s.LogError != "" {
		return []string{errorStyle.Render(fmt.Sprintf("Logging unavailable: %s", s.LogError))}
	}
	if len(s.Logs) == 0 {
		return []string{helpStyle.Render("no logs yet")}
	}
	return strings.Split(strings.Join(s.Logs, "\n"), "\n")
}
