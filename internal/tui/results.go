package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typerush/internal/stats"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	messageStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Italic(true)
)

func (m *Model) renderResults() string {
	r := m.results
	header := headerStyle.Render(fmt.Sprintf("Results (%s test)", stats.FormatDuration(r.TotalDuration)))
	row1 := lipgloss.JoinHorizontal(lipgloss.Top,
		metricCard("WPM", fmt.Sprintf("%d", r.WPM)),
		metricCard("Accuracy", fmt.Sprintf("%d%%", r.Accuracy)),
		metricCard("Time", fmt.Sprintf("%ds", r.Time)),
	)
	row2 := lipgloss.JoinHorizontal(lipgloss.Top,
		metricCard("Characters", fmt.Sprintf("%d", r.CharsTyped)),
		metricCard("Correct", fmt.Sprintf("%d", r.CorrectChars)),
		metricCard("Incorrect", fmt.Sprintf("%d", r.IncorrectChars)),
	)
	sections := []string{
		header,
		lipgloss.JoinVertical(lipgloss.Left, row1, row2),
	}
	if trace := m.ctrl.Trace(); len(trace) > 0 {
		width := 0
		if m.width > 0 {
			width = m.contentWidth() - len("Speed ")
		}
		sections = append(sections, cardTitleStyle.Render("Speed ")+cardValueStyle.Render(stats.SpeedTrace(trace, width)))
	}
	return strings.Join(append(sections,
		"",
		messageStyle.Render(stats.PerformanceMessage(r.WPM)),
		"",
		footerStyle.Render(m.help.ShortHelpView(m.keys.resultsHelp())),
	), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}
