package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	accentColor   = lipgloss.Color("#EA580C") // Orange
	onTargetColor = lipgloss.Color("#22C55E") // Green
	cautionColor  = lipgloss.Color("#EAB308") // Yellow
	overColor     = lipgloss.Color("#E11D48") // Rose
	dimColor      = lipgloss.Color("#71717A") // Zinc
	brightColor   = lipgloss.Color("#FAFAFA")
)

// Styles
var (
	// App chrome
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(brightColor).
			Background(accentColor).
			Padding(0, 1).
			MarginBottom(1)

	// Navigation
	navStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			MarginBottom(1)

	navActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	navInactiveStyle = lipgloss.NewStyle().
				Foreground(dimColor)

	// Cards and boxes
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimColor).
			Padding(1, 2)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(onTargetColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	// Metrics
	metricLabelStyle = lipgloss.NewStyle().
				Foreground(dimColor).
				Width(16)

	metricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(brightColor)

	// Trends
	trendUpStyle = lipgloss.NewStyle().
			Foreground(onTargetColor)

	trendDownStyle = lipgloss.NewStyle().
			Foreground(overColor)

	trendFlatStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	// Table
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor).
				BorderBottom(true).
				BorderForeground(dimColor).
				Padding(0, 1)

	tableRowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	tableSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Background(accentColor).
				Foreground(brightColor).
				Padding(0, 1)

	restDayStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(dimColor).
			Padding(0, 1)

	// Status
	statusStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(overColor)

	warningStyle = lipgloss.NewStyle().
			Foreground(cautionColor)

	// Help
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	// Progress bar
	progressFullStyle = lipgloss.NewStyle().
				Foreground(onTargetColor)

	progressOverStyle = lipgloss.NewStyle().
				Foreground(overColor)

	progressEmptyStyle = lipgloss.NewStyle().
				Foreground(dimColor)
)

// Helper functions

// RenderMetric renders a metric with label, value, and optional trend
func RenderMetric(label, value, trend string) string {
	trendStyle := trendFlatStyle
	if len(trend) > 0 {
		first := []rune(trend)[0]
		switch first {
		case '+', '↑':
			trendStyle = trendUpStyle
		case '-', '↓':
			trendStyle = trendDownStyle
		}
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		metricLabelStyle.Render(label),
		metricValueStyle.Render(value),
		trendStyle.Render(" "+trend),
	)
}

// RenderProgressBar renders an ASCII progress bar, drawn in overColor past 100%
func RenderProgressBar(percent float64, width int) string {
	fullStyle := progressFullStyle
	if percent > 1 {
		fullStyle = progressOverStyle
	}

	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return fullStyle.Render(strings.Repeat("█", filled)) +
		progressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// RenderKeyHelp renders a key binding help item
func RenderKeyHelp(key, desc string) string {
	return helpKeyStyle.Render(key) + " " + helpDescStyle.Render(desc)
}

func truncateName(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
