package tui

import (
	"fmt"
	"strings"

	"gymbro/internal/analysis"
	"gymbro/internal/service"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/guptarohit/asciigraph"
)

// Rows taken by the chart and the app chrome around the history viewport
const progressChrome = 20

// ProgressModel shows the workout history grouped by week
type ProgressModel struct {
	queryService *service.QueryService
	userID       uuid.UUID
	units        Units
	buckets      []analysis.WeeklyBucket
	viewport     viewport.Model
	loading      bool
	err          error
}

// NewProgressModel creates a new progress model
func NewProgressModel(qs *service.QueryService, userID uuid.UUID, units Units) ProgressModel {
	return ProgressModel{
		queryService: qs,
		userID:       userID,
		units:        units,
		viewport:     viewport.New(80, 15),
		loading:      true,
	}
}

// Init loads the history
func (m ProgressModel) Init() tea.Cmd {
	return m.loadProgress
}

func (m ProgressModel) loadProgress() tea.Msg {
	buckets, err := m.queryService.GetWeeklyProgress(m.userID)
	return progressLoadedMsg{buckets: buckets, err: err}
}

type progressLoadedMsg struct {
	buckets []analysis.WeeklyBucket
	err     error
}

// Update handles messages
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.buckets = msg.buckets
		if n := m.units.HistoryWeeks(); n > 0 && len(m.buckets) > n {
			m.buckets = m.buckets[:n]
		}
		m.viewport.SetContent(renderWeeks(m.buckets, m.units))
		m.viewport.GotoTop()
		return m, nil
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-progressChrome, 5)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.loadProgress
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the chart and the scrollable history
func (m ProgressModel) View() string {
	if m.loading {
		return "\n  Loading progress..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if len(m.buckets) == 0 {
		return "\n  No workouts logged yet. Log one from the Program screen."
	}

	var sections []string
	if chart := renderWeightChart(m.buckets, m.units); chart != "" {
		sections = append(sections, cardStyle.Render(chart))
	}
	sections = append(sections, m.viewport.View())
	sections = append(sections, mutedStyle.Render(fmt.Sprintf("  %d weeks  [j/k] scroll  [r] refresh  %3.f%%",
		len(m.buckets), m.viewport.ScrollPercent()*100)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWeightChart plots the weekly average body weight, oldest week first.
// Weeks without a weigh-in are skipped; fewer than two points draw nothing.
func renderWeightChart(buckets []analysis.WeeklyBucket, units Units) string {
	var series []float64
	for i := len(buckets) - 1; i >= 0; i-- {
		if avg := buckets[i].AverageBodyWeight; avg != nil {
			series = append(series, units.WeightValue(*avg))
		}
	}
	if len(series) < 2 {
		return ""
	}

	graph := asciigraph.Plot(series,
		asciigraph.Height(8),
		asciigraph.Precision(1),
		asciigraph.Caption("Weekly average body weight ("+units.WeightLabel()+")"),
	)
	return cardTitleStyle.Render("Body Weight") + "\n" + graph
}

func renderWeeks(buckets []analysis.WeeklyBucket, units Units) string {
	var b strings.Builder

	for _, bucket := range buckets {
		header := "Week of " + bucket.WeekStart.Format("Jan 2 2006")
		if bucket.AverageBodyWeight != nil {
			header += "  avg " + units.FormatWeight(*bucket.AverageBodyWeight)
		}
		b.WriteString(sectionStyle.Render(header))
		b.WriteString("\n")

		for _, w := range bucket.Workouts {
			line := fmt.Sprintf("  %s  %-26s %dx%-6s %s",
				w.WorkoutDate.Format("Mon 02"),
				truncateName(w.ExerciseName, 26),
				w.Sets, w.Reps,
				units.FormatLoad(w.WeightKg))
			if w.BodyWeightKg > 0 {
				line += mutedStyle.Render("  bw " + units.FormatWeight(w.BodyWeightKg))
			}
			b.WriteString(tableRowStyle.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}
