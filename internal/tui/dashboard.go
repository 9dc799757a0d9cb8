package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gymbro/internal/analysis"
	"gymbro/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	queryService *service.QueryService
	userID       uuid.UUID
	units        Units
	day          time.Time
	data         *service.DashboardData
	loading      bool
	err          error
}

// NewDashboardModel creates a new dashboard model showing day
func NewDashboardModel(qs *service.QueryService, userID uuid.UUID, units Units, day time.Time) DashboardModel {
	return DashboardModel{
		queryService: qs,
		userID:       userID,
		units:        units,
		day:          truncateDay(day),
		loading:      true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData
}

func (m DashboardModel) loadData() tea.Msg {
	data, err := m.queryService.GetDashboardData(m.userID, m.day)
	return dashboardDataMsg{day: m.day, data: data, err: err}
}

type dashboardDataMsg struct {
	day  time.Time
	data *service.DashboardData
	err  error
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		// Drop results for a day we already navigated away from
		if !msg.day.Equal(m.day) {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.data = msg.data
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadData
		case "left", "h":
			return m.moveTo(m.day.AddDate(0, 0, -1))
		case "right", "l":
			return m.moveTo(m.day.AddDate(0, 0, 1))
		case "t":
			return m.moveTo(truncateDay(time.Now()))
		}
	}
	return m, nil
}

func (m DashboardModel) moveTo(day time.Time) (tea.Model, tea.Cmd) {
	m.day = day
	m.loading = true
	return m, m.loadData
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading dashboard..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.data == nil {
		return "\n  No data available. Run 'gymbro register' to create a profile."
	}

	var sections []string

	sections = append(sections, m.renderDayHeader())

	topRow := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderNutritionCard(),
		"  ",
		m.renderBodyCard(),
	)
	sections = append(sections, topRow)

	bottomRow := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderProgramCard(),
		"  ",
		m.renderStrengthCard(),
	)
	sections = append(sections, bottomRow)

	sections = append(sections, mutedStyle.Render("  [←/→] change day  [t] today  [r] refresh"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderDayHeader() string {
	d := m.data
	label := d.Day.Format("Monday, Jan 2 2006")
	if d.Day.Equal(truncateDay(time.Now())) {
		label += " (today)"
	}
	return sectionStyle.Render("  "+label) + "\n"
}

func (m DashboardModel) renderNutritionCard() string {
	d := m.data
	var lines []string

	lines = append(lines, cardTitleStyle.Render("Nutrition"))

	if d.Targets.Calories == 0 {
		lines = append(lines, warningStyle.Render("No targets. Update your profile."))
		return cardStyle.Width(46).Render(strings.Join(lines, "\n"))
	}

	lines = append(lines, renderMacroLine("Calories", d.Intake.Calories, d.Targets.Calories, "kcal"))
	lines = append(lines, renderMacroLine("Protein", d.Intake.ProteinG, d.Targets.ProteinG, "g"))
	lines = append(lines, renderMacroLine("Carbs", d.Intake.CarbsG, d.Targets.CarbsG, "g"))
	lines = append(lines, renderMacroLine("Fat", d.Intake.FatG, d.Targets.FatG, "g"))
	lines = append(lines, "")

	lines = append(lines, RenderMetric("Remaining", formatKcal(d.Remaining.Calories), formatBalance(d.Remaining.Calories)))
	lines = append(lines, mutedStyle.Render(fmt.Sprintf("%d foods logged", d.Intake.Count)))

	return cardStyle.Width(46).Render(strings.Join(lines, "\n"))
}

func renderMacroLine(label string, eaten, target float64, unit string) string {
	pct := 0.0
	if target > 0 {
		pct = eaten / target
	}
	value := fmt.Sprintf("%s/%s%s", comma(eaten), comma(target), unit)
	return fmt.Sprintf("%-9s %s %s", label, RenderProgressBar(pct, 12), value)
}

func formatKcal(v float64) string {
	return comma(v) + " kcal"
}

// comma rounds v to a whole number with thousands separators
func comma(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

func formatBalance(remaining float64) string {
	if remaining < 0 {
		return "↓ over target"
	}
	return ""
}

func (m DashboardModel) renderBodyCard() string {
	d := m.data
	w := d.WeightChange
	var lines []string

	lines = append(lines, cardTitleStyle.Render("Body"))
	lines = append(lines, RenderMetric("Weight", m.units.FormatWeight(w.Last), weightTrend(w, m.units)))

	if w.Measured {
		lines = append(lines, RenderMetric("Start", m.units.FormatWeight(w.First), ""))
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("%d weigh-ins so far", w.Samples)))
	} else {
		lines = append(lines, mutedStyle.Render("No weigh-ins logged, showing profile weight"))
	}

	lines = append(lines, "")
	if d.LastWorkout.IsZero() {
		lines = append(lines, RenderMetric("Last workout", "never", ""))
	} else {
		lines = append(lines, RenderMetric("Last workout", humanize.Time(d.LastWorkout), ""))
	}
	lines = append(lines, RenderMetric("Sets logged", fmt.Sprintf("%d", d.WorkoutCount), ""))

	return cardStyle.Width(40).Render(strings.Join(lines, "\n"))
}

func weightTrend(w analysis.WeightChange, u Units) string {
	switch {
	case !w.Measured:
		return ""
	case w.Loss > 0:
		return "-" + u.FormatWeight(float64(w.Loss))
	case w.Gain > 0:
		return "+" + u.FormatWeight(float64(w.Gain))
	}
	return "→"
}

func (m DashboardModel) renderProgramCard() string {
	d := m.data
	var lines []string

	lines = append(lines, cardTitleStyle.Render("Program for "+d.Day.Weekday().String()))

	if len(d.Program) == 0 {
		lines = append(lines, mutedStyle.Render("Nothing planned"))
	}
	for _, item := range d.Program {
		if item.IsRest() {
			lines = append(lines, restDayStyle.Render("Rest day"))
			continue
		}
		lines = append(lines, fmt.Sprintf("%-24s %dx%-6s %s",
			truncateName(item.ExerciseName, 24), item.Sets, item.Reps, m.units.FormatLoad(item.WeightKg)))
	}

	return cardStyle.Width(46).Render(strings.Join(lines, "\n"))
}

func (m DashboardModel) renderStrengthCard() string {
	var lines []string

	lines = append(lines, cardTitleStyle.Render("Strength"))

	best := 0
	for _, s := range m.data.Strength {
		if s.Strength > best {
			best = s.Strength
		}
	}
	for _, s := range m.data.Strength {
		pct := 0.0
		if best > 0 {
			pct = float64(s.Strength) / float64(best)
		}
		lines = append(lines, fmt.Sprintf("%-10s %s %s", s.Category, RenderProgressBar(pct, 12), humanize.Comma(int64(s.Strength))))
	}

	return cardStyle.Width(40).Render(strings.Join(lines, "\n"))
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
