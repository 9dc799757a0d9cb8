package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Keyboard Shortcuts")
	sections = append(sections, title)

	sections = append(sections, m.renderSection("Navigation", []keyHelp{
		{"1", "Dashboard"},
		{"2", "Progress history"},
		{"3", "Program"},
		{"4", "Food"},
		{"?", "Help (this screen)"},
		{"q", "Quit"},
		{"esc", "Back / close help"},
	}))

	sections = append(sections, m.renderSection("Dashboard", []keyHelp{
		{"← / h", "Previous day"},
		{"→ / l", "Next day"},
		{"t", "Back to today"},
		{"r", "Refresh data"},
	}))

	sections = append(sections, m.renderSection("Progress", []keyHelp{
		{"j / k", "Scroll history"},
		{"pgdn / pgup", "Scroll a page"},
	}))

	sections = append(sections, m.renderSection("Program", []keyHelp{
		{"← / →", "Change weekday"},
		{"enter / x", "Log selected exercise as done today"},
		{"d", "Delete selected exercise"},
		{"P / U", "Load push/pull/legs or upper/lower preset"},
	}))

	sections = append(sections, m.renderSection("Food", []keyHelp{
		{"enter", "Eat the selected food again today"},
		{"a", "Add a food: name, kcal, protein, carbs, fat"},
		{"/", "Search foods by name, esc clears"},
	}))

	sections = append(sections, m.renderMetricsHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, sectionStyle.Render(title))

	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}

	return strings.Join(lines, "\n")
}

func (m HelpModel) renderMetricsHelp() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, sectionStyle.Render("Numbers Explained"))
	lines = append(lines, "")

	metrics := []struct {
		name string
		desc string
	}{
		{"BMR", "Mifflin-St Jeor: 10·kg + 6.25·cm - 5·age, +5 for men, -161 for women."},
		{"TDEE", "BMR times the activity multiplier (1.2 sedentary up to 1.725 heavy)."},
		{"Macros", "TDEE split by percent; 4 kcal per gram of carbs and protein, 9 for fat."},
		{"Strength", "Half the sum of weight x sets over a muscle group's logged work."},
		{"Weight change", "First vs last weigh-in up to the day shown."},
	}

	for _, metric := range metrics {
		lines = append(lines, "  "+helpKeyStyle.Render(metric.name))
		lines = append(lines, "  "+mutedStyle.Render(metric.desc))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
