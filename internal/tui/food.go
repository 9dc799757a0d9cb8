package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gymbro/internal/analysis"
	"gymbro/internal/service"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

const foodHistoryRows = 10

// FoodModel lists recent foods for quick re-entry and adds new ones
type FoodModel struct {
	queryService *service.QueryService
	tracker      *service.TrackerService
	userID       uuid.UUID

	history *service.FoodHistory
	cursor  int

	input  textinput.Model
	adding bool

	// Name filter applied to the loaded history; searching while it is typed
	search    textinput.Model
	searching bool
	filter    string

	loading bool
	err     error
}

// NewFoodModel creates a new food model
func NewFoodModel(qs *service.QueryService, tracker *service.TrackerService, userID uuid.UUID) FoodModel {
	ti := textinput.New()
	ti.Placeholder = "name, kcal, protein, carbs, fat"
	ti.CharLimit = 120
	ti.Width = 50

	si := textinput.New()
	si.Prompt = "/ "
	si.Placeholder = "food name"
	si.CharLimit = 60
	si.Width = 30

	return FoodModel{
		queryService: qs,
		tracker:      tracker,
		userID:       userID,
		input:        ti,
		search:       si,
		loading:      true,
	}
}

// Init loads the food history
func (m FoodModel) Init() tea.Cmd {
	return m.loadHistory
}

func (m FoodModel) loadHistory() tea.Msg {
	history, err := m.queryService.GetFoodHistory(m.userID, m.filter)
	return foodLoadedMsg{filter: m.filter, history: history, err: err}
}

type foodLoadedMsg struct {
	filter  string
	history *service.FoodHistory
	err     error
}

// typing reports whether a text field has focus
func (m FoodModel) typing() bool {
	return m.adding || m.searching
}

// Update handles messages
func (m FoodModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case foodLoadedMsg:
		// A newer search is already on its way
		if msg.filter != m.filter {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.history = msg.history
		if m.cursor >= len(m.recent()) {
			m.cursor = max(len(m.recent())-1, 0)
		}
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateInput(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.recent())-1 {
				m.cursor++
			}
		case "enter":
			if m.cursor < len(m.recent()) {
				return m, m.logFood(m.recent()[m.cursor])
			}
		case "/":
			m.searching = true
			m.search.SetValue(m.filter)
			m.search.CursorEnd()
			return m, m.search.Focus()
		case "esc":
			if m.filter != "" {
				return m.applyFilter("")
			}
		case "a":
			m.adding = true
			m.err = nil
			m.input.Reset()
			return m, m.input.Focus()
		case "r":
			m.loading = true
			return m, m.loadHistory
		}
	}
	return m, nil
}

func (m FoodModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.input.Blur()
		return m, nil
	case "enter":
		food, err := parseFoodInput(m.input.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.adding = false
		m.err = nil
		m.input.Blur()
		return m, m.logFood(food)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m FoodModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		return m.applyFilter("")
	case "enter":
		m.searching = false
		m.search.Blur()
		return m.applyFilter(m.search.Value())
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// applyFilter reloads the history restricted to names containing filter
func (m FoodModel) applyFilter(filter string) (tea.Model, tea.Cmd) {
	filter = strings.TrimSpace(filter)
	if filter == m.filter {
		return m, nil
	}
	m.filter = filter
	m.cursor = 0
	m.loading = true
	return m, m.loadHistory
}

func (m FoodModel) recent() []analysis.FoodEntry {
	if m.history == nil {
		return nil
	}
	return m.history.Recent
}

// logFood stores food as eaten today
func (m FoodModel) logFood(food analysis.FoodEntry) tea.Cmd {
	tracker, userID := m.tracker, m.userID
	food.ID = 0
	food.EatenOn = time.Time{}
	return func() tea.Msg {
		if _, err := tracker.AddFood(userID, food); err != nil {
			return ActionFailedMsg{Err: err}
		}
		return DataChangedMsg{Status: "Ate " + food.Name}
	}
}

// parseFoodInput reads "name, kcal, protein, carbs, fat". Missing macros are zero.
func parseFoodInput(s string) (analysis.FoodEntry, error) {
	parts := strings.Split(s, ",")
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return analysis.FoodEntry{}, fmt.Errorf("food name is required")
	}
	if len(parts) > 5 {
		return analysis.FoodEntry{}, fmt.Errorf("expected at most 5 fields, got %d", len(parts))
	}

	var values [4]float64
	for i, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v < 0 {
			return analysis.FoodEntry{}, fmt.Errorf("invalid number %q", p)
		}
		values[i] = v
	}

	return analysis.FoodEntry{
		Name:     name,
		Calories: values[0],
		ProteinG: values[1],
		CarbsG:   values[2],
		FatG:     values[3],
	}, nil
}

// View renders the food screen
func (m FoodModel) View() string {
	if m.loading {
		return "\n  Loading food log..."
	}

	var sections []string

	if m.adding {
		sections = append(sections, cardStyle.Render(cardTitleStyle.Render("Add food")+"\n"+m.input.View()))
	}
	if m.searching {
		sections = append(sections, "  "+m.search.View())
	} else if m.filter != "" {
		sections = append(sections, warningStyle.Render(fmt.Sprintf("  Showing foods matching %q  [esc] clear", m.filter)))
	}
	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
	}

	if m.history != nil {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, m.renderRecent(), "  ", m.renderLog()))
	}

	switch {
	case m.adding:
		sections = append(sections, mutedStyle.Render("  [enter] save  [esc] cancel"))
	case m.searching:
		sections = append(sections, mutedStyle.Render("  [enter] search  [esc] clear"))
	default:
		sections = append(sections, mutedStyle.Render("  [j/k] select  [enter] eat again today  [a] add new  [/] search  [r] refresh"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m FoodModel) renderRecent() string {
	var lines []string
	lines = append(lines, cardTitleStyle.Render("Recent foods"))

	if len(m.history.Recent) == 0 {
		if m.filter != "" {
			lines = append(lines, mutedStyle.Render("No foods match."))
		} else {
			lines = append(lines, mutedStyle.Render("Nothing logged yet. Press a to add a food."))
		}
	}
	for i, f := range m.history.Recent {
		row := fmt.Sprintf("%-22s %6s kcal  P%-4.0f C%-4.0f F%-4.0f",
			truncateName(f.Name, 22), comma(f.Calories), f.ProteinG, f.CarbsG, f.FatG)
		if i == m.cursor && !m.adding {
			lines = append(lines, tableSelectedStyle.Render(row))
		} else {
			lines = append(lines, tableRowStyle.Render(row))
		}
	}

	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (m FoodModel) renderLog() string {
	var lines []string
	lines = append(lines, cardTitleStyle.Render("Log"))

	entries := m.history.Entries
	if len(entries) > foodHistoryRows {
		entries = entries[:foodHistoryRows]
	}
	for _, f := range entries {
		lines = append(lines, fmt.Sprintf("%s  %-20s %6s kcal",
			f.EatenOn.Format("Jan 02"), truncateName(f.Name, 20), comma(f.Calories)))
	}
	if n := len(m.history.Entries) - len(entries); n > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("... %d older", n)))
	}

	return cardStyle.Render(strings.Join(lines, "\n"))
}
