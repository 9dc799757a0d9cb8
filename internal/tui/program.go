package tui

import (
	"fmt"
	"strings"
	"time"

	"gymbro/internal/analysis"
	"gymbro/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// ProgramModel shows the weekly program one day at a time
type ProgramModel struct {
	queryService *service.QueryService
	tracker      *service.TrackerService
	userID       uuid.UUID
	units        Units

	program *service.ProgramData
	day     int // 1=Monday .. 7=Sunday
	cursor  int

	// Preset waiting for confirmation
	pendingPreset string

	loading bool
	err     error
}

// NewProgramModel creates a new program model opened on today
func NewProgramModel(qs *service.QueryService, tracker *service.TrackerService, userID uuid.UUID, units Units) ProgramModel {
	return ProgramModel{
		queryService: qs,
		tracker:      tracker,
		userID:       userID,
		units:        units,
		day:          analysis.DayOfWeekIndex(time.Now()),
		loading:      true,
	}
}

// Init loads the program
func (m ProgramModel) Init() tea.Cmd {
	return m.loadProgram
}

func (m ProgramModel) loadProgram() tea.Msg {
	program, err := m.queryService.GetProgram(m.userID)
	return programLoadedMsg{program: program, err: err}
}

type programLoadedMsg struct {
	program *service.ProgramData
	err     error
}

// Update handles messages
func (m ProgramModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case programLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.program = msg.program
		m.clampCursor()

	case tea.KeyMsg:
		if m.pendingPreset != "" {
			name := m.pendingPreset
			m.pendingPreset = ""
			if msg.String() == "y" {
				return m, m.applyPreset(name)
			}
			return m, nil
		}

		switch msg.String() {
		case "left", "h":
			m.day = (m.day+5)%7 + 1
			m.cursor = 0
		case "right", "l":
			m.day = m.day%7 + 1
			m.cursor = 0
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items())-1 {
				m.cursor++
			}
		case "enter", "x":
			if item, ok := m.selected(); ok {
				return m, m.logDone(item)
			}
		case "d":
			if item, ok := m.selected(); ok {
				return m, m.deleteItem(item)
			}
		case "P":
			m.pendingPreset = service.PresetPushPullLegs
		case "U":
			m.pendingPreset = service.PresetUpperLower
		case "r":
			m.loading = true
			return m, m.loadProgram
		}
	}
	return m, nil
}

func (m ProgramModel) items() []analysis.ProgramItem {
	if m.program == nil {
		return nil
	}
	return m.program.Days[m.day-1]
}

func (m ProgramModel) selected() (analysis.ProgramItem, bool) {
	items := m.items()
	if m.cursor < 0 || m.cursor >= len(items) || items[m.cursor].IsRest() {
		return analysis.ProgramItem{}, false
	}
	return items[m.cursor], true
}

func (m *ProgramModel) clampCursor() {
	if n := len(m.items()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// logDone records the selected exercise as done today at its planned load
func (m ProgramModel) logDone(item analysis.ProgramItem) tea.Cmd {
	tracker, userID := m.tracker, m.userID
	return func() tea.Msg {
		_, err := tracker.LogProgress(userID, service.ProgressInput{
			ProgramItemID: item.ID,
			ExerciseName:  item.ExerciseName,
			WeightKg:      item.WeightKg,
			Sets:          item.Sets,
			Reps:          item.Reps,
		})
		if err != nil {
			return ActionFailedMsg{Err: err}
		}
		return DataChangedMsg{Status: "Logged " + item.ExerciseName}
	}
}

func (m ProgramModel) deleteItem(item analysis.ProgramItem) tea.Cmd {
	tracker, userID := m.tracker, m.userID
	return func() tea.Msg {
		if err := tracker.DeleteProgramItem(userID, item.ID); err != nil {
			return ActionFailedMsg{Err: err}
		}
		return DataChangedMsg{Status: "Removed " + item.ExerciseName}
	}
}

func (m ProgramModel) applyPreset(name string) tea.Cmd {
	tracker, userID := m.tracker, m.userID
	return func() tea.Msg {
		items, err := tracker.ApplyPreset(userID, name)
		if err != nil {
			return ActionFailedMsg{Err: err}
		}
		return DataChangedMsg{Status: fmt.Sprintf("Applied %s (%d items)", name, len(items))}
	}
}

// View renders the program
func (m ProgramModel) View() string {
	if m.loading {
		return "\n  Loading program..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	var sections []string
	sections = append(sections, m.renderWeekStrip())
	sections = append(sections, m.renderDay())

	if m.pendingPreset != "" {
		sections = append(sections, warningStyle.Render(
			fmt.Sprintf("  Replace the whole program with %q? [y] yes  [any key] cancel", m.pendingPreset)))
	}

	sections = append(sections, mutedStyle.Render(
		"  [←/→] day  [j/k] select  [enter] log done  [d] delete  [P] push/pull/legs  [U] upper/lower"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ProgramModel) renderWeekStrip() string {
	var days []string
	for d := 1; d <= 7; d++ {
		label := time.Weekday(d % 7).String()[:3]
		if m.program != nil {
			label = fmt.Sprintf("%s %d", label, countLifts(m.program.Days[d-1]))
		}
		if d == m.day {
			days = append(days, navActiveStyle.Render("["+label+"]"))
		} else {
			days = append(days, navInactiveStyle.Render(" "+label+" "))
		}
	}
	return "  " + strings.Join(days, " ") + "\n"
}

func countLifts(items []analysis.ProgramItem) int {
	n := 0
	for _, it := range items {
		if !it.IsRest() {
			n++
		}
	}
	return n
}

func (m ProgramModel) renderDay() string {
	items := m.items()
	var lines []string

	lines = append(lines, cardTitleStyle.Render(time.Weekday(m.day%7).String()))

	if len(items) == 0 {
		lines = append(lines, mutedStyle.Render("Nothing planned. Press P or U to load a preset."))
		return cardStyle.Width(72).Render(strings.Join(lines, "\n"))
	}

	header := fmt.Sprintf("%-28s %5s %-8s %9s %-10s", "Exercise", "Sets", "Reps", "Load", "Group")
	lines = append(lines, tableHeaderStyle.Render(header))

	for i, item := range items {
		if item.IsRest() {
			lines = append(lines, restDayStyle.Render("Rest day"))
			continue
		}
		row := fmt.Sprintf("%-28s %5d %-8s %9s %-10s",
			truncateName(item.ExerciseName, 28),
			item.Sets,
			item.Reps,
			m.units.FormatLoad(item.WeightKg),
			item.MuscleGroup)
		if i == m.cursor {
			lines = append(lines, tableSelectedStyle.Render(row))
		} else {
			lines = append(lines, tableRowStyle.Render(row))
		}
	}

	return cardStyle.Width(72).Render(strings.Join(lines, "\n"))
}
