package tui

import (
	"time"

	"gymbro/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Screen identifiers
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenProgress
	ScreenProgram
	ScreenFood
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	dashboard DashboardModel
	progress  ProgressModel
	program   ProgramModel
	food      FoodModel
	help      HelpModel

	// Services
	queryService *service.QueryService
	tracker      *service.TrackerService
	userID       uuid.UUID
	units        Units

	// Window dimensions
	width  int
	height int

	// Status message
	status string
}

// NewApp creates a new App for one profile
func NewApp(tracker *service.TrackerService, queryService *service.QueryService, userID uuid.UUID, units Units) *App {
	return &App{
		screen:       ScreenDashboard,
		queryService: queryService,
		tracker:      tracker,
		userID:       userID,
		units:        units,
		dashboard:    NewDashboardModel(queryService, userID, units, time.Now()),
		progress:     NewProgressModel(queryService, userID, units),
		program:      NewProgramModel(queryService, tracker, userID, units),
		food:         NewFoodModel(queryService, tracker, userID),
		help:         NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global keybindings (unless a text field has focus)
		if !a.capturingInput() {
			switch msg.String() {
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				a.screen = ScreenDashboard
				return a, a.dashboard.Init()
			case "2":
				a.screen = ScreenProgress
				return a, a.progress.Init()
			case "3":
				a.screen = ScreenProgram
				return a, a.program.Init()
			case "4":
				a.screen = ScreenFood
				return a, a.food.Init()
			case "?":
				a.prevScreen = a.screen
				a.screen = ScreenHelp
				return a, nil
			case "esc":
				if a.screen == ScreenHelp {
					a.screen = a.prevScreen
					return a, nil
				}
			}
		} else if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// The history viewport needs the size even when hidden
		m, cmd := a.progress.Update(msg)
		a.progress = m.(ProgressModel)
		return a, cmd

	case DataChangedMsg:
		a.status = msg.Status
		return a, tea.Batch(a.dashboard.Init(), a.reloadCurrent())

	case ActionFailedMsg:
		a.status = "Error: " + msg.Err.Error()
		return a, nil
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenDashboard:
		var m tea.Model
		m, cmd = a.dashboard.Update(msg)
		a.dashboard = m.(DashboardModel)
	case ScreenProgress:
		var m tea.Model
		m, cmd = a.progress.Update(msg)
		a.progress = m.(ProgressModel)
	case ScreenProgram:
		var m tea.Model
		m, cmd = a.program.Update(msg)
		a.program = m.(ProgramModel)
	case ScreenFood:
		var m tea.Model
		m, cmd = a.food.Update(msg)
		a.food = m.(FoodModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

func (a *App) capturingInput() bool {
	return a.screen == ScreenFood && a.food.typing()
}

func (a *App) reloadCurrent() tea.Cmd {
	switch a.screen {
	case ScreenProgress:
		return a.progress.Init()
	case ScreenProgram:
		return a.program.Init()
	case ScreenFood:
		return a.food.Init()
	}
	return nil
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenProgress:
		content = a.progress.View()
	case ScreenProgram:
		content = a.program.View()
	case ScreenFood:
		content = a.food.View()
	case ScreenHelp:
		content = a.help.View()
	}

	footer := a.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content, footer)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("gymbro: energy budget & training log")
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Dashboard", ScreenDashboard},
		{"2", "Progress", ScreenProgress},
		{"3", "Program", ScreenProgram},
		{"4", "Food", ScreenFood},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}

func (a *App) renderFooter() string {
	if a.status != "" {
		return statusStyle.Render(a.status)
	}
	return ""
}

// DataChangedMsg is sent after a write succeeded; views reload from the store
type DataChangedMsg struct {
	Status string
}

// ActionFailedMsg is sent when a write was rejected
type ActionFailedMsg struct {
	Err error
}
