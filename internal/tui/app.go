package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fokus/internal/engine"
	"github.com/sadopc/fokus/internal/export"
	"github.com/sadopc/fokus/internal/notify"
	"github.com/sadopc/fokus/internal/store"
)

// App is the root Bubble Tea model. It owns the one-second driver and
// translates terminal focus and blur into the engine's lifecycle hooks.
type App struct {
	eng    *engine.Engine
	store  *store.Store
	width  int
	height int

	activeView    viewState
	showHelp      bool
	onboarding    bool
	exportPicking bool
	exportCursor  int

	timer    timerModel
	tasks    tasksModel
	stats    statsModel
	settings settingsModel

	help   help.Model
	status string
}

func NewApp(eng *engine.Engine, s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	setTheme(eng.Settings.DarkMode)

	return App{
		eng:        eng,
		store:      s,
		activeView: viewTimer,
		onboarding: !eng.Onboarded(),
		timer:      newTimerModel(eng),
		tasks:      newTasksModel(eng),
		stats:      newStatsModel(eng),
		settings:   newSettingsModel(eng),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.timer.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.FocusMsg:
		a.eng.HandleForeground()
		return a, nil

	case tea.BlurMsg:
		a.eng.HandleBackground()
		return a, nil

	case tickMsg:
		a.driveTimer()
		return a, tickCmd()

	case alertMsg:
		text := notify.Title(msg.alert.Phase) + " " + notify.Body(msg.alert.Phase)
		if msg.alert.Sound {
			text += "\a"
		}
		a.status = text
		return a, nil

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil

	case tea.KeyMsg:
		if a.onboarding {
			return a.updateOnboarding(msg)
		}
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (text entry, form),
		// delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Export) && a.activeView != viewTasks:
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewTimer
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewTasks
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewStats
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			return a, nil
		}
	}

	return a.updateActiveView(msg)
}

// driveTimer advances the countdown once per second while running. The
// engine never completes a phase on its own; the driver observes the
// counter hitting zero.
func (a *App) driveTimer() {
	if a.eng.Timer.Status() != engine.StatusRunning {
		return
	}
	a.eng.Tick()
	if a.eng.Timer.SecondsRemaining() == 0 && a.eng.Timer.Status() == engine.StatusRunning {
		a.eng.CompletePhase()
	}
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTimer:
		a.timer, cmd = a.timer.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTasks:
		return a.tasks.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) updateOnboarding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Enter):
		a.eng.CompleteOnboarding()
		a.onboarding = false
	}
	return a, nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTimer:
		content = a.timer.view()
	case viewTasks:
		content = a.tasks.view()
	case viewStats:
		content = a.stats.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.onboarding {
		content = a.renderOnboarding()
	} else if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Render("fokus")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if err := a.eng.LastSaveError(); err != nil {
		status = errorStyle.Render(" save failed")
	} else if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Live countdown in the footer when away from the timer view.
	timerInfo := ""
	if a.eng.Timer.Status() != engine.StatusIdle && a.activeView != viewTimer {
		clock := formatClock(a.eng.Timer.SecondsRemaining())
		if a.eng.Timer.Status() == engine.StatusPaused {
			timerInfo = warningStyle.Render(" ⏸ " + clock)
		} else {
			timerInfo = successStyle.Render(" ● " + clock)
		}
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderOnboarding() string {
	w := a.width - 4
	rows := []string{
		titleStyle.Render("Welcome to fokus"),
		"",
		normalItemStyle.Render("Work in focused sessions, take real breaks, keep your streak alive."),
		"",
		mutedStyle.Render("  s       start a focus session"),
		mutedStyle.Render("  space   pause and resume"),
		mutedStyle.Render("  2       manage your task list"),
		mutedStyle.Render("  3       see your progress"),
		"",
		highlightStyle.Render("Press enter to begin."),
	}
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("fokus-export-%s.csv", dateStr))
			if err := export.ToCSV(a.eng.Stats.AllDays(), path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			sessions, err := a.store.ListSessions(0)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
			}
			payload := export.Payload{
				Tasks:            a.eng.Tasks.Tasks(),
				DailyStats:       a.eng.Stats.AllDays(),
				Sessions:         sessions,
				LifetimeSessions: a.eng.Stats.LifetimeSessions(),
				LifetimeMinutes:  a.eng.Stats.LifetimeMinutes(),
				CurrentStreak:    a.eng.Stats.CurrentStreak(),
				LongestStreak:    a.eng.Stats.LongestStreak(),
			}
			path = filepath.Join(home, fmt.Sprintf("fokus-export-%s.json", dateStr))
			if err := export.ToJSON(payload, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
