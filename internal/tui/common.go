package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/fokus/internal/notify"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewTasks
	viewStats
	viewSettings
)

var viewNames = []string{"Timer", "Tasks", "Stats", "Settings"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

// alertMsg carries a fired phase-complete alert from the notification
// scheduler into the update loop.
type alertMsg struct {
	alert notify.Alert
}

// AlertFired wraps a fired alert as a message suitable for
// Program.Send from the scheduler callback.
func AlertFired(a notify.Alert) tea.Msg {
	return alertMsg{alert: a}
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// formatClock renders a countdown as MM:SS.
func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func formatHours(minutes int) string {
	return fmt.Sprintf("%.1fh", float64(minutes)/60)
}
