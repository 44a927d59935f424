package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fokus/internal/engine"
)

// timerModel renders the countdown view. All timer state lives in the
// engine; this model only translates keys and draws.
type timerModel struct {
	eng    *engine.Engine
	width  int
	height int
}

func newTimerModel(eng *engine.Engine) timerModel {
	return timerModel{eng: eng}
}

func (t *timerModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Start):
		if t.eng.Timer.Status() == engine.StatusRunning {
			return t, nil
		}
		t.eng.StartTimer()
	case key.Matches(keyMsg, keys.Pause):
		switch t.eng.Timer.Status() {
		case engine.StatusRunning:
			t.eng.PauseTimer()
		case engine.StatusPaused:
			t.eng.StartTimer()
		}
	case key.Matches(keyMsg, keys.Reset):
		t.eng.ResetTimer()
	case key.Matches(keyMsg, keys.Skip):
		t.eng.SkipPhase()
		return t, func() tea.Msg {
			return statusMsg{text: "Skipped to " + phaseLabel(t.eng.Timer.Phase())}
		}
	}
	return t, nil
}

func phaseLabel(p engine.Phase) string {
	switch p {
	case engine.PhaseShortBreak:
		return "SHORT BREAK"
	case engine.PhaseLongBreak:
		return "LONG BREAK"
	default:
		return "FOCUS"
	}
}

func (t timerModel) view() string {
	w := t.width - 4
	tm := t.eng.Timer

	countdown := formatClock(tm.SecondsRemaining())

	var timeDisplay, label, hint string
	switch tm.Status() {
	case engine.StatusRunning:
		style := accentStyle
		if tm.Phase() != engine.PhaseWork {
			style = successStyle
		}
		timeDisplay = style.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(countdown)
		label = style.Bold(true).Render(phaseLabel(tm.Phase()))
		hint = mutedStyle.Render("space: pause  r: reset  x: skip")
	case engine.StatusPaused:
		timeDisplay = warningStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(countdown)
		label = warningStyle.Bold(true).Render(phaseLabel(tm.Phase()) + " · PAUSED")
		hint = mutedStyle.Render("space: resume  r: reset  x: skip")
	default:
		timeDisplay = countdownStyle.Width(w - 6).Render(countdown)
		label = mutedStyle.Render(phaseLabel(tm.Phase()) + " · ready")
		hint = mutedStyle.Render("s: start  x: skip")
	}

	rows := []string{
		timeDisplay,
		label,
		"",
		t.renderSessionDots(),
	}

	if line := t.renderFocusLine(); line != "" {
		rows = append(rows, "", line)
	}
	if task := t.eng.Tasks.ActiveTask(); task != nil {
		rows = append(rows, "", highlightStyle.Render("▸ "+task.Text))
	}
	if t.eng.Focus.ShouldShowReminder() {
		rows = append(rows, "", bannerStyle.Render("Stay focused! Distractions lower your score."))
	}

	rows = append(rows, "", t.renderTodayLine(), "", hint)

	content := lipgloss.JoinVertical(lipgloss.Center, rows...)

	if tm.Status() == engine.StatusRunning {
		return activePanelStyle.Width(w).Render(content)
	}
	return panelStyle.Width(w).Render(content)
}

// renderSessionDots shows progress through the work/break cycle.
func (t timerModel) renderSessionDots() string {
	tm := t.eng.Timer
	target := t.eng.Settings.SessionsBeforeLongBreak
	current := tm.CurrentSession()

	var parts []string
	for i := 1; i <= target; i++ {
		switch {
		case i < current:
			parts = append(parts, successStyle.Render("●"))
		case i == current && tm.Phase() == engine.PhaseWork:
			parts = append(parts, accentStyle.Render("◐"))
		case i == current:
			parts = append(parts, successStyle.Render("●"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	counter := mutedStyle.Render(fmt.Sprintf("  session %d/%d", current, target))
	return strings.Join(parts, " ") + counter
}

func (t timerModel) renderFocusLine() string {
	f := t.eng.Focus
	if !f.Active() {
		return ""
	}
	score := f.Score()
	style := successStyle
	if score < 70 {
		style = warningStyle
	}
	if score < 40 {
		style = errorStyle
	}
	return mutedStyle.Render("focus ") + style.Render(fmt.Sprintf("%d", score))
}

func (t timerModel) renderTodayLine() string {
	today := t.eng.Stats.Today()
	streak := t.eng.Stats.CurrentStreak()
	return mutedStyle.Render(fmt.Sprintf(
		"today: %d sessions · %d min · streak %d",
		today.SessionsCompleted, today.TotalFocusMinutes, streak,
	))
}
