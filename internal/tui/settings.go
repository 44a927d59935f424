package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fokus/internal/engine"
)

type settingsModel struct {
	eng    *engine.Engine
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	work          *string
	shortBreak    *string
	longBreak     *string
	sessions      *string
	notifications *bool
	haptics       *bool
	sound         *bool
	darkMode      *bool
}

func newSettingsModel(eng *engine.Engine) settingsModel {
	w, sb, lb, n := "", "", "", ""
	notif, hapt, snd, dark := false, false, false, false
	return settingsModel{
		eng:           eng,
		work:          &w,
		shortBreak:    &sb,
		longBreak:     &lb,
		sessions:      &n,
		notifications: &notif,
		haptics:       &hapt,
		sound:         &snd,
		darkMode:      &dark,
	}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Enter):
		return m.showForm()
	case key.Matches(keyMsg, keys.Reset):
		m.eng.ResetSettingsToDefaults()
		return m, func() tea.Msg {
			return statusMsg{text: "Settings restored to defaults"}
		}
	}
	return m, nil
}

func validateMinutes(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 180 {
		return fmt.Errorf("enter 1-180")
	}
	return nil
}

func validateCount(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 12 {
		return fmt.Errorf("enter 1-12")
	}
	return nil
}

func (m settingsModel) showForm() (settingsModel, tea.Cmd) {
	s := m.eng.Settings
	*m.work = strconv.Itoa(s.WorkMinutes)
	*m.shortBreak = strconv.Itoa(s.ShortBreakMinutes)
	*m.longBreak = strconv.Itoa(s.LongBreakMinutes)
	*m.sessions = strconv.Itoa(s.SessionsBeforeLongBreak)
	*m.notifications = s.NotificationsEnabled
	*m.haptics = s.HapticsEnabled
	*m.sound = s.SoundEnabled
	*m.darkMode = s.DarkMode

	darkTitle := "Dark mode"
	if !m.eng.IsPro() {
		darkTitle = "Dark mode (Pro)"
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Focus (min)").Value(m.work).Validate(validateMinutes),
			huh.NewInput().Title("Short break (min)").Value(m.shortBreak).Validate(validateMinutes),
			huh.NewInput().Title("Long break (min)").Value(m.longBreak).Validate(validateMinutes),
			huh.NewInput().Title("Sessions before long break").Value(m.sessions).Validate(validateCount),
		).Title("Timer"),
		huh.NewGroup(
			huh.NewConfirm().Title("Notifications").Value(m.notifications),
			huh.NewConfirm().Title("Haptics").Value(m.haptics),
			huh.NewConfirm().Title("Sound").Value(m.sound),
			huh.NewConfirm().Title(darkTitle).Value(m.darkMode),
		).Title("Preferences"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m, m.save()
	}

	return m, cmd
}

func (m settingsModel) save() tea.Cmd {
	if n, err := strconv.Atoi(*m.work); err == nil {
		m.eng.SetWorkMinutes(n)
	}
	if n, err := strconv.Atoi(*m.shortBreak); err == nil {
		m.eng.SetShortBreakMinutes(n)
	}
	if n, err := strconv.Atoi(*m.longBreak); err == nil {
		m.eng.SetLongBreakMinutes(n)
	}
	if n, err := strconv.Atoi(*m.sessions); err == nil {
		m.eng.SetSessionsBeforeLongBreak(n)
	}
	m.eng.SetNotificationsEnabled(*m.notifications)
	m.eng.SetHapticsEnabled(*m.haptics)
	m.eng.SetSoundEnabled(*m.sound)

	wantDark := *m.darkMode
	m.eng.SetDarkMode(wantDark)
	setTheme(m.eng.Settings.DarkMode)

	if wantDark && !m.eng.Settings.DarkMode {
		return func() tea.Msg {
			return statusMsg{text: "Dark mode requires Pro", isError: true}
		}
	}
	return func() tea.Msg {
		return statusMsg{text: "Settings saved"}
	}
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Settings"), "", m.form.View()),
		)
	}

	s := m.eng.Settings
	onOff := func(b bool) string {
		if b {
			return successStyle.Render("on")
		}
		return mutedStyle.Render("off")
	}

	plan := "Free"
	if m.eng.IsPro() {
		plan = "Pro"
		if p := m.eng.Plan(); p != "" {
			plan = "Pro (" + p + ")"
		}
	}

	rows := []string{
		titleStyle.Render("Settings"),
		"",
		fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(28).Render("Focus duration"), highlightStyle.Render(fmt.Sprintf("%d min", s.WorkMinutes))),
		fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(28).Render("Short break"), highlightStyle.Render(fmt.Sprintf("%d min", s.ShortBreakMinutes))),
		fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(28).Render("Long break"), highlightStyle.Render(fmt.Sprintf("%d min", s.LongBreakMinutes))),
		fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(28).Render("Sessions before long break"), highlightStyle.Render(strconv.Itoa(s.SessionsBeforeLongBreak))),
		"",
		fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(28).Render("Notifications"), onOff(s.NotificationsEnabled)),
		fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(28).Render("Haptics"), onOff(s.HapticsEnabled)),
		fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(28).Render("Sound"), onOff(s.SoundEnabled)),
		fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(28).Render("Dark mode"), onOff(s.DarkMode)),
		"",
		fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(28).Render("Plan"), highlightStyle.Render(plan)),
		"",
		mutedStyle.Render("enter: edit  r: restore defaults"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
