package tui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	primary   lipgloss.Color
	accent    lipgloss.Color
	muted     lipgloss.Color
	success   lipgloss.Color
	warning   lipgloss.Color
	errColor  lipgloss.Color
	fg        lipgloss.Color
	subtle    lipgloss.Color
	highlight lipgloss.Color
}

var darkPalette = palette{
	primary:   lipgloss.Color("#6C63FF"),
	accent:    lipgloss.Color("#FF6B6B"),
	muted:     lipgloss.Color("#666666"),
	success:   lipgloss.Color("#2ECC71"),
	warning:   lipgloss.Color("#F39C12"),
	errColor:  lipgloss.Color("#E74C3C"),
	fg:        lipgloss.Color("#C0CAF5"),
	subtle:    lipgloss.Color("#414868"),
	highlight: lipgloss.Color("#7AA2F7"),
}

var lightPalette = palette{
	primary:   lipgloss.Color("#5046E5"),
	accent:    lipgloss.Color("#D64545"),
	muted:     lipgloss.Color("#8A8A8A"),
	success:   lipgloss.Color("#1F9D55"),
	warning:   lipgloss.Color("#B7791F"),
	errColor:  lipgloss.Color("#C0392B"),
	fg:        lipgloss.Color("#2D3748"),
	subtle:    lipgloss.Color("#CBD5E0"),
	highlight: lipgloss.Color("#3B82F6"),
}

var (
	activeTabStyle    lipgloss.Style
	inactiveTabStyle  lipgloss.Style
	panelStyle        lipgloss.Style
	activePanelStyle  lipgloss.Style
	countdownStyle    lipgloss.Style
	titleStyle        lipgloss.Style
	accentStyle       lipgloss.Style
	successStyle      lipgloss.Style
	warningStyle      lipgloss.Style
	errorStyle        lipgloss.Style
	mutedStyle        lipgloss.Style
	highlightStyle    lipgloss.Style
	headerStyle       lipgloss.Style
	footerStyle       lipgloss.Style
	selectedItemStyle lipgloss.Style
	normalItemStyle   lipgloss.Style
	bannerStyle       lipgloss.Style
	subtleColor       lipgloss.Color
	primaryColor      lipgloss.Color
)

func init() {
	setTheme(false)
}

// setTheme rebuilds the shared styles for the dark or light palette.
// Called at startup and whenever the dark-mode setting flips.
func setTheme(dark bool) {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	subtleColor = p.subtle
	primaryColor = p.primary

	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.primary).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(p.primary).
		Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
		Foreground(p.muted).
		Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.subtle).
		Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.primary).
		Padding(1, 2)

	countdownStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.primary).
		Align(lipgloss.Center)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.fg)

	accentStyle = lipgloss.NewStyle().
		Foreground(p.accent)

	successStyle = lipgloss.NewStyle().
		Foreground(p.success)

	warningStyle = lipgloss.NewStyle().
		Foreground(p.warning)

	errorStyle = lipgloss.NewStyle().
		Foreground(p.errColor)

	mutedStyle = lipgloss.NewStyle().
		Foreground(p.muted)

	highlightStyle = lipgloss.NewStyle().
		Foreground(p.highlight)

	headerStyle = lipgloss.NewStyle().
		Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
		Foreground(p.muted).
		Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
		Foreground(p.primary).
		Bold(true)

	normalItemStyle = lipgloss.NewStyle().
		Foreground(p.fg)

	bannerStyle = lipgloss.NewStyle().
		Foreground(p.warning).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.warning).
		Padding(0, 1)
}
