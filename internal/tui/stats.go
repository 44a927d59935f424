package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fokus/internal/engine"
)

type statsModel struct {
	eng    *engine.Engine
	width  int
	height int
}

func newStatsModel(eng *engine.Engine) statsModel {
	return statsModel{eng: eng}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	return m, nil
}

func (m statsModel) view() string {
	w := m.width - 4

	header := m.renderSummary()
	chart := m.renderWeeklyChart()
	table := m.renderWeeklyTable(w)
	nav := mutedStyle.Render("  e: export")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Stats"), "", header, "", chart, "", table, "", nav,
		),
	)
}

// renderSummary is the shareable lifetime recap.
func (m statsModel) renderSummary() string {
	s := m.eng.Stats

	items := []string{
		fmt.Sprintf("%s %s", highlightStyle.Render(fmt.Sprintf("%d", s.LifetimeSessions())), mutedStyle.Render("sessions")),
		fmt.Sprintf("%s %s", highlightStyle.Render(formatHours(s.LifetimeMinutes())), mutedStyle.Render("focused")),
		fmt.Sprintf("%s %s", highlightStyle.Render(fmt.Sprintf("%d", s.AverageFocusScore())), mutedStyle.Render("avg focus")),
		fmt.Sprintf("%s %s", accentStyle.Render(fmt.Sprintf("🔥 %d", s.CurrentStreak())), mutedStyle.Render("day streak")),
		fmt.Sprintf("%s %s", mutedStyle.Render("best"), highlightStyle.Render(fmt.Sprintf("%d", s.LongestStreak()))),
	}

	return "  " + strings.Join(items, "   ")
}

func (m statsModel) renderWeeklyChart() string {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 28 {
		chartHeight = 14
	}

	chart := barchart.New(chartWidth, chartHeight)

	week := m.eng.Stats.WeeklyStats()
	barStyle := lipgloss.NewStyle().Foreground(primaryColor)
	emptyStyle := lipgloss.NewStyle().Foreground(subtleColor)

	var bars []barchart.BarData
	for _, day := range week {
		label := day.Date
		if d, err := time.Parse("2006-01-02", day.Date); err == nil {
			label = d.Format("Mon")
		}

		style := barStyle
		if day.TotalFocusMinutes == 0 {
			style = emptyStyle
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: day.Date, Value: float64(day.TotalFocusMinutes), Style: style},
			},
		})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart.View()
}

func (m statsModel) renderWeeklyTable(w int) string {
	week := m.eng.Stats.WeeklyStats()

	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-12s %10s %10s %12s", "Date", "Sessions", "Minutes", "Avg Focus"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 48))))

	for _, day := range week {
		score := "-"
		if day.SessionsCompleted > 0 {
			score = fmt.Sprintf("%d", day.AverageFocusScore)
		}
		rows = append(rows, fmt.Sprintf("  %-12s %10d %10d %12s",
			day.Date, day.SessionsCompleted, day.TotalFocusMinutes, score,
		))
	}

	return strings.Join(rows, "\n")
}
