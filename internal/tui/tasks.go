package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/fokus/internal/engine"
)

type tasksModel struct {
	eng    *engine.Engine
	width  int
	height int

	cursor     int
	formActive bool
	editingID  string // task being edited, empty when adding
	input      textinput.Model
}

func newTasksModel(eng *engine.Engine) tasksModel {
	ti := textinput.New()
	ti.Placeholder = "What are you working on?"
	ti.CharLimit = 200

	return tasksModel{
		eng:   eng,
		input: ti,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive {
		return m.updateInput(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	tasks := m.eng.Tasks.Tasks()
	m.clampCursor(len(tasks))

	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.New):
		m.formActive = true
		m.editingID = ""
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(keyMsg, keys.Edit):
		if len(tasks) > 0 {
			m.formActive = true
			m.editingID = tasks[m.cursor].ID
			m.input.SetValue(tasks[m.cursor].Text)
			return m, m.input.Focus()
		}
	case key.Matches(keyMsg, keys.Enter):
		if len(tasks) > 0 {
			m.eng.ToggleTask(tasks[m.cursor].ID)
		}
	case key.Matches(keyMsg, keys.Delete):
		if len(tasks) > 0 {
			m.eng.DeleteTask(tasks[m.cursor].ID)
			m.clampCursor(m.eng.Tasks.Len())
		}
	case key.Matches(keyMsg, keys.Clear):
		m.eng.ClearCompletedTasks()
		m.clampCursor(m.eng.Tasks.Len())
	case key.Matches(keyMsg, keys.Assign):
		if len(tasks) > 0 {
			t := tasks[m.cursor]
			if t.Assigned {
				m.eng.UnassignTask(t.ID)
			} else {
				m.eng.AssignTask(t.ID)
			}
		}
	case key.Matches(keyMsg, keys.MoveUp):
		if m.cursor > 0 {
			m.eng.ReorderTasks(m.cursor, m.cursor-1)
			m.cursor--
		}
	case key.Matches(keyMsg, keys.MoveDn):
		if m.cursor < len(tasks)-1 {
			m.eng.ReorderTasks(m.cursor, m.cursor+1)
			m.cursor++
		}
	}
	return m, nil
}

func (m tasksModel) updateInput(msg tea.Msg) (tasksModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.formActive = false
			m.input.Blur()
			return m, nil
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			m.formActive = false
			m.input.Blur()
			if text == "" {
				return m, nil
			}
			if m.editingID == "" {
				m.eng.AddTask(text)
				m.cursor = 0
				if m.eng.Tasks.LimitReached() {
					return m, func() tea.Msg {
						return statusMsg{text: "Free plan is limited to 10 active tasks", isError: true}
					}
				}
			} else {
				m.eng.EditTask(m.editingID, text)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tasksModel) clampCursor(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m tasksModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Tasks")

	if m.formActive {
		label := "New Task"
		if m.editingID != "" {
			label = "Edit Task"
		}
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(label),
			"",
			m.input.View(),
			"",
			mutedStyle.Render("enter: save  esc: cancel"),
		)
		return activePanelStyle.Width(w).Render(content)
	}

	tasks := m.eng.Tasks.Tasks()
	if len(tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, t := range tasks {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		check := "○"
		text := t.Text
		if t.Completed {
			check = successStyle.Render("✓")
			text = mutedStyle.Strikethrough(true).Render(text)
		} else {
			text = style.Render(text)
		}

		marker := ""
		if t.Assigned {
			marker = highlightStyle.Render(" ▸")
		}

		rows = append(rows, fmt.Sprintf("%s%s %s%s", cursor, check, text, marker))
	}

	if m.eng.Tasks.LimitReached() && !m.eng.IsPro() {
		rows = append(rows, "")
		rows = append(rows, bannerStyle.Render("Task limit reached. Upgrade to Pro for unlimited tasks."))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  enter: done  a: assign  d: delete  c: clear done  K/J: move"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
