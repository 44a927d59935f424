package engine

import (
	"strings"

	"github.com/google/uuid"

	"github.com/sadopc/fokus/internal/store"
)

// TaskList is the ordered task collection. New tasks go to the head of
// the list and every mutation that moves items renumbers Order to the
// display position, 0-based and contiguous.
type TaskList struct {
	clock  Clock
	store  *store.Store
	ent    Entitlements
	report func(error)

	tasks        []store.Task
	limitReached bool
}

func newTaskList(clock Clock, st *store.Store, ent Entitlements, report func(error)) *TaskList {
	l := &TaskList{clock: clock, store: st, ent: ent, report: report}
	tasks, err := st.ListTasks()
	if err != nil {
		report(err)
	}
	l.tasks = tasks
	return l
}

// Add inserts a task at the head of the list. Over the free-tier cap
// of non-completed tasks it inserts nothing and raises LimitReached
// instead; the flag clears on the next successful add.
func (l *TaskList) Add(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	if !l.ent.IsPro() && l.activeCount() >= FreeTierMaxTasks {
		l.limitReached = true
		return
	}
	l.limitReached = false

	task := store.Task{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: l.clock.Now(),
	}
	l.tasks = append([]store.Task{task}, l.tasks...)
	l.renumber()
	l.replaceAll()
}

func (l *TaskList) Toggle(id string) {
	for i := range l.tasks {
		if l.tasks[i].ID != id {
			continue
		}
		l.tasks[i].Completed = !l.tasks[i].Completed
		if l.tasks[i].Completed {
			now := l.clock.Now()
			l.tasks[i].CompletedAt = &now
		} else {
			l.tasks[i].CompletedAt = nil
		}
		l.update(l.tasks[i])
		return
	}
}

// Edit replaces the task text. Empty or unchanged text is a no-op.
func (l *TaskList) Edit(id, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	for i := range l.tasks {
		if l.tasks[i].ID != id {
			continue
		}
		if l.tasks[i].Text == text {
			return
		}
		l.tasks[i].Text = text
		l.update(l.tasks[i])
		return
	}
}

func (l *TaskList) Delete(id string) {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
			l.renumber()
			l.replaceAll()
			return
		}
	}
}

func (l *TaskList) ClearCompleted() {
	kept := l.tasks[:0]
	for _, t := range l.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	l.tasks = kept
	l.renumber()
	l.replaceAll()
}

// Reorder moves the task at from to position to and renumbers.
func (l *TaskList) Reorder(from, to int) {
	n := len(l.tasks)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}
	moved := l.tasks[from]
	l.tasks = append(l.tasks[:from], l.tasks[from+1:]...)
	rest := append([]store.Task{}, l.tasks[to:]...)
	l.tasks = append(append(l.tasks[:to:to], moved), rest...)
	l.renumber()
	l.replaceAll()
}

// Assign flags a task for the current session. Several tasks may carry
// the flag; the first match counts as the active one.
func (l *TaskList) Assign(id string)   { l.setAssigned(id, true) }
func (l *TaskList) Unassign(id string) { l.setAssigned(id, false) }

func (l *TaskList) setAssigned(id string, assigned bool) {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			l.tasks[i].Assigned = assigned
			l.update(l.tasks[i])
			return
		}
	}
}

// Tasks returns a copy of the list in display order.
func (l *TaskList) Tasks() []store.Task {
	out := make([]store.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

func (l *TaskList) Len() int           { return len(l.tasks) }
func (l *TaskList) LimitReached() bool { return l.limitReached }

// ActiveTask returns the first assigned, non-completed task, or nil.
func (l *TaskList) ActiveTask() *store.Task {
	for i := range l.tasks {
		if l.tasks[i].Assigned && !l.tasks[i].Completed {
			t := l.tasks[i]
			return &t
		}
	}
	return nil
}

func (l *TaskList) activeCount() int {
	n := 0
	for _, t := range l.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

func (l *TaskList) renumber() {
	for i := range l.tasks {
		l.tasks[i].Order = i
	}
}

func (l *TaskList) replaceAll() {
	l.report(l.store.ReplaceTasks(l.tasks))
}

func (l *TaskList) update(t store.Task) {
	l.report(l.store.UpdateTask(t))
}
