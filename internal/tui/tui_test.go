package tui

import (
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/fokus/internal/engine"
	"github.com/sadopc/fokus/internal/notify"
	"github.com/sadopc/fokus/internal/store"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)}
}

func newTestApp(t *testing.T) (App, *engine.Engine, *fakeClock) {
	t.Helper()

	st, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	clk := newFakeClock()
	eng := engine.New(st, engine.WithClock(clk))
	eng.CompleteOnboarding()

	app := NewApp(eng, st)
	app = send(app, tea.WindowSizeMsg{Width: 100, Height: 40})
	return app, eng, clk
}

func send(a App, msg tea.Msg) App {
	m, _ := a.Update(msg)
	return m.(App)
}

func press(a App, r rune) App {
	return send(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func pressEnter(a App) App {
	return send(a, tea.KeyMsg{Type: tea.KeyEnter})
}

func pressEsc(a App) App {
	return send(a, tea.KeyMsg{Type: tea.KeyEsc})
}

func typeText(a App, s string) App {
	for _, r := range s {
		a = press(a, r)
	}
	return a
}

func tick(a App) App {
	return send(a, tickMsg(time.Time{}))
}

// ============================================================
// Navigation
// ============================================================

func TestInitialViewIsTimer(t *testing.T) {
	app, _, _ := newTestApp(t)
	if app.activeView != viewTimer {
		t.Fatalf("expected timer view, got %d", app.activeView)
	}
	if !strings.Contains(app.View(), "25:00") {
		t.Fatal("expected idle countdown at configured duration")
	}
}

func TestTabSwitching(t *testing.T) {
	app, _, _ := newTestApp(t)

	app = press(app, '2')
	if app.activeView != viewTasks {
		t.Fatalf("expected tasks view, got %d", app.activeView)
	}
	app = press(app, '3')
	if app.activeView != viewStats {
		t.Fatalf("expected stats view, got %d", app.activeView)
	}
	app = press(app, '4')
	if app.activeView != viewSettings {
		t.Fatalf("expected settings view, got %d", app.activeView)
	}
	app = press(app, '1')
	if app.activeView != viewTimer {
		t.Fatalf("expected timer view, got %d", app.activeView)
	}

	app = send(app, tea.KeyMsg{Type: tea.KeyTab})
	if app.activeView != viewTasks {
		t.Fatalf("tab should cycle to tasks, got %d", app.activeView)
	}
}

// ============================================================
// Timer driving
// ============================================================

func TestStartAndPauseKeys(t *testing.T) {
	app, eng, _ := newTestApp(t)

	app = press(app, 's')
	if eng.Timer.Status() != engine.StatusRunning {
		t.Fatal("s should start the timer")
	}

	app = press(app, 'p')
	if eng.Timer.Status() != engine.StatusPaused {
		t.Fatal("p should pause the timer")
	}

	app = press(app, 'p')
	if eng.Timer.Status() != engine.StatusRunning {
		t.Fatal("p should resume the timer")
	}
}

func TestResetKey(t *testing.T) {
	app, eng, _ := newTestApp(t)

	app = press(app, 's')
	app = tick(app)
	app = press(app, 'r')

	if eng.Timer.Status() != engine.StatusIdle {
		t.Fatal("r should reset to idle")
	}
	if got := eng.Timer.SecondsRemaining(); got != 25*60 {
		t.Fatalf("reset should restore full duration, got %d", got)
	}
}

func TestTickDrivesCountdown(t *testing.T) {
	app, eng, _ := newTestApp(t)

	app = press(app, 's')
	app = tick(app)

	if got := eng.Timer.SecondsRemaining(); got != 25*60-1 {
		t.Fatalf("expected %d remaining, got %d", 25*60-1, got)
	}
}

func TestTickIgnoredWhileIdle(t *testing.T) {
	app, eng, _ := newTestApp(t)

	app = tick(app)
	if got := eng.Timer.SecondsRemaining(); got != 25*60 {
		t.Fatalf("idle countdown should not move, got %d", got)
	}
}

func TestDriverCompletesPhaseAtZero(t *testing.T) {
	app, eng, _ := newTestApp(t)
	eng.SetWorkMinutes(1)

	app = press(app, 's')
	for i := 0; i < 60; i++ {
		app = tick(app)
	}

	if eng.Timer.Phase() != engine.PhaseShortBreak {
		t.Fatalf("expected short break after completion, got %v", eng.Timer.Phase())
	}
	if eng.Timer.Status() != engine.StatusIdle {
		t.Fatal("completed phase should land idle")
	}
	if eng.Timer.TotalSessionsCompleted() != 1 {
		t.Fatalf("expected 1 completed session, got %d", eng.Timer.TotalSessionsCompleted())
	}
}

// ============================================================
// Lifecycle: terminal blur/focus
// ============================================================

func TestBlurAppliesFocusPenalty(t *testing.T) {
	app, eng, _ := newTestApp(t)

	app = press(app, 's')
	app = send(app, tea.BlurMsg{})
	app = send(app, tea.FocusMsg{})

	if got := eng.Focus.Score(); got != 85 {
		t.Fatalf("expected score 85 after one distraction, got %d", got)
	}
}

func TestFocusReconcilesAfterSuspension(t *testing.T) {
	app, eng, clk := newTestApp(t)

	app = press(app, 's')
	clk.Advance(26 * time.Minute)
	app = send(app, tea.FocusMsg{})

	if eng.Timer.Phase() != engine.PhaseShortBreak {
		t.Fatalf("expected phase completion on refocus, got %v", eng.Timer.Phase())
	}
}

// ============================================================
// Tasks view
// ============================================================

func TestAddTaskFlow(t *testing.T) {
	app, eng, _ := newTestApp(t)

	app = press(app, '2')
	app = press(app, 'n')
	if !app.tasks.formActive {
		t.Fatal("n should open the task input")
	}

	app = typeText(app, "deep work")
	app = pressEnter(app)

	tasks := eng.Tasks.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "deep work" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	if app.tasks.formActive {
		t.Fatal("input should close after submit")
	}
}

func TestAddTaskEscCancels(t *testing.T) {
	app, eng, _ := newTestApp(t)

	app = press(app, '2')
	app = press(app, 'n')
	app = typeText(app, "abandoned")
	app = pressEsc(app)

	if eng.Tasks.Len() != 0 {
		t.Fatal("esc should not create a task")
	}
}

func TestToggleAndDeleteTask(t *testing.T) {
	app, eng, _ := newTestApp(t)
	eng.AddTask("one")

	app = press(app, '2')
	app = pressEnter(app)
	if !eng.Tasks.Tasks()[0].Completed {
		t.Fatal("enter should toggle the selected task")
	}

	app = press(app, 'd')
	if eng.Tasks.Len() != 0 {
		t.Fatal("d should delete the selected task")
	}
}

func TestEditTaskFlow(t *testing.T) {
	app, eng, _ := newTestApp(t)
	eng.AddTask("tpyo")

	app = press(app, '2')
	app = press(app, 'e')
	if !app.tasks.formActive {
		t.Fatal("e should open the edit input on the tasks view")
	}

	app.tasks.input.SetValue("typo fixed")
	app = pressEnter(app)

	if got := eng.Tasks.Tasks()[0].Text; got != "typo fixed" {
		t.Fatalf("expected edited text, got %q", got)
	}
}

func TestReorderKeys(t *testing.T) {
	app, eng, _ := newTestApp(t)
	eng.AddTask("B")
	eng.AddTask("A") // prepend puts A first

	app = press(app, '2')
	app = press(app, 'J')

	tasks := eng.Tasks.Tasks()
	if tasks[0].Text != "B" || tasks[1].Text != "A" {
		t.Fatalf("J should move the selection down, got %q %q", tasks[0].Text, tasks[1].Text)
	}
	if app.tasks.cursor != 1 {
		t.Fatalf("cursor should follow the moved task, got %d", app.tasks.cursor)
	}
}

func TestTaskLimitBanner(t *testing.T) {
	app, eng, _ := newTestApp(t)
	for i := 0; i < 10; i++ {
		eng.AddTask("task")
	}
	eng.AddTask("one too many")

	app = press(app, '2')
	if !strings.Contains(app.View(), "Upgrade to Pro") {
		t.Fatal("expected the task limit banner")
	}
}

// ============================================================
// Export picker
// ============================================================

func TestExportPickerOpensOutsideTasksView(t *testing.T) {
	app, _, _ := newTestApp(t)

	app = press(app, 'e')
	if !app.exportPicking {
		t.Fatal("e should open the export picker")
	}
	if !strings.Contains(app.View(), "Export Format") {
		t.Fatal("picker overlay missing")
	}

	app = pressEsc(app)
	if app.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

func TestExportKeyEditsOnTasksView(t *testing.T) {
	app, eng, _ := newTestApp(t)
	eng.AddTask("something")

	app = press(app, '2')
	app = press(app, 'e')

	if app.exportPicking {
		t.Fatal("e on the tasks view should not open the export picker")
	}
	if !app.tasks.formActive {
		t.Fatal("e on the tasks view should edit the selection")
	}
}

// ============================================================
// Settings view
// ============================================================

func TestSettingsResetKey(t *testing.T) {
	app, eng, _ := newTestApp(t)
	eng.SetWorkMinutes(40)

	app = press(app, '4')
	app = press(app, 'r')

	if got := eng.Settings.WorkMinutes; got != engine.DefaultWorkMinutes {
		t.Fatalf("expected defaults restored, got %d", got)
	}
}

func TestSettingsFormOpens(t *testing.T) {
	app, _, _ := newTestApp(t)

	app = press(app, '4')
	app = pressEnter(app)

	if !app.settings.formActive {
		t.Fatal("enter should open the settings form")
	}

	app = pressEsc(app)
	if app.settings.formActive {
		t.Fatal("esc should close the settings form")
	}
}

// ============================================================
// Onboarding
// ============================================================

func TestOnboardingOverlay(t *testing.T) {
	st, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	eng := engine.New(st, engine.WithClock(newFakeClock()))
	app := NewApp(eng, st)
	app = send(app, tea.WindowSizeMsg{Width: 100, Height: 40})

	if !app.onboarding {
		t.Fatal("fresh install should show onboarding")
	}
	if !strings.Contains(app.View(), "Welcome") {
		t.Fatal("onboarding overlay missing")
	}

	app = pressEnter(app)
	if app.onboarding {
		t.Fatal("enter should dismiss onboarding")
	}
	if !eng.Onboarded() {
		t.Fatal("dismissal should persist")
	}
}

// ============================================================
// Status and footer
// ============================================================

func TestAlertMessageSetsStatus(t *testing.T) {
	app, _, _ := newTestApp(t)

	app = send(app, AlertFired(notify.Alert{Phase: engine.PhaseWork, Sound: false}))
	if !strings.Contains(app.status, "Focus session complete!") {
		t.Fatalf("unexpected status: %q", app.status)
	}
}

func TestFooterShowsCountdownOnOtherViews(t *testing.T) {
	app, _, _ := newTestApp(t)

	app = press(app, 's')
	app = press(app, '2')

	if !strings.Contains(app.View(), "25:00") {
		t.Fatal("expected live countdown in the footer")
	}
}
