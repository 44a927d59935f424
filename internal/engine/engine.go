// Package engine implements the core of the focus timer: the phase
// state machine with deadline reconciliation, focus scoring,
// statistics aggregation, the task list and settings. UI layers drive
// it from a single event loop; collaborators (storage, notifications)
// are injected.
package engine

import (
	"github.com/sadopc/fokus/internal/store"
)

// Engine is the explicitly constructed state container. All mutations
// go through its methods so persistence, cross-component effects and
// change notification happen in one synchronous step.
type Engine struct {
	store    *store.Store
	clock    Clock
	notifier Notifier

	Settings *Settings
	Focus    *FocusTracker
	Stats    *Stats
	Tasks    *TaskList
	Timer    *Timer

	pro       bool
	plan      string
	onboarded bool

	listeners   []func()
	reporter    func(error)
	lastSaveErr error
}

type Option func(*Engine)

func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithErrorReporter receives persistence failures. They are never
// fatal; in-memory state stays authoritative.
func WithErrorReporter(fn func(error)) Option {
	return func(e *Engine) { e.reporter = fn }
}

// New restores the persisted snapshot from st and wires the components.
// The timer always starts idle in the work phase; live countdown state
// is never restored.
func New(st *store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:    st,
		clock:    SystemClock(),
		notifier: nopNotifier{},
	}
	for _, opt := range opts {
		opt(e)
	}

	settings := loadSettings(st)
	e.Settings = &settings
	e.Focus = newFocusTracker(e.clock, DefaultFocusPenalty)
	e.Stats = newStats(e.clock, st, e.reportErr)
	e.Tasks = newTaskList(e.clock, st, e, e.reportErr)
	e.Timer = newTimer(e.clock, e.Settings, e.Stats, e.Focus, e.notifier)

	e.pro = st.GetMetaBool("pro", false)
	e.plan, _ = st.GetMeta("plan")
	e.onboarded = st.GetMetaBool("onboarded", false)
	return e
}

// Subscribe registers a change listener, called after every mutation
// that goes through the engine.
func (e *Engine) Subscribe(fn func()) {
	e.listeners = append(e.listeners, fn)
}

func (e *Engine) changed() {
	for _, fn := range e.listeners {
		fn()
	}
}

// LastSaveError returns the most recent persistence failure, if any.
func (e *Engine) LastSaveError() error { return e.lastSaveErr }

// --- Timer operations ---

func (e *Engine) StartTimer()    { e.Timer.Start(); e.changed() }
func (e *Engine) PauseTimer()    { e.Timer.Pause(); e.changed() }
func (e *Engine) ResetTimer()    { e.Timer.Reset(); e.changed() }
func (e *Engine) SkipPhase()     { e.Timer.Skip(); e.changed() }
func (e *Engine) CompletePhase() { e.Timer.CompletePhase(); e.changed() }

// Tick advances the countdown one second. The 1-second driver lives in
// the UI layer and runs only while the timer is running.
func (e *Engine) Tick() { e.Timer.Tick(); e.changed() }

// Reconcile syncs the countdown against the wall-clock deadline,
// completing the phase if the deadline has passed.
func (e *Engine) Reconcile() { e.Timer.Reconcile(); e.changed() }

// --- App lifecycle ---

// HandleBackground records a leave-the-app event against any active
// focus session.
func (e *Engine) HandleBackground() {
	e.Focus.RecordBackground()
	e.changed()
}

// HandleForeground reconciles the countdown against the wall-clock
// deadline, catching up phase completion if the deadline passed while
// ticks were not delivered.
func (e *Engine) HandleForeground() {
	e.Focus.RecordForeground()
	e.Timer.Reconcile()
	e.changed()
}

// --- Task operations ---

func (e *Engine) AddTask(text string)       { e.Tasks.Add(text); e.changed() }
func (e *Engine) ToggleTask(id string)      { e.Tasks.Toggle(id); e.changed() }
func (e *Engine) EditTask(id, text string)  { e.Tasks.Edit(id, text); e.changed() }
func (e *Engine) DeleteTask(id string)      { e.Tasks.Delete(id); e.changed() }
func (e *Engine) ClearCompletedTasks()      { e.Tasks.ClearCompleted(); e.changed() }
func (e *Engine) ReorderTasks(from, to int) { e.Tasks.Reorder(from, to); e.changed() }
func (e *Engine) AssignTask(id string)      { e.Tasks.Assign(id); e.changed() }
func (e *Engine) UnassignTask(id string)    { e.Tasks.Unassign(id); e.changed() }

// --- Settings operations ---

func (e *Engine) SetWorkMinutes(minutes int) {
	e.Settings.WorkMinutes = minutes
	e.saveSettingInt("work_minutes", minutes)
	e.Timer.syncConfiguredDuration(PhaseWork)
	e.changed()
}

func (e *Engine) SetShortBreakMinutes(minutes int) {
	e.Settings.ShortBreakMinutes = minutes
	e.saveSettingInt("short_break_minutes", minutes)
	e.Timer.syncConfiguredDuration(PhaseShortBreak)
	e.changed()
}

func (e *Engine) SetLongBreakMinutes(minutes int) {
	e.Settings.LongBreakMinutes = minutes
	e.saveSettingInt("long_break_minutes", minutes)
	e.Timer.syncConfiguredDuration(PhaseLongBreak)
	e.changed()
}

func (e *Engine) SetSessionsBeforeLongBreak(count int) {
	e.Settings.SessionsBeforeLongBreak = count
	e.saveSettingInt("sessions_before_long_break", count)
	e.changed()
}

func (e *Engine) SetNotificationsEnabled(on bool) {
	e.Settings.NotificationsEnabled = on
	e.saveSettingBool("notifications_enabled", on)
	e.changed()
}

func (e *Engine) SetHapticsEnabled(on bool) {
	e.Settings.HapticsEnabled = on
	e.saveSettingBool("haptics_enabled", on)
	e.changed()
}

func (e *Engine) SetSoundEnabled(on bool) {
	e.Settings.SoundEnabled = on
	e.saveSettingBool("sound_enabled", on)
	e.changed()
}

// SetDarkMode flips the theme. Dark mode is a pro feature; the call is
// ignored without the entitlement.
func (e *Engine) SetDarkMode(on bool) {
	if on && !e.IsPro() {
		return
	}
	e.Settings.DarkMode = on
	e.saveSettingBool("dark_mode", on)
	e.changed()
}

// ResetSettingsToDefaults restores durations and toggles. Dark mode
// and the onboarding flag are left alone.
func (e *Engine) ResetSettingsToDefaults() {
	d := defaultSettings()
	e.Settings.WorkMinutes = d.WorkMinutes
	e.Settings.ShortBreakMinutes = d.ShortBreakMinutes
	e.Settings.LongBreakMinutes = d.LongBreakMinutes
	e.Settings.SessionsBeforeLongBreak = d.SessionsBeforeLongBreak
	e.Settings.NotificationsEnabled = d.NotificationsEnabled
	e.Settings.HapticsEnabled = d.HapticsEnabled
	e.Settings.SoundEnabled = d.SoundEnabled

	e.saveSettingInt("work_minutes", d.WorkMinutes)
	e.saveSettingInt("short_break_minutes", d.ShortBreakMinutes)
	e.saveSettingInt("long_break_minutes", d.LongBreakMinutes)
	e.saveSettingInt("sessions_before_long_break", d.SessionsBeforeLongBreak)
	e.saveSettingBool("notifications_enabled", d.NotificationsEnabled)
	e.saveSettingBool("haptics_enabled", d.HapticsEnabled)
	e.saveSettingBool("sound_enabled", d.SoundEnabled)

	e.Timer.syncConfiguredDuration(e.Timer.Phase())
	e.changed()
}

// --- Entitlements / account flags ---

func (e *Engine) IsPro() bool  { return e.pro }
func (e *Engine) Plan() string { return e.plan }

func (e *Engine) SetPro(pro bool, plan string) {
	e.pro = pro
	e.plan = plan
	e.reportErr(e.store.SetMetaBool("pro", pro))
	e.reportErr(e.store.SetMeta("plan", plan))
	e.changed()
}

func (e *Engine) Onboarded() bool { return e.onboarded }

func (e *Engine) CompleteOnboarding() {
	e.onboarded = true
	e.reportErr(e.store.SetMetaBool("onboarded", true))
	e.changed()
}

func (e *Engine) saveSettingInt(key string, v int) {
	e.reportErr(e.store.SetSettingInt(key, v))
}

func (e *Engine) saveSettingBool(key string, v bool) {
	e.reportErr(e.store.SetSettingBool(key, v))
}

// reportErr records the outcome of a store write. A nil error clears
// the sticky failure so the UI stops flagging saves once they recover.
func (e *Engine) reportErr(err error) {
	e.lastSaveErr = err
	if err != nil && e.reporter != nil {
		e.reporter(err)
	}
}
