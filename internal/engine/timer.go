package engine

import (
	"math"
	"time"
)

// Timer is the phase/status state machine. While running the
// authoritative end of the phase is the wall-clock deadline phaseEnd;
// the per-second countdown is display state that Reconcile resyncs
// after missed ticks (suspended process, lost driver).
type Timer struct {
	clock    Clock
	settings *Settings
	stats    *Stats
	focus    *FocusTracker
	notifier Notifier

	phase            Phase
	status           Status
	secondsRemaining int
	currentSession   int
	totalCompleted   int
	startedAt        time.Time
	phaseEnd         time.Time
}

func newTimer(clock Clock, settings *Settings, stats *Stats, focus *FocusTracker, notifier Notifier) *Timer {
	return &Timer{
		clock:            clock,
		settings:         settings,
		stats:            stats,
		focus:            focus,
		notifier:         notifier,
		phase:            PhaseWork,
		status:           StatusIdle,
		secondsRemaining: settings.PhaseSeconds(PhaseWork),
		currentSession:   1,
		totalCompleted:   stats.LifetimeSessions(),
	}
}

// Start runs the timer from idle or paused. Entering a work phase from
// idle opens a focus session. A phase-end alert is scheduled when
// notifications are enabled.
func (t *Timer) Start() {
	if t.status == StatusRunning {
		return
	}
	fromIdle := t.status == StatusIdle

	now := t.clock.Now()
	t.status = StatusRunning
	t.startedAt = now
	t.phaseEnd = now.Add(time.Duration(t.secondsRemaining) * time.Second)

	if fromIdle && t.phase == PhaseWork {
		t.focus.Start()
	}
	if t.settings.NotificationsEnabled {
		t.notifier.Schedule(time.Duration(t.secondsRemaining)*time.Second, t.phase, t.settings.SoundEnabled)
	}
}

// Pause snapshots the live remaining time and stops the countdown.
func (t *Timer) Pause() {
	if t.status != StatusRunning {
		return
	}
	t.secondsRemaining = t.liveRemaining()
	t.status = StatusPaused
	t.startedAt = time.Time{}
	t.phaseEnd = time.Time{}
	t.notifier.CancelAll()
}

// Tick decrements the countdown by one second, floor 0. The driver
// owns the cadence and invokes CompletePhase when it observes zero.
func (t *Timer) Tick() {
	if t.status != StatusRunning {
		return
	}
	if t.secondsRemaining > 0 {
		t.secondsRemaining--
	}
}

// Reset returns to idle in the current phase at its configured
// duration and closes any focus session.
func (t *Timer) Reset() {
	t.notifier.CancelAll()
	t.status = StatusIdle
	t.secondsRemaining = t.settings.PhaseSeconds(t.phase)
	t.startedAt = time.Time{}
	t.phaseEnd = time.Time{}
	t.focus.End()
}

// Skip forces immediate completion of the current phase.
func (t *Timer) Skip() {
	t.CompletePhase()
}

// CompletePhase applies the transition rule. Finishing work records
// the session with the live focus score, recomputes streaks and picks
// the break; finishing a break returns to work and advances or resets
// the session index.
func (t *Timer) CompletePhase() {
	t.notifier.CancelAll()

	switch t.phase {
	case PhaseWork:
		t.stats.RecordCompletedSession(t.settings.WorkMinutes, t.focus.Score())
		t.stats.RecalculateStreak()
		t.focus.End()

		next := PhaseShortBreak
		if t.currentSession >= t.settings.SessionsBeforeLongBreak {
			next = PhaseLongBreak
		}
		t.phase = next
		t.totalCompleted++

	case PhaseLongBreak:
		t.currentSession = 1
		t.phase = PhaseWork

	default:
		t.currentSession++
		t.phase = PhaseWork
	}

	t.status = StatusIdle
	t.secondsRemaining = t.settings.PhaseSeconds(t.phase)
	t.startedAt = time.Time{}
	t.phaseEnd = time.Time{}
}

// Reconcile recomputes the countdown from the deadline. If the
// deadline already passed while ticks were not being delivered, the
// phase completes now. Only meaningful while running.
func (t *Timer) Reconcile() {
	if t.status != StatusRunning {
		return
	}
	remaining := t.liveRemaining()
	if remaining <= 0 {
		t.CompletePhase()
		return
	}
	t.secondsRemaining = remaining
}

// syncConfiguredDuration re-seeds the countdown after a duration
// setting change, but only when idle in the matching phase.
func (t *Timer) syncConfiguredDuration(p Phase) {
	if t.status == StatusIdle && t.phase == p {
		t.secondsRemaining = t.settings.PhaseSeconds(p)
	}
}

func (t *Timer) liveRemaining() int {
	secs := int(math.Ceil(t.phaseEnd.Sub(t.clock.Now()).Seconds()))
	if secs < 0 {
		return 0
	}
	return secs
}

func (t *Timer) Phase() Phase                { return t.phase }
func (t *Timer) Status() Status              { return t.status }
func (t *Timer) Running() bool               { return t.status == StatusRunning }
func (t *Timer) SecondsRemaining() int       { return t.secondsRemaining }
func (t *Timer) CurrentSession() int         { return t.currentSession }
func (t *Timer) TotalSessionsCompleted() int { return t.totalCompleted }

// StartedAt and PhaseEnd are zero unless running.
func (t *Timer) StartedAt() time.Time { return t.startedAt }
func (t *Timer) PhaseEnd() time.Time  { return t.phaseEnd }
