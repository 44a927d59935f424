package engine

import "time"

// Phase is one segment of the work/break cycle.
type Phase int

const (
	PhaseWork Phase = iota
	PhaseShortBreak
	PhaseLongBreak
)

func (p Phase) String() string {
	switch p {
	case PhaseWork:
		return "work"
	case PhaseShortBreak:
		return "short_break"
	case PhaseLongBreak:
		return "long_break"
	}
	return "unknown"
}

// Status is the timer run state, orthogonal to Phase.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusPaused
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	}
	return "unknown"
}

const (
	DefaultWorkMinutes             = 25
	DefaultShortBreakMinutes       = 5
	DefaultLongBreakMinutes        = 15
	DefaultSessionsBeforeLongBreak = 4

	// FreeTierMaxTasks caps non-completed tasks without the pro entitlement.
	FreeTierMaxTasks = 10

	// DefaultFocusPenalty is the score cost per app-background event.
	DefaultFocusPenalty = 15
)

// Clock supplies wall-clock time. Injected so deadline reconciliation
// is testable without sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the real wall clock.
func SystemClock() Clock { return systemClock{} }

// Notifier arranges a single local alert timed to phase completion.
// Scheduling supersedes any previously armed alert. Implementations
// may enforce a minimum delay of one second; the engine only schedules
// whole-phase durations, never sub-second ones.
type Notifier interface {
	Schedule(d time.Duration, phase Phase, sound bool)
	CancelAll()
}

type nopNotifier struct{}

func (nopNotifier) Schedule(time.Duration, Phase, bool) {}
func (nopNotifier) CancelAll()                          {}

// Entitlements reports paid-tier feature access.
type Entitlements interface {
	IsPro() bool
}
