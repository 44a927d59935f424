package engine

import "time"

// FocusTracker penalizes leaving the app during an active work session.
// One focus session spans one running work phase.
type FocusTracker struct {
	clock   Clock
	penalty int

	active           bool
	score            int
	backgroundEvents int
	startedAt        time.Time
}

func newFocusTracker(clock Clock, penalty int) *FocusTracker {
	return &FocusTracker{clock: clock, penalty: penalty, score: 100}
}

// Start begins a fresh focus session with a full score.
func (f *FocusTracker) Start() {
	f.active = true
	f.score = 100
	f.backgroundEvents = 0
	f.startedAt = f.clock.Now()
}

// End closes the session. The final score stays readable until the
// next Start.
func (f *FocusTracker) End() {
	f.active = false
	f.startedAt = time.Time{}
}

// RecordBackground counts one app-background event and applies the
// penalty. No-op outside an active session.
func (f *FocusTracker) RecordBackground() {
	if !f.active {
		return
	}
	f.backgroundEvents++
	f.score = 100 - f.backgroundEvents*f.penalty
	if f.score < 0 {
		f.score = 0
	}
}

// RecordForeground is the return-to-app observation hook. It never
// changes the score; the UI decides whether to surface a reminder.
func (f *FocusTracker) RecordForeground() {}

func (f *FocusTracker) Active() bool          { return f.active }
func (f *FocusTracker) Score() int            { return f.score }
func (f *FocusTracker) BackgroundEvents() int { return f.backgroundEvents }
func (f *FocusTracker) StartedAt() time.Time  { return f.startedAt }

// ShouldShowReminder reports whether the UI should nag the user on
// return to foreground: active session, already penalized.
func (f *FocusTracker) ShouldShowReminder() bool {
	return f.active && f.backgroundEvents > 0
}
