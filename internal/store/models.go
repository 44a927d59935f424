package store

import "time"

type Task struct {
	ID          string
	Text        string
	Completed   bool
	Order       int
	Assigned    bool
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// DayStats holds per-calendar-day aggregates, keyed by ISO date (YYYY-MM-DD).
type DayStats struct {
	Date              string
	SessionsCompleted int
	TotalFocusMinutes int
	AverageFocusScore int
}

// SessionRecord is one completed work session in the history log.
type SessionRecord struct {
	ID              int64
	DurationMinutes int
	FocusScore      int
	CompletedAt     time.Time
}

type Setting struct {
	Key   string
	Value string
}
