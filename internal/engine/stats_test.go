package engine

import (
	"testing"
	"time"

	"github.com/sadopc/fokus/internal/store"
)

func newTestStats(t *testing.T) (*Stats, *fakeClock, *store.Store) {
	t.Helper()
	st, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	clk := &fakeClock{now: time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)}
	return newStats(clk, st, func(error) {}), clk, st
}

func TestRecordCreatesDayLazily(t *testing.T) {
	s, _, _ := newTestStats(t)

	if s.Today().SessionsCompleted != 0 {
		t.Fatal("fresh day should be empty")
	}
	s.RecordCompletedSession(25, 100)

	day := s.Today()
	if day.Date != "2026-08-28" {
		t.Fatalf("day key = %q", day.Date)
	}
	if day.SessionsCompleted != 1 || day.TotalFocusMinutes != 25 || day.AverageFocusScore != 100 {
		t.Fatalf("unexpected day: %+v", day)
	}
}

func TestRunningMeanIsExact(t *testing.T) {
	s, _, _ := newTestStats(t)

	// round(255/3) = 85, not a truncated 84.
	for _, score := range []int{100, 70, 85} {
		s.RecordCompletedSession(25, score)
	}

	day := s.Today()
	if day.AverageFocusScore != 85 {
		t.Fatalf("average = %d, want 85", day.AverageFocusScore)
	}
	if day.SessionsCompleted != 3 || day.TotalFocusMinutes != 75 {
		t.Fatalf("unexpected day: %+v", day)
	}
}

func TestRecordAccumulatesLifetimeTotals(t *testing.T) {
	s, clk, st := newTestStats(t)

	s.RecordCompletedSession(25, 90)
	clk.Advance(24 * time.Hour)
	s.RecordCompletedSession(50, 80)

	if s.LifetimeSessions() != 2 || s.LifetimeMinutes() != 75 {
		t.Fatalf("lifetime = %d sessions / %d min", s.LifetimeSessions(), s.LifetimeMinutes())
	}

	// Persisted and restored.
	s2 := newStats(clk, st, func(error) {})
	if s2.LifetimeSessions() != 2 || s2.LifetimeMinutes() != 75 {
		t.Fatal("lifetime totals should survive reload")
	}
	if s2.Today().SessionsCompleted != 1 {
		t.Fatal("day map should survive reload")
	}
}

func TestRecordAppendsSessionHistory(t *testing.T) {
	s, _, st := newTestStats(t)

	s.RecordCompletedSession(25, 85)
	records, err := st.ListSessions(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 history row, got %d", len(records))
	}
	if records[0].DurationMinutes != 25 || records[0].FocusScore != 85 {
		t.Fatalf("unexpected record: %+v", records[0])
	}
}

// ============================================================
// Streaks
// ============================================================

func TestStreakThreeConsecutiveDays(t *testing.T) {
	s, clk, _ := newTestStats(t)

	// Sessions on day-2, day-1 and today; nothing 3 days back.
	start := clk.Now()
	clk.Set(start.AddDate(0, 0, -2))
	s.RecordCompletedSession(25, 100)
	clk.Set(start.AddDate(0, 0, -1))
	s.RecordCompletedSession(25, 100)
	clk.Set(start)
	s.RecordCompletedSession(25, 100)

	s.RecalculateStreak()
	if s.CurrentStreak() != 3 {
		t.Fatalf("currentStreak = %d, want 3", s.CurrentStreak())
	}
	if s.LongestStreak() != 3 {
		t.Fatalf("longestStreak = %d, want 3", s.LongestStreak())
	}
}

func TestStreakBreaksOnGap(t *testing.T) {
	s, clk, _ := newTestStats(t)

	start := clk.Now()
	clk.Set(start.AddDate(0, 0, -3)) // gap at -1 and -2
	s.RecordCompletedSession(25, 100)
	clk.Set(start)
	s.RecordCompletedSession(25, 100)

	s.RecalculateStreak()
	if s.CurrentStreak() != 1 {
		t.Fatalf("currentStreak = %d, want 1", s.CurrentStreak())
	}
}

func TestStreakZeroWithoutToday(t *testing.T) {
	s, clk, _ := newTestStats(t)

	start := clk.Now()
	clk.Set(start.AddDate(0, 0, -1))
	s.RecordCompletedSession(25, 100)
	clk.Set(start)

	s.RecalculateStreak()
	if s.CurrentStreak() != 0 {
		t.Fatalf("no session today: streak = %d, want 0", s.CurrentStreak())
	}
}

func TestLongestStreakNeverDecreases(t *testing.T) {
	s, clk, st := newTestStats(t)

	start := clk.Now()
	for i := 4; i >= 0; i-- {
		clk.Set(start.AddDate(0, 0, -i))
		s.RecordCompletedSession(25, 100)
	}
	s.RecalculateStreak()
	if s.LongestStreak() != 5 {
		t.Fatalf("longestStreak = %d, want 5", s.LongestStreak())
	}

	// A week later the current streak is gone; the record stands.
	clk.Set(start.AddDate(0, 0, 7))
	s.RecalculateStreak()
	if s.CurrentStreak() != 0 {
		t.Fatalf("currentStreak = %d, want 0", s.CurrentStreak())
	}
	if s.LongestStreak() != 5 {
		t.Fatalf("longestStreak dropped to %d", s.LongestStreak())
	}

	s2 := newStats(clk, st, func(error) {})
	if s2.LongestStreak() != 5 {
		t.Fatal("longest streak should persist")
	}
}

func TestRecalculateStreakIdempotent(t *testing.T) {
	s, _, _ := newTestStats(t)

	s.RecordCompletedSession(25, 100)
	s.RecalculateStreak()
	first := s.CurrentStreak()
	s.RecalculateStreak()
	s.RecalculateStreak()
	if s.CurrentStreak() != first {
		t.Fatalf("streak changed with no new data: %d -> %d", first, s.CurrentStreak())
	}
}

// ============================================================
// Weekly window
// ============================================================

func TestWeeklyStatsAlwaysSevenDays(t *testing.T) {
	s, clk, _ := newTestStats(t)

	start := clk.Now()
	clk.Set(start.AddDate(0, 0, -2))
	s.RecordCompletedSession(25, 80)
	clk.Set(start)
	s.RecordCompletedSession(25, 90)

	week := s.WeeklyStats()
	if len(week) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(week))
	}
	// Oldest first, ending today.
	if week[6].Date != "2026-08-28" {
		t.Fatalf("last entry = %q, want today", week[6].Date)
	}
	if week[0].Date != "2026-08-22" {
		t.Fatalf("first entry = %q, want 2026-08-22", week[0].Date)
	}
	// Placeholders are zero-valued, never omitted.
	for i, d := range week {
		switch d.Date {
		case "2026-08-26":
			if d.SessionsCompleted != 1 || d.AverageFocusScore != 80 {
				t.Fatalf("entry %d wrong: %+v", i, d)
			}
		case "2026-08-28":
			if d.SessionsCompleted != 1 || d.AverageFocusScore != 90 {
				t.Fatalf("entry %d wrong: %+v", i, d)
			}
		default:
			if d.SessionsCompleted != 0 || d.TotalFocusMinutes != 0 {
				t.Fatalf("placeholder %d not zero: %+v", i, d)
			}
		}
	}
}

func TestAverageFocusScoreWeighted(t *testing.T) {
	s, clk, _ := newTestStats(t)

	s.RecordCompletedSession(25, 100)
	s.RecordCompletedSession(25, 100)
	clk.Advance(24 * time.Hour)
	s.RecordCompletedSession(25, 40)

	// (100*2 + 40*1) / 3 = 80
	if got := s.AverageFocusScore(); got != 80 {
		t.Fatalf("lifetime average = %d, want 80", got)
	}
}

func TestAverageFocusScoreEmpty(t *testing.T) {
	s, _, _ := newTestStats(t)
	if got := s.AverageFocusScore(); got != 0 {
		t.Fatalf("empty average = %d, want 0", got)
	}
}
