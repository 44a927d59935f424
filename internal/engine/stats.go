package engine

import (
	"math"

	"github.com/sadopc/fokus/internal/store"
)

const dayKeyLayout = "2006-01-02"

// Stats accumulates per-day session counts, focused minutes and a
// running average focus score, and derives streaks from the day map.
type Stats struct {
	clock  Clock
	store  *store.Store
	report func(error)

	days             map[string]store.DayStats
	currentStreak    int
	longestStreak    int
	lifetimeSessions int
	lifetimeMinutes  int
}

func newStats(clock Clock, st *store.Store, report func(error)) *Stats {
	s := &Stats{
		clock:  clock,
		store:  st,
		report: report,
		days:   make(map[string]store.DayStats),
	}

	days, err := st.ListDayStats()
	if err != nil {
		report(err)
	}
	for _, d := range days {
		s.days[d.Date] = d
	}
	s.currentStreak = st.GetMetaInt("current_streak", 0)
	s.longestStreak = st.GetMetaInt("longest_streak", 0)
	s.lifetimeSessions = st.GetMetaInt("lifetime_sessions", 0)
	s.lifetimeMinutes = st.GetMetaInt("lifetime_minutes", 0)
	return s
}

func (s *Stats) todayKey() string {
	return s.clock.Now().UTC().Format(dayKeyLayout)
}

// RecordCompletedSession folds one finished work session into today's
// aggregates and the lifetime totals. The day average is an exact
// running mean over that day's sessions.
func (s *Stats) RecordCompletedSession(durationMinutes, focusScore int) {
	today := s.todayKey()
	day, ok := s.days[today]
	if !ok {
		day = store.DayStats{Date: today}
	}

	scoreSum := day.AverageFocusScore*day.SessionsCompleted + focusScore
	day.SessionsCompleted++
	day.TotalFocusMinutes += durationMinutes
	day.AverageFocusScore = int(math.Round(float64(scoreSum) / float64(day.SessionsCompleted)))

	s.days[today] = day
	s.lifetimeSessions++
	s.lifetimeMinutes += durationMinutes

	s.report(s.store.UpsertDayStats(day))
	_, err := s.store.RecordSession(durationMinutes, focusScore, s.clock.Now())
	s.report(err)
	s.persistMeta()
}

// RecalculateStreak walks backward from today counting consecutive
// days with at least one completed session. Idempotent.
func (s *Stats) RecalculateStreak() {
	streak := 0
	day := s.clock.Now().UTC()
	for {
		key := day.Format(dayKeyLayout)
		if s.days[key].SessionsCompleted == 0 {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}

	s.currentStreak = streak
	if streak > s.longestStreak {
		s.longestStreak = streak
	}
	s.persistMeta()
}

// WeeklyStats returns the last 7 calendar days oldest first, with
// zero-valued placeholders for days without activity.
func (s *Stats) WeeklyStats() []store.DayStats {
	week := make([]store.DayStats, 0, 7)
	now := s.clock.Now().UTC()
	for i := 6; i >= 0; i-- {
		key := now.AddDate(0, 0, -i).Format(dayKeyLayout)
		if d, ok := s.days[key]; ok {
			week = append(week, d)
		} else {
			week = append(week, store.DayStats{Date: key})
		}
	}
	return week
}

// Today returns today's aggregates, zero-valued if nothing is recorded.
func (s *Stats) Today() store.DayStats {
	key := s.todayKey()
	if d, ok := s.days[key]; ok {
		return d
	}
	return store.DayStats{Date: key}
}

// AverageFocusScore is the lifetime mean, weighted by sessions per day.
func (s *Stats) AverageFocusScore() int {
	sessions, sum := 0, 0
	for _, d := range s.days {
		sessions += d.SessionsCompleted
		sum += d.AverageFocusScore * d.SessionsCompleted
	}
	if sessions == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(sessions)))
}

func (s *Stats) CurrentStreak() int    { return s.currentStreak }
func (s *Stats) LongestStreak() int    { return s.longestStreak }
func (s *Stats) LifetimeSessions() int { return s.lifetimeSessions }
func (s *Stats) LifetimeMinutes() int  { return s.lifetimeMinutes }

// AllDays returns every recorded day sorted by date (export surface).
func (s *Stats) AllDays() []store.DayStats {
	days, err := s.store.ListDayStats()
	if err != nil {
		s.report(err)
		return nil
	}
	return days
}

func (s *Stats) persistMeta() {
	for key, v := range map[string]int{
		"current_streak":    s.currentStreak,
		"longest_streak":    s.longestStreak,
		"lifetime_sessions": s.lifetimeSessions,
		"lifetime_minutes":  s.lifetimeMinutes,
	} {
		s.report(s.store.SetMetaInt(key, v))
	}
}
