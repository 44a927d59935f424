package store

import (
	"database/sql"
	"fmt"
	"time"
)

func (s *Store) UpsertDayStats(d DayStats) error {
	_, err := s.db.Exec(
		`INSERT INTO day_stats (date, sessions_completed, total_focus_minutes, average_focus_score)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
		   sessions_completed = excluded.sessions_completed,
		   total_focus_minutes = excluded.total_focus_minutes,
		   average_focus_score = excluded.average_focus_score`,
		d.Date, d.SessionsCompleted, d.TotalFocusMinutes, d.AverageFocusScore,
	)
	if err != nil {
		return fmt.Errorf("upsert day stats %s: %w", d.Date, err)
	}
	return nil
}

func (s *Store) GetDayStats(date string) (*DayStats, error) {
	d := &DayStats{}
	err := s.db.QueryRow(
		`SELECT date, sessions_completed, total_focus_minutes, average_focus_score
		 FROM day_stats WHERE date = ?`, date,
	).Scan(&d.Date, &d.SessionsCompleted, &d.TotalFocusMinutes, &d.AverageFocusScore)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get day stats %s: %w", date, err)
	}
	return d, nil
}

func (s *Store) ListDayStats() ([]DayStats, error) {
	rows, err := s.db.Query(
		`SELECT date, sessions_completed, total_focus_minutes, average_focus_score
		 FROM day_stats ORDER BY date`,
	)
	if err != nil {
		return nil, fmt.Errorf("list day stats: %w", err)
	}
	defer rows.Close()

	var days []DayStats
	for rows.Next() {
		var d DayStats
		if err := rows.Scan(&d.Date, &d.SessionsCompleted, &d.TotalFocusMinutes, &d.AverageFocusScore); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// RecordSession appends one completed work session to the history log.
func (s *Store) RecordSession(durationMinutes, focusScore int, completedAt time.Time) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO sessions (duration_minutes, focus_score, completed_at) VALUES (?, ?, ?)`,
		durationMinutes, focusScore, completedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("record session: %w", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (s *Store) ListSessions(limit int) ([]SessionRecord, error) {
	query := `SELECT id, duration_minutes, focus_score, completed_at FROM sessions ORDER BY completed_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var r SessionRecord
		var completedAt string
		if err := rows.Scan(&r.ID, &r.DurationMinutes, &r.FocusScore, &completedAt); err != nil {
			return nil, err
		}
		r.CompletedAt, _ = time.Parse(time.RFC3339, completedAt)
		records = append(records, r)
	}
	return records, rows.Err()
}
