package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/fokus/internal/store"
)

// Payload is the complete data snapshot offered to the user.
type Payload struct {
	Tasks            []store.Task          `json:"tasks"`
	DailyStats       []store.DayStats      `json:"daily_stats"`
	Sessions         []store.SessionRecord `json:"sessions,omitempty"`
	LifetimeSessions int                   `json:"total_lifetime_sessions"`
	LifetimeMinutes  int                   `json:"total_lifetime_minutes"`
	CurrentStreak    int                   `json:"current_streak"`
	LongestStreak    int                   `json:"longest_streak"`
}

type jsonExport struct {
	ExportedAt string `json:"exported_at"`
	Payload
}

func ToJSON(p Payload, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Payload:    p,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
