package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/fokus/internal/store"
)

// ToCSV writes per-day statistics, one row per recorded day sorted by
// date ascending.
func ToCSV(days []store.DayStats, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Date", "Sessions", "Focus Minutes", "Avg Focus Score"}); err != nil {
		return err
	}

	for _, d := range days {
		row := []string{
			d.Date,
			fmt.Sprintf("%d", d.SessionsCompleted),
			fmt.Sprintf("%d", d.TotalFocusMinutes),
			fmt.Sprintf("%d", d.AverageFocusScore),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
