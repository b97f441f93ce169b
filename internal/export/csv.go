package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/fberk/focusflow/internal/store"
)

// ToCSV writes the completed-phase history to path.
func ToCSV(phases []store.PhaseRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Phase", "Duration (s)", "Duration", "Rating", "Completed At"}); err != nil {
		return err
	}

	for _, p := range phases {
		rating := ""
		if p.Rating != nil {
			rating = fmt.Sprintf("%d", *p.Rating)
		}
		row := []string{
			fmt.Sprintf("%d", p.ID),
			p.Phase,
			fmt.Sprintf("%d", p.DurationSeconds),
			formatDuration(int64(p.DurationSeconds)),
			rating,
			p.CompletedAt.Local().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
