package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fberk/focusflow/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Phases     []jsonPhase `json:"phases"`
	Days       []jsonDay   `json:"days,omitempty"`
}

type jsonPhase struct {
	ID          int64  `json:"id"`
	Phase       string `json:"phase"`
	DurationSec int    `json:"duration_seconds"`
	Duration    string `json:"duration"`
	Rating      *int   `json:"rating,omitempty"`
	CompletedAt string `json:"completed_at"`
}

type jsonDay struct {
	Day              string  `json:"day"`
	FocusSeconds     int64   `json:"focus_seconds"`
	BreakSeconds     int64   `json:"break_seconds"`
	MicroBreakCount  int     `json:"micro_break_count"`
	ForcedBreakCount int     `json:"forced_break_count"`
	AverageRating    float64 `json:"average_rating"`
}

// ToJSON writes the completed-phase history plus daily aggregates to
// path.
func ToJSON(phases []store.PhaseRecord, days []store.DailyStats, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(phases),
	}

	for _, p := range phases {
		export.Phases = append(export.Phases, jsonPhase{
			ID:          p.ID,
			Phase:       p.Phase,
			DurationSec: p.DurationSeconds,
			Duration:    formatDuration(int64(p.DurationSeconds)),
			Rating:      p.Rating,
			CompletedAt: p.CompletedAt.Local().Format(time.RFC3339),
		})
	}

	for _, d := range days {
		export.Days = append(export.Days, jsonDay{
			Day:              d.Day,
			FocusSeconds:     d.FocusSeconds,
			BreakSeconds:     d.BreakSeconds,
			MicroBreakCount:  d.MicroBreakCount,
			ForcedBreakCount: d.ForcedBreakCount,
			AverageRating:    d.AverageRating(),
		})
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
