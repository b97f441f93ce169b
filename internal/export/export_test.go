package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fberk/focusflow/internal/store"
)

func samplePhases() []store.PhaseRecord {
	rating := 85
	return []store.PhaseRecord{
		{
			ID:              2,
			Phase:           "break",
			DurationSeconds: 300,
			CompletedAt:     time.Date(2024, 3, 12, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:              1,
			Phase:           "focus",
			DurationSeconds: 1500,
			Rating:          &rating,
			CompletedAt:     time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC),
		},
	}
}

func sampleDays() []store.DailyStats {
	return []store.DailyStats{
		{
			Day:             "2024-03-12",
			FocusSeconds:    1500,
			BreakSeconds:    300,
			MicroBreakCount: 2,
			RatingSum:       85,
			RatingCount:     1,
		},
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ToCSV(samplePhases(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 { // header + 2 phases
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][1] != "Phase" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "break" || rows[2][1] != "focus" {
		t.Fatalf("phases out of order: %v / %v", rows[1], rows[2])
	}
	if rows[2][2] != "1500" || rows[2][3] != "00:25:00" {
		t.Fatalf("wrong duration columns: %v", rows[2])
	}
	if rows[2][4] != "85" {
		t.Fatalf("rating column = %q, want 85", rows[2][4])
	}
	if rows[1][4] != "" {
		t.Fatalf("unrated phase should have empty rating, got %q", rows[1][4])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	rows, _ := csv.NewReader(f).ReadAll()
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(samplePhases(), "/nonexistent-dir/out.csv")
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ToJSON(samplePhases(), sampleDays(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got jsonExport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Count != 2 || len(got.Phases) != 2 {
		t.Fatalf("expected 2 phases, got count=%d len=%d", got.Count, len(got.Phases))
	}
	if got.Phases[1].Phase != "focus" || got.Phases[1].DurationSec != 1500 {
		t.Fatalf("unexpected phase: %+v", got.Phases[1])
	}
	if got.Phases[1].Rating == nil || *got.Phases[1].Rating != 85 {
		t.Fatalf("rating lost: %+v", got.Phases[1])
	}
	if got.Phases[0].Rating != nil {
		t.Fatal("unrated phase gained a rating")
	}
	if len(got.Days) != 1 || got.Days[0].Day != "2024-03-12" {
		t.Fatalf("unexpected days: %+v", got.Days)
	}
	if got.Days[0].AverageRating != 85 {
		t.Fatalf("average rating = %f, want 85", got.Days[0].AverageRating)
	}
	if got.ExportedAt == "" {
		t.Fatal("exported_at missing")
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := ToJSON(nil, nil, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var got jsonExport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Count != 0 {
		t.Fatalf("expected count 0, got %d", got.Count)
	}
}

// ============================================================
// Formatting
// ============================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{1500, "00:25:00"},
		{3661, "01:01:01"},
		{7325, "02:02:05"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.secs); got != tt.want {
			t.Errorf("formatDuration(%d) = %s, want %s", tt.secs, got, tt.want)
		}
	}
}
