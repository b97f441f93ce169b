package store

import "time"

// DailyStats is the per-local-day aggregate of completed phases.
type DailyStats struct {
	Day              string // 2006-01-02, local date
	FocusSeconds     int64
	BreakSeconds     int64
	MicroBreakCount  int
	ForcedBreakCount int
	RatingSum        int
	RatingCount      int
}

// AverageRating reports the mean submitted efficiency score for the
// day, or 0 when none were submitted.
func (d DailyStats) AverageRating() float64 {
	if d.RatingCount == 0 {
		return 0
	}
	return float64(d.RatingSum) / float64(d.RatingCount)
}

// PhaseRecord is one completed phase in the history log.
type PhaseRecord struct {
	ID              int64
	Phase           string
	DurationSeconds int
	Rating          *int
	CompletedAt     time.Time
}

type Setting struct {
	Key   string
	Value string
}

// PhaseFilter narrows phase-log queries.
type PhaseFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}
