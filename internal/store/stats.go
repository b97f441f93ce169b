package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// UpsertDailyStats writes the full aggregate row for a day.
func (s *Store) UpsertDailyStats(d DailyStats) error {
	_, err := s.db.Exec(
		`INSERT INTO daily_stats (day, focus_seconds, break_seconds, micro_break_count, forced_break_count, rating_sum, rating_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(day) DO UPDATE SET
			focus_seconds      = excluded.focus_seconds,
			break_seconds      = excluded.break_seconds,
			micro_break_count  = excluded.micro_break_count,
			forced_break_count = excluded.forced_break_count,
			rating_sum         = excluded.rating_sum,
			rating_count       = excluded.rating_count`,
		d.Day, d.FocusSeconds, d.BreakSeconds, d.MicroBreakCount, d.ForcedBreakCount, d.RatingSum, d.RatingCount,
	)
	if err != nil {
		return fmt.Errorf("upsert daily stats %s: %w", d.Day, err)
	}
	return nil
}

// GetDailyStats returns the aggregate for a day key, or a zero row
// when nothing was recorded that day.
func (s *Store) GetDailyStats(day string) (DailyStats, error) {
	d := DailyStats{Day: day}
	err := s.db.QueryRow(
		`SELECT focus_seconds, break_seconds, micro_break_count, forced_break_count, rating_sum, rating_count
		 FROM daily_stats WHERE day = ?`, day,
	).Scan(&d.FocusSeconds, &d.BreakSeconds, &d.MicroBreakCount, &d.ForcedBreakCount, &d.RatingSum, &d.RatingCount)
	if errors.Is(err, sql.ErrNoRows) {
		return DailyStats{Day: day}, nil
	}
	if err != nil {
		return DailyStats{}, fmt.Errorf("get daily stats %s: %w", day, err)
	}
	return d, nil
}

// ListDailyStats returns day rows in [from, to), ascending by day.
// Bounds are day keys (2006-01-02).
func (s *Store) ListDailyStats(from, to string) ([]DailyStats, error) {
	rows, err := s.db.Query(
		`SELECT day, focus_seconds, break_seconds, micro_break_count, forced_break_count, rating_sum, rating_count
		 FROM daily_stats WHERE day >= ? AND day < ? ORDER BY day`, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("list daily stats: %w", err)
	}
	defer rows.Close()

	var stats []DailyStats
	for rows.Next() {
		var d DailyStats
		if err := rows.Scan(&d.Day, &d.FocusSeconds, &d.BreakSeconds, &d.MicroBreakCount, &d.ForcedBreakCount, &d.RatingSum, &d.RatingCount); err != nil {
			return nil, err
		}
		stats = append(stats, d)
	}
	return stats, rows.Err()
}

// DayKey formats a timestamp as the local-date key used by daily_stats.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
