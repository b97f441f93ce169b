package store

import (
	"database/sql"
	"fmt"
	"time"
)

// AppendPhase logs a completed phase and returns its row id, so a
// later efficiency rating can be attached.
func (s *Store) AppendPhase(phase string, durationSeconds int, completedAt time.Time) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO phase_log (phase, duration, completed_at) VALUES (?, ?, ?)`,
		phase, durationSeconds, completedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("append phase: %w", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// RatePhase attaches an efficiency score to a logged phase.
func (s *Store) RatePhase(id int64, score int) error {
	_, err := s.db.Exec(`UPDATE phase_log SET rating = ? WHERE id = ?`, score, id)
	if err != nil {
		return fmt.Errorf("rate phase %d: %w", id, err)
	}
	return nil
}

// ListPhases returns logged phases matching the filter, most recent
// first.
func (s *Store) ListPhases(f PhaseFilter) ([]PhaseRecord, error) {
	q := `SELECT id, phase, duration, rating, completed_at FROM phase_log`
	var args []any
	var where []string

	if f.From != nil {
		where = append(where, `completed_at >= ?`)
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		where = append(where, `completed_at < ?`)
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}
	for i, w := range where {
		if i == 0 {
			q += ` WHERE ` + w
		} else {
			q += ` AND ` + w
		}
	}
	q += ` ORDER BY completed_at DESC, id DESC`
	if f.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list phases: %w", err)
	}
	defer rows.Close()

	var phases []PhaseRecord
	for rows.Next() {
		var p PhaseRecord
		var rating sql.NullInt64
		var completedAt string
		if err := rows.Scan(&p.ID, &p.Phase, &p.DurationSeconds, &rating, &completedAt); err != nil {
			return nil, err
		}
		if rating.Valid {
			r := int(rating.Int64)
			p.Rating = &r
		}
		p.CompletedAt, _ = time.Parse(time.RFC3339, completedAt)
		phases = append(phases, p)
	}
	return phases, rows.Err()
}
