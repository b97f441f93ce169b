package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SaveSnapshot replaces the single persisted timer snapshot.
func (s *Store) SaveSnapshot(data []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO snapshots (id, data, saved_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		string(data), now,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the persisted snapshot, or nil when none has
// been saved yet.
func (s *Store) LoadSnapshot() ([]byte, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM snapshots WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return []byte(data), nil
}

// ClearSnapshot drops the persisted snapshot.
func (s *Store) ClearSnapshot() error {
	_, err := s.db.Exec(`DELETE FROM snapshots WHERE id = 1`)
	return err
}
