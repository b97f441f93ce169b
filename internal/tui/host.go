package tui

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/fberk/focusflow/internal/engine"
	"github.com/fberk/focusflow/internal/store"
)

// snapshotStore bridges the engine's snapshot interface to the SQLite
// store. Persistence is best effort: failures are logged here and the
// running timer stays authoritative.
type snapshotStore struct {
	store *store.Store
	log   *logrus.Logger
}

func (s snapshotStore) SaveSnapshot(snap *engine.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		s.log.WithError(err).Warn("marshal snapshot")
		return nil
	}
	if err := s.store.SaveSnapshot(data); err != nil {
		s.log.WithError(err).Warn("save snapshot")
	}
	return nil
}

func (s snapshotStore) LoadSnapshot() (*engine.Snapshot, error) {
	data, err := s.store.LoadSnapshot()
	if err != nil {
		s.log.WithError(err).Warn("load snapshot")
		return nil, nil
	}
	if data == nil {
		return nil, nil
	}
	var snap engine.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.WithError(err).Warn("decode snapshot; starting fresh")
		return nil, nil
	}
	return &snap, nil
}

// logNotifier records phase changes to the log file. Desktop
// notification backends would hang off the same interface.
type logNotifier struct {
	log *logrus.Logger
}

func (n logNotifier) NotifyPhaseChange(phase engine.Phase, active bool) {
	n.log.WithFields(logrus.Fields{
		"phase":  phase.String(),
		"active": active,
	}).Info("phase change")
}

// eventQueue buffers engine events emitted synchronously during a
// command or tick, drained by the app after each engine call.
type eventQueue struct {
	items []engine.Event
}

func (q *eventQueue) push(ev engine.Event) {
	q.items = append(q.items, ev)
}

func (q *eventQueue) drain() []engine.Event {
	items := q.items
	q.items = nil
	return items
}

// loadSettings reads the persisted engine settings and mode, falling
// back to defaults for a fresh database.
func loadSettings(s *store.Store, log *logrus.Logger) (engine.Settings, engine.Mode) {
	settings := engine.DefaultSettings()
	mode := engine.ModeClassic

	raw, err := s.GetSettingDefault(store.KeyTimerSettings, "")
	if err != nil {
		log.WithError(err).Warn("load settings")
	} else if raw != "" {
		var loaded engine.Settings
		if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
			log.WithError(err).Warn("decode settings; using defaults")
		} else if err := loaded.Validate(); err != nil {
			log.WithError(err).Warn("stored settings invalid; using defaults")
		} else {
			settings = loaded
		}
	}

	m, err := s.GetSettingDefault(store.KeyTimerMode, "classic")
	if err != nil {
		log.WithError(err).Warn("load mode")
	} else if m == "smart" {
		mode = engine.ModeSmart
	}

	return settings, mode
}

// persistSettings stores the validated settings and mode for the next
// run.
func persistSettings(s *store.Store, log *logrus.Logger, settings engine.Settings, mode engine.Mode) {
	data, err := json.Marshal(settings)
	if err != nil {
		log.WithError(err).Warn("marshal settings")
		return
	}
	if err := s.SetSetting(store.KeyTimerSettings, string(data)); err != nil {
		log.WithError(err).Warn("persist settings")
	}
	if err := s.SetSetting(store.KeyTimerMode, mode.String()); err != nil {
		log.WithError(err).Warn("persist mode")
	}
}
