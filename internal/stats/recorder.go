// Package stats accumulates completed timer phases into per-day
// aggregates and a phase history log.
package stats

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fberk/focusflow/internal/engine"
	"github.com/fberk/focusflow/internal/store"
)

// Recorder is the engine's phase-completion collaborator. It owns the
// running aggregate for the current local day and persists every
// update through the store, best effort: storage failures are logged
// and the in-memory aggregate stays authoritative.
type Recorder struct {
	store *store.Store
	log   *logrus.Logger

	day         string
	agg         store.DailyStats
	lastPhaseID int64 // phase_log row awaiting a rating, 0 when none
}

// New loads today's aggregate (if any) so restarts keep counting into
// the same day.
func New(s *store.Store, log *logrus.Logger) *Recorder {
	if log == nil {
		log = logrus.New()
	}
	r := &Recorder{store: s, log: log}
	r.day = store.DayKey(time.Now())
	if s != nil {
		agg, err := s.GetDailyStats(r.day)
		if err != nil {
			log.WithError(err).Warn("load daily stats")
			agg = store.DailyStats{Day: r.day}
		}
		r.agg = agg
	} else {
		r.agg = store.DailyStats{Day: r.day}
	}
	return r
}

// OnPhaseComplete appends the finished phase to today's aggregate and
// the phase log. A completion on a new local date first flushes the
// old aggregate, then starts the new day from zero.
func (r *Recorder) OnPhaseComplete(phase engine.Phase, durationSeconds int, at time.Time) {
	r.rollover(at)

	switch phase {
	case engine.PhaseFocus:
		r.agg.FocusSeconds += int64(durationSeconds)
	case engine.PhaseBreak, engine.PhaseForcedBreak:
		r.agg.BreakSeconds += int64(durationSeconds)
		if phase == engine.PhaseForcedBreak {
			r.agg.ForcedBreakCount++
		}
	case engine.PhaseMicroBreak:
		r.agg.MicroBreakCount++
	}

	r.persist()

	if r.store != nil {
		id, err := r.store.AppendPhase(phase.String(), durationSeconds, at)
		if err != nil {
			r.log.WithError(err).Warn("append phase log")
			return
		}
		if phase.Ratable() {
			r.lastPhaseID = id
		}
	}
}

// OnEfficiencyRating attaches the user's score to the day's aggregate
// and to the most recently logged ratable phase.
func (r *Recorder) OnEfficiencyRating(score int, at time.Time) {
	r.rollover(at)

	r.agg.RatingSum += score
	r.agg.RatingCount++
	r.persist()

	if r.store != nil && r.lastPhaseID != 0 {
		if err := r.store.RatePhase(r.lastPhaseID, score); err != nil {
			r.log.WithError(err).Warn("rate phase")
		}
		r.lastPhaseID = 0
	}
}

// Today returns a copy of the running aggregate.
func (r *Recorder) Today() store.DailyStats {
	return r.agg
}

func (r *Recorder) rollover(at time.Time) {
	key := store.DayKey(at)
	if key == r.day {
		return
	}
	// Yesterday's totals were persisted on every update; just start
	// the new day from zero.
	r.day = key
	r.agg = store.DailyStats{Day: key}
}

func (r *Recorder) persist() {
	if r.store == nil {
		return
	}
	if err := r.store.UpsertDailyStats(r.agg); err != nil {
		r.log.WithError(err).Warn("persist daily stats")
	}
}
