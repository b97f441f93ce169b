package stats

import (
	"testing"
	"time"

	"github.com/fberk/focusflow/internal/engine"
	"github.com/fberk/focusflow/internal/store"
)

func newTestRecorder(t *testing.T) (*Recorder, *store.Store) {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s, nil), s
}

// ============================================================
// Aggregation
// ============================================================

func TestRecorderAggregatesPhases(t *testing.T) {
	r, s := newTestRecorder(t)
	at := time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)

	r.OnPhaseComplete(engine.PhaseFocus, 1500, at)
	r.OnPhaseComplete(engine.PhaseBreak, 300, at)
	r.OnPhaseComplete(engine.PhaseMicroBreak, 90, at)
	r.OnPhaseComplete(engine.PhaseForcedBreak, 900, at)

	agg := r.Today()
	if agg.FocusSeconds != 1500 {
		t.Fatalf("focus seconds = %d, want 1500", agg.FocusSeconds)
	}
	// Forced breaks count as break time too.
	if agg.BreakSeconds != 1200 {
		t.Fatalf("break seconds = %d, want 1200", agg.BreakSeconds)
	}
	if agg.MicroBreakCount != 1 || agg.ForcedBreakCount != 1 {
		t.Fatalf("counts = micro %d forced %d, want 1/1", agg.MicroBreakCount, agg.ForcedBreakCount)
	}

	// Every update is persisted immediately.
	stored, err := s.GetDailyStats(store.DayKey(at))
	if err != nil {
		t.Fatal(err)
	}
	if stored != agg {
		t.Fatalf("persisted row %+v differs from aggregate %+v", stored, agg)
	}
}

func TestRecorderLogsEveryPhase(t *testing.T) {
	r, s := newTestRecorder(t)
	at := time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)

	r.OnPhaseComplete(engine.PhaseFocus, 1500, at)
	r.OnPhaseComplete(engine.PhaseMicroBreak, 60, at.Add(time.Minute))

	phases, err := s.ListPhases(store.PhaseFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(phases) != 2 {
		t.Fatalf("expected 2 logged phases, got %d", len(phases))
	}
	if phases[0].Phase != "micro_break" || phases[1].Phase != "focus" {
		t.Fatalf("wrong phases: %+v", phases)
	}
}

// ============================================================
// Ratings
// ============================================================

func TestRecorderAttachesRatingToPhaseLog(t *testing.T) {
	r, s := newTestRecorder(t)
	at := time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)

	r.OnPhaseComplete(engine.PhaseFocus, 1500, at)
	r.OnEfficiencyRating(85, at.Add(time.Second))

	agg := r.Today()
	if agg.RatingSum != 85 || agg.RatingCount != 1 {
		t.Fatalf("rating aggregate = %d/%d, want 85/1", agg.RatingSum, agg.RatingCount)
	}

	phases, _ := s.ListPhases(store.PhaseFilter{})
	if phases[0].Rating == nil || *phases[0].Rating != 85 {
		t.Fatalf("rating not attached to phase log: %+v", phases[0])
	}
}

func TestRecorderRatingSkipsUnratablePhases(t *testing.T) {
	r, s := newTestRecorder(t)
	at := time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)

	r.OnPhaseComplete(engine.PhaseFocus, 1500, at)
	// A micro-break in between must not steal the rating target.
	r.OnPhaseComplete(engine.PhaseMicroBreak, 60, at.Add(time.Minute))
	r.OnEfficiencyRating(70, at.Add(2*time.Minute))

	phases, _ := s.ListPhases(store.PhaseFilter{})
	for _, p := range phases {
		if p.Phase == "focus" {
			if p.Rating == nil || *p.Rating != 70 {
				t.Fatalf("focus phase missing rating: %+v", p)
			}
		}
		if p.Phase == "micro_break" && p.Rating != nil {
			t.Fatalf("micro-break gained a rating: %+v", p)
		}
	}
}

func TestRecorderRatingWithoutPhase(t *testing.T) {
	r, s := newTestRecorder(t)
	at := time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)

	r.OnEfficiencyRating(50, at)

	agg := r.Today()
	if agg.RatingSum != 50 || agg.RatingCount != 1 {
		t.Fatalf("rating aggregate = %d/%d, want 50/1", agg.RatingSum, agg.RatingCount)
	}
	phases, _ := s.ListPhases(store.PhaseFilter{})
	if phases != nil {
		t.Fatal("rating without a phase created log rows")
	}
}

func TestRecorderRatingConsumedOnce(t *testing.T) {
	r, s := newTestRecorder(t)
	at := time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)

	r.OnPhaseComplete(engine.PhaseFocus, 1500, at)
	r.OnEfficiencyRating(85, at)
	r.OnEfficiencyRating(40, at) // nothing left to attach to

	phases, _ := s.ListPhases(store.PhaseFilter{})
	if *phases[0].Rating != 85 {
		t.Fatalf("second rating overwrote the first: %d", *phases[0].Rating)
	}
}

// ============================================================
// Day boundaries
// ============================================================

func TestRecorderDayRollover(t *testing.T) {
	r, s := newTestRecorder(t)
	beforeMidnight := time.Date(2024, 3, 12, 23, 59, 59, 0, time.UTC)
	afterMidnight := time.Date(2024, 3, 13, 0, 0, 1, 0, time.UTC)

	r.OnPhaseComplete(engine.PhaseFocus, 1500, beforeMidnight)
	r.OnPhaseComplete(engine.PhaseFocus, 600, afterMidnight)

	day1, _ := s.GetDailyStats("2024-03-12")
	day2, _ := s.GetDailyStats("2024-03-13")
	if day1.FocusSeconds != 1500 {
		t.Fatalf("day 1 focus = %d, want 1500", day1.FocusSeconds)
	}
	if day2.FocusSeconds != 600 {
		t.Fatalf("day 2 focus = %d, want 600", day2.FocusSeconds)
	}
	if r.Today().Day != "2024-03-13" {
		t.Fatalf("recorder still on %s", r.Today().Day)
	}
}

func TestRecorderResumesExistingDay(t *testing.T) {
	s, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	now := time.Now()
	today := store.DayKey(now)
	s.UpsertDailyStats(store.DailyStats{Day: today, FocusSeconds: 1000})

	// A fresh recorder keeps counting into the same day.
	r := New(s, nil)
	r.OnPhaseComplete(engine.PhaseFocus, 500, now)

	if got := r.Today().FocusSeconds; got != 1500 {
		t.Fatalf("resumed focus = %d, want 1500", got)
	}
}

// ============================================================
// Degraded operation
// ============================================================

func TestRecorderWithoutStore(t *testing.T) {
	r := New(nil, nil)
	at := time.Now()

	r.OnPhaseComplete(engine.PhaseFocus, 1500, at)
	r.OnEfficiencyRating(90, at)

	agg := r.Today()
	if agg.FocusSeconds != 1500 || agg.RatingCount != 1 {
		t.Fatalf("in-memory aggregate broken without store: %+v", agg)
	}
}
