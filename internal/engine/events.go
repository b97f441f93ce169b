package engine

import "time"

// EventKind identifies what the engine is reporting to the host.
type EventKind int

const (
	// EventTick is the per-second time-left update.
	EventTick EventKind = iota
	// EventPhaseChanged fires on any phase transition and on
	// start/pause (the active flag changed).
	EventPhaseChanged
	// EventRatingRequested asks the host to collect an efficiency
	// score for the phase that just completed.
	EventRatingRequested
	// EventForcedBreakEntered fires when continuous focus crossed the
	// forced-break threshold.
	EventForcedBreakEntered
)

// Event is a read-only view of the engine state at emit time.
type Event struct {
	Kind     EventKind
	Phase    Phase
	TimeLeft int
	Total    int
	Active   bool
}

// EventFunc receives engine events. Called synchronously from the
// command/tick path; keep it cheap.
type EventFunc func(Event)

// Notifier delivers fire-and-forget phase-change notifications to the
// host environment. The engine never waits on it.
type Notifier interface {
	NotifyPhaseChange(phase Phase, active bool)
}

// SnapshotStore persists engine snapshots, best effort. Failures are
// logged by the implementation and never surface into the engine.
type SnapshotStore interface {
	LoadSnapshot() (*Snapshot, error)
	SaveSnapshot(*Snapshot) error
}

// PhaseRecorder accumulates completed phases and submitted efficiency
// ratings into daily statistics.
type PhaseRecorder interface {
	OnPhaseComplete(phase Phase, durationSeconds int, at time.Time)
	OnEfficiencyRating(score int, at time.Time)
}
