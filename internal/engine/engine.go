package engine

import "time"

// Engine is the unified timer scheduling core. It exclusively owns the
// timer state and mutates it only through its command methods and
// Tick. It is not safe for concurrent use: the host serializes all
// commands and ticks through one loop.
type Engine struct {
	settings Settings
	mode     Mode

	sched   *Scheduler
	history ScoreHistory
	adjust  Adjustment

	store    SnapshotStore
	notifier Notifier
	recorder PhaseRecorder
	emit     EventFunc
	now      func() time.Time

	phase    Phase
	timeLeft int // seconds, always within [0, total]
	total    int
	active   bool

	sessionStart time.Time
	phaseStart   time.Time
	lastTick     time.Time

	continuousFocusSecs int
	todayFocusSecs      int
	dayKey              string

	nextMicroBreakSecs int // offset from focus-phase start
	focusElapsedSecs   int
	microBreakFired    bool
	lastMicroBreak     time.Time
	microBreaksToday   int

	// Focus countdown suspended while a micro-break runs.
	suspendedTimeLeft int
	suspendedTotal    int

	pending *PendingRating
}

// Config wires the engine to its collaborators. Every field except
// Settings is optional.
type Config struct {
	Mode     Mode
	Settings Settings
	Snapshot *Snapshot // restored state, e.g. from SnapshotStore.LoadSnapshot
	Store    SnapshotStore
	Notifier Notifier
	Recorder PhaseRecorder
	Rand     Rand
	OnEvent  EventFunc
	Now      func() time.Time
}

// New builds an engine on validated settings, starting paused in a
// fresh Focus phase unless a snapshot is supplied.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Settings.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		settings: cfg.Settings,
		mode:     cfg.Mode,
		sched:    NewScheduler(cfg.Rand),
		adjust:   NeutralAdjustment(),
		store:    cfg.Store,
		notifier: cfg.Notifier,
		recorder: cfg.Recorder,
		emit:     cfg.OnEvent,
		now:      cfg.Now,
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.emit == nil {
		e.emit = func(Event) {}
	}

	now := e.now()
	e.dayKey = dayKey(now)

	if cfg.Snapshot != nil {
		e.restore(cfg.Snapshot)
		e.rolloverDay(now)
		return e, nil
	}

	e.beginPhase(PhaseFocus, now)
	return e, nil
}

// --- State accessors ---

func (e *Engine) Phase() Phase      { return e.phase }
func (e *Engine) Mode() Mode        { return e.mode }
func (e *Engine) TimeLeft() int     { return e.timeLeft }
func (e *Engine) TotalSeconds() int { return e.total }
func (e *Engine) Active() bool      { return e.active }

func (e *Engine) ContinuousFocusMinutes() int { return e.continuousFocusSecs / 60 }
func (e *Engine) TodayFocusMinutes() int      { return e.todayFocusSecs / 60 }
func (e *Engine) MicroBreaksToday() int       { return e.microBreaksToday }
func (e *Engine) Settings() Settings          { return e.settings }
func (e *Engine) Adjustment() Adjustment      { return e.adjust }

// Pending returns the completed phase awaiting a rating, or nil.
func (e *Engine) Pending() *PendingRating {
	if e.pending == nil {
		return nil
	}
	p := *e.pending
	return &p
}

// Progress reports phase completion in [0, 1].
func (e *Engine) Progress() float64 {
	if e.total == 0 {
		return 0
	}
	return float64(e.total-e.timeLeft) / float64(e.total)
}

// --- Clock ---

// Tick advances the timer by the wall-clock delta since the previous
// tick, so the countdown survives host suspension and timer skew.
// Ticks while paused are ignored.
func (e *Engine) Tick(now time.Time) {
	if !e.active {
		return
	}

	delta := 1
	if e.lastTick.IsZero() {
		e.lastTick = now
	} else {
		delta = int(now.Sub(e.lastTick) / time.Second)
		if delta <= 0 {
			// Sub-second or backwards tick; wait for more wall time.
			return
		}
		e.lastTick = e.lastTick.Add(time.Duration(delta) * time.Second)
	}

	e.rolloverDay(now)

	e.timeLeft -= delta
	if e.timeLeft < 0 {
		e.timeLeft = 0
	}
	switch e.phase {
	case PhaseFocus:
		e.continuousFocusSecs += delta
		e.todayFocusSecs += delta
		e.focusElapsedSecs += delta
	case PhaseMicroBreak:
		// A micro-break is not a real break: continuous focus keeps
		// accumulating toward the forced-break threshold.
		e.continuousFocusSecs += delta
	}

	e.emitEvent(EventTick)

	if e.phase == PhaseFocus && e.forcedBreakDue() {
		e.enterForcedBreak(now)
		return
	}
	if e.timeLeft == 0 {
		e.completePhase(now)
		return
	}
	if e.phase == PhaseFocus && e.microBreakDue() {
		e.fireMicroBreak(now)
	}
}

// --- Commands ---

// Start resumes tick consumption. Phase and remaining time are
// untouched.
func (e *Engine) Start() {
	if e.active {
		return
	}
	now := e.now()
	e.active = true
	e.lastTick = now
	if e.sessionStart.IsZero() {
		e.sessionStart = now
	}
	e.notifyPhase()
	e.emitEvent(EventPhaseChanged)
}

// Pause stops tick consumption immediately and snapshots state.
func (e *Engine) Pause() {
	if !e.active {
		return
	}
	e.active = false
	e.saveSnapshot()
	e.notifyPhase()
	e.emitEvent(EventPhaseChanged)
}

// Reset returns to a fresh, paused Focus phase with a newly computed
// nominal duration. Today's statistics and the efficiency history are
// kept.
func (e *Engine) Reset() {
	now := e.now()
	e.active = false
	e.continuousFocusSecs = 0
	e.suspendedTimeLeft = 0
	e.suspendedTotal = 0
	e.sessionStart = now
	e.transitionTo(PhaseFocus, now)
}

// SkipToNext forces an immediate transition, applying the same rules
// as a natural zero-time completion. Skipping Focus inside the
// forced-break window still routes to ForcedBreak.
func (e *Engine) SkipToNext() {
	e.completePhase(e.now())
}

// SwitchMode changes the scheduling mode and restarts on a fresh Focus
// phase. Optional replacement settings are validated first; on a
// ConfigError the mode and settings stay as they were.
func (e *Engine) SwitchMode(mode Mode, settings *Settings) error {
	if settings != nil {
		if err := settings.Validate(); err != nil {
			return err
		}
		e.settings = *settings
	}
	e.mode = mode
	e.active = false
	e.continuousFocusSecs = 0
	e.suspendedTimeLeft = 0
	e.suspendedTotal = 0
	e.transitionTo(PhaseFocus, e.now())
	return nil
}

// UpdateSettings validates and applies new settings. They take effect
// when the next phase's duration is computed; the running countdown is
// untouched. Invalid settings are rejected and the previous ones stay
// active.
func (e *Engine) UpdateSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	e.settings = s
	e.saveSnapshot()
	return nil
}

// SubmitEfficiencyRating attaches a 0–100 score to the most recently
// completed phase and feeds it to the adaptive history. A call with no
// rating pending is a no-op: ratings are advisory.
func (e *Engine) SubmitEfficiencyRating(score int) {
	if e.pending == nil {
		return
	}
	e.history.Push(score)
	if e.recorder != nil {
		e.recorder.OnEfficiencyRating(clampScore(score), e.now())
	}
	e.pending = nil
	e.saveSnapshot()
}

// TriggerMicroBreak manually interrupts the current Focus phase.
// Outside Focus it is a no-op.
func (e *Engine) TriggerMicroBreak() {
	if e.phase != PhaseFocus {
		return
	}
	e.fireMicroBreak(e.now())
}

// --- Transitions ---

func (e *Engine) forcedBreakDue() bool {
	if e.mode != ModeSmart {
		return false
	}
	return e.continuousFocusSecs >= e.settings.Smart.ForcedBreakThresholdMinutes*60
}

func (e *Engine) microBreakDue() bool {
	if e.microBreakFired || !microBreaksEnabled(e.mode, e.settings) {
		return false
	}
	return e.focusElapsedSecs >= e.nextMicroBreakSecs
}

// completePhase records the finished phase and routes to the next one.
// Transitions are atomic: state is fully consistent before any
// collaborator or event sees it.
func (e *Engine) completePhase(now time.Time) {
	done := e.phase
	elapsed := e.total - e.timeLeft

	if e.recorder != nil {
		e.recorder.OnPhaseComplete(done, elapsed, now)
	}
	if done.Ratable() {
		e.pending = &PendingRating{Phase: done, DurationSeconds: elapsed}
	}

	switch done {
	case PhaseFocus:
		if e.forcedBreakDue() {
			e.enterForcedBreakLocked(now)
		} else {
			e.continuousFocusSecs = 0
			e.transitionTo(PhaseBreak, now)
		}
	case PhaseMicroBreak:
		e.resumeFocus(now)
	default: // Break, ForcedBreak
		e.continuousFocusSecs = 0
		e.transitionTo(PhaseFocus, now)
	}

	if done.Ratable() {
		e.emitEvent(EventRatingRequested)
	}
}

// enterForcedBreak preempts a running Focus phase once the continuous
// focus threshold is crossed, recording the partial focus time.
func (e *Engine) enterForcedBreak(now time.Time) {
	elapsed := e.total - e.timeLeft
	if e.recorder != nil {
		e.recorder.OnPhaseComplete(PhaseFocus, elapsed, now)
	}
	e.pending = &PendingRating{Phase: PhaseFocus, DurationSeconds: elapsed}
	e.enterForcedBreakLocked(now)
	e.emitEvent(EventRatingRequested)
}

func (e *Engine) enterForcedBreakLocked(now time.Time) {
	e.continuousFocusSecs = 0
	e.suspendedTimeLeft = 0
	e.suspendedTotal = 0
	e.transitionTo(PhaseForcedBreak, now)
	e.emitEvent(EventForcedBreakEntered)
}

// fireMicroBreak suspends the focus countdown (push) and starts a
// sampled micro-break. The focus phase's remaining time is restored
// untouched when the micro-break ends.
func (e *Engine) fireMicroBreak(now time.Time) {
	e.suspendedTimeLeft = e.timeLeft
	e.suspendedTotal = e.total
	e.microBreakFired = true
	e.lastMicroBreak = now
	e.microBreaksToday++

	e.phase = PhaseMicroBreak
	e.total = e.sched.Duration(e.mode, e.settings)
	e.timeLeft = e.total
	e.phaseStart = now

	e.saveSnapshot()
	e.notifyPhase()
	e.emitEvent(EventPhaseChanged)
}

// resumeFocus pops the suspended focus countdown after a micro-break.
func (e *Engine) resumeFocus(now time.Time) {
	e.phase = PhaseFocus
	e.timeLeft = e.suspendedTimeLeft
	e.total = e.suspendedTotal
	e.suspendedTimeLeft = 0
	e.suspendedTotal = 0
	e.phaseStart = now

	e.saveSnapshot()
	e.notifyPhase()
	e.emitEvent(EventPhaseChanged)
}

// transitionTo starts a new phase with a freshly computed, adjusted
// duration and resampled micro-break schedule.
func (e *Engine) transitionTo(phase Phase, now time.Time) {
	e.beginPhase(phase, now)
	e.saveSnapshot()
	e.notifyPhase()
	e.emitEvent(EventPhaseChanged)
}

func (e *Engine) beginPhase(phase Phase, now time.Time) {
	e.phase = phase
	e.total = e.adjustedDuration(phase, now)
	e.timeLeft = e.total
	e.phaseStart = now

	if phase == PhaseFocus {
		e.focusElapsedSecs = 0
		e.microBreakFired = false
		if microBreaksEnabled(e.mode, e.settings) {
			e.nextMicroBreakSecs = e.sched.NextInterval(e.mode, e.settings)
		}
	}
}

// adjustedDuration applies adaptive and circadian multipliers to the
// nominal duration. The efficiency step advances the persistent
// multipliers once per cycle, at Focus start; circadian bias is layered
// on transiently so peak hours do not ratchet the stored factors.
func (e *Engine) adjustedDuration(phase Phase, now time.Time) int {
	secs := NominalDuration(phase, e.mode, e.settings)
	if e.mode != ModeSmart {
		return secs
	}

	smart := e.settings.Smart
	if phase == PhaseFocus {
		e.adjust = StepEfficiency(e.adjust, &e.history, smart, now)
	}
	eff := ApplyCircadian(e.adjust, smart, now)

	switch phase {
	case PhaseFocus:
		secs = int(float64(secs) * eff.Focus)
		if limit := smart.MaxContinuousFocusMinutes * 60; secs > limit {
			secs = limit
		}
	case PhaseBreak:
		secs = int(float64(secs) * eff.Break)
	}
	if secs < 1 {
		secs = 1
	}
	return secs
}

// rolloverDay resets the per-day counters exactly once per local-day
// boundary.
func (e *Engine) rolloverDay(now time.Time) {
	key := dayKey(now)
	if key == e.dayKey {
		return
	}
	e.dayKey = key
	e.todayFocusSecs = 0
	e.microBreaksToday = 0
}

// --- Collaborator plumbing ---

func (e *Engine) saveSnapshot() {
	if e.store == nil {
		return
	}
	// Best effort: the store logs its own failures.
	_ = e.store.SaveSnapshot(e.Snapshot())
}

func (e *Engine) notifyPhase() {
	if e.notifier == nil {
		return
	}
	e.notifier.NotifyPhaseChange(e.phase, e.active)
}

func (e *Engine) emitEvent(kind EventKind) {
	e.emit(Event{
		Kind:     kind,
		Phase:    e.phase,
		TimeLeft: e.timeLeft,
		Total:    e.total,
		Active:   e.active,
	})
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
