package engine

import "time"

// PendingRating marks a completed phase awaiting the user's efficiency
// self-report. Purely advisory: it never blocks the clock.
type PendingRating struct {
	Phase           Phase `json:"phase"`
	DurationSeconds int   `json:"duration_seconds"`
}

// Snapshot is the serializable form of the timer state, taken on every
// phase transition and on pause.
type Snapshot struct {
	Phase Phase `json:"phase"`
	Mode  Mode  `json:"mode"`

	TimeLeftSeconds int  `json:"time_left_seconds"`
	TotalSeconds    int  `json:"total_seconds"`
	Active          bool `json:"active"`

	SessionStart time.Time `json:"session_start"`
	PhaseStart   time.Time `json:"phase_start"`

	ContinuousFocusSeconds int    `json:"continuous_focus_seconds"`
	TodayFocusSeconds      int    `json:"today_focus_seconds"`
	DayKey                 string `json:"day_key"`

	Scores     []int      `json:"scores"`
	Adjustment Adjustment `json:"adjustment"`

	NextMicroBreakSeconds int       `json:"next_micro_break_seconds"`
	FocusElapsedSeconds   int       `json:"focus_elapsed_seconds"`
	MicroBreakFired       bool      `json:"micro_break_fired"`
	LastMicroBreak        time.Time `json:"last_micro_break"`
	MicroBreaksToday      int       `json:"micro_breaks_today"`

	SuspendedTimeLeft int `json:"suspended_time_left"`
	SuspendedTotal    int `json:"suspended_total"`

	Pending  *PendingRating `json:"pending_rating,omitempty"`
	Settings Settings       `json:"settings"`
}

// Snapshot captures the current state for persistence.
func (e *Engine) Snapshot() *Snapshot {
	return &Snapshot{
		Phase:                  e.phase,
		Mode:                   e.mode,
		TimeLeftSeconds:        e.timeLeft,
		TotalSeconds:           e.total,
		Active:                 e.active,
		SessionStart:           e.sessionStart,
		PhaseStart:             e.phaseStart,
		ContinuousFocusSeconds: e.continuousFocusSecs,
		TodayFocusSeconds:      e.todayFocusSecs,
		DayKey:                 e.dayKey,
		Scores:                 e.history.Scores(),
		Adjustment:             e.adjust,
		NextMicroBreakSeconds:  e.nextMicroBreakSecs,
		FocusElapsedSeconds:    e.focusElapsedSecs,
		MicroBreakFired:        e.microBreakFired,
		LastMicroBreak:         e.lastMicroBreak,
		MicroBreaksToday:       e.microBreaksToday,
		SuspendedTimeLeft:      e.suspendedTimeLeft,
		SuspendedTotal:         e.suspendedTotal,
		Pending:                e.pending,
		Settings:               e.settings,
	}
}

// restore rebuilds state from a persisted snapshot. The timer always
// comes back paused; snapshot settings are dropped if they no longer
// validate.
func (e *Engine) restore(s *Snapshot) {
	if err := s.Settings.Validate(); err == nil {
		e.settings = s.Settings
	}
	e.mode = s.Mode
	e.phase = s.Phase
	e.timeLeft = s.TimeLeftSeconds
	e.total = s.TotalSeconds
	e.active = false
	e.sessionStart = s.SessionStart
	e.phaseStart = s.PhaseStart
	e.continuousFocusSecs = s.ContinuousFocusSeconds
	e.todayFocusSecs = s.TodayFocusSeconds
	e.dayKey = s.DayKey
	e.history = NewScoreHistory(s.Scores)
	e.adjust = s.Adjustment
	if e.adjust.Focus == 0 || e.adjust.Break == 0 {
		e.adjust = NeutralAdjustment()
	}
	e.nextMicroBreakSecs = s.NextMicroBreakSeconds
	e.focusElapsedSecs = s.FocusElapsedSeconds
	e.microBreakFired = s.MicroBreakFired
	e.lastMicroBreak = s.LastMicroBreak
	e.microBreaksToday = s.MicroBreaksToday
	e.suspendedTimeLeft = s.SuspendedTimeLeft
	e.suspendedTotal = s.SuspendedTotal
	e.pending = s.Pending

	if e.timeLeft < 0 {
		e.timeLeft = 0
	}
	if e.total <= 0 {
		e.total = NominalDuration(e.phase, e.mode, e.settings)
		e.timeLeft = e.total
	}
	if e.timeLeft > e.total {
		e.timeLeft = e.total
	}
}
