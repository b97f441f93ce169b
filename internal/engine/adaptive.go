package engine

import "time"

// ScoreHistoryCap bounds the rolling efficiency history.
const ScoreHistoryCap = 10

// Efficiency thresholds and step size for multiplier adjustment.
const (
	lowEfficiencyAvg  = 60.0
	highEfficiencyAvg = 85.0
	adjustmentStep    = 0.05

	peakFocusBias = 1.10
	lowEnergyBias = 1.15
)

// ScoreHistory is a bounded ring of 0–100 efficiency self-reports.
// Pushing beyond capacity evicts the oldest score.
type ScoreHistory struct {
	scores []int
}

// NewScoreHistory restores a history from persisted scores, keeping
// only the most recent ScoreHistoryCap entries.
func NewScoreHistory(scores []int) ScoreHistory {
	var h ScoreHistory
	for _, s := range scores {
		h.Push(s)
	}
	return h
}

func (h *ScoreHistory) Push(score int) {
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}
	h.scores = append(h.scores, score)
	if len(h.scores) > ScoreHistoryCap {
		h.scores = h.scores[1:]
	}
}

func (h *ScoreHistory) Len() int { return len(h.scores) }

// Average reports the mean of the recorded scores; ok is false when
// the history is empty.
func (h *ScoreHistory) Average() (avg float64, ok bool) {
	if len(h.scores) == 0 {
		return 0, false
	}
	sum := 0
	for _, s := range h.scores {
		sum += s
	}
	return float64(sum) / float64(len(h.scores)), true
}

// Scores returns a copy of the history, oldest first.
func (h *ScoreHistory) Scores() []int {
	out := make([]int, len(h.scores))
	copy(out, h.scores)
	return out
}

// Adjustment holds the multiplicative factors applied to nominal
// durations. The efficiency-driven component persists across phases;
// circadian biasing is layered on transiently at each phase start.
type Adjustment struct {
	Focus        float64   `json:"focus"`
	Break        float64   `json:"break"`
	LastAdjusted time.Time `json:"last_adjusted"`
}

func NeutralAdjustment() Adjustment {
	return Adjustment{Focus: 1.0, Break: 1.0}
}

// StepEfficiency advances the persistent multipliers one step based on
// the rolling average: a struggling user gets shorter focus and longer
// breaks, a high performer the inverse. Clamped on every step so
// accumulated adjustments can never drift out of bounds.
func StepEfficiency(cur Adjustment, hist *ScoreHistory, s SmartSettings, now time.Time) Adjustment {
	if !s.Adaptive.Enabled {
		return NeutralAdjustment()
	}
	avg, ok := hist.Average()
	if !ok {
		return cur.clamp(s.Adaptive)
	}
	next := cur
	switch {
	case avg < lowEfficiencyAvg:
		next.Focus -= adjustmentStep
		next.Break += adjustmentStep
	case avg > highEfficiencyAvg:
		next.Focus += adjustmentStep
		next.Break -= adjustmentStep
	}
	next.LastAdjusted = now
	return next.clamp(s.Adaptive)
}

// ApplyCircadian layers time-of-day biasing on top of the persistent
// multipliers. Applied after the efficiency step, then clamped; the
// result is not stored back, so peak-hour bias does not ratchet.
func ApplyCircadian(cur Adjustment, s SmartSettings, now time.Time) Adjustment {
	if !s.Circadian.Enabled {
		return cur
	}
	eff := cur
	hour := now.Hour()
	if s.Circadian.PeakFocusHours.Contains(hour) {
		eff.Focus *= peakFocusBias
	}
	if s.Circadian.LowEnergyHours.Contains(hour) {
		eff.Break *= lowEnergyBias
	}
	return eff.clamp(s.Adaptive)
}

func (a Adjustment) clamp(s AdaptiveSettings) Adjustment {
	lo, hi := s.bounds()
	a.Focus = clampFloat(a.Focus, lo, hi)
	a.Break = clampFloat(a.Break, lo, hi)
	return a
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
