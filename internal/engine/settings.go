package engine

// ClassicSettings is the fixed-interval schedule: every focus and
// break phase uses the same configured length.
type ClassicSettings struct {
	FocusMinutes          int `json:"focus_minutes"`
	BreakMinutes          int `json:"break_minutes"`
	MicroBreakMinInterval int `json:"micro_break_min_interval"` // minutes into focus
	MicroBreakMaxInterval int `json:"micro_break_max_interval"`
	MicroBreakMinutes     int `json:"micro_break_minutes"`
}

// MicroBreakSettings configures randomized micro-break scheduling in
// Smart mode.
type MicroBreakSettings struct {
	Enabled            bool `json:"enabled"`
	MinIntervalMinutes int  `json:"min_interval_minutes"`
	MaxIntervalMinutes int  `json:"max_interval_minutes"`
	MinMinutes         int  `json:"min_minutes"`
	MaxMinutes         int  `json:"max_minutes"`
}

// AdaptiveSettings configures efficiency-driven duration adjustment.
// Multiplier bounds must stay within [0.8, 1.2].
type AdaptiveSettings struct {
	Enabled       bool    `json:"enabled"`
	MinMultiplier float64 `json:"min_multiplier"`
	MaxMultiplier float64 `json:"max_multiplier"`
}

// CircadianSettings biases durations by time of day.
type CircadianSettings struct {
	Enabled        bool    `json:"enabled"`
	PeakFocusHours HourSet `json:"peak_focus_hours"`
	LowEnergyHours HourSet `json:"low_energy_hours"`
}

// SmartSettings is the adaptive schedule with micro-breaks,
// efficiency adjustment, circadian biasing and forced-break safety.
type SmartSettings struct {
	FocusMinutes                int                `json:"focus_minutes"`
	BreakMinutes                int                `json:"break_minutes"`
	MicroBreak                  MicroBreakSettings `json:"micro_break"`
	Adaptive                    AdaptiveSettings   `json:"adaptive"`
	Circadian                   CircadianSettings  `json:"circadian"`
	MaxContinuousFocusMinutes   int                `json:"max_continuous_focus_minutes"`
	ForcedBreakThresholdMinutes int                `json:"forced_break_threshold_minutes"`
}

// Settings holds both per-mode configurations. The active Mode picks
// which block drives scheduling.
type Settings struct {
	Classic ClassicSettings `json:"classic"`
	Smart   SmartSettings   `json:"smart"`
}

// Multiplier clamp limits; configured bounds must stay inside these.
const (
	MultiplierFloor   = 0.8
	MultiplierCeiling = 1.2
)

func DefaultSettings() Settings {
	return Settings{
		Classic: ClassicSettings{
			FocusMinutes:          25,
			BreakMinutes:          5,
			MicroBreakMinInterval: 8,
			MicroBreakMaxInterval: 15,
			MicroBreakMinutes:     1,
		},
		Smart: SmartSettings{
			FocusMinutes: 45,
			BreakMinutes: 10,
			MicroBreak: MicroBreakSettings{
				Enabled:            true,
				MinIntervalMinutes: 10,
				MaxIntervalMinutes: 20,
				MinMinutes:         1,
				MaxMinutes:         3,
			},
			Adaptive: AdaptiveSettings{
				Enabled:       true,
				MinMultiplier: MultiplierFloor,
				MaxMultiplier: MultiplierCeiling,
			},
			Circadian: CircadianSettings{
				Enabled:        true,
				PeakFocusHours: MustHours(9, 10, 11, 15, 16),
				LowEnergyHours: MustHours(13, 14, 21, 22),
			},
			MaxContinuousFocusMinutes:   120,
			ForcedBreakThresholdMinutes: 150,
		},
	}
}

// Validate checks both mode blocks. Any violation is reported as a
// ConfigError; callers keep the previous settings on failure.
func (s Settings) Validate() error {
	if err := s.Classic.validate(); err != nil {
		return err
	}
	return s.Smart.validate()
}

func (c ClassicSettings) validate() error {
	switch {
	case c.FocusMinutes <= 0:
		return configErrorf("classic.focus_minutes", "must be > 0, got %d", c.FocusMinutes)
	case c.BreakMinutes <= 0:
		return configErrorf("classic.break_minutes", "must be > 0, got %d", c.BreakMinutes)
	case c.MicroBreakMinInterval <= 0:
		return configErrorf("classic.micro_break_min_interval", "must be > 0, got %d", c.MicroBreakMinInterval)
	case c.MicroBreakMaxInterval <= 0:
		return configErrorf("classic.micro_break_max_interval", "must be > 0, got %d", c.MicroBreakMaxInterval)
	case c.MicroBreakMinInterval > c.MicroBreakMaxInterval:
		return configErrorf("classic.micro_break_min_interval", "min interval %d exceeds max %d",
			c.MicroBreakMinInterval, c.MicroBreakMaxInterval)
	case c.MicroBreakMinutes <= 0:
		return configErrorf("classic.micro_break_minutes", "must be > 0, got %d", c.MicroBreakMinutes)
	}
	return nil
}

func (s SmartSettings) validate() error {
	switch {
	case s.FocusMinutes <= 0:
		return configErrorf("smart.focus_minutes", "must be > 0, got %d", s.FocusMinutes)
	case s.BreakMinutes <= 0:
		return configErrorf("smart.break_minutes", "must be > 0, got %d", s.BreakMinutes)
	case s.MaxContinuousFocusMinutes <= 0:
		return configErrorf("smart.max_continuous_focus_minutes", "must be > 0, got %d", s.MaxContinuousFocusMinutes)
	case s.ForcedBreakThresholdMinutes <= 0:
		return configErrorf("smart.forced_break_threshold_minutes", "must be > 0, got %d", s.ForcedBreakThresholdMinutes)
	case s.MaxContinuousFocusMinutes > s.ForcedBreakThresholdMinutes:
		return configErrorf("smart.max_continuous_focus_minutes", "must not exceed forced break threshold %d",
			s.ForcedBreakThresholdMinutes)
	}

	if s.MicroBreak.Enabled {
		mb := s.MicroBreak
		switch {
		case mb.MinIntervalMinutes <= 0:
			return configErrorf("smart.micro_break.min_interval_minutes", "must be > 0, got %d", mb.MinIntervalMinutes)
		case mb.MinIntervalMinutes > mb.MaxIntervalMinutes:
			return configErrorf("smart.micro_break.min_interval_minutes", "min interval %d exceeds max %d",
				mb.MinIntervalMinutes, mb.MaxIntervalMinutes)
		case mb.MinMinutes <= 0:
			return configErrorf("smart.micro_break.min_minutes", "must be > 0, got %d", mb.MinMinutes)
		case mb.MinMinutes > mb.MaxMinutes:
			return configErrorf("smart.micro_break.min_minutes", "min duration %d exceeds max %d",
				mb.MinMinutes, mb.MaxMinutes)
		}
	}

	if a := s.Adaptive; a.Enabled {
		switch {
		case a.MinMultiplier < MultiplierFloor || a.MinMultiplier > 1.0:
			return configErrorf("smart.adaptive.min_multiplier", "must be within [%.1f, 1.0], got %.2f",
				MultiplierFloor, a.MinMultiplier)
		case a.MaxMultiplier < 1.0 || a.MaxMultiplier > MultiplierCeiling:
			return configErrorf("smart.adaptive.max_multiplier", "must be within [1.0, %.1f], got %.2f",
				MultiplierCeiling, a.MaxMultiplier)
		}
	}

	return nil
}

// bounds returns the effective clamp range, falling back to the global
// floor/ceiling when the block is disabled or unset.
func (a AdaptiveSettings) bounds() (float64, float64) {
	lo, hi := a.MinMultiplier, a.MaxMultiplier
	if lo < MultiplierFloor || lo > 1.0 {
		lo = MultiplierFloor
	}
	if hi < 1.0 || hi > MultiplierCeiling {
		hi = MultiplierCeiling
	}
	return lo, hi
}
