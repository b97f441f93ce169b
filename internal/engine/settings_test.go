package engine

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDefaultSettingsValid(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Settings)
		wantField string
	}{
		{
			"zero classic focus",
			func(s *Settings) { s.Classic.FocusMinutes = 0 },
			"classic.focus_minutes",
		},
		{
			"negative classic break",
			func(s *Settings) { s.Classic.BreakMinutes = -5 },
			"classic.break_minutes",
		},
		{
			"classic micro interval inverted",
			func(s *Settings) {
				s.Classic.MicroBreakMinInterval = 20
				s.Classic.MicroBreakMaxInterval = 10
			},
			"classic.micro_break_min_interval",
		},
		{
			"zero classic micro duration",
			func(s *Settings) { s.Classic.MicroBreakMinutes = 0 },
			"classic.micro_break_minutes",
		},
		{
			"zero smart focus",
			func(s *Settings) { s.Smart.FocusMinutes = 0 },
			"smart.focus_minutes",
		},
		{
			"max continuous above forced threshold",
			func(s *Settings) {
				s.Smart.MaxContinuousFocusMinutes = 200
				s.Smart.ForcedBreakThresholdMinutes = 150
			},
			"smart.max_continuous_focus_minutes",
		},
		{
			"zero forced threshold",
			func(s *Settings) { s.Smart.ForcedBreakThresholdMinutes = 0 },
			"smart.forced_break_threshold_minutes",
		},
		{
			"smart micro interval inverted",
			func(s *Settings) {
				s.Smart.MicroBreak.MinIntervalMinutes = 30
				s.Smart.MicroBreak.MaxIntervalMinutes = 10
			},
			"smart.micro_break.min_interval_minutes",
		},
		{
			"smart micro duration inverted",
			func(s *Settings) {
				s.Smart.MicroBreak.MinMinutes = 5
				s.Smart.MicroBreak.MaxMinutes = 2
			},
			"smart.micro_break.min_minutes",
		},
		{
			"adaptive min below floor",
			func(s *Settings) { s.Smart.Adaptive.MinMultiplier = 0.5 },
			"smart.adaptive.min_multiplier",
		},
		{
			"adaptive max above ceiling",
			func(s *Settings) { s.Smart.Adaptive.MaxMultiplier = 1.5 },
			"smart.adaptive.max_multiplier",
		},
		{
			"adaptive min above one",
			func(s *Settings) { s.Smart.Adaptive.MinMultiplier = 1.1 },
			"smart.adaptive.min_multiplier",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)

			err := s.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %T", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Fatalf("field = %s, want %s", cfgErr.Field, tt.wantField)
			}
		})
	}
}

func TestValidateSkipsDisabledBlocks(t *testing.T) {
	s := DefaultSettings()
	s.Smart.MicroBreak = MicroBreakSettings{Enabled: false}
	s.Smart.Adaptive = AdaptiveSettings{Enabled: false}

	// Zero-valued but disabled blocks must not fail validation.
	if err := s.Validate(); err != nil {
		t.Fatalf("disabled blocks validated: %v", err)
	}
}

func TestSettingsJSONRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.Smart.Circadian.PeakFocusHours = MustHours(7, 8, 9)

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}

	var got Settings
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got != s {
		t.Fatalf("round trip changed settings:\n got %+v\nwant %+v", got, s)
	}
	if !got.Smart.Circadian.PeakFocusHours.Contains(8) {
		t.Fatal("hour set lost in round trip")
	}
}

func TestAdaptiveBoundsFallback(t *testing.T) {
	lo, hi := AdaptiveSettings{}.bounds()
	if lo != MultiplierFloor || hi != MultiplierCeiling {
		t.Fatalf("zero-value bounds = [%f, %f], want [%f, %f]",
			lo, hi, MultiplierFloor, MultiplierCeiling)
	}

	lo, hi = AdaptiveSettings{MinMultiplier: 0.9, MaxMultiplier: 1.1}.bounds()
	if lo != 0.9 || hi != 1.1 {
		t.Fatalf("configured bounds = [%f, %f], want [0.9, 1.1]", lo, hi)
	}
}
