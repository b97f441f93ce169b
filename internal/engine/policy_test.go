package engine

import "testing"

func TestNominalDuration(t *testing.T) {
	s := Settings{
		Classic: ClassicSettings{
			FocusMinutes:          25,
			BreakMinutes:          5,
			MicroBreakMinInterval: 8,
			MicroBreakMaxInterval: 15,
			MicroBreakMinutes:     2,
		},
		Smart: SmartSettings{
			FocusMinutes: 45,
			BreakMinutes: 10,
			MicroBreak:   MicroBreakSettings{Enabled: true, MinIntervalMinutes: 10, MaxIntervalMinutes: 20, MinMinutes: 1, MaxMinutes: 3},
		},
	}

	tests := []struct {
		phase Phase
		mode  Mode
		want  int
	}{
		{PhaseFocus, ModeClassic, 25 * 60},
		{PhaseBreak, ModeClassic, 5 * 60},
		{PhaseMicroBreak, ModeClassic, 2 * 60},
		{PhaseForcedBreak, ModeClassic, 15 * 60}, // 5min break raised to the floor
		{PhaseFocus, ModeSmart, 45 * 60},
		{PhaseBreak, ModeSmart, 10 * 60},
		{PhaseMicroBreak, ModeSmart, 1 * 60}, // nominal is the configured minimum
		{PhaseForcedBreak, ModeSmart, 15 * 60},
	}

	for _, tt := range tests {
		if got := NominalDuration(tt.phase, tt.mode, s); got != tt.want {
			t.Errorf("NominalDuration(%s, %s) = %d, want %d", tt.phase, tt.mode, got, tt.want)
		}
	}
}

func TestNominalDurationAlwaysPositive(t *testing.T) {
	s := DefaultSettings()
	for _, mode := range []Mode{ModeClassic, ModeSmart} {
		for _, phase := range []Phase{PhaseFocus, PhaseBreak, PhaseMicroBreak, PhaseForcedBreak} {
			if got := NominalDuration(phase, mode, s); got <= 0 {
				t.Errorf("NominalDuration(%s, %s) = %d, want > 0", phase, mode, got)
			}
		}
	}
}

func TestForcedBreakFloor(t *testing.T) {
	if got := forcedBreakSeconds(5); got != ForcedBreakFloorMinutes*60 {
		t.Fatalf("short break not raised to floor: %d", got)
	}
	if got := forcedBreakSeconds(20); got != 20*60 {
		t.Fatalf("long break shortened by floor: %d", got)
	}
	if got := forcedBreakSeconds(ForcedBreakFloorMinutes); got != ForcedBreakFloorMinutes*60 {
		t.Fatalf("break at the floor changed: %d", got)
	}
}
