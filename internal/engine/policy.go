package engine

// ForcedBreakFloorMinutes guarantees real recovery time after a forced
// break, regardless of how short the configured break is.
const ForcedBreakFloorMinutes = 15

// NominalDuration returns the unadjusted length, in seconds, of the
// next phase. Pure and deterministic: adaptive and circadian scaling
// happen on top of this, and micro-break durations are resampled by
// the scheduler at fire time (the Smart minimum is returned here as
// the nominal value).
func NominalDuration(phase Phase, mode Mode, s Settings) int {
	if mode == ModeSmart {
		return nominalSmart(phase, s.Smart)
	}
	return nominalClassic(phase, s.Classic)
}

func nominalClassic(phase Phase, c ClassicSettings) int {
	switch phase {
	case PhaseBreak:
		return c.BreakMinutes * 60
	case PhaseMicroBreak:
		return c.MicroBreakMinutes * 60
	case PhaseForcedBreak:
		return forcedBreakSeconds(c.BreakMinutes)
	default:
		return c.FocusMinutes * 60
	}
}

func nominalSmart(phase Phase, s SmartSettings) int {
	switch phase {
	case PhaseBreak:
		return s.BreakMinutes * 60
	case PhaseMicroBreak:
		return s.MicroBreak.MinMinutes * 60
	case PhaseForcedBreak:
		return forcedBreakSeconds(s.BreakMinutes)
	default:
		return s.FocusMinutes * 60
	}
}

func forcedBreakSeconds(breakMinutes int) int {
	if breakMinutes < ForcedBreakFloorMinutes {
		return ForcedBreakFloorMinutes * 60
	}
	return breakMinutes * 60
}
