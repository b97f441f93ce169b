package engine

// Phase is the interval kind the timer is currently running.
type Phase int

const (
	PhaseFocus Phase = iota
	PhaseBreak
	PhaseMicroBreak
	PhaseForcedBreak
)

var phaseNames = map[Phase]string{
	PhaseFocus:       "focus",
	PhaseBreak:       "break",
	PhaseMicroBreak:  "micro_break",
	PhaseForcedBreak: "forced_break",
}

func (p Phase) String() string {
	if n, ok := phaseNames[p]; ok {
		return n
	}
	return "unknown"
}

// Ratable reports whether a completed phase asks the user for an
// efficiency score. Micro-breaks and forced breaks are not rated.
func (p Phase) Ratable() bool {
	return p == PhaseFocus || p == PhaseBreak
}

// ParsePhase converts a stored phase name back to its Phase value.
func ParsePhase(s string) (Phase, bool) {
	for p, n := range phaseNames {
		if n == s {
			return p, true
		}
	}
	return PhaseFocus, false
}

// Mode selects between the fixed Classic schedule and the adaptive
// Smart schedule.
type Mode int

const (
	ModeClassic Mode = iota
	ModeSmart
)

func (m Mode) String() string {
	if m == ModeSmart {
		return "smart"
	}
	return "classic"
}
