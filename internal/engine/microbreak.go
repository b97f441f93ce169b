package engine

import "math/rand/v2"

// Rand is the random source used for micro-break scheduling. Inject a
// deterministic implementation in tests.
type Rand interface {
	Intn(n int) int
}

type sysRand struct{}

func (sysRand) Intn(n int) int { return rand.IntN(n) }

// Scheduler decides when the next micro-break preempts a focus phase
// and how long it lasts. Interval bounds are validated at
// settings-update time; by the time scheduling happens min <= max
// always holds.
type Scheduler struct {
	rand Rand
}

func NewScheduler(r Rand) *Scheduler {
	if r == nil {
		r = sysRand{}
	}
	return &Scheduler{rand: r}
}

// NextInterval samples the offset, in seconds from focus-phase start,
// at which the next micro-break fires. Resampled on every focus
// restart and after each fired micro-break.
func (s *Scheduler) NextInterval(mode Mode, set Settings) int {
	if mode == ModeSmart {
		mb := set.Smart.MicroBreak
		return s.uniformMinutes(mb.MinIntervalMinutes, mb.MaxIntervalMinutes)
	}
	return s.uniformMinutes(set.Classic.MicroBreakMinInterval, set.Classic.MicroBreakMaxInterval)
}

// Duration samples the micro-break length in seconds. Classic mode
// uses its fixed configured duration.
func (s *Scheduler) Duration(mode Mode, set Settings) int {
	if mode == ModeSmart {
		mb := set.Smart.MicroBreak
		return s.uniformMinutes(mb.MinMinutes, mb.MaxMinutes)
	}
	return set.Classic.MicroBreakMinutes * 60
}

// uniformMinutes picks an integer minute count in [min, max] inclusive
// and converts to seconds.
func (s *Scheduler) uniformMinutes(min, max int) int {
	if max < min {
		max = min
	}
	return (min + s.rand.Intn(max-min+1)) * 60
}

// enabled reports whether micro-breaks may preempt focus at all under
// the given mode and settings.
func microBreaksEnabled(mode Mode, set Settings) bool {
	if mode == ModeSmart {
		return set.Smart.MicroBreak.Enabled
	}
	return true
}
