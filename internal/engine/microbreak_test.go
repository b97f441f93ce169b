package engine

import "testing"

func TestNextIntervalSmartRange(t *testing.T) {
	set := DefaultSettings()
	set.Smart.MicroBreak.MinIntervalMinutes = 10
	set.Smart.MicroBreak.MaxIntervalMinutes = 20

	lo := NewScheduler(fakeRand{n: 0}).NextInterval(ModeSmart, set)
	if lo != 10*60 {
		t.Fatalf("low sample = %d, want 600", lo)
	}
	hi := NewScheduler(fakeRand{n: 1 << 30}).NextInterval(ModeSmart, set)
	if hi != 20*60 {
		t.Fatalf("high sample = %d, want 1200", hi)
	}
}

func TestNextIntervalClassicRange(t *testing.T) {
	set := DefaultSettings()
	set.Classic.MicroBreakMinInterval = 8
	set.Classic.MicroBreakMaxInterval = 15

	lo := NewScheduler(fakeRand{n: 0}).NextInterval(ModeClassic, set)
	hi := NewScheduler(fakeRand{n: 1 << 30}).NextInterval(ModeClassic, set)
	if lo != 8*60 || hi != 15*60 {
		t.Fatalf("classic interval range = [%d, %d], want [480, 900]", lo, hi)
	}
}

func TestDurationClassicIsFixed(t *testing.T) {
	set := DefaultSettings()
	set.Classic.MicroBreakMinutes = 2

	s := NewScheduler(fakeRand{n: 1 << 30})
	if got := s.Duration(ModeClassic, set); got != 120 {
		t.Fatalf("classic micro-break duration = %d, want 120", got)
	}
}

func TestDurationSmartRange(t *testing.T) {
	set := DefaultSettings()
	set.Smart.MicroBreak.MinMinutes = 1
	set.Smart.MicroBreak.MaxMinutes = 3

	lo := NewScheduler(fakeRand{n: 0}).Duration(ModeSmart, set)
	hi := NewScheduler(fakeRand{n: 1 << 30}).Duration(ModeSmart, set)
	if lo != 60 || hi != 180 {
		t.Fatalf("smart duration range = [%d, %d], want [60, 180]", lo, hi)
	}
}

func TestUniformMinutesDegenerateRange(t *testing.T) {
	s := NewScheduler(fakeRand{n: 1 << 30})
	if got := s.uniformMinutes(5, 5); got != 300 {
		t.Fatalf("degenerate range sample = %d, want 300", got)
	}
}

func TestNewSchedulerDefaultsToSystemRand(t *testing.T) {
	set := DefaultSettings()
	s := NewScheduler(nil)
	for i := 0; i < 50; i++ {
		got := s.NextInterval(ModeSmart, set)
		min := set.Smart.MicroBreak.MinIntervalMinutes * 60
		max := set.Smart.MicroBreak.MaxIntervalMinutes * 60
		if got < min || got > max {
			t.Fatalf("sample %d outside [%d, %d]", got, min, max)
		}
		if got%60 != 0 {
			t.Fatalf("sample %d not a whole minute", got)
		}
	}
}

func TestMicroBreaksEnabled(t *testing.T) {
	set := DefaultSettings()

	if !microBreaksEnabled(ModeClassic, set) {
		t.Fatal("classic mode should always allow micro-breaks")
	}
	if !microBreaksEnabled(ModeSmart, set) {
		t.Fatal("smart micro-breaks enabled by default")
	}

	set.Smart.MicroBreak.Enabled = false
	if microBreaksEnabled(ModeSmart, set) {
		t.Fatal("disabled smart micro-breaks still reported enabled")
	}
}
