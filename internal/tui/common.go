package tui

import (
	"fmt"
	"time"

	"github.com/fberk/focusflow/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewStats
	viewSettings
)

var viewNames = []string{"Timer", "Stats", "Settings"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

type statsDataMsg struct {
	days   []store.DailyStats
	recent []store.PhaseRecord
}

// --- Helpers ---

// formatClock renders a countdown as MM:SS, growing to H:MM:SS past an
// hour.
func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	if secs >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatSeconds(secs int64) string {
	return formatDuration(time.Duration(secs) * time.Second)
}

func formatHours(secs int64) string {
	h := float64(secs) / 3600
	return fmt.Sprintf("%.1fh", h)
}
