package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/fberk/focusflow/internal/engine"
)

var phaseLabels = map[engine.Phase]string{
	engine.PhaseFocus:       "FOCUS",
	engine.PhaseBreak:       "BREAK",
	engine.PhaseMicroBreak:  "MICRO-BREAK",
	engine.PhaseForcedBreak: "FORCED BREAK",
}

type timerModel struct {
	eng    *engine.Engine
	width  int
	height int

	formActive  bool
	ratingForm  *huh.Form
	ratingValue *string
}

func newTimerModel(eng *engine.Engine) timerModel {
	v := ""
	return timerModel{eng: eng, ratingValue: &v}
}

func (t *timerModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	if t.formActive && t.ratingForm != nil {
		return t.updateRatingForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			t.eng.Start()
			return t, nil
		case key.Matches(msg, keys.Pause):
			if t.eng.Active() {
				t.eng.Pause()
			} else {
				t.eng.Start()
			}
			return t, nil
		case key.Matches(msg, keys.Reset):
			t.eng.Reset()
			return t, status("Timer reset")
		case key.Matches(msg, keys.Skip):
			t.eng.SkipToNext()
			return t, nil
		case key.Matches(msg, keys.Micro):
			if t.eng.Phase() != engine.PhaseFocus {
				return t, statusError("Micro-breaks only interrupt focus")
			}
			t.eng.TriggerMicroBreak()
			return t, nil
		case key.Matches(msg, keys.Rate):
			if t.eng.Pending() == nil {
				return t, status("Nothing to rate")
			}
			return t.showRatingForm()
		}
	}
	return t, nil
}

// showRatingForm opens the efficiency self-report prompt for the most
// recently completed phase.
func (t timerModel) showRatingForm() (timerModel, tea.Cmd) {
	pending := t.eng.Pending()
	if pending == nil {
		return t, nil
	}

	*t.ratingValue = ""
	t.ratingForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("How focused were you during that %s? (0-100)", pending.Phase)).
				Value(t.ratingValue).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 || n > 100 {
						return fmt.Errorf("enter a number between 0 and 100")
					}
					return nil
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.ratingForm.Init()
}

func (t timerModel) updateRatingForm(msg tea.Msg) (timerModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			// Ratings are advisory; dismissing keeps it pending.
			t.formActive = false
			t.ratingForm = nil
			return t, nil
		}
	}

	form, cmd := t.ratingForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.ratingForm = f
	}

	if t.ratingForm.State == huh.StateCompleted {
		t.formActive = false
		score, err := strconv.Atoi(strings.TrimSpace(*t.ratingValue))
		if err == nil {
			t.eng.SubmitEfficiencyRating(score)
			return t, status(fmt.Sprintf("Rated %d/100", score))
		}
		return t, nil
	}

	return t, cmd
}

func (t timerModel) view() string {
	w := t.width - 4

	if t.formActive && t.ratingForm != nil {
		title := titleStyle.Render("Rate your focus")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", t.ratingForm.View()),
		)
	}

	phase := t.eng.Phase()
	countdown := t.countdownStyle(phase).Width(w - 6).Render(formatClock(t.eng.TimeLeft()))
	label := t.countdownStyle(phase).Render(phaseLabels[phase])
	if !t.eng.Active() {
		label = pausedStyle.Render(phaseLabels[phase] + " (paused)")
	}

	mode := mutedStyle.Render(strings.ToUpper(t.eng.Mode().String()) + " mode")
	bar := t.renderProgressBar(w - 10)

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("focusflow"),
		"",
		countdown,
		label,
		mode,
		"",
		bar,
		"",
		t.renderStatus(),
	)

	controls := t.renderControls()

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}

func (t timerModel) countdownStyle(phase engine.Phase) lipgloss.Style {
	switch phase {
	case engine.PhaseBreak:
		return breakStyle
	case engine.PhaseMicroBreak:
		return microBreakStyle
	case engine.PhaseForcedBreak:
		return forcedBreakStyle
	default:
		return focusStyle
	}
}

func (t timerModel) renderProgressBar(width int) string {
	if width < 10 {
		width = 10
	}
	filled := int(t.eng.Progress() * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return t.countdownStyle(t.eng.Phase()).Render(bar)
}

func (t timerModel) renderStatus() string {
	parts := []string{
		fmt.Sprintf("continuous focus %dm", t.eng.ContinuousFocusMinutes()),
		fmt.Sprintf("today %dm", t.eng.TodayFocusMinutes()),
		fmt.Sprintf("micro-breaks %d", t.eng.MicroBreaksToday()),
	}
	if t.eng.Mode() == engine.ModeSmart {
		adj := t.eng.Adjustment()
		parts = append(parts, fmt.Sprintf("focus ×%.2f  break ×%.2f", adj.Focus, adj.Break))
	}
	line := mutedStyle.Render(strings.Join(parts, "  ·  "))

	if t.eng.Pending() != nil {
		line += "\n" + warningStyle.Render("Rating pending — press r")
	}
	return line
}

func (t timerModel) renderControls() string {
	if t.eng.Active() {
		return mutedStyle.Render("space: pause  n: skip  m: micro-break  x: reset")
	}
	return mutedStyle.Render("s: start  n: skip  x: reset  r: rate  q: quit")
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func statusError(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: true} }
}
