package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/fberk/focusflow/internal/engine"
	"github.com/fberk/focusflow/internal/store"
)

type settingsModel struct {
	store  *store.Store
	log    *logrus.Logger
	eng    *engine.Engine
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	mode *string

	classicFocus       *string
	classicBreak       *string
	classicMicroMinInt *string
	classicMicroMaxInt *string
	classicMicroDur    *string

	smartFocus       *string
	smartBreak       *string
	microEnabled     *bool
	microMinInterval *string
	microMaxInterval *string
	microMinDur      *string
	microMaxDur      *string
	adaptiveEnabled  *bool
	circadianEnabled *bool
	peakHours        *string
	lowHours         *string
	maxContinuous    *string
	forcedThreshold  *string
}

func newSettingsModel(s *store.Store, log *logrus.Logger, eng *engine.Engine) settingsModel {
	m := settingsModel{store: s, log: log, eng: eng}
	for _, p := range []**string{
		&m.mode,
		&m.classicFocus, &m.classicBreak, &m.classicMicroMinInt, &m.classicMicroMaxInt, &m.classicMicroDur,
		&m.smartFocus, &m.smartBreak,
		&m.microMinInterval, &m.microMaxInterval, &m.microMinDur, &m.microMaxDur,
		&m.peakHours, &m.lowHours, &m.maxContinuous, &m.forcedThreshold,
	} {
		v := ""
		*p = &v
	}
	mb, ae, ce := true, true, true
	m.microEnabled = &mb
	m.adaptiveEnabled = &ae
	m.circadianEnabled = &ce
	return m
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Enter) {
			return m.showForm()
		}
	}
	return m, nil
}

func (m settingsModel) showForm() (settingsModel, tea.Cmd) {
	s := m.eng.Settings()

	*m.mode = m.eng.Mode().String()

	*m.classicFocus = strconv.Itoa(s.Classic.FocusMinutes)
	*m.classicBreak = strconv.Itoa(s.Classic.BreakMinutes)
	*m.classicMicroMinInt = strconv.Itoa(s.Classic.MicroBreakMinInterval)
	*m.classicMicroMaxInt = strconv.Itoa(s.Classic.MicroBreakMaxInterval)
	*m.classicMicroDur = strconv.Itoa(s.Classic.MicroBreakMinutes)

	*m.smartFocus = strconv.Itoa(s.Smart.FocusMinutes)
	*m.smartBreak = strconv.Itoa(s.Smart.BreakMinutes)
	*m.microEnabled = s.Smart.MicroBreak.Enabled
	*m.microMinInterval = strconv.Itoa(s.Smart.MicroBreak.MinIntervalMinutes)
	*m.microMaxInterval = strconv.Itoa(s.Smart.MicroBreak.MaxIntervalMinutes)
	*m.microMinDur = strconv.Itoa(s.Smart.MicroBreak.MinMinutes)
	*m.microMaxDur = strconv.Itoa(s.Smart.MicroBreak.MaxMinutes)
	*m.adaptiveEnabled = s.Smart.Adaptive.Enabled
	*m.circadianEnabled = s.Smart.Circadian.Enabled
	*m.peakHours = formatHoursList(s.Smart.Circadian.PeakFocusHours)
	*m.lowHours = formatHoursList(s.Smart.Circadian.LowEnergyHours)
	*m.maxContinuous = strconv.Itoa(s.Smart.MaxContinuousFocusMinutes)
	*m.forcedThreshold = strconv.Itoa(s.Smart.ForcedBreakThresholdMinutes)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Mode").
				Options(
					huh.NewOption("Classic", "classic"),
					huh.NewOption("Smart", "smart"),
				).Value(m.mode),
		).Title("Scheduling"),
		huh.NewGroup(
			huh.NewInput().Title("Focus (min)").Value(m.classicFocus),
			huh.NewInput().Title("Break (min)").Value(m.classicBreak),
			huh.NewInput().Title("Micro-break earliest (min into focus)").Value(m.classicMicroMinInt),
			huh.NewInput().Title("Micro-break latest (min into focus)").Value(m.classicMicroMaxInt),
			huh.NewInput().Title("Micro-break length (min)").Value(m.classicMicroDur),
		).Title("Classic"),
		huh.NewGroup(
			huh.NewInput().Title("Focus (min)").Value(m.smartFocus),
			huh.NewInput().Title("Break (min)").Value(m.smartBreak),
			huh.NewConfirm().Title("Micro-breaks").Value(m.microEnabled),
			huh.NewInput().Title("Micro-break earliest (min)").Value(m.microMinInterval),
			huh.NewInput().Title("Micro-break latest (min)").Value(m.microMaxInterval),
			huh.NewInput().Title("Micro-break min length (min)").Value(m.microMinDur),
			huh.NewInput().Title("Micro-break max length (min)").Value(m.microMaxDur),
		).Title("Smart"),
		huh.NewGroup(
			huh.NewConfirm().Title("Adaptive adjustment").Value(m.adaptiveEnabled),
			huh.NewConfirm().Title("Circadian optimization").Value(m.circadianEnabled),
			huh.NewInput().Title("Peak focus hours (e.g. 9,10,15)").Value(m.peakHours),
			huh.NewInput().Title("Low energy hours (e.g. 13,22)").Value(m.lowHours),
			huh.NewInput().Title("Max continuous focus (min)").Value(m.maxContinuous),
			huh.NewInput().Title("Forced break after (min)").Value(m.forcedThreshold),
		).Title("Smart: adaptation"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m, m.applySettings()
	}

	return m, cmd
}

// applySettings builds new engine settings from the form and applies
// them. A ConfigError leaves the previous settings running and is
// surfaced in the status line.
func (m settingsModel) applySettings() tea.Cmd {
	next, err := m.buildSettings()
	if err != nil {
		return statusError(err.Error())
	}

	mode := engine.ModeClassic
	if *m.mode == "smart" {
		mode = engine.ModeSmart
	}

	if mode != m.eng.Mode() {
		if err := m.eng.SwitchMode(mode, &next); err != nil {
			return statusError(err.Error())
		}
	} else if err := m.eng.UpdateSettings(next); err != nil {
		return statusError(err.Error())
	}

	persistSettings(m.store, m.log, next, mode)
	return status("Settings saved")
}

func (m settingsModel) buildSettings() (engine.Settings, error) {
	var s engine.Settings
	var err error

	read := func(dst *int, field string, raw *string) {
		if err != nil {
			return
		}
		n, e := strconv.Atoi(strings.TrimSpace(*raw))
		if e != nil {
			err = fmt.Errorf("%s: not a number: %q", field, *raw)
			return
		}
		*dst = n
	}

	read(&s.Classic.FocusMinutes, "classic focus", m.classicFocus)
	read(&s.Classic.BreakMinutes, "classic break", m.classicBreak)
	read(&s.Classic.MicroBreakMinInterval, "classic micro-break earliest", m.classicMicroMinInt)
	read(&s.Classic.MicroBreakMaxInterval, "classic micro-break latest", m.classicMicroMaxInt)
	read(&s.Classic.MicroBreakMinutes, "classic micro-break length", m.classicMicroDur)

	read(&s.Smart.FocusMinutes, "smart focus", m.smartFocus)
	read(&s.Smart.BreakMinutes, "smart break", m.smartBreak)
	s.Smart.MicroBreak.Enabled = *m.microEnabled
	read(&s.Smart.MicroBreak.MinIntervalMinutes, "micro-break earliest", m.microMinInterval)
	read(&s.Smart.MicroBreak.MaxIntervalMinutes, "micro-break latest", m.microMaxInterval)
	read(&s.Smart.MicroBreak.MinMinutes, "micro-break min length", m.microMinDur)
	read(&s.Smart.MicroBreak.MaxMinutes, "micro-break max length", m.microMaxDur)
	read(&s.Smart.MaxContinuousFocusMinutes, "max continuous focus", m.maxContinuous)
	read(&s.Smart.ForcedBreakThresholdMinutes, "forced break threshold", m.forcedThreshold)
	if err != nil {
		return s, err
	}

	// Keep the validated multiplier bounds from the running settings.
	cur := m.eng.Settings()
	s.Smart.Adaptive = cur.Smart.Adaptive
	s.Smart.Adaptive.Enabled = *m.adaptiveEnabled

	s.Smart.Circadian.Enabled = *m.circadianEnabled
	if s.Smart.Circadian.PeakFocusHours, err = parseHoursList(*m.peakHours); err != nil {
		return s, fmt.Errorf("peak focus hours: %w", err)
	}
	if s.Smart.Circadian.LowEnergyHours, err = parseHoursList(*m.lowHours); err != nil {
		return s, fmt.Errorf("low energy hours: %w", err)
	}

	return s, nil
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	s := m.eng.Settings()

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %-28s %s", "Mode", highlightStyle.Render(m.eng.Mode().String())))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  Classic"))
	rows = append(rows, fmt.Sprintf("  %-28s %s", "Focus / break", highlightStyle.Render(
		fmt.Sprintf("%dm / %dm", s.Classic.FocusMinutes, s.Classic.BreakMinutes))))
	rows = append(rows, fmt.Sprintf("  %-28s %s", "Micro-break", highlightStyle.Render(
		fmt.Sprintf("%dm at %d-%dm", s.Classic.MicroBreakMinutes, s.Classic.MicroBreakMinInterval, s.Classic.MicroBreakMaxInterval))))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  Smart"))
	rows = append(rows, fmt.Sprintf("  %-28s %s", "Focus / break", highlightStyle.Render(
		fmt.Sprintf("%dm / %dm", s.Smart.FocusMinutes, s.Smart.BreakMinutes))))
	rows = append(rows, fmt.Sprintf("  %-28s %s", "Micro-breaks", highlightStyle.Render(onOff(s.Smart.MicroBreak.Enabled))))
	rows = append(rows, fmt.Sprintf("  %-28s %s", "Adaptive adjustment", highlightStyle.Render(onOff(s.Smart.Adaptive.Enabled))))
	rows = append(rows, fmt.Sprintf("  %-28s %s", "Circadian optimization", highlightStyle.Render(onOff(s.Smart.Circadian.Enabled))))
	rows = append(rows, fmt.Sprintf("  %-28s %s", "Peak hours", highlightStyle.Render(formatHoursList(s.Smart.Circadian.PeakFocusHours))))
	rows = append(rows, fmt.Sprintf("  %-28s %s", "Low energy hours", highlightStyle.Render(formatHoursList(s.Smart.Circadian.LowEnergyHours))))
	rows = append(rows, fmt.Sprintf("  %-28s %s", "Forced break after", highlightStyle.Render(
		fmt.Sprintf("%dm", s.Smart.ForcedBreakThresholdMinutes))))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func formatHoursList(h engine.HourSet) string {
	hours := h.Hours()
	if len(hours) == 0 {
		return "none"
	}
	parts := make([]string, len(hours))
	for i, v := range hours {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func parseHoursList(s string) (engine.HourSet, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return 0, nil
	}
	var hours []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0, fmt.Errorf("not an hour: %q", part)
		}
		hours = append(hours, n)
	}
	return engine.ParseHours(hours)
}
