package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fberk/focusflow/internal/store"
)

type statsModel struct {
	store  *store.Store
	width  int
	height int

	days   []store.DailyStats
	recent []store.PhaseRecord
	offset int // 7-day blocks back from today (0 = current)

	chart barchart.Model
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := m.dateRange()
		days, _ := m.store.ListDailyStats(store.DayKey(from), store.DayKey(to))
		recent, _ := m.store.ListPhases(store.PhaseFilter{Limit: 8})
		return statsDataMsg{days: days, recent: recent}
	}
}

// dateRange is the 7-day window ending today, shifted back by offset
// blocks.
func (m statsModel) dateRange() (time.Time, time.Time) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := today.AddDate(0, 0, 1-7*m.offset)
	return end.AddDate(0, 0, -7), end
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		m.days = msg.days
		m.recent = msg.recent
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.offset++
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			if m.offset > 0 {
				m.offset--
			}
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *statsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	from, to := m.dateRange()

	byDay := make(map[string]store.DailyStats, len(m.days))
	for _, d := range m.days {
		byDay[d.Day] = d
	}

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		day := store.DayKey(d)
		label := d.Format("Mon 02")

		stat := byDay[day]
		focusHours := float64(stat.FocusSeconds) / 3600.0
		breakHours := float64(stat.BreakSeconds) / 3600.0

		values := []barchart.BarValue{
			{Name: "focus", Value: focusHours, Style: lipgloss.NewStyle().Foreground(colorPrimary)},
			{Name: "break", Value: breakHours, Style: lipgloss.NewStyle().Foreground(colorSuccess)},
		}
		bars = append(bars, barchart.BarData{Label: label, Values: values})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsModel) view() string {
	w := m.width - 4

	from, to := m.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s",
		from.Format("Jan 02"), to.Add(-24*time.Hour).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ", dateLabel,
	)

	legend := "  " + lipgloss.NewStyle().Foreground(colorPrimary).Render("● focus") +
		"  " + lipgloss.NewStyle().Foreground(colorSuccess).Render("● break")

	nav := mutedStyle.Render("  ←/→: navigate weeks")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", m.chart.View(), "", legend, "",
			m.renderDayTable(w), "", m.renderRecent(w), "", nav,
		),
	)
}

func (m statsModel) renderDayTable(w int) string {
	if len(m.days) == 0 {
		return mutedStyle.Render("  No data for this period")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %9s %9s %7s %7s %7s",
		"Day", "Focus", "Break", "Micro", "Forced", "Rating")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", minInt(w-6, 56))))

	for _, d := range m.days {
		rating := "-"
		if d.RatingCount > 0 {
			rating = fmt.Sprintf("%.0f", d.AverageRating())
		}
		rows = append(rows, fmt.Sprintf("  %-12s %9s %9s %7d %7d %7s",
			d.Day, formatHours(d.FocusSeconds), formatHours(d.BreakSeconds),
			d.MicroBreakCount, d.ForcedBreakCount, rating,
		))
	}

	return strings.Join(rows, "\n")
}

func (m statsModel) renderRecent(w int) string {
	if len(m.recent) == 0 {
		return ""
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Recent phases"))
	for _, p := range m.recent {
		rating := ""
		if p.Rating != nil {
			rating = highlightStyle.Render(fmt.Sprintf("  %d/100", *p.Rating))
		}
		rows = append(rows, fmt.Sprintf("  %-14s %8s  %s%s",
			p.Phase, formatSeconds(int64(p.DurationSeconds)),
			mutedStyle.Render(p.CompletedAt.Local().Format("Jan 02 15:04")), rating,
		))
	}
	return strings.Join(rows, "\n")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
