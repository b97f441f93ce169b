package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/fberk/focusflow/internal/engine"
	"github.com/fberk/focusflow/internal/stats"
	"github.com/fberk/focusflow/internal/store"
)

// App is the root Bubble Tea model. It owns the scheduling engine and
// supplies its external clock: one tickMsg per second, serialized with
// all key commands through the update loop.
type App struct {
	store  *store.Store
	log    *logrus.Logger
	eng    *engine.Engine
	events *eventQueue

	width  int
	height int

	activeView viewState
	showHelp   bool

	timer    timerModel
	stats    statsModel
	settings settingsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store, log *logrus.Logger) (App, error) {
	if log == nil {
		log = logrus.New()
	}

	settings, mode := loadSettings(s, log)
	snapStore := snapshotStore{store: s, log: log}
	snap, _ := snapStore.LoadSnapshot()

	events := &eventQueue{}
	eng, err := engine.New(engine.Config{
		Mode:     mode,
		Settings: settings,
		Snapshot: snap,
		Store:    snapStore,
		Notifier: logNotifier{log: log},
		Recorder: stats.New(s, log),
		OnEvent:  events.push,
	})
	if err != nil {
		return App{}, fmt.Errorf("init engine: %w", err)
	}

	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		log:        log,
		eng:        eng,
		events:     events,
		activeView: viewTimer,
		timer:      newTimerModel(eng),
		stats:      newStatsModel(s),
		settings:   newSettingsModel(s, log, eng),
		help:       h,
	}, nil
}

func (a App) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.timer.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// If a child view is capturing input (a form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			a.eng.Pause() // snapshot on the way out
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Mode):
			return a.toggleMode()
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewTimer
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewStats
			return a, a.stats.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 3
			if a.activeView == viewStats {
				return a, a.stats.refresh()
			}
			return a, nil
		}
		return a.updateActiveView(msg)

	case tickMsg:
		a.eng.Tick(time.Time(msg))
		cmds := []tea.Cmd{tickCmd()}
		cmds = append(cmds, a.drainEvents()...)
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status = msg.text
		return a, nil

	case statsDataMsg:
		var cmd tea.Cmd
		a.stats, cmd = a.stats.update(msg)
		return a, cmd
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTimer:
		a.timer, cmd = a.timer.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}

	cmds := append([]tea.Cmd{cmd}, a.drainEvents()...)
	return a, tea.Batch(cmds...)
}

// drainEvents turns engine events buffered during the last command or
// tick into UI reactions.
func (a *App) drainEvents() []tea.Cmd {
	var cmds []tea.Cmd
	for _, ev := range a.events.drain() {
		switch ev.Kind {
		case engine.EventPhaseChanged:
			if ev.Active {
				cmds = append(cmds, status(fmt.Sprintf("%s — %s \a", phaseLabels[ev.Phase], formatClock(ev.Total))))
			}
		case engine.EventForcedBreakEntered:
			cmds = append(cmds, status("Forced break — step away from the desk \a"))
		case engine.EventRatingRequested:
			if !a.timer.formActive && a.activeView == viewTimer {
				var cmd tea.Cmd
				a.timer, cmd = a.timer.showRatingForm()
				cmds = append(cmds, cmd)
			}
		}
	}
	return cmds
}

func (a App) toggleMode() (tea.Model, tea.Cmd) {
	next := engine.ModeClassic
	if a.eng.Mode() == engine.ModeClassic {
		next = engine.ModeSmart
	}
	if err := a.eng.SwitchMode(next, nil); err != nil {
		return a, statusError(err.Error())
	}
	persistSettings(a.store, a.log, a.eng.Settings(), next)

	cmds := append([]tea.Cmd{status("Switched to " + next.String() + " mode")}, a.drainEvents()...)
	return a, tea.Batch(cmds...)
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTimer:
		return a.timer.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTimer:
		content = a.timer.view()
	case viewStats:
		content = a.stats.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("focusflow")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Running phase indicator in footer
	timerInfo := ""
	if a.eng.Active() {
		timerInfo = successStyle.Render(fmt.Sprintf(" ● %s %s", a.eng.Phase(), formatClock(a.eng.TimeLeft())))
	} else {
		timerInfo = warningStyle.Render(fmt.Sprintf(" ⏸ %s %s", a.eng.Phase(), formatClock(a.eng.TimeLeft())))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}
