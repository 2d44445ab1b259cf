package timer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	timerdomain "ritualcoach/internal/modules/timer/domain"
	timerin "ritualcoach/internal/modules/timer/port/in"
	"ritualcoach/internal/ui/theme"
)

type TimerPort interface {
	ForMinutes(minutes int, listener timerdomain.Listener) timerin.Countdown
}

// EventMsg carries one countdown event into the update loop.
type EventMsg struct {
	Event timerdomain.Event
}

// CompletedMsg is emitted once when a countdown reaches zero.
type CompletedMsg struct {
	Label string
}

type Model struct {
	port      TimerPort
	listener  *timerdomain.ChannelListener
	countdown timerin.Countdown
	label     string
	minutes   int
	state     timerdomain.State
	bar       progress.Model
	width     int
	height    int
}

func New(port TimerPort, minutes int) Model {
	m := Model{
		port:     port,
		listener: timerdomain.NewChannelListener(16),
		label:    "Ritual",
		bar:      progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Lavender)), progress.WithoutPercentage()),
	}
	m.setCountdown(minutes)
	return m
}

func (m Model) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(min(m.width-8, 60), 10)

	case EventMsg:
		if msg.Event.State.Duration != m.countdown.State().Duration {
			// left over from a replaced countdown
			return m, m.waitForEvent()
		}
		m.state = msg.Event.State
		if msg.Event.Kind == timerdomain.EventComplete {
			label := m.label
			return m, tea.Batch(m.waitForEvent(), func() tea.Msg { return CompletedMsg{Label: label} })
		}
		return m, m.waitForEvent()

	case tea.KeyMsg:
		switch msg.String() {
		case " ", "enter":
			if m.state.Completed {
				m.countdown.Reset()
			}
			m.countdown.Toggle()
		case "r":
			m.countdown.Reset()
		case "+", "=":
			m.adjust(1)
		case "-":
			m.adjust(-1)
		}
		m.state = m.countdown.State()
	}
	return m, nil
}

func (m Model) View() string {
	phase := m.state.Phase()
	var phaseText string
	switch phase {
	case timerdomain.PhaseRunning:
		phaseText = theme.Hot.Render("running")
	case timerdomain.PhasePaused:
		phaseText = theme.Chant.Render("paused")
	case timerdomain.PhaseCompleted:
		phaseText = theme.Done.Render("done")
	default:
		phaseText = theme.Muted.Render("ready")
	}

	clock := lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(timerdomain.FormatClock(m.state.Remaining()))
	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render(m.label),
		theme.Muted.Render(timerdomain.FormatMinutes(m.minutes)),
		"",
		clock,
		phaseText,
		"",
		m.bar.ViewAs(m.state.Progress()),
		"",
		theme.Muted.Render(fmt.Sprintf("elapsed %s", timerdomain.FormatDuration(m.state.Elapsed))),
		"",
		theme.Muted.Render("space: start/pause  r: reset  +/-: minutes"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Pane.Render(body))
}

// SetStep points the timer at a step. A running or paused countdown is left
// alone.
func (m *Model) SetStep(label string, minutes int) {
	phase := m.countdown.State().Phase()
	if phase == timerdomain.PhaseRunning || phase == timerdomain.PhasePaused {
		return
	}
	m.label = label
	if minutes != m.minutes || phase == timerdomain.PhaseCompleted {
		m.setCountdown(minutes)
	}
}

// SetMinutes replaces an idle countdown's duration.
func (m *Model) SetMinutes(minutes int) bool {
	phase := m.countdown.State().Phase()
	if phase == timerdomain.PhaseRunning || phase == timerdomain.PhasePaused {
		return false
	}
	m.setCountdown(minutes)
	return true
}

func (m Model) State() timerdomain.State { return m.state }

// Close stops the countdown goroutine and releases blocked listener sends.
func (m Model) Close() {
	m.listener.Close()
	m.countdown.Close()
}

func (m *Model) adjust(delta int) {
	if m.minutes+delta < 1 {
		return
	}
	m.SetMinutes(m.minutes + delta)
}

func (m *Model) setCountdown(minutes int) {
	if minutes < 0 {
		minutes = 0
	}
	if m.countdown != nil {
		m.countdown.Close()
	}
	m.minutes = minutes
	m.countdown = m.port.ForMinutes(minutes, m.listener)
	m.state = m.countdown.State()
}

func (m Model) waitForEvent() tea.Cmd {
	events := m.listener.Events()
	return func() tea.Msg {
		return EventMsg{Event: <-events}
	}
}
