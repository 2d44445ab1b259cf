package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "ritualcoach/internal/modules/progress/dto"
	"ritualcoach/internal/platform/clock"
	"ritualcoach/internal/ui/theme"
)

type StatsPort interface {
	Streak(ctx context.Context) (progressdto.StreakOutput, error)
	WeeklyProgress(ctx context.Context) ([]progressdto.DayOutput, error)
	MonthlyStats(ctx context.Context) (progressdto.MonthlyStatsOutput, error)
}

type LoadedMsg struct {
	Streak progressdto.StreakOutput
	Week   []progressdto.DayOutput
	Month  progressdto.MonthlyStatsOutput
	Err    error
}

type Model struct {
	port   StatsPort
	data   LoadedMsg
	loaded bool
	width  int
	height int
}

func New(port StatsPort) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.data = msg
		m.loaded = true
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.Reload()
		}
	}
	return m, nil
}

func (m Model) View() string {
	if !m.loaded {
		return theme.Muted.Render("Loading stats…")
	}
	if m.data.Err != nil {
		return theme.Warn.Render(m.data.Err.Error())
	}
	streak := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render("Streak"),
		fmt.Sprintf("%s %d days", theme.Hot.Render("current"), m.data.Streak.Current),
		fmt.Sprintf("%s %d days", theme.Muted.Render("longest"), m.data.Streak.Longest),
		theme.Muted.Render("last "+orDash(m.data.Streak.LastCompletionDate)),
	)
	month := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render("This month"),
		fmt.Sprintf("%d of %d days", m.data.Month.CompletedDays, m.data.Month.TotalDays),
		fmt.Sprintf("%.0f%% completion", m.data.Month.CompletionRate),
	)
	top := lipgloss.JoinHorizontal(lipgloss.Top, theme.Pane.Render(streak), " ", theme.Pane.Render(month))
	return lipgloss.JoinVertical(lipgloss.Left, top, theme.Pane.Render(RenderWeek(m.data.Week)),
		theme.Muted.Render("r: refresh"))
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		streak, err := m.port.Streak(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		week, err := m.port.WeeklyProgress(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		month, err := m.port.MonthlyStats(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		return LoadedMsg{Streak: streak, Week: week, Month: month}
	}
}

// RenderWeek draws one column per day: weekday initial over a filled or
// hollow dot.
func RenderWeek(days []progressdto.DayOutput) string {
	var names, marks []string
	for _, day := range days {
		label := "?"
		if t, err := time.Parse(clock.DateLayout, day.Date); err == nil {
			label = t.Weekday().String()[:2]
		}
		names = append(names, fmt.Sprintf("%-3s", label))
		switch {
		case day.IsCompleted:
			marks = append(marks, theme.Done.Render("● ")+" ")
		case len(day.CompletedSteps) > 0:
			marks = append(marks, theme.Hot.Render("◐ ")+" ")
		default:
			marks = append(marks, theme.Muted.Render("○ ")+" ")
		}
	}
	return theme.Title.Render("This week") + "\n" + strings.Join(names, "") + "\n" + strings.Join(marks, "")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
