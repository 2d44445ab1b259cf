package ritual

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	ritualdto "ritualcoach/internal/modules/ritual/dto"
	"ritualcoach/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type RitualPort interface {
	Session(ctx context.Context) (ritualdto.SessionOutput, error)
	Start(ctx context.Context) (ritualdto.SessionOutput, error)
	CompleteStep(ctx context.Context, stepID string) (ritualdto.StepResultOutput, error)
	ReopenStep(ctx context.Context, stepID string) (ritualdto.StepResultOutput, error)
	GoTo(ctx context.Context, index int) (ritualdto.SessionOutput, bool, error)
	Reset(ctx context.Context) (ritualdto.SessionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type SessionLoadedMsg struct {
	Session ritualdto.SessionOutput
	Err     error
}

// StepChangedMsg reports a completed or reopened step. The app model reads it
// to refresh stats and the materials tab.
type StepChangedMsg struct {
	Result ritualdto.StepResultOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type stepItem struct {
	step ritualdto.StepOutput
}

func (i stepItem) Title() string {
	switch i.step.Status {
	case "completed":
		return theme.Done.Render("✓ ") + i.step.Title
	case "active":
		return theme.Hot.Render("▶ ") + i.step.Title
	}
	return "  " + i.step.Title
}

func (i stepItem) Description() string {
	return fmt.Sprintf("%d min · %s", i.step.DurationMinutes, i.step.Status)
}

func (i stepItem) FilterValue() string { return i.step.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    RitualPort
	list    list.Model
	detail  viewport.Model
	bar     progress.Model
	session ritualdto.SessionOutput
	loaded  bool
	err     error
	width   int
	height  int
}

func New(port RitualPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Steps"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)

	return Model{
		port:   port,
		list:   l,
		detail: vp,
		bar:    progress.New(progress.WithGradient(string(theme.Peach), string(theme.Green)), progress.WithoutPercentage()),
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case SessionLoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			cmds = append(cmds, m.apply(msg.Session))
		}

	case StepChangedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			cmds = append(cmds, m.apply(msg.Result.Session))
		}

	case tea.KeyMsg:
		if !m.loaded {
			break
		}
		switch msg.String() {
		case "enter", " ":
			return m, m.toggleSelectedCmd()
		case "s":
			return m, m.startCmd()
		case "c":
			return m, m.completeCmd("")
		case "R":
			return m, m.resetCmd()
		}
		prev := m.list.Index()
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
		if idx := m.list.Index(); idx != prev {
			m.detail.SetContent(m.renderDetail())
			cmds = append(cmds, m.goToCmd(idx))
		}
		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.err != nil && !m.loaded {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Warn.Render(m.err.Error())+"\n\n"+theme.Muted.Render("run `ritualcoach profile set` first"))
	}
	if !m.loaded {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Muted.Render("Loading ritual…"))
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	header := theme.Title.Render(m.session.FlowName) + "  " +
		theme.Muted.Render(fmt.Sprintf("%d/%d steps · %d min left", m.session.CompletedCount, m.session.TotalSteps, m.session.RemainingMinutes))
	if m.session.IsCompleted {
		header += "  " + theme.Done.Render("complete")
	}
	bar := m.bar.ViewAs(float64(m.session.ProgressPercent) / 100)

	listPane := lipgloss.NewStyle().Width(listW).Height(m.height - 3).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(max(detailW-2, 1)).
		Height(max(m.height-5, 1)).
		Render(m.detail.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		bar,
		lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane),
	)
}

// Session returns the last loaded session.
func (m Model) Session() ritualdto.SessionOutput { return m.session }

// SelectedStep returns the step under the cursor.
func (m Model) SelectedStep() (ritualdto.StepOutput, bool) {
	if item, ok := m.list.SelectedItem().(stepItem); ok {
		return item.step, true
	}
	return ritualdto.StepOutput{}, false
}

// Reload re-reads today's session.
func (m Model) Reload() tea.Cmd { return m.loadCmd() }

// Start records the session start.
func (m Model) Start() tea.Cmd { return m.startCmd() }

// CompleteActive completes the active step.
func (m Model) CompleteActive() tea.Cmd { return m.completeCmd("") }

// Reset clears the in-memory session.
func (m Model) Reset() tea.Cmd { return m.resetCmd() }

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) apply(session ritualdto.SessionOutput) tea.Cmd {
	m.session = session
	m.loaded = true
	items := make([]list.Item, len(session.Steps))
	for i, step := range session.Steps {
		items[i] = stepItem{step: step}
	}
	cmd := m.list.SetItems(items)
	if session.HasCurrent {
		m.list.Select(session.CurrentIndex)
	}
	m.detail.SetContent(m.renderDetail())
	return cmd
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, max(m.height-3, 1))
	m.detail.Width = max(detailW-4, 1)
	m.detail.Height = max(m.height-7, 1)
	m.bar.Width = max(m.width-2, 10)
}

func (m Model) renderDetail() string {
	step, ok := m.SelectedStep()
	if !ok {
		return theme.Muted.Render("No steps")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("%d. %s", step.Index+1, step.Title)) + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d minutes · %s", step.DurationMinutes, step.Status)) + "\n\n")
	if step.Description != "" {
		sb.WriteString(step.Description + "\n\n")
	}
	if len(step.Materials) > 0 {
		sb.WriteString(theme.Muted.Render("materials: ") + strings.Join(step.Materials, ", ") + "\n\n")
	}
	for _, mantra := range step.Mantras {
		sb.WriteString(theme.Chant.Render(mantra) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: toggle done  c: complete active  s: start  R: reset"))
	return sb.String()
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := m.port.Session(context.Background())
		return SessionLoadedMsg{Session: session, Err: err}
	}
}

func (m Model) startCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := m.port.Start(context.Background())
		return SessionLoadedMsg{Session: session, Err: err}
	}
}

func (m Model) resetCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := m.port.Reset(context.Background())
		return SessionLoadedMsg{Session: session, Err: err}
	}
}

func (m Model) goToCmd(index int) tea.Cmd {
	return func() tea.Msg {
		session, _, err := m.port.GoTo(context.Background(), index)
		return SessionLoadedMsg{Session: session, Err: err}
	}
}

func (m Model) completeCmd(stepID string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.port.CompleteStep(context.Background(), stepID)
		return StepChangedMsg{Result: result, Err: err}
	}
}

func (m Model) toggleSelectedCmd() tea.Cmd {
	step, ok := m.SelectedStep()
	if !ok {
		return nil
	}
	if step.Status == "completed" {
		return func() tea.Msg {
			result, err := m.port.ReopenStep(context.Background(), step.ID)
			return StepChangedMsg{Result: result, Err: err}
		}
	}
	return m.completeCmd(step.ID)
}
