package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	guidedto "ritualcoach/internal/modules/guide/dto"
	"ritualcoach/internal/ui/components"
	"ritualcoach/internal/ui/theme"
	materialsview "ritualcoach/internal/ui/views/materials"
	ritualview "ritualcoach/internal/ui/views/ritual"
	statsview "ritualcoach/internal/ui/views/stats"
	timerview "ritualcoach/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Sub-view ports are defined in their own packages; the ritual usecase
// satisfies both the ritual and the materials port.

type RitualPort interface {
	ritualview.RitualPort
	materialsview.MaterialsPort
}

type GuidePort interface {
	Export(ctx context.Context, input guidedto.ExportInput) (guidedto.ExportOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabRitual tabID = iota
	tabTimer
	tabMaterials
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{
	"Ritual", "Timer", "Materials", "Stats",
}

// ─── async messages ───────────────────────────────────────────────────────────

type guideExportedMsg struct {
	out guidedto.ExportOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Toggle   key.Binding
	Start    key.Binding
	Complete key.Binding
	Reset    key.Binding
	All      key.Binding
	Minutes  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle step / timer / item")),
		Start:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start ritual")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete active step")),
		Reset:    key.NewBinding(key.WithKeys("R", "r"), key.WithHelp("R/r", "reset session / timer")),
		All:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle all materials")),
		Minutes:  key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "timer minutes")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Toggle, k.Start, k.Complete},
		{k.Reset, k.All, k.Minutes},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay
// and the command palette, and keeps the timer pointed at the active step.
type Model struct {
	guide GuidePort

	ritualView    ritualview.Model
	timerView     timerview.Model
	materialsView materialsview.Model
	statsView     statsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(
	ritual RitualPort,
	timer timerview.TimerPort,
	stats statsview.StatsPort,
	guide GuidePort,
	defaultMinutes int,
) Model {
	return Model{
		guide:         guide,
		ritualView:    ritualview.New(ritual),
		timerView:     timerview.New(timer, defaultMinutes),
		materialsView: materialsview.New(ritual),
		statsView:     statsview.New(stats),
		activeTab:     tabRitual,
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(),
		status:        "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.ritualView.Init(),
		m.timerView.Init(),
		m.materialsView.Init(),
		m.statsView.Init(),
	)
}

// Close releases the countdown goroutine. Call it after the program exits.
func (m Model) Close() {
	m.timerView.Close()
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	// Data messages go to their owning view whichever tab is active.
	case ritualview.SessionLoadedMsg:
		var cmd tea.Cmd
		m.ritualView, cmd = m.ritualView.Update(msg)
		if msg.Err != nil {
			m.status = "ritual: " + msg.Err.Error()
		} else {
			m.syncTimer()
		}
		return m, cmd

	case ritualview.StepChangedMsg:
		var cmd tea.Cmd
		m.ritualView, cmd = m.ritualView.Update(msg)
		cmds = append(cmds, cmd)
		switch {
		case msg.Err != nil:
			m.status = "step: " + msg.Err.Error()
		case msg.Result.RitualCompleted:
			m.status = fmt.Sprintf("ritual complete · streak %d (best %d)", msg.Result.Streak.Current, msg.Result.Streak.Longest)
			cmds = append(cmds, m.statsView.Reload())
		case msg.Result.Changed:
			m.status = "updated " + msg.Result.StepID
			cmds = append(cmds, m.statsView.Reload())
		}
		m.syncTimer()
		return m, tea.Batch(cmds...)

	case timerview.EventMsg:
		var cmd tea.Cmd
		m.timerView, cmd = m.timerView.Update(msg)
		return m, cmd

	case timerview.CompletedMsg:
		m.status = "time is up for " + msg.Label
		return m, nil

	case materialsview.ChecklistLoadedMsg:
		var cmd tea.Cmd
		m.materialsView, cmd = m.materialsView.Update(msg)
		if msg.Err == nil && msg.Checklist.AllChecked && msg.Checklist.Total > 0 {
			m.status = "all materials gathered"
		}
		return m, cmd

	case statsview.LoadedMsg:
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		return m, cmd

	case guideExportedMsg:
		if msg.err != nil {
			m.status = "guide export: " + msg.err.Error()
		} else {
			m.status = "guide written to " + msg.out.MarkdownPath
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabRitual:
		m.ritualView, tabCmd = m.ritualView.Update(msg)
	case tabTimer:
		m.timerView, tabCmd = m.timerView.Update(msg)
	case tabMaterials:
		m.materialsView, tabCmd = m.materialsView.Update(msg)
	case tabStats:
		m.statsView, tabCmd = m.statsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()

	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabRitual:
		return m.ritualView.View()
	case tabTimer:
		return m.timerView.View()
	case tabMaterials:
		return m.materialsView.View()
	case tabStats:
		return m.statsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "ritualcoach  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	session := m.ritualView.Session()
	if session.TotalSteps > 0 {
		left = theme.Hot.Render(fmt.Sprintf("● %d%%", session.ProgressPercent)) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	switch parts[0] {
	case "ritual:start":
		m.activeTab = tabRitual
		return m, m.ritualView.Start()

	case "ritual:complete":
		m.activeTab = tabRitual
		return m, m.ritualView.CompleteActive()

	case "ritual:reset":
		m.activeTab = tabRitual
		return m, m.ritualView.Reset()

	case "timer:minutes":
		if len(parts) < 2 {
			m.status = "usage: timer:minutes <n>"
			return m, nil
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil || minutes < 1 {
			m.status = "invalid minutes"
			return m, nil
		}
		m.activeTab = tabTimer
		if !m.timerView.SetMinutes(minutes) {
			m.status = "pause or reset the timer first"
		}
		return m, nil

	case "materials:all":
		m.activeTab = tabMaterials
		return m, m.materialsView.ToggleAll()

	case "guide:export":
		withHTML := len(parts) > 1 && parts[1] == "html"
		return m, m.exportGuideCmd(withHTML)

	case "stats:refresh":
		m.activeTab = tabStats
		return m, m.statsView.Reload()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// syncTimer points an idle timer at the active step.
func (m *Model) syncTimer() {
	session := m.ritualView.Session()
	if !session.HasCurrent {
		return
	}
	m.timerView.SetStep(session.Current.Title, session.Current.DurationMinutes)
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.ritualView, _ = m.ritualView.Update(sz)
	m.timerView, _ = m.timerView.Update(sz)
	m.materialsView, _ = m.materialsView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
}

func (m Model) exportGuideCmd(withHTML bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.guide.Export(context.Background(), guidedto.ExportInput{HTML: withHTML})
		return guideExportedMsg{out: out, err: err}
	}
}
