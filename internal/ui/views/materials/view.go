package materials

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	ritualdto "ritualcoach/internal/modules/ritual/dto"
	"ritualcoach/internal/ui/theme"
)

type MaterialsPort interface {
	Materials(ctx context.Context) (ritualdto.ChecklistOutput, error)
	ToggleMaterial(ctx context.Context, item string) (ritualdto.ChecklistOutput, error)
	ToggleAllMaterials(ctx context.Context) (ritualdto.ChecklistOutput, error)
}

type ChecklistLoadedMsg struct {
	Checklist ritualdto.ChecklistOutput
	Err       error
}

type materialItem struct {
	item ritualdto.ChecklistItem
}

func (i materialItem) FilterValue() string { return i.item.Name }

// checkDelegate renders one line per material.
type checkDelegate struct{}

func (checkDelegate) Height() int                             { return 1 }
func (checkDelegate) Spacing() int                            { return 0 }
func (checkDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (checkDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(materialItem)
	if !ok {
		return
	}
	cursor := "  "
	name := item.item.Name
	if index == m.Index() {
		cursor = theme.Hot.Render("▸ ")
		name = lipgloss.NewStyle().Foreground(theme.Lavender).Render(name)
	}
	fmt.Fprintf(w, "%s%s %s", cursor, theme.Check(item.item.Checked), name)
}

type Model struct {
	port      MaterialsPort
	list      list.Model
	checklist ritualdto.ChecklistOutput
	err       error
	width     int
	height    int
}

func New(port MaterialsPort) Model {
	l := list.New(nil, checkDelegate{}, 0, 0)
	l.Title = "Materials"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return Model{port: port, list: l}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, max(m.height-2, 1))
		return m, nil

	case ChecklistLoadedMsg:
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.checklist = msg.Checklist
		items := make([]list.Item, len(msg.Checklist.Items))
		for i, item := range msg.Checklist.Items {
			items[i] = materialItem{item: item}
		}
		return m, m.list.SetItems(items)

	case tea.KeyMsg:
		switch msg.String() {
		case " ", "enter":
			if item, ok := m.list.SelectedItem().(materialItem); ok {
				return m, m.toggleCmd(item.item.Name)
			}
			return m, nil
		case "a":
			return m, m.ToggleAll()
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Warn.Render(m.err.Error())
	}
	if m.checklist.Total == 0 {
		return theme.Muted.Render("This ritual needs no materials.")
	}
	summary := fmt.Sprintf("%d/%d gathered (%d%%)", m.checklist.Checked, m.checklist.Total, m.checklist.Percent)
	if m.checklist.AllChecked {
		summary = theme.Done.Render(summary + " · ready")
	} else {
		summary = theme.Muted.Render(summary)
	}
	help := theme.Muted.Render("space: toggle  a: toggle all")
	return strings.Join([]string{m.list.View(), summary, help}, "\n")
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		checklist, err := m.port.Materials(context.Background())
		return ChecklistLoadedMsg{Checklist: checklist, Err: err}
	}
}

func (m Model) ToggleAll() tea.Cmd {
	return func() tea.Msg {
		checklist, err := m.port.ToggleAllMaterials(context.Background())
		return ChecklistLoadedMsg{Checklist: checklist, Err: err}
	}
}

func (m Model) toggleCmd(name string) tea.Cmd {
	return func() tea.Msg {
		checklist, err := m.port.ToggleMaterial(context.Background(), name)
		return ChecklistLoadedMsg{Checklist: checklist, Err: err}
	}
}
