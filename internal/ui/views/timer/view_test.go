package timer_test

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	timerdomain "ritualcoach/internal/modules/timer/domain"
	timerusecase "ritualcoach/internal/modules/timer/usecase"
	"ritualcoach/internal/platform/clock"
	timerview "ritualcoach/internal/ui/views/timer"
)

func newView(t *testing.T, minutes int) timerview.Model {
	t.Helper()
	uc := timerusecase.NewInteractor(clock.Fixed{At: time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)}, time.Hour, nil)
	return timerview.New(uc, minutes)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTimerViewToggleAndReset(t *testing.T) {
	t.Parallel()
	m := newView(t, 5)
	t.Cleanup(func() { m.Close() })
	assert.Equal(t, timerdomain.PhaseIdle, m.State().Phase())
	assert.Equal(t, 5*time.Minute, m.State().Duration)

	m, _ = m.Update(key(" "))
	assert.Equal(t, timerdomain.PhaseRunning, m.State().Phase())
	m, _ = m.Update(key(" "))
	assert.Equal(t, timerdomain.PhasePaused, m.State().Phase())

	m.SetStep("Arati", 3)
	assert.Equal(t, 5*time.Minute, m.State().Duration, "a paused countdown keeps its duration")

	m, _ = m.Update(key("r"))
	assert.Equal(t, timerdomain.PhaseIdle, m.State().Phase())
	m.SetStep("Arati", 3)
	assert.Equal(t, 3*time.Minute, m.State().Duration)
	assert.Contains(t, m.View(), "Arati")
}

func TestTimerViewAdjustsMinutes(t *testing.T) {
	t.Parallel()
	m := newView(t, 1)
	t.Cleanup(func() { m.Close() })
	m, _ = m.Update(key("-"))
	assert.Equal(t, time.Minute, m.State().Duration, "never below one minute")
	m, _ = m.Update(key("+"))
	assert.Equal(t, 2*time.Minute, m.State().Duration)
	assert.True(t, m.SetMinutes(10))
	assert.Equal(t, 10*time.Minute, m.State().Duration)
}

func TestTimerViewIgnoresStaleEvents(t *testing.T) {
	t.Parallel()
	m := newView(t, 5)
	t.Cleanup(func() { m.Close() })
	stale := timerdomain.Event{Kind: timerdomain.EventTick, State: timerdomain.State{Duration: time.Minute, Elapsed: 30 * time.Second}}
	m, cmd := m.Update(timerview.EventMsg{Event: stale})
	assert.NotNil(t, cmd)
	assert.Zero(t, m.State().Elapsed)

	done := timerdomain.Event{Kind: timerdomain.EventComplete, State: timerdomain.State{Duration: 5 * time.Minute, Elapsed: 5 * time.Minute, Completed: true}}
	m, _ = m.Update(timerview.EventMsg{Event: done})
	assert.Equal(t, timerdomain.PhaseCompleted, m.State().Phase())
	assert.Contains(t, m.View(), "00:00")
}
