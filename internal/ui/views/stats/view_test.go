package stats_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	progressdto "ritualcoach/internal/modules/progress/dto"
	statsview "ritualcoach/internal/ui/views/stats"
)

type fakeStats struct {
	err error
}

func (f fakeStats) Streak(context.Context) (progressdto.StreakOutput, error) {
	return progressdto.StreakOutput{Current: 4, Longest: 9, LastCompletionDate: "2024-02-29"}, f.err
}

func (f fakeStats) WeeklyProgress(context.Context) ([]progressdto.DayOutput, error) {
	return []progressdto.DayOutput{{Date: "2024-02-26", IsCompleted: true}, {Date: "2024-02-27"}}, nil
}

func (f fakeStats) MonthlyStats(context.Context) (progressdto.MonthlyStatsOutput, error) {
	return progressdto.MonthlyStatsOutput{CompletedDays: 3, TotalDays: 10, CompletionRate: 30}, nil
}

func TestRenderWeek(t *testing.T) {
	t.Parallel()
	out := statsview.RenderWeek([]progressdto.DayOutput{
		{Date: "2024-02-26", IsCompleted: true},
		{Date: "2024-02-27", CompletedSteps: []string{"a"}},
		{Date: "2024-02-28"},
		{Date: "bogus"},
	})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Mo Tu We ?  ", lines[1])
	assert.Contains(t, lines[2], "●")
	assert.Contains(t, lines[2], "◐")
	assert.Equal(t, 2, strings.Count(lines[2], "○"))
}

func TestStatsViewLoads(t *testing.T) {
	t.Parallel()
	m := statsview.New(fakeStats{})
	m, _ = m.Update(m.Init()())
	view := m.View()
	assert.Contains(t, view, "4 days")
	assert.Contains(t, view, "9 days")
	assert.Contains(t, view, "3 of 10 days")
	assert.Contains(t, view, "30% completion")

	failing := statsview.New(fakeStats{err: errors.New("store offline")})
	failing, _ = failing.Update(failing.Init()())
	assert.Contains(t, failing.View(), "store offline")
}
