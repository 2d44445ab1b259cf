package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ritualcoach/internal/modules/timer/domain"
)

var t0 = time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)

func TestTimerRunsToCompletionOnce(t *testing.T) {
	t.Parallel()
	timer := domain.NewMinutes(1)
	require.True(t, timer.Start(t0))
	assert.Equal(t, domain.PhaseRunning, timer.State().Phase())
	assert.False(t, timer.Start(t0), "start while running is rejected")

	ticked, done := timer.Tick(t0.Add(30 * time.Second))
	assert.True(t, ticked)
	assert.False(t, done)
	assert.Equal(t, "00:30", timer.FormattedRemaining())
	assert.InDelta(t, 0.5, timer.Progress(), 1e-9)

	ticked, done = timer.Tick(t0.Add(61 * time.Second))
	assert.True(t, ticked)
	assert.True(t, done)
	assert.Equal(t, time.Minute, timer.Elapsed())
	assert.Equal(t, "00:00", timer.FormattedRemaining())
	assert.Equal(t, "01:00", timer.FormattedElapsed())
	assert.Equal(t, 1.0, timer.Progress())
	assert.Equal(t, domain.PhaseCompleted, timer.State().Phase())

	ticked, done = timer.Tick(t0.Add(2 * time.Minute))
	assert.False(t, ticked)
	assert.False(t, done)
	assert.False(t, timer.Start(t0.Add(2*time.Minute)), "start after completion needs a reset")
}

func TestPauseResumeExcludesPausedInterval(t *testing.T) {
	t.Parallel()
	timer := domain.NewMinutes(10)
	require.True(t, timer.Start(t0))
	timer.Tick(t0.Add(2 * time.Minute))

	require.True(t, timer.Pause(t0.Add(3*time.Minute)))
	assert.False(t, timer.Pause(t0.Add(3*time.Minute)), "double pause is a no-op")
	assert.Equal(t, domain.PhasePaused, timer.State().Phase())
	assert.Equal(t, 3*time.Minute, timer.Elapsed())

	ticked, _ := timer.Tick(t0.Add(5 * time.Minute))
	assert.False(t, ticked, "paused timers ignore ticks")

	require.True(t, timer.Resume(t0.Add(8*time.Minute)))
	assert.False(t, timer.Resume(t0.Add(8*time.Minute)))
	timer.Tick(t0.Add(9 * time.Minute))
	assert.Equal(t, 4*time.Minute, timer.Elapsed())
}

func TestResumeAndPauseRequireRunning(t *testing.T) {
	t.Parallel()
	timer := domain.NewMinutes(1)
	assert.False(t, timer.Pause(t0))
	assert.False(t, timer.Resume(t0))
	assert.Equal(t, domain.PhaseIdle, timer.State().Phase())
}

func TestResetKeepsDuration(t *testing.T) {
	t.Parallel()
	timer := domain.NewMinutes(2)
	timer.Start(t0)
	timer.Tick(t0.Add(3 * time.Minute))
	timer.Reset()

	state := timer.State()
	assert.Equal(t, domain.PhaseIdle, state.Phase())
	assert.Equal(t, 2*time.Minute, state.Duration)
	assert.Zero(t, state.Elapsed)
	assert.True(t, state.StartedAt.IsZero())
	assert.True(t, timer.Start(t0.Add(time.Hour)))
}

func TestStopKeepsElapsedAndRestartContinues(t *testing.T) {
	t.Parallel()
	timer := domain.NewMinutes(5)
	timer.Start(t0)
	timer.Tick(t0.Add(time.Minute))
	timer.Stop()
	assert.Equal(t, domain.PhaseIdle, timer.State().Phase())
	assert.Equal(t, time.Minute, timer.Elapsed())

	require.True(t, timer.Start(t0.Add(10*time.Minute)))
	timer.Tick(t0.Add(11 * time.Minute))
	assert.Equal(t, 2*time.Minute, timer.Elapsed())
}

func TestZeroDurationProgress(t *testing.T) {
	t.Parallel()
	timer := domain.New(0)
	assert.Equal(t, 1.0, timer.Progress())
	timer.Start(t0)
	_, done := timer.Tick(t0)
	assert.True(t, done)
}

func TestProgressStaysInRange(t *testing.T) {
	t.Parallel()
	timer := domain.New(90 * time.Second)
	timer.Start(t0)
	for s := 0; s <= 120; s += 7 {
		timer.Tick(t0.Add(time.Duration(s) * time.Second))
		p := timer.Progress()
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{59*time.Second + 999*time.Millisecond, "59s"},
		{60 * time.Second, "1:00"},
		{125 * time.Second, "2:05"},
		{61 * time.Minute, "61:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.FormatDuration(tc.in), tc.in.String())
	}
}

func TestFormatMinutes(t *testing.T) {
	t.Parallel()
	cases := map[int]string{0: "0m", 45: "45m", 60: "1h", 90: "1h 30m", 125: "2h 5m"}
	for in, want := range cases {
		assert.Equal(t, want, domain.FormatMinutes(in))
	}
}
