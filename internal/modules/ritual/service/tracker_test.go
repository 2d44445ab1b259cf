package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ritualcoach/internal/modules/ritual/domain"
	ritualout "ritualcoach/internal/modules/ritual/port/out"
	"ritualcoach/internal/modules/ritual/service"
	"ritualcoach/internal/platform/clock"
	apperrors "ritualcoach/internal/platform/errors"
)

type fakeRecorder struct {
	today       ritualout.DayRecord
	found       bool
	startedAt   time.Time
	completed   []string
	reopened    []string
	completions int
	lastSteps   int
	lastSpent   int
	failWrites  error
	failFinish  []error
}

func (f *fakeRecorder) Today(context.Context) (ritualout.DayRecord, bool, error) {
	return f.today, f.found, nil
}

func (f *fakeRecorder) StartRitual(context.Context) (time.Time, error) {
	return f.startedAt, nil
}

func (f *fakeRecorder) MarkStepCompleted(_ context.Context, stepID string) error {
	if f.failWrites != nil {
		return f.failWrites
	}
	f.completed = append(f.completed, stepID)
	return nil
}

func (f *fakeRecorder) MarkStepIncomplete(_ context.Context, stepID string) error {
	if f.failWrites != nil {
		return f.failWrites
	}
	f.reopened = append(f.reopened, stepID)
	return nil
}

func (f *fakeRecorder) MarkRitualCompleted(_ context.Context, totalSteps, spent int) (domain.Streak, error) {
	if len(f.failFinish) > 0 {
		err := f.failFinish[0]
		f.failFinish = f.failFinish[1:]
		return domain.Streak{}, err
	}
	f.completions++
	f.lastSteps = totalSteps
	f.lastSpent = spent
	return domain.Streak{Current: 3, Longest: 7, LastCompletionDate: "2024-01-01"}, nil
}

var start = time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)

func abcSteps() []domain.Step {
	return []domain.Step{
		{ID: "A", Title: "A", DurationMinutes: 5},
		{ID: "B", Title: "B", DurationMinutes: 10},
		{ID: "C", Title: "C", DurationMinutes: 5},
	}
}

func newTracker(t *testing.T, rec *fakeRecorder, now time.Time) *service.Tracker {
	t.Helper()
	tracker, err := service.NewTracker(context.Background(), abcSteps(), rec, clock.Fixed{At: now}, nil)
	require.NoError(t, err)
	return tracker
}

func TestTrackerOutOfOrderCompletionScenario(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rec := &fakeRecorder{}
	tracker := newTracker(t, rec, start)

	_, err := tracker.MarkStepCompleted(ctx, "A")
	require.NoError(t, err)
	_, err = tracker.MarkStepCompleted(ctx, "C")
	require.NoError(t, err)

	state := tracker.State()
	assert.Equal(t, 1, state.CurrentIndex)
	current, ok := tracker.CurrentStep()
	require.True(t, ok)
	assert.Equal(t, "B", current.ID)
	assert.Equal(t, 10, state.EstimatedRemaining)
	assert.Equal(t, 2, tracker.CompletedCount())
	assert.Equal(t, 1, tracker.RemainingCount())
	assert.False(t, state.IsCompleted)
	assert.Equal(t, 0, rec.completions)

	outcome, err := tracker.MarkStepCompleted(ctx, "B")
	require.NoError(t, err)
	assert.True(t, outcome.Changed)
	assert.True(t, outcome.RitualCompleted)
	assert.Equal(t, 3, outcome.Streak.Current)

	state = tracker.State()
	assert.True(t, state.IsCompleted)
	assert.Zero(t, state.EstimatedRemaining)
	assert.Equal(t, 3, state.CurrentIndex)
	assert.Equal(t, []string{"A", "B", "C"}, state.CompletedSteps)
	assert.Equal(t, 1, rec.completions)
	assert.Equal(t, 3, rec.lastSteps)
	_, ok = tracker.CurrentStep()
	assert.False(t, ok)
	assert.Equal(t, 100, tracker.ProgressPercentage())
}

func TestTrackerMarkStepCompletedIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rec := &fakeRecorder{}
	tracker := newTracker(t, rec, start)

	first, err := tracker.MarkStepCompleted(ctx, "A")
	require.NoError(t, err)
	assert.True(t, first.Changed)
	before := tracker.State()

	second, err := tracker.MarkStepCompleted(ctx, "A")
	require.NoError(t, err)
	assert.False(t, second.Changed)
	assert.Equal(t, before, tracker.State())
	assert.Equal(t, []string{"A"}, rec.completed)
}

func TestTrackerCompletionFiresOncePerTransition(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rec := &fakeRecorder{}
	tracker := newTracker(t, rec, start)

	for _, id := range []string{"C", "A", "B"} {
		_, err := tracker.MarkStepCompleted(ctx, id)
		require.NoError(t, err)
	}
	_, err := tracker.MarkStepCompleted(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.completions)

	changed, err := tracker.MarkStepIncomplete(ctx, "B")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, tracker.State().IsCompleted)
	assert.Equal(t, 1, tracker.State().CurrentIndex)
	assert.Equal(t, 10, tracker.State().EstimatedRemaining)

	outcome, err := tracker.MarkStepCompleted(ctx, "B")
	require.NoError(t, err)
	assert.True(t, outcome.RitualCompleted)
	assert.Equal(t, 2, rec.completions)
}

func TestTrackerMarkStepIncomplete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rec := &fakeRecorder{}
	tracker := newTracker(t, rec, start)

	changed, err := tracker.MarkStepIncomplete(ctx, "A")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, rec.reopened)

	_, err = tracker.MarkStepIncomplete(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = tracker.MarkStepCompleted(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestTrackerRestoresTodaysProgress(t *testing.T) {
	t.Parallel()
	startedAt := start.Add(-12 * time.Minute)
	rec := &fakeRecorder{
		found: true,
		today: ritualout.DayRecord{Date: "2024-01-01", CompletedSteps: []string{"A", "stale"}, StartedAt: startedAt},
	}
	tracker := newTracker(t, rec, start)

	state := tracker.State()
	assert.Equal(t, []string{"A"}, state.CompletedSteps)
	assert.Equal(t, 1, state.CurrentIndex)
	assert.Equal(t, 15, state.EstimatedRemaining)
	assert.Equal(t, startedAt, state.StartedAt)
	assert.Equal(t, domain.StepCompleted, tracker.StepStatus("A"))
	assert.Equal(t, domain.StepActive, tracker.StepStatus("B"))
	assert.Equal(t, domain.StepPending, tracker.StepStatus("C"))

	_, err := tracker.MarkStepCompleted(context.Background(), "B")
	require.NoError(t, err)
	assert.Equal(t, 12, tracker.State().ActualSpent)
}

func TestTrackerUsesEndSentinelWhenNothingIsOpen(t *testing.T) {
	t.Parallel()
	completeRecord := &fakeRecorder{found: true, today: ritualout.DayRecord{CompletedSteps: []string{"A"}, IsCompleted: true}}
	tracker := newTracker(t, completeRecord, start)
	assert.Equal(t, 3, tracker.State().CurrentIndex)
	assert.Zero(t, tracker.State().EstimatedRemaining)

	allDone := &fakeRecorder{found: true, today: ritualout.DayRecord{CompletedSteps: []string{"A", "B", "C"}}}
	tracker = newTracker(t, allDone, start)
	assert.Equal(t, 3, tracker.State().CurrentIndex)
	assert.False(t, tracker.State().IsCompleted)
}

func TestTrackerNavigation(t *testing.T) {
	t.Parallel()
	tracker := newTracker(t, &fakeRecorder{}, start)

	assert.False(t, tracker.GoToPreviousStep())
	assert.True(t, tracker.GoToNextStep())
	assert.True(t, tracker.GoToNextStep())
	assert.False(t, tracker.GoToNextStep())
	assert.Equal(t, 2, tracker.State().CurrentIndex)

	assert.True(t, tracker.GoToStep(0))
	assert.False(t, tracker.GoToStep(3))
	assert.False(t, tracker.GoToStep(-1))
	assert.Equal(t, 0, tracker.State().CurrentIndex)

	step, ok := tracker.StepByIndex(1)
	require.True(t, ok)
	assert.Equal(t, "B", step.ID)
	_, ok = tracker.StepByIndex(9)
	assert.False(t, ok)
	step, ok = tracker.StepByID("C")
	require.True(t, ok)
	assert.Equal(t, 5, step.DurationMinutes)
	_, ok = tracker.StepByID("Z")
	assert.False(t, ok)
}

func TestTrackerTimeStatsAndReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rec := &fakeRecorder{startedAt: start.Add(-40 * time.Minute)}
	tracker := newTracker(t, rec, start)

	require.NoError(t, tracker.StartRitual(ctx))
	_, err := tracker.MarkStepCompleted(ctx, "A")
	require.NoError(t, err)

	stats := tracker.TimeStats()
	assert.Equal(t, 20, stats.Estimated)
	assert.Equal(t, 15, stats.Remaining)
	assert.Equal(t, 40, stats.Spent)
	assert.InDelta(t, 200.0, stats.Efficiency, 1e-9, "efficiency is not clamped")

	tracker.ResetProgress()
	state := tracker.State()
	assert.Zero(t, state.CurrentIndex)
	assert.Empty(t, state.CompletedSteps)
	assert.Equal(t, 20, state.EstimatedRemaining)
	assert.True(t, state.StartedAt.IsZero())
	assert.Equal(t, []string{"A"}, rec.completed, "reset must not touch storage")
}

func TestTrackerDefaultsMissingDurations(t *testing.T) {
	t.Parallel()
	steps := []domain.Step{{ID: "1"}, {ID: "2", DurationMinutes: 3}}
	tracker, err := service.NewTracker(context.Background(), steps, &fakeRecorder{}, clock.Fixed{At: start}, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, tracker.TimeStats().Estimated)
}

func TestTrackerRejectsBadSteps(t *testing.T) {
	t.Parallel()
	_, err := service.NewTracker(context.Background(), nil, &fakeRecorder{}, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = service.NewTracker(context.Background(), []domain.Step{{ID: "a"}, {ID: "a"}}, &fakeRecorder{}, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestTrackerKeepsStateWhenPersistenceFails(t *testing.T) {
	t.Parallel()
	boom := errors.New("disk full")
	rec := &fakeRecorder{failWrites: boom}
	tracker := newTracker(t, rec, start)

	_, err := tracker.MarkStepCompleted(context.Background(), "A")
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, tracker.CompletedCount())
	assert.Equal(t, 0, tracker.State().CurrentIndex)
}

func TestTrackerRetriesFailedRitualCompletion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	boom := errors.New("disk full")
	rec := &fakeRecorder{failFinish: []error{boom}}
	tracker := newTracker(t, rec, start)

	for _, id := range []string{"A", "B"} {
		_, err := tracker.MarkStepCompleted(ctx, id)
		require.NoError(t, err)
	}
	outcome, err := tracker.MarkStepCompleted(ctx, "C")
	assert.ErrorIs(t, err, boom)
	assert.False(t, outcome.RitualCompleted)
	assert.False(t, tracker.State().IsCompleted)
	assert.Equal(t, 3, tracker.CompletedCount())
	assert.Zero(t, rec.completions)

	outcome, err = tracker.MarkStepCompleted(ctx, "C")
	require.NoError(t, err)
	assert.False(t, outcome.Changed)
	assert.True(t, outcome.RitualCompleted)
	assert.Equal(t, 3, outcome.Streak.Current)
	assert.True(t, tracker.State().IsCompleted)
	assert.Equal(t, 1, rec.completions)
	assert.Equal(t, []string{"A", "B", "C"}, rec.completed)

	outcome, err = tracker.MarkStepCompleted(ctx, "C")
	require.NoError(t, err)
	assert.False(t, outcome.RitualCompleted)
	assert.Equal(t, 1, rec.completions)
}

func TestTrackerRecordsCompletionForRestoredFullRecord(t *testing.T) {
	t.Parallel()
	rec := &fakeRecorder{found: true, today: ritualout.DayRecord{CompletedSteps: []string{"A", "B", "C"}}}
	tracker := newTracker(t, rec, start)

	outcome, err := tracker.MarkStepCompleted(context.Background(), "A")
	require.NoError(t, err)
	assert.True(t, outcome.RitualCompleted)
	assert.Equal(t, 1, rec.completions)
}
