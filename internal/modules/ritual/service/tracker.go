package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"ritualcoach/internal/modules/ritual/domain"
	ritualout "ritualcoach/internal/modules/ritual/port/out"
	"ritualcoach/internal/platform/clock"
	apperrors "ritualcoach/internal/platform/errors"
)

// Tracker is a navigable session over a fixed, ordered list of steps. Changes
// to the completed set are persisted through the recorder before they are
// applied in memory.
type Tracker struct {
	mu       sync.Mutex
	steps    []domain.Step
	byID     map[string]int
	recorder ritualout.ProgressRecorder
	clock    clock.Clock
	logger   *zap.Logger

	current     int
	completed   map[string]struct{}
	isCompleted bool
	remaining   int
	spent       int
	startedAt   time.Time
}

// NewTracker builds a tracker and restores today's progress from the
// recorder.
func NewTracker(ctx context.Context, steps []domain.Step, recorder ritualout.ProgressRecorder, clk clock.Clock, logger *zap.Logger) (*Tracker, error) {
	if err := domain.ValidateSteps(steps); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracker{
		steps:    append([]domain.Step(nil), steps...),
		byID:     make(map[string]int, len(steps)),
		recorder: recorder,
		clock:    clk,
		logger:   logger,
	}
	for i, step := range t.steps {
		t.byID[step.ID] = i
	}
	t.resetLocked()
	if err := t.load(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tracker) load(ctx context.Context) error {
	record, found, err := t.recorder.Today(ctx)
	if err != nil {
		return fmt.Errorf("load today's progress: %w", err)
	}
	if !found {
		return nil
	}
	for _, id := range record.CompletedSteps {
		if _, known := t.byID[id]; known {
			t.completed[id] = struct{}{}
		}
	}
	t.isCompleted = record.IsCompleted
	t.startedAt = record.StartedAt
	if t.isCompleted {
		t.current = len(t.steps)
	} else {
		t.current = t.firstIncomplete()
	}
	t.remaining = t.estimateRemaining()
	return nil
}

// StartRitual records the session start.
func (t *Tracker) StartRitual(ctx context.Context) error {
	started, err := t.recorder.StartRitual(ctx)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.startedAt = started
	t.logger.Debug("ritual session started", zap.Time("at", started))
	return nil
}

// MarkStepCompleted completes stepID. Completing the last open step completes
// the ritual, which happens at most once per transition. Completing an already
// completed step is a no-op unless the ritual completion is still unrecorded.
func (t *Tracker) MarkStepCompleted(ctx context.Context, stepID string) (domain.StepOutcome, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, known := t.byID[stepID]; !known {
		return domain.StepOutcome{}, fmt.Errorf("%w: unknown step %q", apperrors.ErrInvalidInput, stepID)
	}
	if _, done := t.completed[stepID]; done {
		// A completion write that failed earlier is retried here.
		return t.finishLocked(ctx, domain.StepOutcome{})
	}
	if err := t.recorder.MarkStepCompleted(ctx, stepID); err != nil {
		return domain.StepOutcome{}, err
	}
	t.completed[stepID] = struct{}{}
	t.current = t.firstIncomplete()
	t.remaining = t.estimateRemaining()
	t.updateSpent()

	return t.finishLocked(ctx, domain.StepOutcome{Changed: true})
}

// finishLocked completes the ritual when every step is done and completion
// has not been recorded yet.
func (t *Tracker) finishLocked(ctx context.Context, outcome domain.StepOutcome) (domain.StepOutcome, error) {
	if len(t.completed) != len(t.steps) || t.isCompleted {
		return outcome, nil
	}
	streak, err := t.completeLocked(ctx)
	if err != nil {
		return outcome, err
	}
	outcome.RitualCompleted = true
	outcome.Streak = streak
	return outcome, nil
}

func (t *Tracker) completeLocked(ctx context.Context) (domain.Streak, error) {
	t.updateSpent()
	streak, err := t.recorder.MarkRitualCompleted(ctx, len(t.steps), t.spent)
	if err != nil {
		return domain.Streak{}, fmt.Errorf("record ritual completion: %w", err)
	}
	t.isCompleted = true
	t.current = len(t.steps)
	t.remaining = 0
	t.logger.Info("ritual completed", zap.Int("steps", len(t.steps)), zap.Int("spent_minutes", t.spent), zap.Int("streak", streak.Current))
	return streak, nil
}

func (t *Tracker) MarkStepIncomplete(ctx context.Context, stepID string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, known := t.byID[stepID]; !known {
		return false, fmt.Errorf("%w: unknown step %q", apperrors.ErrInvalidInput, stepID)
	}
	if _, done := t.completed[stepID]; !done {
		return false, nil
	}
	if err := t.recorder.MarkStepIncomplete(ctx, stepID); err != nil {
		return false, err
	}
	delete(t.completed, stepID)
	t.isCompleted = false
	t.current = t.firstIncomplete()
	t.remaining = t.estimateRemaining()
	return true, nil
}

func (t *Tracker) GoToNextStep() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current < len(t.steps)-1 {
		t.current++
		return true
	}
	return false
}

func (t *Tracker) GoToPreviousStep() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current > 0 {
		t.current--
		return true
	}
	return false
}

func (t *Tracker) GoToStep(index int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if index < 0 || index >= len(t.steps) {
		return false
	}
	t.current = index
	return true
}

// CurrentStep returns the active step, or false when none is active.
func (t *Tracker) CurrentStep() (domain.Step, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stepAt(t.current)
}

func (t *Tracker) StepByIndex(index int) (domain.Step, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stepAt(index)
}

func (t *Tracker) StepByID(stepID string) (domain.Step, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i, ok := t.byID[stepID]
	if !ok {
		return domain.Step{}, false
	}
	return t.steps[i], true
}

func (t *Tracker) IsStepCompleted(stepID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, done := t.completed[stepID]
	return done
}

func (t *Tracker) StepStatus(stepID string) domain.StepStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statusLocked(stepID)
}

func (t *Tracker) statusLocked(stepID string) domain.StepStatus {
	if _, done := t.completed[stepID]; done {
		return domain.StepCompleted
	}
	if step, ok := t.stepAt(t.current); ok && step.ID == stepID {
		return domain.StepActive
	}
	return domain.StepPending
}

// Progress is the completed fraction; an empty ritual counts as complete.
func (t *Tracker) Progress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progressLocked()
}

func (t *Tracker) progressLocked() float64 {
	if len(t.steps) == 0 {
		return 1
	}
	return float64(len(t.completed)) / float64(len(t.steps))
}

func (t *Tracker) ProgressPercentage() int {
	return int(math.Round(t.Progress() * 100))
}

func (t *Tracker) State() domain.ProgressState {
	t.mu.Lock()
	defer t.mu.Unlock()
	completed := make([]string, 0, len(t.completed))
	for _, step := range t.steps {
		if _, done := t.completed[step.ID]; done {
			completed = append(completed, step.ID)
		}
	}
	return domain.ProgressState{
		CurrentIndex:       t.current,
		CompletedSteps:     completed,
		IsCompleted:        t.isCompleted,
		TotalSteps:         len(t.steps),
		EstimatedRemaining: t.remaining,
		ActualSpent:        t.spent,
		StartedAt:          t.startedAt,
	}
}

func (t *Tracker) TimeStats() domain.TimeStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return domain.NewTimeStats(domain.TotalMinutes(t.steps), t.remaining, t.spent)
}

func (t *Tracker) Steps() []domain.Step {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]domain.Step(nil), t.steps...)
}

func (t *Tracker) CompletedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.completed)
}

func (t *Tracker) RemainingCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.steps) - len(t.completed)
}

// ResetProgress clears the in-memory session. Stored progress is untouched.
func (t *Tracker) ResetProgress() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked()
}

func (t *Tracker) resetLocked() {
	t.current = 0
	t.completed = map[string]struct{}{}
	t.isCompleted = false
	t.remaining = domain.TotalMinutes(t.steps)
	t.spent = 0
	t.startedAt = time.Time{}
}

func (t *Tracker) stepAt(index int) (domain.Step, bool) {
	if index < 0 || index >= len(t.steps) {
		return domain.Step{}, false
	}
	return t.steps[index], true
}

// firstIncomplete returns the first open step index, or len(steps).
func (t *Tracker) firstIncomplete() int {
	for i, step := range t.steps {
		if _, done := t.completed[step.ID]; !done {
			return i
		}
	}
	return len(t.steps)
}

func (t *Tracker) estimateRemaining() int {
	total := 0
	for i := t.current; i < len(t.steps); i++ {
		if _, done := t.completed[t.steps[i].ID]; !done {
			total += t.steps[i].EstimatedMinutes()
		}
	}
	return total
}

func (t *Tracker) updateSpent() {
	if t.startedAt.IsZero() {
		return
	}
	spent := int(t.clock.Now().Sub(t.startedAt) / time.Minute)
	if spent < 0 {
		spent = 0
	}
	t.spent = spent
}
