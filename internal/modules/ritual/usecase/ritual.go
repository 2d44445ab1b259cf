package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"ritualcoach/internal/modules/ritual/domain"
	"ritualcoach/internal/modules/ritual/dto"
	ritualin "ritualcoach/internal/modules/ritual/port/in"
	ritualout "ritualcoach/internal/modules/ritual/port/out"
	"ritualcoach/internal/modules/ritual/service"
	"ritualcoach/internal/platform/clock"
	apperrors "ritualcoach/internal/platform/errors"
)

type session struct {
	date      string
	tradition string
	region    string
	kidMode   bool
	flow      domain.Flow
	tracker   *service.Tracker
	checklist *domain.Checklist
}

// Interactor keeps one session per calendar day and profile so navigation
// and the materials checklist survive between calls.
type Interactor struct {
	flows    ritualout.FlowSource
	profiles ritualout.ProfileReader
	recorder ritualout.ProgressRecorder
	clock    clock.Clock
	loc      *time.Location
	logger   *zap.Logger

	mu      sync.Mutex
	current *session
}

func NewInteractor(
	flows ritualout.FlowSource,
	profiles ritualout.ProfileReader,
	recorder ritualout.ProgressRecorder,
	clk clock.Clock,
	loc *time.Location,
	logger *zap.Logger,
) ritualin.Usecase {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{flows: flows, profiles: profiles, recorder: recorder, clock: clk, loc: loc, logger: logger}
}

func (i *Interactor) Flows(ctx context.Context) ([]dto.FlowSummary, error) {
	catalog, err := i.flows.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FlowSummary, 0, len(catalog.Flows))
	for _, flow := range catalog.Flows {
		out = append(out, dto.FlowSummary{
			Tradition:    flow.Tradition,
			Label:        flow.Label,
			Name:         flow.Name,
			StepCount:    len(flow.Steps),
			TotalMinutes: flow.TotalMinutes(),
		})
	}
	return out, nil
}

func (i *Interactor) Flow(ctx context.Context, tradition, region string) (dto.FlowOutput, error) {
	catalog, err := i.flows.Catalog(ctx)
	if err != nil {
		return dto.FlowOutput{}, err
	}
	flow, err := lookupFlow(catalog, tradition)
	if err != nil {
		return dto.FlowOutput{}, err
	}
	region = strings.ToLower(strings.TrimSpace(region))
	steps := make([]dto.StepOutput, 0, len(flow.Steps))
	for idx, step := range flow.Steps {
		steps = append(steps, toStepOutput(idx, step, domain.StepPending, false))
	}
	return dto.FlowOutput{
		Tradition:         flow.Tradition,
		Label:             flow.Label,
		Name:              flow.Name,
		Region:            region,
		RegionLabel:       catalog.RegionLabel(region),
		Steps:             steps,
		Materials:         append([]string(nil), flow.Materials...),
		Mantras:           append([]string(nil), flow.Mantras...),
		Variations:        append([]string(nil), flow.Variations(region)...),
		DietaryGuidelines: append([]string(nil), flow.DietaryGuidelines...),
		TotalMinutes:      flow.TotalMinutes(),
	}, nil
}

func (i *Interactor) ProfileFlow(ctx context.Context) (dto.FlowOutput, error) {
	profile, err := i.profile(ctx)
	if err != nil {
		return dto.FlowOutput{}, err
	}
	return i.Flow(ctx, profile.Tradition, profile.Region)
}

func (i *Interactor) Session(ctx context.Context) (dto.SessionOutput, error) {
	s, err := i.session(ctx)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toSessionOutput(s), nil
}

func (i *Interactor) Start(ctx context.Context) (dto.SessionOutput, error) {
	s, err := i.session(ctx)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	if err := s.tracker.StartRitual(ctx); err != nil {
		return dto.SessionOutput{}, err
	}
	return toSessionOutput(s), nil
}

func (i *Interactor) CompleteStep(ctx context.Context, stepID string) (dto.StepResultOutput, error) {
	s, err := i.session(ctx)
	if err != nil {
		return dto.StepResultOutput{}, err
	}
	stepID, err = resolveStepID(s.tracker, stepID)
	if err != nil {
		return dto.StepResultOutput{}, err
	}
	outcome, err := s.tracker.MarkStepCompleted(ctx, stepID)
	if err != nil {
		return dto.StepResultOutput{}, err
	}
	return dto.StepResultOutput{
		StepID:          stepID,
		Changed:         outcome.Changed,
		RitualCompleted: outcome.RitualCompleted,
		Streak: dto.StreakOutput{
			Current:            outcome.Streak.Current,
			Longest:            outcome.Streak.Longest,
			LastCompletionDate: outcome.Streak.LastCompletionDate,
		},
		Session: toSessionOutput(s),
	}, nil
}

func (i *Interactor) ReopenStep(ctx context.Context, stepID string) (dto.StepResultOutput, error) {
	s, err := i.session(ctx)
	if err != nil {
		return dto.StepResultOutput{}, err
	}
	stepID = strings.TrimSpace(stepID)
	if stepID == "" {
		return dto.StepResultOutput{}, fmt.Errorf("%w: step id is required", apperrors.ErrInvalidInput)
	}
	changed, err := s.tracker.MarkStepIncomplete(ctx, stepID)
	if err != nil {
		return dto.StepResultOutput{}, err
	}
	return dto.StepResultOutput{StepID: stepID, Changed: changed, Session: toSessionOutput(s)}, nil
}

func (i *Interactor) Next(ctx context.Context) (dto.SessionOutput, bool, error) {
	return i.navigate(ctx, func(t *service.Tracker) bool { return t.GoToNextStep() })
}

func (i *Interactor) Previous(ctx context.Context) (dto.SessionOutput, bool, error) {
	return i.navigate(ctx, func(t *service.Tracker) bool { return t.GoToPreviousStep() })
}

func (i *Interactor) GoTo(ctx context.Context, index int) (dto.SessionOutput, bool, error) {
	return i.navigate(ctx, func(t *service.Tracker) bool { return t.GoToStep(index) })
}

// Reset clears the in-memory session only.
func (i *Interactor) Reset(ctx context.Context) (dto.SessionOutput, error) {
	s, err := i.session(ctx)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	s.tracker.ResetProgress()
	return toSessionOutput(s), nil
}

func (i *Interactor) Materials(ctx context.Context) (dto.ChecklistOutput, error) {
	s, err := i.session(ctx)
	if err != nil {
		return dto.ChecklistOutput{}, err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	return toChecklistOutput(s.checklist), nil
}

func (i *Interactor) ToggleMaterial(ctx context.Context, item string) (dto.ChecklistOutput, error) {
	s, err := i.session(ctx)
	if err != nil {
		return dto.ChecklistOutput{}, err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := s.checklist.Toggle(item); !ok {
		return dto.ChecklistOutput{}, fmt.Errorf("%w: unknown material %q", apperrors.ErrInvalidInput, item)
	}
	return toChecklistOutput(s.checklist), nil
}

func (i *Interactor) ToggleAllMaterials(ctx context.Context) (dto.ChecklistOutput, error) {
	s, err := i.session(ctx)
	if err != nil {
		return dto.ChecklistOutput{}, err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	s.checklist.ToggleAll()
	return toChecklistOutput(s.checklist), nil
}

func (i *Interactor) navigate(ctx context.Context, move func(*service.Tracker) bool) (dto.SessionOutput, bool, error) {
	s, err := i.session(ctx)
	if err != nil {
		return dto.SessionOutput{}, false, err
	}
	moved := move(s.tracker)
	return toSessionOutput(s), moved, nil
}

func (i *Interactor) profile(ctx context.Context) (ritualout.Profile, error) {
	profile, found, err := i.profiles.Profile(ctx)
	if err != nil {
		return ritualout.Profile{}, err
	}
	if !found {
		return ritualout.Profile{}, apperrors.ErrNoProfile
	}
	return profile, nil
}

// session returns today's session for the saved profile, building a new one
// when the day or the profile changed.
func (i *Interactor) session(ctx context.Context) (*session, error) {
	profile, err := i.profile(ctx)
	if err != nil {
		return nil, err
	}
	today := clock.DateIn(i.clock.Now(), i.loc)

	i.mu.Lock()
	defer i.mu.Unlock()
	if s := i.current; s != nil && s.date == today && s.tradition == profile.Tradition &&
		s.region == profile.Region && s.kidMode == profile.KidMode {
		return s, nil
	}

	catalog, err := i.flows.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	flow, err := lookupFlow(catalog, profile.Tradition)
	if err != nil {
		return nil, err
	}
	tracker, err := service.NewTracker(ctx, flow.Steps, i.recorder, i.clock, i.logger)
	if err != nil {
		return nil, err
	}
	i.current = &session{
		date:      today,
		tradition: profile.Tradition,
		region:    profile.Region,
		kidMode:   profile.KidMode,
		flow:      flow,
		tracker:   tracker,
		checklist: domain.NewChecklist(flow.Materials),
	}
	i.logger.Debug("ritual session opened", zap.String("date", today), zap.String("tradition", profile.Tradition))
	return i.current, nil
}

func lookupFlow(catalog domain.Catalog, tradition string) (domain.Flow, error) {
	tradition = strings.ToLower(strings.TrimSpace(tradition))
	flow, ok := catalog.Flow(tradition)
	if !ok {
		return domain.Flow{}, fmt.Errorf("%w: no flow for tradition %q", apperrors.ErrNotFound, tradition)
	}
	return flow, nil
}

func resolveStepID(tracker *service.Tracker, stepID string) (string, error) {
	stepID = strings.TrimSpace(stepID)
	if stepID != "" {
		return stepID, nil
	}
	current, ok := tracker.CurrentStep()
	if ok {
		return current.ID, nil
	}
	// Every step is done but the completion was never recorded; completing
	// any step retries it.
	if steps := tracker.Steps(); tracker.RemainingCount() == 0 && !tracker.State().IsCompleted {
		return steps[len(steps)-1].ID, nil
	}
	return "", fmt.Errorf("%w: no active step", apperrors.ErrInvalidInput)
}

func toStepOutput(index int, step domain.Step, status domain.StepStatus, kidMode bool) dto.StepOutput {
	if kidMode {
		step = step.ForKids()
	}
	return dto.StepOutput{
		Index:           index,
		ID:              step.ID,
		Title:           step.Title,
		Description:     step.Description,
		DurationMinutes: step.EstimatedMinutes(),
		Materials:       append([]string(nil), step.Materials...),
		Mantras:         append([]string(nil), step.Mantras...),
		Status:          string(status),
	}
}

func toSessionOutput(s *session) dto.SessionOutput {
	state := s.tracker.State()
	stats := s.tracker.TimeStats()
	steps := s.tracker.Steps()
	out := dto.SessionOutput{
		Date:             s.date,
		Tradition:        s.tradition,
		Region:           s.region,
		FlowName:         s.flow.Name,
		Steps:            make([]dto.StepOutput, 0, len(steps)),
		CurrentIndex:     state.CurrentIndex,
		CompletedCount:   len(state.CompletedSteps),
		TotalSteps:       state.TotalSteps,
		IsCompleted:      state.IsCompleted,
		ProgressPercent:  s.tracker.ProgressPercentage(),
		EstimatedMinutes: stats.Estimated,
		RemainingMinutes: stats.Remaining,
		SpentMinutes:     stats.Spent,
		Efficiency:       stats.Efficiency,
		StartedAt:        state.StartedAt,
		KidMode:          s.kidMode,
	}
	for idx, step := range steps {
		out.Steps = append(out.Steps, toStepOutput(idx, step, s.tracker.StepStatus(step.ID), s.kidMode))
	}
	if current, ok := s.tracker.CurrentStep(); ok {
		out.HasCurrent = true
		out.Current = toStepOutput(state.CurrentIndex, current, s.tracker.StepStatus(current.ID), s.kidMode)
	}
	return out
}

func toChecklistOutput(c *domain.Checklist) dto.ChecklistOutput {
	items := c.Items()
	out := dto.ChecklistOutput{
		Items:      make([]dto.ChecklistItem, 0, len(items)),
		Checked:    c.CheckedCount(),
		Total:      len(items),
		Percent:    c.Percent(),
		AllChecked: c.AllChecked(),
	}
	for _, item := range items {
		out.Items = append(out.Items, dto.ChecklistItem{Name: item, Checked: c.IsChecked(item)})
	}
	return out
}
