package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ritualcoach/internal/modules/progress/domain"
	"ritualcoach/internal/modules/progress/dto"
	progressin "ritualcoach/internal/modules/progress/port/in"
	"ritualcoach/internal/modules/progress/service"
	apperrors "ritualcoach/internal/platform/errors"
	"ritualcoach/internal/platform/id"
)

type Interactor struct {
	svc *service.ProgressService
	ids id.Generator
}

func NewInteractor(svc *service.ProgressService, ids id.Generator) progressin.Usecase {
	if ids == nil {
		ids = id.UUID{}
	}
	return &Interactor{svc: svc, ids: ids}
}

// SaveProfile validates the profile and assigns a user id when none is given.
func (i *Interactor) SaveProfile(ctx context.Context, input dto.ProfileInput) (dto.ProfileOutput, error) {
	profile := domain.Profile{
		UserID:          strings.TrimSpace(input.UserID),
		Tradition:       domain.Tradition(strings.ToLower(strings.TrimSpace(input.Tradition))),
		Region:          domain.Region(strings.ToLower(strings.TrimSpace(input.Region))),
		Language:        domain.Language(strings.ToLower(strings.TrimSpace(input.Language))),
		DailyTime:       strings.TrimSpace(input.DailyTime),
		DurationMinutes: input.DurationMinutes,
		DietaryRules:    strings.TrimSpace(input.DietaryRules),
		KidMode:         input.KidMode,
	}
	if profile.UserID == "" {
		profile.UserID = i.ids.New()
	}
	if err := profile.Validate(); err != nil {
		return dto.ProfileOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := i.svc.SaveProfile(ctx, profile); err != nil {
		return dto.ProfileOutput{}, err
	}
	return toProfileOutput(profile), nil
}

func (i *Interactor) GetProfile(ctx context.Context) (dto.ProfileOutput, bool, error) {
	profile, found, err := i.svc.GetProfile(ctx)
	if err != nil || !found {
		return dto.ProfileOutput{}, found, err
	}
	return toProfileOutput(profile), true, nil
}

func (i *Interactor) TodaysProgress(ctx context.Context) (dto.DayOutput, bool, error) {
	state, found, err := i.svc.GetTodaysProgress(ctx)
	if err != nil {
		return dto.DayOutput{}, false, err
	}
	if !found {
		return toDayOutput(domain.NewDailyRitualState(i.svc.Today())), false, nil
	}
	return toDayOutput(state), true, nil
}

func (i *Interactor) DailyProgress(ctx context.Context, date string) (dto.DayOutput, bool, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return dto.DayOutput{}, false, fmt.Errorf("%w: date %q", apperrors.ErrInvalidInput, date)
	}
	state, found, err := i.svc.GetDailyProgress(ctx, date)
	if err != nil {
		return dto.DayOutput{}, false, err
	}
	if !found {
		return toDayOutput(domain.NewDailyRitualState(date)), false, nil
	}
	return toDayOutput(state), true, nil
}

func (i *Interactor) StartRitual(ctx context.Context) (dto.DayOutput, error) {
	state, err := i.svc.StartRitual(ctx)
	if err != nil {
		return dto.DayOutput{}, err
	}
	return toDayOutput(state), nil
}

func (i *Interactor) MarkStepCompleted(ctx context.Context, input dto.StepInput) (dto.DayOutput, error) {
	state, err := i.svc.MarkStepCompleted(ctx, input.StepID, input.Date)
	if err != nil {
		return dto.DayOutput{}, err
	}
	return toDayOutput(state), nil
}

func (i *Interactor) MarkStepIncomplete(ctx context.Context, input dto.StepInput) (dto.DayOutput, error) {
	state, _, err := i.svc.MarkStepIncomplete(ctx, input.StepID, input.Date)
	if err != nil {
		return dto.DayOutput{}, err
	}
	return toDayOutput(state), nil
}

func (i *Interactor) MarkRitualCompleted(ctx context.Context, input dto.CompleteRitualInput) (dto.CompleteRitualOutput, error) {
	if input.TotalSteps < 0 || input.DurationMinutes < 0 {
		return dto.CompleteRitualOutput{}, fmt.Errorf("%w: steps and duration must be non-negative", apperrors.ErrInvalidInput)
	}
	state, streak, err := i.svc.MarkRitualCompleted(ctx, input.TotalSteps, input.DurationMinutes)
	if err != nil {
		return dto.CompleteRitualOutput{}, err
	}
	return dto.CompleteRitualOutput{Day: toDayOutput(state), Streak: toStreakOutput(streak)}, nil
}

func (i *Interactor) Streak(ctx context.Context) (dto.StreakOutput, error) {
	streak, err := i.svc.GetStreak(ctx)
	if err != nil {
		return dto.StreakOutput{}, err
	}
	return toStreakOutput(streak), nil
}

func (i *Interactor) WeeklyProgress(ctx context.Context) ([]dto.DayOutput, error) {
	days, err := i.svc.GetWeeklyProgress(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DayOutput, 0, len(days))
	for _, day := range days {
		out = append(out, toDayOutput(day))
	}
	return out, nil
}

func (i *Interactor) MonthlyStats(ctx context.Context) (dto.MonthlyStatsOutput, error) {
	stats, err := i.svc.GetMonthlyStats(ctx)
	if err != nil {
		return dto.MonthlyStatsOutput{}, err
	}
	return dto.MonthlyStatsOutput{
		CompletedDays:  stats.CompletedDays,
		TotalDays:      stats.TotalDays,
		CompletionRate: stats.CompletionRate,
	}, nil
}

func (i *Interactor) ClearAll(ctx context.Context) (int, error) {
	return i.svc.ClearAllProgress(ctx)
}

func (i *Interactor) Export(ctx context.Context) ([]byte, error) {
	return i.svc.ExportProgress(ctx)
}

func toProfileOutput(p domain.Profile) dto.ProfileOutput {
	return dto.ProfileOutput{
		UserID:          p.UserID,
		Tradition:       string(p.Tradition),
		Region:          string(p.Region),
		Language:        string(p.Language),
		DailyTime:       p.DailyTime,
		DurationMinutes: p.DurationMinutes,
		DietaryRules:    p.DietaryRules,
		KidMode:         p.KidMode,
	}
}

func toDayOutput(state domain.DailyRitualState) dto.DayOutput {
	out := dto.DayOutput{
		Date:           state.Date,
		CompletedSteps: append([]string{}, state.CompletedSteps...),
		IsCompleted:    state.IsCompleted,
		TotalSteps:     state.TotalSteps,
	}
	if state.StartTime != nil {
		out.StartedAt = time.UnixMilli(*state.StartTime).UTC()
	}
	if state.EndTime != nil {
		out.EndedAt = time.UnixMilli(*state.EndTime).UTC()
	}
	if state.TotalDuration != nil {
		out.TotalDurationMin = *state.TotalDuration
	}
	return out
}

func toStreakOutput(s domain.Streak) dto.StreakOutput {
	return dto.StreakOutput{Current: s.Current, Longest: s.Longest, LastCompletionDate: s.LastCompletionDate}
}
