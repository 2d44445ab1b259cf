package out

import (
	"context"
	"time"

	progressdto "ritualcoach/internal/modules/progress/dto"
	progressin "ritualcoach/internal/modules/progress/port/in"
	"ritualcoach/internal/modules/ritual/domain"
	ritualout "ritualcoach/internal/modules/ritual/port/out"
)

// ProgressBridge records ritual sessions and reads the profile through the
// progress module.
type ProgressBridge struct {
	progress progressin.Usecase
}

func NewProgressBridge(progress progressin.Usecase) *ProgressBridge {
	return &ProgressBridge{progress: progress}
}

var (
	_ ritualout.ProgressRecorder = (*ProgressBridge)(nil)
	_ ritualout.ProfileReader    = (*ProgressBridge)(nil)
)

func (b *ProgressBridge) Today(ctx context.Context) (ritualout.DayRecord, bool, error) {
	day, found, err := b.progress.TodaysProgress(ctx)
	if err != nil || !found {
		return ritualout.DayRecord{}, found, err
	}
	return ritualout.DayRecord{
		Date:           day.Date,
		CompletedSteps: day.CompletedSteps,
		IsCompleted:    day.IsCompleted,
		StartedAt:      day.StartedAt,
	}, true, nil
}

func (b *ProgressBridge) StartRitual(ctx context.Context) (time.Time, error) {
	day, err := b.progress.StartRitual(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return day.StartedAt, nil
}

func (b *ProgressBridge) MarkStepCompleted(ctx context.Context, stepID string) error {
	_, err := b.progress.MarkStepCompleted(ctx, progressdto.StepInput{StepID: stepID})
	return err
}

func (b *ProgressBridge) MarkStepIncomplete(ctx context.Context, stepID string) error {
	_, err := b.progress.MarkStepIncomplete(ctx, progressdto.StepInput{StepID: stepID})
	return err
}

func (b *ProgressBridge) MarkRitualCompleted(ctx context.Context, totalSteps, spentMinutes int) (domain.Streak, error) {
	out, err := b.progress.MarkRitualCompleted(ctx, progressdto.CompleteRitualInput{
		TotalSteps:      totalSteps,
		DurationMinutes: spentMinutes,
	})
	if err != nil {
		return domain.Streak{}, err
	}
	return domain.Streak{
		Current:            out.Streak.Current,
		Longest:            out.Streak.Longest,
		LastCompletionDate: out.Streak.LastCompletionDate,
	}, nil
}

func (b *ProgressBridge) Profile(ctx context.Context) (ritualout.Profile, bool, error) {
	profile, found, err := b.progress.GetProfile(ctx)
	if err != nil || !found {
		return ritualout.Profile{}, found, err
	}
	return ritualout.Profile{
		Tradition:       profile.Tradition,
		Region:          profile.Region,
		Language:        profile.Language,
		DailyTime:       profile.DailyTime,
		DurationMinutes: profile.DurationMinutes,
		KidMode:         profile.KidMode,
	}, true, nil
}
