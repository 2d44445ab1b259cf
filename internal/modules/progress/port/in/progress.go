package in

import (
	"context"

	"ritualcoach/internal/modules/progress/dto"
)

type Usecase interface {
	SaveProfile(ctx context.Context, input dto.ProfileInput) (dto.ProfileOutput, error)
	GetProfile(ctx context.Context) (dto.ProfileOutput, bool, error)
	TodaysProgress(ctx context.Context) (dto.DayOutput, bool, error)
	DailyProgress(ctx context.Context, date string) (dto.DayOutput, bool, error)
	StartRitual(ctx context.Context) (dto.DayOutput, error)
	MarkStepCompleted(ctx context.Context, input dto.StepInput) (dto.DayOutput, error)
	MarkStepIncomplete(ctx context.Context, input dto.StepInput) (dto.DayOutput, error)
	MarkRitualCompleted(ctx context.Context, input dto.CompleteRitualInput) (dto.CompleteRitualOutput, error)
	Streak(ctx context.Context) (dto.StreakOutput, error)
	WeeklyProgress(ctx context.Context) ([]dto.DayOutput, error)
	MonthlyStats(ctx context.Context) (dto.MonthlyStatsOutput, error)
	ClearAll(ctx context.Context) (int, error)
	Export(ctx context.Context) ([]byte, error)
}
