package in

import (
	"context"

	"ritualcoach/internal/modules/progress/dto"
	progressin "ritualcoach/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) SaveProfile(ctx context.Context, input dto.ProfileInput) (dto.ProfileOutput, error) {
	return h.usecase.SaveProfile(ctx, input)
}

func (h CLIHandler) Profile(ctx context.Context) (dto.ProfileOutput, bool, error) {
	return h.usecase.GetProfile(ctx)
}

func (h CLIHandler) Streak(ctx context.Context) (dto.StreakOutput, error) {
	return h.usecase.Streak(ctx)
}

func (h CLIHandler) Week(ctx context.Context) ([]dto.DayOutput, error) {
	return h.usecase.WeeklyProgress(ctx)
}

func (h CLIHandler) Month(ctx context.Context) (dto.MonthlyStatsOutput, error) {
	return h.usecase.MonthlyStats(ctx)
}

func (h CLIHandler) Export(ctx context.Context) ([]byte, error) {
	return h.usecase.Export(ctx)
}

func (h CLIHandler) Clear(ctx context.Context) (int, error) {
	return h.usecase.ClearAll(ctx)
}
