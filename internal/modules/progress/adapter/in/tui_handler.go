package in

import (
	"context"

	"ritualcoach/internal/modules/progress/dto"
	progressin "ritualcoach/internal/modules/progress/port/in"
)

// TUIHandler serves the stats tab.
type TUIHandler struct {
	usecase progressin.Usecase
}

func NewTUIHandler(usecase progressin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Streak(ctx context.Context) (dto.StreakOutput, error) {
	return h.usecase.Streak(ctx)
}

func (h TUIHandler) WeeklyProgress(ctx context.Context) ([]dto.DayOutput, error) {
	return h.usecase.WeeklyProgress(ctx)
}

func (h TUIHandler) MonthlyStats(ctx context.Context) (dto.MonthlyStatsOutput, error) {
	return h.usecase.MonthlyStats(ctx)
}
