package in

import (
	"context"

	"ritualcoach/internal/modules/ritual/dto"
	ritualin "ritualcoach/internal/modules/ritual/port/in"
)

// TUIHandler serves the ritual and materials tabs.
type TUIHandler struct {
	usecase ritualin.Usecase
}

func NewTUIHandler(usecase ritualin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Session(ctx context.Context) (dto.SessionOutput, error) {
	return h.usecase.Session(ctx)
}

func (h TUIHandler) Start(ctx context.Context) (dto.SessionOutput, error) {
	return h.usecase.Start(ctx)
}

func (h TUIHandler) CompleteStep(ctx context.Context, stepID string) (dto.StepResultOutput, error) {
	return h.usecase.CompleteStep(ctx, stepID)
}

func (h TUIHandler) ReopenStep(ctx context.Context, stepID string) (dto.StepResultOutput, error) {
	return h.usecase.ReopenStep(ctx, stepID)
}

func (h TUIHandler) GoTo(ctx context.Context, index int) (dto.SessionOutput, bool, error) {
	return h.usecase.GoTo(ctx, index)
}

func (h TUIHandler) Reset(ctx context.Context) (dto.SessionOutput, error) {
	return h.usecase.Reset(ctx)
}

func (h TUIHandler) Materials(ctx context.Context) (dto.ChecklistOutput, error) {
	return h.usecase.Materials(ctx)
}

func (h TUIHandler) ToggleMaterial(ctx context.Context, item string) (dto.ChecklistOutput, error) {
	return h.usecase.ToggleMaterial(ctx, item)
}

func (h TUIHandler) ToggleAllMaterials(ctx context.Context) (dto.ChecklistOutput, error) {
	return h.usecase.ToggleAllMaterials(ctx)
}
