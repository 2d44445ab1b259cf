package in

import (
	"context"

	"ritualcoach/internal/modules/ritual/dto"
	ritualin "ritualcoach/internal/modules/ritual/port/in"
)

type CLIHandler struct {
	usecase ritualin.Usecase
}

func NewCLIHandler(usecase ritualin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Flows(ctx context.Context) ([]dto.FlowSummary, error) {
	return h.usecase.Flows(ctx)
}

// Flow shows tradition's flow, or the profile's flow when tradition is empty.
func (h CLIHandler) Flow(ctx context.Context, tradition, region string) (dto.FlowOutput, error) {
	if tradition == "" {
		return h.usecase.ProfileFlow(ctx)
	}
	return h.usecase.Flow(ctx, tradition, region)
}

func (h CLIHandler) Status(ctx context.Context) (dto.SessionOutput, error) {
	return h.usecase.Session(ctx)
}

func (h CLIHandler) Start(ctx context.Context) (dto.SessionOutput, error) {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) Complete(ctx context.Context, stepID string) (dto.StepResultOutput, error) {
	return h.usecase.CompleteStep(ctx, stepID)
}

func (h CLIHandler) Undo(ctx context.Context, stepID string) (dto.StepResultOutput, error) {
	return h.usecase.ReopenStep(ctx, stepID)
}

func (h CLIHandler) Materials(ctx context.Context) (dto.ChecklistOutput, error) {
	return h.usecase.Materials(ctx)
}
