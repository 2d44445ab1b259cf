package in

import (
	"context"

	"ritualcoach/internal/modules/ritual/dto"
)

type Usecase interface {
	Flows(ctx context.Context) ([]dto.FlowSummary, error)
	Flow(ctx context.Context, tradition, region string) (dto.FlowOutput, error)
	ProfileFlow(ctx context.Context) (dto.FlowOutput, error)

	Session(ctx context.Context) (dto.SessionOutput, error)
	Start(ctx context.Context) (dto.SessionOutput, error)
	// CompleteStep completes stepID, or the active step when stepID is empty.
	CompleteStep(ctx context.Context, stepID string) (dto.StepResultOutput, error)
	ReopenStep(ctx context.Context, stepID string) (dto.StepResultOutput, error)
	Next(ctx context.Context) (dto.SessionOutput, bool, error)
	Previous(ctx context.Context) (dto.SessionOutput, bool, error)
	GoTo(ctx context.Context, index int) (dto.SessionOutput, bool, error)
	Reset(ctx context.Context) (dto.SessionOutput, error)

	Materials(ctx context.Context) (dto.ChecklistOutput, error)
	ToggleMaterial(ctx context.Context, item string) (dto.ChecklistOutput, error)
	ToggleAllMaterials(ctx context.Context) (dto.ChecklistOutput, error)
}
