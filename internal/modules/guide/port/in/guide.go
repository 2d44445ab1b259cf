package in

import (
	"context"

	"ritualcoach/internal/modules/guide/dto"
)

type Usecase interface {
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
	// Preview returns the guide body as Markdown without writing anything.
	Preview(ctx context.Context, tradition, region string) (string, error)
}
