package in

import (
	"context"

	"ritualcoach/internal/modules/guide/dto"
	guidein "ritualcoach/internal/modules/guide/port/in"
)

type CLIHandler struct {
	usecase guidein.Usecase
}

func NewCLIHandler(usecase guidein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Export(ctx context.Context, tradition, region string, withHTML bool) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, dto.ExportInput{Tradition: tradition, Region: region, HTML: withHTML})
}

func (h CLIHandler) Preview(ctx context.Context, tradition, region string) (string, error) {
	return h.usecase.Preview(ctx, tradition, region)
}
