package in

import (
	"context"

	"ritualcoach/internal/modules/guide/dto"
	guidein "ritualcoach/internal/modules/guide/port/in"
)

type TUIHandler struct {
	usecase guidein.Usecase
}

func NewTUIHandler(usecase guidein.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, input)
}
