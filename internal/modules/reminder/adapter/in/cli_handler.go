package in

import (
	"context"

	"ritualcoach/internal/modules/reminder/dto"
	reminderin "ritualcoach/internal/modules/reminder/port/in"
)

type CLIHandler struct {
	usecase reminderin.Usecase
}

func NewCLIHandler(usecase reminderin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Run(ctx context.Context, started func(dto.ScheduleOutput)) error {
	return h.usecase.Run(ctx, started)
}

func (h CLIHandler) Now(ctx context.Context) (dto.ReminderOutput, error) {
	return h.usecase.RemindNow(ctx)
}
