package in

import (
	"context"

	"ritualcoach/internal/modules/reminder/dto"
)

type Usecase interface {
	// Run schedules the daily reminder and blocks until ctx is done.
	Run(ctx context.Context, started func(dto.ScheduleOutput)) error
	RemindNow(ctx context.Context) (dto.ReminderOutput, error)
}
