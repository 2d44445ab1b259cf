package usecase

import (
	"context"
	"time"

	"ritualcoach/internal/modules/reminder/domain"
	"ritualcoach/internal/modules/reminder/dto"
	reminderin "ritualcoach/internal/modules/reminder/port/in"
	"ritualcoach/internal/modules/reminder/service"
)

type Interactor struct {
	scheduler *service.Scheduler
	loc       *time.Location
}

func NewInteractor(scheduler *service.Scheduler, loc *time.Location) reminderin.Usecase {
	if loc == nil {
		loc = time.UTC
	}
	return &Interactor{scheduler: scheduler, loc: loc}
}

func (i *Interactor) Run(ctx context.Context, started func(dto.ScheduleOutput)) error {
	schedule, err := i.scheduler.Start(ctx)
	if err != nil {
		return err
	}
	defer i.scheduler.Stop()

	if started != nil {
		next, _ := i.scheduler.Next()
		started(toScheduleOutput(schedule, i.loc, next))
	}
	<-ctx.Done()
	return nil
}

func (i *Interactor) RemindNow(ctx context.Context) (dto.ReminderOutput, error) {
	reminder, err := i.scheduler.RemindNow(ctx)
	if err != nil {
		return dto.ReminderOutput{}, err
	}
	return dto.ReminderOutput{
		Date:    reminder.Date,
		Message: reminder.Message,
		Done:    reminder.Done,
		Streak:  reminder.Status.StreakCurrent,
	}, nil
}

func toScheduleOutput(s domain.Schedule, loc *time.Location, next time.Time) dto.ScheduleOutput {
	return dto.ScheduleOutput{
		DailyTime: s.String(),
		CronSpec:  s.CronSpec(),
		TimeZone:  loc.String(),
		NextRun:   next,
	}
}
