package out

import (
	"context"

	"ritualcoach/internal/modules/reminder/domain"
)

type StatusSource interface {
	// Status reports today's progress. found is false without a profile.
	Status(ctx context.Context) (status domain.Status, found bool, err error)
}

type Notifier interface {
	Notify(ctx context.Context, reminder domain.Reminder) error
}
