package out

import (
	"context"

	"go.uber.org/zap"

	"ritualcoach/internal/modules/reminder/domain"
)

// LogNotifier delivers reminders as structured log entries.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger.Named("reminder")}
}

func (n *LogNotifier) Notify(_ context.Context, r domain.Reminder) error {
	n.logger.Info(r.Message,
		zap.String("date", r.Date),
		zap.String("tradition", r.Status.Tradition),
		zap.Bool("done", r.Done),
		zap.Int("completed_steps", r.Status.CompletedSteps),
		zap.Int("streak", r.Status.StreakCurrent),
	)
	return nil
}
