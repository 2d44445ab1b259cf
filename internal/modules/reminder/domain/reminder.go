package domain

import (
	"fmt"
	"strings"
	"time"
)

// Schedule is a daily wall-clock time.
type Schedule struct {
	Hour   int
	Minute int
}

// ParseDailyTime reads an HH:MM time.
func ParseDailyTime(value string) (Schedule, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return Schedule{}, fmt.Errorf("daily time must be HH:MM, got %q", value)
	}
	return Schedule{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// CronSpec renders the schedule as a standard five-field cron expression.
func (s Schedule) CronSpec() string {
	return fmt.Sprintf("%d %d * * *", s.Minute, s.Hour)
}

func (s Schedule) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

// Status is what a reminder reports about today.
type Status struct {
	Date            string
	Tradition       string
	DailyTime       string
	DurationMinutes int
	CompletedSteps  int
	IsCompleted     bool
	StreakCurrent   int
	StreakLongest   int
}

type Reminder struct {
	Date    string
	Message string
	Done    bool
	Status  Status
}

func Compose(status Status) Reminder {
	var msg string
	switch {
	case status.IsCompleted:
		msg = fmt.Sprintf("Today's pūjā is already complete. Streak: %d day(s).", status.StreakCurrent)
	case status.CompletedSteps > 0:
		msg = fmt.Sprintf("Your pūjā is in progress (%d step(s) done). About %d minutes planned.", status.CompletedSteps, status.DurationMinutes)
	default:
		msg = fmt.Sprintf("Time for your daily pūjā (%d minutes).", status.DurationMinutes)
		if status.StreakCurrent > 0 {
			msg += fmt.Sprintf(" Keep your %d day streak going.", status.StreakCurrent)
		}
	}
	return Reminder{Date: status.Date, Message: msg, Done: status.IsCompleted, Status: status}
}
