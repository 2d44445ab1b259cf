package out

import (
	"context"
	"time"

	"ritualcoach/internal/modules/ritual/domain"
)

// DayRecord is the stored progress for one calendar day.
type DayRecord struct {
	Date           string
	CompletedSteps []string
	IsCompleted    bool
	StartedAt      time.Time
}

// ProgressRecorder persists a session's step and completion changes.
type ProgressRecorder interface {
	Today(ctx context.Context) (DayRecord, bool, error)
	StartRitual(ctx context.Context) (time.Time, error)
	MarkStepCompleted(ctx context.Context, stepID string) error
	MarkStepIncomplete(ctx context.Context, stepID string) error
	MarkRitualCompleted(ctx context.Context, totalSteps, spentMinutes int) (domain.Streak, error)
}

type Profile struct {
	Tradition       string
	Region          string
	Language        string
	DailyTime       string
	DurationMinutes int
	KidMode         bool
}

type ProfileReader interface {
	Profile(ctx context.Context) (Profile, bool, error)
}

// FlowSource supplies the ordered ritual steps for each tradition.
type FlowSource interface {
	Catalog(ctx context.Context) (domain.Catalog, error)
}
