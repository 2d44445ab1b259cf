package domain

import "time"

// ProgressState is a snapshot of a ritual session. CurrentIndex equals
// TotalSteps when no step is active.
type ProgressState struct {
	CurrentIndex       int
	CompletedSteps     []string
	IsCompleted        bool
	TotalSteps         int
	EstimatedRemaining int
	ActualSpent        int
	StartedAt          time.Time
}

type TimeStats struct {
	Estimated  int
	Remaining  int
	Spent      int
	Efficiency float64
}

// NewTimeStats computes efficiency as spent over estimated in percent. A zero
// estimate yields 100; values above 100 are kept.
func NewTimeStats(estimated, remaining, spent int) TimeStats {
	efficiency := 100.0
	if estimated > 0 {
		efficiency = float64(spent) / float64(estimated) * 100
	}
	return TimeStats{Estimated: estimated, Remaining: remaining, Spent: spent, Efficiency: efficiency}
}

type Streak struct {
	Current            int
	Longest            int
	LastCompletionDate string
}

// StepOutcome reports what a completion toggle changed.
type StepOutcome struct {
	Changed         bool
	RitualCompleted bool
	Streak          Streak
}
