package dto

import "time"

type ProfileInput struct {
	UserID          string
	Tradition       string
	Region          string
	Language        string
	DailyTime       string
	DurationMinutes int
	DietaryRules    string
	KidMode         bool
}

type ProfileOutput struct {
	UserID          string
	Tradition       string
	Region          string
	Language        string
	DailyTime       string
	DurationMinutes int
	DietaryRules    string
	KidMode         bool
}

type StepInput struct {
	StepID string
	Date   string
}

type CompleteRitualInput struct {
	TotalSteps      int
	DurationMinutes int
}

type DayOutput struct {
	Date             string
	CompletedSteps   []string
	IsCompleted      bool
	StartedAt        time.Time
	EndedAt          time.Time
	TotalDurationMin int
	TotalSteps       int
}

type StreakOutput struct {
	Current            int
	Longest            int
	LastCompletionDate string
}

type CompleteRitualOutput struct {
	Day    DayOutput
	Streak StreakOutput
}

type MonthlyStatsOutput struct {
	CompletedDays  int
	TotalDays      int
	CompletionRate float64
}
