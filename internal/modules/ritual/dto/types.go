package dto

import "time"

type StepOutput struct {
	Index           int
	ID              string
	Title           string
	Description     string
	DurationMinutes int
	Materials       []string
	Mantras         []string
	Status          string
}

type SessionOutput struct {
	Date             string
	Tradition        string
	Region           string
	FlowName         string
	Steps            []StepOutput
	CurrentIndex     int
	HasCurrent       bool
	Current          StepOutput
	CompletedCount   int
	TotalSteps       int
	IsCompleted      bool
	ProgressPercent  int
	EstimatedMinutes int
	RemainingMinutes int
	SpentMinutes     int
	Efficiency       float64
	StartedAt        time.Time
	KidMode          bool
}

type StreakOutput struct {
	Current            int
	Longest            int
	LastCompletionDate string
}

type StepResultOutput struct {
	StepID          string
	Changed         bool
	RitualCompleted bool
	Streak          StreakOutput
	Session         SessionOutput
}

type FlowSummary struct {
	Tradition    string
	Label        string
	Name         string
	StepCount    int
	TotalMinutes int
}

type FlowOutput struct {
	Tradition         string
	Label             string
	Name              string
	Region            string
	RegionLabel       string
	Steps             []StepOutput
	Materials         []string
	Mantras           []string
	Variations        []string
	DietaryGuidelines []string
	TotalMinutes      int
}

type ChecklistItem struct {
	Name    string
	Checked bool
}

type ChecklistOutput struct {
	Items      []ChecklistItem
	Checked    int
	Total      int
	Percent    int
	AllChecked bool
}
