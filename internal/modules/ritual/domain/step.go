package domain

import "strings"

// DefaultStepMinutes is the estimate used for steps without a duration.
const DefaultStepMinutes = 5

type Step struct {
	ID              string   `yaml:"id"`
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	DurationMinutes int      `yaml:"duration_minutes,omitempty"`
	Materials       []string `yaml:"materials,omitempty"`
	Mantras         []string `yaml:"mantras,omitempty"`

	KidTitle       string `yaml:"kid_title,omitempty"`
	KidDescription string `yaml:"kid_description,omitempty"`
}

// ForKids swaps in the kid-friendly wording where the flow provides it.
func (s Step) ForKids() Step {
	if t := strings.TrimSpace(s.KidTitle); t != "" {
		s.Title = t
	}
	if d := strings.TrimSpace(s.KidDescription); d != "" {
		s.Description = d
	}
	return s
}

func (s Step) EstimatedMinutes() int {
	if s.DurationMinutes <= 0 {
		return DefaultStepMinutes
	}
	return s.DurationMinutes
}

type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepActive    StepStatus = "active"
	StepCompleted StepStatus = "completed"
)

func TotalMinutes(steps []Step) int {
	total := 0
	for _, step := range steps {
		total += step.EstimatedMinutes()
	}
	return total
}

// ValidateSteps requires a non-empty list with unique, non-blank ids.
func ValidateSteps(steps []Step) error {
	if len(steps) == 0 {
		return errEmptySteps
	}
	seen := make(map[string]struct{}, len(steps))
	for i, step := range steps {
		id := strings.TrimSpace(step.ID)
		if id == "" {
			return &StepError{Index: i, Reason: "missing id"}
		}
		if _, ok := seen[id]; ok {
			return &StepError{Index: i, ID: id, Reason: "duplicate id"}
		}
		seen[id] = struct{}{}
	}
	return nil
}
