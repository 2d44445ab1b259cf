package domain

import (
	"errors"
	"fmt"
)

var errEmptySteps = errors.New("ritual has no steps")

type StepError struct {
	Index  int
	ID     string
	Reason string
}

func (e *StepError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("step %d: %s", e.Index+1, e.Reason)
	}
	return fmt.Sprintf("step %d (%s): %s", e.Index+1, e.ID, e.Reason)
}
