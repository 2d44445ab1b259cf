package dto

import "time"

type Tick struct {
	Phase     string
	Elapsed   time.Duration
	Remaining time.Duration
	Progress  float64
	Clock     string
	Completed bool
}
