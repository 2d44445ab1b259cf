package in

import (
	"context"
	"time"

	"ritualcoach/internal/modules/timer/domain"
	"ritualcoach/internal/modules/timer/dto"
)

// Listener receives countdown events; see domain.ChannelListener.
type Listener = domain.Listener

type Countdown interface {
	Start() bool
	Pause() bool
	Resume() bool
	Toggle() bool
	Reset()
	Stop()
	Close()
	State() domain.State
	Remaining() time.Duration
	Progress() float64
	FormattedRemaining() string
	FormattedElapsed() string
}

type Usecase interface {
	NewCountdown(duration time.Duration, listener domain.Listener) Countdown
	ForMinutes(minutes int, listener domain.Listener) Countdown
	// Run blocks until a countdown of duration completes or ctx is done,
	// calling report on every tick.
	Run(ctx context.Context, duration time.Duration, report func(dto.Tick)) (dto.Tick, error)
}
