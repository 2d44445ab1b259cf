package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ritualcoach/internal/modules/timer/domain"
	"ritualcoach/internal/modules/timer/dto"
	timerin "ritualcoach/internal/modules/timer/port/in"
	"ritualcoach/internal/modules/timer/service"
	"ritualcoach/internal/platform/clock"
)

type Interactor struct {
	clock    clock.Clock
	interval time.Duration
	logger   *zap.Logger
}

func NewInteractor(clk clock.Clock, interval time.Duration, logger *zap.Logger) timerin.Usecase {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	if interval <= 0 {
		interval = service.DefaultTickInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{clock: clk, interval: interval, logger: logger}
}

func (i *Interactor) NewCountdown(duration time.Duration, listener domain.Listener) timerin.Countdown {
	return service.NewCountdown(duration, listener,
		service.WithClock(i.clock),
		service.WithInterval(i.interval),
		service.WithLogger(i.logger),
	)
}

func (i *Interactor) ForMinutes(minutes int, listener domain.Listener) timerin.Countdown {
	if minutes < 0 {
		minutes = 0
	}
	return i.NewCountdown(time.Duration(minutes)*time.Minute, listener)
}

func (i *Interactor) Run(ctx context.Context, duration time.Duration, report func(dto.Tick)) (dto.Tick, error) {
	listener := domain.NewChannelListener(16)
	countdown := i.NewCountdown(duration, listener)
	defer func() {
		listener.Close()
		countdown.Close()
	}()

	if !countdown.Start() {
		return toTick(countdown.State()), nil
	}
	for {
		select {
		case <-ctx.Done():
			countdown.Stop()
			return toTick(countdown.State()), ctx.Err()
		case ev := <-listener.Events():
			tick := toTick(ev.State)
			switch ev.Kind {
			case domain.EventTick:
				if report != nil {
					report(tick)
				}
			case domain.EventComplete:
				return tick, nil
			}
		}
	}
}

func toTick(s domain.State) dto.Tick {
	return dto.Tick{
		Phase:     string(s.Phase()),
		Elapsed:   s.Elapsed,
		Remaining: s.Remaining(),
		Progress:  s.Progress(),
		Clock:     domain.FormatClock(s.Remaining()),
		Completed: s.Completed,
	}
}
