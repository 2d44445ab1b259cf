package in

import (
	"context"
	"time"

	"ritualcoach/internal/modules/timer/dto"
	timerin "ritualcoach/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Run counts down minutes and reports at most once per second.
func (h CLIHandler) Run(ctx context.Context, minutes int, report func(dto.Tick)) (dto.Tick, error) {
	if minutes < 0 {
		minutes = 0
	}
	var lastSecond time.Duration = -1
	return h.usecase.Run(ctx, time.Duration(minutes)*time.Minute, func(tick dto.Tick) {
		second := tick.Elapsed / time.Second
		if second == lastSecond || report == nil {
			return
		}
		lastSecond = second
		report(tick)
	})
}
