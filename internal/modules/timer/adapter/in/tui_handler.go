package in

import (
	timerin "ritualcoach/internal/modules/timer/port/in"
)

type TUIHandler struct {
	usecase timerin.Usecase
}

func NewTUIHandler(usecase timerin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) ForMinutes(minutes int, listener timerin.Listener) timerin.Countdown {
	return h.usecase.ForMinutes(minutes, listener)
}
