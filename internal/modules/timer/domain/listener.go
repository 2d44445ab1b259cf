package domain

// Listener receives timer events one at a time, in the order the transitions
// happened, from a goroutine owned by the countdown. Implementations are never
// called with internal locks held and may call back into the countdown, except Close.
type Listener interface {
	OnTick(State)
	OnComplete(State)
	OnStart(State)
	OnPause(State)
	OnResume(State)
	OnReset(State)
}

type NopListener struct{}

func (NopListener) OnTick(State)     {}
func (NopListener) OnComplete(State) {}
func (NopListener) OnStart(State)    {}
func (NopListener) OnPause(State)    {}
func (NopListener) OnResume(State)   {}
func (NopListener) OnReset(State)    {}
