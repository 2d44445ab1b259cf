package domain

import (
	"sync"
)

type EventKind string

const (
	EventTick     EventKind = "tick"
	EventComplete EventKind = "complete"
	EventStart    EventKind = "start"
	EventPause    EventKind = "pause"
	EventResume   EventKind = "resume"
	EventReset    EventKind = "reset"
)

type Event struct {
	Kind  EventKind
	State State
}

// ChannelListener forwards timer events to a buffered channel. Ticks only
// use half of the buffer and are dropped beyond that; lifecycle events block
// until read or until Close.
type ChannelListener struct {
	events chan Event
	done   chan struct{}
	once   sync.Once
}

func NewChannelListener(buffer int) *ChannelListener {
	if buffer < 2 {
		buffer = 2
	}
	return &ChannelListener{events: make(chan Event, buffer), done: make(chan struct{})}
}

func (l *ChannelListener) Events() <-chan Event {
	return l.events
}

// Close releases senders blocked on a full buffer. It does not close the
// events channel.
func (l *ChannelListener) Close() {
	l.once.Do(func() { close(l.done) })
}

func (l *ChannelListener) OnTick(s State) {
	if len(l.events) >= cap(l.events)/2 {
		return
	}
	select {
	case l.events <- Event{Kind: EventTick, State: s}:
	default:
	}
}

func (l *ChannelListener) OnComplete(s State) { l.send(EventComplete, s) }
func (l *ChannelListener) OnStart(s State)    { l.send(EventStart, s) }
func (l *ChannelListener) OnPause(s State)    { l.send(EventPause, s) }
func (l *ChannelListener) OnResume(s State)   { l.send(EventResume, s) }
func (l *ChannelListener) OnReset(s State)    { l.send(EventReset, s) }

func (l *ChannelListener) send(kind EventKind, s State) {
	select {
	case l.events <- Event{Kind: kind, State: s}:
	case <-l.done:
	}
}
