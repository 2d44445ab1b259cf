package service

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"ritualcoach/internal/modules/timer/domain"
	"ritualcoach/internal/platform/clock"
)

const DefaultTickInterval = 100 * time.Millisecond

type Option func(*Countdown)

func WithClock(clk clock.Clock) Option {
	return func(c *Countdown) {
		if clk != nil {
			c.clock = clk
		}
	}
}

func WithInterval(d time.Duration) Option {
	return func(c *Countdown) {
		if d > 0 {
			c.interval = d
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Countdown) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Countdown drives a domain.Timer from a ticker goroutine. At most one tick
// goroutine is live per countdown, and a goroutine whose run was halted can
// no longer apply ticks. Events are queued in transition order and delivered
// by a single drain goroutine, so listeners see them in order and never with
// the countdown locked.
type Countdown struct {
	mu       sync.Mutex
	timer    *domain.Timer
	clock    clock.Clock
	interval time.Duration
	listener domain.Listener
	logger   *zap.Logger

	generation uint64
	halt       chan struct{}
	closed     bool
	wg         sync.WaitGroup

	pending  []pendingEvent
	draining bool
}

type pendingEvent struct {
	kind  domain.EventKind
	state domain.State
}

func NewCountdown(duration time.Duration, listener domain.Listener, opts ...Option) *Countdown {
	if listener == nil {
		listener = domain.NopListener{}
	}
	c := &Countdown{
		timer:    domain.New(duration),
		clock:    clock.SystemClock{},
		interval: DefaultTickInterval,
		listener: listener,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Countdown) Start() bool {
	c.mu.Lock()
	if c.closed || !c.timer.Start(c.clock.Now()) {
		c.mu.Unlock()
		return false
	}
	c.runLocked()
	state := c.timer.State()
	c.emitLocked(domain.EventStart, state)
	c.mu.Unlock()

	c.logger.Debug("timer started", zap.Duration("duration", state.Duration), zap.Duration("elapsed", state.Elapsed))
	return true
}

func (c *Countdown) Pause() bool {
	c.mu.Lock()
	if !c.timer.Pause(c.clock.Now()) {
		c.mu.Unlock()
		return false
	}
	c.haltLocked()
	c.emitLocked(domain.EventPause, c.timer.State())
	c.mu.Unlock()
	return true
}

func (c *Countdown) Resume() bool {
	c.mu.Lock()
	if c.closed || !c.timer.Resume(c.clock.Now()) {
		c.mu.Unlock()
		return false
	}
	c.runLocked()
	c.emitLocked(domain.EventResume, c.timer.State())
	c.mu.Unlock()
	return true
}

// Toggle pauses a running countdown, resumes a paused one and starts an idle
// one.
func (c *Countdown) Toggle() bool {
	switch c.State().Phase() {
	case domain.PhaseRunning:
		return c.Pause()
	case domain.PhasePaused:
		return c.Resume()
	default:
		return c.Start()
	}
}

func (c *Countdown) Reset() {
	c.mu.Lock()
	c.haltLocked()
	c.timer.Reset()
	c.emitLocked(domain.EventReset, c.timer.State())
	c.mu.Unlock()
}

// Stop halts ticking and keeps the elapsed time.
func (c *Countdown) Stop() {
	c.mu.Lock()
	c.haltLocked()
	c.timer.Stop()
	c.mu.Unlock()
}

// Close stops the countdown and waits for the tick goroutine to exit and for
// queued events to be delivered. The countdown cannot be started again.
func (c *Countdown) Close() {
	c.mu.Lock()
	c.closed = true
	c.haltLocked()
	c.timer.Stop()
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Countdown) State() domain.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer.State()
}

func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer.Remaining()
}

func (c *Countdown) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer.Progress()
}

func (c *Countdown) FormattedRemaining() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer.FormattedRemaining()
}

func (c *Countdown) FormattedElapsed() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer.FormattedElapsed()
}

func (c *Countdown) runLocked() {
	c.haltLocked()
	c.generation++
	gen := c.generation
	halt := make(chan struct{})
	c.halt = halt

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-halt:
				return
			case <-ticker.C:
				if !c.tick(gen) {
					return
				}
			}
		}
	}()
}

func (c *Countdown) haltLocked() {
	if c.halt == nil {
		return
	}
	close(c.halt)
	c.halt = nil
	c.generation++
}

// tick applies one tick for run gen and reports whether the run continues.
func (c *Countdown) tick(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}
	ticked, completed := c.timer.Tick(c.clock.Now())
	if !ticked {
		return false
	}
	state := c.timer.State()
	c.emitLocked(domain.EventTick, state)
	if completed {
		c.haltLocked()
		c.logger.Debug("timer completed", zap.Duration("duration", state.Duration))
		c.emitLocked(domain.EventComplete, state)
		return false
	}
	return true
}

// emitLocked queues an event. A tick still waiting behind another tick is
// replaced, so a slow listener only ever misses intermediate ticks.
func (c *Countdown) emitLocked(kind domain.EventKind, state domain.State) {
	if c.closed {
		return
	}
	if n := len(c.pending); kind == domain.EventTick && n > 0 && c.pending[n-1].kind == domain.EventTick {
		c.pending[n-1].state = state
	} else {
		c.pending = append(c.pending, pendingEvent{kind: kind, state: state})
	}
	if c.draining {
		return
	}
	c.draining = true
	c.wg.Add(1)
	go c.drain()
}

func (c *Countdown) drain() {
	defer c.wg.Done()
	for {
		c.mu.Lock()
		if len(c.pending) == 0 {
			c.pending = nil
			c.draining = false
			c.mu.Unlock()
			return
		}
		ev := c.pending[0]
		c.pending = c.pending[1:]
		c.mu.Unlock()
		c.deliver(ev)
	}
}

func (c *Countdown) deliver(ev pendingEvent) {
	switch ev.kind {
	case domain.EventTick:
		c.listener.OnTick(ev.state)
	case domain.EventComplete:
		c.listener.OnComplete(ev.state)
	case domain.EventStart:
		c.listener.OnStart(ev.state)
	case domain.EventPause:
		c.listener.OnPause(ev.state)
	case domain.EventResume:
		c.listener.OnResume(ev.state)
	case domain.EventReset:
		c.listener.OnReset(ev.state)
	}
}
