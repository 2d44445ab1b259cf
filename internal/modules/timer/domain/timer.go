package domain

import (
	"fmt"
	"time"
)

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseRunning   Phase = "running"
	PhasePaused    Phase = "paused"
	PhaseCompleted Phase = "completed"
)

// State is a snapshot of a Timer. It is never persisted.
type State struct {
	Running   bool
	Paused    bool
	Elapsed   time.Duration
	StartedAt time.Time
	PausedAt  time.Time
	Duration  time.Duration
	Completed bool
}

func (s State) Phase() Phase {
	switch {
	case s.Completed:
		return PhaseCompleted
	case s.Running && s.Paused:
		return PhasePaused
	case s.Running:
		return PhaseRunning
	default:
		return PhaseIdle
	}
}

func (s State) Remaining() time.Duration {
	remaining := s.Duration - s.Elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Progress is elapsed over duration in [0,1]; a zero duration counts as done.
func (s State) Progress() float64 {
	if s.Duration == 0 {
		return 1
	}
	p := float64(s.Elapsed) / float64(s.Duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Timer is a countdown driven entirely by the timestamps passed to it. Every
// transition reports whether it applied.
type Timer struct {
	state State
}

func New(duration time.Duration) *Timer {
	if duration < 0 {
		duration = 0
	}
	return &Timer{state: State{Duration: duration}}
}

func NewMinutes(minutes int) *Timer {
	return New(time.Duration(minutes) * time.Minute)
}

// Start begins counting from the elapsed time already accumulated. It is
// rejected while running and after completion until Reset.
func (t *Timer) Start(now time.Time) bool {
	if t.state.Running || t.state.Completed {
		return false
	}
	t.state.Running = true
	t.state.Paused = false
	t.state.PausedAt = time.Time{}
	t.state.StartedAt = now.Add(-t.state.Elapsed)
	return true
}

func (t *Timer) Pause(now time.Time) bool {
	if !t.state.Running || t.state.Paused {
		return false
	}
	t.state.Elapsed = clampElapsed(now.Sub(t.state.StartedAt), t.state.Duration)
	t.state.Paused = true
	t.state.PausedAt = now
	return true
}

// Resume shifts the effective start by the paused interval so elapsed time
// excludes the pause.
func (t *Timer) Resume(now time.Time) bool {
	if !t.state.Running || !t.state.Paused {
		return false
	}
	pausedFor := now.Sub(t.state.PausedAt)
	if pausedFor < 0 {
		pausedFor = 0
	}
	t.state.StartedAt = t.state.StartedAt.Add(pausedFor)
	t.state.Paused = false
	t.state.PausedAt = time.Time{}
	return true
}

// Reset returns to idle, keeping the target duration.
func (t *Timer) Reset() {
	t.state = State{Duration: t.state.Duration}
}

// Stop halts the timer without clearing elapsed time.
func (t *Timer) Stop() {
	t.state.Running = false
	t.state.Paused = false
	t.state.PausedAt = time.Time{}
}

// Tick recomputes elapsed time. It reports whether the tick applied and
// whether it completed the run; completion is reported once per run.
func (t *Timer) Tick(now time.Time) (ticked bool, completed bool) {
	if !t.state.Running || t.state.Paused {
		return false, false
	}
	elapsed := now.Sub(t.state.StartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	t.state.Elapsed = elapsed
	if elapsed >= t.state.Duration {
		t.state.Elapsed = t.state.Duration
		t.Stop()
		t.state.Completed = true
		return true, true
	}
	return true, false
}

func (t *Timer) State() State {
	return t.state
}

func (t *Timer) Duration() time.Duration {
	return t.state.Duration
}

func (t *Timer) Elapsed() time.Duration {
	return t.state.Elapsed
}

func (t *Timer) Remaining() time.Duration {
	return t.state.Remaining()
}

func (t *Timer) Progress() float64 {
	return t.state.Progress()
}

func (t *Timer) FormattedRemaining() string {
	return FormatClock(t.state.Remaining())
}

func (t *Timer) FormattedElapsed() string {
	return FormatClock(t.state.Elapsed)
}

// FormatDuration renders "45s" below a minute and "m:ss" above.
func FormatDuration(d time.Duration) string {
	totalSeconds := int64(d / time.Second)
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	if minutes == 0 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FormatMinutes renders "45m", "1h" or "1h 30m".
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	rest := minutes % 60
	if rest == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, rest)
}

// FormatClock renders d as zero-padded mm:ss.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalSeconds := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}

func clampElapsed(elapsed, duration time.Duration) time.Duration {
	if elapsed < 0 {
		return 0
	}
	if elapsed > duration {
		return duration
	}
	return elapsed
}
