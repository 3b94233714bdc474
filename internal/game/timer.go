package game

import "time"

// TimerState is the countdown lifecycle.
type TimerState int

// Timer states.
const (
	TimerStopped TimerState = iota
	TimerRunning
	TimerPaused
	TimerExpired
)

// Timer is a pausable countdown bound to wall-clock time. The host drives it
// with Tick once per frame; time spent paused is never charged.
type Timer struct {
	onExpire func()

	state       TimerState
	max         time.Duration
	remaining   time.Duration
	startedAt   time.Time
	pausedAt    time.Time
	pausedTotal time.Duration
}

// NewTimer returns a stopped timer that calls onExpire once per countdown.
func NewTimer(onExpire func()) *Timer {
	return &Timer{onExpire: onExpire}
}

// Start cancels any countdown in flight and runs a fresh one.
func (t *Timer) Start(max time.Duration, now time.Time) {
	t.Cancel()
	if max < 0 {
		max = 0
	}
	t.state = TimerRunning
	t.max = max
	t.remaining = max
	t.startedAt = now
}

// Pause freezes the countdown. No-op unless running.
func (t *Timer) Pause(now time.Time) {
	if t.state != TimerRunning {
		return
	}
	t.update(now)
	t.state = TimerPaused
	t.pausedAt = now
}

// Resume continues a paused countdown from where it stopped.
func (t *Timer) Resume(now time.Time) {
	if t.state != TimerPaused {
		return
	}
	if now.After(t.pausedAt) {
		t.pausedTotal += now.Sub(t.pausedAt)
	}
	t.pausedAt = time.Time{}
	t.state = TimerRunning
}

// Tick recomputes the remaining time. It reports whether further frames are
// needed. On expiry the callback fires exactly once.
func (t *Timer) Tick(now time.Time) bool {
	if t.state != TimerRunning {
		return false
	}
	t.update(now)
	if t.remaining > 0 {
		return true
	}
	t.state = TimerExpired
	if t.onExpire != nil {
		t.onExpire()
	}
	return false
}

// Cancel stops the countdown and discards its state. Safe to call repeatedly.
func (t *Timer) Cancel() {
	t.state = TimerStopped
	t.max = 0
	t.remaining = 0
	t.startedAt = time.Time{}
	t.pausedAt = time.Time{}
	t.pausedTotal = 0
}

// State returns the current lifecycle state.
func (t *Timer) State() TimerState {
	return t.state
}

// Armed reports whether a countdown is running or paused.
func (t *Timer) Armed() bool {
	return t.state == TimerRunning || t.state == TimerPaused
}

// Remaining returns the time left as of the last update.
func (t *Timer) Remaining() time.Duration {
	return t.remaining
}

// Max returns the full duration of the current countdown.
func (t *Timer) Max() time.Duration {
	return t.max
}

func (t *Timer) update(now time.Time) {
	active := now.Sub(t.startedAt) - t.pausedTotal
	if active < 0 {
		active = 0
	}
	remaining := t.max - active
	if remaining < 0 {
		remaining = 0
	}
	t.remaining = remaining
}
