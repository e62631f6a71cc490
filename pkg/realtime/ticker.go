package realtime

import "time"

// MaxCatchUp bounds how many missed steps Due reports at once. A loop that
// fell further behind drops the extra steps instead of replaying them.
const MaxCatchUp = 5

// Ticker holds the schedule of a fixed-interval room loop: when it started
// and how many steps were handed out. Game state lives with the caller, which
// runs one transition per step returned by Due.
type Ticker struct {
	Interval time.Duration
	Started  time.Time
	Steps    int
}

// Start resets the schedule so the first step is due one interval after now.
func (t *Ticker) Start(now time.Time) {
	t.Started = now
	t.Steps = 0
}

// Running reports whether Start was called.
func (t *Ticker) Running() bool {
	return !t.Started.IsZero() && t.Interval > 0
}

// NextWake returns when the next step is due, or (zero, false) when stopped.
func (t *Ticker) NextWake(now time.Time) (time.Time, bool) {
	if !t.Running() {
		return time.Time{}, false
	}
	next := t.Started.Add(time.Duration(t.Steps+1) * t.Interval)
	if next.Before(now) {
		return now, true
	}
	return next, true
}

// Due returns how many steps have become due by now and marks them handed out.
func (t *Ticker) Due(now time.Time) int {
	if !t.Running() || now.Before(t.Started) {
		return 0
	}
	target := int(now.Sub(t.Started) / t.Interval)
	due := target - t.Steps
	if due <= 0 {
		return 0
	}
	t.Steps = target
	if due > MaxCatchUp {
		return MaxCatchUp
	}
	return due
}

// Stop clears the schedule.
func (t *Ticker) Stop() {
	t.Started = time.Time{}
	t.Steps = 0
}
