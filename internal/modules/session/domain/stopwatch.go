package domain

import (
	"fmt"
	"time"

	"timelog/internal/platform/clock"
	apperrors "timelog/internal/platform/errors"
)

const NotStarted = "stopwatch has not yet been started"

// StopWatch moves Idle -> Running -> Stopped and never back.
type StopWatch struct {
	clock     clock.Clock
	started   bool
	stopped   bool
	startTime time.Time
	stopTime  time.Time
}

func NewStopWatch(clk clock.Clock) *StopWatch {
	return &StopWatch{clock: clk}
}

// ResumeStopWatch rebuilds a running stopwatch from a persisted start time.
func ResumeStopWatch(clk clock.Clock, start time.Time) *StopWatch {
	return &StopWatch{clock: clk, started: true, startTime: start}
}

func (w *StopWatch) Start() error {
	if w.started {
		return apperrors.ErrStopWatchStarted
	}
	w.started = true
	w.startTime = w.clock.Now()
	return nil
}

func (w *StopWatch) Stop() error {
	if !w.started {
		return apperrors.ErrStopWatchNotStarted
	}
	if w.stopped {
		return apperrors.ErrStopWatchStopped
	}
	w.stopped = true
	w.stopTime = w.clock.Now()
	return nil
}

func (w *StopWatch) Started() bool { return w.started }
func (w *StopWatch) Stopped() bool { return w.stopped }

func (w *StopWatch) StartTime() (time.Time, bool) {
	return w.startTime, w.started
}

func (w *StopWatch) StopTime() (time.Time, bool) {
	return w.stopTime, w.stopped
}

// Elapsed is live while running and fixed once stopped. It reports false
// before Start.
func (w *StopWatch) Elapsed() (time.Duration, bool) {
	switch {
	case w.stopped:
		return nonNegative(w.stopTime.Sub(w.startTime)), true
	case w.started:
		return nonNegative(w.clock.Now().Sub(w.startTime)), true
	default:
		return 0, false
	}
}

func (w *StopWatch) String() string {
	elapsed, ok := w.Elapsed()
	if !ok {
		return NotStarted
	}
	return FormatDuration(elapsed)
}

// FormatDuration renders h:mm:ss, hours unbounded.
func FormatDuration(d time.Duration) string {
	d = nonNegative(d).Truncate(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
