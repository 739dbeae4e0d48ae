package domain

import (
	"fmt"
	"time"

	"timelog/internal/platform/clock"
	apperrors "timelog/internal/platform/errors"
)

// Session is a titled, described interval of work. It owns its stopwatch.
type Session struct {
	Title       string
	Description string

	began     bool
	ended     bool
	stopwatch *StopWatch
}

type TimeRange struct {
	Start time.Time
	End   time.Time
}

func NewSession(title, description string, clk clock.Clock) *Session {
	return &Session{Title: title, Description: description, stopwatch: NewStopWatch(clk)}
}

// ResumeSession restores an in-progress session that began at startedAt.
func ResumeSession(title, description string, startedAt time.Time, clk clock.Clock) *Session {
	return &Session{
		Title:       title,
		Description: description,
		began:       true,
		stopwatch:   ResumeStopWatch(clk, startedAt),
	}
}

func (s *Session) Begin() error {
	if s.began {
		return apperrors.ErrSessionBegun
	}
	if err := s.stopwatch.Start(); err != nil {
		return err
	}
	s.began = true
	return nil
}

func (s *Session) End() error {
	if !s.began {
		return apperrors.ErrSessionNotBegun
	}
	if s.ended {
		return apperrors.ErrSessionEnded
	}
	if err := s.stopwatch.Stop(); err != nil {
		return err
	}
	s.ended = true
	return nil
}

func (s *Session) Began() bool { return s.began }

func (s *Session) IsComplete() bool {
	return s.began && s.ended
}

// StartedAt is set once the session has begun.
func (s *Session) StartedAt() (time.Time, bool) {
	return s.stopwatch.StartTime()
}

func (s *Session) TimeRange() (TimeRange, error) {
	if !s.IsComplete() {
		return TimeRange{}, apperrors.ErrSessionIncomplete
	}
	start, _ := s.stopwatch.StartTime()
	end, _ := s.stopwatch.StopTime()
	return TimeRange{Start: start, End: end}, nil
}

func (s *Session) Duration() string {
	return s.stopwatch.String()
}

func (s *Session) String() string {
	return fmt.Sprintf("Title: %s\nDescription: %s\nDuration: %s\n", s.Title, s.Description, s.Duration())
}
