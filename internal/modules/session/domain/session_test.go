package domain_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"timelog/internal/modules/session/domain"
	"timelog/internal/platform/clock"
	apperrors "timelog/internal/platform/errors"
)

func TestSessionEndBeforeBegin(t *testing.T) {
	t.Parallel()
	s := domain.NewSession("T", "D", clock.SystemClock{})
	if err := s.End(); !errors.Is(err, apperrors.ErrSessionNotBegun) {
		t.Fatalf("expected not begun error, got %v", err)
	}
	if s.IsComplete() {
		t.Fatalf("session must not be complete")
	}
	if s.Began() {
		t.Fatalf("failed end must not change state")
	}
}

func TestSessionBeginSleepEnd(t *testing.T) {
	t.Parallel()
	s := domain.NewSession("T", "D", clock.SystemClock{})
	if err := s.Begin(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	time.Sleep(time.Second)
	if err := s.End(); err != nil {
		t.Fatalf("end: %v", err)
	}
	if !s.IsComplete() {
		t.Fatalf("session should be complete")
	}
	span, err := s.TimeRange()
	if err != nil {
		t.Fatalf("time range: %v", err)
	}
	elapsed := span.End.Sub(span.Start)
	if elapsed < time.Second || elapsed > 3*time.Second {
		t.Fatalf("expected about one second, got %v", elapsed)
	}
}

func TestSessionBeginTwice(t *testing.T) {
	t.Parallel()
	clk := &stepClock{now: base(), step: time.Minute}
	s := domain.NewSession("T", "D", clk)
	if err := s.Begin(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := s.Begin(); !errors.Is(err, apperrors.ErrSessionBegun) {
		t.Fatalf("expected already begun error, got %v", err)
	}
	started, ok := s.StartedAt()
	if !ok || !started.Equal(base()) {
		t.Fatalf("stopwatch should keep first start, got %v", started)
	}
}

func TestSessionEndTwice(t *testing.T) {
	t.Parallel()
	clk := &stepClock{now: base(), step: time.Minute}
	s := domain.NewSession("T", "D", clk)
	_ = s.Begin()
	if err := s.End(); err != nil {
		t.Fatalf("end: %v", err)
	}
	if err := s.End(); !errors.Is(err, apperrors.ErrSessionEnded) {
		t.Fatalf("expected already ended error, got %v", err)
	}
	span, err := s.TimeRange()
	if err != nil {
		t.Fatalf("time range: %v", err)
	}
	if !span.End.Equal(base().Add(time.Minute)) {
		t.Fatalf("second end must not move end time, got %v", span.End)
	}
}

func TestSessionTimeRangeIncomplete(t *testing.T) {
	t.Parallel()
	s := domain.NewSession("T", "D", clock.SystemClock{})
	span, err := s.TimeRange()
	if !errors.Is(err, apperrors.ErrSessionIncomplete) {
		t.Fatalf("expected incomplete error, got %v", err)
	}
	if !span.Start.IsZero() || !span.End.IsZero() {
		t.Fatalf("expected empty range, got %+v", span)
	}
	_ = s.Begin()
	if _, err := s.TimeRange(); !errors.Is(err, apperrors.ErrSessionIncomplete) {
		t.Fatalf("in-progress session should be incomplete, got %v", err)
	}
}

func TestSessionDurationFollowsState(t *testing.T) {
	t.Parallel()
	clk := &stepClock{now: base(), step: 10 * time.Minute}
	s := domain.NewSession("Marshmallow Development", "Refactoring", clk)
	if s.Duration() != domain.NotStarted {
		t.Fatalf("expected not started, got %q", s.Duration())
	}
	_ = s.Begin()
	if got := s.Duration(); got != "0:10:00" {
		t.Fatalf("live duration = %q", got)
	}
	_ = s.End()
	if got := s.Duration(); got != "0:20:00" {
		t.Fatalf("final duration = %q", got)
	}
	rendered := s.String()
	for _, want := range []string{"Title: Marshmallow Development", "Description: Refactoring", "Duration: 0:20:00"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("rendering missing %q: %s", want, rendered)
		}
	}
}

func TestResumeSessionCanEnd(t *testing.T) {
	t.Parallel()
	clk := &stepClock{now: base().Add(45 * time.Minute)}
	s := domain.ResumeSession("T", "D", base(), clk)
	if err := s.Begin(); !errors.Is(err, apperrors.ErrSessionBegun) {
		t.Fatalf("resumed session should already be begun, got %v", err)
	}
	if err := s.End(); err != nil {
		t.Fatalf("end: %v", err)
	}
	span, err := s.TimeRange()
	if err != nil {
		t.Fatalf("time range: %v", err)
	}
	if span.End.Sub(span.Start) != 45*time.Minute {
		t.Fatalf("expected 45 minutes, got %v", span.End.Sub(span.Start))
	}
}
