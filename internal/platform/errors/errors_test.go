package apperrors_test

import (
	"fmt"
	"testing"

	apperrors "timelog/internal/platform/errors"
)

func TestIsTransition(t *testing.T) {
	t.Parallel()
	if !apperrors.IsTransition(fmt.Errorf("end: %w", apperrors.ErrSessionEnded)) {
		t.Fatalf("wrapped transition error should match")
	}
	if !apperrors.IsTransition(apperrors.ErrStopWatchNotStarted) {
		t.Fatalf("stopwatch error should match")
	}
	if apperrors.IsTransition(apperrors.ErrSessionIncomplete) {
		t.Fatalf("incomplete query is not a transition")
	}
	if apperrors.IsTransition(nil) {
		t.Fatalf("nil is not a transition")
	}
}
