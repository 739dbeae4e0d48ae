package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"timelog/internal/modules/session/domain"
	sessionout "timelog/internal/modules/session/port/out"
	apperrors "timelog/internal/platform/errors"
)

// FileActiveSessionStore keeps the in-progress session as a JSON file so begin
// and end can run in separate processes.
type FileActiveSessionStore struct {
	path string
}

func NewFileActiveSessionStore(path string) sessionout.ActiveSessionStore {
	return &FileActiveSessionStore{path: path}
}

func (s *FileActiveSessionStore) SaveActive(_ context.Context, session domain.ActiveSession) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create active session dir: %w", err)
	}
	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal active session: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".active-*.json")
	if err != nil {
		return fmt.Errorf("create active session temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write active session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close active session: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace active session: %w", err)
	}
	return nil
}

func (s *FileActiveSessionStore) LoadActive(_ context.Context) (domain.ActiveSession, error) {
	payload, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return domain.ActiveSession{}, apperrors.ErrNoActiveSession
	}
	if err != nil {
		return domain.ActiveSession{}, fmt.Errorf("read active session: %w", err)
	}
	var active domain.ActiveSession
	if err := json.Unmarshal(payload, &active); err != nil {
		return domain.ActiveSession{}, fmt.Errorf("decode active session %s: %w", s.path, err)
	}
	if active.SessionID == "" || active.StartedAt.IsZero() {
		return domain.ActiveSession{}, apperrors.ErrNoActiveSession
	}
	return active, nil
}

func (s *FileActiveSessionStore) ClearActive(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear active session: %w", err)
	}
	return nil
}
