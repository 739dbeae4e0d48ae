package out

import (
	"context"

	"timelog/internal/modules/session/domain"
)

// RecordStore persists completed sessions as rows.
type RecordStore interface {
	EnsureSchema(ctx context.Context) error
	AddRecord(ctx context.Context, record domain.Record) (int64, error)
}

// NoteStore writes a human-readable journal entry for a recorded session.
type NoteStore interface {
	Save(ctx context.Context, record domain.Record) (string, error)
}

type ActiveSessionStore interface {
	SaveActive(ctx context.Context, session domain.ActiveSession) error
	LoadActive(ctx context.Context) (domain.ActiveSession, error)
	ClearActive(ctx context.Context) error
}
