package service

import (
	"context"
	"fmt"
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	"timelog/internal/modules/session/domain"
	sessionout "timelog/internal/modules/session/port/out"
	"timelog/internal/platform/clock"
	apperrors "timelog/internal/platform/errors"
	"timelog/internal/platform/id"
)

type Options struct {
	// AllowIncomplete stores sessions without a time range as NULL start/end
	// instead of rejecting them.
	AllowIncomplete bool
	Logger          hclog.Logger
}

type SessionService struct {
	clock           clock.Clock
	idGen           id.Generator
	records         sessionout.RecordStore
	notes           sessionout.NoteStore
	allowIncomplete bool
	log             hclog.Logger
}

// NewSessionService wires the record store; notes may be nil to skip the journal.
func NewSessionService(clock clock.Clock, idGen id.Generator, records sessionout.RecordStore, notes sessionout.NoteStore, opts Options) *SessionService {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SessionService{
		clock:           clock,
		idGen:           idGen,
		records:         records,
		notes:           notes,
		allowIncomplete: opts.AllowIncomplete,
		log:             logger,
	}
}

func (s *SessionService) EnsureSchema(ctx context.Context) error {
	if err := s.records.EnsureSchema(ctx); err != nil {
		return err
	}
	s.log.Debug("sessions schema ensured")
	return nil
}

func (s *SessionService) Begin(_ context.Context, title, description string) (domain.ActiveSession, error) {
	if strings.TrimSpace(title) == "" {
		return domain.ActiveSession{}, fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}
	session := domain.NewSession(title, description, s.clock)
	if err := session.Begin(); err != nil {
		return domain.ActiveSession{}, err
	}
	startedAt, _ := session.StartedAt()
	return domain.ActiveSession{
		SessionID:   s.idGen.New(),
		Title:       title,
		Description: description,
		StartedAt:   startedAt,
	}, nil
}

func (s *SessionService) Resume(active domain.ActiveSession) *domain.Session {
	return domain.ResumeSession(active.Title, active.Description, active.StartedAt, s.clock)
}

// Persisted is the outcome of Persist. NoteErr is set when the row was stored
// but the journal note could not be written.
type Persisted struct {
	Record   domain.Record
	NotePath string
	NoteErr  error
}

// Persist writes one row for the session and, when configured, a journal note.
// An error is returned only when no row was written.
func (s *SessionService) Persist(ctx context.Context, session *domain.Session) (Persisted, error) {
	record := domain.ExtractRecord(session)
	if !record.Complete() && !s.allowIncomplete {
		return Persisted{}, fmt.Errorf("persist %q: %w", session.Title, apperrors.ErrSessionIncomplete)
	}
	rowID, err := s.records.AddRecord(ctx, record)
	if err != nil {
		return Persisted{}, err
	}
	record.ID = rowID
	s.log.Info("added session to database", "id", rowID, "title", record.Title)

	if s.notes == nil || !record.Complete() {
		return Persisted{Record: record}, nil
	}
	path, err := s.notes.Save(ctx, record)
	if err != nil {
		s.log.Warn("journal note not written", "id", rowID, "error", err)
		return Persisted{Record: record, NoteErr: err}, nil
	}
	return Persisted{Record: record, NotePath: path}, nil
}
