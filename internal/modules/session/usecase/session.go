package usecase

import (
	"context"
	"errors"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	sessiondto "timelog/internal/modules/session/dto"
	sessionin "timelog/internal/modules/session/port/in"
	sessionout "timelog/internal/modules/session/port/out"
	"timelog/internal/modules/session/service"
	apperrors "timelog/internal/platform/errors"
)

type Interactor struct {
	svc         *service.SessionService
	activeStore sessionout.ActiveSessionStore
	log         hclog.Logger
}

func NewInteractor(svc *service.SessionService, activeStore sessionout.ActiveSessionStore, logger hclog.Logger) sessionin.Usecase {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{svc: svc, activeStore: activeStore, log: logger}
}

func (i *Interactor) Init(ctx context.Context) error {
	return i.svc.EnsureSchema(ctx)
}

func (i *Interactor) Begin(ctx context.Context, input sessiondto.BeginInput) (sessiondto.BeginOutput, error) {
	if _, err := i.activeStore.LoadActive(ctx); err == nil {
		i.log.Error("cannot begin session that has already begun")
		return sessiondto.BeginOutput{}, apperrors.ErrActiveSessionExists
	} else if !errors.Is(err, apperrors.ErrNoActiveSession) {
		return sessiondto.BeginOutput{}, err
	}

	active, err := i.svc.Begin(ctx, input.Title, input.Description)
	if err != nil {
		return sessiondto.BeginOutput{}, err
	}
	if err := i.activeStore.SaveActive(ctx, active); err != nil {
		return sessiondto.BeginOutput{}, err
	}
	i.log.Info("session has begun", "id", active.SessionID, "title", active.Title)
	return sessiondto.BeginOutput{SessionID: active.SessionID, Title: active.Title, StartedAt: active.StartedAt}, nil
}

func (i *Interactor) End(ctx context.Context, input sessiondto.EndInput) (sessiondto.EndOutput, error) {
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoActiveSession) {
			i.log.Error("cannot end session that has not yet begun")
		}
		return sessiondto.EndOutput{}, err
	}
	if input.SessionID != "" && input.SessionID != active.SessionID {
		return sessiondto.EndOutput{}, fmt.Errorf("%w: session id mismatch", apperrors.ErrInvalidInput)
	}

	session := i.svc.Resume(active)
	if err := session.End(); err != nil {
		if apperrors.IsTransition(err) {
			i.log.Error("invalid session transition", "id", active.SessionID, "error", err)
		}
		return sessiondto.EndOutput{}, err
	}
	if err := i.svc.EnsureSchema(ctx); err != nil {
		return sessiondto.EndOutput{}, err
	}
	persisted, err := i.svc.Persist(ctx, session)
	if err != nil {
		return sessiondto.EndOutput{}, err
	}
	// the row exists from here on; a retried end must not write it again
	if err := i.activeStore.ClearActive(ctx); err != nil {
		return sessiondto.EndOutput{}, err
	}
	i.log.Info("session has ended", "id", active.SessionID, "duration", session.Duration())

	record := persisted.Record
	out := sessiondto.EndOutput{
		SessionID:   active.SessionID,
		RecordID:    record.ID,
		Title:       record.Title,
		Description: record.Description,
		StartedAt:   *record.Start,
		EndedAt:     *record.End,
		Duration:    session.Duration(),
		NotePath:    persisted.NotePath,
	}
	if persisted.NoteErr != nil {
		out.NoteError = persisted.NoteErr.Error()
	}
	return out, nil
}

func (i *Interactor) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return sessiondto.StatusOutput{}, err
	}
	session := i.svc.Resume(active)
	return sessiondto.StatusOutput{
		SessionID:   active.SessionID,
		Title:       active.Title,
		Description: active.Description,
		StartedAt:   active.StartedAt,
		Duration:    session.Duration(),
		Summary:     session.String(),
	}, nil
}

// Cancel clears the active session. With input.Record set the unfinished
// session is stored first, as a row with no time range; that is only accepted
// when incomplete records are allowed.
func (i *Interactor) Cancel(ctx context.Context, input sessiondto.CancelInput) (sessiondto.CancelOutput, error) {
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return sessiondto.CancelOutput{}, err
	}
	out := sessiondto.CancelOutput{SessionID: active.SessionID, Title: active.Title}
	if input.Record {
		if err := i.svc.EnsureSchema(ctx); err != nil {
			return sessiondto.CancelOutput{}, err
		}
		persisted, err := i.svc.Persist(ctx, i.svc.Resume(active))
		if err != nil {
			if errors.Is(err, apperrors.ErrSessionIncomplete) {
				i.log.Error("cannot record session that has not ended", "id", active.SessionID)
			}
			return sessiondto.CancelOutput{}, err
		}
		out.Recorded = true
		out.RecordID = persisted.Record.ID
	}
	if err := i.activeStore.ClearActive(ctx); err != nil {
		return sessiondto.CancelOutput{}, err
	}
	i.log.Info("session discarded", "id", active.SessionID, "title", active.Title, "recorded", out.Recorded)
	return out, nil
}
