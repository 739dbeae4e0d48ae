package in

import (
	"context"

	sessiondto "timelog/internal/modules/session/dto"
	sessionin "timelog/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Init(ctx context.Context) error {
	return h.usecase.Init(ctx)
}

func (h CLIHandler) Begin(ctx context.Context, title, description string) (sessiondto.BeginOutput, error) {
	return h.usecase.Begin(ctx, sessiondto.BeginInput{Title: title, Description: description})
}

func (h CLIHandler) End(ctx context.Context, sessionID string) (sessiondto.EndOutput, error) {
	return h.usecase.End(ctx, sessiondto.EndInput{SessionID: sessionID})
}

func (h CLIHandler) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Cancel(ctx context.Context) error {
	_, err := h.usecase.Cancel(ctx, sessiondto.CancelInput{})
	return err
}

// CancelAndRecord stores the unfinished session as a row without a time range,
// then discards it.
func (h CLIHandler) CancelAndRecord(ctx context.Context) (sessiondto.CancelOutput, error) {
	return h.usecase.Cancel(ctx, sessiondto.CancelInput{Record: true})
}
