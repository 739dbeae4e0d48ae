package in

import (
	"context"

	"timelog/internal/modules/session/dto"
)

type Usecase interface {
	Init(ctx context.Context) error
	Begin(ctx context.Context, input dto.BeginInput) (dto.BeginOutput, error)
	End(ctx context.Context, input dto.EndInput) (dto.EndOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	Cancel(ctx context.Context, input dto.CancelInput) (dto.CancelOutput, error)
}
