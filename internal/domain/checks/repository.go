package checks

import (
	"context"
	"time"
)

type Repository interface {
	// Mark liga o flag do turno. Se já estava ligado devolve ErrAlreadyMarked
	// sem alterar nada.
	Mark(ctx context.Context, userID, unitID, day string, p Period, at time.Time) (DailyCheck, error)
	// Get devolve ErrNotFound quando ainda não há linha para o dia.
	Get(ctx context.Context, userID, unitID, day string) (DailyCheck, error)
	ListByDay(ctx context.Context, day string) ([]DailyCheck, error)
	DeleteByUnit(ctx context.Context, unitID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// LinkChecker é satisfeito por *links.Service.
type LinkChecker interface {
	IsLinked(ctx context.Context, userID, unitID string) (bool, error)
}
