package links

import (
	"context"
	"time"

	"ubs-medicacoes/internal/domain/units"
	"ubs-medicacoes/internal/domain/users"
)

type Repository interface {
	// ReplaceForUnit apaga os vínculos da UBS e, se userID != "", cria o novo.
	ReplaceForUnit(ctx context.Context, unitID, userID string, at time.Time) error
	// ReplaceForUser troca o conjunto de UBS do usuário, tirando-as de quem as tinha.
	ReplaceForUser(ctx context.Context, userID string, unitIDs []string, at time.Time) error

	Delete(ctx context.Context, userID, unitID string) error
	DeleteByUnit(ctx context.Context, unitID string) error
	DeleteByUser(ctx context.Context, userID string) error

	GetByUnit(ctx context.Context, unitID string) (Link, error)
	ListByUser(ctx context.Context, userID string) ([]Link, error)
	List(ctx context.Context) ([]Link, error)
}

// UnitLookup é satisfeito por units.Repository e *units.Service.
type UnitLookup interface {
	GetByID(ctx context.Context, id string) (units.Unit, error)
}

// UserLookup é satisfeito por users.Repository e *users.Service.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (users.User, error)
}
