package medlists

import (
	"context"

	"ubs-medicacoes/internal/domain/units"
)

type Repository interface {
	// Replace apaga o registro atual da UBS (se houver) e grava m.
	Replace(ctx context.Context, m MedicationList) error
	GetByUnit(ctx context.Context, unitID string) (MedicationList, error)
	DeleteByUnit(ctx context.Context, unitID string) error
	List(ctx context.Context) ([]MedicationList, error)
}

type UnitLookup interface {
	GetByID(ctx context.Context, id string) (units.Unit, error)
}

// LinkChecker evita importar links; satisfeito por *links.Service.
type LinkChecker interface {
	IsLinked(ctx context.Context, userID, unitID string) (bool, error)
}
