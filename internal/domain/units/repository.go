package units

import "context"

type Repository interface {
	Create(ctx context.Context, u Unit) error
	Update(ctx context.Context, u Unit) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Unit, error)
	List(ctx context.Context) ([]Unit, error)
}

// Dependent é qualquer módulo que guarda dados pendurados numa UBS
// (vínculos, PDF, checagens). É chamado antes de apagar a unidade.
type Dependent interface {
	PurgeUnit(ctx context.Context, unitID string) error
}
