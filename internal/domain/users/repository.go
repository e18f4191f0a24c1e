package users

import "context"

type Repository interface {
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
}

// UnitLinker evita importar o pacote links (que já importa users).
type UnitLinker interface {
	UnitsOf(ctx context.Context, userID string) ([]string, error)
	SetUserUnits(ctx context.Context, userID string, unitIDs []string) error
	// CheckUnits valida os IDs antes de gravar o usuário.
	CheckUnits(ctx context.Context, unitIDs []string) error
}

// Dependent limpa dados de um usuário antes de apagá-lo.
type Dependent interface {
	PurgeUser(ctx context.Context, userID string) error
}
