package users

import (
	"time"

	"ubs-medicacoes/internal/ports/auth"
)

// User é uma conta do painel (tabela usuarios).
// Email é o login; PasswordHash nunca sai pela API.
type User struct {
	ID    string
	Email string
	Name  string

	PasswordHash string

	Role auth.Role // admin | responsavel

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) IsResponsavel() bool {
	return u.Role == auth.RoleResponsavel
}

// DisplayName é o que aparece no portal como "Responsável".
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
