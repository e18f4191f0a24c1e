package auth

import "time"

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleResponsavel Role = "responsavel"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleResponsavel
}

// Claims representa a informação extraída do token.
type Claims struct {
	UserID string
	Email  string
	Role   Role
}

func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Token é o resultado de um login bem-sucedido.
type Token struct {
	Value     string
	ExpiresAt time.Time
}
