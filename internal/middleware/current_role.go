package middleware

import (
	"context"
	"net/http"

	"ubs-medicacoes/internal/ports/auth"
)

// RoleSource devolve o papel gravado do usuário; found=false se a conta não existe mais.
type RoleSource interface {
	CurrentRole(ctx context.Context, userID string) (role auth.Role, found bool, err error)
}

// CurrentRole troca o papel do token pelo papel atual da conta.
// Conta apagada perde as claims (RequireAuth responde 401); rebaixada cai em 403.
// Vai depois de AuthContext.
func CurrentRole(src RoleSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, ok := GetClaims(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			role, found, err := src.CurrentRole(r.Context(), c.UserID)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if !found {
				next.ServeHTTP(w, r.WithContext(withoutClaims(r.Context())))
				return
			}

			c.Role = role
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), c)))
		})
	}
}

func withoutClaims(ctx context.Context) context.Context {
	return context.WithValue(ctx, claimsKey, nil)
}
