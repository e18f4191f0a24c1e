package auth

import "context"

// AuthVerifier verifica um token e devolve claims ou erro.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite tokens para claims já autenticadas.
type TokenIssuer interface {
	Issue(ctx context.Context, claims Claims) (Token, error)
}
