package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ubs-medicacoes/internal/ports/auth"

	gojwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSecret     = errors.New("jwt: secret not configured")
	ErrTokenEmpty   = errors.New("jwt: token is empty")
	ErrInvalidToken = errors.New("jwt: invalid token")
)

const issuer = "ubs-medicacoes"

type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	gojwt.RegisteredClaims
}

// Tokens emite e verifica tokens HS256.
// Implementa auth.TokenIssuer e auth.AuthVerifier.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret string, ttl time.Duration) (*Tokens, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (t *Tokens) Issue(_ context.Context, c auth.Claims) (auth.Token, error) {
	if strings.TrimSpace(c.UserID) == "" || !c.Role.Valid() {
		return auth.Token{}, fmt.Errorf("jwt: incomplete claims")
	}

	now := t.now()
	exp := now.Add(t.ttl)

	tok := gojwt.NewWithClaims(gojwt.SigningMethodHS256, sessionClaims{
		Email: c.Email,
		Role:  string(c.Role),
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   c.UserID,
			Issuer:    issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(exp),
		},
	})

	signed, err := tok.SignedString(t.secret)
	if err != nil {
		return auth.Token{}, fmt.Errorf("jwt: sign: %w", err)
	}
	return auth.Token{Value: signed, ExpiresAt: exp}, nil
}

func (t *Tokens) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var sc sessionClaims
	parsed, err := gojwt.ParseWithClaims(token, &sc, func(tk *gojwt.Token) (any, error) {
		return t.secret, nil
	},
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithIssuer(issuer),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	role := auth.Role(sc.Role)
	if strings.TrimSpace(sc.Subject) == "" || !role.Valid() {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{
		UserID: sc.Subject,
		Email:  sc.Email,
		Role:   role,
	}, nil
}
