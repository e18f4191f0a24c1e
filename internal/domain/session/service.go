package session

import (
	"context"
	"errors"
	"fmt"

	"ubs-medicacoes/internal/domain/users"
	"ubs-medicacoes/internal/platform/logger"
	"ubs-medicacoes/internal/ports/auth"
)

// ErrUnavailable: servidor sem emissor de tokens (modo dev com headers de debug).
var ErrUnavailable = errors.New("login disabled: no token issuer configured")

// Authenticator é satisfeito por *users.Service.
type Authenticator interface {
	Authenticate(ctx context.Context, login, password string) (users.User, error)
	GetAccount(ctx context.Context, id string) (users.Account, error)
}

type Service struct {
	users  Authenticator
	issuer auth.TokenIssuer
	log    logger.Logger
}

func NewService(u Authenticator, issuer auth.TokenIssuer, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{users: u, issuer: issuer, log: log}
}

// Login confere as credenciais e emite o token da sessão.
func (s *Service) Login(ctx context.Context, login, password string) (auth.Token, users.Account, error) {
	if s.issuer == nil {
		return auth.Token{}, users.Account{}, ErrUnavailable
	}

	u, err := s.users.Authenticate(ctx, login, password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			s.log.Info("login rejected", map[string]any{"login": login})
		}
		return auth.Token{}, users.Account{}, err
	}

	tok, err := s.issuer.Issue(ctx, auth.Claims{UserID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil {
		return auth.Token{}, users.Account{}, fmt.Errorf("issue token: %w", err)
	}

	acc, err := s.users.GetAccount(ctx, u.ID)
	if err != nil {
		return auth.Token{}, users.Account{}, err
	}

	s.log.Info("login", map[string]any{"user_id": u.ID, "role": string(u.Role)})
	return tok, acc, nil
}

// Me devolve a conta do usuário autenticado.
func (s *Service) Me(ctx context.Context, userID string) (users.Account, error) {
	return s.users.GetAccount(ctx, userID)
}
