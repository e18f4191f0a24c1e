package users

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"ubs-medicacoes/internal/platform/passwords"
	"ubs-medicacoes/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSelfDelete         = errors.New("cannot delete own account")
)

type Service struct {
	repo       Repository
	linker     UnitLinker
	dependents []Dependent
	now        func() time.Time

	hash func(string) (string, error)
}

func NewService(repo Repository, linker UnitLinker, dependents ...Dependent) *Service {
	return &Service{
		repo:       repo,
		linker:     linker,
		dependents: dependents,
		now:        time.Now,
		hash:       passwords.Hash,
	}
}

// Account é o usuário junto com as UBS vinculadas.
type Account struct {
	User
	UnitIDs []string
}

type CreateInput struct {
	Email    string
	Password string
	Name     string
	Role     auth.Role
	UnitIDs  []string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Account, error) {
	email, err := normalizeLogin(in.Email)
	if err != nil {
		return Account{}, err
	}
	if in.Password == "" || !in.Role.Valid() {
		return Account{}, ErrInvalidInput
	}
	if in.Role != auth.RoleResponsavel && len(in.UnitIDs) > 0 {
		return Account{}, ErrInvalidInput
	}
	if err := s.linker.CheckUnits(ctx, in.UnitIDs); err != nil {
		return Account{}, err
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return Account{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return Account{}, err
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return Account{}, fmt.Errorf("hash password: %w", err)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return Account{}, err
	}

	if len(in.UnitIDs) > 0 {
		if err := s.linker.SetUserUnits(ctx, u.ID, in.UnitIDs); err != nil {
			// UBS pode ter sumido entre a checagem e o vínculo
			_ = s.repo.Delete(ctx, u.ID)
			return Account{}, err
		}
	}
	return s.account(ctx, u)
}

// UpdateInput: nil = não mexer. UnitIDs != nil substitui o conjunto de vínculos.
type UpdateInput struct {
	Email    *string
	Password *string
	Name     *string
	Role     *auth.Role
	UnitIDs  *[]string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Account, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return Account{}, err
	}
	prev := u

	if in.Email != nil {
		email, err := normalizeLogin(*in.Email)
		if err != nil {
			return Account{}, err
		}
		if email != u.Email {
			if other, err := s.repo.GetByEmail(ctx, email); err == nil && other.ID != u.ID {
				return Account{}, ErrEmailTaken
			} else if err != nil && !errors.Is(err, ErrNotFound) {
				return Account{}, err
			}
			u.Email = email
		}
	}
	if in.Password != nil {
		if *in.Password == "" {
			return Account{}, ErrInvalidInput
		}
		hash, err := s.hash(*in.Password)
		if err != nil {
			return Account{}, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
		if u.Name == "" {
			u.Name = u.Email
		}
	}

	roleChanged := false
	if in.Role != nil {
		if !in.Role.Valid() {
			return Account{}, ErrInvalidInput
		}
		roleChanged = *in.Role != u.Role
		u.Role = *in.Role
	}
	if in.UnitIDs != nil {
		if len(*in.UnitIDs) > 0 && u.Role != auth.RoleResponsavel {
			return Account{}, ErrInvalidInput
		}
		if err := s.linker.CheckUnits(ctx, *in.UnitIDs); err != nil {
			return Account{}, err
		}
	}

	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		return Account{}, err
	}

	var linkErr error
	switch {
	case in.UnitIDs != nil:
		linkErr = s.linker.SetUserUnits(ctx, u.ID, *in.UnitIDs)
	case roleChanged && u.Role != auth.RoleResponsavel:
		// admin não fica vinculado a UBS
		linkErr = s.linker.SetUserUnits(ctx, u.ID, nil)
	}
	if linkErr != nil {
		_ = s.repo.Update(ctx, prev)
		return Account{}, linkErr
	}

	return s.account(ctx, u)
}

// Delete remove a conta. actorID é quem pede; ninguém apaga a própria conta.
func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if strings.TrimSpace(actorID) == strings.TrimSpace(id) {
		return ErrSelfDelete
	}
	for _, d := range s.dependents {
		if err := d.PurgeUser(ctx, id); err != nil {
			return fmt.Errorf("purge user %s: %w", id, err)
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetAccount(ctx context.Context, id string) (Account, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return Account{}, err
	}
	return s.account(ctx, u)
}

// CurrentRole é o papel gravado agora, não o do token.
func (s *Service) CurrentRole(ctx context.Context, id string) (auth.Role, bool, error) {
	u, err := s.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return u.Role, true, nil
}

// List devolve as contas ordenadas por email.
func (s *Service) List(ctx context.Context) ([]Account, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Email < items[j].Email })

	out := make([]Account, 0, len(items))
	for _, u := range items {
		a, err := s.account(ctx, u)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Authenticate é o portão de login: login (email ou texto livre) + senha.
// Senhas legadas em texto puro são convertidas para bcrypt no primeiro login válido.
func (s *Service) Authenticate(ctx context.Context, login, password string) (User, error) {
	email, err := normalizeLogin(login)
	if err != nil || password == "" {
		return User{}, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	ok, rehash := passwords.Verify(u.PasswordHash, password)
	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if rehash {
		if h, err := s.hash(password); err == nil {
			u.PasswordHash = h
			u.UpdatedAt = s.now()
			// falha aqui não impede o login; tenta de novo na próxima vez
			_ = s.repo.Update(ctx, u)
		}
	}
	return u, nil
}

func (s *Service) account(ctx context.Context, u User) (Account, error) {
	ids, err := s.linker.UnitsOf(ctx, u.ID)
	if err != nil {
		return Account{}, err
	}
	if ids == nil {
		ids = []string{}
	}
	return Account{User: u, UnitIDs: ids}, nil
}

// normalizeLogin: o campo email guarda o login, que pode ser texto livre
// (contas antigas usam "ubscentro" etc.). Só apara e passa para minúsculas.
func normalizeLogin(raw string) (string, error) {
	login := strings.ToLower(strings.TrimSpace(raw))
	if login == "" {
		return "", ErrInvalidInput
	}
	return login, nil
}
