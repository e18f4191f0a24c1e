package units

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("unit not found")
)

type Service struct {
	repo       Repository
	dependents []Dependent
	now        func() time.Time
}

func NewService(repo Repository, dependents ...Dependent) *Service {
	return &Service{
		repo:       repo,
		dependents: dependents,
		now:        time.Now,
	}
}

type CreateInput struct {
	Name     string
	Locality string
	Hours    string
	Contact  string
	Status   Status
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Unit, error) {
	name := strings.TrimSpace(in.Name)
	locality := strings.TrimSpace(in.Locality)
	hours := strings.TrimSpace(in.Hours)
	if name == "" || locality == "" || hours == "" {
		return Unit{}, ErrInvalidInput
	}

	status := in.Status
	if status == "" {
		status = StatusOpen
	}
	if !status.Valid() {
		return Unit{}, ErrInvalidInput
	}

	now := s.now()
	u := Unit{
		ID:        uuid.NewString(),
		Name:      name,
		Locality:  locality,
		Hours:     hours,
		Contact:   strings.TrimSpace(in.Contact),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return Unit{}, err
	}
	return u, nil
}

// UpdateInput: nil = não mexer.
type UpdateInput struct {
	Name     *string
	Locality *string
	Hours    *string
	Contact  *string
	Status   *Status
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Unit, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return Unit{}, err
	}

	required := func(dst *string, v *string) error {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		if t == "" {
			return ErrInvalidInput
		}
		*dst = t
		return nil
	}
	if err := required(&u.Name, in.Name); err != nil {
		return Unit{}, err
	}
	if err := required(&u.Locality, in.Locality); err != nil {
		return Unit{}, err
	}
	if err := required(&u.Hours, in.Hours); err != nil {
		return Unit{}, err
	}
	if in.Contact != nil {
		u.Contact = strings.TrimSpace(*in.Contact)
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return Unit{}, ErrInvalidInput
		}
		u.Status = *in.Status
	}

	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		return Unit{}, err
	}
	return u, nil
}

// Delete remove a UBS e tudo que depende dela.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	for _, d := range s.dependents {
		if err := d.PurgeUnit(ctx, id); err != nil {
			return fmt.Errorf("purge unit %s: %w", id, err)
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (Unit, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Unit{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// List devolve as UBS ordenadas por nome.
func (s *Service) List(ctx context.Context) ([]Unit, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items, nil
}

// Exists é usado por outros módulos para validar IDs de UBS.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
