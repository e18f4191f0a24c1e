package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"ubs-medicacoes/internal/domain/units"
)

type unitRepo struct {
	mu   sync.RWMutex
	byID map[string]units.Unit
}

func NewUnitRepo() units.Repository {
	return &unitRepo{byID: make(map[string]units.Unit)}
}

func (r *unitRepo) Create(ctx context.Context, u units.Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("unit id required")
	}
	if _, exists := r.byID[u.ID]; exists {
		return errors.New("unit already exists")
	}
	r.byID[u.ID] = u
	return nil
}

func (r *unitRepo) Update(ctx context.Context, u units.Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[u.ID]; !exists {
		return units.ErrNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func (r *unitRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return units.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *unitRepo) GetByID(ctx context.Context, id string) (units.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return units.Unit{}, units.ErrNotFound
	}
	return u, nil
}

func (r *unitRepo) List(ctx context.Context) ([]units.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]units.Unit, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
