package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"ubs-medicacoes/internal/domain/links"
)

// linkRepo indexa por UBS: cada UBS tem no máximo um vínculo.
type linkRepo struct {
	mu     sync.RWMutex
	byUnit map[string]links.Link
}

func NewLinkRepo() links.Repository {
	return &linkRepo{byUnit: make(map[string]links.Link)}
}

func (r *linkRepo) ReplaceForUnit(ctx context.Context, unitID, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byUnit, unitID)
	if userID != "" {
		r.byUnit[unitID] = links.Link{UserID: userID, UnitID: unitID, CreatedAt: at}
	}
	return nil
}

func (r *linkRepo) ReplaceForUser(ctx context.Context, userID string, unitIDs []string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for unitID, l := range r.byUnit {
		if l.UserID == userID {
			delete(r.byUnit, unitID)
		}
	}
	for _, unitID := range unitIDs {
		r.byUnit[unitID] = links.Link{UserID: userID, UnitID: unitID, CreatedAt: at}
	}
	return nil
}

func (r *linkRepo) Delete(ctx context.Context, userID, unitID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.byUnit[unitID]
	if !ok || l.UserID != userID {
		return links.ErrNotFound
	}
	delete(r.byUnit, unitID)
	return nil
}

func (r *linkRepo) DeleteByUnit(ctx context.Context, unitID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byUnit, unitID)
	return nil
}

func (r *linkRepo) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for unitID, l := range r.byUnit {
		if l.UserID == userID {
			delete(r.byUnit, unitID)
		}
	}
	return nil
}

func (r *linkRepo) GetByUnit(ctx context.Context, unitID string) (links.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byUnit[unitID]
	if !ok {
		return links.Link{}, links.ErrNotFound
	}
	return l, nil
}

func (r *linkRepo) ListByUser(ctx context.Context, userID string) ([]links.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]links.Link, 0)
	for _, l := range r.byUnit {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sortLinks(out)
	return out, nil
}

func (r *linkRepo) List(ctx context.Context) ([]links.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]links.Link, 0, len(r.byUnit))
	for _, l := range r.byUnit {
		out = append(out, l)
	}
	sortLinks(out)
	return out, nil
}

func sortLinks(items []links.Link) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].UnitID < items[j].UnitID
	})
}
