package memory

import (
	"context"
	"sort"
	"sync"

	"ubs-medicacoes/internal/domain/medlists"
)

type medListRepo struct {
	mu     sync.RWMutex
	byUnit map[string]medlists.MedicationList
}

func NewMedListRepo() medlists.Repository {
	return &medListRepo{byUnit: make(map[string]medlists.MedicationList)}
}

func (r *medListRepo) Replace(ctx context.Context, m medlists.MedicationList) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byUnit[m.UnitID] = m
	return nil
}

func (r *medListRepo) GetByUnit(ctx context.Context, unitID string) (medlists.MedicationList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byUnit[unitID]
	if !ok {
		return medlists.MedicationList{}, medlists.ErrNotFound
	}
	return m, nil
}

func (r *medListRepo) DeleteByUnit(ctx context.Context, unitID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byUnit, unitID)
	return nil
}

func (r *medListRepo) List(ctx context.Context) ([]medlists.MedicationList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medlists.MedicationList, 0, len(r.byUnit))
	for _, m := range r.byUnit {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out, nil
}
