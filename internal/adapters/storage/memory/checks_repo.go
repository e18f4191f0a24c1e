package memory

import (
	"context"
	"sync"
	"time"

	"ubs-medicacoes/internal/domain/checks"
)

type checkKey struct {
	userID, unitID, day string
}

type checkRepo struct {
	mu    sync.Mutex
	byKey map[checkKey]checks.DailyCheck
}

func NewCheckRepo() checks.Repository {
	return &checkRepo{byKey: make(map[checkKey]checks.DailyCheck)}
}

func (r *checkRepo) Mark(ctx context.Context, userID, unitID, day string, p checks.Period, at time.Time) (checks.DailyCheck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := checkKey{userID, unitID, day}
	c, ok := r.byKey[k]
	if !ok {
		c = checks.DailyCheck{UserID: userID, UnitID: unitID, Day: day}
	}
	if c.Has(p) {
		return c, checks.ErrAlreadyMarked
	}

	t := at
	switch p {
	case checks.PeriodMorning:
		c.Morning, c.MorningAt = true, &t
	case checks.PeriodAfternoon:
		c.Afternoon, c.AfternoonAt = true, &t
	}
	r.byKey[k] = c
	return c, nil
}

func (r *checkRepo) Get(ctx context.Context, userID, unitID, day string) (checks.DailyCheck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byKey[checkKey{userID, unitID, day}]
	if !ok {
		return checks.DailyCheck{}, checks.ErrNotFound
	}
	return c, nil
}

func (r *checkRepo) ListByDay(ctx context.Context, day string) ([]checks.DailyCheck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]checks.DailyCheck, 0)
	for k, c := range r.byKey {
		if k.day == day {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *checkRepo) DeleteByUnit(ctx context.Context, unitID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k := range r.byKey {
		if k.unitID == unitID {
			delete(r.byKey, k)
		}
	}
	return nil
}

func (r *checkRepo) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k := range r.byKey {
		if k.userID == userID {
			delete(r.byKey, k)
		}
	}
	return nil
}
