package checks

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	rows map[string]DailyCheck
}

func key(userID, unitID, day string) string { return userID + "|" + unitID + "|" + day }

func (r *fakeRepo) Mark(ctx context.Context, userID, unitID, day string, p Period, at time.Time) (DailyCheck, error) {
	c, ok := r.rows[key(userID, unitID, day)]
	if !ok {
		c = DailyCheck{UserID: userID, UnitID: unitID, Day: day}
	}
	if c.Has(p) {
		return c, ErrAlreadyMarked
	}
	t := at
	if p == PeriodMorning {
		c.Morning, c.MorningAt = true, &t
	} else {
		c.Afternoon, c.AfternoonAt = true, &t
	}
	r.rows[key(userID, unitID, day)] = c
	return c, nil
}

func (r *fakeRepo) Get(ctx context.Context, userID, unitID, day string) (DailyCheck, error) {
	c, ok := r.rows[key(userID, unitID, day)]
	if !ok {
		return DailyCheck{}, ErrNotFound
	}
	return c, nil
}

func (r *fakeRepo) ListByDay(ctx context.Context, day string) ([]DailyCheck, error) {
	out := make([]DailyCheck, 0)
	for _, c := range r.rows {
		if c.Day == day {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeRepo) DeleteByUnit(ctx context.Context, unitID string) error {
	for k, c := range r.rows {
		if c.UnitID == unitID {
			delete(r.rows, k)
		}
	}
	return nil
}

func (r *fakeRepo) DeleteByUser(ctx context.Context, userID string) error {
	for k, c := range r.rows {
		if c.UserID == userID {
			delete(r.rows, k)
		}
	}
	return nil
}

// fakeLinks: unitID -> userID
type fakeLinks map[string]string

func (f fakeLinks) IsLinked(ctx context.Context, userID, unitID string) (bool, error) {
	return f[unitID] == userID, nil
}

func newTestService(t *testing.T, now time.Time) (*Service, *fakeRepo) {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	repo := &fakeRepo{rows: map[string]DailyCheck{}}
	svc := NewService(repo, fakeLinks{"ubs-1": "resp-1"}, loc)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func TestMark_OncePerPeriod(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	c, err := svc.Mark(ctx, "resp-1", "ubs-1", PeriodMorning)
	require.NoError(t, err)
	assert.True(t, c.Morning)
	assert.False(t, c.Afternoon)
	assert.False(t, c.Complete())

	_, err = svc.Mark(ctx, "resp-1", "ubs-1", PeriodMorning)
	assert.ErrorIs(t, err, ErrAlreadyMarked)

	c, err = svc.Mark(ctx, "resp-1", "ubs-1", PeriodAfternoon)
	require.NoError(t, err)
	assert.True(t, c.Complete())
	require.NotNil(t, c.MorningAt)
	require.NotNil(t, c.AfternoonAt)
}

func TestMark_OnlyLinkedResponsible(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, time.Now())

	_, err := svc.Mark(ctx, "intruder", "ubs-1", PeriodMorning)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Mark(ctx, "resp-1", "ubs-1", Period("noite"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDay_UsesConfiguredTimezone(t *testing.T) {
	// 01:30 UTC ainda é o dia anterior em São Paulo (UTC-3)
	svc, _ := newTestService(t, time.Date(2026, 3, 10, 1, 30, 0, 0, time.UTC))
	assert.Equal(t, "2026-03-09", svc.Day())
}

func TestToday_ZeroValueWithoutRow(t *testing.T) {
	svc, _ := newTestService(t, time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC))

	c, err := svc.Today(context.Background(), "resp-1", "ubs-1")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", c.Day)
	assert.False(t, c.Morning)
	assert.False(t, c.Afternoon)
}

func TestTodayByUnit_IgnoresFormerResponsible(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc, repo := newTestService(t, now)

	_, err := svc.Mark(ctx, "resp-1", "ubs-1", PeriodMorning)
	require.NoError(t, err)
	repo.rows[key("old", "ubs-2", "2026-03-10")] = DailyCheck{UserID: "old", UnitID: "ubs-2", Day: "2026-03-10", Morning: true}

	got, err := svc.TodayByUnit(ctx, map[string]string{"ubs-1": "resp-1", "ubs-2": "new"})
	require.NoError(t, err)
	assert.Contains(t, got, "ubs-1")
	assert.NotContains(t, got, "ubs-2")
}
