package checks

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("daily check not found")
	ErrForbidden     = errors.New("user is not responsible for this unit")
	ErrAlreadyMarked = errors.New("period already marked today")
)

type Service struct {
	repo  Repository
	links LinkChecker
	loc   *time.Location
	now   func() time.Time
}

func NewService(repo Repository, linksSvc LinkChecker, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:  repo,
		links: linksSvc,
		loc:   loc,
		now:   time.Now,
	}
}

// Day devolve a data de hoje no fuso da aplicação.
func (s *Service) Day() string {
	return s.now().In(s.loc).Format(DayLayout)
}

func (s *Service) Location() *time.Location {
	return s.loc
}

// Mark registra a checagem do turno para hoje. Só o responsável vinculado marca.
func (s *Service) Mark(ctx context.Context, userID, unitID string, p Period) (DailyCheck, error) {
	userID = strings.TrimSpace(userID)
	unitID = strings.TrimSpace(unitID)
	if userID == "" || unitID == "" || !p.Valid() {
		return DailyCheck{}, ErrInvalidInput
	}

	ok, err := s.links.IsLinked(ctx, userID, unitID)
	if err != nil {
		return DailyCheck{}, err
	}
	if !ok {
		return DailyCheck{}, ErrForbidden
	}

	now := s.now()
	return s.repo.Mark(ctx, userID, unitID, now.In(s.loc).Format(DayLayout), p, now)
}

// Today devolve o estado de hoje; sem linha volta o valor zero (nada marcado).
func (s *Service) Today(ctx context.Context, userID, unitID string) (DailyCheck, error) {
	userID = strings.TrimSpace(userID)
	unitID = strings.TrimSpace(unitID)
	day := s.Day()

	c, err := s.repo.Get(ctx, userID, unitID, day)
	if errors.Is(err, ErrNotFound) {
		return DailyCheck{UserID: userID, UnitID: unitID, Day: day}, nil
	}
	return c, err
}

// TodayByUnit: unitID -> checagem de hoje do responsável atual da UBS.
// Checagens de quem já foi desvinculado não contam.
func (s *Service) TodayByUnit(ctx context.Context, responsible map[string]string) (map[string]DailyCheck, error) {
	items, err := s.repo.ListByDay(ctx, s.Day())
	if err != nil {
		return nil, err
	}
	out := make(map[string]DailyCheck, len(items))
	for _, c := range items {
		if responsible[c.UnitID] == c.UserID {
			out[c.UnitID] = c
		}
	}
	return out, nil
}

func (s *Service) PurgeUnit(ctx context.Context, unitID string) error {
	return s.repo.DeleteByUnit(ctx, unitID)
}

func (s *Service) PurgeUser(ctx context.Context, userID string) error {
	return s.repo.DeleteByUser(ctx, userID)
}
