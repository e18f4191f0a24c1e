package links

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"ubs-medicacoes/internal/domain/units"
	"ubs-medicacoes/internal/domain/users"
)

// Error carrega o status HTTP junto, para handlers de outros módulos.
type Error struct {
	msg    string
	status int
}

func (e *Error) Error() string   { return e.msg }
func (e *Error) HTTPStatus() int { return e.status }

var (
	ErrNotFound       = errors.New("link not found")
	ErrNotResponsible = &Error{msg: "user is not a responsavel", status: http.StatusBadRequest}
	ErrUnknownUnit    = &Error{msg: "unknown unit", status: http.StatusNotFound}
	ErrUnknownUser    = &Error{msg: "unknown user", status: http.StatusNotFound}
)

type Service struct {
	repo     Repository
	unitRepo UnitLookup
	userRepo UserLookup
	now      func() time.Time
}

func NewService(repo Repository, unitRepo UnitLookup, userRepo UserLookup) *Service {
	return &Service{
		repo:     repo,
		unitRepo: unitRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

// SetUnitResponsible define o responsável (1:1) da UBS. userID vazio desvincula.
func (s *Service) SetUnitResponsible(ctx context.Context, unitID, userID string) error {
	unitID = strings.TrimSpace(unitID)
	userID = strings.TrimSpace(userID)

	if err := s.checkUnit(ctx, unitID); err != nil {
		return err
	}
	if userID != "" {
		if err := s.checkResponsavel(ctx, userID); err != nil {
			return err
		}
	}
	return s.repo.ReplaceForUnit(ctx, unitID, userID, s.now())
}

// SetUserUnits substitui as UBS do usuário. UBS listadas saem de outros responsáveis.
// Lista vazia só limpa, e vale para qualquer papel.
func (s *Service) SetUserUnits(ctx context.Context, userID string, unitIDs []string) error {
	userID = strings.TrimSpace(userID)
	ids := dedupe(unitIDs)

	if len(ids) == 0 {
		if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
			return ErrUnknownUser
		}
		return s.repo.DeleteByUser(ctx, userID)
	}

	if err := s.checkResponsavel(ctx, userID); err != nil {
		return err
	}
	if err := s.CheckUnits(ctx, ids); err != nil {
		return err
	}
	return s.repo.ReplaceForUser(ctx, userID, ids, s.now())
}

// CheckUnits confere que todas as UBS existem, sem gravar nada.
func (s *Service) CheckUnits(ctx context.Context, unitIDs []string) error {
	for _, id := range dedupe(unitIDs) {
		if err := s.checkUnit(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Toggle vincula se não existir, desvincula se existir. Devolve o estado novo.
func (s *Service) Toggle(ctx context.Context, userID, unitID string) (bool, error) {
	linked, err := s.IsLinked(ctx, userID, unitID)
	if err != nil {
		return false, err
	}
	if linked {
		return false, s.repo.Delete(ctx, strings.TrimSpace(userID), strings.TrimSpace(unitID))
	}
	if err := s.SetUnitResponsible(ctx, unitID, userID); err != nil {
		return false, err
	}
	return true, nil
}

// UnitsOf devolve os IDs de UBS do usuário, ordenados.
func (s *Service) UnitsOf(ctx context.Context, userID string) ([]string, error) {
	items, err := s.repo.ListByUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, l := range items {
		out = append(out, l.UnitID)
	}
	sort.Strings(out)
	return out, nil
}

// ResponsibleOf devolve o userID vinculado à UBS ("" se nenhum).
func (s *Service) ResponsibleOf(ctx context.Context, unitID string) (string, error) {
	l, err := s.repo.GetByUnit(ctx, strings.TrimSpace(unitID))
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return l.UserID, nil
}

func (s *Service) IsLinked(ctx context.Context, userID, unitID string) (bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, nil
	}
	owner, err := s.ResponsibleOf(ctx, unitID)
	if err != nil {
		return false, err
	}
	return owner == userID, nil
}

// ResponsibleMap: unitID -> userID para todas as UBS vinculadas.
func (s *Service) ResponsibleMap(ctx context.Context) (map[string]string, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(items))
	for _, l := range items {
		out[l.UnitID] = l.UserID
	}
	return out, nil
}

func (s *Service) PurgeUnit(ctx context.Context, unitID string) error {
	return s.repo.DeleteByUnit(ctx, unitID)
}

func (s *Service) PurgeUser(ctx context.Context, userID string) error {
	return s.repo.DeleteByUser(ctx, userID)
}

func (s *Service) checkUnit(ctx context.Context, unitID string) error {
	if unitID == "" {
		return ErrUnknownUnit
	}
	if _, err := s.unitRepo.GetByID(ctx, unitID); err != nil {
		if errors.Is(err, units.ErrNotFound) {
			return ErrUnknownUnit
		}
		return err
	}
	return nil
}

func (s *Service) checkResponsavel(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnknownUser
	}
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return ErrUnknownUser
		}
		return err
	}
	if !u.IsResponsavel() {
		return ErrNotResponsible
	}
	return nil
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, id := range in {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
