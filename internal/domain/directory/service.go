package directory

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"ubs-medicacoes/internal/domain/checks"
	"ubs-medicacoes/internal/domain/medlists"
	"ubs-medicacoes/internal/domain/units"
	"ubs-medicacoes/internal/domain/users"
	"ubs-medicacoes/internal/platform/textsearch"
)

var (
	ErrNotFound    = errors.New("unit not found")
	ErrNoPDF       = errors.New("unit has no medication list")
	ErrInvalidSize = errors.New("invalid qr code size")
)

const (
	DefaultQRSize = 256
	MinQRSize     = 64
	MaxQRSize     = 1024
)

type UnitLister interface {
	List(ctx context.Context) ([]units.Unit, error)
}

type UserLister interface {
	List(ctx context.Context) ([]users.User, error)
}

// Links é satisfeito por *links.Service.
type Links interface {
	ResponsibleMap(ctx context.Context) (map[string]string, error)
	UnitsOf(ctx context.Context, userID string) ([]string, error)
}

type MedLists interface {
	ByUnit(ctx context.Context) (map[string]medlists.MedicationList, error)
}

type Checks interface {
	TodayByUnit(ctx context.Context, responsible map[string]string) (map[string]checks.DailyCheck, error)
	Location() *time.Location
}

type Deps struct {
	Units    UnitLister
	Users    UserLister
	Links    Links
	MedLists MedLists
	Checks   Checks

	// PublicBaseURL completa URLs relativas de PDF (blob em memória).
	PublicBaseURL string
}

type Service struct {
	d Deps
}

func NewService(d Deps) *Service {
	d.PublicBaseURL = strings.TrimRight(strings.TrimSpace(d.PublicBaseURL), "/")
	return &Service{d: d}
}

// Search lista as UBS cujo nome, localidade ou responsável contém q
// (sem diferenciar maiúsculas e acentos). q vazio lista todas.
func (s *Service) Search(ctx context.Context, q string) ([]Card, error) {
	m := textsearch.NewMatcher(q)
	return s.cards(ctx, func(c Card) bool {
		return m.Match(c.Unit.Name, c.Unit.Locality, c.ResponsibleName)
	})
}

func (s *Service) Get(ctx context.Context, unitID string) (Card, error) {
	unitID = strings.TrimSpace(unitID)
	items, err := s.cards(ctx, func(c Card) bool { return c.Unit.ID == unitID })
	if err != nil {
		return Card{}, err
	}
	if len(items) == 0 {
		return Card{}, ErrNotFound
	}
	return items[0], nil
}

// ForResponsible devolve as UBS vinculadas ao usuário (painel do responsável).
func (s *Service) ForResponsible(ctx context.Context, userID string) ([]Card, error) {
	ids, err := s.d.Links.UnitsOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	mine := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		mine[id] = struct{}{}
	}
	return s.cards(ctx, func(c Card) bool {
		_, ok := mine[c.Unit.ID]
		return ok
	})
}

// PDFLink devolve a URL absoluta do PDF vigente da UBS.
func (s *Service) PDFLink(ctx context.Context, unitID string) (Card, string, error) {
	c, err := s.Get(ctx, unitID)
	if err != nil {
		return Card{}, "", err
	}
	if !c.HasPDF() {
		return c, "", ErrNoPDF
	}
	return c, AbsoluteURL(c.PDFURL, s.d.PublicBaseURL), nil
}

// QRCodeSize valida o tamanho pedido; vazio usa o padrão.
func QRCodeSize(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultQRSize, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n > MaxQRSize {
		return 0, ErrInvalidSize
	}
	if n < MinQRSize {
		return 0, ErrInvalidSize
	}
	return n, nil
}

// AbsoluteURL garante esquema na URL usada no QR code: caminhos relativos
// ganham base; endereços sem esquema ganham https://.
func AbsoluteURL(raw, base string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "/") {
		if base == "" {
			return raw
		}
		raw = base + raw
	}
	if u, err := url.Parse(raw); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return raw
	}
	return "https://" + strings.TrimPrefix(raw, "//")
}

func (s *Service) cards(ctx context.Context, keep func(Card) bool) ([]Card, error) {
	list, err := s.d.Units.List(ctx)
	if err != nil {
		return nil, err
	}
	responsible, err := s.d.Links.ResponsibleMap(ctx)
	if err != nil {
		return nil, err
	}
	people, err := s.d.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(people))
	for _, u := range people {
		names[u.ID] = u.DisplayName()
	}
	pdfs, err := s.d.MedLists.ByUnit(ctx)
	if err != nil {
		return nil, err
	}
	today, err := s.d.Checks.TodayByUnit(ctx, responsible)
	if err != nil {
		return nil, err
	}

	out := make([]Card, 0, len(list))
	for _, u := range list {
		c := Card{Unit: u, ResponsibleName: NoResponsible}
		if uid, ok := responsible[u.ID]; ok {
			c.ResponsibleID = uid
			if n, ok := names[uid]; ok {
				c.ResponsibleName = n
			}
		}
		if m, ok := pdfs[u.ID]; ok {
			at := m.UploadedAt
			c.PDFURL = m.URL
			c.DownloadName = medlists.DownloadName(u.Name)
			c.UpdatedAt = &at
		}
		if dc, ok := today[u.ID]; ok {
			c.Morning = dc.Morning
			c.Afternoon = dc.Afternoon
		}
		if keep(c) {
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Unit.Name) < strings.ToLower(out[j].Unit.Name)
	})
	return out, nil
}

// FormatDate formata a data no fuso da aplicação (dd/mm/aaaa).
func (s *Service) FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	loc := s.d.Checks.Location()
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}
