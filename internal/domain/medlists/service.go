package medlists

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ubs-medicacoes/internal/domain/units"
	"ubs-medicacoes/internal/platform/logger"
	"ubs-medicacoes/internal/platform/textsearch"
	"ubs-medicacoes/internal/ports/blob"

	"github.com/google/uuid"
)

const (
	ContentTypePDF  = "application/pdf"
	DefaultMaxBytes = 10 << 20
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medication list not found")
	ErrUnitNotFound = errors.New("unit not found")
	ErrNotPDF       = errors.New("file must be a PDF")
	ErrTooLarge     = errors.New("file too large")
	ErrForbidden    = errors.New("forbidden")
)

var pdfMagic = []byte("%PDF-")

type Service struct {
	repo     Repository
	store    blob.Store
	units    UnitLookup
	links    LinkChecker
	maxBytes int64
	log      logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, store blob.Store, unitLookup UnitLookup, linksSvc LinkChecker, maxBytes int64, log logger.Logger) *Service {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		repo:     repo,
		store:    store,
		units:    unitLookup,
		links:    linksSvc,
		maxBytes: maxBytes,
		log:      log,
		now:      time.Now,
	}
}

func (s *Service) MaxBytes() int64 {
	return s.maxBytes
}

// Authorize: admin gerencia qualquer UBS; responsável só as vinculadas a ele.
func (s *Service) Authorize(ctx context.Context, actorID string, admin bool, unitID string) error {
	if admin {
		return nil
	}
	if s.links == nil || strings.TrimSpace(actorID) == "" {
		return ErrForbidden
	}
	ok, err := s.links.IsLinked(ctx, actorID, strings.TrimSpace(unitID))
	if err != nil {
		return fmt.Errorf("check link: %w", err)
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

type UploadInput struct {
	UnitID      string
	ActorID     string
	ActorAdmin  bool
	FileName    string
	ContentType string
	Size        int64 // declarado pelo cliente; -1 se desconhecido
	Body        io.Reader
}

// Upload troca o PDF vigente da UBS.
// O objeto novo sobe antes de apagar os antigos, assim uma falha no upload
// não deixa a UBS sem lista.
func (s *Service) Upload(ctx context.Context, in UploadInput) (MedicationList, error) {
	unitID := strings.TrimSpace(in.UnitID)
	if unitID == "" || in.Body == nil || strings.TrimSpace(in.ActorID) == "" {
		return MedicationList{}, ErrInvalidInput
	}
	if err := s.Authorize(ctx, in.ActorID, in.ActorAdmin, unitID); err != nil {
		return MedicationList{}, err
	}
	if _, err := s.units.GetByID(ctx, unitID); err != nil {
		if errors.Is(err, units.ErrNotFound) {
			return MedicationList{}, ErrUnitNotFound
		}
		return MedicationList{}, err
	}

	if !isPDFContentType(in.ContentType) {
		return MedicationList{}, ErrNotPDF
	}
	if in.Size > s.maxBytes {
		return MedicationList{}, ErrTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(in.Body, s.maxBytes+1))
	if err != nil {
		return MedicationList{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return MedicationList{}, ErrTooLarge
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return MedicationList{}, ErrNotPDF
	}

	now := s.now()
	fileName := SanitizeFileName(in.FileName)
	objectPath := unitID + "/" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + fileName

	old, err := s.store.List(ctx, unitID)
	if err != nil {
		return MedicationList{}, fmt.Errorf("list objects: %w", err)
	}

	if err := s.store.Put(ctx, objectPath, ContentTypePDF, int64(len(data)), bytes.NewReader(data)); err != nil {
		return MedicationList{}, fmt.Errorf("upload object: %w", err)
	}

	m := MedicationList{
		ID:         uuid.NewString(),
		UnitID:     unitID,
		URL:        s.store.PublicURL(objectPath),
		ObjectPath: objectPath,
		FileName:   fileName,
		SizeBytes:  int64(len(data)),
		UploadedBy: strings.TrimSpace(in.ActorID),
		UploadedAt: now,
	}
	if err := s.repo.Replace(ctx, m); err != nil {
		_ = s.store.Remove(ctx, objectPath)
		return MedicationList{}, err
	}

	stale := make([]string, 0, len(old))
	for _, o := range old {
		if o.Path != objectPath {
			stale = append(stale, o.Path)
		}
	}
	if len(stale) > 0 {
		if err := s.store.Remove(ctx, stale...); err != nil {
			// registro já aponta para o novo; sobra lixo no bucket, não é fatal
			s.log.Warn("remove stale pdf objects", map[string]any{
				"unit_id": unitID,
				"paths":   stale,
				"err":     err,
			})
		}
	}

	s.log.Info("medication list uploaded", map[string]any{
		"unit_id": unitID,
		"user_id": m.UploadedBy,
		"path":    objectPath,
		"bytes":   m.SizeBytes,
	})
	return m, nil
}

func (s *Service) Get(ctx context.Context, unitID string) (MedicationList, error) {
	unitID = strings.TrimSpace(unitID)
	if unitID == "" {
		return MedicationList{}, ErrNotFound
	}
	return s.repo.GetByUnit(ctx, unitID)
}

// ByUnit: unitID -> PDF vigente, para montar listagens sem N consultas.
func (s *Service) ByUnit(ctx context.Context) (map[string]MedicationList, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]MedicationList, len(items))
	for _, m := range items {
		out[m.UnitID] = m
	}
	return out, nil
}

// PurgeUnit apaga os objetos e o registro da UBS.
func (s *Service) PurgeUnit(ctx context.Context, unitID string) error {
	objs, err := s.store.List(ctx, unitID)
	if err != nil {
		return err
	}
	if len(objs) > 0 {
		paths := make([]string, 0, len(objs))
		for _, o := range objs {
			paths = append(paths, o.Path)
		}
		if err := s.store.Remove(ctx, paths...); err != nil {
			return err
		}
	}
	return s.repo.DeleteByUnit(ctx, unitID)
}

// DownloadName monta o nome sugerido para download: medicacoes_<Nome_Da_UBS>.pdf
func DownloadName(unitName string) string {
	name := strings.Join(strings.Fields(unitName), "_")
	if name == "" {
		name = "ubs"
	}
	return "medicacoes_" + name + ".pdf"
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// SanitizeFileName deixa o nome seguro para virar caminho no bucket.
func SanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	name = textsearch.Fold(name)
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._-")

	if name == "" || name == "pdf" {
		return "medicacoes.pdf"
	}
	if !strings.HasSuffix(name, ".pdf") {
		name += ".pdf"
	}
	return name
}

func isPDFContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct == ContentTypePDF
}
