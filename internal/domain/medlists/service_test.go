package medlists

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	memblob "ubs-medicacoes/internal/adapters/blob/memory"
	"ubs-medicacoes/internal/domain/units"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	byUnit map[string]MedicationList
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byUnit: map[string]MedicationList{}}
}

func (r *fakeRepo) Replace(ctx context.Context, m MedicationList) error {
	r.byUnit[m.UnitID] = m
	return nil
}

func (r *fakeRepo) GetByUnit(ctx context.Context, unitID string) (MedicationList, error) {
	m, ok := r.byUnit[unitID]
	if !ok {
		return MedicationList{}, ErrNotFound
	}
	return m, nil
}

func (r *fakeRepo) DeleteByUnit(ctx context.Context, unitID string) error {
	delete(r.byUnit, unitID)
	return nil
}

func (r *fakeRepo) List(ctx context.Context) ([]MedicationList, error) {
	out := make([]MedicationList, 0, len(r.byUnit))
	for _, m := range r.byUnit {
		out = append(out, m)
	}
	return out, nil
}

type fakeUnits map[string]units.Unit

func (f fakeUnits) GetByID(ctx context.Context, id string) (units.Unit, error) {
	u, ok := f[id]
	if !ok {
		return units.Unit{}, units.ErrNotFound
	}
	return u, nil
}

// fakeLinks: unitID -> userID responsável
type fakeLinks map[string]string

func (f fakeLinks) IsLinked(ctx context.Context, userID, unitID string) (bool, error) {
	return userID != "" && f[unitID] == userID, nil
}

func newTestService(t *testing.T, maxBytes int64) (*Service, *fakeRepo, *memblob.Store) {
	t.Helper()
	repo := newFakeRepo()
	store := memblob.New("https://cdn.example/medicacoes_ubs")
	unitsByID := fakeUnits{
		"u1": {ID: "u1", Name: "UBS Centro"},
		"u2": {ID: "u2", Name: "UBS Norte"},
	}
	svc := NewService(repo, store, unitsByID, fakeLinks{"u1": "resp-1"}, maxBytes, nil)
	return svc, repo, store
}

func pdfBody(extra string) *bytes.Reader {
	return bytes.NewReader([]byte("%PDF-1.4\n" + extra))
}

func TestUpload_ReplacesPreviousObject(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newTestService(t, 0)

	t0 := time.UnixMilli(1_700_000_000_000)
	svc.now = func() time.Time { return t0 }

	first, err := svc.Upload(ctx, UploadInput{
		UnitID: "u1", ActorID: "resp-1", FileName: "Lista Março.pdf",
		ContentType: "application/pdf", Size: -1, Body: pdfBody("a"),
	})
	require.NoError(t, err)
	assert.Equal(t, "u1/1700000000000-lista_marco.pdf", first.ObjectPath)
	assert.Equal(t, "https://cdn.example/medicacoes_ubs/u1/1700000000000-lista_marco.pdf", first.URL)
	assert.Equal(t, "resp-1", first.UploadedBy)

	svc.now = func() time.Time { return t0.Add(time.Minute) }
	second, err := svc.Upload(ctx, UploadInput{
		UnitID: "u1", ActorID: "admin-1", ActorAdmin: true, FileName: "abril",
		ContentType: "application/pdf; charset=binary", Size: -1, Body: pdfBody("b"),
	})
	require.NoError(t, err)
	assert.Equal(t, "abril.pdf", second.FileName)

	objs, err := store.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, second.ObjectPath, objs[0].Path)

	got, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
	assert.Len(t, repo.byUnit, 1)
}

func TestUpload_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newTestService(t, 32)

	cases := []struct {
		name string
		in   UploadInput
		want error
	}{
		{"unknown unit", UploadInput{UnitID: "nope", ActorID: "a", ActorAdmin: true, ContentType: ContentTypePDF, Body: pdfBody("")}, ErrUnitNotFound},
		{"wrong content type", UploadInput{UnitID: "u1", ActorID: "a", ActorAdmin: true, ContentType: "image/png", Body: pdfBody("")}, ErrNotPDF},
		{"bad magic", UploadInput{UnitID: "u1", ActorID: "a", ActorAdmin: true, ContentType: ContentTypePDF, Body: strings.NewReader("hello")}, ErrNotPDF},
		{"declared too large", UploadInput{UnitID: "u1", ActorID: "a", ActorAdmin: true, ContentType: ContentTypePDF, Size: 33, Body: pdfBody("")}, ErrTooLarge},
		{"body too large", UploadInput{UnitID: "u1", ActorID: "a", ActorAdmin: true, ContentType: ContentTypePDF, Size: -1, Body: pdfBody(strings.Repeat("x", 64))}, ErrTooLarge},
		{"missing actor", UploadInput{UnitID: "u1", ActorAdmin: true, ContentType: ContentTypePDF, Body: pdfBody("")}, ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upload(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	objs, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, objs)
}

func TestUpload_OnlyLinkedResponsibleOrAdmin(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newTestService(t, 0)

	// resp-1 é responsável só pela u1
	_, err := svc.Upload(ctx, UploadInput{
		UnitID: "u2", ActorID: "resp-1", FileName: "x.pdf", ContentType: ContentTypePDF, Size: -1, Body: pdfBody(""),
	})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Upload(ctx, UploadInput{
		UnitID: "u1", ActorID: "outro", FileName: "x.pdf", ContentType: ContentTypePDF, Size: -1, Body: pdfBody(""),
	})
	assert.ErrorIs(t, err, ErrForbidden)

	objs, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, objs)
	assert.Empty(t, repo.byUnit)

	assert.NoError(t, svc.Authorize(ctx, "resp-1", false, "u1"))
	assert.NoError(t, svc.Authorize(ctx, "admin-1", true, "u2"))
	assert.ErrorIs(t, svc.Authorize(ctx, "", false, "u1"), ErrForbidden)

	_, err = svc.Upload(ctx, UploadInput{
		UnitID: "u2", ActorID: "admin-1", ActorAdmin: true, FileName: "x.pdf", ContentType: ContentTypePDF, Size: -1, Body: pdfBody(""),
	})
	assert.NoError(t, err)
}

func TestPurgeUnit_RemovesObjectsAndRecord(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newTestService(t, 0)

	_, err := svc.Upload(ctx, UploadInput{
		UnitID: "u1", ActorID: "a", ActorAdmin: true, FileName: "x.pdf", ContentType: ContentTypePDF, Size: -1, Body: pdfBody(""),
	})
	require.NoError(t, err)

	require.NoError(t, svc.PurgeUnit(ctx, "u1"))

	objs, _ := store.List(ctx, "u1")
	assert.Empty(t, objs)
	assert.Empty(t, repo.byUnit)

	_, err = svc.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"Lista de Medicações.PDF": "lista_de_medicacoes.pdf",
		`C:\docs\março.pdf`:       "marco.pdf",
		"../../etc/passwd":        "passwd.pdf",
		"":                        "medicacoes.pdf",
		"   ":                     "medicacoes.pdf",
		".pdf":                    "medicacoes.pdf",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeFileName(in), "input %q", in)
	}
}

func TestDownloadName(t *testing.T) {
	assert.Equal(t, "medicacoes_UBS_Vila_Nova.pdf", DownloadName("UBS  Vila Nova "))
	assert.Equal(t, "medicacoes_ubs.pdf", DownloadName(""))
}
