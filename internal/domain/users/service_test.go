package users_test

import (
	"context"
	"testing"

	mem "ubs-medicacoes/internal/adapters/storage/memory"
	"ubs-medicacoes/internal/domain/links"
	"ubs-medicacoes/internal/domain/units"
	"ubs-medicacoes/internal/domain/users"
	"ubs-medicacoes/internal/platform/passwords"
	"ubs-medicacoes/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	repo  users.Repository
	users *users.Service
	units *units.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	unitRepo := mem.NewUnitRepo()
	userRepo := mem.NewUserRepo()
	linksSvc := links.NewService(mem.NewLinkRepo(), unitRepo, userRepo)
	return fixture{
		repo:  userRepo,
		users: users.NewService(userRepo, linksSvc, linksSvc),
		units: units.NewService(unitRepo, linksSvc),
	}
}

func TestCreate_NormalizesAndHashes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	acc, err := f.users.Create(ctx, users.CreateInput{
		Email:    "  Ana@UBS.gov.br ",
		Password: "segredo",
		Role:     auth.RoleResponsavel,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@ubs.gov.br", acc.Email)
	assert.Equal(t, "ana@ubs.gov.br", acc.Name)
	assert.True(t, passwords.IsHash(acc.PasswordHash))
	assert.Empty(t, acc.UnitIDs)

	_, err = f.users.Create(ctx, users.CreateInput{Email: "ANA@ubs.gov.br", Password: "x", Role: auth.RoleAdmin})
	assert.ErrorIs(t, err, users.ErrEmailTaken)
}

func TestCreate_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	cases := []users.CreateInput{
		{Email: "", Password: "x", Role: auth.RoleAdmin},
		{Email: "   ", Password: "x", Role: auth.RoleAdmin},
		{Email: "a@b.com", Password: "", Role: auth.RoleAdmin},
		{Email: "a@b.com", Password: "x", Role: auth.Role("root")},
		{Email: "a@b.com", Password: "x", Role: auth.RoleAdmin, UnitIDs: []string{"u1"}},
	}
	for _, in := range cases {
		_, err := f.users.Create(ctx, in)
		assert.ErrorIs(t, err, users.ErrInvalidInput, "input %+v", in)
	}
}

func TestCreate_WithUnits(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.units.Create(ctx, units.CreateInput{Name: "UBS A", Locality: "Centro", Hours: "7h-17h"})
	require.NoError(t, err)

	acc, err := f.users.Create(ctx, users.CreateInput{
		Email: "ana@ubs.gov.br", Password: "x", Role: auth.RoleResponsavel, UnitIDs: []string{u.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{u.ID}, acc.UnitIDs)

	// rebaixar para admin limpa os vínculos
	admin := auth.RoleAdmin
	acc, err = f.users.Update(ctx, acc.ID, users.UpdateInput{Role: &admin})
	require.NoError(t, err)
	assert.Empty(t, acc.UnitIDs)
}

func TestCreate_UnknownUnitLeavesNoAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	in := users.CreateInput{Email: "a@b.com", Password: "x", Role: auth.RoleResponsavel, UnitIDs: []string{"nope"}}
	_, err := f.users.Create(ctx, in)
	require.ErrorIs(t, err, links.ErrUnknownUnit)

	_, err = f.repo.GetByEmail(ctx, "a@b.com")
	assert.ErrorIs(t, err, users.ErrNotFound)

	// depois de corrigir a UBS, o mesmo login ainda está livre
	u, err := f.units.Create(ctx, units.CreateInput{Name: "UBS A", Locality: "Centro", Hours: "7h-17h"})
	require.NoError(t, err)
	in.UnitIDs = []string{u.ID}
	acc, err := f.users.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, []string{u.ID}, acc.UnitIDs)
}

func TestUpdate_UnknownUnitKeepsStoredUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.units.Create(ctx, units.CreateInput{Name: "UBS A", Locality: "Centro", Hours: "7h-17h"})
	require.NoError(t, err)
	acc, err := f.users.Create(ctx, users.CreateInput{
		Email: "a@b.com", Password: "x", Role: auth.RoleResponsavel, UnitIDs: []string{u.ID},
	})
	require.NoError(t, err)

	email := "z@d.com"
	bad := []string{"nope"}
	_, err = f.users.Update(ctx, acc.ID, users.UpdateInput{Email: &email, UnitIDs: &bad})
	require.ErrorIs(t, err, links.ErrUnknownUnit)

	got, err := f.users.GetAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got.Email)
	assert.Equal(t, []string{u.ID}, got.UnitIDs)
}

func TestUpdate_EmailTakenIgnoresCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.users.Create(ctx, users.CreateInput{Email: "ana@ubs.gov.br", Password: "x", Role: auth.RoleAdmin})
	require.NoError(t, err)
	bia, err := f.users.Create(ctx, users.CreateInput{Email: "bia@ubs.gov.br", Password: "x", Role: auth.RoleAdmin})
	require.NoError(t, err)

	email := "  ANA@UBS.gov.br"
	_, err = f.users.Update(ctx, bia.ID, users.UpdateInput{Email: &email})
	assert.ErrorIs(t, err, users.ErrEmailTaken)

	got, err := f.users.GetByID(ctx, bia.ID)
	require.NoError(t, err)
	assert.Equal(t, "bia@ubs.gov.br", got.Email)

	// o próprio email com outra caixa não conflita
	own := "BIA@ubs.gov.br"
	_, err = f.users.Update(ctx, bia.ID, users.UpdateInput{Email: &own})
	assert.NoError(t, err)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	acc, err := f.users.Create(ctx, users.CreateInput{Email: "ana@ubs.gov.br", Password: "segredo", Role: auth.RoleResponsavel})
	require.NoError(t, err)

	u, err := f.users.Authenticate(ctx, "ANA@ubs.gov.br", "segredo")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, u.ID)

	_, err = f.users.Authenticate(ctx, "ana@ubs.gov.br", "errada")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)

	_, err = f.users.Authenticate(ctx, "ninguem@ubs.gov.br", "segredo")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)
}

func TestAuthenticate_UpgradesLegacyPlaintext(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.repo.Create(ctx, users.User{
		ID: "legacy", Email: "velho@ubs.gov.br", PasswordHash: "123456", Role: auth.RoleAdmin,
	}))

	_, err := f.users.Authenticate(ctx, "velho@ubs.gov.br", "123456")
	require.NoError(t, err)

	stored, err := f.repo.GetByID(ctx, "legacy")
	require.NoError(t, err)
	assert.True(t, passwords.IsHash(stored.PasswordHash))

	_, err = f.users.Authenticate(ctx, "velho@ubs.gov.br", "123456")
	assert.NoError(t, err)
}

func TestLogin_FreeText(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// contas migradas usam login sem formato de email
	require.NoError(t, f.repo.Create(ctx, users.User{
		ID: "centro", Email: "ubscentro", PasswordHash: "1234", Role: auth.RoleResponsavel,
	}))
	u, err := f.users.Authenticate(ctx, " UBSCentro ", "1234")
	require.NoError(t, err)
	assert.Equal(t, "centro", u.ID)

	acc, err := f.users.Create(ctx, users.CreateInput{Email: "UbsNorte", Password: "x", Role: auth.RoleResponsavel})
	require.NoError(t, err)
	assert.Equal(t, "ubsnorte", acc.Email)

	_, err = f.users.Authenticate(ctx, "ubsnorte", "x")
	assert.NoError(t, err)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	admin, err := f.users.Create(ctx, users.CreateInput{Email: "root@ubs.gov.br", Password: "x", Role: auth.RoleAdmin})
	require.NoError(t, err)
	other, err := f.users.Create(ctx, users.CreateInput{Email: "b@ubs.gov.br", Password: "x", Role: auth.RoleResponsavel})
	require.NoError(t, err)

	assert.ErrorIs(t, f.users.Delete(ctx, admin.ID, admin.ID), users.ErrSelfDelete)
	require.NoError(t, f.users.Delete(ctx, admin.ID, other.ID))

	_, err = f.users.GetByID(ctx, other.ID)
	assert.ErrorIs(t, err, users.ErrNotFound)

	list, err := f.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, admin.ID, list[0].ID)
}
