package links_test

import (
	"context"
	"testing"

	mem "ubs-medicacoes/internal/adapters/storage/memory"
	"ubs-medicacoes/internal/domain/links"
	"ubs-medicacoes/internal/domain/units"
	"ubs-medicacoes/internal/domain/users"
	"ubs-medicacoes/internal/ports/auth"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	links *links.Service
	units *units.Service
	users *users.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	unitRepo := mem.NewUnitRepo()
	userRepo := mem.NewUserRepo()
	linksSvc := links.NewService(mem.NewLinkRepo(), unitRepo, userRepo)
	return fixture{
		links: linksSvc,
		units: units.NewService(unitRepo, linksSvc),
		users: users.NewService(userRepo, linksSvc, linksSvc),
	}
}

func (f fixture) unit(t *testing.T, name string) string {
	t.Helper()
	u, err := f.units.Create(context.Background(), units.CreateInput{Name: name, Locality: "Centro", Hours: "7h-17h"})
	require.NoError(t, err)
	return u.ID
}

func (f fixture) user(t *testing.T, email string, role auth.Role) string {
	t.Helper()
	a, err := f.users.Create(context.Background(), users.CreateInput{Email: email, Password: "x", Role: role})
	require.NoError(t, err)
	return a.ID
}

func TestSetUnitResponsible_OnePerUnit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u1 := f.unit(t, "UBS A")
	ana := f.user(t, "ana@ubs.gov.br", auth.RoleResponsavel)
	bia := f.user(t, "bia@ubs.gov.br", auth.RoleResponsavel)

	require.NoError(t, f.links.SetUnitResponsible(ctx, u1, ana))
	require.NoError(t, f.links.SetUnitResponsible(ctx, u1, bia))

	owner, err := f.links.ResponsibleOf(ctx, u1)
	require.NoError(t, err)
	assert.Equal(t, bia, owner)

	anaUnits, err := f.links.UnitsOf(ctx, ana)
	require.NoError(t, err)
	assert.Empty(t, anaUnits)

	require.NoError(t, f.links.SetUnitResponsible(ctx, u1, ""))
	owner, err = f.links.ResponsibleOf(ctx, u1)
	require.NoError(t, err)
	assert.Equal(t, "", owner)
}

func TestSetUnitResponsible_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u1 := f.unit(t, "UBS A")
	admin := f.user(t, "root@ubs.gov.br", auth.RoleAdmin)

	assert.ErrorIs(t, f.links.SetUnitResponsible(ctx, u1, admin), links.ErrNotResponsible)
	assert.ErrorIs(t, f.links.SetUnitResponsible(ctx, u1, "ghost"), links.ErrUnknownUser)
	assert.ErrorIs(t, f.links.SetUnitResponsible(ctx, "nope", ""), links.ErrUnknownUnit)
}

func TestSetUserUnits_TakesUnitsFromOthers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u1 := f.unit(t, "UBS A")
	u2 := f.unit(t, "UBS B")
	ana := f.user(t, "ana@ubs.gov.br", auth.RoleResponsavel)
	bia := f.user(t, "bia@ubs.gov.br", auth.RoleResponsavel)

	require.NoError(t, f.links.SetUserUnits(ctx, ana, []string{u1, u2}))
	require.NoError(t, f.links.SetUserUnits(ctx, bia, []string{u2, u2, " "}))

	anaUnits, err := f.links.UnitsOf(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, []string{u1}, anaUnits)

	m, err := f.links.ResponsibleMap(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(map[string]string{u1: ana, u2: bia}, m); diff != "" {
		t.Fatalf("responsible map mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, f.links.SetUserUnits(ctx, bia, nil))
	biaUnits, err := f.links.UnitsOf(ctx, bia)
	require.NoError(t, err)
	assert.Empty(t, biaUnits)
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u1 := f.unit(t, "UBS A")
	ana := f.user(t, "ana@ubs.gov.br", auth.RoleResponsavel)

	linked, err := f.links.Toggle(ctx, ana, u1)
	require.NoError(t, err)
	assert.True(t, linked)

	ok, err := f.links.IsLinked(ctx, ana, u1)
	require.NoError(t, err)
	assert.True(t, ok)

	linked, err = f.links.Toggle(ctx, ana, u1)
	require.NoError(t, err)
	assert.False(t, linked)

	ok, err = f.links.IsLinked(ctx, ana, u1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPurgeOnDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u1 := f.unit(t, "UBS A")
	u2 := f.unit(t, "UBS B")
	ana := f.user(t, "ana@ubs.gov.br", auth.RoleResponsavel)
	admin := f.user(t, "root@ubs.gov.br", auth.RoleAdmin)

	require.NoError(t, f.links.SetUserUnits(ctx, ana, []string{u1, u2}))

	require.NoError(t, f.units.Delete(ctx, u1))
	anaUnits, err := f.links.UnitsOf(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, []string{u2}, anaUnits)

	require.NoError(t, f.users.Delete(ctx, admin, ana))
	owner, err := f.links.ResponsibleOf(ctx, u2)
	require.NoError(t, err)
	assert.Equal(t, "", owner)
}
