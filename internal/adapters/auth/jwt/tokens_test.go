package jwt

import (
	"context"
	"testing"
	"time"

	"ubs-medicacoes/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_IssueVerify(t *testing.T) {
	tk, err := New("segredo", time.Hour)
	require.NoError(t, err)

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	tk.now = func() time.Time { return now }

	tok, err := tk.Issue(context.Background(), auth.Claims{UserID: "u-1", Email: "a@b.c", Role: auth.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), tok.ExpiresAt)

	c, err := tk.Verify(context.Background(), tok.Value)
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "u-1", Email: "a@b.c", Role: auth.RoleAdmin}, c)
}

func TestTokens_Expired(t *testing.T) {
	tk, err := New("segredo", time.Minute)
	require.NoError(t, err)

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	tk.now = func() time.Time { return now }
	tok, err := tk.Issue(context.Background(), auth.Claims{UserID: "u-1", Role: auth.RoleResponsavel})
	require.NoError(t, err)

	tk.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err = tk.Verify(context.Background(), tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_WrongSecret(t *testing.T) {
	a, _ := New("um", time.Hour)
	b, _ := New("dois", time.Hour)

	tok, err := a.Issue(context.Background(), auth.Claims{UserID: "u-1", Role: auth.RoleAdmin})
	require.NoError(t, err)

	_, err = b.Verify(context.Background(), tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_Rejects(t *testing.T) {
	_, err := New("  ", time.Hour)
	assert.ErrorIs(t, err, ErrNoSecret)

	tk, _ := New("x", time.Hour)
	_, err = tk.Issue(context.Background(), auth.Claims{UserID: "u", Role: "root"})
	assert.Error(t, err)

	_, err = tk.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	_, err = tk.Verify(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
