package memory

import (
	"context"
	"strings"
	"testing"

	"ubs-medicacoes/internal/ports/blob"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	s := New("")
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "/u1/a.pdf", "application/pdf", 3, strings.NewReader("abc")))
	require.NoError(t, s.Put(ctx, "u1/b.pdf", "application/pdf", 2, strings.NewReader("de")))
	require.NoError(t, s.Put(ctx, "u10/c.pdf", "application/pdf", 1, strings.NewReader("f")))

	objs, err := s.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []blob.Object{{Path: "u1/a.pdf", Size: 3}, {Path: "u1/b.pdf", Size: 2}}, objs)

	require.NoError(t, s.Remove(ctx, "u1/a.pdf"))
	_, err = s.Get("u1/a.pdf")
	assert.ErrorIs(t, err, blob.ErrNotFound)

	b, err := s.Get("u1/b.pdf")
	require.NoError(t, err)
	assert.Equal(t, "de", string(b))

	assert.Equal(t, "/files/u1/b.pdf", s.PublicURL("u1/b.pdf"))
}
