package blob

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("blob: object not found")

// Object descreve um arquivo guardado no bucket.
type Object struct {
	Path string
	Size int64
}

// Store é o armazenamento de arquivos (PDFs das UBS).
// Paths são relativos ao bucket, no formato "<prefixo>/<nome>".
type Store interface {
	Put(ctx context.Context, path, contentType string, size int64, body io.Reader) error
	List(ctx context.Context, prefix string) ([]Object, error)
	Remove(ctx context.Context, paths ...string) error
	PublicURL(path string) string
}
