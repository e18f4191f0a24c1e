package memory

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"ubs-medicacoes/internal/ports/blob"
)

// Store guarda objetos em memória. Usado em dev e nos testes.
// Sem baseURL as URLs públicas apontam para /files, servido pelo próprio router.
type Store struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
}

func New(baseURL string) *Store {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "/files"
	}
	return &Store{
		objects: make(map[string][]byte),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *Store) Put(ctx context.Context, path, contentType string, size int64, body io.Reader) error {
	path = strings.Trim(path, "/")
	if path == "" {
		return errors.New("memory blob: empty path")
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = b
	return nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]blob.Object, error) {
	prefix = strings.Trim(prefix, "/")

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]blob.Object, 0)
	for p, b := range s.objects {
		if prefix == "" || strings.HasPrefix(p, prefix+"/") {
			out = append(out, blob.Object{Path: p, Size: int64(len(b))})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (s *Store) Remove(ctx context.Context, paths ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range paths {
		delete(s.objects, strings.Trim(p, "/"))
	}
	return nil
}

func (s *Store) PublicURL(path string) string {
	return s.baseURL + "/" + strings.Trim(path, "/")
}

// Get devolve o conteúdo de um objeto.
func (s *Store) Get(path string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.objects[strings.Trim(path, "/")]
	if !ok {
		return nil, blob.ErrNotFound
	}
	return b, nil
}
