package supabase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ubs-medicacoes/internal/platform/httpclient"
	"ubs-medicacoes/internal/ports/blob"
)

var ErrNotConfigured = errors.New("supabase storage not configured")

type Config struct {
	BaseURL    string // https://<projeto>.supabase.co
	ServiceKey string
	Bucket     string

	// Cache-Control dos objetos públicos, em segundos.
	CacheSeconds int

	Timeout time.Duration
}

// Store implementa blob.Store sobre a API REST do Supabase Storage.
type Store struct {
	client *httpclient.Client
	bucket string
	cache  string
}

func New(cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" || strings.TrimSpace(cfg.ServiceKey) == "" || strings.TrimSpace(cfg.Bucket) == "" {
		return nil, ErrNotConfigured
	}

	c, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	key := strings.TrimSpace(cfg.ServiceKey)
	c.Headers = map[string]string{
		"Authorization": "Bearer " + key,
		"apikey":        key,
	}

	cache := cfg.CacheSeconds
	if cache <= 0 {
		cache = 3600
	}

	return &Store{
		client: c,
		bucket: strings.TrimSpace(cfg.Bucket),
		cache:  strconv.Itoa(cache),
	}, nil
}

func (s *Store) Put(ctx context.Context, path, contentType string, _ int64, body io.Reader) error {
	path = cleanPath(path)
	if path == "" {
		return errors.New("supabase: empty object path")
	}
	headers := map[string]string{
		"x-upsert":      "true",
		"cache-control": s.cache,
	}

	_, err := s.client.Do(ctx, http.MethodPost, "/storage/v1/object/"+s.bucket+"/"+escapePath(path), headers, contentType, body)
	if err != nil {
		return fmt.Errorf("supabase: upload %s: %w", path, err)
	}
	return nil
}

type listRequest struct {
	Prefix string `json:"prefix"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

type listItem struct {
	Name     string `json:"name"`
	ID       string `json:"id"`
	Metadata struct {
		Size int64 `json:"size"`
	} `json:"metadata"`
}

func (s *Store) List(ctx context.Context, prefix string) ([]blob.Object, error) {
	prefix = cleanPath(prefix)

	var items []listItem
	err := s.client.DoJSON(ctx, http.MethodPost, "/storage/v1/object/list/"+s.bucket, nil, listRequest{
		Prefix: prefix,
		Limit:  1000,
	}, &items)
	if err != nil {
		if httpclient.StatusOf(err) == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("supabase: list %s: %w", prefix, err)
	}

	out := make([]blob.Object, 0, len(items))
	for _, it := range items {
		// Pastas vêm sem id.
		if it.ID == "" || it.Name == "" {
			continue
		}
		p := it.Name
		if prefix != "" {
			p = prefix + "/" + it.Name
		}
		out = append(out, blob.Object{Path: p, Size: it.Metadata.Size})
	}
	return out, nil
}

type removeRequest struct {
	Prefixes []string `json:"prefixes"`
}

func (s *Store) Remove(ctx context.Context, paths ...string) error {
	clean := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = cleanPath(p); p != "" {
			clean = append(clean, p)
		}
	}
	if len(clean) == 0 {
		return nil
	}

	err := s.client.DoJSON(ctx, http.MethodDelete, "/storage/v1/object/"+s.bucket, nil, removeRequest{Prefixes: clean}, nil)
	if err != nil {
		return fmt.Errorf("supabase: remove: %w", err)
	}
	return nil
}

func (s *Store) PublicURL(path string) string {
	u, err := s.client.URL("/storage/v1/object/public/" + s.bucket + "/" + escapePath(cleanPath(path)))
	if err != nil {
		return ""
	}
	return u
}

func cleanPath(p string) string {
	return strings.Trim(strings.TrimSpace(p), "/")
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
