package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort        = "8080"
	DefaultTokenTTL    = 12 * time.Hour
	DefaultTimezone    = "America/Sao_Paulo"
	DefaultBucket      = "medicacoes_ubs"
	DefaultMaxPDFBytes = 10 << 20 // 10MB

	BlobMemory   = "memory"
	BlobSupabase = "supabase"
)

var ErrMissingSecret = errors.New("JWT_SECRET is required outside dev mode")

type Config struct {
	Env  string
	Port string

	// Vazio = repositórios em memória.
	DBDSN string

	JWTSecret string
	TokenTTL  time.Duration

	Location *time.Location

	CORSOrigins []string

	BlobBackend     string
	SupabaseURL     string
	SupabaseKey     string
	SupabaseBucket  string
	MaxPDFBytes     int64
	PublicSiteURL   string
	ShutdownTimeout time.Duration
}

// Dev indica modo desenvolvimento (sem segredo JWT o middleware aceita headers de debug).
func (c Config) Dev() bool {
	return strings.EqualFold(c.Env, "dev")
}

// LoadDotEnv carrega .env se existir. Ausência do arquivo não é erro.
func LoadDotEnv(paths ...string) error {
	err := godotenv.Load(paths...)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Load lê a configuração do ambiente do processo.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup permite injetar o ambiente (testes).
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := Config{
		Env:            strings.ToLower(get("APP_ENV", "prod")),
		Port:           get("PORT", DefaultPort),
		DBDSN:          get("DB_DSN", ""),
		JWTSecret:      get("JWT_SECRET", ""),
		BlobBackend:    strings.ToLower(get("BLOB_BACKEND", BlobMemory)),
		SupabaseURL:    get("SUPABASE_URL", ""),
		SupabaseKey:    get("SUPABASE_SERVICE_KEY", ""),
		SupabaseBucket: get("SUPABASE_BUCKET", DefaultBucket),
		PublicSiteURL:  get("PUBLIC_SITE_URL", ""),
	}

	var err error
	if cfg.TokenTTL, err = parseDuration(get("TOKEN_TTL", ""), DefaultTokenTTL); err != nil {
		return Config{}, fmt.Errorf("TOKEN_TTL: %w", err)
	}
	if cfg.ShutdownTimeout, err = parseDuration(get("SHUTDOWN_TIMEOUT", ""), 10*time.Second); err != nil {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}

	cfg.MaxPDFBytes = DefaultMaxPDFBytes
	if raw := get("MAX_PDF_BYTES", ""); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("MAX_PDF_BYTES: invalid value %q", raw)
		}
		cfg.MaxPDFBytes = n
	}

	tz := get("TIMEZONE", DefaultTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Config{}, fmt.Errorf("TIMEZONE: %w", err)
	}
	cfg.Location = loc

	cfg.CORSOrigins = splitList(get("CORS_ORIGINS", "*"))

	switch cfg.BlobBackend {
	case BlobMemory:
	case BlobSupabase:
		if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
			return Config{}, errors.New("BLOB_BACKEND=supabase requires SUPABASE_URL and SUPABASE_SERVICE_KEY")
		}
	default:
		return Config{}, fmt.Errorf("BLOB_BACKEND: unknown backend %q", cfg.BlobBackend)
	}

	if cfg.JWTSecret == "" && !cfg.Dev() {
		return Config{}, ErrMissingSecret
	}

	return cfg, nil
}

func parseDuration(raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
