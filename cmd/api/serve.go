package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"ubs-medicacoes/internal/adapters/auth/jwt"
	"ubs-medicacoes/internal/adapters/blob/supabase"
	pg "ubs-medicacoes/internal/adapters/storage/postgres"
	"ubs-medicacoes/internal/platform/config"
	"ubs-medicacoes/internal/platform/logger"
	"ubs-medicacoes/internal/ports/blob"
	"ubs-medicacoes/internal/router"

	"github.com/spf13/cobra"
)

func newServeCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Sobe o servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *envFile)
		},
	}
}

func runServe(ctx context.Context, envFile string) error {
	cfg, log, err := bootstrap(envFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	opts, cleanup, err := routerOptions(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	if opts.DB != nil {
		if err := pg.Migrate(ctx, opts.DB); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":  srv.Addr,
			"env":   cfg.Env,
			"db":    opts.DB != nil,
			"blob":  cfg.BlobBackend,
			"login": opts.TokenIssuer != nil,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func bootstrap(envFile string) (config.Config, logger.Logger, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return config.Config{}, nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger.NewFromEnv(), nil
}

// routerOptions abre banco, blob e tokens conforme a configuração.
func routerOptions(cfg config.Config, log logger.Logger) (router.Options, func(), error) {
	opts := router.Options{
		Logger:        log,
		Location:      cfg.Location,
		MaxPDFBytes:   cfg.MaxPDFBytes,
		CORSOrigins:   cfg.CORSOrigins,
		PublicBaseURL: cfg.PublicSiteURL,
	}
	cleanup := func() {}

	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return opts, cleanup, err
		}
		opts.DB = db
		cleanup = func() { _ = db.Close() }
	}

	store, err := blobStore(cfg)
	if err != nil {
		cleanup()
		return opts, func() {}, err
	}
	opts.Blob = store

	if cfg.JWTSecret != "" {
		tokens, err := jwt.New(cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			cleanup()
			return opts, func() {}, err
		}
		opts.AuthVerifier = tokens
		opts.TokenIssuer = tokens
	} else {
		log.Warn("no JWT_SECRET: dev mode, X-Debug-User-ID headers accepted", nil)
	}

	return opts, cleanup, nil
}

func blobStore(cfg config.Config) (blob.Store, error) {
	if cfg.BlobBackend != config.BlobSupabase {
		return nil, nil
	}
	return supabase.New(supabase.Config{
		BaseURL:    cfg.SupabaseURL,
		ServiceKey: cfg.SupabaseKey,
		Bucket:     cfg.SupabaseBucket,
	})
}

func openDB(cfg config.Config) (*sql.DB, error) {
	if cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN is required")
	}
	return pg.Open(cfg.DBDSN)
}
