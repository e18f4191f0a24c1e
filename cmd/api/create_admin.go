package main

import (
	"errors"

	pg "ubs-medicacoes/internal/adapters/storage/postgres"
	"ubs-medicacoes/internal/domain/users"
	"ubs-medicacoes/internal/ports/auth"
	"ubs-medicacoes/internal/router"

	"github.com/spf13/cobra"
)

func newCreateAdminCmd(envFile *string) *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Cria a primeira conta de administrador",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*envFile)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := pg.Migrate(cmd.Context(), db); err != nil {
				return err
			}

			svcs := router.NewServices(router.Options{DB: db, Logger: log, Location: cfg.Location})
			acc, err := svcs.Users.Create(cmd.Context(), users.CreateInput{
				Email:    email,
				Password: password,
				Name:     name,
				Role:     auth.RoleAdmin,
			})
			if errors.Is(err, users.ErrEmailTaken) {
				return errors.New("an account with this email already exists")
			}
			if err != nil {
				return err
			}

			log.Info("admin created", map[string]any{"user_id": acc.ID, "email": acc.Email})
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "login do administrador")
	cmd.Flags().StringVar(&password, "password", "", "senha inicial")
	cmd.Flags().StringVar(&name, "name", "", "nome exibido (opcional)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
