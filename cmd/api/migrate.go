package main

import (
	pg "ubs-medicacoes/internal/adapters/storage/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica o esquema no Postgres (DB_DSN)",
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
			log.Info("schema applied", nil)
			return nil
		},
	}
}
