// @title        Portal de Medicações UBS API
// @version      1.0
// @description  Cadastro de UBS, responsáveis, PDFs de medicações e checagens diárias.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "api",
		Short:         "Portal de medicações das UBS",
		SilenceUsage:  true,
		SilenceErrors: true,
		// sem subcomando = serve
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "arquivo .env opcional")

	root.AddCommand(
		newServeCmd(&envFile),
		newMigrateCmd(&envFile),
		newCreateAdminCmd(&envFile),
	)
	return root
}
