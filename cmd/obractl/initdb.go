package main

import (
	"github.com/jhoicas/Obra-api/internal/infrastructure/postgres"
	"github.com/spf13/cobra"
)

func newInitDBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Crea las tablas si no existen",
		Long: `Aplica el esquema embebido. Es idempotente: puede ejecutarse en cada despliegue.

Ejemplo:
  DATABASE_URL=postgres://... obractl init-db`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, log, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := postgres.ApplySchema(cmd.Context(), pool); err != nil {
				return err
			}
			log.Info().Msg("esquema aplicado")
			return nil
		},
	}
}
