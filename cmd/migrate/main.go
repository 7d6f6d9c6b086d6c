// migrate aplica las migraciones pendientes de PostgreSQL y termina.
//
// Uso: go run ./cmd/migrate
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/Permuta-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Permuta-api/pkg/config"
	"github.com/jhoicas/Permuta-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Int("applied", applied).Msg("migraciones al día")
}
