// Seeds the development database with users and the pet-shop catalog.
package main

import (
	"context"
	"os"

	"boletapos/internal/config"
	"boletapos/internal/infra"
	"boletapos/internal/seed"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo cargar la configuracion")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo conectar a la base de datos")
	}

	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("fallo la migracion")
	}

	if err := seed.Run(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("fallo el seed")
	}
}
