// cmd/migrate/main.go: Aplica las migraciones SQL y los parches de esquema.
// Uso: go run ./cmd/migrate [-dir migrations]
package main

import (
	"flag"
	"os"
	"time"

	"flota/internal/config"
	"flota/internal/infra"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	dir := flag.String("dir", "migrations", "directorio con los archivos *.up.sql")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	if err := infra.RunMigrations(db, *dir); err != nil {
		log.Fatal().Err(err).Str("dir", *dir).Msg("migration failed")
	}
	log.Info().Str("dir", *dir).Msg("migrations applied")
}
