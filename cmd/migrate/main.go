package main

import (
	"os"

	"github.com/rs/zerolog"

	"marketplace-companion/internal/cartstore"
	"marketplace-companion/internal/config"
	"marketplace-companion/internal/migrate"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "migrate").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	db, err := cartstore.OpenSQLite(cfg.SQLiteDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("open local database")
	}
	defer db.Close()

	if err := migrate.Apply(db); err != nil {
		logger.Fatal().Err(err).Msg("apply migrations")
	}
	logger.Info().Msg("migrations applied")
}
