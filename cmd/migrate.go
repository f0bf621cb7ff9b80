package cmd

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Alturino/nayarn/internal/config"
	"github.com/Alturino/nayarn/internal/constants"
	"github.com/Alturino/nayarn/internal/infra"
	"github.com/Alturino/nayarn/internal/log"
)

func runMigration(c context.Context) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.APP_MIGRATION).
		Str(log.KeyTag, "cmd runMigration").
		Logger()
	c = logger.WithContext(c)

	logger = logger.With().Str(log.KeyProcess, "initializing config").Logger()
	logger.Info().Msg("initializing config")
	cfg := config.Get(c, constants.APP_SHOP_SERVICE)
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing database").Logger()
	logger.Info().Msg("initializing database")
	pool := infra.NewDatabaseClient(c, cfg.Database)
	defer pool.Close()
	logger.Info().Msg("initialized database")

	logger = logger.With().Str(log.KeyProcess, "migrating database").Logger()
	logger.Info().Msg("migrating database")
	if err := infra.Migrate(c, pool, cfg.Database); err != nil {
		logger.Fatal().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("migrated database")
}
