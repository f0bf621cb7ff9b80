package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Alturino/nayarn/internal/constants"
	"github.com/Alturino/nayarn/internal/log"
)

func Start() {
	logger := log.Get("/var/log/nayarn.log", os.Getenv("APPLICATION_ENV")).
		With().
		Str(log.KeyAppName, constants.APP_NAYARN).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{Use: constants.APP_NAYARN}
	commands := []*cobra.Command{
		{
			Use:   "shop",
			Short: "Run the storefront and admin api",
			Run: func(cmd *cobra.Command, args []string) {
				runShopService(cmd.Context())
			},
		},
		{
			Use:   "notification",
			Short: "Run notification service",
			Run: func(cmd *cobra.Command, args []string) {
				runNotificationService(cmd.Context())
			},
		},
		{
			Use:   "migrate",
			Short: "Apply database migrations and exit",
			Run: func(cmd *cobra.Command, args []string) {
				runMigration(cmd.Context())
			},
		},
		tokenCommand(),
		hashPasswordCommand(),
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
