package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	adminCmd "github.com/Alturino/nayarn/admin/cmd"
	"github.com/Alturino/nayarn/internal/auth"
	"github.com/Alturino/nayarn/internal/config"
	"github.com/Alturino/nayarn/internal/constants"
	"github.com/Alturino/nayarn/internal/log"
)

func tokenCommand() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an admin bearer token signed with the shop secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			logger := zerolog.Ctx(c).
				With().
				Str(log.KeyTag, "cmd token").
				Str("subject", subject).
				Logger()
			c = logger.WithContext(c)

			cfg := config.Get(c, constants.APP_SHOP_SERVICE)
			if cfg.Application.SecretKey == "" {
				err := errors.New("failed issuing token with error=application.secret_key is empty")
				logger.Error().Err(err).Msg(err.Error())
				return err
			}

			if ttl <= 0 {
				ttl = cfg.Admin.TokenTTL
			}
			token, err := auth.IssueAdminToken([]byte(cfg.Application.SecretKey), subject, ttl, time.Now())
			if err != nil {
				logger.Error().Err(err).Msg(err.Error())
				return err
			}
			logger.Info().Dur("ttl", ttl).Msg("issued admin token")
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime, defaults to admin.token_ttl")
	return cmd
}

func hashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash to store in admin.password_hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashed, err := adminCmd.HashPassword(args[0])
			if err != nil {
				zerolog.Ctx(cmd.Context()).Error().Err(err).Str(log.KeyTag, "cmd hash-password").Msg(err.Error())
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hashed)
			return nil
		},
	}
}
