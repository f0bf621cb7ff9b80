package cmd

import (
	"context"
	"fmt"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/nayarn/internal/config"
	"github.com/Alturino/nayarn/internal/log"
	"github.com/Alturino/nayarn/notification/internal/controller"
	"github.com/Alturino/nayarn/notification/internal/mailer"
	"github.com/Alturino/nayarn/notification/internal/service"
)

func AttachNotificationService(c context.Context, router *mux.Router, cfg *config.Config) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "cmd AttachNotificationService").
		Str(log.KeyMailDriver, cfg.Mail.Driver).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing mailer").Logger()
	logger.Info().Msg("initializing mailer")
	m, err := mailer.New(cfg.Mail)
	if err != nil {
		err = fmt.Errorf("failed initializing mailer with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("initialized mailer")

	logger = logger.With().Str(log.KeyProcess, "attaching notification controller").Logger()
	logger.Info().Msg("attaching notification controller")
	controller.AttachNotificationController(
		router,
		service.NewNotificationService(m, cfg.Mail.From, cfg.Application.StorefrontURL),
	)
	logger.Info().Msg("attached notification controller")

	return nil
}
