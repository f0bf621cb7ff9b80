package cmd

import (
	"context"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/nayarn/cart/internal/controller"
	"github.com/Alturino/nayarn/cart/internal/service"
	"github.com/Alturino/nayarn/cart/pkg/session"
	"github.com/Alturino/nayarn/internal/log"
)

type ProductFinder = service.ProductFinder

func AttachCartService(
	c context.Context,
	router *mux.Router,
	sessions *session.Registry,
	products ProductFinder,
) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "cmd AttachCartService").
		Str(log.KeyProcess, "attaching cart controller").
		Logger()

	logger.Info().Msg("attaching cart controller")
	controller.AttachCartController(router, service.NewCartService(sessions, products))
	logger.Info().Msg("attached cart controller")
}
