package cmd

import (
	"context"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/nayarn/cart/pkg/session"
	"github.com/Alturino/nayarn/checkout/internal/controller"
	"github.com/Alturino/nayarn/checkout/internal/service"
	"github.com/Alturino/nayarn/checkout/pkg/shipping"
	"github.com/Alturino/nayarn/internal/config"
	"github.com/Alturino/nayarn/internal/log"
	"github.com/Alturino/nayarn/internal/validate"
)

type (
	OrderWriter = service.OrderWriter
	Notifier    = service.Notifier
)

func AttachCheckoutService(
	c context.Context,
	router *mux.Router,
	sessions *session.Registry,
	orders OrderWriter,
	notifier Notifier,
	cfg config.Shipping,
) {
	policy := shipping.NewPolicy(cfg)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "cmd AttachCheckoutService").
		Str(log.KeyProcess, "attaching checkout controller").
		Stringer("freeShippingThreshold", policy.FreeThreshold).
		Stringer("standardShippingCost", policy.StandardCost).
		Logger()

	logger.Info().Msg("attaching checkout controller")
	controller.AttachCheckoutController(
		router,
		service.NewCheckoutService(orders, notifier, policy, validate.New()),
		sessions,
	)
	logger.Info().Msg("attached checkout controller")
}
