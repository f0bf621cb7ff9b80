package cmd

import (
	"context"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/nayarn/internal/log"
	"github.com/Alturino/nayarn/order/internal/controller"
	"github.com/Alturino/nayarn/order/internal/service"
)

type (
	OrderStore = service.OrderStore
	Notifier   = service.Notifier
)

func AttachOrderService(
	c context.Context,
	router *mux.Router,
	admin *mux.Router,
	orders OrderStore,
	notifier Notifier,
) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "cmd AttachOrderService").
		Str(log.KeyProcess, "attaching order controller").
		Logger()

	logger.Info().Msg("attaching order controller")
	controller.AttachOrderController(router, admin, service.NewOrderService(orders, notifier))
	logger.Info().Msg("attached order controller")
}
