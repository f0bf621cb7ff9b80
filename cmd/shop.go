package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	adminCmd "github.com/Alturino/nayarn/admin/cmd"
	cartCmd "github.com/Alturino/nayarn/cart/cmd"
	"github.com/Alturino/nayarn/cart/pkg/session"
	checkoutCmd "github.com/Alturino/nayarn/checkout/cmd"
	"github.com/Alturino/nayarn/internal/config"
	"github.com/Alturino/nayarn/internal/constants"
	"github.com/Alturino/nayarn/internal/infra"
	"github.com/Alturino/nayarn/internal/log"
	"github.com/Alturino/nayarn/internal/middleware"
	"github.com/Alturino/nayarn/internal/otel"
	"github.com/Alturino/nayarn/internal/repository"
	notificationClient "github.com/Alturino/nayarn/notification/pkg/client"
	orderCmd "github.com/Alturino/nayarn/order/cmd"
	productCmd "github.com/Alturino/nayarn/product/cmd"
)

func runShopService(c context.Context) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.APP_SHOP_SERVICE).
		Str(log.KeyTag, "cmd runShopService").
		Logger()
	c = logger.WithContext(c)

	logger = logger.With().Str(log.KeyProcess, "initializing config").Logger()
	logger.Info().Msg("initializing config")
	cfg := config.Get(c, constants.APP_SHOP_SERVICE)
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	shutdownFuncs, err := otel.InitOtelSdk(c, constants.APP_SHOP_SERVICE, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(log.KeyProcess, "initializing database").Logger()
	logger.Info().Msg("initializing database")
	pool := infra.NewDatabaseClient(c, cfg.Database)
	defer pool.Close()
	queries := repository.New(pool)
	logger.Info().Msg("initialized database")

	logger = logger.With().Str(log.KeyProcess, "initializing cache").Logger()
	logger.Info().Msg("initializing cache")
	cache := infra.NewCacheClient(c, cfg.Cache)
	defer cache.Close()
	logger.Info().Msg("initialized cache")

	sessions := session.NewRegistry(cfg.Cart.SessionTTL, time.Now)
	notifier := notificationClient.New(cfg.Notification.BaseURL, cfg.Notification.Timeout)

	logger = logger.With().Str(log.KeyProcess, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := mux.NewRouter()
	router.Use(otelmux.Middleware(constants.APP_SHOP_SERVICE), middleware.Logging, middleware.RecoverPanic)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	adminCmd.AttachAdminService(c, router, cfg.Admin, []byte(cfg.Application.SecretKey))
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth([]byte(cfg.Application.SecretKey)))
	products := productCmd.AttachProductService(c, router, admin, pool, queries, cache, cfg.Cache.TTL)
	cartCmd.AttachCartService(c, router, sessions, products)
	checkoutCmd.AttachCheckoutService(c, router, sessions, queries, notifier, cfg.Shipping)
	orderCmd.AttachOrderService(c, router, admin, queries, notifier)
	logger.Info().Msg("initialized router")

	var wg sync.WaitGroup
	wg.Add(1)
	go sessions.StartSweeper(c, cfg.Cart.SweepInterval, &wg)

	logger = logger.With().Str(log.KeyProcess, "initializing server").Logger()
	logger.Info().Msg("initializing server")
	server := http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Application.Host, cfg.Application.Port),
		BaseContext:  func(net.Listener) context.Context { return c },
		Handler:      router,
		ReadTimeout:  45 * time.Second,
		WriteTimeout: 45 * time.Second,
	}
	logger.Info().Msg("initialized server")

	serve(c, &server, shutdownFuncs)
	wg.Wait()
}

// serve blocks until c is done, then shuts the server and otel down.
func serve(c context.Context, server *http.Server, shutdownFuncs []otel.ShutdownFunc) {
	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "cmd serve").Logger()

	go func() {
		logger := logger.With().Str(log.KeyProcess, "start server").Logger()
		logger.Info().Msgf("start listening request at %s", server.Addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("error=%w occured while server is running", err)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown server")
	}()

	<-c.Done()
	logger = logger.With().Str(log.KeyProcess, "shutdown server").Logger()
	logger.Info().Msg("received interuption signal shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(c), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		err = fmt.Errorf("failed shutting down http server with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("shutdown http server")

	logger = logger.With().Str(log.KeyProcess, "shutdown otel").Logger()
	logger.Info().Msg("shutting down otel")
	if err := otel.ShutdownOtel(shutdownCtx, shutdownFuncs); err != nil {
		err = fmt.Errorf("failed shutting down otel with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("shutdown otel")

	logger.Info().Msg("completely shutdown server")
}
