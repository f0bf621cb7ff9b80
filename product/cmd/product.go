package cmd

import (
	"context"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/nayarn/internal/log"
	"github.com/Alturino/nayarn/internal/repository"
	"github.com/Alturino/nayarn/product/internal/controller"
	"github.com/Alturino/nayarn/product/internal/service"
)

// AttachProductService mounts the catalog and returns the product service so
// other domains can price against it.
func AttachProductService(
	c context.Context,
	router *mux.Router,
	admin *mux.Router,
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
	ttl time.Duration,
) *service.ProductService {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "cmd AttachProductService").
		Str(log.KeyProcess, "attaching product controller").
		Logger()

	logger.Info().Msg("attaching product controller")
	products := service.NewProductService(pool, queries, cache, ttl, time.Now)
	collections := service.NewCollectionService(queries, cache, ttl)
	controller.AttachProductController(router, admin, products, collections)
	logger.Info().Msg("attached product controller")

	return products
}
