package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/nayarn/internal/errors"
	"github.com/Alturino/nayarn/internal/log"
	inOtel "github.com/Alturino/nayarn/internal/otel"
	"github.com/Alturino/nayarn/internal/repository"
	"github.com/Alturino/nayarn/product/internal/cache"
	"github.com/Alturino/nayarn/product/internal/otel"
	"github.com/Alturino/nayarn/product/pkg/projection"
	"github.com/Alturino/nayarn/product/pkg/request"
	"github.com/Alturino/nayarn/product/pkg/response"
)

const FeaturedLimit = 4

type ProductService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
	ttl     time.Duration
	now     func() time.Time
}

func NewProductService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
	ttl time.Duration,
	now func() time.Time,
) *ProductService {
	if now == nil {
		now = time.Now
	}
	return &ProductService{pool: pool, queries: queries, cache: cache, ttl: ttl, now: now}
}

// ListProducts lists the catalog newest first, optionally limited to one
// collection.
func (s *ProductService) ListProducts(
	c context.Context,
	collectionSlug string,
) ([]response.DisplayProduct, error) {
	c, span := otel.Tracer.Start(c, "ProductService ListProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService ListProducts").
		Str(log.KeyCollectionSlug, collectionSlug).
		Logger()

	key, load := cache.KeyProducts, s.queries.ListProducts
	if collectionSlug != "" {
		key = cache.KeyProductsByCollection(collectionSlug)
		load = func(c context.Context) ([]repository.Product, error) {
			return s.queries.ListProductsByCollectionSlug(c, collectionSlug)
		}
	}

	logger = logger.With().Str(log.KeyProcess, "listing products").Logger()
	logger.Info().Msg("listing products")
	c = logger.WithContext(c)
	raws, err := cached(c, s.cache, s.ttl, key, load)
	if err != nil {
		err = fmt.Errorf("failed listing products with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int(log.KeyProducts, len(raws)).Msg("listed products")

	return projection.ProjectList(raws, s.now()), nil
}

func (s *ProductService) ListFeaturedProducts(
	c context.Context,
	limit int32,
) ([]response.DisplayProduct, error) {
	c, span := otel.Tracer.Start(c, "ProductService ListFeaturedProducts")
	defer span.End()

	if limit <= 0 {
		limit = FeaturedLimit
	}

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService ListFeaturedProducts").
		Str(log.KeyProcess, "listing featured products").
		Logger()

	logger.Info().Msg("listing featured products")
	c = logger.WithContext(c)
	raws, err := cached(
		c,
		s.cache,
		s.ttl,
		cache.KeyFeaturedProducts(limit),
		func(c context.Context) ([]repository.Product, error) {
			return s.queries.ListFeaturedProducts(c, limit)
		},
	)
	if err != nil {
		err = fmt.Errorf("failed listing featured products with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int(log.KeyProducts, len(raws)).Msg("listed featured products")

	return projection.ProjectList(raws, s.now()), nil
}

func (s *ProductService) FindProductById(
	c context.Context,
	id uuid.UUID,
) (response.DisplayProduct, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyProcess, "finding product by id").
		Str(log.KeyProductID, id.String()).
		Logger()

	logger.Info().Msg("finding product by id")
	c = logger.WithContext(c)
	raw, err := cached(
		c,
		s.cache,
		s.ttl,
		cache.KeyProduct(id.String()),
		func(c context.Context) (repository.Product, error) {
			return s.queries.FindProductById(c, id)
		},
	)
	if err != nil {
		err = fmt.Errorf("failed finding product by id with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.DisplayProduct{}, err
	}
	logger.Info().Msg("found product by id")

	return projection.ProjectProduct(raw, s.now()), nil
}

// FindProduct resolves a product id as sent by a storefront client. Ids that
// are not uuids cannot exist in the catalog.
func (s *ProductService) FindProduct(c context.Context, id string) (response.DisplayProduct, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return response.DisplayProduct{}, fmt.Errorf("product id=%s: %w", id, inErrors.ErrNotFound)
	}
	return s.FindProductById(c, parsed)
}

func (s *ProductService) InsertProduct(
	c context.Context,
	param request.UpsertProduct,
) (response.DisplayProduct, error) {
	c, span := otel.Tracer.Start(c, "ProductService InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService InsertProduct").
		Any(log.KeyProduct, param).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "checking collection").Logger()
	logger.Trace().Msg("checking collection")
	if err := s.checkCollection(c, param.CollectionID); err != nil {
		err = fmt.Errorf("failed checking collection with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.DisplayProduct{}, err
	}
	logger.Trace().Msg("checked collection")

	logger = logger.With().Str(log.KeyProcess, "inserting product").Logger()
	logger.Info().Msg("inserting product")
	id, err := s.queries.InsertProduct(c, insertProductParams(param))
	if err != nil {
		err = fmt.Errorf("failed inserting product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.DisplayProduct{}, err
	}
	logger = logger.With().Str(log.KeyProductID, id.String()).Logger()
	logger.Info().Msg("inserted product")

	invalidate(logger.WithContext(c), s.cache)

	return s.findFresh(logger.WithContext(c), id)
}

func (s *ProductService) UpdateProduct(
	c context.Context,
	id uuid.UUID,
	param request.UpsertProduct,
) (response.DisplayProduct, error) {
	c, span := otel.Tracer.Start(c, "ProductService UpdateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UpdateProduct").
		Str(log.KeyProductID, id.String()).
		Any(log.KeyProduct, param).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "checking collection").Logger()
	logger.Trace().Msg("checking collection")
	if err := s.checkCollection(c, param.CollectionID); err != nil {
		err = fmt.Errorf("failed checking collection with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.DisplayProduct{}, err
	}
	logger.Trace().Msg("checked collection")

	logger = logger.With().Str(log.KeyProcess, "updating product").Logger()
	logger.Info().Msg("updating product")
	err := s.queries.UpdateProduct(
		c,
		repository.UpdateProductParams{ID: id, InsertProductParams: insertProductParams(param)},
	)
	if err != nil {
		err = fmt.Errorf("failed updating product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.DisplayProduct{}, err
	}
	logger.Info().Msg("updated product")

	invalidate(logger.WithContext(c), s.cache)

	return s.findFresh(logger.WithContext(c), id)
}

func (s *ProductService) DeleteProduct(c context.Context, id uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "ProductService DeleteProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService DeleteProduct").
		Str(log.KeyProcess, "deleting product").
		Str(log.KeyProductID, id.String()).
		Logger()

	logger.Info().Msg("deleting product")
	if err := s.queries.DeleteProduct(c, id); err != nil {
		err = fmt.Errorf("failed deleting product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted product")

	invalidate(logger.WithContext(c), s.cache)
	return nil
}

// InsertProductImage adds an image. A new primary image demotes the previous
// one in the same transaction.
func (s *ProductService) InsertProductImage(
	c context.Context,
	productID uuid.UUID,
	param request.InsertProductImage,
) (response.ProductImage, error) {
	c, span := otel.Tracer.Start(c, "ProductService InsertProductImage")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService InsertProductImage").
		Str(log.KeyProductID, productID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msg("finding product")
	if _, err := s.queries.FindProductById(c, productID); err != nil {
		err = fmt.Errorf("failed finding product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ProductImage{}, err
	}
	logger.Info().Msg("found product")

	logger = logger.With().Str(log.KeyProcess, "beginning transaction").Logger()
	logger.Trace().Msg("beginning transaction")
	tx, err := s.pool.Begin(c)
	if err != nil {
		err = fmt.Errorf("failed beginning transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ProductImage{}, err
	}
	defer tx.Rollback(c)
	queries := s.queries.WithTx(tx)

	if param.IsPrimary {
		logger = logger.With().Str(log.KeyProcess, "clearing primary image").Logger()
		logger.Trace().Msg("clearing primary image")
		if err := queries.ClearPrimaryImage(c, productID); err != nil {
			err = fmt.Errorf("failed clearing primary image with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.ProductImage{}, err
		}
		logger.Trace().Msg("cleared primary image")
	}

	logger = logger.With().Str(log.KeyProcess, "inserting product image").Logger()
	logger.Info().Msg("inserting product image")
	image, err := queries.InsertProductImage(c, repository.InsertProductImageParams{
		ProductID:    productID,
		ImageURL:     param.ImageURL,
		IsPrimary:    param.IsPrimary,
		DisplayOrder: param.DisplayOrder,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting product image with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ProductImage{}, err
	}

	if err := tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ProductImage{}, err
	}
	logger.Info().Str(log.KeyImageID, image.ID.String()).Msg("inserted product image")

	invalidate(logger.WithContext(c), s.cache)
	return image.Response(), nil
}

func (s *ProductService) DeleteProductImage(c context.Context, imageID uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "ProductService DeleteProductImage")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService DeleteProductImage").
		Str(log.KeyProcess, "deleting product image").
		Str(log.KeyImageID, imageID.String()).
		Logger()

	logger.Info().Msg("deleting product image")
	if err := s.queries.DeleteProductImage(c, imageID); err != nil {
		err = fmt.Errorf("failed deleting product image with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted product image")

	invalidate(logger.WithContext(c), s.cache)
	return nil
}

// checkCollection rejects a collection id that does not exist.
func (s *ProductService) checkCollection(c context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	_, err := s.queries.FindCollectionById(c, *id)
	if errors.Is(err, inErrors.ErrNotFound) {
		return &inErrors.ValidationError{
			Fields: map[string]string{"collectionId": "collection does not exist"},
		}
	}
	return err
}

func (s *ProductService) findFresh(c context.Context, id uuid.UUID) (response.DisplayProduct, error) {
	raw, err := s.queries.FindProductById(c, id)
	if err != nil {
		return response.DisplayProduct{}, fmt.Errorf("failed finding product with error=%w", err)
	}
	return projection.ProjectProduct(raw, s.now()), nil
}

func insertProductParams(param request.UpsertProduct) repository.InsertProductParams {
	sizes := param.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	return repository.InsertProductParams{
		Name:         param.Name,
		Description:  param.Description,
		Price:        param.Price,
		CollectionID: param.CollectionID,
		Sizes:        sizes,
		IsFeatured:   param.IsFeatured,
	}
}
