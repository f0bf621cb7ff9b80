package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/nayarn/internal/log"
	inOtel "github.com/Alturino/nayarn/internal/otel"
	"github.com/Alturino/nayarn/internal/repository"
	"github.com/Alturino/nayarn/product/internal/cache"
	"github.com/Alturino/nayarn/product/internal/otel"
	"github.com/Alturino/nayarn/product/pkg/request"
	"github.com/Alturino/nayarn/product/pkg/response"
)

type CollectionService struct {
	queries *repository.Queries
	cache   *redis.Client
	ttl     time.Duration
}

func NewCollectionService(
	queries *repository.Queries,
	cache *redis.Client,
	ttl time.Duration,
) *CollectionService {
	return &CollectionService{queries: queries, cache: cache, ttl: ttl}
}

func (s *CollectionService) ListCollections(c context.Context) ([]response.Collection, error) {
	c, span := otel.Tracer.Start(c, "CollectionService ListCollections")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CollectionService ListCollections").
		Str(log.KeyProcess, "listing collections").
		Logger()

	logger.Info().Msg("listing collections")
	c = logger.WithContext(c)
	collections, err := cached(c, s.cache, s.ttl, cache.KeyCollections, s.queries.ListCollections)
	if err != nil {
		err = fmt.Errorf("failed listing collections with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int(log.KeyCollections, len(collections)).Msg("listed collections")

	res := make([]response.Collection, 0, len(collections))
	for _, collection := range collections {
		res = append(res, collection.Response())
	}
	return res, nil
}

func (s *CollectionService) FindCollectionBySlug(
	c context.Context,
	slug string,
) (response.Collection, error) {
	c, span := otel.Tracer.Start(c, "CollectionService FindCollectionBySlug")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CollectionService FindCollectionBySlug").
		Str(log.KeyProcess, "finding collection by slug").
		Str(log.KeyCollectionSlug, slug).
		Logger()

	logger.Info().Msg("finding collection by slug")
	c = logger.WithContext(c)
	collection, err := cached(
		c,
		s.cache,
		s.ttl,
		cache.KeyCollection(slug),
		func(c context.Context) (repository.Collection, error) {
			return s.queries.FindCollectionBySlug(c, slug)
		},
	)
	if err != nil {
		err = fmt.Errorf("failed finding collection by slug with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Collection{}, err
	}
	logger.Info().Msg("found collection by slug")

	return collection.Response(), nil
}

func (s *CollectionService) InsertCollection(
	c context.Context,
	param request.UpsertCollection,
) (response.Collection, error) {
	c, span := otel.Tracer.Start(c, "CollectionService InsertCollection")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CollectionService InsertCollection").
		Str(log.KeyProcess, "inserting collection").
		Str(log.KeyCollectionSlug, param.Slug).
		Logger()

	logger.Info().Msg("inserting collection")
	collection, err := s.queries.InsertCollection(c, repository.InsertCollectionParams{
		Name:        param.Name,
		Slug:        param.Slug,
		Description: param.Description,
		ImageURL:    param.ImageURL,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting collection with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Collection{}, err
	}
	logger.Info().Str(log.KeyCollectionID, collection.ID.String()).Msg("inserted collection")

	invalidate(logger.WithContext(c), s.cache)
	return collection.Response(), nil
}

func (s *CollectionService) UpdateCollection(
	c context.Context,
	id uuid.UUID,
	param request.UpsertCollection,
) (response.Collection, error) {
	c, span := otel.Tracer.Start(c, "CollectionService UpdateCollection")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CollectionService UpdateCollection").
		Str(log.KeyProcess, "updating collection").
		Str(log.KeyCollectionID, id.String()).
		Logger()

	logger.Info().Msg("updating collection")
	collection, err := s.queries.UpdateCollection(c, repository.UpdateCollectionParams{
		ID: id,
		InsertCollectionParams: repository.InsertCollectionParams{
			Name:        param.Name,
			Slug:        param.Slug,
			Description: param.Description,
			ImageURL:    param.ImageURL,
		},
	})
	if err != nil {
		err = fmt.Errorf("failed updating collection with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Collection{}, err
	}
	logger.Info().Msg("updated collection")

	invalidate(logger.WithContext(c), s.cache)
	return collection.Response(), nil
}

// DeleteCollection removes the collection. Its products stay and fall back to
// uncategorized.
func (s *CollectionService) DeleteCollection(c context.Context, id uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "CollectionService DeleteCollection")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CollectionService DeleteCollection").
		Str(log.KeyProcess, "deleting collection").
		Str(log.KeyCollectionID, id.String()).
		Logger()

	logger.Info().Msg("deleting collection")
	if err := s.queries.DeleteCollection(c, id); err != nil {
		err = fmt.Errorf("failed deleting collection with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted collection")

	invalidate(logger.WithContext(c), s.cache)
	return nil
}
