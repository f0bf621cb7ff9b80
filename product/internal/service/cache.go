package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/nayarn/internal/log"
	inOtel "github.com/Alturino/nayarn/internal/otel"
	"github.com/Alturino/nayarn/product/internal/cache"
	"github.com/Alturino/nayarn/product/internal/otel"
)

// cached serves key from redis, loading and storing it on a miss. Cache
// failures are logged and fall through to load.
func cached[T any](
	c context.Context,
	client *redis.Client,
	ttl time.Duration,
	key string,
	load func(context.Context) (T, error),
) (T, error) {
	c, span := otel.Tracer.Start(c, "cached "+key)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "service cached").
		Str(log.KeyCacheKey, key).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding in cache").Logger()
	logger.Trace().Msg("finding in cache")
	var value T
	raw, err := client.Get(c, key).Bytes()
	switch {
	case err == nil:
		if err = json.Unmarshal(raw, &value); err == nil {
			span.AddEvent("cache hit")
			logger.Debug().Msg("found in cache")
			return value, nil
		}
		err = fmt.Errorf("failed unmarshaling cached value with error=%w", err)
		logger.Warn().Err(err).Msg(err.Error())
	case errors.Is(err, redis.Nil):
		logger.Debug().Msg("cache miss")
	default:
		err = fmt.Errorf("failed reading cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
	}

	logger = logger.With().Str(log.KeyProcess, "loading from database").Logger()
	logger.Trace().Msg("loading from database")
	value, err = load(c)
	if err != nil {
		inOtel.RecordError(err, span)
		return value, err
	}
	logger.Trace().Msg("loaded from database")

	logger = logger.With().Str(log.KeyProcess, "storing in cache").Logger()
	payload, err := json.Marshal(value)
	if err != nil {
		err = fmt.Errorf("failed marshaling value for cache with error=%w", err)
		logger.Warn().Err(err).Msg(err.Error())
		return value, nil
	}
	if err := client.Set(c, key, payload, ttl).Err(); err != nil {
		err = fmt.Errorf("failed storing value in cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return value, nil
	}
	logger.Trace().Msg("stored in cache")

	return value, nil
}

// invalidate drops every catalog key after an admin write.
func invalidate(c context.Context, client *redis.Client) {
	c, span := otel.Tracer.Start(c, "invalidate catalog cache")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "service invalidate").
		Str(log.KeyProcess, "invalidating catalog cache").
		Logger()

	logger.Trace().Msg("invalidating catalog cache")
	keys := []string{}
	iter := client.Scan(c, 0, cache.KeyPrefix+"*", 100).Iterator()
	for iter.Next(c) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		err = fmt.Errorf("failed scanning catalog cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := client.Del(c, keys...).Err(); err != nil {
		err = fmt.Errorf("failed deleting catalog cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Int("deleted", len(keys)).Msg("invalidated catalog cache")
}
