package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/nayarn/internal/errors"
	"github.com/Alturino/nayarn/product/internal/cache"
	"github.com/Alturino/nayarn/product/pkg/projection"
	"github.com/Alturino/nayarn/product/pkg/request"
)

func TestProductService(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	c := context.Background()
	pool, queries, redisClient := setup(t, c)

	clock := time.Now()
	products := NewProductService(pool, queries, redisClient, time.Minute, func() time.Time { return clock })
	collections := NewCollectionService(queries, redisClient, time.Minute)

	dresses, err := collections.InsertCollection(c, request.UpsertCollection{Name: "Dresses", Slug: "dresses"})
	require.NoError(t, err)

	dress, err := products.InsertProduct(c, request.UpsertProduct{
		Name:         "Linen Dress",
		Price:        decimal.NewFromInt(100),
		CollectionID: &dresses.ID,
		Sizes:        []string{"S", "M"},
		IsFeatured:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "dresses", dress.Category)
	assert.True(t, dress.IsNew)

	t.Run("unknown collection is a validation error", func(t *testing.T) {
		missing := uuid.New()
		_, err := products.InsertProduct(c, request.UpsertProduct{
			Name:         "Ghost",
			Price:        decimal.NewFromInt(1),
			CollectionID: &missing,
		})
		var ve *inErrors.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Contains(t, ve.Fields, "collectionId")
	})

	t.Run("reads are cached and projected with the injected clock", func(t *testing.T) {
		listed, err := products.ListProducts(c, "")
		require.NoError(t, err)
		require.Len(t, listed, 1)

		exists, err := redisClient.Exists(c, cache.KeyProducts).Result()
		require.NoError(t, err)
		assert.EqualValues(t, 1, exists)

		clock = clock.Add(projection.NewWindow + time.Hour)
		listed, err = products.ListProducts(c, "")
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.False(t, listed[0].IsNew)
		clock = time.Now()
	})

	t.Run("primary image replaces the previous one", func(t *testing.T) {
		_, err := products.InsertProductImage(c, dress.ID, request.InsertProductImage{
			ImageURL: "https://cdn.example.com/front.jpg", IsPrimary: true, DisplayOrder: 2,
		})
		require.NoError(t, err)
		_, err = products.InsertProductImage(c, dress.ID, request.InsertProductImage{
			ImageURL: "https://cdn.example.com/back.jpg", IsPrimary: true, DisplayOrder: 1,
		})
		require.NoError(t, err)

		found, err := products.FindProductById(c, dress.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/back.jpg", found.PrimaryImage)
		assert.Equal(t, []string{"https://cdn.example.com/back.jpg", "https://cdn.example.com/front.jpg"}, found.Images)
	})

	t.Run("admin writes invalidate cached reads", func(t *testing.T) {
		_, err := products.ListFeaturedProducts(c, 0)
		require.NoError(t, err)

		_, err = products.UpdateProduct(c, dress.ID, request.UpsertProduct{
			Name:  "Linen Dress",
			Price: decimal.NewFromInt(90),
			Sizes: []string{"M"},
		})
		require.NoError(t, err)

		featured, err := products.ListFeaturedProducts(c, 0)
		require.NoError(t, err)
		assert.Empty(t, featured)

		found, err := products.FindProduct(c, dress.ID.String())
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(90).Equal(found.Price))
		assert.Equal(t, projection.Uncategorized, found.Category)
	})

	t.Run("collections are listed by name and found by slug", func(t *testing.T) {
		_, err := collections.InsertCollection(c, request.UpsertCollection{Name: "Coats", Slug: "coats"})
		require.NoError(t, err)

		listed, err := collections.ListCollections(c)
		require.NoError(t, err)
		require.Len(t, listed, 2)
		assert.Equal(t, "Coats", listed[0].Name)
		assert.Equal(t, "Dresses", listed[1].Name)

		found, err := collections.FindCollectionBySlug(c, "dresses")
		require.NoError(t, err)
		assert.Equal(t, dresses.ID, found.ID)

		_, err = collections.FindCollectionBySlug(c, "missing")
		assert.True(t, errors.Is(err, inErrors.ErrNotFound))
	})

	t.Run("non uuid ids are not found", func(t *testing.T) {
		_, err := products.FindProduct(c, "p1")
		assert.True(t, errors.Is(err, inErrors.ErrNotFound))
	})

	t.Run("deleted product is gone", func(t *testing.T) {
		require.NoError(t, products.DeleteProduct(c, dress.ID))
		_, err := products.FindProductById(c, dress.ID)
		assert.True(t, errors.Is(err, inErrors.ErrNotFound))
		assert.True(t, errors.Is(products.DeleteProduct(c, dress.ID), inErrors.ErrNotFound))
	})
}
