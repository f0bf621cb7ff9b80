package projection

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Alturino/nayarn/internal/repository"
)

var now = time.Date(2025, time.June, 30, 12, 0, 0, 0, time.UTC)

func rawProduct(images ...repository.ProductImage) repository.Product {
	return repository.Product{
		ID:        uuid.New(),
		Name:      "Linen Dress",
		Price:     decimal.NewFromInt(100),
		Sizes:     []string{"S", "M"},
		CreatedAt: now.Add(-90 * 24 * time.Hour),
		Images:    images,
	}
}

func TestProjectProductPrimaryImage(t *testing.T) {
	tests := []struct {
		name            string
		images          []repository.ProductImage
		expectedPrimary string
		expectedImages  []string
	}{
		{
			name: "given no primary flag should pick lowest display order",
			images: []repository.ProductImage{
				{ImageURL: "a", DisplayOrder: 2},
				{ImageURL: "b", DisplayOrder: 1},
			},
			expectedPrimary: "b",
			expectedImages:  []string{"b", "a"},
		},
		{
			name: "given a flagged image should pick it regardless of order",
			images: []repository.ProductImage{
				{ImageURL: "a", DisplayOrder: 2},
				{ImageURL: "b", DisplayOrder: 1},
				{ImageURL: "c", IsPrimary: true, DisplayOrder: 5},
			},
			expectedPrimary: "c",
			expectedImages:  []string{"b", "a", "c"},
		},
		{
			name:            "given no images should yield empty primary",
			images:          nil,
			expectedPrimary: "",
			expectedImages:  []string{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual := ProjectProduct(rawProduct(test.images...), now)
			assert.Equal(t, test.expectedPrimary, actual.PrimaryImage)
			assert.Equal(t, test.expectedImages, actual.Images)
		})
	}
}

func TestProjectProductDoesNotMutateInput(t *testing.T) {
	raw := rawProduct(
		repository.ProductImage{ImageURL: "a", DisplayOrder: 2},
		repository.ProductImage{ImageURL: "b", DisplayOrder: 1},
	)

	actual := ProjectProduct(raw, now)
	actual.Sizes[0] = "XL"

	assert.Equal(t, "a", raw.Images[0].ImageURL)
	assert.Equal(t, "b", raw.Images[1].ImageURL)
	assert.Equal(t, "S", raw.Sizes[0])
}

func TestProjectProductCategory(t *testing.T) {
	raw := rawProduct()
	assert.Equal(t, Uncategorized, ProjectProduct(raw, now).Category)

	raw.Collection = &repository.CollectionRef{ID: uuid.New(), Name: "Dresses", Slug: "dresses"}
	assert.Equal(t, "dresses", ProjectProduct(raw, now).Category)
}

func TestProjectProductIsNew(t *testing.T) {
	tests := []struct {
		name      string
		createdAt time.Time
		expected  bool
	}{
		{name: "given created yesterday should be new", createdAt: now.Add(-24 * time.Hour), expected: true},
		{name: "given created just inside window should be new", createdAt: now.Add(-NewWindow + time.Second), expected: true},
		{name: "given created exactly at window edge should not be new", createdAt: now.Add(-NewWindow), expected: false},
		{name: "given created long ago should not be new", createdAt: now.Add(-365 * 24 * time.Hour), expected: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			raw := rawProduct()
			raw.CreatedAt = test.createdAt
			assert.Equal(t, test.expected, ProjectProduct(raw, now).IsNew)
		})
	}
}

func TestProjectListPreservesOrder(t *testing.T) {
	first, second := rawProduct(), rawProduct()
	second.Name = "Wool Scarf"

	actual := ProjectList([]repository.Product{first, second}, now)

	assert.Len(t, actual, 2)
	assert.Equal(t, first.ID, actual[0].ID)
	assert.Equal(t, second.ID, actual[1].ID)
	assert.Empty(t, ProjectList(nil, now))
}
