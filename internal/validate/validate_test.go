package validate

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Slug  string          `json:"slug"  validate:"required,slug"`
	Price decimal.Decimal `json:"price" validate:"gte=0"`
}

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		input         sample
		expectedField string
	}{
		{
			name:  "given kebab slug and positive price should pass",
			input: sample{Slug: "summer-dresses-2025", Price: decimal.RequireFromString("10.5")},
		},
		{
			name:  "given zero price should pass",
			input: sample{Slug: "scarves", Price: decimal.Zero},
		},
		{
			name:          "given uppercase slug should fail on slug",
			input:         sample{Slug: "Summer-Dresses", Price: decimal.NewFromInt(1)},
			expectedField: "slug",
		},
		{
			name:          "given trailing dash should fail on slug",
			input:         sample{Slug: "dresses-", Price: decimal.NewFromInt(1)},
			expectedField: "slug",
		},
		{
			name:          "given negative price should fail on price",
			input:         sample{Slug: "dresses", Price: decimal.RequireFromString("-0.01")},
			expectedField: "price",
		},
	}

	v := New()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := v.Struct(test.input)
			if test.expectedField == "" {
				assert.NoError(t, err)
				return
			}
			var ve validator.ValidationErrors
			require.True(t, errors.As(err, &ve))
			require.Len(t, ve, 1)
			assert.Equal(t, test.expectedField, ve[0].Field())
		})
	}
}
