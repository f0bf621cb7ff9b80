// Package shipping prices delivery for a cart subtotal.
package shipping

import (
	"github.com/shopspring/decimal"

	"github.com/Alturino/nayarn/internal/config"
)

// Policy charges StandardCost below FreeThreshold and nothing at or above it.
type Policy struct {
	FreeThreshold decimal.Decimal
	StandardCost  decimal.Decimal
}

func NewPolicy(cfg config.Shipping) Policy {
	return Policy{
		FreeThreshold: decimal.NewFromFloat(cfg.FreeShippingThreshold),
		StandardCost:  decimal.NewFromFloat(cfg.StandardCost),
	}
}

func (p Policy) Cost(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.FreeThreshold) {
		return decimal.Zero
	}
	return p.StandardCost
}
