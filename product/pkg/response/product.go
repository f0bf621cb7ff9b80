package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DisplayProduct is the storefront shape of a catalog product.
type DisplayProduct struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Images       []string        `json:"images"`
	PrimaryImage string          `json:"primaryImage"`
	Category     string          `json:"category"`
	IsNew        bool            `json:"isNew"`
	Sizes        []string        `json:"sizes"`
	IsFeatured   bool            `json:"isFeatured"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type Collection struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProductImage struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"productId"`
	ImageURL     string    `json:"imageUrl"`
	IsPrimary    bool      `json:"isPrimary"`
	DisplayOrder int32     `json:"displayOrder"`
}
