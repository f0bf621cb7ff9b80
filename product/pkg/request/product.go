package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UpsertProduct struct {
	Name         string          `json:"name"         validate:"required,min=1,max=200"`
	Description  *string         `json:"description"  validate:"omitempty,max=5000"`
	Price        decimal.Decimal `json:"price"        validate:"gte=0"`
	CollectionID *uuid.UUID      `json:"collectionId"`
	Sizes        []string        `json:"sizes"        validate:"dive,required,max=50"`
	IsFeatured   bool            `json:"isFeatured"`
}

type InsertProductImage struct {
	ImageURL     string `json:"imageUrl"     validate:"required,url,max=2048"`
	IsPrimary    bool   `json:"isPrimary"`
	DisplayOrder int32  `json:"displayOrder" validate:"gte=0"`
}

type UpsertCollection struct {
	Name        string  `json:"name"        validate:"required,min=1,max=100"`
	Slug        string  `json:"slug"        validate:"required,max=100,slug"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	ImageURL    *string `json:"imageUrl"    validate:"omitempty,url,max=2048"`
}

var ValidationMessages = map[string]string{
	"name.required":     "name is required",
	"name.max":          "name is too long",
	"price.gte":         "price must not be negative",
	"description":       "description is too long",
	"collectionId":      "collectionId must be a valid uuid",
	"imageUrl.required": "imageUrl is required",
	"imageUrl":          "imageUrl must be a valid url",
	"displayOrder":      "displayOrder must not be negative",
	"slug.required":     "slug is required",
	"slug.slug":         "slug must be lowercase words separated by dashes",
}
