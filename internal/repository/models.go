package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Collection struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CollectionRef is the part of a collection joined onto a product row.
type CollectionRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type ProductImage struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	ImageURL     string    `json:"image_url"`
	IsPrimary    bool      `json:"is_primary"`
	DisplayOrder int32     `json:"display_order"`
}

// Product is a products row joined with its images and collection.
type Product struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CollectionID *uuid.UUID      `json:"collection_id"`
	Sizes        []string        `json:"sizes"`
	IsFeatured   bool            `json:"is_featured"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Images       []ProductImage  `json:"product_images"`
	Collection   *CollectionRef  `json:"collections"`
}

// OrderItemSnapshot is the frozen copy of a cart line kept on the order header.
type OrderItemSnapshot struct {
	ProductID          string            `json:"product_id"`
	ProductName        string            `json:"product_name"`
	ProductPrice       decimal.Decimal   `json:"product_price"`
	Quantity           int32             `json:"quantity"`
	Size               string            `json:"size"`
	CustomMeasurements map[string]string `json:"custom_measurements,omitempty"`
}

type Order struct {
	ID              uuid.UUID           `json:"id"`
	CustomerName    string              `json:"customer_name"`
	CustomerEmail   string              `json:"customer_email"`
	CustomerPhone   *string             `json:"customer_phone"`
	ShippingAddress string              `json:"shipping_address"`
	ShippingCity    string              `json:"shipping_city"`
	ShippingState   string              `json:"shipping_state"`
	ShippingZip     string              `json:"shipping_zip"`
	ShippingCountry string              `json:"shipping_country"`
	OrderItems      []OrderItemSnapshot `json:"order_items"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	ShippingCost    decimal.Decimal     `json:"shipping_cost"`
	Total           decimal.Decimal     `json:"total"`
	Notes           *string             `json:"notes"`
	Status          string              `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type OrderItem struct {
	ID                 uuid.UUID         `json:"id"`
	OrderID            uuid.UUID         `json:"order_id"`
	ProductID          *uuid.UUID        `json:"product_id"`
	ProductName        string            `json:"product_name"`
	ProductPrice       decimal.Decimal   `json:"product_price"`
	Quantity           int32             `json:"quantity"`
	Size               string            `json:"size"`
	CustomMeasurements map[string]string `json:"custom_measurements"`
	CreatedAt          time.Time         `json:"created_at"`
}
