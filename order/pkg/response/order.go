package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ProductID          string            `json:"productId"`
	ProductName        string            `json:"productName"`
	ProductPrice       decimal.Decimal   `json:"productPrice"`
	Quantity           int32             `json:"quantity"`
	Size               string            `json:"size"`
	CustomMeasurements map[string]string `json:"customMeasurements,omitempty"`
}

type Order struct {
	ID              uuid.UUID       `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerPhone   *string         `json:"customerPhone,omitempty"`
	ShippingAddress string          `json:"shippingAddress"`
	ShippingCity    string          `json:"shippingCity"`
	ShippingState   string          `json:"shippingState"`
	ShippingZip     string          `json:"shippingZip"`
	ShippingCountry string          `json:"shippingCountry"`
	OrderItems      []OrderItem     `json:"orderItems"`
	ItemRows        []OrderItem     `json:"itemRows,omitempty"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	Total           decimal.Decimal `json:"total"`
	Notes           *string         `json:"notes,omitempty"`
	Status          string          `json:"status"`
	StatusLabel     string          `json:"statusLabel"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type Summary struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}

// Confirmation is the storefront view of a placed order.
type Confirmation struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"orderNumber"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	StatusLabel   string          `json:"statusLabel"`
	CreatedAt     time.Time       `json:"createdAt"`
}
