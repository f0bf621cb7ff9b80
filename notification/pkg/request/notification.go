package request

import "github.com/shopspring/decimal"

type OrderItem struct {
	ProductName  string          `json:"product_name"  validate:"required"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Quantity     int32           `json:"quantity"      validate:"gte=1"`
	Size         string          `json:"size,omitempty"`
}

type OrderConfirmation struct {
	OrderID         string          `json:"orderId"         validate:"required"`
	CustomerName    string          `json:"customerName"    validate:"required"`
	CustomerEmail   string          `json:"customerEmail"   validate:"required,email"`
	OrderItems      []OrderItem     `json:"orderItems"      validate:"required,min=1,dive"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress string          `json:"shippingAddress" validate:"required"`
	ShippingCity    string          `json:"shippingCity"    validate:"required"`
	ShippingState   string          `json:"shippingState"   validate:"required"`
	ShippingZip     string          `json:"shippingZip"     validate:"required"`
	ShippingCountry string          `json:"shippingCountry" validate:"required"`
}

type StatusUpdate struct {
	OrderID       string `json:"orderId"       validate:"required"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
	CustomerName  string `json:"customerName"  validate:"required"`
	Status        string `json:"status"        validate:"required"`
	StatusLabel   string `json:"statusLabel"`
}
