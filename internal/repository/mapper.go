package repository

import (
	"strings"

	orderResponse "github.com/Alturino/nayarn/order/pkg/response"
	"github.com/Alturino/nayarn/order/pkg/status"
	"github.com/Alturino/nayarn/product/pkg/response"
)

func (c Collection) Response() response.Collection {
	return response.Collection{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (i ProductImage) Response() response.ProductImage {
	return response.ProductImage{
		ID:           i.ID,
		ProductID:    i.ProductID,
		ImageURL:     i.ImageURL,
		IsPrimary:    i.IsPrimary,
		DisplayOrder: i.DisplayOrder,
	}
}

// Response maps the header with its frozen item snapshots.
func (o Order) Response() orderResponse.Order {
	items := make([]orderResponse.OrderItem, 0, len(o.OrderItems))
	for _, i := range o.OrderItems {
		items = append(items, orderResponse.OrderItem{
			ProductID:          i.ProductID,
			ProductName:        i.ProductName,
			ProductPrice:       i.ProductPrice,
			Quantity:           i.Quantity,
			Size:               i.Size,
			CustomMeasurements: i.CustomMeasurements,
		})
	}

	return orderResponse.Order{
		ID:              o.ID,
		OrderNumber:     strings.ToUpper(o.ID.String()[:8]),
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		ShippingAddress: o.ShippingAddress,
		ShippingCity:    o.ShippingCity,
		ShippingState:   o.ShippingState,
		ShippingZip:     o.ShippingZip,
		ShippingCountry: o.ShippingCountry,
		OrderItems:      items,
		Subtotal:        o.Subtotal,
		ShippingCost:    o.ShippingCost,
		Total:           o.Total,
		Notes:           o.Notes,
		Status:          o.Status,
		StatusLabel:     status.Status(o.Status).Label(),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func (i OrderItem) Response() orderResponse.OrderItem {
	productID := ""
	if i.ProductID != nil {
		productID = i.ProductID.String()
	}
	return orderResponse.OrderItem{
		ProductID:          productID,
		ProductName:        i.ProductName,
		ProductPrice:       i.ProductPrice,
		Quantity:           i.Quantity,
		Size:               i.Size,
		CustomMeasurements: i.CustomMeasurements,
	}
}

func (o Order) Confirmation() orderResponse.Confirmation {
	return orderResponse.Confirmation{
		ID:            o.ID,
		OrderNumber:   strings.ToUpper(o.ID.String()[:8]),
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Total:         o.Total,
		Status:        o.Status,
		StatusLabel:   status.Status(o.Status).Label(),
		CreatedAt:     o.CreatedAt,
	}
}
