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

	"github.com/Alturino/nayarn/cart/pkg/store"
	"github.com/Alturino/nayarn/checkout/pkg/request"
	"github.com/Alturino/nayarn/checkout/pkg/shipping"
	"github.com/Alturino/nayarn/internal/config"
	inErrors "github.com/Alturino/nayarn/internal/errors"
	"github.com/Alturino/nayarn/internal/repository"
	"github.com/Alturino/nayarn/internal/validate"
	notificationRequest "github.com/Alturino/nayarn/notification/pkg/request"
)

type fakeOrders struct {
	onInsert  func()
	insertErr error
	itemsErr  error
	orders    []repository.Order
	items     []repository.InsertOrderItemParams
}

func (f *fakeOrders) InsertOrder(_ context.Context, arg repository.InsertOrderParams) (repository.Order, error) {
	if f.onInsert != nil {
		f.onInsert()
	}
	if f.insertErr != nil {
		return repository.Order{}, f.insertErr
	}
	order := repository.Order{
		ID:              uuid.New(),
		CustomerName:    arg.CustomerName,
		CustomerEmail:   arg.CustomerEmail,
		CustomerPhone:   arg.CustomerPhone,
		ShippingAddress: arg.ShippingAddress,
		ShippingCity:    arg.ShippingCity,
		ShippingState:   arg.ShippingState,
		ShippingZip:     arg.ShippingZip,
		ShippingCountry: arg.ShippingCountry,
		OrderItems:      arg.OrderItems,
		Subtotal:        arg.Subtotal,
		ShippingCost:    arg.ShippingCost,
		Total:           arg.Total,
		Notes:           arg.Notes,
		Status:          "pending",
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	f.orders = append(f.orders, order)
	return order, nil
}

func (f *fakeOrders) InsertOrderItems(_ context.Context, args []repository.InsertOrderItemParams) (int64, error) {
	if f.itemsErr != nil {
		return 0, f.itemsErr
	}
	f.items = append(f.items, args...)
	return int64(len(args)), nil
}

type fakeNotifier struct {
	err  error
	sent []notificationRequest.OrderConfirmation
}

func (f *fakeNotifier) SendOrderConfirmation(_ context.Context, param notificationRequest.OrderConfirmation) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, param)
	return nil
}

func validForm() request.CheckoutForm {
	return request.CheckoutForm{
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		ShippingAddress: "12 Loom Street",
		ShippingCity:    "Portland",
		ShippingState:   "OR",
		ShippingZip:     "97201",
		ShippingCountry: "US",
	}
}

func dressCart(unitPrice string, quantity int) *store.Store {
	cart := store.New()
	cart.AddToCart(store.Line{
		ProductID: "p1",
		Name:      "Dress",
		UnitPrice: decimal.RequireFromString(unitPrice),
		Size:      "M",
	}, quantity)
	return cart
}

func newService(orders *fakeOrders, notifier *fakeNotifier) *CheckoutService {
	policy := shipping.NewPolicy(config.Shipping{FreeShippingThreshold: 150, StandardCost: 15})
	return NewCheckoutService(orders, notifier, policy, validate.New())
}

func TestCheckout(t *testing.T) {
	orders, notifier := &fakeOrders{}, &fakeNotifier{}
	cart := dressCart("100", 2)

	result, err := newService(orders, notifier).Checkout(context.Background(), cart, validForm())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(200).Equal(result.Order.Subtotal))
	assert.True(t, decimal.Zero.Equal(result.Order.ShippingCost))
	assert.True(t, decimal.NewFromInt(200).Equal(result.Order.Total))
	assert.Equal(t, "/order-confirmation/"+result.Order.ID.String(), result.Redirect)
	assert.True(t, result.ItemsWrite.Ok())
	assert.True(t, result.Notification.Ok())
	assert.True(t, cart.IsEmpty())

	require.Len(t, result.Order.OrderItems, 1)
	assert.Equal(t, "p1", result.Order.OrderItems[0].ProductID)
	assert.Equal(t, int32(2), result.Order.OrderItems[0].Quantity)
	assert.Nil(t, result.Order.CustomerPhone)
	assert.Nil(t, result.Order.Notes)

	require.Len(t, orders.items, 1)
	assert.Equal(t, result.Order.ID, orders.items[0].OrderID)
	assert.Nil(t, orders.items[0].ProductID, "non uuid product id is stored as NULL")

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, result.Order.ID.String(), notifier.sent[0].OrderID)
	assert.Equal(t, "Dress", notifier.sent[0].OrderItems[0].ProductName)
}

func TestCheckoutKeepsLinesAddedDuringOrderWrite(t *testing.T) {
	cart := dressCart("100", 1)
	orders := &fakeOrders{onInsert: func() {
		cart.AddToCart(store.Line{ProductID: "p1", Name: "Dress", UnitPrice: decimal.NewFromInt(100), Size: "M"}, 2)
		cart.AddToCart(store.Line{ProductID: "p2", Name: "Scarf", UnitPrice: decimal.NewFromInt(20)}, 1)
	}}

	result, err := newService(orders, &fakeNotifier{}).Checkout(context.Background(), cart, validForm())
	require.NoError(t, err)
	require.Len(t, result.Order.OrderItems, 1)
	assert.Equal(t, int32(1), result.Order.OrderItems[0].Quantity)

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "p2", lines[1].ProductID)
}

func TestCheckoutShippingBoundary(t *testing.T) {
	testCases := []struct {
		name         string
		unitPrice    string
		shippingCost string
		total        string
	}{
		{name: "subtotal at threshold ships free", unitPrice: "150", shippingCost: "0", total: "150"},
		{name: "subtotal below threshold pays standard", unitPrice: "149.99", shippingCost: "15", total: "164.99"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := newService(&fakeOrders{}, &fakeNotifier{}).
				Checkout(context.Background(), dressCart(tc.unitPrice, 1), validForm())
			require.NoError(t, err)

			order := result.Order
			assert.True(t, decimal.RequireFromString(tc.shippingCost).Equal(order.ShippingCost))
			assert.True(t, decimal.RequireFromString(tc.total).Equal(order.Total))
			assert.True(t, order.Total.Equal(order.Subtotal.Add(order.ShippingCost)))
		})
	}
}

func TestCheckoutOrderItemsFailure(t *testing.T) {
	orders := &fakeOrders{itemsErr: errors.New("connection reset")}
	cart := dressCart("100", 2)

	result, err := newService(orders, &fakeNotifier{}).Checkout(context.Background(), cart, validForm())
	require.NoError(t, err)

	require.Len(t, orders.orders, 1)
	assert.True(t, decimal.NewFromInt(200).Equal(result.Order.Total))
	assert.True(t, result.ItemsWrite.Logged())
	assert.ErrorIs(t, result.ItemsWrite.Err, inErrors.ErrOrderItemsWrite)
	assert.True(t, result.Notification.Ok())
	assert.NotEmpty(t, result.Redirect)
	assert.True(t, cart.IsEmpty())
}

func TestCheckoutNotificationFailure(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("smtp unavailable")}
	cart := dressCart("100", 2)

	result, err := newService(&fakeOrders{}, notifier).Checkout(context.Background(), cart, validForm())
	require.NoError(t, err)

	assert.True(t, result.Notification.Logged())
	assert.ErrorIs(t, result.Notification.Err, inErrors.ErrNotificationDispatch)
	assert.True(t, cart.IsEmpty())
}

func TestCheckoutOrderCreationFailure(t *testing.T) {
	orders, notifier := &fakeOrders{insertErr: errors.New("connection refused")}, &fakeNotifier{}
	cart := dressCart("100", 2)

	result, err := newService(orders, notifier).Checkout(context.Background(), cart, validForm())
	require.Error(t, err)
	assert.ErrorIs(t, err, inErrors.ErrOrderCreation)
	assert.Empty(t, result.Redirect)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Empty(t, orders.items)
	assert.Empty(t, notifier.sent)
}

func TestCheckoutEmptyCart(t *testing.T) {
	orders := &fakeOrders{}

	_, err := newService(orders, &fakeNotifier{}).Checkout(context.Background(), store.New(), validForm())
	assert.ErrorIs(t, err, inErrors.ErrEmptyCart)
	assert.Empty(t, orders.orders)
}

func TestCheckoutValidation(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(f *request.CheckoutForm)
		field  string
	}{
		{name: "short name", mutate: func(f *request.CheckoutForm) { f.CustomerName = "J" }, field: "customerName"},
		{name: "bad email", mutate: func(f *request.CheckoutForm) { f.CustomerEmail = "jane" }, field: "customerEmail"},
		{name: "short address", mutate: func(f *request.CheckoutForm) { f.ShippingAddress = "12" }, field: "shippingAddress"},
		{name: "short zip", mutate: func(f *request.CheckoutForm) { f.ShippingZip = "97" }, field: "shippingZip"},
		{name: "unknown country", mutate: func(f *request.CheckoutForm) { f.ShippingCountry = "BR" }, field: "shippingCountry"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			orders := &fakeOrders{}
			cart := dressCart("100", 1)
			form := validForm()
			tc.mutate(&form)

			_, err := newService(orders, &fakeNotifier{}).Checkout(context.Background(), cart, form)
			var ve *inErrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tc.field)
			assert.Empty(t, orders.orders)
			assert.False(t, cart.IsEmpty())
		})
	}
}
