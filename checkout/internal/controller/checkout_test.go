package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/nayarn/cart/pkg/session"
	"github.com/Alturino/nayarn/cart/pkg/store"
	"github.com/Alturino/nayarn/checkout/internal/service"
	"github.com/Alturino/nayarn/checkout/pkg/shipping"
	"github.com/Alturino/nayarn/internal/config"
	inHttp "github.com/Alturino/nayarn/internal/http"
	"github.com/Alturino/nayarn/internal/repository"
	"github.com/Alturino/nayarn/internal/validate"
	notificationRequest "github.com/Alturino/nayarn/notification/pkg/request"
)

type stubOrders struct {
	err error
}

func (s stubOrders) InsertOrder(_ context.Context, arg repository.InsertOrderParams) (repository.Order, error) {
	if s.err != nil {
		return repository.Order{}, s.err
	}
	return repository.Order{
		ID:           uuid.New(),
		CustomerName: arg.CustomerName,
		OrderItems:   arg.OrderItems,
		Subtotal:     arg.Subtotal,
		ShippingCost: arg.ShippingCost,
		Total:        arg.Total,
		Status:       "pending",
		CreatedAt:    time.Now(),
	}, nil
}

func (s stubOrders) InsertOrderItems(_ context.Context, args []repository.InsertOrderItemParams) (int64, error) {
	return int64(len(args)), nil
}

type stubNotifier struct{}

func (stubNotifier) SendOrderConfirmation(context.Context, notificationRequest.OrderConfirmation) error {
	return nil
}

type envelope struct {
	StatusCode int               `json:"statusCode"`
	Message    string            `json:"message"`
	Errors     map[string]string `json:"errors"`
	Data       struct {
		Redirect string `json:"redirect"`
		Order    struct {
			ID    string          `json:"id"`
			Total decimal.Decimal `json:"total"`
		} `json:"order"`
	} `json:"data"`
}

const form = `{
	"customerName": "Jane Doe",
	"customerEmail": "jane@example.com",
	"shippingAddress": "12 Loom Street",
	"shippingCity": "Portland",
	"shippingState": "OR",
	"shippingZip": "97201",
	"shippingCountry": "US"
}`

func newRouter(orders service.OrderWriter) (*mux.Router, *session.Registry) {
	registry := session.NewRegistry(time.Hour, nil)
	policy := shipping.NewPolicy(config.Shipping{FreeShippingThreshold: 150, StandardCost: 15})
	router := mux.NewRouter()
	AttachCheckoutController(
		router,
		service.NewCheckoutService(orders, stubNotifier{}, policy, validate.New()),
		registry,
	)
	return router, registry
}

func post(t *testing.T, router http.Handler, sessionID, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	if sessionID != "" {
		req.Header.Set(inHttp.KeyHeaderCartSession, sessionID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	env := envelope{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return rec, env
}

func fill(registry *session.Registry, id string) *store.Store {
	cart := registry.Get(id)
	cart.AddToCart(store.Line{
		ProductID: "p1",
		Name:      "Dress",
		UnitPrice: decimal.NewFromInt(100),
		Size:      "M",
	}, 2)
	return cart
}

func TestCheckout(t *testing.T) {
	router, registry := newRouter(stubOrders{})
	cart := fill(registry, "s1")

	rec, env := post(t, router, "s1", form)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/order-confirmation/"+env.Data.Order.ID, env.Data.Redirect)
	assert.True(t, decimal.NewFromInt(200).Equal(env.Data.Order.Total))
	assert.True(t, cart.IsEmpty())
}

func TestCheckoutFailures(t *testing.T) {
	testCases := []struct {
		name       string
		orders     stubOrders
		sessionID  string
		fillCart   bool
		body       string
		statusCode int
		keepsCart  bool
	}{
		{name: "missing session", sessionID: "", body: form, statusCode: http.StatusBadRequest},
		{name: "empty cart", sessionID: "s1", body: form, statusCode: http.StatusBadRequest},
		{name: "malformed body", sessionID: "s1", fillCart: true, body: `{`, statusCode: http.StatusBadRequest, keepsCart: true},
		{name: "invalid form", sessionID: "s1", fillCart: true, body: `{"customerName":"J"}`, statusCode: http.StatusBadRequest, keepsCart: true},
		{
			name:       "order creation fails",
			orders:     stubOrders{err: errors.New("connection refused")},
			sessionID:  "s1",
			fillCart:   true,
			body:       form,
			statusCode: http.StatusInternalServerError,
			keepsCart:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router, registry := newRouter(tc.orders)
			var cart *store.Store
			if tc.fillCart {
				cart = fill(registry, tc.sessionID)
			}

			rec, _ := post(t, router, tc.sessionID, tc.body)
			assert.Equal(t, tc.statusCode, rec.Code)
			if tc.keepsCart {
				assert.Equal(t, 2, cart.TotalItems())
			}
		})
	}
}
