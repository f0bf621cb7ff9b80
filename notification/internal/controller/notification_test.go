package controller

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/nayarn/notification/internal/mailer"
	"github.com/Alturino/nayarn/notification/internal/service"
	"github.com/Alturino/nayarn/notification/pkg/client"
	"github.com/Alturino/nayarn/notification/pkg/request"
)

type stubMailer struct {
	err  error
	sent int
}

func (s *stubMailer) Send(context.Context, mailer.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent++
	return nil
}

func newServer(t *testing.T, m mailer.Mailer) *httptest.Server {
	t.Helper()
	router := mux.NewRouter()
	AttachNotificationController(router, service.NewNotificationService(m, "orders@nayarn.com", "https://shop.example.com"))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestStatusUpdateEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		mailerErr      error
		body           string
		expectedStatus int
	}{
		{
			name:           "given complete payload should send",
			body:           `{"orderId":"o1","customerEmail":"jane@example.com","customerName":"Jane","status":"shipped","statusLabel":"Shipped"}`,
			expectedStatus: 200,
		},
		{
			name:           "given missing fields should return bad request",
			body:           `{"orderId":"o1","status":"shipped"}`,
			expectedStatus: 400,
		},
		{
			name:           "given mailer failure should return internal error",
			mailerErr:      errors.New("smtp down"),
			body:           `{"orderId":"o1","customerEmail":"jane@example.com","customerName":"Jane","status":"shipped"}`,
			expectedStatus: 500,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := newServer(t, &stubMailer{err: test.mailerErr})
			resp, err := server.Client().Post(server.URL+client.PathOrderStatus, "application/json", strings.NewReader(test.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, test.expectedStatus, resp.StatusCode)
		})
	}
}

func TestClientAgainstServer(t *testing.T) {
	m := &stubMailer{}
	server := newServer(t, m)
	cl := client.New(server.URL, 5*time.Second)

	err := cl.SendOrderConfirmation(context.Background(), request.OrderConfirmation{
		OrderID:         "3f2a9c1e-7d4b-4c2a-9f1e-2b3c4d5e6f70",
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		OrderItems:      []request.OrderItem{{ProductName: "Dress", ProductPrice: decimal.NewFromInt(100), Quantity: 2}},
		Subtotal:        decimal.NewFromInt(200),
		ShippingCost:    decimal.Zero,
		Total:           decimal.NewFromInt(200),
		ShippingAddress: "1 Main Street",
		ShippingCity:    "Springfield",
		ShippingState:   "IL",
		ShippingZip:     "62701",
		ShippingCountry: "US",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, m.sent)

	err = cl.SendStatusUpdate(context.Background(), request.StatusUpdate{OrderID: "o1"})
	assert.Error(t, err)
	assert.Equal(t, 1, m.sent)
}
