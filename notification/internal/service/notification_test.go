package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/nayarn/notification/internal/mailer"
	"github.com/Alturino/nayarn/notification/pkg/request"
)

type recordingMailer struct {
	sent []mailer.Message
	err  error
}

func (r *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func confirmation() request.OrderConfirmation {
	return request.OrderConfirmation{
		OrderID:       "3f2a9c1e-7d4b-4c2a-9f1e-2b3c4d5e6f70",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		OrderItems: []request.OrderItem{
			{ProductName: "Dress", ProductPrice: decimal.NewFromInt(100), Quantity: 2, Size: "M"},
			{ProductName: "Scarf", ProductPrice: decimal.RequireFromString("19.99"), Quantity: 1},
		},
		Subtotal:        decimal.RequireFromString("219.99"),
		ShippingCost:    decimal.Zero,
		Total:           decimal.RequireFromString("219.99"),
		ShippingAddress: "1 Main Street",
		ShippingCity:    "Springfield",
		ShippingState:   "IL",
		ShippingZip:     "62701",
		ShippingCountry: "US",
	}
}

func TestSendOrderConfirmation(t *testing.T) {
	m := &recordingMailer{}
	s := NewNotificationService(m, "NaYarn <orders@nayarn.com>", "https://shop.example.com/")

	require.NoError(t, s.SendOrderConfirmation(context.Background(), confirmation()))
	require.Len(t, m.sent, 1)

	msg := m.sent[0]
	assert.Equal(t, "Order Confirmation #3F2A9C1E", msg.Subject)
	assert.Equal(t, []string{"jane@example.com"}, msg.To)
	assert.Contains(t, msg.Body, "- Dress (M) x 2 = $200.00\n")
	assert.Contains(t, msg.Body, "- Scarf x 1 = $19.99\n")
	assert.Contains(t, msg.Body, "Shipping: Free\n")
	assert.Contains(t, msg.Body, "Total: $219.99\n")
	assert.Contains(t, msg.Body, "Springfield, IL 62701\nUS\n")
}

func TestConfirmationBodyPaidShipping(t *testing.T) {
	param := confirmation()
	param.ShippingCost = decimal.NewFromInt(15)
	assert.Contains(t, ConfirmationBody(param), "Shipping: $15.00\n")
}

func TestSendStatusUpdate(t *testing.T) {
	tests := []struct {
		name            string
		status          string
		label           string
		expectedSubject string
		expectedMessage string
	}{
		{
			name:            "given shipped should use shipped message",
			status:          "shipped",
			label:           "Shipped",
			expectedSubject: "Order Update: Shipped",
			expectedMessage: "Your order has been shipped! It's on its way to you.",
		},
		{
			name:            "given unknown status should fall back to generic message",
			status:          "pending",
			label:           "",
			expectedSubject: "Order Update: pending",
			expectedMessage: "Your order status has been updated to: pending",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m := &recordingMailer{}
			s := NewNotificationService(m, "orders@nayarn.com", "https://shop.example.com/")

			err := s.SendStatusUpdate(context.Background(), request.StatusUpdate{
				OrderID:       "3f2a9c1e-7d4b",
				CustomerEmail: "jane@example.com",
				CustomerName:  "Jane Doe",
				Status:        test.status,
				StatusLabel:   test.label,
			})
			require.NoError(t, err)
			require.Len(t, m.sent, 1)
			assert.Equal(t, test.expectedSubject, m.sent[0].Subject)
			assert.Contains(t, m.sent[0].Body, test.expectedMessage)
			assert.Contains(t, m.sent[0].Body, "https://shop.example.com/track?order=3f2a9c1e-7d4b")
		})
	}
}

func TestMailerFailureIsReturned(t *testing.T) {
	s := NewNotificationService(&recordingMailer{err: errors.New("smtp down")}, "a@b.c", "")
	assert.Error(t, s.SendOrderConfirmation(context.Background(), confirmation()))
}
