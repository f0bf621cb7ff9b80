package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Alturino/nayarn/internal/log"
	"github.com/Alturino/nayarn/internal/metrics"
	inOtel "github.com/Alturino/nayarn/internal/otel"
	"github.com/Alturino/nayarn/notification/internal/mailer"
	"github.com/Alturino/nayarn/notification/internal/otel"
	"github.com/Alturino/nayarn/notification/pkg/request"
)

const (
	kindConfirmation = "order_confirmation"
	kindStatus       = "order_status"
	resultSent       = "sent"
	resultFailed     = "failed"
)

var statusMessages = map[string]string{
	"confirmed":  "Great news! Your order has been confirmed and is being prepared.",
	"processing": "Your order is now being processed. We're working on getting it ready for shipment.",
	"shipped":    "Your order has been shipped! It's on its way to you.",
	"delivered":  "Your order has been delivered. We hope you love your new items!",
	"cancelled":  "Your order has been cancelled. If you have any questions, please contact us.",
}

func StatusMessage(status string) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return "Your order status has been updated to: " + status
}

type NotificationService struct {
	mailer        mailer.Mailer
	from          string
	storefrontURL string
}

func NewNotificationService(m mailer.Mailer, from string, storefrontURL string) *NotificationService {
	return &NotificationService{mailer: m, from: from, storefrontURL: strings.TrimRight(storefrontURL, "/")}
}

func (s *NotificationService) SendOrderConfirmation(c context.Context, param request.OrderConfirmation) error {
	c, span := otel.Tracer.Start(c, "NotificationService SendOrderConfirmation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NotificationService SendOrderConfirmation").
		Str(log.KeyProcess, "sending order confirmation").
		Str(log.KeyOrderID, param.OrderID).
		Logger()

	logger.Info().Msg("sending order confirmation")
	c = logger.WithContext(c)
	err := s.mailer.Send(c, mailer.Message{
		From:    s.from,
		To:      []string{param.CustomerEmail},
		Subject: "Order Confirmation #" + OrderNumber(param.OrderID),
		Body:    ConfirmationBody(param),
	})
	if err != nil {
		err = fmt.Errorf("failed sending order confirmation with error=%w", err)
		metrics.NotificationsSent.WithLabelValues(kindConfirmation, resultFailed).Inc()
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	metrics.NotificationsSent.WithLabelValues(kindConfirmation, resultSent).Inc()
	logger.Info().Msg("sent order confirmation")
	return nil
}

func (s *NotificationService) SendStatusUpdate(c context.Context, param request.StatusUpdate) error {
	c, span := otel.Tracer.Start(c, "NotificationService SendStatusUpdate")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NotificationService SendStatusUpdate").
		Str(log.KeyProcess, "sending status update").
		Str(log.KeyOrderID, param.OrderID).
		Str(log.KeyOrderStatus, param.Status).
		Logger()

	label := param.StatusLabel
	if label == "" {
		label = param.Status
	}

	logger.Info().Msg("sending status update")
	c = logger.WithContext(c)
	err := s.mailer.Send(c, mailer.Message{
		From:    s.from,
		To:      []string{param.CustomerEmail},
		Subject: "Order Update: " + label,
		Body:    s.StatusBody(param, label),
	})
	if err != nil {
		err = fmt.Errorf("failed sending status update with error=%w", err)
		metrics.NotificationsSent.WithLabelValues(kindStatus, resultFailed).Inc()
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	metrics.NotificationsSent.WithLabelValues(kindStatus, resultSent).Inc()
	logger.Info().Msg("sent status update")
	return nil
}

// OrderNumber is the customer facing short form of an order id.
func OrderNumber(orderID string) string {
	if len(orderID) > 8 {
		orderID = orderID[:8]
	}
	return strings.ToUpper(orderID)
}

func formatCurrency(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

func ConfirmationBody(param request.OrderConfirmation) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "Thank you for your order, %s!\n\n", param.CustomerName)
	b.WriteString("We've received your order and are preparing it with care. Each piece is handcrafted, ")
	b.WriteString("so please allow 2-3 weeks for your order to be completed and shipped.\n\n")
	fmt.Fprintf(&b, "Order Number: %s\n\n", OrderNumber(param.OrderID))

	b.WriteString("Order Details\n")
	for _, item := range param.OrderItems {
		name := item.ProductName
		if item.Size != "" {
			name += " (" + item.Size + ")"
		}
		lineTotal := item.ProductPrice.Mul(decimal.NewFromInt32(item.Quantity))
		fmt.Fprintf(&b, "- %s x %d = %s\n", name, item.Quantity, formatCurrency(lineTotal))
	}

	shipping := formatCurrency(param.ShippingCost)
	if param.ShippingCost.IsZero() {
		shipping = "Free"
	}
	fmt.Fprintf(&b, "\nSubtotal: %s\n", formatCurrency(param.Subtotal))
	fmt.Fprintf(&b, "Shipping: %s\n", shipping)
	fmt.Fprintf(&b, "Total: %s\n\n", formatCurrency(param.Total))

	b.WriteString("Shipping Address\n")
	fmt.Fprintf(&b, "%s\n%s\n", param.CustomerName, param.ShippingAddress)
	fmt.Fprintf(&b, "%s, %s %s\n%s\n", param.ShippingCity, param.ShippingState, param.ShippingZip, param.ShippingCountry)
	return b.String()
}

func (s *NotificationService) StatusBody(param request.StatusUpdate, label string) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "Hello %s,\n\n", param.CustomerName)
	fmt.Fprintf(&b, "Status: %s\n\n", label)
	fmt.Fprintf(&b, "%s\n\n", StatusMessage(param.Status))
	fmt.Fprintf(&b, "Order Number: %s\n\n", OrderNumber(param.OrderID))
	fmt.Fprintf(&b, "Track your order: %s/track?order=%s\n", s.storefrontURL, url.QueryEscape(param.OrderID))
	return b.String()
}
