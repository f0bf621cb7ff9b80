package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/nayarn/cart/pkg/store"
	"github.com/Alturino/nayarn/checkout/internal/otel"
	"github.com/Alturino/nayarn/checkout/pkg/request"
	"github.com/Alturino/nayarn/checkout/pkg/shipping"
	inErrors "github.com/Alturino/nayarn/internal/errors"
	inHttp "github.com/Alturino/nayarn/internal/http"
	"github.com/Alturino/nayarn/internal/log"
	"github.com/Alturino/nayarn/internal/metrics"
	inOtel "github.com/Alturino/nayarn/internal/otel"
	"github.com/Alturino/nayarn/internal/repository"
	notificationRequest "github.com/Alturino/nayarn/notification/pkg/request"
)

const (
	outcomeCreated   = "created"
	outcomeInvalid   = "invalid"
	outcomeEmptyCart = "empty_cart"
	outcomeFailed    = "failed"
	stepOrderItems   = "order_items"
	stepNotification = "notification"
)

// OrderWriter is satisfied by *repository.Queries.
type OrderWriter interface {
	InsertOrder(c context.Context, arg repository.InsertOrderParams) (repository.Order, error)
	InsertOrderItems(c context.Context, args []repository.InsertOrderItemParams) (int64, error)
}

type Notifier interface {
	SendOrderConfirmation(c context.Context, param notificationRequest.OrderConfirmation) error
}

// StepOutcome is the result of a step that may fail without aborting the
// checkout. A nil Err means the step succeeded.
type StepOutcome struct {
	Err error
}

func (o StepOutcome) Ok() bool {
	return o.Err == nil
}

func (o StepOutcome) Logged() bool {
	return o.Err != nil
}

type Result struct {
	Order        repository.Order
	Redirect     string
	ItemsWrite   StepOutcome
	Notification StepOutcome
}

type CheckoutService struct {
	orders   OrderWriter
	notifier Notifier
	policy   shipping.Policy
	validate *validator.Validate
}

func NewCheckoutService(
	orders OrderWriter,
	notifier Notifier,
	policy shipping.Policy,
	validate *validator.Validate,
) *CheckoutService {
	return &CheckoutService{orders: orders, notifier: notifier, policy: policy, validate: validate}
}

// Checkout turns cart and form into an order. Only the header write is fatal;
// the cart is cleared once the header exists.
func (s *CheckoutService) Checkout(
	c context.Context,
	cart *store.Store,
	form request.CheckoutForm,
) (Result, error) {
	c, span := otel.Tracer.Start(c, "CheckoutService Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutService Checkout").
		Str(log.KeyEmail, form.CustomerEmail).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating checkout form").Logger()
	logger.Trace().Msg("validating checkout form")
	if err := s.validate.StructCtx(c, form); err != nil {
		err = fmt.Errorf(
			"failed validating checkout form with error=%w",
			inErrors.NewValidationError(err, request.ValidationMessages),
		)
		metrics.Checkouts.WithLabelValues(outcomeInvalid).Inc()
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Result{}, err
	}
	logger.Trace().Msg("validated checkout form")

	lines := cart.Lines()
	if len(lines) == 0 {
		err := fmt.Errorf("failed checking out with error=%w", inErrors.ErrEmptyCart)
		metrics.Checkouts.WithLabelValues(outcomeEmptyCart).Inc()
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Result{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "pricing order").Logger()
	subtotal := store.TotalPrice(lines)
	shippingCost := s.policy.Cost(subtotal)
	total := subtotal.Add(shippingCost)
	logger = logger.With().
		Stringer(log.KeySubtotal, subtotal).
		Stringer(log.KeyShippingCost, shippingCost).
		Stringer(log.KeyTotal, total).
		Logger()
	logger.Info().Msg("priced order")

	snapshots := snapshot(lines)

	logger = logger.With().Str(log.KeyProcess, "inserting order").Logger()
	logger.Info().Msg("inserting order")
	c = logger.WithContext(c)
	order, err := s.orders.InsertOrder(c, repository.InsertOrderParams{
		CustomerName:    form.CustomerName,
		CustomerEmail:   form.CustomerEmail,
		CustomerPhone:   optional(form.CustomerPhone),
		ShippingAddress: form.ShippingAddress,
		ShippingCity:    form.ShippingCity,
		ShippingState:   form.ShippingState,
		ShippingZip:     form.ShippingZip,
		ShippingCountry: form.ShippingCountry,
		OrderItems:      snapshots,
		Subtotal:        subtotal,
		ShippingCost:    shippingCost,
		Total:           total,
		Notes:           optional(form.Notes),
	})
	if err != nil {
		err = fmt.Errorf("failed inserting order with error=%w: %w", inErrors.ErrOrderCreation, err)
		metrics.Checkouts.WithLabelValues(outcomeFailed).Inc()
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Result{}, err
	}
	logger = logger.With().Str(log.KeyOrderID, order.ID.String()).Logger()
	logger.Info().Msg("inserted order")
	c = logger.WithContext(c)

	result := Result{
		Order:    order,
		Redirect: fmt.Sprintf(inHttp.OrderConfirmationPathFmt, order.ID),
	}
	result.ItemsWrite = s.insertOrderItems(c, order.ID, snapshots)
	result.Notification = s.notify(c, order)

	cart.Consume(lines)
	metrics.Checkouts.WithLabelValues(outcomeCreated).Inc()
	logger.Info().
		Bool("itemsWritten", result.ItemsWrite.Ok()).
		Bool("notified", result.Notification.Ok()).
		Msg("checked out")

	return result, nil
}

func (s *CheckoutService) insertOrderItems(
	c context.Context,
	orderID uuid.UUID,
	snapshots []repository.OrderItemSnapshot,
) StepOutcome {
	c, span := otel.Tracer.Start(c, "CheckoutService insertOrderItems")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutService insertOrderItems").
		Str(log.KeyProcess, "inserting order items").
		Int(log.KeyOrderItems, len(snapshots)).
		Logger()

	args := make([]repository.InsertOrderItemParams, 0, len(snapshots))
	for _, item := range snapshots {
		arg := repository.InsertOrderItemParams{
			OrderID:            orderID,
			ProductName:        item.ProductName,
			ProductPrice:       item.ProductPrice,
			Quantity:           item.Quantity,
			Size:               item.Size,
			CustomMeasurements: item.CustomMeasurements,
		}
		if id, err := uuid.Parse(item.ProductID); err == nil {
			arg.ProductID = &id
		}
		args = append(args, arg)
	}

	logger.Info().Msg("inserting order items")
	n, err := s.orders.InsertOrderItems(c, args)
	if err == nil && n != int64(len(args)) {
		err = fmt.Errorf("copied %d of %d rows", n, len(args))
	}
	if err != nil {
		err = fmt.Errorf(
			"failed inserting order items with error=%w: %w",
			inErrors.ErrOrderItemsWrite,
			err,
		)
		metrics.NonFatalFailures.WithLabelValues(stepOrderItems).Inc()
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return StepOutcome{Err: err}
	}
	logger.Info().Msg("inserted order items")

	return StepOutcome{}
}

func (s *CheckoutService) notify(c context.Context, order repository.Order) StepOutcome {
	c, span := otel.Tracer.Start(c, "CheckoutService notify")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutService notify").
		Str(log.KeyProcess, "sending order confirmation").
		Logger()

	items := make([]notificationRequest.OrderItem, 0, len(order.OrderItems))
	for _, i := range order.OrderItems {
		items = append(items, notificationRequest.OrderItem{
			ProductName:  i.ProductName,
			ProductPrice: i.ProductPrice,
			Quantity:     i.Quantity,
			Size:         i.Size,
		})
	}

	logger.Info().Msg("sending order confirmation")
	err := s.notifier.SendOrderConfirmation(c, notificationRequest.OrderConfirmation{
		OrderID:         order.ID.String(),
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		OrderItems:      items,
		Subtotal:        order.Subtotal,
		ShippingCost:    order.ShippingCost,
		Total:           order.Total,
		ShippingAddress: order.ShippingAddress,
		ShippingCity:    order.ShippingCity,
		ShippingState:   order.ShippingState,
		ShippingZip:     order.ShippingZip,
		ShippingCountry: order.ShippingCountry,
	})
	if err != nil {
		if !errors.Is(err, inErrors.ErrNotificationDispatch) {
			err = fmt.Errorf("%w: %w", inErrors.ErrNotificationDispatch, err)
		}
		err = fmt.Errorf("failed sending order confirmation with error=%w", err)
		metrics.NonFatalFailures.WithLabelValues(stepNotification).Inc()
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return StepOutcome{Err: err}
	}
	logger.Info().Msg("sent order confirmation")

	return StepOutcome{}
}

func snapshot(lines []store.Line) []repository.OrderItemSnapshot {
	items := make([]repository.OrderItemSnapshot, 0, len(lines))
	for _, l := range lines {
		items = append(items, repository.OrderItemSnapshot{
			ProductID:          l.ProductID,
			ProductName:        l.Name,
			ProductPrice:       l.UnitPrice,
			Quantity:           int32(l.Quantity),
			Size:               l.Size,
			CustomMeasurements: l.CustomMeasurements,
		})
	}
	return items
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
