package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/nayarn/internal/errors"
	"github.com/Alturino/nayarn/internal/log"
	"github.com/Alturino/nayarn/internal/metrics"
	inOtel "github.com/Alturino/nayarn/internal/otel"
	"github.com/Alturino/nayarn/internal/repository"
	notificationRequest "github.com/Alturino/nayarn/notification/pkg/request"
	"github.com/Alturino/nayarn/order/internal/otel"
	"github.com/Alturino/nayarn/order/pkg/request"
	"github.com/Alturino/nayarn/order/pkg/response"
	"github.com/Alturino/nayarn/order/pkg/status"
)

// StatusAll in a list filter means no status filter.
const StatusAll = "all"

// OrderStore is satisfied by *repository.Queries.
type OrderStore interface {
	FindOrderById(c context.Context, id uuid.UUID) (repository.Order, error)
	FindOrderByNumber(c context.Context, number string, email string) (repository.Order, error)
	FindOrderItemsByOrderId(c context.Context, orderID uuid.UUID) ([]repository.OrderItem, error)
	ListOrders(c context.Context, arg repository.ListOrdersParams) ([]repository.Order, error)
	UpdateOrderStatus(c context.Context, id uuid.UUID, status string) (repository.Order, error)
	CountOrdersByStatus(c context.Context) (map[string]int64, error)
}

type Notifier interface {
	SendStatusUpdate(c context.Context, param notificationRequest.StatusUpdate) error
}

type OrderService struct {
	queries  OrderStore
	notifier Notifier
}

func NewOrderService(queries OrderStore, notifier Notifier) *OrderService {
	return &OrderService{queries: queries, notifier: notifier}
}

// FindConfirmation is the storefront lookup shown after checkout.
func (s *OrderService) FindConfirmation(c context.Context, id uuid.UUID) (response.Confirmation, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindConfirmation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindConfirmation").
		Str(log.KeyProcess, "finding order by id").
		Str(log.KeyOrderID, id.String()).
		Logger()

	logger.Info().Msg("finding order by id")
	order, err := s.queries.FindOrderById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding order by id with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Confirmation{}, err
	}
	logger.Info().Msg("found order by id")

	return order.Confirmation(), nil
}

// TrackOrder never tells a wrong email apart from a missing order.
func (s *OrderService) TrackOrder(c context.Context, param request.TrackOrder) (response.Confirmation, error) {
	c, span := otel.Tracer.Start(c, "OrderService TrackOrder")
	defer span.End()

	number := strings.TrimPrefix(strings.TrimSpace(param.OrderNumber), "#")
	number = strings.ToLower(strings.TrimSpace(number))
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService TrackOrder").
		Str(log.KeyProcess, "finding order by number").
		Str("orderNumber", number).
		Logger()

	if len(number) < minOrderNumberLen || len(number) > maxOrderNumberLen ||
		strings.ContainsFunc(number, func(r rune) bool { return !isOrderNumberRune(r) }) {
		err := fmt.Errorf("failed finding order by number=%s with error=%w", number, inErrors.ErrNotFound)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Confirmation{}, err
	}

	logger.Info().Msg("finding order by number")
	order, err := s.queries.FindOrderByNumber(c, number, param.Email)
	if err != nil {
		err = fmt.Errorf("failed finding order by number with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Confirmation{}, err
	}
	logger.Info().Str(log.KeyOrderID, order.ID.String()).Msg("found order by number")

	return order.Confirmation(), nil
}

// An order number is a prefix of the order id, at least as long as the one
// printed in the confirmation email.
const (
	minOrderNumberLen = 8
	maxOrderNumberLen = 36
)

func isOrderNumberRune(r rune) bool {
	return r == '-' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'f')
}

// FindOrderById returns the header with its snapshot and the stored item rows.
func (s *OrderService) FindOrderById(c context.Context, id uuid.UUID) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrderById").
		Str(log.KeyOrderID, id.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding order by id").Logger()
	logger.Info().Msg("finding order by id")
	order, err := s.queries.FindOrderById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding order by id with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("found order by id")

	logger = logger.With().Str(log.KeyProcess, "finding order items by order id").Logger()
	logger.Info().Msg("finding order items by order id")
	items, err := s.queries.FindOrderItemsByOrderId(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding order items by order id with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Int(log.KeyOrderItems, len(items)).Msg("found order items by order id")

	res := order.Response()
	res.ItemRows = make([]response.OrderItem, 0, len(items))
	for _, i := range items {
		res.ItemRows = append(res.ItemRows, i.Response())
	}
	return res, nil
}

func (s *OrderService) ListOrders(c context.Context, param request.ListOrders) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService ListOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService ListOrders").
		Str(log.KeyOrderStatus, param.Status).
		Str("search", param.Search).
		Logger()

	arg := repository.ListOrdersParams{Search: param.Search}
	if param.Status != "" && param.Status != StatusAll {
		st, err := status.Parse(param.Status)
		if err != nil {
			err = fmt.Errorf("failed parsing status filter with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		filter := string(st)
		arg.Status = &filter
	}

	logger = logger.With().Str(log.KeyProcess, "listing orders").Logger()
	logger.Info().Msg("listing orders")
	orders, err := s.queries.ListOrders(c, arg)
	if err != nil {
		err = fmt.Errorf("failed listing orders with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int(log.KeyOrders, len(orders)).Msg("listed orders")

	res := make([]response.Order, 0, len(orders))
	for _, o := range orders {
		res = append(res, o.Response())
	}
	return res, nil
}

// UpdateStatus accepts any of the known states regardless of the current one.
// The customer notification is best effort and never fails the update.
func (s *OrderService) UpdateStatus(
	c context.Context,
	id uuid.UUID,
	param request.UpdateOrderStatus,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService UpdateStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService UpdateStatus").
		Str(log.KeyOrderID, id.String()).
		Str(log.KeyOrderStatus, param.Status).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing status").Logger()
	st, err := status.Parse(param.Status)
	if err != nil {
		err = fmt.Errorf("failed parsing status with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "updating order status").Logger()
	logger.Info().Msg("updating order status")
	order, err := s.queries.UpdateOrderStatus(c, id, string(st))
	if err != nil {
		err = fmt.Errorf("failed updating order status with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	metrics.StatusUpdates.WithLabelValues(string(st)).Inc()
	logger.Info().Msg("updated order status")

	c = logger.WithContext(c)
	s.notifyStatus(c, order, st)

	return order.Response(), nil
}

func (s *OrderService) notifyStatus(c context.Context, order repository.Order, st status.Status) {
	c, span := otel.Tracer.Start(c, "OrderService notifyStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService notifyStatus").
		Str(log.KeyProcess, "sending status update").
		Logger()

	logger.Info().Msg("sending status update")
	err := s.notifier.SendStatusUpdate(c, notificationRequest.StatusUpdate{
		OrderID:       order.ID.String(),
		CustomerEmail: order.CustomerEmail,
		CustomerName:  order.CustomerName,
		Status:        string(st),
		StatusLabel:   st.Label(),
	})
	if err != nil {
		err = fmt.Errorf("failed sending status update with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("sent status update")
}

func (s *OrderService) Summary(c context.Context) (response.Summary, error) {
	c, span := otel.Tracer.Start(c, "OrderService Summary")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService Summary").
		Str(log.KeyProcess, "counting orders by status").
		Logger()

	logger.Info().Msg("counting orders by status")
	counts, err := s.queries.CountOrdersByStatus(c)
	if err != nil {
		err = fmt.Errorf("failed counting orders by status with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Summary{}, err
	}
	logger.Info().Msg("counted orders by status")

	summary := response.Summary{ByStatus: make(map[string]int64, len(status.All))}
	for _, st := range status.All {
		summary.ByStatus[string(st)] = counts[string(st)]
		summary.Total += counts[string(st)]
	}
	return summary, nil
}
