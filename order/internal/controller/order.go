package controller

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/nayarn/internal/errors"
	inHttp "github.com/Alturino/nayarn/internal/http"
	"github.com/Alturino/nayarn/internal/log"
	inOtel "github.com/Alturino/nayarn/internal/otel"
	"github.com/Alturino/nayarn/internal/validate"
	"github.com/Alturino/nayarn/order/internal/otel"
	"github.com/Alturino/nayarn/order/internal/service"
	"github.com/Alturino/nayarn/order/pkg/request"
)

type OrderController struct {
	service  *service.OrderService
	validate *validator.Validate
}

// AttachOrderController mounts the order confirmation lookup on router and
// order management on admin.
func AttachOrderController(router *mux.Router, admin *mux.Router, service *service.OrderService) {
	controller := OrderController{service: service, validate: validate.New()}

	orderRouter := router.PathPrefix("/orders").Subrouter()
	orderRouter.HandleFunc("/track", controller.TrackOrder).Methods(http.MethodGet)
	orderRouter.HandleFunc("/{orderId}", controller.FindConfirmation).Methods(http.MethodGet)

	adminOrders := admin.PathPrefix("/orders").Subrouter()
	adminOrders.HandleFunc("", controller.ListOrders).Methods(http.MethodGet)
	adminOrders.HandleFunc("/summary", controller.Summary).Methods(http.MethodGet)
	adminOrders.HandleFunc("/{orderId}", controller.FindOrderById).Methods(http.MethodGet)
	adminOrders.HandleFunc("/{orderId}/status", controller.UpdateStatus).Methods(http.MethodPut)
}

func (ctrl OrderController) FindConfirmation(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindConfirmation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindConfirmation").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating orderId").Logger()
	logger.Trace().Msg("validating orderId")
	id, err := inHttp.PathUUID(r, "orderId")
	if err != nil {
		err = fmt.Errorf("failed validating orderId with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger = logger.With().Str(log.KeyOrderID, id.String()).Logger()
	logger.Trace().Msg("validated orderId")

	logger = logger.With().Str(log.KeyProcess, "finding order confirmation").Logger()
	logger.Info().Msg("finding order confirmation")
	c = logger.WithContext(c)
	order, err := ctrl.service.FindConfirmation(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding order confirmation with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("found order confirmation")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusOK, "found order", map[string]interface{}{
		"order": order,
	})
}

// TrackOrder answers 404 for any lookup that does not resolve, malformed
// queries included.
func (ctrl OrderController) TrackOrder(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController TrackOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController TrackOrder").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating query").Logger()
	logger.Trace().Msg("validating query")
	param := request.TrackOrder{
		OrderNumber: r.URL.Query().Get("order"),
		Email:       r.URL.Query().Get("email"),
	}
	if err := ctrl.validate.StructCtx(c, param); err != nil {
		err = fmt.Errorf("failed validating query error=%s with error=%w", err.Error(), inErrors.ErrNotFound)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Trace().Msg("validated query")

	logger = logger.With().Str(log.KeyProcess, "tracking order").Logger()
	logger.Info().Msg("tracking order")
	c = logger.WithContext(c)
	order, err := ctrl.service.TrackOrder(c, param)
	if err != nil {
		err = fmt.Errorf("failed tracking order with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("tracked order")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusOK, "found order", map[string]interface{}{
		"order": order,
	})
}

// ListOrders accepts ?status= (a state or "all") and ?search= over id, name
// and email.
func (ctrl OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController ListOrders")
	defer span.End()

	param := request.ListOrders{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController ListOrders").
		Str(log.KeyProcess, "listing orders").
		Str(log.KeyOrderStatus, param.Status).
		Logger()

	logger.Info().Msg("listing orders")
	c = logger.WithContext(c)
	orders, err := ctrl.service.ListOrders(c, param)
	if err != nil {
		err = fmt.Errorf("failed listing orders with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Int(log.KeyOrders, len(orders)).Msg("listed orders")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusOK, "found orders", map[string]interface{}{
		"orders": orders,
	})
}

func (ctrl OrderController) Summary(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController Summary")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController Summary").
		Str(log.KeyProcess, "summarizing orders").
		Logger()

	logger.Info().Msg("summarizing orders")
	c = logger.WithContext(c)
	summary, err := ctrl.service.Summary(c)
	if err != nil {
		err = fmt.Errorf("failed summarizing orders with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Int64("total", summary.Total).Msg("summarized orders")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusOK, "summarized orders", map[string]interface{}{
		"summary": summary,
	})
}

func (ctrl OrderController) FindOrderById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrderById").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating orderId").Logger()
	logger.Trace().Msg("validating orderId")
	id, err := inHttp.PathUUID(r, "orderId")
	if err != nil {
		err = fmt.Errorf("failed validating orderId with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger = logger.With().Str(log.KeyOrderID, id.String()).Logger()
	logger.Trace().Msg("validated orderId")

	logger = logger.With().Str(log.KeyProcess, "finding order by id").Logger()
	logger.Info().Msg("finding order by id")
	c = logger.WithContext(c)
	order, err := ctrl.service.FindOrderById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding order by id with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("found order by id")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusOK, "found order", map[string]interface{}{
		"order": order,
	})
}

func (ctrl OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController UpdateStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController UpdateStatus").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating orderId").Logger()
	logger.Trace().Msg("validating orderId")
	id, err := inHttp.PathUUID(r, "orderId")
	if err != nil {
		err = fmt.Errorf("failed validating orderId with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger = logger.With().Str(log.KeyOrderID, id.String()).Logger()
	logger.Trace().Msg("validated orderId")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Trace().Msg("validating request body")
	reqBody := request.UpdateOrderStatus{}
	if err := inHttp.DecodeAndValidate(r, ctrl.validate, &reqBody, request.ValidationMessages); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Trace().Msg("validated request body")

	logger = logger.With().
		Str(log.KeyProcess, "updating order status").
		Str(log.KeyOrderStatus, reqBody.Status).
		Logger()
	logger.Info().Msg("updating order status")
	c = logger.WithContext(c)
	order, err := ctrl.service.UpdateStatus(c, id, reqBody)
	if err != nil {
		err = fmt.Errorf("failed updating order status with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("updated order status")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusOK, "updated order status", map[string]interface{}{
		"order": order,
	})
}
