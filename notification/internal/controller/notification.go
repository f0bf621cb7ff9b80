package controller

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inHttp "github.com/Alturino/nayarn/internal/http"
	"github.com/Alturino/nayarn/internal/log"
	inOtel "github.com/Alturino/nayarn/internal/otel"
	"github.com/Alturino/nayarn/internal/validate"
	"github.com/Alturino/nayarn/notification/internal/otel"
	"github.com/Alturino/nayarn/notification/internal/service"
	"github.com/Alturino/nayarn/notification/pkg/client"
	"github.com/Alturino/nayarn/notification/pkg/request"
)

var validationMessages = map[string]string{
	"orderId":       "orderId is required",
	"customerName":  "customerName is required",
	"customerEmail": "customerEmail must be a valid email",
	"status":        "status is required",
	"orderItems":    "orderItems must not be empty",
}

type NotificationController struct {
	service  *service.NotificationService
	validate *validator.Validate
}

func AttachNotificationController(mux *mux.Router, service *service.NotificationService) {
	controller := NotificationController{service: service, validate: validate.New()}

	mux.HandleFunc(client.PathOrderConfirmation, controller.SendOrderConfirmation).Methods(http.MethodPost)
	mux.HandleFunc(client.PathOrderStatus, controller.SendStatusUpdate).Methods(http.MethodPost)
}

func (ctrl NotificationController) SendOrderConfirmation(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "NotificationController SendOrderConfirmation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NotificationController SendOrderConfirmation").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Trace().Msg("validating request body")
	reqBody := request.OrderConfirmation{}
	if err := inHttp.DecodeAndValidate(r, ctrl.validate, &reqBody, validationMessages); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Trace().Msg("validated request body")

	logger = logger.With().
		Str(log.KeyProcess, "sending order confirmation").
		Str(log.KeyOrderID, reqBody.OrderID).
		Logger()
	logger.Info().Msg("sending order confirmation")
	c = logger.WithContext(c)
	if err := ctrl.service.SendOrderConfirmation(c, reqBody); err != nil {
		err = fmt.Errorf("failed sending order confirmation with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("sent order confirmation")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusOK, "sent order confirmation", map[string]interface{}{
		"orderId": reqBody.OrderID,
	})
}

func (ctrl NotificationController) SendStatusUpdate(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "NotificationController SendStatusUpdate")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NotificationController SendStatusUpdate").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Trace().Msg("validating request body")
	reqBody := request.StatusUpdate{}
	if err := inHttp.DecodeAndValidate(r, ctrl.validate, &reqBody, validationMessages); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Trace().Msg("validated request body")

	logger = logger.With().
		Str(log.KeyProcess, "sending status update").
		Str(log.KeyOrderID, reqBody.OrderID).
		Str(log.KeyOrderStatus, reqBody.Status).
		Logger()
	logger.Info().Msg("sending status update")
	c = logger.WithContext(c)
	if err := ctrl.service.SendStatusUpdate(c, reqBody); err != nil {
		err = fmt.Errorf("failed sending status update with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("sent status update")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusOK, "sent status update", map[string]interface{}{
		"orderId": reqBody.OrderID,
	})
}
