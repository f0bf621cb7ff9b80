package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/nayarn/cart/pkg/session"
	"github.com/Alturino/nayarn/cart/pkg/store"
	"github.com/Alturino/nayarn/checkout/internal/otel"
	"github.com/Alturino/nayarn/checkout/internal/service"
	"github.com/Alturino/nayarn/checkout/pkg/request"
	inErrors "github.com/Alturino/nayarn/internal/errors"
	inHttp "github.com/Alturino/nayarn/internal/http"
	"github.com/Alturino/nayarn/internal/log"
	inOtel "github.com/Alturino/nayarn/internal/otel"
)

type CheckoutController struct {
	service  *service.CheckoutService
	sessions *session.Registry
}

func AttachCheckoutController(
	mux *mux.Router,
	service *service.CheckoutService,
	sessions *session.Registry,
) {
	controller := CheckoutController{service: service, sessions: sessions}

	router := mux.PathPrefix("/checkout").Subrouter()
	router.HandleFunc("", controller.Checkout).Methods(http.MethodPost)
}

func (ctrl CheckoutController) Checkout(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController Checkout")
	defer span.End()

	id := r.Header.Get(inHttp.KeyHeaderCartSession)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutController Checkout").
		Str(log.KeySessionID, id).
		Logger()

	if id == "" {
		err := fmt.Errorf("failed finding cart session with error=%w", inErrors.ErrMissingSession)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, nil, err)
		return
	}
	header := map[string]string{inHttp.KeyHeaderCartSession: id}

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	reqBody := request.CheckoutForm{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", &inErrors.ValidationError{
			Fields: map[string]string{"body": fmt.Sprintf("malformed json: %s", err.Error())},
		})
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, header, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	cart, ok := ctrl.sessions.Lookup(id)
	if !ok {
		cart = store.New()
	}

	logger = logger.With().Str(log.KeyProcess, "checking out").Logger()
	logger.Info().Msg("checking out")
	c = logger.WithContext(c)
	result, err := ctrl.service.Checkout(c, cart, reqBody)
	if err != nil {
		err = fmt.Errorf("failed checking out with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, header, err)
		return
	}
	logger.Info().Str(log.KeyOrderID, result.Order.ID.String()).Msg("checked out")

	inHttp.WriteSuccess(c, w, header, http.StatusCreated, "order placed", map[string]interface{}{
		"order":    result.Order.Response(),
		"redirect": result.Redirect,
	})
}
