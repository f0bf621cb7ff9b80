package controller

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/nayarn/cart/internal/otel"
	"github.com/Alturino/nayarn/cart/internal/service"
	"github.com/Alturino/nayarn/cart/pkg/request"
	"github.com/Alturino/nayarn/cart/pkg/session"
	inErrors "github.com/Alturino/nayarn/internal/errors"
	inHttp "github.com/Alturino/nayarn/internal/http"
	"github.com/Alturino/nayarn/internal/log"
	inOtel "github.com/Alturino/nayarn/internal/otel"
	"github.com/Alturino/nayarn/internal/validate"
)

type CartController struct {
	service  *service.CartService
	validate *validator.Validate
}

func AttachCartController(mux *mux.Router, service *service.CartService) {
	controller := CartController{service: service, validate: validate.New()}

	router := mux.PathPrefix("/cart").Subrouter()
	router.HandleFunc("", controller.FindCart).Methods(http.MethodGet)
	router.HandleFunc("", controller.ClearCart).Methods(http.MethodDelete)
	router.HandleFunc("/items", controller.AddCartItem).Methods(http.MethodPost)
	router.HandleFunc("/items", controller.UpdateCartItem).Methods(http.MethodPut)
	router.HandleFunc("/items", controller.RemoveCartItem).Methods(http.MethodDelete)
	router.HandleFunc("/session", controller.EndSession).Methods(http.MethodDelete)
}

// sessionID returns the caller's cart session, starting one when the header
// is absent. The id is always echoed back.
func sessionID(r *http.Request) (string, map[string]string) {
	id := r.Header.Get(inHttp.KeyHeaderCartSession)
	if id == "" {
		id = session.NewSessionID()
	}
	return id, map[string]string{inHttp.KeyHeaderCartSession: id}
}

func (ctrl CartController) FindCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCart")
	defer span.End()

	id, header := sessionID(r)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController FindCart").
		Str(log.KeyProcess, "finding cart").
		Str(log.KeySessionID, id).
		Logger()

	logger.Info().Msg("finding cart")
	c = logger.WithContext(c)
	cart := ctrl.service.FindCart(c, id)
	logger.Info().Int(log.KeyCartLines, len(cart.Lines)).Msg("found cart")

	inHttp.WriteSuccess(c, w, header, http.StatusOK, "found cart", map[string]interface{}{
		"cart": cart,
	})
}

func (ctrl CartController) AddCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddCartItem")
	defer span.End()

	id, header := sessionID(r)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddCartItem").
		Str(log.KeySessionID, id).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Trace().Msg("validating request body")
	reqBody := request.AddCartItem{Quantity: 1}
	if err := inHttp.DecodeAndValidate(r, ctrl.validate, &reqBody, request.ValidationMessages); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, header, err)
		return
	}
	logger.Trace().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "adding cart item").Logger()
	logger.Info().Msg("adding cart item")
	c = logger.WithContext(c)
	res, cart, err := ctrl.service.AddCartItem(c, id, reqBody)
	if err != nil {
		err = fmt.Errorf("failed adding cart item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, header, err)
		return
	}
	logger.Info().Msg("added cart item")

	inHttp.WriteSuccess(c, w, header, http.StatusOK, res.Message, map[string]interface{}{
		"outcome": res.Outcome,
		"line":    res.Line,
		"cart":    cart,
	})
}

func (ctrl CartController) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController UpdateCartItem")
	defer span.End()

	id, header := sessionID(r)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController UpdateCartItem").
		Str(log.KeySessionID, id).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Trace().Msg("validating request body")
	reqBody := request.UpdateCartItem{}
	if err := inHttp.DecodeAndValidate(r, ctrl.validate, &reqBody, request.ValidationMessages); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, header, err)
		return
	}
	logger.Trace().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "updating cart item").Logger()
	logger.Info().Msg("updating cart item")
	c = logger.WithContext(c)
	cart, err := ctrl.service.UpdateCartItem(c, id, reqBody)
	if err != nil {
		err = fmt.Errorf("failed updating cart item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, header, err)
		return
	}
	logger.Info().Msg("updated cart item")

	inHttp.WriteSuccess(c, w, header, http.StatusOK, "updated cart item", map[string]interface{}{
		"cart": cart,
	})
}

func (ctrl CartController) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveCartItem")
	defer span.End()

	id, header := sessionID(r)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveCartItem").
		Str(log.KeySessionID, id).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Trace().Msg("validating request body")
	reqBody := request.RemoveCartItem{}
	if err := inHttp.DecodeAndValidate(r, ctrl.validate, &reqBody, request.ValidationMessages); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, header, err)
		return
	}
	logger.Trace().Msg("validated request body")

	c = logger.WithContext(c)
	cart := ctrl.service.RemoveCartItem(c, id, reqBody)

	inHttp.WriteSuccess(c, w, header, http.StatusOK, "removed cart item", map[string]interface{}{
		"cart": cart,
	})
}

func (ctrl CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ClearCart")
	defer span.End()

	id, header := sessionID(r)
	c = zerolog.Ctx(c).With().Str(log.KeyTag, "CartController ClearCart").Logger().WithContext(c)
	cart := ctrl.service.ClearCart(c, id)

	inHttp.WriteSuccess(c, w, header, http.StatusOK, "cleared cart", map[string]interface{}{
		"cart": cart,
	})
}

func (ctrl CartController) EndSession(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController EndSession")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController EndSession").
		Logger()

	id := r.Header.Get(inHttp.KeyHeaderCartSession)
	if id == "" {
		err := fmt.Errorf("failed ending cart session with error=%w", inErrors.ErrMissingSession)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}

	c = logger.WithContext(c)
	ended := ctrl.service.EndSession(c, id)

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusOK, "ended cart session", map[string]interface{}{
		"sessionId": id,
		"ended":     ended,
	})
}
