package controller

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/nayarn/admin/internal/otel"
	"github.com/Alturino/nayarn/admin/internal/service"
	"github.com/Alturino/nayarn/admin/pkg/request"
	inHttp "github.com/Alturino/nayarn/internal/http"
	"github.com/Alturino/nayarn/internal/log"
	inOtel "github.com/Alturino/nayarn/internal/otel"
	"github.com/Alturino/nayarn/internal/validate"
)

type AdminController struct {
	service  *service.AdminService
	validate *validator.Validate
}

func AttachAdminController(mux *mux.Router, service *service.AdminService) {
	router := mux.PathPrefix("/auth").Subrouter()

	controller := AdminController{service: service, validate: validate.New()}
	router.HandleFunc("/login", controller.Login).Methods(http.MethodPost)
}

func (ctrl AdminController) Login(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminController Login").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Trace().Msg("validating request body")
	reqBody := request.LoginRequest{}
	if err := inHttp.DecodeAndValidate(r, ctrl.validate, &reqBody, request.ValidationMessages); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger = logger.With().Object(log.KeyRequestBody, reqBody).Logger()
	logger.Trace().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "login").Logger()
	logger.Info().Msg("login")
	c = logger.WithContext(c)
	token, err := ctrl.service.Login(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed login with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("login success")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusOK, "login success", map[string]interface{}{
		"token": token,
	})
}
