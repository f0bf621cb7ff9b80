package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/nayarn/internal/errors"
	"github.com/Alturino/nayarn/internal/otel"
)

func WriteJsonResponse(
	c context.Context,
	w http.ResponseWriter,
	header map[string]string,
	body map[string]interface{},
) {
	c, span := otel.Tracer.Start(c, "WriteJsonResponse")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str("tag", "WriteJsonResponse").Logger()

	w.Header().Set(KeyHeaderContentType, ValueHeaderJson)
	for k, v := range header {
		w.Header().Set(k, v)
	}

	if v, ok := body["statusCode"].(int); ok {
		w.WriteHeader(v)
	}

	if err := json.NewEncoder(w).Encode(body); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
}

// WriteError writes the failed envelope with the status matching err.
func WriteError(c context.Context, w http.ResponseWriter, header map[string]string, err error) {
	statusCode := StatusCodeFromError(err)
	body := map[string]interface{}{
		"status":     StatusFailed,
		"statusCode": statusCode,
		"message":    err.Error(),
	}
	var ve *inErrors.ValidationError
	if errors.As(err, &ve) {
		body["message"] = "validation failed"
		body["errors"] = ve.Fields
	}
	WriteJsonResponse(c, w, header, body)
}

func StatusCodeFromError(err error) int {
	var ve *inErrors.ValidationError
	switch {
	case errors.As(err, &ve),
		errors.Is(err, inErrors.ErrEmptyCart),
		errors.Is(err, inErrors.ErrInvalidStatus),
		errors.Is(err, inErrors.ErrMissingSession):
		return http.StatusBadRequest
	case errors.Is(err, inErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, inErrors.ErrEmptyAuth),
		errors.Is(err, inErrors.ErrTokenInvalid),
		errors.Is(err, inErrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func WriteSuccess(
	c context.Context,
	w http.ResponseWriter,
	header map[string]string,
	statusCode int,
	message string,
	data map[string]interface{},
) {
	WriteJsonResponse(c, w, header, map[string]interface{}{
		"status":     StatusSuccess,
		"statusCode": statusCode,
		"message":    message,
		"data":       data,
	})
}
