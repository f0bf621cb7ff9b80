package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	inErrors "github.com/Alturino/nayarn/internal/errors"
)

// PathUUID parses the named mux path variable.
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, &inErrors.ValidationError{
			Fields: map[string]string{name: "must be a valid uuid"},
		}
	}
	return id, nil
}

// DecodeAndValidate decodes the json body into dst and validates it. Failures
// come back as *errors.ValidationError.
func DecodeAndValidate(
	r *http.Request,
	validate *validator.Validate,
	dst interface{},
	messages map[string]string,
) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &inErrors.ValidationError{
			Fields: map[string]string{"body": fmt.Sprintf("malformed json: %s", err.Error())},
		}
	}
	if err := validate.StructCtx(r.Context(), dst); err != nil {
		return inErrors.NewValidationError(err, messages)
	}
	return nil
}
