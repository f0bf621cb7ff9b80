package otel

import (
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	inErrors "github.com/Alturino/nayarn/internal/errors"
)

// RecordError marks span as failed. Client mistakes (validation, not found)
// are recorded as events only so they do not show up as server errors.
func RecordError(err error, span trace.Span) {
	if err == nil {
		return
	}
	span.SetAttributes(attribute.String("error.type", errorType(err)))
	span.RecordError(err)

	var validationErr *inErrors.ValidationError
	if errors.As(err, &validationErr) || errors.Is(err, inErrors.ErrNotFound) {
		return
	}
	span.SetStatus(codes.Error, err.Error())
}

func errorType(err error) string {
	var validationErr *inErrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return "validation"
	case errors.Is(err, inErrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, inErrors.ErrEmptyAuth), errors.Is(err, inErrors.ErrTokenInvalid),
		errors.Is(err, inErrors.ErrInvalidCredentials):
		return "auth"
	default:
		return "internal"
	}
}
