package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrEmptyAuth            = errors.New("missing authorization")
	ErrTokenInvalid         = errors.New("invalid token")
	ErrNotFound             = errors.New("resource not found")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrOrderCreation        = errors.New("failed creating order")
	ErrOrderItemsWrite      = errors.New("failed writing order items")
	ErrNotificationDispatch = errors.New("failed dispatching notification")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrMissingSession       = errors.New("missing cart session")
	ErrInvalidCredentials   = errors.New("invalid email or password")
)

// ValidationError maps a json field name to the message shown next to it.
type ValidationError struct {
	Fields map[string]string
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, v.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// NewValidationError converts validator output into a ValidationError. Errors
// that are not validator.ValidationErrors are returned unchanged.
func NewValidationError(err error, messages map[string]string) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		field := fe.Field()
		if msg, ok := messages[field+"."+fe.Tag()]; ok {
			fields[field] = msg
			continue
		}
		if msg, ok := messages[field]; ok {
			fields[field] = msg
			continue
		}
		fields[field] = fmt.Sprintf("failed on %s validation", fe.Tag())
	}
	return &ValidationError{Fields: fields}
}
