// Package status enumerates order states. Any state may follow any other.
package status

import (
	"fmt"

	inErrors "github.com/Alturino/nayarn/internal/errors"
)

type Status string

const (
	Pending    Status = "pending"
	Confirmed  Status = "confirmed"
	Processing Status = "processing"
	Shipped    Status = "shipped"
	Delivered  Status = "delivered"
	Cancelled  Status = "cancelled"
)

var All = []Status{Pending, Confirmed, Processing, Shipped, Delivered, Cancelled}

var labels = map[Status]string{
	Pending:    "Pending",
	Confirmed:  "Confirmed",
	Processing: "Processing",
	Shipped:    "Shipped",
	Delivered:  "Delivered",
	Cancelled:  "Cancelled",
}

func (s Status) Label() string {
	if label, ok := labels[s]; ok {
		return label
	}
	return string(s)
}

func (s Status) Valid() bool {
	_, ok := labels[s]
	return ok
}

func Parse(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("status=%s: %w", raw, inErrors.ErrInvalidStatus)
	}
	return s, nil
}
