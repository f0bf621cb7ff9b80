package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/Alturino/nayarn/internal/constants"
)

var Tracer = otel.Tracer(constants.APP_NAYARN)
