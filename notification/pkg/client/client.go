// Package client calls the notification service from the shop.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	inErrors "github.com/Alturino/nayarn/internal/errors"
	inHttp "github.com/Alturino/nayarn/internal/http"
	"github.com/Alturino/nayarn/internal/log"
	inOtel "github.com/Alturino/nayarn/internal/otel"
	"github.com/Alturino/nayarn/notification/pkg/request"
)

const (
	PathOrderConfirmation = "/notifications/order-confirmation"
	PathOrderStatus       = "/notifications/order-status"
)

var tracer = otel.Tracer("notification-client")

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
	}
}

func (cl *Client) SendOrderConfirmation(c context.Context, param request.OrderConfirmation) error {
	c, span := tracer.Start(c, "Client SendOrderConfirmation")
	defer span.End()

	if err := cl.post(c, PathOrderConfirmation, param); err != nil {
		inOtel.RecordError(err, span)
		return err
	}
	return nil
}

func (cl *Client) SendStatusUpdate(c context.Context, param request.StatusUpdate) error {
	c, span := tracer.Start(c, "Client SendStatusUpdate")
	defer span.End()

	if err := cl.post(c, PathOrderStatus, param); err != nil {
		inOtel.RecordError(err, span)
		return err
	}
	return nil
}

// post returns an error wrapping ErrNotificationDispatch for any failure,
// including non 2xx responses.
func (cl *Client) post(c context.Context, path string, body interface{}) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Client post").
		Str(log.KeyRequestURL, cl.baseURL+path).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "creating notification request").Logger()
	logger.Trace().Msg("creating notification request")
	payload, err := json.Marshal(body)
	if err != nil {
		err = fmt.Errorf("failed marshaling notification with error=%w", errors.Join(inErrors.ErrNotificationDispatch, err))
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	req, err := http.NewRequestWithContext(c, http.MethodPost, cl.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		err = fmt.Errorf("failed creating notification request with error=%w", errors.Join(inErrors.ErrNotificationDispatch, err))
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	req.Header.Set(inHttp.KeyHeaderContentType, inHttp.ValueHeaderJson)
	if requestID := log.RequestIDFromContext(c); requestID != "" {
		req.Header.Set(inHttp.KeyHeaderRequestID, requestID)
	}
	logger.Trace().Msg("created notification request")

	logger = logger.With().Str(log.KeyProcess, "sending notification request").Logger()
	logger.Info().Msg("sending notification request")
	resp, err := cl.http.Do(req)
	if err != nil {
		err = fmt.Errorf("failed sending notification with error=%w", errors.Join(inErrors.ErrNotificationDispatch, err))
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody := map[string]interface{}{}
		_ = json.NewDecoder(resp.Body).Decode(&respBody)
		err = fmt.Errorf(
			"notification service returned status code=%d with message=%v: %w",
			resp.StatusCode,
			respBody["message"],
			inErrors.ErrNotificationDispatch,
		)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Int("statusCode", resp.StatusCode).Msg("sent notification request")

	return nil
}
