package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/nayarn/internal/errors"
	"github.com/Alturino/nayarn/internal/repository"
	notificationRequest "github.com/Alturino/nayarn/notification/pkg/request"
	"github.com/Alturino/nayarn/order/internal/service"
)

type memoryStore map[uuid.UUID]repository.Order

func (m memoryStore) FindOrderById(_ context.Context, id uuid.UUID) (repository.Order, error) {
	o, ok := m[id]
	if !ok {
		return repository.Order{}, fmt.Errorf("order id=%s: %w", id, inErrors.ErrNotFound)
	}
	return o, nil
}

func (m memoryStore) FindOrderByNumber(_ context.Context, number string, email string) (repository.Order, error) {
	for _, o := range m {
		if strings.HasPrefix(o.ID.String(), number) && strings.EqualFold(o.CustomerEmail, email) {
			return o, nil
		}
	}
	return repository.Order{}, fmt.Errorf("order number=%s: %w", number, inErrors.ErrNotFound)
}

func (m memoryStore) FindOrderItemsByOrderId(context.Context, uuid.UUID) ([]repository.OrderItem, error) {
	return []repository.OrderItem{}, nil
}

func (m memoryStore) ListOrders(_ context.Context, arg repository.ListOrdersParams) ([]repository.Order, error) {
	res := []repository.Order{}
	for _, o := range m {
		if arg.Status == nil || o.Status == *arg.Status {
			res = append(res, o)
		}
	}
	return res, nil
}

func (m memoryStore) UpdateOrderStatus(c context.Context, id uuid.UUID, status string) (repository.Order, error) {
	o, err := m.FindOrderById(c, id)
	if err != nil {
		return repository.Order{}, err
	}
	o.Status = status
	m[id] = o
	return o, nil
}

func (m memoryStore) CountOrdersByStatus(context.Context) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, o := range m {
		counts[o.Status]++
	}
	return counts, nil
}

type noopNotifier struct{}

func (noopNotifier) SendStatusUpdate(context.Context, notificationRequest.StatusUpdate) error {
	return nil
}

type envelope struct {
	StatusCode int                        `json:"statusCode"`
	Message    string                     `json:"message"`
	Data       map[string]json.RawMessage `json:"data"`
	Errors     map[string]string          `json:"errors"`
}

func setup(t *testing.T) (*mux.Router, memoryStore, repository.Order) {
	t.Helper()
	o := repository.Order{
		ID:            uuid.New(),
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		Total:         decimal.NewFromInt(200),
		Status:        "pending",
		OrderItems:    []repository.OrderItemSnapshot{},
		CreatedAt:     time.Now(),
	}
	store := memoryStore{o.ID: o}
	router := mux.NewRouter()
	AttachOrderController(router, router.PathPrefix("/admin").Subrouter(), service.NewOrderService(store, noopNotifier{}))
	return router, store, o
}

func serve(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	env := envelope{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return rec, env
}

func TestFindConfirmation(t *testing.T) {
	router, _, o := setup(t)

	rec, env := serve(t, router, http.MethodGet, "/orders/"+o.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	confirmation := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(env.Data["order"], &confirmation))
	assert.Equal(t, "Jane Doe", confirmation["customerName"])
	assert.NotContains(t, confirmation, "shippingAddress")

	rec, _ = serve(t, router, http.MethodGet, "/orders/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = serve(t, router, http.MethodGet, "/orders/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "orderId")
}

func TestUpdateStatus(t *testing.T) {
	router, store, o := setup(t)
	path := "/admin/orders/" + o.ID.String() + "/status"

	rec, _ := serve(t, router, http.MethodPut, path, `{"status":"shipped"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "shipped", store[o.ID].Status)

	rec, env := serve(t, router, http.MethodPut, path, `{"status":"lost"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "status")
	assert.Equal(t, "shipped", store[o.ID].Status)
}

func TestListOrdersAndSummary(t *testing.T) {
	router, _, _ := setup(t)

	rec, env := serve(t, router, http.MethodGet, "/admin/orders?status=pending", "")
	require.Equal(t, http.StatusOK, rec.Code)
	orders := []map[string]interface{}{}
	require.NoError(t, json.Unmarshal(env.Data["orders"], &orders))
	assert.Len(t, orders, 1)

	rec, _ = serve(t, router, http.MethodGet, "/admin/orders?status=lost", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = serve(t, router, http.MethodGet, "/admin/orders/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := struct {
		Total    int64            `json:"total"`
		ByStatus map[string]int64 `json:"byStatus"`
	}{}
	require.NoError(t, json.Unmarshal(env.Data["summary"], &summary))
	assert.Equal(t, int64(1), summary.Total)
	assert.Equal(t, int64(1), summary.ByStatus["pending"])
}

func TestTrackOrder(t *testing.T) {
	router, _, o := setup(t)
	number := strings.ToUpper(o.ID.String()[:8])

	rec, _ := serve(t, router, http.MethodGet, "/orders/track?order="+number+"&email=jane@example.com", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = serve(t, router, http.MethodGet, "/orders/track?order="+number+"&email=john@example.com", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	testCases := []struct {
		name  string
		query string
	}{
		{name: "missing email", query: "order=" + number},
		{name: "malformed email", query: "order=" + number + "&email=jane"},
		{name: "short number", query: "order=abc&email=jane@example.com"},
		{name: "short after trimming", query: "order=%20%20%20%20%20%20%20" + number[:1] + "&email=jane@example.com"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := serve(t, router, http.MethodGet, "/orders/track?"+tc.query, "")
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}
