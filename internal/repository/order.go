package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	inErrors "github.com/Alturino/nayarn/internal/errors"
)

const orderColumns = `
id, customer_name, customer_email, customer_phone,
shipping_address, shipping_city, shipping_state, shipping_zip, shipping_country,
order_items, subtotal, shipping_cost, total, notes, status, created_at, updated_at
`

func scanOrder(row pgx.Row) (Order, error) {
	var (
		o            Order
		items        []byte
		subtotal     pgtype.Numeric
		shippingCost pgtype.Numeric
		total        pgtype.Numeric
	)
	err := row.Scan(
		&o.ID,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&o.ShippingAddress,
		&o.ShippingCity,
		&o.ShippingState,
		&o.ShippingZip,
		&o.ShippingCountry,
		&items,
		&subtotal,
		&shippingCost,
		&total,
		&o.Notes,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return Order{}, err
	}
	o.Subtotal = decimalFromNumeric(subtotal)
	o.ShippingCost = decimalFromNumeric(shippingCost)
	o.Total = decimalFromNumeric(total)
	o.OrderItems = []OrderItemSnapshot{}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.OrderItems); err != nil {
			return Order{}, fmt.Errorf("failed unmarshaling order_items with error=%w", err)
		}
	}
	return o, nil
}

type InsertOrderParams struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   *string
	ShippingAddress string
	ShippingCity    string
	ShippingState   string
	ShippingZip     string
	ShippingCountry string
	OrderItems      []OrderItemSnapshot
	Subtotal        decimal.Decimal
	ShippingCost    decimal.Decimal
	Total           decimal.Decimal
	Notes           *string
}

func (q *Queries) InsertOrder(c context.Context, arg InsertOrderParams) (Order, error) {
	query := `
INSERT INTO orders (
    customer_name, customer_email, customer_phone,
    shipping_address, shipping_city, shipping_state, shipping_zip, shipping_country,
    order_items, subtotal, shipping_cost, total, notes
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING ` + orderColumns

	items, err := json.Marshal(arg.OrderItems)
	if err != nil {
		return Order{}, fmt.Errorf("failed marshaling order_items with error=%w", err)
	}
	return scanOrder(q.db.QueryRow(
		c,
		query,
		arg.CustomerName,
		arg.CustomerEmail,
		arg.CustomerPhone,
		arg.ShippingAddress,
		arg.ShippingCity,
		arg.ShippingState,
		arg.ShippingZip,
		arg.ShippingCountry,
		items,
		numericFromDecimal(arg.Subtotal),
		numericFromDecimal(arg.ShippingCost),
		numericFromDecimal(arg.Total),
		arg.Notes,
	))
}

type InsertOrderItemParams struct {
	OrderID            uuid.UUID
	ProductID          *uuid.UUID
	ProductName        string
	ProductPrice       decimal.Decimal
	Quantity           int32
	Size               string
	CustomMeasurements map[string]string
}

// InsertOrderItems copies every row in one round trip and returns the row count.
func (q *Queries) InsertOrderItems(c context.Context, args []InsertOrderItemParams) (int64, error) {
	rows := make([][]interface{}, 0, len(args))
	for _, arg := range args {
		var measurements interface{}
		if len(arg.CustomMeasurements) > 0 {
			b, err := json.Marshal(arg.CustomMeasurements)
			if err != nil {
				return 0, fmt.Errorf("failed marshaling custom_measurements with error=%w", err)
			}
			measurements = b
		}
		rows = append(rows, []interface{}{
			arg.OrderID,
			arg.ProductID,
			arg.ProductName,
			numericFromDecimal(arg.ProductPrice),
			arg.Quantity,
			arg.Size,
			measurements,
		})
	}
	return q.db.CopyFrom(
		c,
		pgx.Identifier{"order_items"},
		[]string{
			"order_id",
			"product_id",
			"product_name",
			"product_price",
			"quantity",
			"size",
			"custom_measurements",
		},
		pgx.CopyFromRows(rows),
	)
}

func (q *Queries) FindOrderById(c context.Context, id uuid.UUID) (Order, error) {
	o, err := scanOrder(q.db.QueryRow(c, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, fmt.Errorf("order id=%s: %w", id, inErrors.ErrNotFound)
	}
	return o, err
}

// FindOrderByNumber matches an order number (a prefix of the id) together with
// the customer email, newest first.
func (q *Queries) FindOrderByNumber(c context.Context, number string, email string) (Order, error) {
	query := `
SELECT ` + orderColumns + `
FROM orders
WHERE id::text ILIKE $1 || '%'
  AND LOWER(customer_email) = LOWER($2)
ORDER BY created_at DESC
LIMIT 1
`
	o, err := scanOrder(q.db.QueryRow(c, query, number, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, fmt.Errorf("order number=%s: %w", number, inErrors.ErrNotFound)
	}
	return o, err
}

func (q *Queries) FindOrderItemsByOrderId(c context.Context, orderID uuid.UUID) ([]OrderItem, error) {
	const query = `
SELECT id, order_id, product_id, product_name, product_price, quantity, size,
       custom_measurements, created_at
FROM order_items
WHERE order_id = $1
ORDER BY created_at ASC, id ASC
`
	rows, err := q.db.Query(c, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []OrderItem{}
	for rows.Next() {
		var (
			i            OrderItem
			price        pgtype.Numeric
			measurements []byte
		)
		err := rows.Scan(
			&i.ID,
			&i.OrderID,
			&i.ProductID,
			&i.ProductName,
			&price,
			&i.Quantity,
			&i.Size,
			&measurements,
			&i.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		i.ProductPrice = decimalFromNumeric(price)
		if len(measurements) > 0 {
			if err := json.Unmarshal(measurements, &i.CustomMeasurements); err != nil {
				return nil, fmt.Errorf("failed unmarshaling custom_measurements with error=%w", err)
			}
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

type ListOrdersParams struct {
	Status *string
	Search string
}

func (q *Queries) ListOrders(c context.Context, arg ListOrdersParams) ([]Order, error) {
	query := `
SELECT ` + orderColumns + `
FROM orders
WHERE ($1::text IS NULL OR status = $1)
  AND ($2 = '' OR id::text ILIKE '%' || $2 || '%'
               OR customer_name ILIKE '%' || $2 || '%'
               OR customer_email ILIKE '%' || $2 || '%')
ORDER BY created_at DESC
`
	rows, err := q.db.Query(c, query, arg.Status, arg.Search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (q *Queries) UpdateOrderStatus(c context.Context, id uuid.UUID, status string) (Order, error) {
	query := `
UPDATE orders
SET status = $2, updated_at = NOW()
WHERE id = $1
RETURNING ` + orderColumns
	o, err := scanOrder(q.db.QueryRow(c, query, id, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, fmt.Errorf("order id=%s: %w", id, inErrors.ErrNotFound)
	}
	return o, err
}

func (q *Queries) CountOrdersByStatus(c context.Context) (map[string]int64, error) {
	rows, err := q.db.Query(c, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
