package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/domain"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const orderColumns = `
	id, email, items, shipping_address, payment_method,
	status, payment, subtotal, tax, shipping, discount, total,
	notes, created_at, updated_at
`

func (r *Repository) Create(ctx context.Context, order domain.Order) error {
	items, address, method, err := marshalOrderDocs(order)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err = r.pool.Exec(ctx, query,
		order.ID,
		order.Email,
		items,
		address,
		method,
		order.Status,
		order.Payment,
		order.Totals.Subtotal,
		order.Totals.Tax,
		order.Totals.Shipping,
		order.Totals.Discount,
		order.Total,
		order.Notes,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	return order, nil
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::text IS NULL OR payment = $2)
		  AND ($3::text = '' OR email = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`

	var statusFilter, paymentFilter *string
	if filter.Status != nil {
		s := string(*filter.Status)
		statusFilter = &s
	}
	if filter.Payment != nil {
		p := string(*filter.Payment)
		paymentFilter = &p
	}

	offset := (page - 1) * pageSize

	rows, err := r.pool.Query(ctx, query, statusFilter, paymentFilter, filter.Email, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *Repository) ListAll(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query all orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *Repository) Update(ctx context.Context, order domain.Order) error {
	items, address, method, err := marshalOrderDocs(order)
	if err != nil {
		return err
	}

	query := `
		UPDATE orders
		SET items = $1, shipping_address = $2, payment_method = $3,
		    status = $4, payment = $5,
		    subtotal = $6, tax = $7, shipping = $8, discount = $9, total = $10,
		    notes = $11, updated_at = $12
		WHERE id = $13
	`

	result, err := r.pool.Exec(ctx, query,
		items,
		address,
		method,
		order.Status,
		order.Payment,
		order.Totals.Subtotal,
		order.Totals.Tax,
		order.Totals.Shipping,
		order.Totals.Discount,
		order.Total,
		order.Notes,
		order.UpdatedAt,
		order.ID,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrNotFound
	}

	return nil
}

func marshalOrderDocs(order domain.Order) (items, address, method []byte, err error) {
	items, err = json.Marshal(order.Items)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal order items: %w", err)
	}
	address, err = json.Marshal(order.ShippingAddress)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal shipping address: %w", err)
	}
	method, err = json.Marshal(order.PaymentMethod)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal payment method: %w", err)
	}
	return items, address, method, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var items, address, method []byte

	err := row.Scan(
		&order.ID,
		&order.Email,
		&items,
		&address,
		&method,
		&order.Status,
		&order.Payment,
		&order.Totals.Subtotal,
		&order.Totals.Tax,
		&order.Totals.Shipping,
		&order.Totals.Discount,
		&order.Total,
		&order.Notes,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	if err := json.Unmarshal(address, &order.ShippingAddress); err != nil {
		return nil, fmt.Errorf("unmarshal shipping address: %w", err)
	}
	if err := json.Unmarshal(method, &order.PaymentMethod); err != nil {
		return nil, fmt.Errorf("unmarshal payment method: %w", err)
	}

	return &order, nil
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, nil
}
