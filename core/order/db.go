package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("order not found")

func Create(ctx context.Context, tx sqlx.ExtContext, ord Order) error {
	const q = `
	INSERT INTO orders
		(order_id, user_id, total, payment_method, status, pix_qr_code, created_at, updated_at)
	VALUES
		(:order_id, :user_id, :total, :payment_method, :status, :pix_qr_code, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, tx, q, ord); err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	return nil
}

func CreateItem(ctx context.Context, tx sqlx.ExtContext, it Item) error {
	const q = `
	INSERT INTO order_items
		(order_id, product_id, quantity, unit_price, created_at)
	VALUES
		(:order_id, :product_id, :quantity, :unit_price, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, tx, q, it); err != nil {
		return fmt.Errorf("inserting order item: %w", err)
	}

	return nil
}

// Fetch returns the order only when it belongs to the user.
func Fetch(ctx context.Context, db sqlx.ExtContext, userID string, orderID string) (Order, error) {
	const q = `SELECT * FROM orders WHERE order_id = $1 AND user_id = $2`

	var ord Order
	if err := sqlx.GetContext(ctx, db, &ord, q, orderID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("selecting order[%s]: %w", orderID, err)
	}

	return ord, nil
}

// FetchAny returns the order regardless of owner. Admin use only.
func FetchAny(ctx context.Context, db sqlx.ExtContext, orderID string) (Order, error) {
	const q = `SELECT * FROM orders WHERE order_id = $1`

	var ord Order
	if err := sqlx.GetContext(ctx, db, &ord, q, orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("selecting order[%s]: %w", orderID, err)
	}

	return ord, nil
}

func FetchItems(ctx context.Context, db sqlx.ExtContext, orderID string) ([]Item, error) {
	const q = `SELECT * FROM order_items WHERE order_id = $1 ORDER BY created_at`

	items := []Item{}
	if err := sqlx.SelectContext(ctx, db, &items, q, orderID); err != nil {
		return nil, fmt.Errorf("selecting items of order[%s]: %w", orderID, err)
	}

	return items, nil
}

func ListByUser(ctx context.Context, db sqlx.ExtContext, userID string, page int, perPage int) ([]Order, int, error) {
	var total int
	if err := sqlx.GetContext(ctx, db, &total, `SELECT count(*) FROM orders WHERE user_id = $1`, userID); err != nil {
		return nil, 0, fmt.Errorf("counting orders: %w", err)
	}

	const q = `
	SELECT * FROM orders
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3`

	orders := []Order{}
	if err := sqlx.SelectContext(ctx, db, &orders, q, userID, perPage, (page-1)*perPage); err != nil {
		return nil, 0, fmt.Errorf("selecting orders: %w", err)
	}

	return orders, total, nil
}

// UpdateStatus is the only mutation an order supports after creation.
func UpdateStatus(ctx context.Context, db sqlx.ExtContext, up StatusUp) error {
	const q = `UPDATE orders SET status = :status, updated_at = :updated_at WHERE order_id = :order_id`

	res, err := sqlx.NamedExecContext(ctx, db, q, up)
	if err != nil {
		return fmt.Errorf("updating status of order[%s]: %w", up.ID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	return nil
}
