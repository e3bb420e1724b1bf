package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrItemNotFound = errors.New("item not found in cart")

func FetchItems(ctx context.Context, db sqlx.ExtContext, userID string) ([]Item, error) {
	const q = `SELECT * FROM cart_items WHERE user_id = $1 ORDER BY created_at`

	items := []Item{}
	if err := sqlx.SelectContext(ctx, db, &items, q, userID); err != nil {
		return nil, fmt.Errorf("selecting cart items: %w", err)
	}

	return items, nil
}

// FetchLines joins each cart item with its catalog row. The join is
// LEFT so lines for vanished products survive with NULL name/price.
func FetchLines(ctx context.Context, db sqlx.ExtContext, userID string) ([]Line, error) {
	const q = `
	SELECT c.*, p.name, p.price AS unit_price
	FROM cart_items c
	LEFT JOIN products p ON p.product_id = c.product_id
	WHERE c.user_id = $1
	ORDER BY c.created_at`

	lines := []Line{}
	if err := sqlx.SelectContext(ctx, db, &lines, q, userID); err != nil {
		return nil, fmt.Errorf("selecting cart lines: %w", err)
	}

	return lines, nil
}

func FetchItem(ctx context.Context, db sqlx.ExtContext, userID string, itemID string) (Item, error) {
	const q = `SELECT * FROM cart_items WHERE item_id = $1 AND user_id = $2`

	var it Item
	if err := sqlx.GetContext(ctx, db, &it, q, itemID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, ErrItemNotFound
		}
		return Item{}, fmt.Errorf("selecting cart item[%s]: %w", itemID, err)
	}

	return it, nil
}

// Upsert inserts the item or, when the user already carries the
// product, increments the existing line in one atomic statement.
func Upsert(ctx context.Context, db sqlx.ExtContext, it Item) error {
	const q = `
	INSERT INTO cart_items
		(item_id, user_id, product_id, quantity, created_at, updated_at)
	VALUES
		(:item_id, :user_id, :product_id, :quantity, :created_at, :updated_at)
	ON CONFLICT (user_id, product_id) DO UPDATE SET
		quantity = cart_items.quantity + EXCLUDED.quantity,
		updated_at = EXCLUDED.updated_at`

	if _, err := sqlx.NamedExecContext(ctx, db, q, it); err != nil {
		return fmt.Errorf("upserting cart item: %w", err)
	}

	return nil
}

func SetQuantity(ctx context.Context, db sqlx.ExtContext, userID string, itemID string, qty int) error {
	const q = `
	UPDATE cart_items SET quantity = $3, updated_at = now()
	WHERE item_id = $1 AND user_id = $2`

	if _, err := db.ExecContext(ctx, q, itemID, userID, qty); err != nil {
		return fmt.Errorf("updating quantity of cart item[%s]: %w", itemID, err)
	}

	return nil
}

func DeleteItem(ctx context.Context, db sqlx.ExtContext, userID string, itemID string) error {
	const q = `DELETE FROM cart_items WHERE item_id = $1 AND user_id = $2`

	res, err := db.ExecContext(ctx, q, itemID, userID)
	if err != nil {
		return fmt.Errorf("deleting cart item[%s]: %w", itemID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrItemNotFound
	}

	return nil
}

func Delete(ctx context.Context, db sqlx.ExtContext, userID string) error {
	const q = `DELETE FROM cart_items WHERE user_id = $1`

	if _, err := db.ExecContext(ctx, q, userID); err != nil {
		return fmt.Errorf("flushing cart of user[%s]: %w", userID, err)
	}

	return nil
}

func Count(ctx context.Context, db sqlx.ExtContext, userID string) (int, error) {
	const q = `SELECT count(*) FROM cart_items WHERE user_id = $1`

	var n int
	if err := sqlx.GetContext(ctx, db, &n, q, userID); err != nil {
		return 0, fmt.Errorf("counting cart items: %w", err)
	}

	return n, nil
}
