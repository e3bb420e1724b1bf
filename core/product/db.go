package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("product not found")

// ErrInsufficientStock reports a conditional stock decrement that
// matched no row: the product is gone or holds fewer units than asked.
var ErrInsufficientStock = errors.New("insufficient stock")

func Create(ctx context.Context, db sqlx.ExtContext, prd Product) error {
	const q = `
	INSERT INTO products
		(product_id, name, description, price, original_price, category, subcategory,
		rarity, set_name, image_url, stock, rating, is_active, created_at, updated_at)
	VALUES
		(:product_id, :name, :description, :price, :original_price, :category, :subcategory,
		:rarity, :set_name, :image_url, :stock, :rating, :is_active, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, prd); err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	return nil
}

func Update(ctx context.Context, db sqlx.ExtContext, prd Product) error {
	const q = `
	UPDATE products SET
		name = :name,
		description = :description,
		price = :price,
		original_price = :original_price,
		category = :category,
		subcategory = :subcategory,
		rarity = :rarity,
		set_name = :set_name,
		image_url = :image_url,
		stock = :stock,
		rating = :rating,
		is_active = :is_active,
		updated_at = :updated_at
	WHERE product_id = :product_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, prd); err != nil {
		return fmt.Errorf("updating product[%s]: %w", prd.ID, err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Product, error) {
	const q = `SELECT * FROM products WHERE product_id = $1`

	var prd Product
	if err := sqlx.GetContext(ctx, db, &prd, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("selecting product[%s]: %w", id, err)
	}

	return prd, nil
}

// List returns a page of active products matching the filter, plus the
// total number of matches for pagination.
func List(ctx context.Context, db sqlx.ExtContext, f Filter) ([]Product, int, error) {
	var sb strings.Builder
	var args []interface{}

	sb.WriteString(" FROM products WHERE is_active = TRUE")

	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		fmt.Fprintf(&sb, " AND "+clause, len(args))
	}

	if f.Category != "" {
		add("category ILIKE $%d", "%"+f.Category+"%")
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		fmt.Fprintf(&sb, " AND (name ILIKE $%d OR description ILIKE $%d OR set_name ILIKE $%d)", n, n, n)
	}
	if f.MinPrice != nil {
		add("price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("price <= $%d", *f.MaxPrice)
	}

	var total int
	if err := sqlx.GetContext(ctx, db, &total, "SELECT count(*)"+sb.String(), args...); err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	if f.PerPage < 1 {
		f.PerPage = 20
	}
	if f.Page < 1 {
		f.Page = 1
	}

	args = append(args, f.PerPage, (f.Page-1)*f.PerPage)
	q := fmt.Sprintf("SELECT *%s ORDER BY name LIMIT $%d OFFSET $%d", sb.String(), len(args)-1, len(args))

	prds := []Product{}
	if err := sqlx.SelectContext(ctx, db, &prds, q, args...); err != nil {
		return nil, 0, fmt.Errorf("selecting products: %w", err)
	}

	return prds, total, nil
}

// ListFeatured returns the best rated active products still in stock.
func ListFeatured(ctx context.Context, db sqlx.ExtContext) ([]Product, error) {
	const q = `
	SELECT * FROM products
	WHERE is_active = TRUE AND stock > 0 AND rating >= 4.5
	ORDER BY rating DESC
	LIMIT 8`

	prds := []Product{}
	if err := sqlx.SelectContext(ctx, db, &prds, q); err != nil {
		return nil, fmt.Errorf("selecting featured products: %w", err)
	}

	return prds, nil
}

// DecrementStock atomically takes qty units off a product's stock. The
// guard in the WHERE clause makes check and decrement a single
// statement, so two concurrent checkouts cannot both drain the same
// units: the statement that finds too little stock matches no row.
func DecrementStock(ctx context.Context, db sqlx.ExtContext, id string, qty int) error {
	const q = `
	UPDATE products
	SET stock = stock - $2, updated_at = now()
	WHERE product_id = $1 AND stock >= $2`

	res, err := db.ExecContext(ctx, q, id, qty)
	if err != nil {
		return fmt.Errorf("decrementing stock of product[%s]: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return ErrInsufficientStock
	}

	return nil
}
