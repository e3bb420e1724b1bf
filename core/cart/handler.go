package cart

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pokecards/backend/api/web"
	"github.com/pokecards/backend/api/weberr"
	"github.com/pokecards/backend/core/claims"
	"github.com/pokecards/backend/core/product"
	"github.com/pokecards/backend/validate"
	"github.com/shopspring/decimal"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// Show assembles the cart view: every line joined with live catalog
// price, per-line subtotal and grand total.
func Show(ctx context.Context, db *sqlx.DB, userID string) (Cart, error) {
	lines, err := FetchLines(ctx, db, userID)
	if err != nil {
		return Cart{}, err
	}

	total := decimal.Zero
	for i, ln := range lines {
		if ln.UnitPrice == nil {
			continue
		}
		lines[i].Subtotal = ln.UnitPrice.Mul(decimal.NewFromInt(int64(ln.Quantity)))
		total = total.Add(lines[i].Subtotal)
	}

	return Cart{Items: lines, Total: total, Count: len(lines)}, nil
}

// Add puts qty units of a product into the user's cart, incrementing
// an existing line. The stock check reads live catalog stock; nothing
// is reserved until checkout.
func Add(ctx context.Context, db *sqlx.DB, userID string, productID string, qty int) error {
	prd, err := product.Fetch(ctx, db, productID)
	if err != nil {
		return err
	}

	var existing int
	items, err := FetchItems(ctx, db, userID)
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.ProductID == productID {
			existing = it.Quantity
			break
		}
	}

	if prd.Stock < existing+qty {
		return ErrInsufficientStock
	}

	now := time.Now().UTC()
	it := Item{
		ID:        validate.GenerateID(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return Upsert(ctx, db, it)
}

// Update sets the quantity of an owned line; zero or less removes it.
func Update(ctx context.Context, db *sqlx.DB, userID string, itemID string, qty int) error {
	it, err := FetchItem(ctx, db, userID, itemID)
	if err != nil {
		return err
	}

	if qty <= 0 {
		return DeleteItem(ctx, db, userID, itemID)
	}

	prd, err := product.Fetch(ctx, db, it.ProductID)
	if err != nil {
		return err
	}

	if prd.Stock < qty {
		return ErrInsufficientStock
	}

	return SetQuantity(ctx, db, userID, itemID, qty)
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		crt, err := Show(ctx, db, clm.UserID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, crt, http.StatusOK)
	}
}

func HandleAddItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if err := Add(ctx, db, clm.UserID, in.ProductID, in.Quantity); err != nil {
			switch {
			case errors.Is(err, product.ErrNotFound):
				return weberr.NotFound(err)
			case errors.Is(err, ErrInsufficientStock):
				return weberr.NewError(err, err.Error(), http.StatusConflict)
			}
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleUpdateItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		itemID := web.Param(r, "id")
		if err := validate.CheckID(itemID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		var up ItemUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := Update(ctx, db, clm.UserID, itemID, up.Quantity); err != nil {
			switch {
			case errors.Is(err, ErrItemNotFound), errors.Is(err, product.ErrNotFound):
				return weberr.NotFound(err)
			case errors.Is(err, ErrInsufficientStock):
				return weberr.NewError(err, err.Error(), http.StatusConflict)
			}
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleDeleteItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		itemID := web.Param(r, "id")
		if err := validate.CheckID(itemID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if err := DeleteItem(ctx, db, clm.UserID, itemID); err != nil {
			if errors.Is(err, ErrItemNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleDelete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		if err := Delete(ctx, db, clm.UserID); err != nil {
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleCount(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		n, err := Count(ctx, db, clm.UserID)
		if err != nil {
			return err
		}

		out := struct {
			Count int `json:"count"`
		}{n}

		return web.Respond(ctx, w, out, http.StatusOK)
	}
}
