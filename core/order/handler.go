package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pokecards/backend/api/web"
	"github.com/pokecards/backend/api/weberr"
	"github.com/pokecards/backend/config"
	"github.com/pokecards/backend/core/claims"
	"github.com/pokecards/backend/core/payment"
	"github.com/pokecards/backend/core/product"
	"github.com/pokecards/backend/validate"
)

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		page, perPage, err := parsePage(r)
		if err != nil {
			return weberr.BadRequest(err)
		}

		orders, total, err := ListByUser(ctx, db, clm.UserID, page, perPage)
		if err != nil {
			return err
		}

		pages := 0
		if perPage > 0 {
			pages = (total + perPage - 1) / perPage
		}

		out := struct {
			Orders      []Order `json:"orders"`
			Total       int     `json:"total"`
			Pages       int     `json:"pages"`
			CurrentPage int     `json:"currentPage"`
			PerPage     int     `json:"perPage"`
		}{orders, total, pages, page, perPage}

		return web.Respond(ctx, w, out, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		orderID := web.Param(r, "id")
		if err := validate.CheckID(orderID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		ord, err := Fetch(ctx, db, clm.UserID, orderID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		if ord.Items, err = FetchItems(ctx, db, ord.ID); err != nil {
			return err
		}

		return web.Respond(ctx, w, ord, http.StatusOK)
	}
}

func HandleCheckout(db *sqlx.DB, pixCfg config.Pix) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		// An absent body means the default payment method.
		var on OrderNew
		if err := web.Decode(w, r, &on); err != nil && !errors.Is(err, io.EOF) {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(on); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		method := Method(on.PaymentMethod)
		if method == "" {
			method = Pix
		}

		ord, err := Checkout(ctx, db, pixCfg, clm.UserID, method)
		if err != nil {
			var ue *UnavailableError
			var se *StockError
			switch {
			case errors.Is(err, ErrEmptyCart):
				return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
			case errors.As(err, &ue):
				return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
			case errors.As(err, &se):
				return weberr.NewError(err, err.Error(), http.StatusConflict)
			}
			return err
		}

		return web.Respond(ctx, w, ord, http.StatusCreated)
	}
}

func HandleUpdateStatus(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		orderID := web.Param(r, "id")
		if err := validate.CheckID(orderID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		var in struct {
			Status string `json:"status"`
		}
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		status, err := ParseStatus(in.Status)
		if err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		up := StatusUp{
			ID:        orderID,
			Status:    status,
			UpdatedAt: time.Now().UTC(),
		}

		if err := UpdateStatus(ctx, db, up); err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		ord, err := FetchAny(ctx, db, orderID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, ord, http.StatusOK)
	}
}

// HandleDirectPix quotes a single-product pix payment without touching
// cart or stock.
func HandleDirectPix(db *sqlx.DB, pixCfg config.Pix) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in struct {
			ProductID string `json:"productId" validate:"required,uuid4"`
			Quantity  int    `json:"quantity" validate:"omitempty,gte=1"`
		}
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if in.Quantity == 0 {
			in.Quantity = 1
		}

		quote, err := QuoteDirect(ctx, db, pixCfg, in.ProductID, in.Quantity)
		if err != nil {
			var se *StockError
			switch {
			case errors.Is(err, product.ErrNotFound):
				return weberr.NotFound(err)
			case errors.As(err, &se):
				return weberr.NewError(err, err.Error(), http.StatusConflict)
			}
			return err
		}

		return web.Respond(ctx, w, quote, http.StatusOK)
	}
}

// HandlePaymentStatus asks the gateway for the state of a payment.
func HandlePaymentStatus(gw payment.Gateway) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		paymentID := web.Param(r, "id")

		status, err := gw.Status(ctx, paymentID)
		if err != nil {
			return fmt.Errorf("querying payment[%s] status: %w", paymentID, err)
		}

		out := struct {
			PaymentID string         `json:"paymentId"`
			Status    payment.Status `json:"status"`
		}{paymentID, status}

		return web.Respond(ctx, w, out, http.StatusOK)
	}
}

func parsePage(r *http.Request) (page int, perPage int, err error) {
	page, perPage = 1, 10

	if v := r.URL.Query().Get("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil || page < 1 {
			return 0, 0, fmt.Errorf("invalid page: %q", v)
		}
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		if perPage, err = strconv.Atoi(v); err != nil || perPage < 1 {
			return 0, 0, fmt.Errorf("invalid per_page: %q", v)
		}
	}

	return page, perPage, nil
}
