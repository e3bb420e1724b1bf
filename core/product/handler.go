package product

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pokecards/backend/api/web"
	"github.com/pokecards/backend/api/weberr"
	"github.com/pokecards/backend/validate"
	"github.com/shopspring/decimal"
)

type listResponse struct {
	Products    []Product `json:"products"`
	Total       int       `json:"total"`
	Pages       int       `json:"pages"`
	CurrentPage int       `json:"currentPage"`
	PerPage     int       `json:"perPage"`
}

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		f, err := parseFilter(r)
		if err != nil {
			return weberr.BadRequest(err)
		}

		prds, total, err := List(ctx, db, f)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, pageOf(prds, total, f), http.StatusOK)
	}
}

func HandleListByCategory(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		f, err := parseFilter(r)
		if err != nil {
			return weberr.BadRequest(err)
		}
		f.Category = web.Param(r, "category")

		prds, total, err := List(ctx, db, f)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, pageOf(prds, total, f), http.StatusOK)
	}
}

func HandleListFeatured(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		prds, err := ListFeatured(ctx, db)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, prds, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		prd, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		return web.Respond(ctx, w, prd, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var pn ProductNew
		if err := web.Decode(w, r, &pn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(pn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if pn.Price.IsNegative() {
			err := errors.New("price must not be negative")
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		now := time.Now().UTC()
		prd := Product{
			ID:            validate.GenerateID(),
			Name:          pn.Name,
			Description:   pn.Description,
			Price:         pn.Price,
			OriginalPrice: pn.OriginalPrice,
			Category:      pn.Category,
			Subcategory:   pn.Subcategory,
			Rarity:        pn.Rarity,
			SetName:       pn.SetName,
			ImageURL:      pn.ImageURL,
			Stock:         pn.Stock,
			Rating:        pn.Rating,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if err := Create(ctx, db, prd); err != nil {
			return err
		}

		return web.Respond(ctx, w, prd, http.StatusCreated)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		var pu ProductUp
		if err := web.Decode(w, r, &pu); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(pu); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		prd, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		if pu.Name != nil {
			prd.Name = *pu.Name
		}
		if pu.Description != nil {
			prd.Description = *pu.Description
		}
		if pu.Price != nil {
			if pu.Price.IsNegative() {
				err := errors.New("price must not be negative")
				return weberr.NewError(err, err.Error(), http.StatusBadRequest)
			}
			prd.Price = *pu.Price
		}
		if pu.OriginalPrice != nil {
			prd.OriginalPrice = pu.OriginalPrice
		}
		if pu.Category != nil {
			prd.Category = *pu.Category
		}
		if pu.Subcategory != nil {
			prd.Subcategory = *pu.Subcategory
		}
		if pu.Rarity != nil {
			prd.Rarity = *pu.Rarity
		}
		if pu.SetName != nil {
			prd.SetName = *pu.SetName
		}
		if pu.ImageURL != nil {
			prd.ImageURL = *pu.ImageURL
		}
		if pu.Stock != nil {
			prd.Stock = *pu.Stock
		}
		if pu.Rating != nil {
			prd.Rating = *pu.Rating
		}
		if pu.IsActive != nil {
			prd.IsActive = *pu.IsActive
		}
		prd.UpdatedAt = time.Now().UTC()

		if err := Update(ctx, db, prd); err != nil {
			return err
		}

		return web.Respond(ctx, w, prd, http.StatusOK)
	}
}

func parseFilter(r *http.Request) (Filter, error) {
	f := Filter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Page:     1,
		PerPage:  20,
	}

	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid page: %q", v)
		}
		f.Page = p
	}
	if v := q.Get("per_page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid per_page: %q", v)
		}
		f.PerPage = p
	}
	if v := q.Get("min_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid min_price: %q", v)
		}
		f.MinPrice = &d
	}
	if v := q.Get("max_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid max_price: %q", v)
		}
		f.MaxPrice = &d
	}

	return f, nil
}

func pageOf(prds []Product, total int, f Filter) listResponse {
	pages := 0
	if f.PerPage > 0 {
		pages = (total + f.PerPage - 1) / f.PerPage
	}

	return listResponse{
		Products:    prds,
		Total:       total,
		Pages:       pages,
		CurrentPage: f.Page,
		PerPage:     f.PerPage,
	}
}
