package deck

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pokecards/backend/api/web"
	"github.com/pokecards/backend/api/weberr"
	"github.com/pokecards/backend/core/claims"
	"github.com/pokecards/backend/database"
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

		decks, total, err := ListByUser(ctx, db, clm.UserID, page, perPage)
		if err != nil {
			return err
		}

		out := struct {
			Decks       []Deck `json:"decks"`
			Total       int    `json:"total"`
			Pages       int    `json:"pages"`
			CurrentPage int    `json:"currentPage"`
			PerPage     int    `json:"perPage"`
		}{decks, total, pages(total, perPage), page, perPage}

		return web.Respond(ctx, w, out, http.StatusOK)
	}
}

func HandleListPublic(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		page, perPage, err := parsePage(r)
		if err != nil {
			return weberr.BadRequest(err)
		}

		decks, total, err := ListPublic(ctx, db, page, perPage)
		if err != nil {
			return err
		}

		out := struct {
			Decks       []PublicDeck `json:"decks"`
			Total       int          `json:"total"`
			Pages       int          `json:"pages"`
			CurrentPage int          `json:"currentPage"`
			PerPage     int          `json:"perPage"`
		}{decks, total, pages(total, perPage), page, perPage}

		return web.Respond(ctx, w, out, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		deckID := web.Param(r, "id")
		if err := validate.CheckID(deckID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		dk, err := FetchVisible(ctx, db, clm.UserID, deckID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		if dk.Cards, err = FetchCards(ctx, db, dk.ID); err != nil {
			return err
		}

		return web.Respond(ctx, w, dk, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var dn DeckNew
		if err := web.Decode(w, r, &dn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		dn.Name = strings.TrimSpace(dn.Name)
		if err := CheckName(dn.Name); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		total, err := ValidateAndPrice(dn.Cards)
		if err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		now := time.Now().UTC()
		dk := Deck{
			ID:          validate.GenerateID(),
			UserID:      clm.UserID,
			Name:        dn.Name,
			Description: strings.TrimSpace(dn.Description),
			TotalPrice:  total,
			IsPublic:    dn.IsPublic,
			CreatedAt:   now,
			UpdatedAt:   now,
			Cards:       dn.Cards,
		}

		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			return Create(ctx, tx, dk)
		})
		if err != nil {
			return fmt.Errorf("creating deck: %w", err)
		}

		return web.Respond(ctx, w, dk, http.StatusCreated)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		deckID := web.Param(r, "id")
		if err := validate.CheckID(deckID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		var du DeckUp
		if err := web.Decode(w, r, &du); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		dk, err := FetchOwned(ctx, db, clm.UserID, deckID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		if du.Name != nil {
			name := strings.TrimSpace(*du.Name)
			if err := CheckName(name); err != nil {
				return weberr.NewError(err, err.Error(), http.StatusBadRequest)
			}
			dk.Name = name
		}
		if du.Description != nil {
			dk.Description = strings.TrimSpace(*du.Description)
		}
		if du.IsPublic != nil {
			dk.IsPublic = *du.IsPublic
		}

		// A replaced card list is validated before anything is
		// written; no partially valid deck ever hits the database.
		if du.Cards != nil {
			total, err := ValidateAndPrice(du.Cards)
			if err != nil {
				return weberr.NewError(err, err.Error(), http.StatusBadRequest)
			}
			dk.TotalPrice = total
			dk.Cards = du.Cards
		}
		dk.UpdatedAt = time.Now().UTC()

		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			if err := Update(ctx, tx, dk); err != nil {
				return err
			}

			if du.Cards == nil {
				return nil
			}

			if err := DeleteCards(ctx, tx, dk.ID); err != nil {
				return err
			}
			return InsertCards(ctx, tx, dk.ID, dk.Cards)
		})
		if err != nil {
			return fmt.Errorf("updating deck: %w", err)
		}

		return web.Respond(ctx, w, dk, http.StatusOK)
	}
}

func HandleDelete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		deckID := web.Param(r, "id")
		if err := validate.CheckID(deckID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if err := Delete(ctx, db, clm.UserID, deckID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

// HandleCopy clones a public (or owned) deck into the caller's
// collection. The copy is private regardless of the source.
func HandleCopy(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		deckID := web.Param(r, "id")
		if err := validate.CheckID(deckID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		src, err := FetchVisible(ctx, db, clm.UserID, deckID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		cards, err := FetchCards(ctx, db, src.ID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		cp := Deck{
			ID:          validate.GenerateID(),
			UserID:      clm.UserID,
			Name:        "Copy of " + src.Name,
			Description: src.Description,
			TotalPrice:  src.TotalPrice,
			IsPublic:    false,
			CreatedAt:   now,
			UpdatedAt:   now,
			Cards:       cards,
		}

		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			return Create(ctx, tx, cp)
		})
		if err != nil {
			return fmt.Errorf("copying deck[%s]: %w", src.ID, err)
		}

		return web.Respond(ctx, w, cp, http.StatusCreated)
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

func pages(total int, perPage int) int {
	if perPage < 1 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
