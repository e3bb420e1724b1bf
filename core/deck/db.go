package deck

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("deck not found")

func Create(ctx context.Context, tx sqlx.ExtContext, dk Deck) error {
	const q = `
	INSERT INTO decks
		(deck_id, user_id, name, description, total_price, is_public, created_at, updated_at)
	VALUES
		(:deck_id, :user_id, :name, :description, :total_price, :is_public, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, tx, q, dk); err != nil {
		return fmt.Errorf("inserting deck: %w", err)
	}

	return InsertCards(ctx, tx, dk.ID, dk.Cards)
}

func Update(ctx context.Context, tx sqlx.ExtContext, dk Deck) error {
	const q = `
	UPDATE decks SET
		name = :name,
		description = :description,
		total_price = :total_price,
		is_public = :is_public,
		updated_at = :updated_at
	WHERE deck_id = :deck_id AND user_id = :user_id`

	if _, err := sqlx.NamedExecContext(ctx, tx, q, dk); err != nil {
		return fmt.Errorf("updating deck[%s]: %w", dk.ID, err)
	}

	return nil
}

func InsertCards(ctx context.Context, tx sqlx.ExtContext, deckID string, cards []Card) error {
	const q = `
	INSERT INTO deck_cards
		(deck_id, position, card_id, name, unit_price, is_basic_energy)
	VALUES
		($1, $2, $3, $4, $5, $6)`

	for i, c := range cards {
		if _, err := tx.ExecContext(ctx, q, deckID, i, c.CardID, c.Name, c.UnitPrice, c.IsBasicEnergy); err != nil {
			return fmt.Errorf("inserting deck card at position %d: %w", i, err)
		}
	}

	return nil
}

func DeleteCards(ctx context.Context, tx sqlx.ExtContext, deckID string) error {
	const q = `DELETE FROM deck_cards WHERE deck_id = $1`

	if _, err := tx.ExecContext(ctx, q, deckID); err != nil {
		return fmt.Errorf("deleting cards of deck[%s]: %w", deckID, err)
	}

	return nil
}

func FetchCards(ctx context.Context, db sqlx.ExtContext, deckID string) ([]Card, error) {
	const q = `
	SELECT card_id, name, unit_price, is_basic_energy
	FROM deck_cards
	WHERE deck_id = $1
	ORDER BY position`

	cards := []Card{}
	if err := sqlx.SelectContext(ctx, db, &cards, q, deckID); err != nil {
		return nil, fmt.Errorf("selecting cards of deck[%s]: %w", deckID, err)
	}

	return cards, nil
}

// FetchOwned returns the deck only when it belongs to the user.
func FetchOwned(ctx context.Context, db sqlx.ExtContext, userID string, deckID string) (Deck, error) {
	const q = `SELECT * FROM decks WHERE deck_id = $1 AND user_id = $2`

	var dk Deck
	if err := sqlx.GetContext(ctx, db, &dk, q, deckID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Deck{}, ErrNotFound
		}
		return Deck{}, fmt.Errorf("selecting deck[%s]: %w", deckID, err)
	}

	return dk, nil
}

// FetchVisible returns the deck when it is public or owned by the user.
func FetchVisible(ctx context.Context, db sqlx.ExtContext, userID string, deckID string) (Deck, error) {
	const q = `SELECT * FROM decks WHERE deck_id = $1 AND (is_public OR user_id = $2)`

	var dk Deck
	if err := sqlx.GetContext(ctx, db, &dk, q, deckID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Deck{}, ErrNotFound
		}
		return Deck{}, fmt.Errorf("selecting deck[%s]: %w", deckID, err)
	}

	return dk, nil
}

func Delete(ctx context.Context, db sqlx.ExtContext, userID string, deckID string) error {
	const q = `DELETE FROM decks WHERE deck_id = $1 AND user_id = $2`

	res, err := db.ExecContext(ctx, q, deckID, userID)
	if err != nil {
		return fmt.Errorf("deleting deck[%s]: %w", deckID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	return nil
}

func ListByUser(ctx context.Context, db sqlx.ExtContext, userID string, page int, perPage int) ([]Deck, int, error) {
	var total int
	if err := sqlx.GetContext(ctx, db, &total, `SELECT count(*) FROM decks WHERE user_id = $1`, userID); err != nil {
		return nil, 0, fmt.Errorf("counting decks: %w", err)
	}

	const q = `
	SELECT * FROM decks
	WHERE user_id = $1
	ORDER BY updated_at DESC
	LIMIT $2 OFFSET $3`

	decks := []Deck{}
	if err := sqlx.SelectContext(ctx, db, &decks, q, userID, perPage, (page-1)*perPage); err != nil {
		return nil, 0, fmt.Errorf("selecting decks: %w", err)
	}

	return decks, total, nil
}

func ListPublic(ctx context.Context, db sqlx.ExtContext, page int, perPage int) ([]PublicDeck, int, error) {
	var total int
	if err := sqlx.GetContext(ctx, db, &total, `SELECT count(*) FROM decks WHERE is_public`); err != nil {
		return nil, 0, fmt.Errorf("counting public decks: %w", err)
	}

	const q = `
	SELECT d.*, u.username
	FROM decks d
	JOIN users u ON u.user_id = d.user_id
	WHERE d.is_public
	ORDER BY d.updated_at DESC
	LIMIT $1 OFFSET $2`

	decks := []PublicDeck{}
	if err := sqlx.SelectContext(ctx, db, &decks, q, perPage, (page-1)*perPage); err != nil {
		return nil, 0, fmt.Errorf("selecting public decks: %w", err)
	}

	return decks, total, nil
}
