package deck

import (
	"time"

	"github.com/shopspring/decimal"
)

type Deck struct {
	ID          string          `json:"id" db:"deck_id"`
	UserID      string          `json:"userId" db:"user_id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	TotalPrice  decimal.Decimal `json:"totalPrice" db:"total_price"`
	IsPublic    bool            `json:"isPublic" db:"is_public"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
	Cards       []Card          `json:"cards,omitempty" db:"-"`
}

// Card is one entry of a deck list, in deck order. Duplicates appear
// as repeated entries sharing a CardID.
type Card struct {
	CardID        string          `json:"id" db:"card_id"`
	Name          string          `json:"name" db:"name"`
	UnitPrice     decimal.Decimal `json:"price" db:"unit_price"`
	IsBasicEnergy bool            `json:"isBasicEnergy" db:"is_basic_energy"`
}

type DeckNew struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Cards       []Card `json:"cards"`
	IsPublic    bool   `json:"isPublic"`
}

// DeckUp is a partial update. A nil Cards slice leaves the stored card
// list and total price untouched; a non-nil one replaces them after
// revalidation.
type DeckUp struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Cards       []Card  `json:"cards"`
	IsPublic    *bool   `json:"isPublic"`
}

// PublicDeck decorates a public listing entry with its owner.
type PublicDeck struct {
	Deck
	Username string `json:"username" db:"username"`
}
