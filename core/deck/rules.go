package deck

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// DeckSize is the exact number of cards a legal deck holds.
	DeckSize = 60

	// CopyLimit caps the copies of any one card. Basic energy cards
	// are exempt.
	CopyLimit = 4
)

var ErrWrongSize = fmt.Errorf("a deck must contain exactly %d cards", DeckSize)

type CopyLimitError struct {
	CardName string
}

func (e *CopyLimitError) Error() string {
	return fmt.Sprintf("a maximum of %d copies of %s is allowed", CopyLimit, e.CardName)
}

// ValidateAndPrice checks the deck-construction rules and returns the
// summed price of the list. Prices come from the submitted cards; they
// are not re-fetched from the catalog.
func ValidateAndPrice(cards []Card) (decimal.Decimal, error) {
	if len(cards) != DeckSize {
		return decimal.Zero, ErrWrongSize
	}

	counts := make(map[string]int)
	total := decimal.Zero

	for _, c := range cards {
		if c.CardID != "" {
			counts[c.CardID]++
			if counts[c.CardID] > CopyLimit && !c.IsBasicEnergy {
				return decimal.Zero, &CopyLimitError{CardName: c.Name}
			}
		}

		total = total.Add(c.UnitPrice)
	}

	return total, nil
}

// CheckName rejects empty deck names after trimming.
func CheckName(name string) error {
	if name == "" {
		return errors.New("deck name is required")
	}
	return nil
}
