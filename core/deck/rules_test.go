package deck

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// legalDeck builds a 60-card list out of 15 distinct cards, 4 copies
// each, priced 1.50 apiece.
func legalDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	for i := 0; i < 15; i++ {
		for j := 0; j < CopyLimit; j++ {
			cards = append(cards, Card{
				CardID:    fmt.Sprintf("card-%d", i),
				Name:      fmt.Sprintf("Card %d", i),
				UnitPrice: decimal.RequireFromString("1.50"),
			})
		}
	}
	return cards
}

func TestValidateAndPrice(t *testing.T) {
	total, err := ValidateAndPrice(legalDeck())
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("90.00")), "got total %s", total)
}

func TestValidateAndPriceWrongSize(t *testing.T) {
	cards := append(legalDeck(), Card{CardID: "extra", Name: "Extra"})
	_, err := ValidateAndPrice(cards)
	assert.ErrorIs(t, err, ErrWrongSize)

	_, err = ValidateAndPrice(cards[:59])
	assert.ErrorIs(t, err, ErrWrongSize)

	_, err = ValidateAndPrice(nil)
	assert.ErrorIs(t, err, ErrWrongSize)
}

func TestValidateAndPriceCopyLimit(t *testing.T) {
	cards := legalDeck()

	// Turn a copy of card-1 into a fifth Pikachu.
	for i := range cards {
		if cards[i].CardID == "card-0" {
			cards[i] = Card{CardID: "pika", Name: "Pikachu"}
		}
	}
	cards[len(cards)-1] = Card{CardID: "pika", Name: "Pikachu"}

	_, err := ValidateAndPrice(cards)
	require.Error(t, err)

	var cle *CopyLimitError
	require.True(t, errors.As(err, &cle))
	assert.Equal(t, "Pikachu", cle.CardName)
	assert.Contains(t, err.Error(), "Pikachu")
}

func TestValidateAndPriceBasicEnergyExempt(t *testing.T) {
	cards := make([]Card, 0, DeckSize)
	for i := 0; i < 40; i++ {
		cards = append(cards, Card{
			CardID:        "fire-energy",
			Name:          "Fire Energy",
			UnitPrice:     decimal.RequireFromString("0.25"),
			IsBasicEnergy: true,
		})
	}
	for i := 0; i < 5; i++ {
		for j := 0; j < CopyLimit; j++ {
			cards = append(cards, Card{
				CardID:    fmt.Sprintf("card-%d", i),
				Name:      fmt.Sprintf("Card %d", i),
				UnitPrice: decimal.RequireFromString("2.00"),
			})
		}
	}

	total, err := ValidateAndPrice(cards)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("50.00")), "got total %s", total)
}

func TestValidateAndPriceCountsAcrossPositions(t *testing.T) {
	// Five copies spread through the deck are still five copies.
	cards := legalDeck()
	cards[0] = Card{CardID: "zard", Name: "Charizard"}
	cards[14] = Card{CardID: "zard", Name: "Charizard"}
	cards[29] = Card{CardID: "zard", Name: "Charizard"}
	cards[44] = Card{CardID: "zard", Name: "Charizard"}
	cards[59] = Card{CardID: "zard", Name: "Charizard"}

	_, err := ValidateAndPrice(cards)
	var cle *CopyLimitError
	require.True(t, errors.As(err, &cle))
	assert.Equal(t, "Charizard", cle.CardName)
}
