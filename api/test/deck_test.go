package test

import (
	"net/http"
	"testing"

	"github.com/pokecards/backend/core/deck"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sixtyCards builds a legal 60-card list: 15 distinct cards, 4 copies
// each, 2.00 apiece.
func sixtyCards() []map[string]interface{} {
	names := []string{
		"Pikachu", "Charizard", "Mewtwo", "Rayquaza", "Gardevoir",
		"Lucario", "Gengar", "Snorlax", "Dragonite", "Eevee",
		"Umbreon", "Sylveon", "Blastoise", "Venusaur", "Alakazam",
	}

	cards := make([]map[string]interface{}, 0, 60)
	for i, n := range names {
		for j := 0; j < 4; j++ {
			cards = append(cards, map[string]interface{}{
				"id":    names[i],
				"name":  n,
				"price": "2.00",
			})
		}
	}
	return cards
}

func TestDeck(t *testing.T) {
	env := NewTestEnv(t, "deck")
	env.Login(t, env.UserName, env.UserPass)

	// A 61st card breaks the size rule and nothing is persisted.
	tooBig := append(sixtyCards(), map[string]interface{}{"id": "extra", "name": "Extra", "price": "1.00"})
	body := map[string]interface{}{"name": "Oversized", "cards": tooBig}
	assert.Equal(t, http.StatusBadRequest, env.Do(t, http.MethodPost, "/decks", body, nil))

	var listing struct {
		Decks []deck.Deck `json:"decks"`
		Total int         `json:"total"`
	}
	require.Equal(t, http.StatusOK, env.Do(t, http.MethodGet, "/decks", nil, &listing))
	assert.Zero(t, listing.Total)

	// A fifth copy of a non-energy card names the offender.
	cards := sixtyCards()
	cards[4] = map[string]interface{}{"id": "Pikachu", "name": "Pikachu", "price": "2.00"}
	body = map[string]interface{}{"name": "Too many mice", "cards": cards}

	var errResp struct {
		Error string `json:"error"`
	}
	assert.Equal(t, http.StatusBadRequest, env.Do(t, http.MethodPost, "/decks", body, &errResp))
	assert.Contains(t, errResp.Error, "Pikachu")

	// Empty name.
	body = map[string]interface{}{"name": "   ", "cards": sixtyCards()}
	assert.Equal(t, http.StatusBadRequest, env.Do(t, http.MethodPost, "/decks", body, nil))

	// A legal deck.
	body = map[string]interface{}{
		"name":        "Lightning Rush",
		"description": "fast electric deck",
		"cards":       sixtyCards(),
		"isPublic":    true,
	}

	var created deck.Deck
	require.Equal(t, http.StatusCreated, env.Do(t, http.MethodPost, "/decks", body, &created))
	assert.True(t, created.TotalPrice.Equal(decimal.RequireFromString("120.00")), "total %s", created.TotalPrice)
	assert.True(t, created.IsPublic)

	var fetched deck.Deck
	require.Equal(t, http.StatusOK, env.Do(t, http.MethodGet, "/decks/"+created.ID, nil, &fetched))
	assert.Equal(t, "Lightning Rush", fetched.Name)
	require.Len(t, fetched.Cards, 60)
	assert.Equal(t, "Pikachu", fetched.Cards[0].Name)

	// Metadata-only update keeps cards and price.
	up := map[string]interface{}{"description": "still fast"}
	var updated deck.Deck
	require.Equal(t, http.StatusOK, env.Do(t, http.MethodPut, "/decks/"+created.ID, up, &updated))
	assert.True(t, updated.TotalPrice.Equal(created.TotalPrice))

	require.Equal(t, http.StatusOK, env.Do(t, http.MethodGet, "/decks/"+created.ID, nil, &fetched))
	require.Len(t, fetched.Cards, 60)

	// Replacing the card list revalidates and reprices.
	energy := make([]map[string]interface{}, 0, 60)
	for i := 0; i < 60; i++ {
		energy = append(energy, map[string]interface{}{
			"id":            "fire-energy",
			"name":          "Fire Energy",
			"price":         "0.25",
			"isBasicEnergy": true,
		})
	}
	up = map[string]interface{}{"cards": energy}
	require.Equal(t, http.StatusOK, env.Do(t, http.MethodPut, "/decks/"+created.ID, up, &updated))
	assert.True(t, updated.TotalPrice.Equal(decimal.RequireFromString("15.00")), "total %s", updated.TotalPrice)

	// An invalid replacement leaves the stored deck untouched.
	up = map[string]interface{}{"cards": energy[:59]}
	assert.Equal(t, http.StatusBadRequest, env.Do(t, http.MethodPut, "/decks/"+created.ID, up, nil))

	require.Equal(t, http.StatusOK, env.Do(t, http.MethodGet, "/decks/"+created.ID, nil, &fetched))
	require.Len(t, fetched.Cards, 60)
	assert.True(t, fetched.TotalPrice.Equal(decimal.RequireFromString("15.00")))

	require.Equal(t, http.StatusOK, env.Do(t, http.MethodGet, "/decks", nil, &listing))
	assert.Equal(t, 1, listing.Total)

	require.Equal(t, http.StatusNoContent, env.Do(t, http.MethodDelete, "/decks/"+created.ID, nil, nil))
	assert.Equal(t, http.StatusNotFound, env.Do(t, http.MethodGet, "/decks/"+created.ID, nil, nil))
}

func TestDeckCopy(t *testing.T) {
	owner := NewTestEnv(t, "deck-owner")
	owner.Login(t, owner.UserName, owner.UserPass)

	pub := map[string]interface{}{"name": "Shared Deck", "cards": sixtyCards(), "isPublic": true}
	var shared deck.Deck
	require.Equal(t, http.StatusCreated, owner.Do(t, http.MethodPost, "/decks", pub, &shared))

	priv := map[string]interface{}{"name": "Secret Deck", "cards": sixtyCards()}
	var secret deck.Deck
	require.Equal(t, http.StatusCreated, owner.Do(t, http.MethodPost, "/decks", priv, &secret))

	other := NewTestEnv(t, "deck-copier")
	other.Login(t, other.UserName, other.UserPass)

	// Public listing shows the shared deck with its owner.
	var publicList struct {
		Decks []deck.PublicDeck `json:"decks"`
	}
	require.Equal(t, http.StatusOK, other.Do(t, http.MethodGet, "/decks/public", nil, &publicList))

	var found bool
	for _, d := range publicList.Decks {
		if d.ID == shared.ID {
			found = true
			assert.Equal(t, owner.UserName, d.Username)
		}
	}
	assert.True(t, found, "shared deck missing from public listing")

	// The private deck is invisible to others, for reading and copying.
	assert.Equal(t, http.StatusNotFound, other.Do(t, http.MethodGet, "/decks/"+secret.ID, nil, nil))
	assert.Equal(t, http.StatusNotFound, other.Do(t, http.MethodPost, "/decks/"+secret.ID+"/copy", nil, nil))

	// Copying yields a private deck owned by the copier.
	var cp deck.Deck
	require.Equal(t, http.StatusCreated, other.Do(t, http.MethodPost, "/decks/"+shared.ID+"/copy", nil, &cp))
	assert.Equal(t, "Copy of Shared Deck", cp.Name)
	assert.False(t, cp.IsPublic)
	assert.True(t, cp.TotalPrice.Equal(shared.TotalPrice))
	assert.NotEqual(t, shared.ID, cp.ID)

	var fetched deck.Deck
	require.Equal(t, http.StatusOK, other.Do(t, http.MethodGet, "/decks/"+cp.ID, nil, &fetched))
	require.Len(t, fetched.Cards, 60)
}
