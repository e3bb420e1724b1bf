package test

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pokecards/backend/core/cart"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

type cartLine struct {
	ProductID string
	Quantity  int
	Subtotal  decimal.Decimal
}

func flatten(crt cart.Cart) []cartLine {
	out := make([]cartLine, 0, len(crt.Items))
	for _, ln := range crt.Items {
		out = append(out, cartLine{
			ProductID: ln.ProductID,
			Quantity:  ln.Quantity,
			Subtotal:  ln.Subtotal,
		})
	}
	return out
}

func TestCart(t *testing.T) {
	env := NewTestEnv(t, "cart")

	pika := env.CreateProduct(t, "Pikachu VMAX", "89.90", 10)
	zard := env.CreateProduct(t, "Charizard GX", "156.90", 2)

	env.Login(t, env.UserName, env.UserPass)

	// Adding 2 and then 3 of the same product composes into a single
	// line of 5.
	add := func(productID string, qty int) int {
		body := map[string]interface{}{"productId": productID, "quantity": qty}
		return env.Do(t, http.MethodPost, "/cart/items", body, nil)
	}

	require.Equal(t, http.StatusNoContent, add(pika.ID, 2))
	require.Equal(t, http.StatusNoContent, add(pika.ID, 3))
	require.Equal(t, http.StatusNoContent, add(zard.ID, 1))

	var crt cart.Cart
	require.Equal(t, http.StatusOK, env.Do(t, http.MethodGet, "/cart", nil, &crt))

	want := []cartLine{
		{ProductID: pika.ID, Quantity: 5, Subtotal: decimal.RequireFromString("449.50")},
		{ProductID: zard.ID, Quantity: 1, Subtotal: decimal.RequireFromString("156.90")},
	}
	if diff := cmp.Diff(want, flatten(crt), decimalComparer); diff != "" {
		t.Fatalf("unexpected cart lines (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, crt.Count)
	assert.True(t, crt.Total.Equal(decimal.RequireFromString("606.40")), "total %s", crt.Total)

	var count struct {
		Count int `json:"count"`
	}
	require.Equal(t, http.StatusOK, env.Do(t, http.MethodGet, "/cart/count", nil, &count))
	assert.Equal(t, 2, count.Count)

	// Stock ceiling: 5 in cart + 6 more > 10.
	assert.Equal(t, http.StatusConflict, add(pika.ID, 6))

	// Unknown product.
	assert.Equal(t, http.StatusNotFound, add("3b631f24-9087-4fa6-be3f-7823d2bc4bb0", 1))

	pikaItem := crt.Items[0].Item

	// Quantity update, over-stock update, delete via zero quantity.
	st := env.Do(t, http.MethodPut, "/cart/items/"+pikaItem.ID, map[string]int{"quantity": 4}, nil)
	require.Equal(t, http.StatusNoContent, st)

	st = env.Do(t, http.MethodPut, "/cart/items/"+pikaItem.ID, map[string]int{"quantity": 11}, nil)
	assert.Equal(t, http.StatusConflict, st)

	st = env.Do(t, http.MethodPut, "/cart/items/"+pikaItem.ID, map[string]int{"quantity": 0}, nil)
	require.Equal(t, http.StatusNoContent, st)

	require.Equal(t, http.StatusOK, env.Do(t, http.MethodGet, "/cart", nil, &crt))
	require.Len(t, crt.Items, 1)
	assert.Equal(t, zard.ID, crt.Items[0].ProductID)

	// Explicit removal, then removal of a gone item.
	zardItem := crt.Items[0].Item
	require.Equal(t, http.StatusNoContent, env.Do(t, http.MethodDelete, "/cart/items/"+zardItem.ID, nil, nil))
	assert.Equal(t, http.StatusNotFound, env.Do(t, http.MethodDelete, "/cart/items/"+zardItem.ID, nil, nil))

	// Clear on an already empty cart is fine.
	require.Equal(t, http.StatusNoContent, env.Do(t, http.MethodDelete, "/cart", nil, nil))

	require.Equal(t, http.StatusOK, env.Do(t, http.MethodGet, "/cart", nil, &crt))
	assert.Empty(t, crt.Items)
	assert.Equal(t, 0, crt.Count)
}

func TestCartRequiresAuth(t *testing.T) {
	env := NewTestEnv(t, "cart-noauth")

	assert.Equal(t, http.StatusUnauthorized, env.Do(t, http.MethodGet, "/cart", nil, nil))

	body := map[string]interface{}{"productId": "3b631f24-9087-4fa6-be3f-7823d2bc4bb0", "quantity": 1}
	assert.Equal(t, http.StatusUnauthorized, env.Do(t, http.MethodPost, "/cart/items", body, nil))
}
