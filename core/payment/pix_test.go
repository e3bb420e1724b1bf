package payment

import (
	"context"
	"testing"

	"github.com/pokecards/backend/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pixCfg = config.Pix{
	Merchant: "PokéCards",
	Key:      "contato@pokecards.com.br",
}

func TestReferenceRoundTrip(t *testing.T) {
	ref := NewReference(pixCfg, decimal.RequireFromString("285.00"), "order-123")

	token, err := ref.Encode()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := DecodeReference(token)
	require.NoError(t, err)

	assert.True(t, got.Amount.Equal(ref.Amount), "amount %s", got.Amount)
	assert.Equal(t, "order-123", got.OrderID)
	assert.Equal(t, pixCfg.Merchant, got.Merchant)
	assert.Equal(t, pixCfg.Key, got.Key)
	assert.Equal(t, "Order #order-123", got.Description)
}

func TestDecodeReferenceRejectsGarbage(t *testing.T) {
	_, err := DecodeReference("not base64!!!")
	assert.Error(t, err)

	// Valid base64, invalid JSON.
	_, err = DecodeReference("aGVsbG8=")
	assert.Error(t, err)
}

func TestSimulatorStatus(t *testing.T) {
	var sim Simulator
	for i := 0; i < 20; i++ {
		st, err := sim.Status(context.Background(), "payment-1")
		require.NoError(t, err)
		assert.Contains(t, []Status{StatusPending, StatusPaid, StatusFailed}, st)
	}
}
