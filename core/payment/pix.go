package payment

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/pokecards/backend/config"
	"github.com/shopspring/decimal"
)

// Reference is the payload behind a pix payment token: the charged
// amount plus the static merchant identity, rendered as a QR-code
// string by the storefront.
type Reference struct {
	Amount      decimal.Decimal `json:"amount"`
	OrderID     string          `json:"order_id"`
	Merchant    string          `json:"merchant"`
	Key         string          `json:"key"`
	Description string          `json:"description"`
}

func NewReference(cfg config.Pix, amount decimal.Decimal, orderID string) Reference {
	return Reference{
		Amount:      amount,
		OrderID:     orderID,
		Merchant:    cfg.Merchant,
		Key:         cfg.Key,
		Description: fmt.Sprintf("Order #%s", orderID),
	}
}

// Encode renders the reference as an opaque token. The format is
// base64 over JSON and must round-trip through DecodeReference.
func (ref Reference) Encode() (string, error) {
	b, err := json.Marshal(ref)
	if err != nil {
		return "", fmt.Errorf("marshalling pix reference: %w", err)
	}

	return base64.StdEncoding.EncodeToString(b), nil
}

func DecodeReference(token string) (Reference, error) {
	b, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Reference{}, fmt.Errorf("decoding pix token: %w", err)
	}

	var ref Reference
	if err := json.Unmarshal(b, &ref); err != nil {
		return Reference{}, fmt.Errorf("unmarshalling pix reference: %w", err)
	}

	return ref, nil
}
