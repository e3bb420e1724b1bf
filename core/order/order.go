package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Method string

const (
	// Pix checkouts get a flat 5% discount and a payment reference.
	Pix Method = "pix"

	// Other covers every non-pix method; full price, no reference.
	Other Method = "other"
)

type Order struct {
	ID            string          `json:"id" db:"order_id"`
	UserID        string          `json:"userId" db:"user_id"`
	Total         decimal.Decimal `json:"total" db:"total"`
	PaymentMethod Method          `json:"paymentMethod" db:"payment_method"`
	Status        Status          `json:"status" db:"status"`
	PixQRCode     string          `json:"pixQrCode,omitempty" db:"pix_qr_code"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
	Items         []Item          `json:"items,omitempty" db:"-"`
}

// Item snapshots one purchased line. UnitPrice is the catalog price at
// the moment of checkout and never changes afterwards.
type Item struct {
	OrderID   string          `json:"orderId" db:"order_id"`
	ProductID string          `json:"productId" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" db:"unit_price"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

type OrderNew struct {
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,oneof=pix other"`
}

type StatusUp struct {
	ID        string    `db:"order_id"`
	Status    Status    `db:"status"`
	UpdatedAt time.Time `db:"updated_at"`
}
