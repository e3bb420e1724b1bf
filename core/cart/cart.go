package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	ID        string    `json:"id" db:"item_id"`
	UserID    string    `json:"-" db:"user_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Line is a cart item joined with the live catalog entry. The product
// columns are pointers: a line whose product was deleted underneath it
// is still returned, with a zero subtotal.
type Line struct {
	Item
	Name      *string          `json:"name" db:"name"`
	UnitPrice *decimal.Decimal `json:"unitPrice" db:"unit_price"`
	Subtotal  decimal.Decimal  `json:"subtotal" db:"-"`
}

type Cart struct {
	Items []Line          `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

type ItemNew struct {
	ProductID string `json:"productId" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

type ItemUp struct {
	Quantity int `json:"quantity"`
}
