package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string           `json:"id" db:"product_id"`
	Name          string           `json:"name" db:"name"`
	Description   string           `json:"description" db:"description"`
	Price         decimal.Decimal  `json:"price" db:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty" db:"original_price"`
	Category      string           `json:"category" db:"category"`
	Subcategory   string           `json:"subcategory" db:"subcategory"`
	Rarity        string           `json:"rarity" db:"rarity"`
	SetName       string           `json:"setName" db:"set_name"`
	ImageURL      string           `json:"imageUrl" db:"image_url"`
	Stock         int              `json:"stock" db:"stock"`
	Rating        decimal.Decimal  `json:"rating" db:"rating"`
	IsActive      bool             `json:"isActive" db:"is_active"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time        `json:"updatedAt" db:"updated_at"`
}

type ProductNew struct {
	Name          string           `json:"name" validate:"required"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	Category      string           `json:"category"`
	Subcategory   string           `json:"subcategory"`
	Rarity        string           `json:"rarity"`
	SetName       string           `json:"setName"`
	ImageURL      string           `json:"imageUrl"`
	Stock         int              `json:"stock" validate:"gte=0"`
	Rating        decimal.Decimal  `json:"rating"`
}

type ProductUp struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	Category      *string          `json:"category"`
	Subcategory   *string          `json:"subcategory"`
	Rarity        *string          `json:"rarity"`
	SetName       *string          `json:"setName"`
	ImageURL      *string          `json:"imageUrl"`
	Stock         *int             `json:"stock" validate:"omitempty,gte=0"`
	Rating        *decimal.Decimal `json:"rating"`
	IsActive      *bool            `json:"isActive"`
}

// Filter narrows the catalog listing. Zero values mean "no filter".
type Filter struct {
	Category string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Page     int
	PerPage  int
}
