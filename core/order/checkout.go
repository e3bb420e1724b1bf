package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pokecards/backend/config"
	"github.com/pokecards/backend/core/cart"
	"github.com/pokecards/backend/core/payment"
	"github.com/pokecards/backend/core/product"
	"github.com/pokecards/backend/database"
	"github.com/pokecards/backend/random"
	"github.com/pokecards/backend/validate"
	"github.com/shopspring/decimal"
)

var ErrEmptyCart = errors.New("cart is empty")

// UnavailableError reports a cart line whose product vanished or was
// deactivated between add and checkout.
type UnavailableError struct {
	Name string
}

func (e *UnavailableError) Error() string {
	name := e.Name
	if name == "" {
		name = "unknown"
	}
	return fmt.Sprintf("product %s is not available", name)
}

// StockError reports a line asking for more units than the catalog
// holds.
type StockError struct {
	Name string
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.Name)
}

var pixRate = decimal.NewFromFloat(0.95)

// Total applies the payment-method pricing rule to a raw subtotal.
// Pix gets a flat 5% off, rounded to cents; everything else pays full
// price. Computed once at checkout and never again.
func Total(method Method, subtotal decimal.Decimal) decimal.Decimal {
	if method == Pix {
		return subtotal.Mul(pixRate).Round(2)
	}
	return subtotal
}

// Checkout converts the user's cart into an immutable pending order:
// price snapshot per line, conditional stock decrement, cart flush.
// The mutating steps run in one transaction; a failure on any line
// leaves no stock change, no order and an intact cart.
func Checkout(ctx context.Context, db *sqlx.DB, pixCfg config.Pix, userID string, method Method) (Order, error) {
	lines, err := cart.FetchItems(ctx, db, userID)
	if err != nil {
		return Order{}, fmt.Errorf("fetching cart items: %w", err)
	}

	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}

	now := time.Now().UTC()
	ord := Order{
		ID:            validate.GenerateID(),
		UserID:        userID,
		PaymentMethod: method,
		Status:        Pending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	subtotal := decimal.Zero
	names := make(map[string]string, len(lines))

	for _, ln := range lines {
		prd, err := product.Fetch(ctx, db, ln.ProductID)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				return Order{}, &UnavailableError{}
			}
			return Order{}, fmt.Errorf("fetching product[%s]: %w", ln.ProductID, err)
		}

		if !prd.IsActive {
			return Order{}, &UnavailableError{Name: prd.Name}
		}
		if prd.Stock < ln.Quantity {
			return Order{}, &StockError{Name: prd.Name}
		}

		names[prd.ID] = prd.Name
		subtotal = subtotal.Add(prd.Price.Mul(decimal.NewFromInt(int64(ln.Quantity))))

		ord.Items = append(ord.Items, Item{
			OrderID:   ord.ID,
			ProductID: prd.ID,
			Quantity:  ln.Quantity,
			UnitPrice: prd.Price,
			CreatedAt: now,
		})
	}

	ord.Total = Total(method, subtotal)

	if method == Pix {
		ref := payment.NewReference(pixCfg, ord.Total, ord.ID)
		if ord.PixQRCode, err = ref.Encode(); err != nil {
			return Order{}, fmt.Errorf("encoding pix reference: %w", err)
		}
	}

	err = database.Transaction(db, func(tx sqlx.ExtContext) error {
		if err := Create(ctx, tx, ord); err != nil {
			return err
		}

		for _, it := range ord.Items {
			if err := CreateItem(ctx, tx, it); err != nil {
				return err
			}

			// The conditional decrement is the race guard: a
			// concurrent checkout that drained the stock first makes
			// this statement match nothing, and the whole transaction
			// rolls back.
			if err := product.DecrementStock(ctx, tx, it.ProductID, it.Quantity); err != nil {
				if errors.Is(err, product.ErrInsufficientStock) {
					return &StockError{Name: names[it.ProductID]}
				}
				return err
			}
		}

		return cart.Delete(ctx, tx, userID)
	})
	if err != nil {
		var se *StockError
		if errors.As(err, &se) {
			return Order{}, se
		}
		return Order{}, fmt.Errorf("creating order for user[%s]: %w", userID, err)
	}

	return ord, nil
}

// Quote is the priced "buy now" offer for a single product: same pix
// pricing as checkout, no cart, no stock mutation.
type Quote struct {
	Product       product.Product `json:"product"`
	Quantity      int             `json:"quantity"`
	OriginalTotal decimal.Decimal `json:"originalTotal"`
	Total         decimal.Decimal `json:"total"`
	Discount      decimal.Decimal `json:"discount"`
	QRCode        string          `json:"qrCode"`
	PaymentMethod Method          `json:"paymentMethod"`
}

// QuoteDirect prices qty units of one product for a direct pix
// payment. Purely informational: nothing is reserved or written.
func QuoteDirect(ctx context.Context, db *sqlx.DB, pixCfg config.Pix, productID string, qty int) (Quote, error) {
	prd, err := product.Fetch(ctx, db, productID)
	if err != nil {
		return Quote{}, err
	}

	if prd.Stock < qty {
		return Quote{}, &StockError{Name: prd.Name}
	}

	original := prd.Price.Mul(decimal.NewFromInt(int64(qty)))
	total := Total(Pix, original)

	refID := fmt.Sprintf("direct-%s-%s", prd.ID, random.String(8))
	ref := payment.NewReference(pixCfg, total, refID)
	qr, err := ref.Encode()
	if err != nil {
		return Quote{}, fmt.Errorf("encoding pix reference: %w", err)
	}

	return Quote{
		Product:       prd,
		Quantity:      qty,
		OriginalTotal: original,
		Total:         total,
		Discount:      original.Sub(total),
		QRCode:        qr,
		PaymentMethod: Pix,
	}, nil
}
