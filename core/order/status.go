package order

import "errors"

type Status string

const (
	Pending   Status = "pending"
	Paid      Status = "paid"
	Shipped   Status = "shipped"
	Delivered Status = "delivered"
	Cancelled Status = "cancelled"
)

var ErrInvalidStatus = errors.New("invalid order status")

// ParseStatus accepts exactly the five known lifecycle states. Any
// member of the set is a legal target regardless of the current
// status: the admin simulation flow flips orders around freely, so no
// transition graph is enforced here.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case Pending, Paid, Shipped, Delivered, Cancelled:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}
