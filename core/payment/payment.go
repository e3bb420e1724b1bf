// Package payment carries the pix reference encoding and the gateway
// seam. There is no real payment provider behind it: the Gateway
// interface is where one would plug in, and Simulator is the stand-in
// used for development.
package payment

import (
	"context"
	"math/rand"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

// Gateway resolves the state of a payment with the provider.
type Gateway interface {
	Status(ctx context.Context, paymentID string) (Status, error)
}

// Simulator fakes a provider by answering with a random status.
type Simulator struct{}

func (Simulator) Status(ctx context.Context, paymentID string) (Status, error) {
	statuses := []Status{StatusPending, StatusPaid, StatusFailed}
	return statuses[rand.Intn(len(statuses))], nil
}
