package shared

import (
	"context"
)

// UnitOfWork groups the write-side repositories under one transaction.
// Within retries on serialization failures, so fn must be idempotent.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Idempotency() IdempotencyRepository
	Reads() CommandReads
}
