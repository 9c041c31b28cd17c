package repository

import (
	"context"
	"time"

	"coworkhub/internal/infra"
	"coworkhub/internal/infra/db"

	"github.com/google/uuid"
)

type IdempotencyRepository struct {
	q db.Querier
}

func NewIdempotencyRepository(q db.Querier) *IdempotencyRepository {
	return &IdempotencyRepository{q: q}
}

const tryInsertIdempotencySQL = `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, 'processing', $5, now(), now())
ON CONFLICT (key, user_id) DO NOTHING
`

func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx, tryInsertIdempotencySQL, key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim idempotency key", err, infra.KindFromPgError(err))
	}
	return tag.RowsAffected() > 0, nil
}

const markCompletedSQL = `
UPDATE idempotency_keys
SET status = 'completed', result_booking_id = $3, updated_at = now()
WHERE key = $1 AND user_id = $2
`

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, key, userID uuid.UUID, resultBookingID uuid.UUID) error {
	tag, err := r.q.Exec(ctx, markCompletedSQL, key, userID, resultBookingID)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err, infra.KindFromPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}
