package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/tokend-network/tokend-daemon/internal/core/domain"
)

// Reservation is a scoped, soft claim over the records selected for a draft
// under construction. It prevents concurrent redemptions from picking the
// same records before the enclosing transaction is submitted. Expiry of
// stale reservations is the store's responsibility.
type Reservation struct {
	id       uuid.UUID
	repo     domain.TokenRepository
	keys     []domain.TokenKey
	released bool
}

func newReservation(repo domain.TokenRepository) *Reservation {
	return &Reservation{
		id:   uuid.New(),
		repo: repo,
		keys: make([]domain.TokenKey, 0),
	}
}

// ID returns the identifier of the reservation.
func (r *Reservation) ID() uuid.UUID {
	return r.id
}

// lock claims the given records under the reservation.
func (r *Reservation) lock(
	ctx context.Context,
	records []domain.TokenRecord,
) error {
	keys := make([]domain.TokenKey, 0, len(records))
	for _, record := range records {
		keys = append(keys, record.Key())
	}

	if err := r.repo.LockTokens(ctx, keys, r.id); err != nil {
		return err
	}
	r.keys = append(r.keys, keys...)
	return nil
}

// Release unlocks all records claimed under the reservation. It is safe to
// call it more than once.
func (r *Reservation) Release(ctx context.Context) error {
	if r.released {
		return nil
	}
	r.released = true

	if len(r.keys) == 0 {
		return nil
	}
	return r.repo.UnlockTokens(ctx, r.keys)
}
