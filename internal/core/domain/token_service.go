package domain

import (
	"github.com/google/uuid"
)

// IsKeyEqual returns whether the provided TokenKey matches that of the
// current record.
func (t *TokenRecord) IsKeyEqual(key TokenKey) bool {
	return t.TxID == key.TxID && t.Index == key.Index
}

// IsSpent returns whether the record is already spent.
func (t *TokenRecord) IsSpent() bool {
	return t.Spent
}

// IsLocked returns whether the record is already locked - used in some not
// yet submitted redemption.
func (t *TokenRecord) IsLocked() bool {
	return t.Locked
}

// Key returns the TokenKey of the current record.
func (t *TokenRecord) Key() TokenKey {
	return TokenKey{
		TxID:  t.TxID,
		Index: t.Index,
	}
}

// Spend marks the record as spent.
func (t *TokenRecord) Spend() {
	t.Spent = true
}

// Lock marks the current record as locked, referring to some reservation by
// its UUID. Locking an already locked record under the same reservation is
// a no-op, under a different one it fails.
func (t *TokenRecord) Lock(reservationID *uuid.UUID) error {
	if t.IsLocked() {
		if reservationID.String() != t.LockedBy.String() {
			return ErrTokenAlreadyLocked
		}
		return nil
	}

	t.Locked = true
	t.LockedBy = reservationID
	return nil
}

// Unlock marks the current locked record as unlocked.
func (t *TokenRecord) Unlock() {
	t.Locked = false
	t.LockedBy = nil
}
