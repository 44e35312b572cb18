package domain

import (
	"context"

	"github.com/google/uuid"
)

// TokenQuery restricts the set of records returned by QueryUnspent. The
// zero value of a field means no restriction on that field. Where, if set,
// is an extra caller-supplied predicate ANDed with the other criteria.
type TokenQuery struct {
	TypeID string
	Issuer string
	Owner  string
	Where  func(TokenRecord) bool
}

// Matches returns whether the given record satisfies all the criteria of
// the query.
func (q TokenQuery) Matches(record TokenRecord) bool {
	if q.TypeID != "" && record.TypeID != q.TypeID {
		return false
	}
	if q.Issuer != "" && record.Issuer != q.Issuer {
		return false
	}
	if q.Owner != "" && record.Owner != q.Owner {
		return false
	}
	if q.Where != nil && !q.Where(record) {
		return false
	}
	return true
}

type TokenRepository interface {
	AddTokens(ctx context.Context, tokens []TokenRecord) error
	GetAllTokens(ctx context.Context) ([]TokenRecord, error)
	GetTokenForKey(ctx context.Context, key TokenKey) (*TokenRecord, error)
	// QueryUnspent returns the unspent records matching the query that are
	// either unlocked or locked by the given reservation.
	QueryUnspent(
		ctx context.Context,
		query TokenQuery,
		reservationID uuid.UUID,
	) ([]TokenRecord, error)
	GetBalance(ctx context.Context, owner, typeID string) (uint64, error)
	GetUnlockedBalance(ctx context.Context, owner, typeID string) (uint64, error)
	LockTokens(
		ctx context.Context,
		keys []TokenKey,
		reservationID uuid.UUID,
	) error
	UnlockTokens(ctx context.Context, keys []TokenKey) error
	SpendTokens(ctx context.Context, keys []TokenKey) error
}
