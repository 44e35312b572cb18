package inmemory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/tokend-network/tokend-daemon/internal/core/domain"
)

// TokenRepositoryImpl represents an in memory storage
type TokenRepositoryImpl struct {
	tokens map[domain.TokenKey]domain.TokenRecord
	lock   *sync.RWMutex
}

// NewTokenRepositoryImpl returns a new empty TokenRepositoryImpl
func NewTokenRepositoryImpl() *TokenRepositoryImpl {
	return &TokenRepositoryImpl{
		tokens: map[domain.TokenKey]domain.TokenRecord{},
		lock:   &sync.RWMutex{},
	}
}

// AddTokens adds the given records to the storage, skipping those whose key
// is already present
func (r *TokenRepositoryImpl) AddTokens(
	ctx context.Context, tokens []domain.TokenRecord,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	return addTokens(r.tokens, tokens)
}

// GetAllTokens returns all the records stored, spent ones included
func (r *TokenRepositoryImpl) GetAllTokens(
	ctx context.Context,
) ([]domain.TokenRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	tokens := make([]domain.TokenRecord, 0, len(r.tokens))
	for _, t := range r.tokens {
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// GetTokenForKey returns the record for the given key
func (r *TokenRepositoryImpl) GetTokenForKey(
	ctx context.Context, key domain.TokenKey,
) (*domain.TokenRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	token, ok := r.tokens[key]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	return &token, nil
}

// QueryUnspent returns the unspent records matching the given query that
// are either unlocked or locked by the given reservation
func (r *TokenRepositoryImpl) QueryUnspent(
	ctx context.Context,
	query domain.TokenQuery,
	reservationID uuid.UUID,
) ([]domain.TokenRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return queryUnspent(r.tokens, query, reservationID), nil
}

// GetBalance returns the total amount of unspent records of the given type
// held by the given owner
func (r *TokenRepositoryImpl) GetBalance(
	ctx context.Context, owner, typeID string,
) (uint64, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return getBalance(r.tokens, owner, typeID, false), nil
}

// GetUnlockedBalance returns the total amount of unspent and unlocked
// records of the given type held by the given owner
func (r *TokenRepositoryImpl) GetUnlockedBalance(
	ctx context.Context, owner, typeID string,
) (uint64, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return getBalance(r.tokens, owner, typeID, true), nil
}

// LockTokens locks the given records associating them with the reservation
// of the redemption where they're currently used as inputs
func (r *TokenRepositoryImpl) LockTokens(
	ctx context.Context,
	keys []domain.TokenKey,
	reservationID uuid.UUID,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	return lockTokens(r.tokens, keys, reservationID)
}

// UnlockTokens unlocks the given locked records
func (r *TokenRepositoryImpl) UnlockTokens(
	ctx context.Context, keys []domain.TokenKey,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	return unlockTokens(r.tokens, keys)
}

// SpendTokens marks the given records as spent
func (r *TokenRepositoryImpl) SpendTokens(
	ctx context.Context, keys []domain.TokenKey,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	return spendTokens(r.tokens, keys)
}

func addTokens(
	storage map[domain.TokenKey]domain.TokenRecord,
	tokens []domain.TokenRecord,
) error {
	for _, token := range tokens {
		if _, ok := storage[token.Key()]; !ok {
			storage[token.Key()] = token
		}
	}
	return nil
}

func queryUnspent(
	storage map[domain.TokenKey]domain.TokenRecord,
	query domain.TokenQuery,
	reservationID uuid.UUID,
) []domain.TokenRecord {
	tokens := make([]domain.TokenRecord, 0)
	for _, t := range storage {
		if t.IsSpent() {
			continue
		}
		if t.IsLocked() && t.LockedBy.String() != reservationID.String() {
			continue
		}
		if !query.Matches(t) {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

func getBalance(
	storage map[domain.TokenKey]domain.TokenRecord,
	owner, typeID string,
	excludeLocked bool,
) uint64 {
	var balance uint64
	for _, t := range storage {
		if t.Owner != owner || t.TypeID != typeID || t.IsSpent() {
			continue
		}
		if excludeLocked && t.IsLocked() {
			continue
		}
		balance += t.Amount
	}
	return balance
}

func lockTokens(
	storage map[domain.TokenKey]domain.TokenRecord,
	keys []domain.TokenKey,
	reservationID uuid.UUID,
) error {
	if err := checkKeys(storage, keys); err != nil {
		return err
	}

	// all or nothing: locking must not leave a partial claim behind
	for _, key := range keys {
		token := storage[key]
		if token.IsLocked() && token.LockedBy.String() != reservationID.String() {
			return domain.ErrTokenAlreadyLocked
		}
	}

	for _, key := range keys {
		token := storage[key]
		if err := token.Lock(&reservationID); err != nil {
			return err
		}
		storage[key] = token
	}
	return nil
}

func unlockTokens(
	storage map[domain.TokenKey]domain.TokenRecord,
	keys []domain.TokenKey,
) error {
	if err := checkKeys(storage, keys); err != nil {
		return err
	}

	for _, key := range keys {
		token := storage[key]
		token.Unlock()
		storage[key] = token
	}
	return nil
}

func spendTokens(
	storage map[domain.TokenKey]domain.TokenRecord,
	keys []domain.TokenKey,
) error {
	if err := checkKeys(storage, keys); err != nil {
		return err
	}

	for _, key := range keys {
		token := storage[key]
		token.Spend()
		storage[key] = token
	}
	return nil
}

func checkKeys(
	storage map[domain.TokenKey]domain.TokenRecord,
	keys []domain.TokenKey,
) error {
	for _, key := range keys {
		if _, ok := storage[key]; !ok {
			return domain.ErrTokenNotFound
		}
	}
	return nil
}
