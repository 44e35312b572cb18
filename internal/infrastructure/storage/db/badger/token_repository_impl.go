package dbbadger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"
	"github.com/tokend-network/tokend-daemon/internal/core/domain"
)

type tokenRepositoryImpl struct {
	store *badgerhold.Store
}

func newTokenRepositoryImpl(store *badgerhold.Store) domain.TokenRepository {
	return &tokenRepositoryImpl{store: store}
}

func (r *tokenRepositoryImpl) AddTokens(
	ctx context.Context, tokens []domain.TokenRecord,
) error {
	for i := range tokens {
		token := tokens[i]
		if err := r.store.Insert(recordKey(token.Key()), &token); err != nil {
			if err == badgerhold.ErrKeyExists {
				continue
			}
			return err
		}
	}
	return nil
}

func (r *tokenRepositoryImpl) GetAllTokens(
	ctx context.Context,
) ([]domain.TokenRecord, error) {
	tokens := make([]domain.TokenRecord, 0)
	if err := r.store.Find(&tokens, nil); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *tokenRepositoryImpl) GetTokenForKey(
	ctx context.Context, key domain.TokenKey,
) (*domain.TokenRecord, error) {
	var token domain.TokenRecord
	if err := r.store.Get(recordKey(key), &token); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepositoryImpl) QueryUnspent(
	ctx context.Context,
	query domain.TokenQuery,
	reservationID uuid.UUID,
) ([]domain.TokenRecord, error) {
	q := badgerhold.Where("Spent").Eq(false)
	if query.TypeID != "" {
		q = q.And("TypeID").Eq(query.TypeID)
	}
	if query.Issuer != "" {
		q = q.And("Issuer").Eq(query.Issuer)
	}
	if query.Owner != "" {
		q = q.And("Owner").Eq(query.Owner)
	}

	found, err := r.findTokens(q)
	if err != nil {
		return nil, err
	}

	// lock state and the caller predicate are checked app-side, badgerhold
	// cannot index the pointer field nor the func
	tokens := make([]domain.TokenRecord, 0, len(found))
	for _, t := range found {
		if t.IsLocked() && t.LockedBy.String() != reservationID.String() {
			continue
		}
		if query.Where != nil && !query.Where(t) {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

func (r *tokenRepositoryImpl) GetBalance(
	ctx context.Context, owner, typeID string,
) (uint64, error) {
	query := badgerhold.Where("Owner").Eq(owner).
		And("TypeID").Eq(typeID).
		And("Spent").Eq(false)

	return r.sumTokens(query)
}

func (r *tokenRepositoryImpl) GetUnlockedBalance(
	ctx context.Context, owner, typeID string,
) (uint64, error) {
	query := badgerhold.Where("Owner").Eq(owner).
		And("TypeID").Eq(typeID).
		And("Spent").Eq(false).
		And("Locked").Eq(false)

	return r.sumTokens(query)
}

func (r *tokenRepositoryImpl) LockTokens(
	ctx context.Context,
	keys []domain.TokenKey,
	reservationID uuid.UUID,
) error {
	// the read-check-write sequence must run in one transaction, two
	// racing reservations would otherwise both see the records unlocked
	// and both persist their claim
	err := r.store.Badger().Update(func(tx *badger.Txn) error {
		tokens, err := r.getTokensTx(tx, keys)
		if err != nil {
			return err
		}

		// all or nothing: locking must not leave a partial claim behind
		for _, token := range tokens {
			if token.IsLocked() && token.LockedBy.String() != reservationID.String() {
				return domain.ErrTokenAlreadyLocked
			}
		}

		for i := range tokens {
			token := tokens[i]
			if err := token.Lock(&reservationID); err != nil {
				return err
			}
			if err := r.store.TxUpdate(tx, recordKey(token.Key()), &token); err != nil {
				return err
			}
		}
		return nil
	})
	if err == badger.ErrConflict {
		return domain.ErrTokenAlreadyLocked
	}
	return err
}

func (r *tokenRepositoryImpl) UnlockTokens(
	ctx context.Context, keys []domain.TokenKey,
) error {
	tokens, err := r.getTokens(keys)
	if err != nil {
		return err
	}

	for i := range tokens {
		token := tokens[i]
		token.Unlock()
		if err := r.store.Update(recordKey(token.Key()), &token); err != nil {
			return err
		}
	}
	return nil
}

func (r *tokenRepositoryImpl) SpendTokens(
	ctx context.Context, keys []domain.TokenKey,
) error {
	tokens, err := r.getTokens(keys)
	if err != nil {
		return err
	}

	for i := range tokens {
		token := tokens[i]
		token.Spend()
		if err := r.store.Update(recordKey(token.Key()), &token); err != nil {
			return err
		}
	}
	return nil
}

func (r *tokenRepositoryImpl) getTokens(
	keys []domain.TokenKey,
) ([]domain.TokenRecord, error) {
	tokens := make([]domain.TokenRecord, 0, len(keys))
	for _, key := range keys {
		var token domain.TokenRecord
		if err := r.store.Get(recordKey(key), &token); err != nil {
			if err == badgerhold.ErrNotFound {
				return nil, domain.ErrTokenNotFound
			}
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

func (r *tokenRepositoryImpl) getTokensTx(
	tx *badger.Txn, keys []domain.TokenKey,
) ([]domain.TokenRecord, error) {
	tokens := make([]domain.TokenRecord, 0, len(keys))
	for _, key := range keys {
		var token domain.TokenRecord
		if err := r.store.TxGet(tx, recordKey(key), &token); err != nil {
			if err == badgerhold.ErrNotFound {
				return nil, domain.ErrTokenNotFound
			}
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

func (r *tokenRepositoryImpl) findTokens(
	query *badgerhold.Query,
) ([]domain.TokenRecord, error) {
	tokens := make([]domain.TokenRecord, 0)
	if err := r.store.Find(&tokens, query); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *tokenRepositoryImpl) sumTokens(query *badgerhold.Query) (uint64, error) {
	tokens, err := r.findTokens(query)
	if err != nil {
		return 0, err
	}

	var balance uint64
	for _, t := range tokens {
		balance += t.Amount
	}
	return balance, nil
}

func recordKey(key domain.TokenKey) string {
	return fmt.Sprintf("%s:%d", key.TxID, key.Index)
}
