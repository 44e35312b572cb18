package dbbadger_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tokend-network/tokend-daemon/internal/core/domain"
	dbbadger "github.com/tokend-network/tokend-daemon/internal/infrastructure/storage/db/badger"
)

func TestBadgerTokenRepository(t *testing.T) {
	t.Run("AddAndQueryTokens", testAddAndQueryTokens())
	t.Run("LockUnlockTokens", testLockUnlockTokens())
	t.Run("ConcurrentLockTokens", testConcurrentLockTokens())
	t.Run("SpendTokens", testSpendTokens())
	t.Run("Balances", testBalances())
}

func testAddAndQueryTokens() func(*testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo, closeDb := newTestRepo(t)
		defer closeDb()

		err := repo.AddTokens(ctx, testTokens())
		require.NoError(t, err)

		// re-adding an existing key is a no-op
		err = repo.AddTokens(ctx, testTokens()[:1])
		require.NoError(t, err)

		tokens, err := repo.GetAllTokens(ctx)
		require.NoError(t, err)
		require.Len(t, tokens, 3)

		token, err := repo.GetTokenForKey(ctx, domain.TokenKey{TxID: "a", Index: 0})
		require.NoError(t, err)
		require.Equal(t, uint64(70), token.Amount)

		_, err = repo.GetTokenForKey(ctx, domain.TokenKey{TxID: "z", Index: 0})
		require.EqualError(t, err, domain.ErrTokenNotFound.Error())

		unspents, err := repo.QueryUnspent(
			ctx,
			domain.TokenQuery{TypeID: "gold", Issuer: "issuer"},
			uuid.New(),
		)
		require.NoError(t, err)
		require.Len(t, unspents, 2)

		unspents, err = repo.QueryUnspent(
			ctx,
			domain.TokenQuery{
				TypeID: "gold",
				Where: func(token domain.TokenRecord) bool {
					return token.Amount >= 70
				},
			},
			uuid.New(),
		)
		require.NoError(t, err)
		require.Len(t, unspents, 1)
		require.Equal(t, "a", unspents[0].TxID)
	}
}

func testLockUnlockTokens() func(*testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo, closeDb := newTestRepo(t)
		defer closeDb()
		reservationID := uuid.New()

		err := repo.AddTokens(ctx, testTokens())
		require.NoError(t, err)

		keys := []domain.TokenKey{{TxID: "a", Index: 0}}
		err = repo.LockTokens(ctx, keys, reservationID)
		require.NoError(t, err)

		tokens, err := repo.QueryUnspent(
			ctx, domain.TokenQuery{TypeID: "gold"}, uuid.New(),
		)
		require.NoError(t, err)
		require.Len(t, tokens, 1)

		tokens, err = repo.QueryUnspent(
			ctx, domain.TokenQuery{TypeID: "gold"}, reservationID,
		)
		require.NoError(t, err)
		require.Len(t, tokens, 2)

		err = repo.LockTokens(ctx, keys, uuid.New())
		require.EqualError(t, err, domain.ErrTokenAlreadyLocked.Error())

		err = repo.UnlockTokens(ctx, keys)
		require.NoError(t, err)

		tokens, err = repo.QueryUnspent(
			ctx, domain.TokenQuery{TypeID: "gold"}, uuid.New(),
		)
		require.NoError(t, err)
		require.Len(t, tokens, 2)
	}
}

func testConcurrentLockTokens() func(*testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo, closeDb := newTestRepo(t)
		defer closeDb()

		err := repo.AddTokens(ctx, testTokens())
		require.NoError(t, err)

		// racing reservations over the same record: exactly one must win,
		// the others must fail instead of overwriting its claim
		keys := []domain.TokenKey{{TxID: "a", Index: 0}}
		numReservations := 8
		errs := make([]error, numReservations)

		wg := &sync.WaitGroup{}
		wg.Add(numReservations)
		for i := 0; i < numReservations; i++ {
			go func(i int) {
				defer wg.Done()
				errs[i] = repo.LockTokens(ctx, keys, uuid.New())
			}(i)
		}
		wg.Wait()

		numLocked := 0
		for _, err := range errs {
			if err == nil {
				numLocked++
				continue
			}
			require.EqualError(t, err, domain.ErrTokenAlreadyLocked.Error())
		}
		require.Equal(t, 1, numLocked)

		// a failing multi-key lock leaves no partial claim behind
		otherKeys := []domain.TokenKey{
			{TxID: "b", Index: 0},
			{TxID: "a", Index: 0},
		}
		err = repo.LockTokens(ctx, otherKeys, uuid.New())
		require.EqualError(t, err, domain.ErrTokenAlreadyLocked.Error())

		tokens, err := repo.QueryUnspent(
			ctx, domain.TokenQuery{TypeID: "gold"}, uuid.New(),
		)
		require.NoError(t, err)
		require.Len(t, tokens, 1)
		require.Equal(t, "b", tokens[0].TxID)
	}
}

func testSpendTokens() func(*testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo, closeDb := newTestRepo(t)
		defer closeDb()

		err := repo.AddTokens(ctx, testTokens())
		require.NoError(t, err)

		err = repo.SpendTokens(ctx, []domain.TokenKey{{TxID: "a", Index: 0}})
		require.NoError(t, err)

		token, err := repo.GetTokenForKey(ctx, domain.TokenKey{TxID: "a", Index: 0})
		require.NoError(t, err)
		require.True(t, token.IsSpent())

		tokens, err := repo.QueryUnspent(
			ctx, domain.TokenQuery{TypeID: "gold"}, uuid.New(),
		)
		require.NoError(t, err)
		require.Len(t, tokens, 1)
	}
}

func testBalances() func(*testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo, closeDb := newTestRepo(t)
		defer closeDb()

		err := repo.AddTokens(ctx, testTokens())
		require.NoError(t, err)

		balance, err := repo.GetBalance(ctx, "holder", "gold")
		require.NoError(t, err)
		require.Equal(t, uint64(120), balance)

		err = repo.LockTokens(
			ctx, []domain.TokenKey{{TxID: "a", Index: 0}}, uuid.New(),
		)
		require.NoError(t, err)

		unlocked, err := repo.GetUnlockedBalance(ctx, "holder", "gold")
		require.NoError(t, err)
		require.Equal(t, uint64(50), unlocked)
	}
}

func newTestRepo(t *testing.T) (domain.TokenRepository, func()) {
	dbManager, err := dbbadger.NewDbManager("", nil)
	require.NoError(t, err)
	return dbManager.TokenRepository(), dbManager.Close
}

func testTokens() []domain.TokenRecord {
	return []domain.TokenRecord{
		{
			TxID: "a", Index: 0, Amount: 70, TypeID: "gold", Fungible: true,
			Issuer: "issuer", Owner: "holder", Notary: "notary",
		},
		{
			TxID: "b", Index: 0, Amount: 50, TypeID: "gold", Fungible: true,
			Issuer: "issuer", Owner: "holder", Notary: "notary",
		},
		{
			TxID: "n", Index: 1, Amount: 1, TypeID: "deed", Fungible: false,
			Issuer: "otherIssuer", Owner: "holder", Notary: "notary",
		},
	}
}
