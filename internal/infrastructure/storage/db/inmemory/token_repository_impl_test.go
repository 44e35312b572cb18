package inmemory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tokend-network/tokend-daemon/internal/core/domain"
	"github.com/tokend-network/tokend-daemon/internal/infrastructure/storage/db/inmemory"
)

func TestTokenRepository(t *testing.T) {
	t.Run("AddAndGetTokens", testAddAndGetTokens())
	t.Run("QueryUnspent", testQueryUnspent())
	t.Run("LockUnlockTokens", testLockUnlockTokens())
	t.Run("SpendTokens", testSpendTokens())
	t.Run("Balances", testBalances())
}

func testAddAndGetTokens() func(*testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo := inmemory.NewTokenRepositoryImpl()

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
	}
}

func testQueryUnspent() func(*testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo := inmemory.NewTokenRepositoryImpl()

		err := repo.AddTokens(ctx, testTokens())
		require.NoError(t, err)

		tokens, err := repo.QueryUnspent(
			ctx,
			domain.TokenQuery{TypeID: "gold", Issuer: "issuer"},
			uuid.New(),
		)
		require.NoError(t, err)
		require.Len(t, tokens, 2)

		// extra caller-supplied predicate is ANDed with the criteria
		tokens, err = repo.QueryUnspent(
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
		require.Len(t, tokens, 1)
		require.Equal(t, "a", tokens[0].TxID)
	}
}

func testLockUnlockTokens() func(*testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo := inmemory.NewTokenRepositoryImpl()
		reservationID := uuid.New()

		err := repo.AddTokens(ctx, testTokens())
		require.NoError(t, err)

		keys := []domain.TokenKey{{TxID: "a", Index: 0}}
		err = repo.LockTokens(ctx, keys, reservationID)
		require.NoError(t, err)

		// locked records are hidden from other reservations but still
		// visible to their own
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

		// relocking under another reservation fails
		err = repo.LockTokens(ctx, keys, uuid.New())
		require.EqualError(t, err, domain.ErrTokenAlreadyLocked.Error())

		err = repo.UnlockTokens(ctx, keys)
		require.NoError(t, err)

		tokens, err = repo.QueryUnspent(
			ctx, domain.TokenQuery{TypeID: "gold"}, uuid.New(),
		)
		require.NoError(t, err)
		require.Len(t, tokens, 2)

		err = repo.LockTokens(
			ctx, []domain.TokenKey{{TxID: "z", Index: 0}}, reservationID,
		)
		require.EqualError(t, err, domain.ErrTokenNotFound.Error())
	}
}

func testSpendTokens() func(*testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo := inmemory.NewTokenRepositoryImpl()

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
		repo := inmemory.NewTokenRepositoryImpl()

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

		balance, err = repo.GetBalance(ctx, "holder", "gold")
		require.NoError(t, err)
		require.Equal(t, uint64(120), balance)
	}
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
