package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tokend-network/tokend-daemon/internal/core/domain"
)

func TestSpendToken(t *testing.T) {
	t.Parallel()

	token := domain.TokenRecord{}
	require.False(t, token.IsSpent())

	token.Spend()
	require.True(t, token.IsSpent())
}

func TestLockUnlockToken(t *testing.T) {
	t.Parallel()

	token := domain.TokenRecord{}
	require.False(t, token.IsLocked())

	reservationID := uuid.New()
	err := token.Lock(&reservationID)
	require.NoError(t, err)
	require.True(t, token.IsLocked())

	token.Unlock()
	require.False(t, token.IsLocked())
}

func TestFailingLockToken(t *testing.T) {
	t.Parallel()

	token := domain.TokenRecord{}

	reservationID := uuid.New()
	err := token.Lock(&reservationID)
	require.NoError(t, err)
	require.True(t, token.IsLocked())

	err = token.Lock(&reservationID)
	require.NoError(t, err)

	otherReservationID := uuid.New()
	err = token.Lock(&otherReservationID)
	require.EqualError(t, err, domain.ErrTokenAlreadyLocked.Error())
}

func TestTokenKey(t *testing.T) {
	t.Parallel()

	token := domain.TokenRecord{TxID: "aa", Index: 2}
	require.Equal(t, domain.TokenKey{TxID: "aa", Index: 2}, token.Key())
	require.True(t, token.IsKeyEqual(domain.TokenKey{TxID: "aa", Index: 2}))
	require.False(t, token.IsKeyEqual(domain.TokenKey{TxID: "aa", Index: 3}))
}
