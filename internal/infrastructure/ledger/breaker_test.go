package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/require"
	"github.com/tokend-network/tokend-daemon/internal/core/domain"
	"github.com/tokend-network/tokend-daemon/internal/core/ports"
	"github.com/tokend-network/tokend-daemon/internal/infrastructure/ledger"
)

type failingRuntime struct{}

func (failingRuntime) Submit(
	_ context.Context, _ *domain.TransactionDraft,
) (*ports.SubmitOutcome, error) {
	return nil, errors.New("runtime unavailable")
}

func TestBreakerOpensOnRepeatedFailures(t *testing.T) {
	runtime := ledger.NewRuntimeWithBreaker(failingRuntime{})
	draft := domain.NewTransactionDraft()

	var err error
	for i := 0; i <= ledger.MaxNumOfFailingRequests; i++ {
		_, err = runtime.Submit(context.Background(), draft)
		require.Error(t, err)
	}

	_, err = runtime.Submit(context.Background(), draft)
	require.EqualError(t, err, gobreaker.ErrOpenState.Error())
}
