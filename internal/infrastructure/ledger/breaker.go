package ledger

import (
	"context"

	"github.com/sony/gobreaker"
	"github.com/tokend-network/tokend-daemon/internal/core/domain"
	"github.com/tokend-network/tokend-daemon/internal/core/ports"
)

var (
	// MaxNumOfFailingRequests ...
	MaxNumOfFailingRequests = 10
	// FailingRatio ...
	FailingRatio = 0.6
)

type runtimeWithBreaker struct {
	runtime ports.LedgerRuntime
	cb      *gobreaker.CircuitBreaker
}

// NewRuntimeWithBreaker decorates the given ledger runtime with a circuit
// breaker that trips once the overall number of failing submissions has
// reached MaxNumOfFailingRequests and the failing ratio has met
// FailingRatio.
func NewRuntimeWithBreaker(runtime ports.LedgerRuntime) ports.LedgerRuntime {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "ledger-runtime",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return int(counts.Requests) > MaxNumOfFailingRequests && ratio >= FailingRatio
		},
	})

	return &runtimeWithBreaker{
		runtime: runtime,
		cb:      cb,
	}
}

func (r *runtimeWithBreaker) Submit(
	ctx context.Context,
	draft *domain.TransactionDraft,
) (*ports.SubmitOutcome, error) {
	res, err := r.cb.Execute(func() (interface{}, error) {
		return r.runtime.Submit(ctx, draft)
	})
	if err != nil {
		return nil, err
	}
	return res.(*ports.SubmitOutcome), nil
}
