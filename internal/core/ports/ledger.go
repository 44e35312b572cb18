package ports

import (
	"context"

	"github.com/tokend-network/tokend-daemon/internal/core/domain"
)

// SubmitOutcome reports the result of the consensus-and-commit step for a
// submitted draft.
type SubmitOutcome struct {
	TxID     string
	Accepted bool
}

// LedgerRuntime is the narrow boundary towards the host ledger runtime. It
// takes a fully assembled draft and takes care of signing, notarization and
// finality, none of which happens inside this daemon.
type LedgerRuntime interface {
	Submit(
		ctx context.Context,
		draft *domain.TransactionDraft,
	) (*SubmitOutcome, error)
}

// IdentityResolver resolves a logical, possibly pseudonymous, recipient
// reference to a concrete holder key to be set as owner of change outputs.
type IdentityResolver interface {
	ResolveHolderKey(ctx context.Context, ref string) (string, error)
}
