package application

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tokend-network/tokend-daemon/internal/core/domain"
	"github.com/tokend-network/tokend-daemon/internal/core/ports"
)

// RegistrarService builds the drafts registering a new evolvable token type
// on the ledger. A registration draft consumes nothing, produces the type
// definition as its single output and must be signed by all declared
// maintainers of the type.
type RegistrarService interface {
	RegisterTokenType(
		ctx context.Context,
		def domain.EvolvableTokenType,
		notary string,
	) (*domain.TransactionDraft, error)
	RegisterAndSubmit(
		ctx context.Context,
		def domain.EvolvableTokenType,
		notary string,
	) (*ports.SubmitOutcome, error)
}

type registrarService struct {
	ledgerRuntime ports.LedgerRuntime
}

func NewRegistrarService(ledgerRuntime ports.LedgerRuntime) RegistrarService {
	return &registrarService{
		ledgerRuntime: ledgerRuntime,
	}
}

func (s *registrarService) RegisterTokenType(
	ctx context.Context,
	def domain.EvolvableTokenType,
	notary string,
) (*domain.TransactionDraft, error) {
	if len(def.Maintainers) == 0 {
		return nil, ErrMissingMaintainers
	}
	if notary == "" {
		return nil, ErrMissingNotary
	}

	draft := domain.NewTransactionDraft()
	if err := draft.SetNotary(notary); err != nil {
		return nil, err
	}
	draft.AddTypeOutput(def)
	draft.AddCommand(domain.Command{
		Kind:    domain.CommandRegister,
		TypeID:  def.TypeID,
		Signers: def.Maintainers,
	})

	return draft, nil
}

func (s *registrarService) RegisterAndSubmit(
	ctx context.Context,
	def domain.EvolvableTokenType,
	notary string,
) (*ports.SubmitOutcome, error) {
	draft, err := s.RegisterTokenType(ctx, def, notary)
	if err != nil {
		return nil, err
	}

	outcome, err := s.ledgerRuntime.Submit(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("submitting draft: %w", err)
	}

	log.WithField("tx_id", outcome.TxID).Debugf(
		"registered token type %s", def.TypeID,
	)
	return outcome, nil
}
