package application

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tokend-network/tokend-daemon/internal/core/domain"
	"github.com/tokend-network/tokend-daemon/internal/core/ports"
)

// RedeemService assembles redemption drafts out of the unspent records held
// in the token repository and, optionally, pushes them through the ledger
// runtime for signing and finalization.
type RedeemService interface {
	// AssembleRedemption builds the unsigned draft for the given request.
	// The returned reservation keeps the consumed records claimed until the
	// draft is submitted or abandoned; the caller must release it on both
	// paths. On failure no reservation is left behind.
	AssembleRedemption(
		ctx context.Context,
		req RedemptionRequest,
	) (*domain.TransactionDraft, *Reservation, error)
	// RedeemTokens assembles the draft for the given request, submits it to
	// the ledger runtime and, on success, marks the consumed records as
	// spent.
	RedeemTokens(
		ctx context.Context,
		req RedemptionRequest,
	) (*ports.SubmitOutcome, error)
}

type redeemService struct {
	tokenRepository  domain.TokenRepository
	ledgerRuntime    ports.LedgerRuntime
	identityResolver ports.IdentityResolver
}

func NewRedeemService(
	tokenRepository domain.TokenRepository,
	ledgerRuntime ports.LedgerRuntime,
	identityResolver ports.IdentityResolver,
) RedeemService {
	return &redeemService{
		tokenRepository:  tokenRepository,
		ledgerRuntime:    ledgerRuntime,
		identityResolver: identityResolver,
	}
}

func (s *redeemService) AssembleRedemption(
	ctx context.Context,
	req RedemptionRequest,
) (*domain.TransactionDraft, *Reservation, error) {
	reservation := newReservation(s.tokenRepository)
	draft, err := s.assemble(ctx, req, reservation)
	if err != nil {
		if rErr := reservation.Release(ctx); rErr != nil {
			log.WithError(rErr).Warn("failed to release reservation")
		}
		return nil, nil, err
	}
	return draft, reservation, nil
}

func (s *redeemService) RedeemTokens(
	ctx context.Context,
	req RedemptionRequest,
) (*ports.SubmitOutcome, error) {
	draft, reservation, err := s.AssembleRedemption(ctx, req)
	if err != nil {
		return nil, err
	}

	outcome, err := s.ledgerRuntime.Submit(ctx, draft)
	if err != nil {
		if rErr := reservation.Release(ctx); rErr != nil {
			log.WithError(rErr).Warn("failed to release reservation")
		}
		return nil, fmt.Errorf("submitting draft: %w", err)
	}

	keys := make([]domain.TokenKey, 0, len(draft.Inputs))
	for _, in := range draft.Inputs {
		keys = append(keys, in.Key())
	}
	if err := s.tokenRepository.SpendTokens(ctx, keys); err != nil {
		if rErr := reservation.Release(ctx); rErr != nil {
			log.WithError(rErr).Warn("failed to release reservation")
		}
		return nil, fmt.Errorf("marking records as spent: %w", err)
	}
	if err := reservation.Release(ctx); err != nil {
		log.WithError(err).Warn("failed to release reservation")
	}

	log.WithField("tx_id", outcome.TxID).Debugf(
		"redeemed %d records", len(draft.Inputs),
	)
	return outcome, nil
}

func (s *redeemService) assemble(
	ctx context.Context,
	req RedemptionRequest,
	reservation *Reservation,
) (*domain.TransactionDraft, error) {
	records, change, err := s.resolveRecords(ctx, req, reservation)
	if err != nil {
		return nil, err
	}

	if err := validateRedemption(records, change); err != nil {
		return nil, err
	}

	draft := domain.NewTransactionDraft()
	if err := draft.SetNotary(records[0].Notary); err != nil {
		return nil, err
	}
	for _, record := range records {
		draft.AddInput(record)
	}
	if change != nil {
		draft.AddOutput(*change)
	}
	draft.AddCommand(domain.Command{
		Kind:    domain.CommandRedeem,
		TypeID:  records[0].TypeID,
		Signers: []string{records[0].Issuer, records[0].Owner},
	})

	return draft, nil
}

// resolveRecords turns a request variant into the list of records to be
// consumed plus the optional change output, claiming all of them under the
// given reservation.
func (s *redeemService) resolveRecords(
	ctx context.Context,
	req RedemptionRequest,
	reservation *Reservation,
) ([]domain.TokenRecord, *domain.TokenRecord, error) {
	switch req.Kind {
	case RedeemExplicit:
		if len(req.Records) == 0 {
			return nil, nil, ErrEmptySelection
		}
		if err := reservation.lock(ctx, req.Records); err != nil {
			return nil, nil, err
		}
		return req.Records, req.Change, nil

	case RedeemNonFungible:
		eligible, err := s.queryUnspent(ctx, req, reservation)
		if err != nil {
			return nil, nil, err
		}
		record, err := selectSingle(eligible)
		if err != nil {
			return nil, nil, err
		}
		if err := reservation.lock(ctx, []domain.TokenRecord{*record}); err != nil {
			return nil, nil, err
		}
		return []domain.TokenRecord{*record}, nil, nil

	case RedeemFungibleAmount:
		eligible, err := s.queryUnspent(ctx, req, reservation)
		if err != nil {
			return nil, nil, err
		}
		selected, surplus, err := selectTokens(eligible, req.Amount)
		if err != nil {
			return nil, nil, err
		}
		if err := reservation.lock(ctx, selected); err != nil {
			return nil, nil, err
		}

		if surplus == 0 {
			return selected, nil, nil
		}
		change, err := s.changeRecord(ctx, selected[0], surplus, req.ChangeOwner)
		if err != nil {
			return nil, nil, err
		}
		return selected, change, nil

	default:
		return nil, nil, fmt.Errorf("unknown redemption kind %d", req.Kind)
	}
}

func (s *redeemService) queryUnspent(
	ctx context.Context,
	req RedemptionRequest,
	reservation *Reservation,
) ([]domain.TokenRecord, error) {
	query := domain.TokenQuery{
		TypeID: req.TypeID,
		Issuer: req.Issuer,
		Where:  req.Where,
	}
	eligible, err := s.tokenRepository.QueryUnspent(ctx, query, reservation.ID())
	if err != nil {
		return nil, fmt.Errorf("querying unspent records: %w", err)
	}
	return eligible, nil
}

// changeRecord builds the single change output of a fungible redemption on
// the template of the first selected record, owned by the resolved change
// recipient. Its key is assigned by the ledger at finalization.
func (s *redeemService) changeRecord(
	ctx context.Context,
	template domain.TokenRecord,
	surplus uint64,
	changeOwner string,
) (*domain.TokenRecord, error) {
	holderKey, err := s.identityResolver.ResolveHolderKey(ctx, changeOwner)
	if err != nil {
		return nil, fmt.Errorf("resolving change recipient: %w", err)
	}

	return &domain.TokenRecord{
		Amount:   surplus,
		TypeID:   template.TypeID,
		Fungible: true,
		Issuer:   template.Issuer,
		Owner:    holderKey,
		Notary:   template.Notary,
	}, nil
}
