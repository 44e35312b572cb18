package application

import (
	"github.com/tokend-network/tokend-daemon/internal/core/domain"
	"github.com/tokend-network/tokend-daemon/pkg/mathutil"
)

// validateRedemption checks that the given records and the optional change
// record share the same issuer and the same settlement authority, and that
// the change amount, if the change is fungible, is strictly lower than the
// total input amount. It is a pure check with no side effects.
func validateRedemption(
	records []domain.TokenRecord,
	change *domain.TokenRecord,
) error {
	if len(records) == 0 {
		return ErrEmptySelection
	}

	issuer := records[0].Issuer
	notary := records[0].Notary
	for _, record := range records {
		if record.Issuer != issuer {
			return ErrIssuerMismatch
		}
		if record.Notary != notary {
			return ErrAuthorityMismatch
		}
	}

	if change != nil {
		if change.Issuer != issuer {
			return ErrIssuerMismatch
		}
		if change.Notary != "" && change.Notary != notary {
			return ErrAuthorityMismatch
		}
		if change.Fungible && change.Amount >= sumAmounts(records) {
			return ErrInvalidChangeAmount
		}
	}

	return nil
}

func sumAmounts(records []domain.TokenRecord) uint64 {
	amounts := make([]uint64, 0, len(records))
	for _, record := range records {
		amounts = append(amounts, record.Amount)
	}
	return mathutil.Sum(amounts)
}
