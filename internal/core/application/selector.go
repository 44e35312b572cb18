package application

import (
	"sort"

	"github.com/tokend-network/tokend-daemon/internal/core/domain"
	"github.com/tokend-network/tokend-daemon/pkg/mathutil"
)

// selectTokens performs a coin selection over the given list of records and
// returns a subset of them covering the target amount, along with the
// surplus (selected sum - target) from which the caller builds the change
// output.
// Records are visited in a deterministic order, by descending amount with
// ties broken by ascending key, so that the same store content always
// yields the same selection.
func selectTokens(
	records []domain.TokenRecord,
	target uint64,
) ([]domain.TokenRecord, uint64, error) {
	if len(records) == 0 {
		return nil, 0, ErrEmptySelection
	}

	sorted := sortedBySelectionOrder(records)

	selected := make([]domain.TokenRecord, 0, len(sorted))
	total := uint64(0)
	for _, record := range sorted {
		selected = append(selected, record)
		total = mathutil.Add(total, record.Amount)
		if total >= target {
			return selected, mathutil.Sub(total, target), nil
		}
	}

	return nil, 0, ErrInsufficientFunds
}

// selectSingle expects exactly one matching record, as required for
// non-fungible redemptions.
func selectSingle(records []domain.TokenRecord) (*domain.TokenRecord, error) {
	switch len(records) {
	case 0:
		return nil, ErrRecordNotFound
	case 1:
		record := records[0]
		return &record, nil
	default:
		return nil, ErrAmbiguousOwnership
	}
}

func sortedBySelectionOrder(records []domain.TokenRecord) []domain.TokenRecord {
	sorted := make([]domain.TokenRecord, len(records))
	copy(sorted, records)

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Amount != sorted[j].Amount {
			return sorted[i].Amount > sorted[j].Amount
		}
		if sorted[i].TxID != sorted[j].TxID {
			return sorted[i].TxID < sorted[j].TxID
		}
		return sorted[i].Index < sorted[j].Index
	})

	return sorted
}
