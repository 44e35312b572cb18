package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tokend-network/tokend-daemon/internal/core/domain"
	"github.com/tokend-network/tokend-daemon/internal/core/ports"
)

// httpRuntime submits drafts to an external ledger runtime over its REST
// interface. Signing, notarization and finality happen on the other side,
// the daemon only learns the outcome.
type httpRuntime struct {
	endpoint string
	client   *http.Client
}

// NewHTTPRuntime returns a ports.LedgerRuntime reaching the runtime
// listening at the given endpoint.
func NewHTTPRuntime(
	endpoint string, requestTimeout time.Duration,
) ports.LedgerRuntime {
	return &httpRuntime{
		endpoint: endpoint,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

type submitResponse struct {
	TxID     string `json:"txid"`
	Accepted bool   `json:"accepted"`
}

func (r *httpRuntime) Submit(
	ctx context.Context,
	draft *domain.TransactionDraft,
) (*ports.SubmitOutcome, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/transactions", r.endpoint)
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, url, bytes.NewReader(payload),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"ledger runtime replied with status %d: %s", res.StatusCode, string(body),
		)
	}

	var outcome submitResponse
	if err := json.Unmarshal(body, &outcome); err != nil {
		return nil, err
	}

	return &ports.SubmitOutcome{
		TxID:     outcome.TxID,
		Accepted: outcome.Accepted,
	}, nil
}
