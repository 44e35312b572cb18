package identity

import (
	"context"
	"fmt"

	"github.com/tokend-network/tokend-daemon/internal/core/ports"
)

// staticResolver resolves recipient references through a fixed directory of
// well-known parties, falling back to treating the reference itself as a
// holder key. Pseudonymous resolution against the host ledger's identity
// service plugs in behind the same interface.
type staticResolver struct {
	directory map[string]string
}

// NewStaticResolver returns a ports.IdentityResolver backed by the given
// reference-to-key directory.
func NewStaticResolver(directory map[string]string) ports.IdentityResolver {
	return &staticResolver{directory: directory}
}

func (r *staticResolver) ResolveHolderKey(
	ctx context.Context, ref string,
) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("recipient reference must not be empty")
	}
	if key, ok := r.directory[ref]; ok {
		return key, nil
	}
	return ref, nil
}
