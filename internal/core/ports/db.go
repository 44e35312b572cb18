package ports

import (
	"github.com/tokend-network/tokend-daemon/internal/core/domain"
)

// DbManager interface defines the access to the repositories backed by the
// underlying storage.
type DbManager interface {
	TokenRepository() domain.TokenRepository

	Close()
}
