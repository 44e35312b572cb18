package dbbadger

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
	"github.com/tokend-network/tokend-daemon/internal/core/domain"
)

// DbManager holds the badgerhold store backing the token repository.
type DbManager struct {
	tokenStore *badgerhold.Store
}

// NewDbManager opens (or creates if not exists) the badger store on disk.
// An empty baseDbDir makes the store run in memory, which is used in tests.
func NewDbManager(baseDbDir string, logger badger.Logger) (*DbManager, error) {
	var tokenDir string
	if len(baseDbDir) > 0 {
		tokenDir = filepath.Join(baseDbDir, "tokens")
	}

	tokenStore, err := createDb(tokenDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening token db: %w", err)
	}

	return &DbManager{tokenStore: tokenStore}, nil
}

// TokenRepository returns the token repository backed by the store.
func (d *DbManager) TokenRepository() domain.TokenRepository {
	return newTokenRepositoryImpl(d.tokenStore)
}

func (d *DbManager) Close() {
	d.tokenStore.Close()
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(30 * time.Minute)

		go func() {
			for {
				<-ticker.C
				if err := db.Badger().RunValueLogGC(0.5); err != nil &&
					err != badger.ErrNoRewrite {
					log.Error(err)
				}
			}
		}()
	}

	return db, nil
}
