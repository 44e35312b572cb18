package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory to store the internal state of the daemon
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DbTypeKey is used to switch the token store between those supported, either "badger" or "inmemory"
	DbTypeKey = "DB_TYPE"
	// ListenAddrKey is the address where the HTTP interface will listen on
	ListenAddrKey = "LISTEN_ADDR"
	// LedgerEndpointKey is the endpoint where the ledger runtime REST API is listening
	LedgerEndpointKey = "LEDGER_ENDPOINT"
	// LedgerRequestTimeoutKey are the milliseconds to wait for ledger runtime responses before timeouts
	LedgerRequestTimeoutKey = "LEDGER_REQUEST_TIMEOUT"

	// DbLocation is the name of the storage directory under the datadir
	DbLocation = "db"
)

var vip *viper.Viper

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("TOKEND")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir())
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DbTypeKey, "badger")
	vip.SetDefault(ListenAddrKey, ":9745")
	vip.SetDefault(LedgerEndpointKey, "http://localhost:9746")
	vip.SetDefault(LedgerRequestTimeoutKey, 15000)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetDuration ...
func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

//GetDatadir ...
func GetDatadir() string {
	return GetString(DatadirKey)
}

//GetDbDir ...
func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

func validate() error {
	switch dbType := vip.GetString(DbTypeKey); dbType {
	case "badger", "inmemory":
	default:
		return fmt.Errorf("unsupported db type %s", dbType)
	}

	if vip.GetInt(LedgerRequestTimeoutKey) <= 0 {
		return fmt.Errorf("ledger request timeout must be positive")
	}

	return nil
}

func initDatadir() error {
	return os.MkdirAll(GetDbDir(), os.ModeDir|0755)
}

func defaultDatadir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tokend"
	}
	return filepath.Join(home, ".tokend")
}
