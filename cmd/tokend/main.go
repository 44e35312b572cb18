package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tokend-network/tokend-daemon/internal/config"
	"github.com/tokend-network/tokend-daemon/internal/core/application"
	"github.com/tokend-network/tokend-daemon/internal/core/domain"
	"github.com/tokend-network/tokend-daemon/internal/infrastructure/identity"
	"github.com/tokend-network/tokend-daemon/internal/infrastructure/ledger"
	dbbadger "github.com/tokend-network/tokend-daemon/internal/infrastructure/storage/db/badger"
	"github.com/tokend-network/tokend-daemon/internal/infrastructure/storage/db/inmemory"
	httpinterface "github.com/tokend-network/tokend-daemon/internal/interfaces/http"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	tokenRepository, closeDb := tokenRepositoryFromConfig()
	defer closeDb()

	ledgerRuntime := ledger.NewRuntimeWithBreaker(
		ledger.NewHTTPRuntime(
			config.GetString(config.LedgerEndpointKey),
			time.Duration(config.GetInt(config.LedgerRequestTimeoutKey))*time.Millisecond,
		),
	)
	identityResolver := identity.NewStaticResolver(nil)

	redeemSvc := application.NewRedeemService(
		tokenRepository, ledgerRuntime, identityResolver,
	)
	registrarSvc := application.NewRegistrarService(ledgerRuntime)

	tokenSvc := httpinterface.NewTokenService(
		redeemSvc, registrarSvc, tokenRepository,
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/redeem", tokenSvc.RedeemHandler)
	mux.HandleFunc("/v1/types", tokenSvc.RegisterTypeHandler)
	mux.HandleFunc("/v1/tokens", tokenSvc.ListTokensHandler)
	mux.HandleFunc("/v1/balance", tokenSvc.BalanceHandler)

	server := &http.Server{
		Addr:    config.GetString(config.ListenAddrKey),
		Handler: mux,
	}

	go func() {
		log.Infof("daemon listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("error listening on http interface")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down daemon")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("error shutting down http interface")
	}
	log.Info("exiting")
}

func tokenRepositoryFromConfig() (domain.TokenRepository, func()) {
	if config.GetString(config.DbTypeKey) == "inmemory" {
		return inmemory.NewTokenRepositoryImpl(), func() {}
	}

	dbManager, err := dbbadger.NewDbManager(config.GetDbDir(), nil)
	if err != nil {
		log.WithError(err).Fatal("error while opening db")
	}
	return dbManager.TokenRepository(), dbManager.Close
}
