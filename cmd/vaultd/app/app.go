/*
Package app links together all the various components
to construct the vaultd application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/app"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/blueshift-gg/ledger/store/iavl"
	"github.com/blueshift-gg/ledger/x"
	"github.com/blueshift-gg/ledger/x/batch"
	"github.com/blueshift-gg/ledger/x/sigs"
	"github.com/blueshift-gg/ledger/x/system"
	"github.com/blueshift-gg/ledger/x/utils"
	"github.com/blueshift-gg/ledger/x/vault"
	"github.com/prometheus/client_golang/prometheus"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is the application name reported over abci.
const Name = "vaultd"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle recovery, logging,
// metrics, authentication and atomic batches. A nil registerer disables
// metrics.
func Chain(reg prometheus.Registerer) (app.Decorators, error) {
	var metrics ledger.Decorator
	if reg != nil {
		m, err := utils.NewMetrics(reg)
		if err != nil {
			return app.Decorators{}, err
		}
		metrics = m
	}
	return app.ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(),
		metrics,
		sigs.NewDecorator(),
		// a failing instruction discards the writes of the whole tx
		utils.NewSavepoint().OnCheck().OnDeliver(),
		batch.NewDecorator(),
		utils.NewActionTagger(),
	), nil
}

// Router dispatches instructions to the system and vault programs.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	control := system.NewController()
	system.RegisterRoutes(r, authFn, control)
	vault.RegisterRoutes(r, authFn, control)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/", "/accounts", "/sigs" and "/vaults"
func QueryRouter() ledger.QueryRouter {
	r := ledger.NewQueryRouter()
	r.RegisterAll(
		app.RegisterRawQuery,
		system.RegisterQuery,
		sigs.RegisterQuery,
		vault.RegisterQuery,
	)
	return r
}

// Initializer loads every genesis section the application knows of.
func Initializer() ledger.Initializer {
	return ledger.ChainInitializers(system.Initializer{})
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(reg prometheus.Registerer) (ledger.Handler, error) {
	chain, err := Chain(reg)
	if err != nil {
		return nil, err
	}
	return chain.WithHandler(Router(Authenticator())), nil
}

// Application constructs a basic ABCI application with
// the given arguments. An empty dbPath keeps the state in memory.
func Application(h ledger.Handler, tx ledger.TxDecoder, dbPath string, debug bool, logger log.Logger) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(Name, kv, QueryRouter(), context.Background()).
		WithInit(Initializer()).
		WithLogger(logger)
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (ledger.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewCommitStoreFromDB(dbm.NewMemDB()), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))
	kv, err := iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return kv, nil
}
