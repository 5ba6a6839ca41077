package app

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/commands/server"
	"github.com/blueshift-gg/ledger/crypto"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/blueshift-gg/ledger/x/system"
	"github.com/prometheus/client_golang/prometheus"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// DefaultGenesisLamports is the balance of the account created by
// GenInitOptions when none is given.
const DefaultGenesisLamports = 1000000000000

type genesisState struct {
	Conf     map[string]interface{}  `json:"conf"`
	Accounts []system.GenesisAccount `json:"accounts"`
}

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode
//
// Arguments are an optional address and an optional balance. Without an
// address a new key is generated and its recovery phrase printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addr ledger.Address
	if len(args) > 0 {
		a, err := ledger.ParseAddress(args[0])
		if err != nil {
			return nil, err
		}
		addr = a
	} else {
		mnemonic, err := crypto.NewMnemonic()
		if err != nil {
			return nil, err
		}
		key, err := crypto.KeyFromMnemonic(mnemonic, 0)
		if err != nil {
			return nil, err
		}
		addr = key.Address()
		fmt.Println(mnemonic)
	}

	lamports := uint64(DefaultGenesisLamports)
	if len(args) > 1 {
		n, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "lamports: %s", err)
		}
		lamports = n
	}

	rent := system.DefaultRent()
	state := genesisState{
		Conf: map[string]interface{}{system.ConfigPackage: rent},
		Accounts: []system.GenesisAccount{
			{Address: addr, Lamports: lamports},
		},
	}
	return json.Marshal(state)
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(cfg server.Config, home string, logger log.Logger, reg prometheus.Registerer) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = cfg.DBPath(home)
	}

	stack, err := Stack(reg)
	if err != nil {
		return nil, err
	}
	application, err := Application(stack, TxDecoder, dbPath, cfg.Debug, logger)
	if err != nil {
		return nil, err
	}
	return application, nil
}

var _ server.AppGenerator = GenerateApp
