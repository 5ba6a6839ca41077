package server

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/blueshift-gg/ledger/errors"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagChainID = "chain-id"
	flagForce   = "f"

	// GenesisFile is the location of the genesis document, relative to
	// the home directory. It is shared with tendermint.
	GenesisFile = "config/genesis.json"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

// InitCmd writes the app_state generated by gen into the genesis file of
// the home directory, creating the genesis file and the node configuration
// when they are missing. An existing app_state is only replaced with -f.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	var (
		chainID string
		force   bool
	)
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	initFlags.StringVar(&chainID, flagChainID, "", "chain id of a new genesis file (random by default)")
	initFlags.BoolVar(&force, flagForce, false, "overwrite an existing app_state")
	if err := initFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	cfgPath := filepath.Join(home, ConfigFile)
	if fileExists(cfgPath) {
		logger.Info("Found config file", "path", cfgPath)
	} else {
		if err := SaveConfig(home, DefaultConfig()); err != nil {
			return err
		}
		logger.Info("Generated config file", "path", cfgPath)
	}

	genFile := filepath.Join(home, GenesisFile)
	doc, err := loadOrCreateGenesis(genFile, chainID)
	if err != nil {
		return err
	}
	if _, ok := doc["app_state"]; ok && !force {
		return errors.Wrapf(errors.ErrDuplicate, "app_state already set in %s, use -%s to overwrite", genFile, flagForce)
	}

	options, err := gen(initFlags.Args())
	if err != nil {
		return errors.Wrap(err, "generate app_state")
	}
	doc["app_state"] = options

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot encode genesis")
	}
	if err := ioutil.WriteFile(genFile, out, 0o600); err != nil {
		return errors.Wrap(err, "cannot write genesis")
	}
	logger.Info("Wrote app_state", "path", genFile)
	return nil
}

func loadOrCreateGenesis(path, chainID string) (GenesisDoc, error) {
	if fileExists(path) {
		bz, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "cannot read genesis")
		}
		var doc GenesisDoc
		if err := json.Unmarshal(bz, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
		}
		return doc, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "cannot create config dir")
	}
	if chainID == "" {
		chainID = fmt.Sprintf("vault-chain-%v", cmn.RandStr(6))
	}
	doc := GenesisDoc{}
	for k, v := range map[string]interface{}{
		"chain_id":     chainID,
		"genesis_time": time.Now().UTC().Format(time.RFC3339Nano),
	} {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		doc[k] = raw
	}
	return doc, nil
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}
