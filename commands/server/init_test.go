package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func fixedState(state string) GenOptions {
	return func(args []string) (json.RawMessage, error) {
		return json.RawMessage(state), nil
	}
}

func readGenesis(t *testing.T, home string) GenesisDoc {
	t.Helper()
	bz, err := ioutil.ReadFile(filepath.Join(home, GenesisFile))
	require.NoError(t, err)
	var doc GenesisDoc
	require.NoError(t, json.Unmarshal(bz, &doc))
	return doc
}

func TestInitCmd(t *testing.T) {
	home, err := ioutil.TempDir("", "vaultd-init")
	require.NoError(t, err)
	defer os.RemoveAll(home)
	logger := log.NewNopLogger()

	err = InitCmd(fixedState(`{"accounts":[]}`), logger, home, []string{"-chain-id", "test-chain"})
	require.NoError(t, err)

	doc := readGenesis(t, home)
	assert.JSONEq(t, `"test-chain"`, string(doc["chain_id"]))
	assert.JSONEq(t, `{"accounts":[]}`, string(doc["app_state"]))
	_, err = os.Stat(filepath.Join(home, ConfigFile))
	assert.NoError(t, err)

	err = InitCmd(fixedState(`{"other":1}`), logger, home, nil)
	assert.True(t, errors.ErrDuplicate.Is(err))

	err = InitCmd(fixedState(`{"other":1}`), logger, home, []string{"-f"})
	require.NoError(t, err)
	doc = readGenesis(t, home)
	assert.JSONEq(t, `"test-chain"`, string(doc["chain_id"]))
	assert.JSONEq(t, `{"other":1}`, string(doc["app_state"]))
}

func TestInitCmdGeneratesChainID(t *testing.T) {
	home, err := ioutil.TempDir("", "vaultd-init")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	require.NoError(t, InitCmd(fixedState(`{}`), log.NewNopLogger(), home, nil))
	var chainID string
	require.NoError(t, json.Unmarshal(readGenesis(t, home)["chain_id"], &chainID))
	assert.Contains(t, chainID, "vault-chain-")
}

type keyInitializer struct {
	key string
}

func (k keyInitializer) FromGenesis(opts ledger.Options, db ledger.KVStore) error {
	if _, ok := opts[k.key]; !ok {
		return errors.Wrap(errors.ErrNotFound, k.key)
	}
	return nil
}

var _ ledger.Initializer = keyInitializer{}

func TestValidateGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "vaultd-genesis")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, ioutil.WriteFile(p, []byte(content), 0o600))
		return p
	}
	good := write("good.json", `{"app_state": {"accounts": []}}`)
	missing := write("missing.json", `{"app_state": {"conf": {}}}`)
	empty := write("empty.json", `{"chain_id": "x"}`)
	broken := write("broken.json", `{`)

	ini := keyInitializer{key: "accounts"}
	assert.NoError(t, ValidateGenesis(ini, []string{good}))
	assert.True(t, errors.ErrNotFound.Is(ValidateGenesis(ini, []string{good, missing})))
	assert.True(t, errors.ErrEmpty.Is(ValidateGenesis(ini, []string{empty})))
	assert.True(t, errors.ErrInvalidInput.Is(ValidateGenesis(ini, []string{broken})))

}
