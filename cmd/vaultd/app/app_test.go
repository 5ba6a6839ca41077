package app

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/app"
	"github.com/blueshift-gg/ledger/crypto"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/blueshift-gg/ledger/ledgertest"
	"github.com/blueshift-gg/ledger/x/batch"
	"github.com/blueshift-gg/ledger/x/sigs"
	"github.com/blueshift-gg/ledger/x/system"
	"github.com/blueshift-gg/ledger/x/vault"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	testChainID     = "vault-chain-1"
	initialLamports = 10000000
)

type testNode struct {
	t      *testing.T
	app    app.BaseApp
	height int64
}

func newTestNode(t *testing.T, funded ...ledger.Address) *testNode {
	t.Helper()
	stack, err := Stack(prometheus.NewRegistry())
	require.NoError(t, err)
	base, err := Application(stack, TxDecoder, "", false, log.NewNopLogger())
	require.NoError(t, err)

	state := genesisState{Conf: map[string]interface{}{system.ConfigPackage: system.DefaultRent()}}
	for _, a := range funded {
		state.Accounts = append(state.Accounts, system.GenesisAccount{Address: a, Lamports: initialLamports})
	}
	raw, err := json.Marshal(state)
	require.NoError(t, err)
	base.InitChain(abci.RequestInitChain{ChainId: testChainID, AppStateBytes: raw})

	n := &testNode{t: t, app: base}
	n.beginBlock()
	return n
}

func (n *testNode) beginBlock() {
	n.height++
	n.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: testChainID, Height: n.height},
	})
}

// commit closes the current block and opens the next one.
func (n *testNode) commit() {
	n.app.EndBlock(abci.RequestEndBlock{Height: n.height})
	n.app.Commit()
	n.beginBlock()
}

func (n *testNode) signedTx(key *crypto.PrivateKey, seq int64, ixs ...*ledger.Instruction) []byte {
	n.t.Helper()
	tx := NewTx(ixs...)
	require.NoError(n.t, tx.Sign(key, testChainID, seq))
	raw, err := tx.Marshal()
	require.NoError(n.t, err)
	return raw
}

func (n *testNode) balance(path string, addr ledger.Address) uint64 {
	n.t.Helper()
	models, err := app.Query(n.app, path, addr)
	require.NoError(n.t, err)
	if len(models) == 0 {
		return 0
	}
	require.Len(n.t, models, 1)
	var acct system.Account
	require.NoError(n.t, acct.Unmarshal(models[0].Value))
	return acct.Lamports
}

func depositIx(t *testing.T, signer ledger.Address, amount uint64) *ledger.Instruction {
	t.Helper()
	ix, err := vault.NewDeposit(signer, amount)
	require.NoError(t, err)
	return ix
}

func withdrawIx(t *testing.T, signer ledger.Address) *ledger.Instruction {
	t.Helper()
	ix, err := vault.NewWithdraw(signer)
	require.NoError(t, err)
	return ix
}

func TestVaultLifecycle(t *testing.T) {
	key := ledgertest.NewKey()
	signer := key.Address()
	n := newTestNode(t, signer)

	deposit := n.signedTx(key, 0, depositIx(t, signer, 1000000))
	check := n.app.CheckTx(deposit)
	require.Equal(t, uint32(0), check.Code, check.Log)
	res := n.app.DeliverTx(deposit)
	require.Equal(t, uint32(0), res.Code, res.Log)
	n.commit()

	assert.Equal(t, uint64(1000000), n.balance("/vaults", signer))
	assert.Equal(t, uint64(initialLamports-1000000), n.balance("/accounts", signer))

	// the same signature cannot be used twice
	res = n.app.DeliverTx(deposit)
	assert.Equal(t, sigs.ErrInvalidSequence.ABCICode(), res.Code)

	again := n.signedTx(key, 1, depositIx(t, signer, 1000000))
	res = n.app.DeliverTx(again)
	assert.Equal(t, vault.ErrVaultAlreadyExists.ABCICode(), res.Code)

	withdraw := n.signedTx(key, 2, withdrawIx(t, signer))
	res = n.app.DeliverTx(withdraw)
	require.Equal(t, uint32(0), res.Code, res.Log)
	n.commit()

	assert.Equal(t, uint64(0), n.balance("/vaults", signer))
	assert.Equal(t, uint64(initialLamports), n.balance("/accounts", signer))

	empty := n.signedTx(key, 3, withdrawIx(t, signer))
	res = n.app.DeliverTx(empty)
	assert.Equal(t, vault.ErrInvalidAmount.ABCICode(), res.Code)

	small := n.signedTx(key, 4, depositIx(t, signer, 500000))
	res = n.app.DeliverTx(small)
	assert.Equal(t, vault.ErrInvalidAmount.ABCICode(), res.Code)
}

func TestBatchIsAtomic(t *testing.T) {
	key := ledgertest.NewKey()
	signer := key.Address()
	other := ledgertest.RandomAddr(t)
	n := newTestNode(t, signer)

	// the deposit succeeds, the second deposit fails and takes the first
	// one down with it
	tx := n.signedTx(key, 0,
		depositIx(t, signer, 1000000),
		depositIx(t, signer, 2000000),
	)
	res := n.app.DeliverTx(tx)
	assert.Equal(t, vault.ErrVaultAlreadyExists.ABCICode(), res.Code)
	n.commit()
	assert.Equal(t, uint64(0), n.balance("/vaults", signer))
	assert.Equal(t, uint64(initialLamports), n.balance("/accounts", signer))

	// a failed tx still consumes the sequence of its signer
	tx = n.signedTx(key, 1,
		depositIx(t, signer, 1000000),
		system.NewTransfer(signer, other, 2000000),
	)
	res = n.app.DeliverTx(tx)
	require.Equal(t, uint32(0), res.Code, res.Log)
	n.commit()

	datas, err := batch.SplitData(res.Data)
	require.NoError(t, err)
	require.NotEmpty(t, datas)
	vaultAddr, _, err := vault.DeriveVault(signer)
	require.NoError(t, err)
	assert.Equal(t, []byte(vaultAddr), datas[0])

	assert.Equal(t, uint64(1000000), n.balance("/vaults", signer))
	assert.Equal(t, uint64(2000000), n.balance("/accounts", other))
	assert.Equal(t, uint64(initialLamports-3000000), n.balance("/accounts", signer))
}

func TestUnsignedTxRejected(t *testing.T) {
	key := ledgertest.NewKey()
	signer := key.Address()
	n := newTestNode(t, signer)

	raw, err := NewTx(depositIx(t, signer, 1000000)).Marshal()
	require.NoError(t, err)
	res := n.app.DeliverTx(raw)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code)

	// signed by somebody else
	thief := ledgertest.NewKey()
	stolen := n.signedTx(thief, 0, withdrawIx(t, signer))
	res = n.app.DeliverTx(stolen)
	assert.NotEqual(t, uint32(0), res.Code)

	res = n.app.DeliverTx([]byte{0x0a, 0x05, 0x01})
	assert.Equal(t, errors.ErrInvalidInput.ABCICode(), res.Code)
}

func TestInitialize(t *testing.T) {
	key := ledgertest.NewKey()
	n := newTestNode(t, key.Address())

	res := n.app.DeliverTx(n.signedTx(key, 0, vault.NewInitialize()))
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Contains(t, res.Log, fmt.Sprintf("Greetings from: %s", vault.ProgramID))
}

func TestGenInitOptions(t *testing.T) {
	addr := ledgertest.RandomAddr(t)
	raw, err := GenInitOptions([]string{addr.String(), "5000000"})
	require.NoError(t, err)

	var state genesisState
	require.NoError(t, json.Unmarshal(raw, &state))
	require.Len(t, state.Accounts, 1)
	assert.Equal(t, addr, state.Accounts[0].Address)
	assert.Equal(t, uint64(5000000), state.Accounts[0].Lamports)

	_, err = GenInitOptions([]string{"not-an-address"})
	assert.Error(t, err)
	_, err = GenInitOptions([]string{addr.String(), "lots"})
	assert.True(t, errors.ErrInvalidInput.Is(err))
}
