package client

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/blueshift-gg/ledger"
	vaultd "github.com/blueshift-gg/ledger/cmd/vaultd/app"
	"github.com/blueshift-gg/ledger/ledgertest"
	"github.com/blueshift-gg/ledger/x/sigs"
	"github.com/blueshift-gg/ledger/x/system"
	"github.com/blueshift-gg/ledger/x/utils"
	"github.com/blueshift-gg/ledger/x/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	c := NewLocalClient(node)
	status, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.CatchingUp)
	assert.NotEmpty(t, status.ChainID)
	if status.Height < 1 {
		t.Fatalf("Unexpected height from status: %d", status.Height)
	}
}

func TestHeader(t *testing.T) {
	c := NewLocalClient(node)
	ctx := context.Background()
	status, err := c.Status(ctx)
	require.NoError(t, err)

	header, err := c.Header(ctx, status.Height)
	require.NoError(t, err)
	assert.Equal(t, status.Height, header.Height)

	_, err = c.Header(ctx, status.Height+20)
	assert.Error(t, err)
}

func TestSubscribeHeaders(t *testing.T) {
	c := NewLocalClient(node)
	ctx, cancel := context.WithCancel(context.Background())

	headers := make(chan Header, 5)
	require.NoError(t, c.SubscribeHeaders(ctx, headers))

	// headers arrive in order
	first, ok := <-headers
	require.True(t, ok)
	for i := int64(1); i < 3; i++ {
		h, ok := <-headers
		require.True(t, ok)
		assert.Equal(t, first.Height+i, h.Height)
	}

	// cancelling closes the channel
	cancel()
	for range headers {
	}
}

func TestVaultRoundTrip(t *testing.T) {
	c := NewLocalClient(node)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	status, err := c.Status(ctx)
	require.NoError(t, err)
	signer := richKey.Address()

	before, err := c.Account(ctx, signer)
	require.NoError(t, err)
	require.True(t, before.Lamports > 1000000)

	seq, err := c.NextSequence(ctx, signer)
	require.NoError(t, err)

	ix, err := vault.NewDeposit(signer, 1000000)
	require.NoError(t, err)
	tx := vaultd.NewTx(ix)
	require.NoError(t, tx.Sign(richKey, status.ChainID, seq))
	res, err := c.CommitTx(ctx, tx)
	require.NoError(t, err)
	require.NoError(t, res.Err)

	v, err := c.Vault(ctx, signer)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000000), v.Lamports)
	after, err := c.Account(ctx, signer)
	require.NoError(t, err)
	assert.Equal(t, before.Lamports-1000000, after.Lamports)

	next, err := c.NextSequence(ctx, signer)
	require.NoError(t, err)
	assert.Equal(t, seq+1, next)

	// a used sequence is refused by the mempool
	ix, err = vault.NewDeposit(signer, 2000000)
	require.NoError(t, err)
	replay := vaultd.NewTx(ix)
	require.NoError(t, replay.Sign(richKey, status.ChainID, seq))
	_, err = c.SubmitTx(ctx, replay)
	assert.True(t, sigs.ErrInvalidSequence.Is(err), "got %v", err)

	ix, err = vault.NewWithdraw(signer)
	require.NoError(t, err)
	tx = vaultd.NewTx(ix)
	require.NoError(t, tx.Sign(richKey, status.ChainID, next))
	raw, err := tx.Marshal()
	require.NoError(t, err)
	res, err = c.CommitRawTx(ctx, raw)
	require.NoError(t, err)
	require.NoError(t, res.Err)

	v, err = c.Vault(ctx, signer)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v.Lamports)
	assert.True(t, v.IsSystemOwned())

	found, err := c.GetTxByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Height, found.Height)

	calls, err := c.SearchTx(ctx, fmt.Sprintf("%s='%s'", utils.ProgramKey, vault.ProgramID))
	require.NoError(t, err)
	assert.True(t, len(calls) >= 2, "got %d vault calls", len(calls))
}

func TestCommitTxs(t *testing.T) {
	c := NewLocalClient(node)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	status, err := c.Status(ctx)
	require.NoError(t, err)
	signer := richKey.Address()
	seq, err := c.NextSequence(ctx, signer)
	require.NoError(t, err)

	var txs []ledger.Tx
	var recipients []ledger.Address
	for i := int64(0); i < 3; i++ {
		to := ledgertest.RandomAddr(t)
		tx := vaultd.NewTx(system.NewTransfer(signer, to, 1000000))
		require.NoError(t, tx.Sign(richKey, status.ChainID, seq+i))
		txs = append(txs, tx)
		recipients = append(recipients, to)
	}
	results, err := c.CommitTxs(ctx, txs)
	require.NoError(t, err)
	require.Len(t, results, len(txs))
	for i, r := range results {
		require.NoError(t, r.Err, "tx %d", i)
	}

	// the last result may be indexed before the others are queryable
	_, err = c.WaitForNextBlock(ctx)
	require.NoError(t, err)
	for _, to := range recipients {
		acct, err := c.Account(ctx, to)
		require.NoError(t, err)
		assert.Equal(t, uint64(1000000), acct.Lamports)
	}
}
