package sigs

import (
	"testing"

	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/crypto"
	"github.com/blueshift-gg/ledger/ledgertest"
	"github.com/blueshift-gg/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorator(t *testing.T) {
	kv := store.MemStore()
	checkKv := kv.CacheWrap()
	signers := new(sigCheckHandler)
	d := NewDecorator()
	chainID := "deco-rate"
	ctx := ledgertest.Ctx(chainID, 1)

	priv := crypto.GenPrivKeyEd25519()
	want := []ledger.Address{priv.Address()}

	tx := &stdTx{payload: []byte("art")}
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)

	deliver := func(dec ledger.Decorator, my ledger.Tx) error {
		_, err := dec.Deliver(ctx, kv, my, signers)
		return err
	}
	check := func(dec ledger.Decorator, my ledger.Tx) error {
		_, err := dec.Check(ctx, checkKv, my, signers)
		return err
	}

	for i, fn := range []func(ledger.Decorator, ledger.Tx) error{check, deliver} {
		// test with no sigs
		tx.signatures = nil
		err := fn(d, tx)
		assert.Error(t, err, "%d", i)

		// test with one
		tx.signatures = []*StdSignature{sig}
		err = fn(d, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, want, signers.signers)

		// test with replay
		err = fn(d, tx)
		assert.True(t, ErrInvalidSequence.Is(err), "%d: %+v", i, err)

		// test allowing none
		ad := d.AllowMissingSigs()
		tx.signatures = nil
		err = fn(ad, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, []ledger.Address{}, signers.signers)

		// test allowing, with next sequence
		tx.signatures = []*StdSignature{sig1}
		err = fn(ad, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, want, signers.signers)
	}
}

func TestDecoratorRejectsUnsignedTx(t *testing.T) {
	ctx := ledgertest.Ctx("deco-rate", 1)
	h := &ledgertest.Handler{}

	_, err := NewDecorator().Deliver(ctx, store.MemStore(), &ledgertest.Tx{}, h)
	assert.Error(t, err)
	assert.Equal(t, 0, h.CallCount())

	_, err = NewDecorator().AllowMissingSigs().Deliver(ctx, store.MemStore(), &ledgertest.Tx{}, h)
	assert.NoError(t, err)
	assert.Equal(t, 1, h.CallCount())
}

func TestDecoratorChargesForSignatures(t *testing.T) {
	chainID := "deco-rate"
	ctx := ledgertest.Ctx(chainID, 1)
	priv := crypto.GenPrivKeyEd25519()

	tx := &stdTx{payload: []byte("art")}
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	tx.signatures = []*StdSignature{sig}

	res, err := NewDecorator().Check(ctx, store.MemStore(), tx, &ledgertest.Handler{})
	require.NoError(t, err)
	assert.Equal(t, int64(signatureVerifyCost), res.GasPayment)
}
