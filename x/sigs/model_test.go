package sigs

import (
	"testing"

	"github.com/blueshift-gg/ledger/crypto"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/blueshift-gg/ledger/ledgertest/assert"
	"github.com/blueshift-gg/ledger/store"
)

func TestUserDataSequence(t *testing.T) {
	u := &UserData{Pubkey: crypto.GenPrivKeyEd25519().PublicKey()}
	assert.Nil(t, u.Validate())

	assert.IsErr(t, ErrInvalidSequence, u.CheckAndIncrementSequence(1))
	assert.Nil(t, u.CheckAndIncrementSequence(0))
	assert.Equal(t, int64(1), u.Sequence)

	u.Sequence = (1 << 53) - 1
	assert.IsErr(t, errors.ErrOverflow, u.CheckAndIncrementSequence((1<<53)-1))

	assert.IsErr(t, errors.ErrEmpty, (&UserData{}).Validate())
	assert.IsErr(t, ErrInvalidSequence, (&UserData{Sequence: -1}).Validate())
}

func TestUserDataPersistence(t *testing.T) {
	db := store.MemStore()
	b := NewBucket()
	pub := crypto.GenPrivKeyEd25519().PublicKey()

	u, err := b.GetOrCreate(db, pub)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), u.Sequence)

	u.Sequence = 5
	assert.Nil(t, b.Save(db, u))

	got, err := b.GetOrCreate(db, pub)
	assert.Nil(t, err)
	assert.Equal(t, int64(5), got.Sequence)
	assert.Equal(t, pub.Ed25519, got.Pubkey.Ed25519)
}

func TestStdSignatureValidate(t *testing.T) {
	priv := crypto.GenPrivKeyEd25519()
	sig, err := priv.Sign([]byte("foo"))
	assert.Nil(t, err)

	std := &StdSignature{Pubkey: priv.PublicKey(), Signature: sig, Sequence: 3}
	assert.Nil(t, std.Validate())

	raw, err := std.Marshal()
	assert.Nil(t, err)
	var got StdSignature
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, std.Sequence, got.Sequence)
	assert.Equal(t, std.Pubkey.Ed25519, got.Pubkey.Ed25519)
	assert.Equal(t, std.Signature.Ed25519, got.Signature.Ed25519)

	assert.IsErr(t, errors.ErrUnauthorized, (&StdSignature{Signature: sig}).Validate())
	assert.IsErr(t, errors.ErrUnauthorized, (&StdSignature{Pubkey: priv.PublicKey()}).Validate())
	assert.IsErr(t, ErrInvalidSequence, (&StdSignature{Sequence: -1}).Validate())
}
