package ledgertest

import (
	"context"
	"crypto/rand"
	"testing"

	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/crypto"
)

// NewKey returns a new random ed25519 key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// RandomAddr returns the address of a new random signer.
func RandomAddr(t testing.TB) ledger.Address {
	t.Helper()
	raw := make([]byte, ledger.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot read random data: %s", err)
	}
	return crypto.PrivKeyEd25519FromSeed(raw).Address()
}

// ParseAddress takes an address in a human readable format and returns
// its binary representation.
func ParseAddress(t testing.TB, encodedAddress string) ledger.Address {
	t.Helper()

	addr, err := ledger.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// Ctx returns a context with the chain id and height set, ready to be
// passed to decorators and handlers.
func Ctx(chainID string, height int64) ledger.Context {
	ctx := ledger.WithChainID(context.Background(), chainID)
	return ledger.WithHeight(ctx, height)
}
