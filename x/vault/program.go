package vault

import (
	"github.com/blueshift-gg/ledger"
)

// ProgramID is the address the vault program is deployed at.
var ProgramID = ledger.MustParseAddress("7zP3k3zQxUYBsVj4dGVJ1xvhtto6oLTTWT9pk1CJzJ1s")

// SeedPrefix is the first seed of every vault address.
const SeedPrefix = "vault"

// DeriveVault returns the vault address of the signer and the bump that
// makes it a valid program address.
func DeriveVault(signer ledger.Address) (ledger.Address, uint8, error) {
	return ledger.FindProgramAddress(vaultSeeds(signer), ProgramID)
}

func vaultSeeds(signer ledger.Address) [][]byte {
	return [][]byte{[]byte(SeedPrefix), signer}
}

// signerSeeds are the seeds the program presents to move lamports out of
// the vault.
func signerSeeds(signer ledger.Address, bump uint8) [][]byte {
	return append(vaultSeeds(signer), []byte{bump})
}
