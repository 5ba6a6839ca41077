package vault

import (
	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/blueshift-gg/ledger/x"
	"github.com/blueshift-gg/ledger/x/system"
)

// vaultAccounts are the validated accounts of deposit and withdraw.
type vaultAccounts struct {
	signer ledger.Address
	vault  ledger.Address
	bump   uint8
}

// loadAccounts checks the account list of the instruction. The checks run
// in a fixed order and the first failure is returned.
func loadAccounts(ctx ledger.Context, db ledger.ReadOnlyKVStore, ix *ledger.Instruction, auth x.Authenticator, control system.Controller) (*vaultAccounts, error) {
	if len(ix.Accounts) < 3 {
		return nil, errors.ErrAccountNotEnoughKeys.Newf("want 3 accounts, got %d", len(ix.Accounts))
	}
	signer, vault, program := ix.Accounts[0], ix.Accounts[1], ix.Accounts[2]

	if !signer.IsSigner || !auth.HasAddress(ctx, signer.Address) {
		return nil, errors.Wrapf(errors.ErrAccountNotSigner, "signer %s", signer.Address)
	}
	if !signer.IsWritable {
		return nil, errors.Wrap(errors.ErrConstraintMut, "signer")
	}
	if !vault.IsWritable {
		return nil, errors.Wrap(errors.ErrConstraintMut, "vault")
	}

	want, bump, err := DeriveVault(signer.Address)
	if err != nil {
		return nil, errors.Wrap(err, "derive vault")
	}
	if !want.Equals(vault.Address) {
		return nil, errors.Wrapf(errors.ErrConstraintSeeds, "vault of %s is %s, got %s", signer.Address, want, vault.Address)
	}

	acct, err := control.Account(db, vault.Address)
	if err != nil {
		return nil, errors.Wrap(err, "load vault")
	}
	if !acct.IsSystemOwned() {
		return nil, errors.Wrapf(errors.ErrAccountNotSystemOwned, "vault owned by %s", acct.Owner)
	}

	if !program.Address.Equals(system.ProgramID) {
		return nil, errors.Wrapf(errors.ErrInvalidProgramID, "want system program, got %s", program.Address)
	}

	return &vaultAccounts{
		signer: signer.Address,
		vault:  vault.Address,
		bump:   bump,
	}, nil
}
