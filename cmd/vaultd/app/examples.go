package app

import (
	"github.com/blueshift-gg/ledger/commands"
	"github.com/blueshift-gg/ledger/crypto"
	"github.com/blueshift-gg/ledger/x/sigs"
	"github.com/blueshift-gg/ledger/x/system"
	"github.com/blueshift-gg/ledger/x/vault"
)

// exampleChainID is the chain the example transactions are signed for.
const exampleChainID = "vault-chain-1"

// Examples generates some example structs to dump out with testgen
func Examples() ([]commands.Example, error) {
	priv := crypto.GenPrivKeyEd25519()
	signer := priv.Address()
	user := &sigs.UserData{
		Pubkey:   priv.PublicKey(),
		Sequence: 17,
	}

	deposit, err := vault.NewDeposit(signer, 1000000)
	if err != nil {
		return nil, err
	}
	withdraw, err := vault.NewWithdraw(signer)
	if err != nil {
		return nil, err
	}
	transfer := system.NewTransfer(signer, crypto.GenPrivKeyEd25519().Address(), 2500000)

	depositTx := NewTx(deposit)
	if err := depositTx.Sign(priv, exampleChainID, user.Sequence); err != nil {
		return nil, err
	}
	batchTx := NewTx(withdraw, transfer)
	if err := batchTx.Sign(priv, exampleChainID, user.Sequence+1); err != nil {
		return nil, err
	}

	rent := system.DefaultRent()
	return []commands.Example{
		{Filename: "account", Obj: &system.Account{Lamports: 890880, Owner: system.ProgramID}},
		{Filename: "rent", Obj: &rent},
		{Filename: "user", Obj: user},
		{Filename: "pubkey", Obj: user.Pubkey},
		{Filename: "deposit_ix", Obj: deposit},
		{Filename: "deposit_tx", Obj: depositTx},
		{Filename: "batch_tx", Obj: batchTx},
	}, nil
}
