package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"

	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/cmd/vaultd/app"
	"github.com/blueshift-gg/ledger/x/system"
	"github.com/blueshift-gg/ledger/x/vault"
)

func cmdTx(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ContinueOnError)
	fl.Usage = func() {
		fmt.Fprint(fl.Output(), `
Build and sign a transaction. The hex encoded transaction is written to the
output, ready to be broadcast with tendermint's broadcast_tx_commit.

Usage: tx <initialize|deposit|withdraw|transfer> [flags]
`)
		fl.PrintDefaults()
	}
	if len(args) == 0 {
		fl.Usage()
		return fmt.Errorf("missing instruction name")
	}
	op, args := args[0], args[1:]

	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file that transaction should be signed with. You can use VAULTD_PRIV_KEY environment variable to set it.")
		chainFl  = fl.String("chain-id", "", "Chain the transaction is signed for.")
		seqFl    = fl.Int64("seq", 0, "Sequence of the signer.")
		amountFl = fl.Uint64("amount", 0, "Lamports to deposit or transfer.")
		toFl     = fl.String("to", "", "Recipient of a transfer.")
	)
	if err := fl.Parse(args); err != nil {
		return err
	}
	if *chainFl == "" {
		return fmt.Errorf("chain id is required")
	}

	key, err := readKey(*keyPathFl)
	if err != nil {
		return err
	}
	signer := key.Address()

	var ix *ledger.Instruction
	switch op {
	case vault.InitializeName:
		ix = vault.NewInitialize()
	case vault.DepositName:
		ix, err = vault.NewDeposit(signer, *amountFl)
	case vault.WithdrawName:
		ix, err = vault.NewWithdraw(signer)
	case "transfer":
		to, perr := ledger.ParseAddress(*toFl)
		if perr != nil {
			return fmt.Errorf("invalid recipient: %s", perr)
		}
		ix = system.NewTransfer(signer, to, *amountFl)
	default:
		return fmt.Errorf("unknown instruction %q", op)
	}
	if err != nil {
		return err
	}

	tx := app.NewTx(ix)
	if err := tx.Sign(key, *chainFl, *seqFl); err != nil {
		return fmt.Errorf("cannot sign transaction: %s", err)
	}
	raw, err := tx.Marshal()
	if err != nil {
		return fmt.Errorf("cannot serialize transaction: %s", err)
	}
	_, err = fmt.Fprintln(output, hex.EncodeToString(raw))
	return err
}
