package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"strings"
	"time"

	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/client"
)

func defaultNode() string {
	return env("VAULTD_NODE", "http://localhost:26657")
}

func cmdSubmit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ContinueOnError)
	fl.Usage = func() {
		fmt.Fprint(fl.Output(), `
Read a hex encoded transaction from the input, submit it to a node and wait
until it is committed in a block. The result log is written to the output.

	vaultd tx deposit -chain-id c -amount 1000000 | vaultd submit
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl    = fl.String("node", defaultNode(), "Tendermint rpc address. You can use VAULTD_NODE environment variable to set it.")
		timeoutFl = fl.Duration("timeout", 30*time.Second, "How long to wait for the commit.")
	)
	if err := fl.Parse(args); err != nil {
		return err
	}

	raw, err := readHexTx(input)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFl)
	defer cancel()
	c := client.NewClient(client.NewHTTPConnection(*nodeFl))
	res, err := c.CommitRawTx(ctx, raw)
	if err != nil {
		return fmt.Errorf("cannot commit transaction: %s", err)
	}
	if res.Err != nil {
		return fmt.Errorf("transaction %X failed at height %d: %s", res.ID, res.Height, res.Err)
	}
	fmt.Fprintf(output, "transaction %X committed at height %d\n", res.ID, res.Height)
	if res.Result.Log != "" {
		fmt.Fprintln(output, res.Result.Log)
	}
	return nil
}

func readHexTx(input io.Reader) ([]byte, error) {
	raw, err := ioutil.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("cannot read input: %s", err)
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, fmt.Errorf("no transaction in the input")
	}
	bz, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("invalid hex transaction: %s", err)
	}
	return bz, nil
}

func cmdQuery(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ContinueOnError)
	fl.Usage = func() {
		fmt.Fprint(fl.Output(), `
Print the balance of an account, the vault of a signer or the next sequence
of a signer.

Usage: query <account|vault|sequence> -address <address> [flags]
`)
		fl.PrintDefaults()
	}
	if len(args) == 0 {
		fl.Usage()
		return fmt.Errorf("missing query name")
	}
	what, args := args[0], args[1:]
	var (
		nodeFl    = fl.String("node", defaultNode(), "Tendermint rpc address. You can use VAULTD_NODE environment variable to set it.")
		addressFl = fl.String("address", "", "Address of the account or signer.")
	)
	if err := fl.Parse(args); err != nil {
		return err
	}
	addr, err := ledger.ParseAddress(*addressFl)
	if err != nil {
		return fmt.Errorf("invalid address: %s", err)
	}

	ctx := context.Background()
	c := client.NewClient(client.NewHTTPConnection(*nodeFl))
	switch what {
	case "account":
		acct, err := c.Account(ctx, addr)
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "%s %d %s\n", addr, acct.Lamports, acct.Owner)
	case "vault":
		v, _, err := vaultAddress(addr)
		if err != nil {
			return err
		}
		acct, err := c.Vault(ctx, addr)
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "%s %d %s\n", v, acct.Lamports, acct.Owner)
	case "sequence":
		seq, err := c.NextSequence(ctx, addr)
		if err != nil {
			return err
		}
		fmt.Fprintln(output, seq)
	default:
		return fmt.Errorf("unknown query %q", what)
	}
	return nil
}
