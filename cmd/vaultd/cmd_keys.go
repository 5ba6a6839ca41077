package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/crypto"
	"github.com/blueshift-gg/ledger/x/vault"
)

func defaultKeyPath() string {
	return env("VAULTD_PRIV_KEY", os.Getenv("HOME")+"/.vaultd.priv.key")
}

func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

func cmdKeys(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ContinueOnError)
	fl.Usage = func() {
		fmt.Fprint(fl.Output(), `
Generate a new private key from a fresh recovery phrase, or recover it from
a phrase read from the input.

The key is written to a file and this command fails if the file already
exists. With -show the address of an existing key file is printed.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file. You can use VAULTD_PRIV_KEY environment variable to set it.")
		recoverFl = fl.Bool("recover", false, "Read the recovery phrase from the input.")
		accountFl = fl.Uint("account", 0, "Account index of the derivation path.")
		showFl    = fl.Bool("show", false, "Print the addresses of an existing key.")
		hrpFl     = fl.String("hrp", "vault", "Human readable part of the printed bech32 address.")
	)
	if err := fl.Parse(args); err != nil {
		return err
	}

	if *showFl {
		key, err := readKey(*keyPathFl)
		if err != nil {
			return err
		}
		return printAddresses(output, key, *hrpFl)
	}

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Never overwrite a key. The user must remove the file first.
		return fmt.Errorf("private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	var mnemonic string
	if *recoverFl {
		raw, err := ioutil.ReadAll(input)
		if err != nil {
			return fmt.Errorf("cannot read recovery phrase: %s", err)
		}
		mnemonic = strings.TrimSpace(string(raw))
	} else {
		m, err := crypto.NewMnemonic()
		if err != nil {
			return err
		}
		mnemonic = m
	}

	key, err := crypto.KeyFromMnemonic(mnemonic, uint32(*accountFl))
	if err != nil {
		return err
	}
	raw, err := key.Marshal()
	if err != nil {
		return fmt.Errorf("cannot serialize private key: %s", err)
	}
	if err := ioutil.WriteFile(*keyPathFl, raw, 0o600); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}

	if !*recoverFl {
		fmt.Fprintf(output, "recovery phrase: %s\n", mnemonic)
	}
	return printAddresses(output, key, *hrpFl)
}

func printAddresses(output io.Writer, key *crypto.PrivateKey, hrp string) error {
	addr := key.Address()
	v, _, err := vaultAddress(addr)
	if err != nil {
		return err
	}
	b32, err := addr.Bech32(hrp)
	if err != nil {
		return fmt.Errorf("cannot encode bech32 address: %s", err)
	}
	fmt.Fprintf(output, "address: %s\n", addr)
	fmt.Fprintf(output, "bech32:  %s\n", b32)
	fmt.Fprintf(output, "vault:   %s\n", v)
	return nil
}

func readKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read private key file: %s", err)
	}
	var key crypto.PrivateKey
	if err := key.Unmarshal(raw); err != nil {
		return nil, fmt.Errorf("cannot deserialize private key: %s", err)
	}
	if len(key.GetEd25519()) == 0 {
		return nil, fmt.Errorf("private key file %q holds no key", path)
	}
	return &key, nil
}

func vaultAddress(signer ledger.Address) (ledger.Address, uint8, error) {
	return vault.DeriveVault(signer)
}
