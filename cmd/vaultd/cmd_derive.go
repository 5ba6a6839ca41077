package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/x/vault"
)

// seedsFlag collects repeated -seed values. A 0x prefix marks hex encoded
// bytes, anything else is used as text.
type seedsFlag [][]byte

func (s *seedsFlag) String() string {
	parts := make([]string, len(*s))
	for i, b := range *s {
		parts[i] = string(b)
	}
	return strings.Join(parts, ",")
}

func (s *seedsFlag) Set(raw string) error {
	if strings.HasPrefix(raw, "0x") {
		b, err := hex.DecodeString(raw[2:])
		if err != nil {
			return fmt.Errorf("invalid hex seed: %s", err)
		}
		*s = append(*s, b)
		return nil
	}
	*s = append(*s, []byte(raw))
	return nil
}

func cmdDerive(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ContinueOnError)
	fl.Usage = func() {
		fmt.Fprint(fl.Output(), `
Print the program derived address and its bump.

With -signer the vault of that signer is derived. Otherwise the given seeds
are derived under -program.
`)
		fl.PrintDefaults()
	}
	var seeds seedsFlag
	var (
		signerFl  = fl.String("signer", "", "Derive the vault of this signer.")
		programFl = fl.String("program", vault.ProgramID.String(), "Program the address is derived for.")
	)
	fl.Var(&seeds, "seed", "Seed, repeat for more. Use 0x prefix for hex.")
	if err := fl.Parse(args); err != nil {
		return err
	}

	var (
		addr ledger.Address
		bump uint8
		err  error
	)
	if *signerFl != "" {
		signer, perr := ledger.ParseAddress(*signerFl)
		if perr != nil {
			return perr
		}
		addr, bump, err = vault.DeriveVault(signer)
	} else {
		program, perr := ledger.ParseAddress(*programFl)
		if perr != nil {
			return perr
		}
		addr, bump, err = ledger.FindProgramAddress(seeds, program)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(output, "%s %d\n", addr, bump)
	return nil
}
