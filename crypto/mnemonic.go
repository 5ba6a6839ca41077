package crypto

import (
	"fmt"
	"strings"

	"github.com/blueshift-gg/ledger/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	"github.com/tyler-smith/go-bip39"
)

// DerivationPath returns the SLIP-10 path of the n-th wallet account.
func DerivationPath(account uint32) string {
	return fmt.Sprintf("m/44'/501'/%d'/0'", account)
}

// NewMnemonic returns a fresh 24 word recovery phrase.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", errors.Wrap(err, "entropy")
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "mnemonic")
	}
	return mnemonic, nil
}

// KeyFromMnemonic derives the private key of the given account from a bip39
// recovery phrase.
func KeyFromMnemonic(mnemonic string, account uint32) (*PrivateKey, error) {
	mnemonic = strings.TrimSpace(mnemonic)
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.Wrap(errors.ErrInvalidInput, "invalid mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, "")
	k, err := derivation.DeriveForPath(DerivationPath(account), seed)
	if err != nil {
		return nil, errors.Wrap(err, "derive key")
	}
	return PrivKeyEd25519FromSeed(k.Key), nil
}
