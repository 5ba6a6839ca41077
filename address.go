package ledger

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/blueshift-gg/ledger/crypto/bech32"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/mr-tron/base58"
)

// AddressLength is the length of all addresses. Signer addresses are ed25519
// public keys, program derived addresses are sha256 digests.
const AddressLength = 32

// Address identifies an account on the ledger.
type Address []byte

// NewAddress copies the given bytes into an address.
func NewAddress(raw []byte) Address {
	if raw == nil {
		return nil
	}
	a := make(Address, len(raw))
	copy(a, raw)
	return a
}

// MustParseAddress parses a base58 address and panics on failure. Only use
// it for compile time constants such as program ids.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseAddress decodes the human readable form of an address.
//
// The default encoding is base58. A "hex:" or "bech32:" prefix selects
// another encoding.
func ParseAddress(s string) (Address, error) {
	format := "base58"
	if chunks := strings.SplitN(s, ":", 2); len(chunks) == 2 {
		format, s = chunks[0], chunks[1]
	}

	var (
		raw []byte
		err error
	)
	switch format {
	case "base58":
		raw, err = base58.Decode(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInvalidInput, "cannot decode base58")
		}
	case "hex":
		raw, err = hex.DecodeString(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInvalidInput, "cannot decode hex")
		}
	case "bech32":
		_, raw, err = bech32.Decode(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInvalidInput, "cannot decode bech32")
		}
	default:
		return nil, errors.ErrInvalidType.Newf("unknown format %q", format)
	}

	a := Address(raw)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Clone returns a copy that does not share memory with a.
func (a Address) Clone() Address {
	return NewAddress(a)
}

// String returns the base58 form.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return base58.Encode(a)
}

// Bech32 returns the address encoded with the given human readable part.
func (a Address) Bech32(hrp string) (string, error) {
	raw, err := bech32.Encode(hrp, a)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Validate returns an error if the address is not the valid size
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.ErrInvalidInput.Newf("address length %d", len(a))
	}
	return nil
}

// MarshalJSON provides the base58 representation.
func (a Address) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts any form understood by ParseAddress.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	if len(enc) == 0 {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
