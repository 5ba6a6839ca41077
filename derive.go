package ledger

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
	"github.com/blueshift-gg/ledger/errors"
)

const (
	// MaxSeeds is the maximum number of seeds a program address may be
	// derived from, including the bump.
	MaxSeeds = 16

	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32
)

// pdaMarker is appended to every derivation so that a program address can
// never be the digest of anything else.
var pdaMarker = []byte("ProgramDerivedAddress")

// CreateProgramAddress computes the address owned by program for the given
// seeds:
//
//	sha256(seeds[0] | ... | seeds[n] | program | "ProgramDerivedAddress")
//
// The result must not be a valid ed25519 point, so that no private key can
// ever sign for it. If it is, ErrInvalidSeeds is returned and the caller
// must try another bump.
func CreateProgramAddress(seeds [][]byte, program Address) (Address, error) {
	if err := validateSeeds(seeds, program); err != nil {
		return nil, err
	}
	digest := programDigest(seeds, program)
	if IsOnCurve(digest) {
		return nil, errors.ErrInvalidSeeds.New("address on curve")
	}
	return Address(digest), nil
}

// FindProgramAddress searches for the canonical bump, starting at 255 and
// going down, for which the seeds extended with the bump produce a valid
// program address.
func FindProgramAddress(seeds [][]byte, program Address) (Address, uint8, error) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	withBump[len(seeds)] = []byte{0}
	if err := validateSeeds(withBump, program); err != nil {
		return nil, 0, err
	}

	for bump := 255; bump > 0; bump-- {
		withBump[len(seeds)] = []byte{uint8(bump)}
		digest := programDigest(withBump, program)
		if !IsOnCurve(digest) {
			return Address(digest), uint8(bump), nil
		}
	}
	return nil, 0, errors.ErrInvalidSeeds.New("unable to find a viable program address bump seed")
}

func validateSeeds(seeds [][]byte, program Address) error {
	if len(seeds) > MaxSeeds {
		return errors.ErrInvalidSeeds.Newf("%d seeds, max %d", len(seeds), MaxSeeds)
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return errors.ErrInvalidSeeds.Newf("seed %d is %d bytes, max %d", i, len(s), MaxSeedLength)
		}
	}
	if err := program.Validate(); err != nil {
		return errors.Wrap(err, "program")
	}
	return nil
}

func programDigest(seeds [][]byte, program Address) []byte {
	h := sha256.New()
	for _, s := range seeds {
		h.Write(s)
	}
	h.Write(program)
	h.Write(pdaMarker)
	return h.Sum(nil)
}

// IsOnCurve returns true if the 32-byte value decodes to a valid edwards25519
// point, that is, it could be an ed25519 public key.
func IsOnCurve(b []byte) bool {
	if len(b) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
