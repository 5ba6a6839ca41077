package ledger

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/blueshift-gg/ledger/errors"
	"github.com/blueshift-gg/ledger/ledgertest/assert"
	"golang.org/x/crypto/ed25519"
)

var upgradeableLoader = MustParseAddress("BPFLoaderUpgradeab1e11111111111111111111111")

func TestCreateProgramAddress(t *testing.T) {
	cases := map[string]struct {
		Seeds   [][]byte
		Program Address
		Want    string
		WantErr *errors.Error
	}{
		"empty seed and a byte": {
			Seeds:   [][]byte{{}, {1}},
			Program: upgradeableLoader,
			Want:    "BwqrghZA2htAcqq8dzP1WDAhTXYTYWj7CHxF5j7TDBAe",
		},
		"utf8 seed": {
			Seeds:   [][]byte{[]byte("☉"), {0}},
			Program: upgradeableLoader,
			Want:    "13yWmRpaTR4r5nAktwLqMpRNr28tnVUZw26rTvPSSB19",
		},
		"two words": {
			Seeds:   [][]byte{[]byte("Talking"), []byte("Squirrels")},
			Program: upgradeableLoader,
			Want:    "2fnQrngrQT4SeLcdToJAD96phoEjNL2man2kfRLCASVk",
		},
		"address seed": {
			Seeds:   [][]byte{MustParseAddress("SeedPubey1111111111111111111111111111111111"), {1}},
			Program: upgradeableLoader,
			Want:    "976ymqVnfE32QFe6NfGDctSvVa36LWnvYxhU6G2232YL",
		},
		"seed too long": {
			Seeds:   [][]byte{make([]byte, MaxSeedLength+1)},
			Program: upgradeableLoader,
			WantErr: errors.ErrInvalidSeeds,
		},
		"too many seeds": {
			Seeds:   make([][]byte, MaxSeeds+1),
			Program: upgradeableLoader,
			WantErr: errors.ErrInvalidSeeds,
		},
		"invalid program": {
			Seeds:   [][]byte{[]byte("a")},
			Program: Address("short"),
			WantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := CreateProgramAddress(tc.Seeds, tc.Program)
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.WantErr != nil {
				return
			}
			assert.Equal(t, tc.Want, got.String())
		})
	}
}

func TestCreateProgramAddressMaxLimits(t *testing.T) {
	seeds := make([][]byte, MaxSeeds)
	for i := range seeds {
		seeds[i] = bytes.Repeat([]byte{byte(i)}, MaxSeedLength)
	}
	_, err := CreateProgramAddress(seeds, upgradeableLoader)
	if err != nil && !errors.ErrInvalidSeeds.Is(err) {
		t.Fatalf("limits must be inclusive: %+v", err)
	}
}

func TestFindProgramAddress(t *testing.T) {
	for i := 0; i < 100; i++ {
		seeds := [][]byte{[]byte("find"), []byte(fmt.Sprintf("seed-%d", i))}

		addr, bump, err := FindProgramAddress(seeds, upgradeableLoader)
		assert.Nil(t, err)
		if IsOnCurve(addr) {
			t.Fatalf("%d: address %s is on the curve", i, addr)
		}

		created, err := CreateProgramAddress(append(seeds, []byte{bump}), upgradeableLoader)
		assert.Nil(t, err)
		assert.Equal(t, addr, created)

		// Every bump above the canonical one must be rejected.
		for b := 255; b > int(bump); b-- {
			if _, err := CreateProgramAddress(append(seeds, []byte{byte(b)}), upgradeableLoader); !errors.ErrInvalidSeeds.Is(err) {
				t.Fatalf("%d: bump %d above canonical %d accepted", i, b, bump)
			}
		}
	}
}

func TestFindProgramAddressKnownBump(t *testing.T) {
	addr, bump, err := FindProgramAddress([][]byte{[]byte("Lil'"), []byte("Bits")}, upgradeableLoader)
	assert.Nil(t, err)
	assert.Equal(t, "H4feCuM8B43jxwbHAsUHDasw1raRkvWF6py4Fx7suB8N", addr.String())
	assert.Equal(t, uint8(254), bump)
}

func TestFindProgramAddressLeavesRoomForBump(t *testing.T) {
	// MaxSeeds includes the bump seed.
	_, _, err := FindProgramAddress(make([][]byte, MaxSeeds), upgradeableLoader)
	assert.IsErr(t, errors.ErrInvalidSeeds, err)

	_, _, err = FindProgramAddress(make([][]byte, MaxSeeds-1), upgradeableLoader)
	assert.Nil(t, err)
}

func TestIsOnCurve(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	assert.Nil(t, err)
	if !IsOnCurve(pub) {
		t.Fatal("ed25519 public key must be on the curve")
	}

	pda := MustParseAddress("BwqrghZA2htAcqq8dzP1WDAhTXYTYWj7CHxF5j7TDBAe")
	if IsOnCurve(pda) {
		t.Fatal("program address must not be on the curve")
	}

	if IsOnCurve([]byte{1, 2, 3}) {
		t.Fatal("short input cannot be a point")
	}
}
