package vault

import (
	"testing"

	"github.com/blueshift-gg/ledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscriminators(t *testing.T) {
	assert.Equal(t, []byte{175, 175, 109, 31, 13, 152, 155, 237}, Initialize{}.Encode())
	assert.Equal(t, []byte{183, 18, 70, 156, 148, 109, 161, 34}, Withdraw{}.Encode())
	assert.Equal(t,
		[]byte{242, 35, 198, 137, 82, 225, 242, 182, 0x40, 0x42, 0x0f, 0, 0, 0, 0, 0},
		Deposit{Amount: 1000000}.Encode())
}

func TestDecode(t *testing.T) {
	deposit := Deposit{Amount: 1000000}.Encode()

	cases := map[string]struct {
		raw     []byte
		want    Instruction
		wantErr *errors.Error
	}{
		"initialize": {
			raw:  Initialize{}.Encode(),
			want: Initialize{},
		},
		"deposit": {
			raw:  deposit,
			want: Deposit{Amount: 1000000},
		},
		"withdraw": {
			raw:  Withdraw{}.Encode(),
			want: Withdraw{},
		},
		"empty": {
			raw:     nil,
			wantErr: errors.ErrInstructionFallbackNotFound,
		},
		"short discriminator": {
			raw:     deposit[:5],
			wantErr: errors.ErrInstructionFallbackNotFound,
		},
		"unknown discriminator": {
			raw:     []byte{1, 2, 3, 4, 5, 6, 7, 8},
			wantErr: errors.ErrInstructionFallbackNotFound,
		},
		"deposit missing amount": {
			raw:     deposit[:8],
			wantErr: errors.ErrInstructionDidNotDeserialize,
		},
		"deposit short amount": {
			raw:     deposit[:12],
			wantErr: errors.ErrInstructionDidNotDeserialize,
		},
		"withdraw trailing data": {
			raw:     append(Withdraw{}.Encode(), 1),
			wantErr: errors.ErrInstructionDidNotDeserialize,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := Decode(tc.raw)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.raw, got.Encode())
		})
	}
}
