package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamplesDecode(t *testing.T) {
	examples, err := Examples()
	require.NoError(t, err)

	var txs int
	for _, ex := range examples {
		tx, ok := ex.Obj.(*Tx)
		if !ok {
			continue
		}
		txs++
		raw, err := tx.Marshal()
		require.NoError(t, err)
		decoded, err := TxDecoder(raw)
		require.NoError(t, err, ex.Filename)
		assert.Len(t, decoded.(*Tx).GetSignatures(), 1, ex.Filename)
	}
	assert.Equal(t, 2, txs)
}
