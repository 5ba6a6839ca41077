package ledgertest

import (
	"github.com/blueshift-gg/ledger"
)

// Tx represents a ledger transaction executing a single instruction.
type Tx struct {
	// Ix is the instruction that is to be processed by this transaction.
	Ix *ledger.Instruction
	// Err if set is returned by any method call.
	Err error
}

var _ ledger.Tx = (*Tx)(nil)

func (tx *Tx) GetInstruction() (*ledger.Instruction, error) {
	return tx.Ix, tx.Err
}

func (tx *Tx) Unmarshal(raw []byte) error {
	if tx.Err != nil {
		return tx.Err
	}
	tx.Ix = &ledger.Instruction{}
	return tx.Ix.Unmarshal(raw)
}

func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Ix.Marshal()
}
