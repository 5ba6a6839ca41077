package system

import (
	"encoding/binary"

	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/errors"
)

// Instruction indexes understood by the system program.
const (
	TransferIndex uint32 = 2
)

// TransferData is the payload of a transfer instruction.
type TransferData struct {
	Lamports uint64
}

// Encode writes the instruction index followed by the arguments.
func (d TransferData) Encode() []byte {
	raw := make([]byte, 12)
	binary.LittleEndian.PutUint32(raw, TransferIndex)
	binary.LittleEndian.PutUint64(raw[4:], d.Lamports)
	return raw
}

// DecodeTransfer parses the data of a transfer instruction.
func DecodeTransfer(raw []byte) (TransferData, error) {
	if len(raw) < 4 {
		return TransferData{}, errors.Wrap(errors.ErrInstructionDidNotDeserialize, "missing instruction index")
	}
	if idx := binary.LittleEndian.Uint32(raw); idx != TransferIndex {
		return TransferData{}, errors.Wrapf(errors.ErrInstructionFallbackNotFound, "instruction %d", idx)
	}
	if len(raw) != 12 {
		return TransferData{}, errors.Wrapf(errors.ErrInstructionDidNotDeserialize, "transfer takes 8 bytes, got %d", len(raw)-4)
	}
	return TransferData{Lamports: binary.LittleEndian.Uint64(raw[4:])}, nil
}

// NewTransfer builds the instruction moving lamports between two accounts.
// from must sign the transaction.
func NewTransfer(from, to ledger.Address, lamports uint64) *ledger.Instruction {
	return &ledger.Instruction{
		Program: ProgramID,
		Accounts: []*ledger.AccountMeta{
			ledger.NewAccountMeta(from, true, true),
			ledger.NewAccountMeta(to, false, true),
		},
		Data: TransferData{Lamports: lamports}.Encode(),
	}
}
