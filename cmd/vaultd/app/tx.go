package app

import (
	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/codec"
	"github.com/blueshift-gg/ledger/crypto"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/blueshift-gg/ledger/x/batch"
	"github.com/blueshift-gg/ledger/x/sigs"
	"github.com/gogo/protobuf/proto"
)

// Tx is the transaction format of vaultd: the signatures of every signer
// over the ordered list of instructions.
type Tx struct {
	Signatures   []*sigs.StdSignature  `protobuf:"bytes,1,rep,name=signatures" json:"signatures,omitempty"`
	Instructions []*ledger.Instruction `protobuf:"bytes,2,rep,name=instructions" json:"instructions,omitempty"`
}

// make sure tx fulfills all interfaces
var _ ledger.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)
var _ batch.Tx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (ledger.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return tx, nil
}

// NewTx returns an unsigned transaction.
func NewTx(ixs ...*ledger.Instruction) *Tx {
	return &Tx{Instructions: ixs}
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

// GetInstruction returns the instruction of a single instruction tx.
// Batches are split by the batch decorator before reaching a program.
func (m *Tx) GetInstruction() (*ledger.Instruction, error) {
	if len(m.Instructions) != 1 {
		return nil, errors.ErrInvalidMsg.Newf("tx holds %d instructions", len(m.Instructions))
	}
	return m.Instructions[0], nil
}

// GetInstructions returns every instruction, in execution order.
func (m *Tx) GetInstructions() ([]*ledger.Instruction, error) {
	return m.Instructions, nil
}

// GetSignatures returns the signatures of the tx.
func (m *Tx) GetSignatures() []*sigs.StdSignature {
	return m.Signatures
}

// GetSignBytes returns the encoding of the tx without its signatures.
func (m *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Instructions: m.Instructions}
	return unsigned.Marshal()
}

// Sign appends the signature of signer for the given sequence.
func (m *Tx) Sign(signer crypto.Signer, chainID string, seq int64) error {
	sig, err := sigs.SignTx(signer, m, chainID, seq)
	if err != nil {
		return err
	}
	m.Signatures = append(m.Signatures, sig)
	return nil
}

type txMsg Tx

func (m *txMsg) Reset()         { *m = txMsg{} }
func (m *txMsg) String() string { return proto.CompactTextString(m) }
func (*txMsg) ProtoMessage()    {}

// Marshal encodes the tx as protobuf.
func (m *Tx) Marshal() ([]byte, error) {
	return codec.Marshal((*txMsg)(m))
}

// Unmarshal decodes a protobuf encoded tx.
func (m *Tx) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*txMsg)(m))
}
