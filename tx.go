package ledger

import (
	"github.com/blueshift-gg/ledger/codec"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/gogo/protobuf/proto"
)

// Marshaller is anything that can be represented in binary
//
// Marshall may validate the data before serializing it and
// unless you previously validated the struct,
// errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal
//
// This is separated from Marshal, as this almost always requires
// a pointer, and functions that only need to marshal bytes can
// use the Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx represent the data sent from the user to the chain.
// It includes the instructions to execute, along with information needed
// to authenticate the sender (cryptographic signatures).
//
// Each Application must define their own tx type, which
// embeds all the middlewares that we wish to use.
type Tx interface {
	Persistent

	// GetInstruction returns the single instruction this tx executes.
	// Transactions with several instructions are split by the batch
	// decorator before they reach a program.
	GetInstruction() (*Instruction, error)
}

// TxDecoder can parse bytes into a Tx
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the program id of the instruction, or (missing) if there
// is no single instruction.
func GetPath(tx Tx) string {
	ix, err := tx.GetInstruction()
	if err == nil && ix != nil {
		return ix.Program.String()
	}
	return "(missing)"
}

// Instruction is a call to a single program.
type Instruction struct {
	Program  Address        `protobuf:"bytes,1,opt,name=program,proto3" json:"program,omitempty"`
	Accounts []*AccountMeta `protobuf:"bytes,2,rep,name=accounts,proto3" json:"accounts,omitempty"`
	Data     []byte         `protobuf:"bytes,3,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *Instruction) Reset()         { *m = Instruction{} }
func (m *Instruction) String() string { return proto.CompactTextString(m) }
func (*Instruction) ProtoMessage()    {}

// Validate checks that the instruction is well formed. Program specific
// checks are done by the program itself.
func (m *Instruction) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrEmpty, "instruction")
	}
	if err := m.Program.Validate(); err != nil {
		return errors.Wrap(err, "program")
	}
	for i, a := range m.Accounts {
		if a == nil {
			return errors.ErrEmpty.Newf("account %d", i)
		}
		if err := a.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}

// Account returns the i-th account of the instruction.
func (m *Instruction) Account(i int) (*AccountMeta, error) {
	if i < 0 || i >= len(m.Accounts) {
		return nil, errors.ErrAccountNotEnoughKeys.Newf("want account %d, got %d accounts", i, len(m.Accounts))
	}
	return m.Accounts[i], nil
}

type instructionMsg Instruction

func (m *instructionMsg) Reset()         { *m = instructionMsg{} }
func (m *instructionMsg) String() string { return proto.CompactTextString(m) }
func (*instructionMsg) ProtoMessage()    {}

// Marshal encodes the instruction as protobuf. Nil account entries are
// rejected, as they have no encoding.
func (m *Instruction) Marshal() ([]byte, error) {
	for i, a := range m.Accounts {
		if a == nil {
			return nil, errors.ErrEmpty.Newf("account %d", i)
		}
	}
	return codec.Marshal((*instructionMsg)(m))
}

// Unmarshal decodes a protobuf encoded instruction.
func (m *Instruction) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*instructionMsg)(m))
}

// AccountMeta describes how an instruction uses an account.
type AccountMeta struct {
	Address    Address `protobuf:"bytes,1,opt,name=address,proto3" json:"address,omitempty"`
	IsSigner   bool    `protobuf:"varint,2,opt,name=is_signer,json=isSigner,proto3" json:"is_signer,omitempty"`
	IsWritable bool    `protobuf:"varint,3,opt,name=is_writable,json=isWritable,proto3" json:"is_writable,omitempty"`
}

func (m *AccountMeta) Reset()         { *m = AccountMeta{} }
func (m *AccountMeta) String() string { return proto.CompactTextString(m) }
func (*AccountMeta) ProtoMessage()    {}

// NewAccountMeta is a helper to describe an account in an instruction.
func NewAccountMeta(addr Address, signer, writable bool) *AccountMeta {
	return &AccountMeta{Address: addr, IsSigner: signer, IsWritable: writable}
}

type accountMetaMsg AccountMeta

func (m *accountMetaMsg) Reset()         { *m = accountMetaMsg{} }
func (m *accountMetaMsg) String() string { return proto.CompactTextString(m) }
func (*accountMetaMsg) ProtoMessage()    {}

func (m *AccountMeta) Marshal() ([]byte, error) {
	return codec.Marshal((*accountMetaMsg)(m))
}

func (m *AccountMeta) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*accountMetaMsg)(m))
}
