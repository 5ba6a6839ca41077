package sigs

import (
	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/codec"
	"github.com/blueshift-gg/ledger/crypto"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/blueshift-gg/ledger/orm"
	"github.com/gogo/protobuf/proto"
)

// BucketName is where we store the signers
const BucketName = "sigs"

// UserData is the replay protection state of a signer.
type UserData struct {
	Pubkey   *crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return proto.CompactTextString(m) }
func (*UserData) ProtoMessage()    {}

type userDataMsg UserData

func (m *userDataMsg) Reset()         { *m = userDataMsg{} }
func (m *userDataMsg) String() string { return proto.CompactTextString(m) }
func (*userDataMsg) ProtoMessage()    {}

func (m *UserData) Marshal() ([]byte, error) {
	return codec.Marshal((*userDataMsg)(m))
}

func (m *UserData) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*userDataMsg)(m))
}

// Validate checks the sequence is sane and owned by a key.
func (m *UserData) Validate() error {
	if m.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if m.Pubkey == nil {
		return errors.Wrap(errors.ErrEmpty, "public key")
	}
	return m.Pubkey.Validate()
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
// Before incrementing the sequence, this function is testing for a value
// overflow.
func (m *UserData) CheckAndIncrementSequence(expected int64) error {
	if m.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", m.Sequence, expected)
	}

	next := m.Sequence + 1

	// Greatest value a javascript client can represent exactly.
	const maxSequenceValue = (1 << 53) - 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	m.Sequence = next
	return nil
}

// Bucket stores UserData by signer address.
type Bucket struct {
	orm.Bucket
}

// NewBucket creates the proper bucket for this extension
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, func() orm.Model { return &UserData{} }),
	}
}

// GetOrCreate loads the state of the signer, or initializes a fresh one
// with sequence zero.
func (b Bucket) GetOrCreate(db ledger.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	var user UserData
	switch err := b.One(db, pubkey.Address(), &user); {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{Pubkey: pubkey}, nil
	default:
		return nil, err
	}
}

// Save stores the user under its public key address.
func (b Bucket) Save(db ledger.KVStore, user *UserData) error {
	return b.Put(db, user.Pubkey.Address(), user)
}

// RegisterQuery will register this bucket as "/sigs"
func RegisterQuery(qr ledger.QueryRouter) {
	NewBucket().Register("sigs", qr)
}
