package crypto

import (
	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/codec"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/gogo/protobuf/proto"
)

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Address() ledger.Address
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey is an ed25519 public key. The key itself is the address of the
// account it controls.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *PublicKey) Reset()         { *m = PublicKey{} }
func (m *PublicKey) String() string { return proto.CompactTextString(m) }
func (*PublicKey) ProtoMessage()    {}

func (m *PublicKey) GetEd25519() []byte {
	if m != nil {
		return m.Ed25519
	}
	return nil
}

type publicKeyMsg PublicKey

func (m *publicKeyMsg) Reset()         { *m = publicKeyMsg{} }
func (m *publicKeyMsg) String() string { return proto.CompactTextString(m) }
func (*publicKeyMsg) ProtoMessage()    {}

func (m *PublicKey) Marshal() ([]byte, error) {
	return codec.Marshal((*publicKeyMsg)(m))
}

func (m *PublicKey) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*publicKeyMsg)(m))
}

// Validate makes sure the key has the right length.
func (m *PublicKey) Validate() error {
	if m == nil || len(m.Ed25519) == 0 {
		return errors.Wrap(errors.ErrEmpty, "public key")
	}
	if len(m.Ed25519) != ledger.AddressLength {
		return errors.ErrInvalidInput.Newf("public key length %d", len(m.Ed25519))
	}
	return nil
}

// PrivateKey is an ed25519 private key in the 64 byte seed|public form.
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *PrivateKey) Reset()         { *m = PrivateKey{} }
func (m *PrivateKey) String() string { return proto.CompactTextString(m) }
func (*PrivateKey) ProtoMessage()    {}

func (m *PrivateKey) GetEd25519() []byte {
	if m != nil {
		return m.Ed25519
	}
	return nil
}

type privateKeyMsg PrivateKey

func (m *privateKeyMsg) Reset()         { *m = privateKeyMsg{} }
func (m *privateKeyMsg) String() string { return proto.CompactTextString(m) }
func (*privateKeyMsg) ProtoMessage()    {}

func (m *PrivateKey) Marshal() ([]byte, error) {
	return codec.Marshal((*privateKeyMsg)(m))
}

func (m *PrivateKey) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*privateKeyMsg)(m))
}

// Signature is an ed25519 signature.
type Signature struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

func (m *Signature) Reset()         { *m = Signature{} }
func (m *Signature) String() string { return proto.CompactTextString(m) }
func (*Signature) ProtoMessage()    {}

func (m *Signature) GetEd25519() []byte {
	if m != nil {
		return m.Ed25519
	}
	return nil
}

type signatureMsg Signature

func (m *signatureMsg) Reset()         { *m = signatureMsg{} }
func (m *signatureMsg) String() string { return proto.CompactTextString(m) }
func (*signatureMsg) ProtoMessage()    {}

func (m *Signature) Marshal() ([]byte, error) {
	return codec.Marshal((*signatureMsg)(m))
}

func (m *Signature) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*signatureMsg)(m))
}
