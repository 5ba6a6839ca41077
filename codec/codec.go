/*
Package codec holds the protobuf helpers used by every persisted model,
instruction and transaction.

Models are plain Go structs annotated with gogo/protobuf tags. A model keeps
the Marshal and Unmarshal methods the rest of the code relies on, and
implements them by converting itself to a local type with the same fields
but without those methods:

	type accountMsg Account

	func (m *accountMsg) Reset()         { *m = accountMsg{} }
	func (m *accountMsg) String() string { return proto.CompactTextString(m) }
	func (*accountMsg) ProtoMessage()    {}

	func (m *Account) Marshal() ([]byte, error) {
		return codec.Marshal((*accountMsg)(m))
	}

	func (m *Account) Unmarshal(raw []byte) error {
		return codec.Unmarshal(raw, (*accountMsg)(m))
	}

The conversion is required because proto.Marshal hands any message that
has its own Marshal method back to that method.
*/
package codec

import (
	"github.com/blueshift-gg/ledger/errors"
	"github.com/gogo/protobuf/proto"
)

// Marshal encodes msg from its struct tags. An empty message encodes to an
// empty, non nil slice.
func Marshal(msg proto.Message) ([]byte, error) {
	raw, err := proto.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	if raw == nil {
		raw = []byte{}
	}
	return raw, nil
}

// Unmarshal resets msg and decodes raw into it. Unknown fields are skipped.
func Unmarshal(raw []byte, msg proto.Message) error {
	if err := proto.Unmarshal(raw, msg); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return nil
}
