package system

import (
	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/codec"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/blueshift-gg/ledger/orm"
	"github.com/gogo/protobuf/proto"
)

// BucketName is where we store the accounts
const BucketName = "acct"

// ProgramID is the address of the system program. It owns every account
// that was not assigned to another program.
var ProgramID = ledger.NewAddress(make([]byte, ledger.AddressLength))

// Account is the native state of an address.
type Account struct {
	Lamports uint64         `protobuf:"varint,1,opt,name=lamports,proto3" json:"lamports,omitempty"`
	Owner    ledger.Address `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
}

func (m *Account) Reset()         { *m = Account{} }
func (m *Account) String() string { return proto.CompactTextString(m) }
func (*Account) ProtoMessage()    {}

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

// Validate rejects empty accounts, they must be deleted instead.
func (m *Account) Validate() error {
	if m.Lamports == 0 {
		return errors.Wrap(errors.ErrEmpty, "lamports")
	}
	return errors.Wrap(m.Owner.Validate(), "owner")
}

// IsSystemOwned returns true if the account is owned by the system program.
func (m *Account) IsSystemOwned() bool {
	return m.Owner.Equals(ProgramID)
}

// Bucket stores accounts by address.
type Bucket struct {
	orm.Bucket
}

// NewBucket creates the proper bucket for this extension
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, func() orm.Model { return &Account{} }),
	}
}

// GetOrEmpty loads the account stored under the address. Missing accounts
// are returned with a zero balance, owned by the system program.
func (b Bucket) GetOrEmpty(db ledger.ReadOnlyKVStore, addr ledger.Address) (*Account, error) {
	var acct Account
	switch err := b.One(db, addr, &acct); {
	case err == nil:
		return &acct, nil
	case errors.ErrNotFound.Is(err):
		return &Account{Owner: ProgramID}, nil
	default:
		return nil, err
	}
}

// Save stores the account, or removes it when its balance is zero.
func (b Bucket) Save(db ledger.KVStore, addr ledger.Address, acct *Account) error {
	if acct.Lamports == 0 {
		return b.Delete(db, addr)
	}
	return b.Put(db, addr, acct)
}

// RegisterQuery will register this bucket as "/accounts"
func RegisterQuery(qr ledger.QueryRouter) {
	NewBucket().Register("accounts", qr)
}
