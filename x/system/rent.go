package system

import (
	"math"

	"github.com/blueshift-gg/ledger/codec"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/blueshift-gg/ledger/gconf"
	"github.com/gogo/protobuf/proto"
)

// ConfigPackage is the name the rent configuration is stored under.
const ConfigPackage = "system"

// AccountStorageOverhead is the number of bytes every account is charged
// for on top of its data.
const AccountStorageOverhead = 128

// Rent describes how many lamports an account must hold to be exempt from
// rent.
type Rent struct {
	LamportsPerByteYear uint64  `protobuf:"varint,1,opt,name=lamports_per_byte_year,proto3" json:"lamports_per_byte_year"`
	ExemptionThreshold  float64 `protobuf:"fixed64,2,opt,name=exemption_threshold,proto3" json:"exemption_threshold"`
}

func (m *Rent) Reset()         { *m = Rent{} }
func (m *Rent) String() string { return proto.CompactTextString(m) }
func (*Rent) ProtoMessage()    {}

type rentMsg Rent

func (m *rentMsg) Reset()         { *m = rentMsg{} }
func (m *rentMsg) String() string { return proto.CompactTextString(m) }
func (*rentMsg) ProtoMessage()    {}

func (m *Rent) Marshal() ([]byte, error) {
	return codec.Marshal((*rentMsg)(m))
}

func (m *Rent) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*rentMsg)(m))
}

// MaxLamportsPerByteYear bounds the configured rate.
const MaxLamportsPerByteYear = 1 << 32

func (m *Rent) Validate() error {
	if m.LamportsPerByteYear > MaxLamportsPerByteYear {
		return errors.ErrInvalidState.Newf("lamports per byte year above %d", uint64(MaxLamportsPerByteYear))
	}
	switch t := m.ExemptionThreshold; {
	case math.IsNaN(t), math.IsInf(t, 0):
		return errors.ErrInvalidState.New("exemption threshold is not a number")
	case t < 0:
		return errors.ErrInvalidState.New("negative exemption threshold")
	}
	return nil
}

// DefaultRent is used when genesis does not configure rent.
func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear: 3480,
		ExemptionThreshold:  2.0,
	}
}

// MinimumBalance returns the lowest balance an account holding dataLen
// bytes of data can keep. The result saturates at math.MaxUint64.
func (m Rent) MinimumBalance(dataLen uint64) uint64 {
	if dataLen > math.MaxUint64-AccountStorageOverhead {
		return math.MaxUint64
	}
	bytes := AccountStorageOverhead + dataLen
	if m.LamportsPerByteYear != 0 && bytes > math.MaxUint64/m.LamportsPerByteYear {
		return math.MaxUint64
	}
	v := float64(bytes*m.LamportsPerByteYear) * m.ExemptionThreshold
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(v)
}

// IsExempt returns true if the balance is allowed to stay in an account.
// Empty accounts are always fine, as they are removed.
func (m Rent) IsExempt(balance, dataLen uint64) bool {
	return balance == 0 || balance >= m.MinimumBalance(dataLen)
}

// loadRent reads the rent configuration. The default is used when none
// was stored.
func loadRent(db gconf.ReadStore) (Rent, error) {
	var r Rent
	switch err := gconf.Load(db, ConfigPackage, &r); {
	case err == nil:
		return r, nil
	case errors.ErrNotFound.Is(err):
		return DefaultRent(), nil
	default:
		return Rent{}, errors.Wrap(err, "load rent")
	}
}
