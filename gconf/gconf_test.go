package gconf

import (
	"encoding/json"
	"testing"

	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/codec"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/blueshift-gg/ledger/ledgertest/assert"
	"github.com/blueshift-gg/ledger/store"
	"github.com/gogo/protobuf/proto"
)

type myConfig struct {
	Number uint64 `protobuf:"varint,1,opt,name=number,proto3" json:"number"`
	Text   string `protobuf:"bytes,2,opt,name=text,proto3" json:"text"`
}

type myConfigMsg myConfig

func (c *myConfigMsg) Reset()         { *c = myConfigMsg{} }
func (c *myConfigMsg) String() string { return proto.CompactTextString(c) }
func (*myConfigMsg) ProtoMessage()    {}

func (c *myConfig) Marshal() ([]byte, error) {
	return codec.Marshal((*myConfigMsg)(c))
}

func (c *myConfig) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*myConfigMsg)(c))
}

func (c *myConfig) Validate() error {
	if c.Number == 0 {
		return errors.Wrap(errors.ErrEmpty, "number")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var got myConfig
	assert.IsErr(t, errors.ErrNotFound, Load(db, "mine", &got))

	assert.IsErr(t, errors.ErrEmpty, Save(db, "mine", &myConfig{}))

	want := myConfig{Number: 42, Text: "hello"}
	assert.Nil(t, Save(db, "mine", &want))
	assert.Nil(t, Load(db, "mine", &got))
	assert.Equal(t, want, got)

	// other packages are not affected
	assert.IsErr(t, errors.ErrNotFound, Load(db, "other", &got))
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		Genesis string
		Want    myConfig
		WantErr *errors.Error
	}{
		"valid": {
			Genesis: `{"conf": {"mine": {"number": 3, "text": "x"}}}`,
			Want:    myConfig{Number: 3, Text: "x"},
		},
		"missing package": {
			Genesis: `{"conf": {"other": {"number": 3}}}`,
			WantErr: errors.ErrNotFound,
		},
		"no conf section": {
			Genesis: `{}`,
			WantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			Genesis: `{"conf": {"mine": {"text": "x"}}}`,
			WantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts ledger.Options
			if err := json.Unmarshal([]byte(tc.Genesis), &opts); err != nil {
				t.Fatalf("cannot decode genesis: %s", err)
			}
			db := store.MemStore()
			var conf myConfig
			if err := InitConfig(db, opts, "mine", &conf); !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.WantErr != nil {
				return
			}
			var got myConfig
			assert.Nil(t, Load(db, "mine", &got))
			assert.Equal(t, tc.Want, got)
		})
	}
}
