package batch_test

import (
	"context"
	"testing"

	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/blueshift-gg/ledger/ledgertest"
	"github.com/blueshift-gg/ledger/store"
	"github.com/blueshift-gg/ledger/x/batch"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tendermint/tendermint/libs/common"
)

type batchTx struct {
	ledgertest.Tx
	ixs []*ledger.Instruction
	err error
}

func (tx *batchTx) GetInstructions() ([]*ledger.Instruction, error) {
	return tx.ixs, tx.err
}

// recorder writes one key per instruction and fails on the configured
// program.
type recorder struct {
	seen    []ledger.Address
	failing ledger.Address
}

func (r *recorder) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	ix, err := r.record(tx)
	if err != nil {
		return nil, err
	}
	return &ledger.CheckResult{Data: ix.Data, Log: "check", GasAllocated: 10}, nil
}

func (r *recorder) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	ix, err := r.record(tx)
	if err != nil {
		return nil, err
	}
	if err := db.Set(ix.Program, ix.Data); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{
		Data:    ix.Data,
		Log:     "deliver",
		GasUsed: 3,
		Tags:    []common.KVPair{{Key: []byte("program"), Value: ix.Program}},
	}, nil
}

func (r *recorder) record(tx ledger.Tx) (*ledger.Instruction, error) {
	ix, err := tx.GetInstruction()
	if err != nil {
		return nil, err
	}
	r.seen = append(r.seen, ix.Program)
	if r.failing != nil && r.failing.Equals(ix.Program) {
		return nil, errors.ErrHuman.New("failing program")
	}
	return ix, nil
}

func TestDecorator(t *testing.T) {
	Convey("Given a batch decorator", t, func() {
		ctx := context.Background()
		db := store.MemStore()
		decorator := batch.NewDecorator()
		h := &recorder{}

		a, b := ledgertest.RandomAddr(t), ledgertest.RandomAddr(t)
		tx := &batchTx{ixs: []*ledger.Instruction{
			{Program: a, Data: []byte("first")},
			{Program: b, Data: []byte("second")},
		}}

		Convey("Every instruction is checked in order", func() {
			res, err := decorator.Check(ctx, db, tx, h)
			So(err, ShouldBeNil)
			So(h.seen, ShouldResemble, []ledger.Address{a, b})
			So(res.Log, ShouldEqual, "check\ncheck")
			So(res.GasAllocated, ShouldEqual, int64(20))

			datas, err := batch.SplitData(res.Data)
			So(err, ShouldBeNil)
			So(datas, ShouldResemble, [][]byte{[]byte("first"), []byte("second")})
		})

		Convey("Every instruction is delivered in order", func() {
			res, err := decorator.Deliver(ctx, db, tx, h)
			So(err, ShouldBeNil)
			So(h.seen, ShouldResemble, []ledger.Address{a, b})
			So(res.Log, ShouldEqual, "deliver\ndeliver")
			So(res.GasUsed, ShouldEqual, int64(6))
			So(res.Tags, ShouldHaveLength, 2)

			v, err := db.Get(b)
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []byte("second"))
		})

		Convey("The first failure stops the batch", func() {
			h.failing = a
			_, err := decorator.Deliver(ctx, db, tx, h)
			So(errors.ErrHuman.Is(err), ShouldBeTrue)
			So(h.seen, ShouldResemble, []ledger.Address{a})
			has, err := db.Has(b)
			So(err, ShouldBeNil)
			So(has, ShouldBeFalse)
		})

		Convey("An empty batch is rejected", func() {
			tx.ixs = nil
			_, err := decorator.Check(ctx, db, tx, h)
			So(errors.ErrEmpty.Is(err), ShouldBeTrue)
			So(h.seen, ShouldBeEmpty)
		})

		Convey("A batch that is too big is rejected", func() {
			tx.ixs = make([]*ledger.Instruction, batch.MaxInstructions+1)
			for i := range tx.ixs {
				tx.ixs[i] = &ledger.Instruction{Program: a}
			}
			_, err := decorator.Deliver(ctx, db, tx, h)
			So(errors.ErrInvalidMsg.Is(err), ShouldBeTrue)
			So(h.seen, ShouldBeEmpty)
		})

		Convey("Malformed instructions are rejected before any runs", func() {
			tx.ixs = append(tx.ixs, &ledger.Instruction{Program: []byte{1, 2}})
			_, err := decorator.Deliver(ctx, db, tx, h)
			So(err, ShouldNotBeNil)
			So(h.seen, ShouldBeEmpty)
		})

		Convey("Decoding errors are returned", func() {
			tx.err = errors.ErrInvalidInput
			_, err := decorator.Check(ctx, db, tx, h)
			So(errors.ErrInvalidInput.Is(err), ShouldBeTrue)
		})

		Convey("Other transactions pass through", func() {
			single := &ledgertest.Tx{Ix: &ledger.Instruction{Program: b, Data: []byte("x")}}
			res, err := decorator.Deliver(ctx, db, single, h)
			So(err, ShouldBeNil)
			So(res.Data, ShouldResemble, []byte("x"))
			So(h.seen, ShouldResemble, []ledger.Address{b})
		})
	})
}
