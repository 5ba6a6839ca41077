package batch

import (
	"strings"

	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/tendermint/go-amino"
	"github.com/tendermint/tendermint/libs/common"
)

// MaxInstructions is the largest number of instructions a single
// transaction may carry.
const MaxInstructions = 10

// Tx is a transaction that can carry more than one instruction.
type Tx interface {
	ledger.Tx
	GetInstructions() ([]*ledger.Instruction, error)
}

// Decorator iterates through the instructions of a batch transaction and
// passes them down the stack one by one.
type Decorator struct{}

var _ ledger.Decorator = Decorator{}

// NewDecorator returns a batch transaction decorator
func NewDecorator() Decorator {
	return Decorator{}
}

// instructionTx exposes a single instruction of the batch. Everything else
// is served by the wrapped transaction.
type instructionTx struct {
	ledger.Tx
	ix *ledger.Instruction
}

func (tx *instructionTx) GetInstruction() (*ledger.Instruction, error) {
	return tx.ix, nil
}

func instructions(tx ledger.Tx) ([]*ledger.Instruction, bool, error) {
	btx, ok := tx.(Tx)
	if !ok {
		return nil, false, nil
	}
	ixs, err := btx.GetInstructions()
	if err != nil {
		return nil, true, err
	}
	switch n := len(ixs); {
	case n == 0:
		return nil, true, errors.Wrap(errors.ErrEmpty, "instructions")
	case n > MaxInstructions:
		return nil, true, errors.ErrInvalidMsg.Newf("transaction holds %d instructions, max is %d", n, MaxInstructions)
	}
	for i, ix := range ixs {
		if err := ix.Validate(); err != nil {
			return nil, true, errors.Wrapf(err, "instruction %d", i)
		}
	}
	return ixs, true, nil
}

// Check passes every instruction of a batch transaction down the stack.
// Any other transaction is passed as is.
func (d Decorator) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	ixs, ok, err := instructions(tx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return next.Check(ctx, store, tx)
	}

	checks := make([]*ledger.CheckResult, len(ixs))
	for i, ix := range ixs {
		checks[i], err = next.Check(ctx, store, &instructionTx{Tx: tx, ix: ix})
		if err != nil {
			return nil, errors.Wrapf(err, "instruction %d", i)
		}
	}
	return combineChecks(checks), nil
}

// combines all data bytes as a go-amino array.
// joins all log messages with \n
func combineChecks(checks []*ledger.CheckResult) *ledger.CheckResult {
	datas := make([][]byte, len(checks))
	logs := make([]string, len(checks))
	var allocated, payments int64
	for i, r := range checks {
		datas[i] = r.Data
		logs[i] = r.Log
		allocated += r.GasAllocated
		payments += r.GasPayment
	}
	return &ledger.CheckResult{
		Data:         amino.MustMarshalBinaryBare(datas),
		Log:          strings.Join(logs, "\n"),
		GasAllocated: allocated,
		GasPayment:   payments,
	}
}

// Deliver passes every instruction of a batch transaction down the stack.
// Any other transaction is passed as is.
func (d Decorator) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	ixs, ok, err := instructions(tx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return next.Deliver(ctx, store, tx)
	}

	delivers := make([]*ledger.DeliverResult, len(ixs))
	for i, ix := range ixs {
		delivers[i], err = next.Deliver(ctx, store, &instructionTx{Tx: tx, ix: ix})
		if err != nil {
			return nil, errors.Wrapf(err, "instruction %d", i)
		}
	}
	return combineDelivers(delivers), nil
}

// combines all data bytes as a go-amino array.
// joins all log messages with \n
func combineDelivers(delivers []*ledger.DeliverResult) *ledger.DeliverResult {
	datas := make([][]byte, len(delivers))
	logs := make([]string, len(delivers))
	var gas int64
	var tags []common.KVPair
	for i, r := range delivers {
		datas[i] = r.Data
		logs[i] = r.Log
		gas += r.GasUsed
		tags = append(tags, r.Tags...)
	}
	return &ledger.DeliverResult{
		Data:    amino.MustMarshalBinaryBare(datas),
		Log:     strings.Join(logs, "\n"),
		GasUsed: gas,
		Tags:    tags,
	}
}

// SplitData decodes the combined data of a batch result into the data
// returned by every instruction.
func SplitData(data []byte) ([][]byte, error) {
	var datas [][]byte
	if err := amino.UnmarshalBinaryBare(data, &datas); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return datas, nil
}
