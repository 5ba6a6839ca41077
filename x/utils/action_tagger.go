package utils

import (
	"github.com/blueshift-gg/ledger"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionTagger will inspect the instruction being executed and
// add a tag `program = <program id>`. This gives clients a standard way
// to search and subscribe to calls of a program.
//
// Place it after the batch decorator, so that every instruction of a
// transaction is tagged.
type ActionTagger struct{}

var _ ledger.Decorator = ActionTagger{}

// ProgramKey is used by ActionTagger as the Key in the Tag it appends
const ProgramKey = "program"

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along
func (ActionTagger) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver appends a tag on the result if there is a success.
func (ActionTagger) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	// if we error in reporting, let's do so early before dispatching
	ix, err := tx.GetInstruction()
	if err != nil {
		return nil, err
	}

	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	tag := common.KVPair{
		Key:   []byte(ProgramKey),
		Value: []byte(ix.Program.String()),
	}
	res.Tags = append(res.Tags, tag)
	return res, nil
}
