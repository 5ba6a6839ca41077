package sigs

import (
	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/errors"
)

// stdTx is a minimal signed transaction.
type stdTx struct {
	payload    []byte
	signatures []*StdSignature
}

var _ SignedTx = (*stdTx)(nil)
var _ ledger.Tx = (*stdTx)(nil)

func (tx *stdTx) GetSignatures() []*StdSignature {
	return tx.signatures
}

func (tx *stdTx) GetSignBytes() ([]byte, error) {
	return tx.payload, nil
}

func (tx *stdTx) GetInstruction() (*ledger.Instruction, error) {
	return nil, errors.Wrap(errors.ErrEmpty, "no instruction")
}

func (tx *stdTx) Marshal() ([]byte, error) {
	return tx.payload, nil
}

func (tx *stdTx) Unmarshal(raw []byte) error {
	tx.payload = raw
	return nil
}

// sigCheckHandler stores the seen signers on each call
type sigCheckHandler struct {
	signers []ledger.Address
}

var _ ledger.Handler = (*sigCheckHandler)(nil)

func (s *sigCheckHandler) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	s.signers = Authenticate{}.GetAddresses(ctx)
	return &ledger.CheckResult{}, nil
}

func (s *sigCheckHandler) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	s.signers = Authenticate{}.GetAddresses(ctx)
	return &ledger.DeliverResult{}, nil
}
