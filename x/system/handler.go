package system

import (
	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/blueshift-gg/ledger/x"
)

const transferCost int64 = 100

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, control Controller) {
	r.Handle(ProgramID, NewHandler(auth, control))
}

// Handler executes the instructions of the system program.
type Handler struct {
	auth    x.Authenticator
	control Controller
}

var _ ledger.Handler = Handler{}

// NewHandler creates the system program handler.
func NewHandler(auth x.Authenticator, control Controller) Handler {
	return Handler{
		auth:    auth,
		control: control,
	}
}

// Check verifies the instruction is well formed and signed.
func (h Handler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: transferCost}, nil
}

// Deliver moves the lamports.
func (h Handler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	from, to, data, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(ctx, db, from, to, data.Lamports, Signers{Auth: h.auth}); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{}, nil
}

func (h Handler) validate(ctx ledger.Context, tx ledger.Tx) (ledger.Address, ledger.Address, TransferData, error) {
	ix, err := tx.GetInstruction()
	if err != nil {
		return nil, nil, TransferData{}, errors.Wrap(err, "load instruction")
	}
	data, err := DecodeTransfer(ix.Data)
	if err != nil {
		return nil, nil, TransferData{}, err
	}
	if len(ix.Accounts) < 2 {
		return nil, nil, TransferData{}, errors.ErrAccountNotEnoughKeys.Newf("transfer takes 2 accounts, got %d", len(ix.Accounts))
	}
	from, to := ix.Accounts[0], ix.Accounts[1]
	if !from.IsSigner || !h.auth.HasAddress(ctx, from.Address) {
		return nil, nil, TransferData{}, errors.Wrapf(errors.ErrAccountNotSigner, "from %s", from.Address)
	}
	if !from.IsWritable || !to.IsWritable {
		return nil, nil, TransferData{}, errors.Wrap(errors.ErrConstraintMut, "transfer accounts must be writable")
	}
	return from.Address, to.Address, data, nil
}
