package vault

import (
	"fmt"

	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/blueshift-gg/ledger/x"
	"github.com/blueshift-gg/ledger/x/system"
)

const (
	initializeCost int64 = 10
	depositCost    int64 = 200
	withdrawCost   int64 = 200
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, control system.Controller) {
	r.Handle(ProgramID, NewHandler(auth, control))
}

// RegisterQuery will register the vault lookup as "/vaults"
func RegisterQuery(qr ledger.QueryRouter) {
	qr.Register("/vaults", NewQueryHandler())
}

// Handler executes the vault program.
type Handler struct {
	auth    x.Authenticator
	control system.Controller
}

var _ ledger.Handler = Handler{}

// NewHandler creates the vault program handler. Lamports are moved through
// the given controller.
func NewHandler(auth x.Authenticator, control system.Controller) Handler {
	return Handler{
		auth:    auth,
		control: control,
	}
}

// Check decodes the instruction and validates its accounts.
func (h Handler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	ix, op, err := load(tx)
	if err != nil {
		return nil, err
	}
	switch op.(type) {
	case Initialize:
		return &ledger.CheckResult{GasAllocated: initializeCost}, nil
	case Deposit:
		if _, err := loadAccounts(ctx, db, ix, h.auth, h.control); err != nil {
			return nil, err
		}
		return &ledger.CheckResult{GasAllocated: depositCost}, nil
	default:
		if _, err := loadAccounts(ctx, db, ix, h.auth, h.control); err != nil {
			return nil, err
		}
		return &ledger.CheckResult{GasAllocated: withdrawCost}, nil
	}
}

// Deliver executes the instruction.
func (h Handler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	ix, op, err := load(tx)
	if err != nil {
		return nil, err
	}
	if _, ok := op.(Initialize); ok {
		return h.initialize(ctx)
	}

	accts, err := loadAccounts(ctx, db, ix, h.auth, h.control)
	if err != nil {
		return nil, err
	}
	switch op := op.(type) {
	case Deposit:
		return h.deposit(ctx, db, accts, op.Amount)
	default:
		return h.withdraw(ctx, db, accts)
	}
}

func load(tx ledger.Tx) (*ledger.Instruction, Instruction, error) {
	ix, err := tx.GetInstruction()
	if err != nil {
		return nil, nil, errors.Wrap(err, "load instruction")
	}
	if !ix.Program.Equals(ProgramID) {
		return nil, nil, errors.Wrapf(errors.ErrInvalidProgramID, "instruction for %s", ix.Program)
	}
	op, err := Decode(ix.Data)
	if err != nil {
		return nil, nil, err
	}
	return ix, op, nil
}

func (h Handler) initialize(ctx ledger.Context) (*ledger.DeliverResult, error) {
	msg := fmt.Sprintf("Greetings from: %s", ProgramID)
	ledger.GetLogger(ctx).Info(msg)
	return &ledger.DeliverResult{Log: msg}, nil
}

func (h Handler) deposit(ctx ledger.Context, db ledger.KVStore, accts *vaultAccounts, amount uint64) (*ledger.DeliverResult, error) {
	balance, err := h.control.Balance(db, accts.vault)
	if err != nil {
		return nil, errors.Wrap(err, "vault balance")
	}
	if balance != 0 {
		return nil, errors.Wrapf(ErrVaultAlreadyExists, "vault %s holds %d", accts.vault, balance)
	}
	min, err := h.control.MinimumBalance(db, 0)
	if err != nil {
		return nil, err
	}
	if amount <= min {
		return nil, errors.Wrapf(ErrInvalidAmount, "deposit %d, must be above %d", amount, min)
	}

	auth := system.Signers{Auth: h.auth}
	if err := h.control.Transfer(ctx, db, accts.signer, accts.vault, amount, auth); err != nil {
		return nil, errors.Wrap(err, "transfer to vault")
	}
	return &ledger.DeliverResult{
		Data: accts.vault,
		Log:  fmt.Sprintf("deposited %d into %s", amount, accts.vault),
	}, nil
}

func (h Handler) withdraw(ctx ledger.Context, db ledger.KVStore, accts *vaultAccounts) (*ledger.DeliverResult, error) {
	balance, err := h.control.Balance(db, accts.vault)
	if err != nil {
		return nil, errors.Wrap(err, "vault balance")
	}
	if balance == 0 {
		return nil, errors.Wrapf(ErrInvalidAmount, "vault %s is empty", accts.vault)
	}

	auth := system.ProgramSigner{
		Program: ProgramID,
		Seeds:   signerSeeds(accts.signer, accts.bump),
	}
	if err := h.control.Transfer(ctx, db, accts.vault, accts.signer, balance, auth); err != nil {
		return nil, errors.Wrap(err, "transfer from vault")
	}
	return &ledger.DeliverResult{
		Data: accts.vault,
		Log:  fmt.Sprintf("withdrew %d from %s", balance, accts.vault),
	}, nil
}
