package system

import (
	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/blueshift-gg/ledger/x"
)

// Authorizer proves the right to move lamports out of an account.
type Authorizer interface {
	CanDebit(ctx ledger.Context, from ledger.Address) error
}

// Signers authorizes debits from any account that signed the transaction.
type Signers struct {
	Auth x.Authenticator
}

var _ Authorizer = Signers{}

func (s Signers) CanDebit(ctx ledger.Context, from ledger.Address) error {
	if !s.Auth.HasAddress(ctx, from) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s did not sign", from)
	}
	return nil
}

// ProgramSigner authorizes debits from a program derived address. Only the
// program the address was derived for can present the seeds, and it must be
// the program executing the current instruction.
type ProgramSigner struct {
	Program ledger.Address
	Seeds   [][]byte
}

var _ Authorizer = ProgramSigner{}

func (p ProgramSigner) CanDebit(ctx ledger.Context, from ledger.Address) error {
	running, ok := ledger.GetProgramID(ctx)
	if !ok || !running.Equals(p.Program) {
		return errors.Wrapf(errors.ErrUnauthorized, "program %s is not executing", p.Program)
	}
	addr, err := ledger.CreateProgramAddress(p.Seeds, p.Program)
	if err != nil {
		return errors.Wrap(errors.ErrUnauthorized, err.Error())
	}
	if !addr.Equals(from) {
		return errors.Wrapf(errors.ErrUnauthorized, "seeds derive %s, not %s", addr, from)
	}
	return nil
}
