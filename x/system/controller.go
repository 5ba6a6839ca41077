package system

import (
	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/errors"
)

// Controller is the only way other programs touch native balances.
type Controller interface {
	Transfer(ctx ledger.Context, db ledger.KVStore, from, to ledger.Address, amount uint64, auth Authorizer) error
	Balance(db ledger.ReadOnlyKVStore, addr ledger.Address) (uint64, error)
	Account(db ledger.ReadOnlyKVStore, addr ledger.Address) (*Account, error)
	MinimumBalance(db ledger.ReadOnlyKVStore, dataLen uint64) (uint64, error)
}

// BaseController is the default Controller implementation.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller over the account bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

// Transfer moves amount lamports from one account to the other. The source
// must be owned by the system program and auth must allow the debit. Both
// accounts must end up either empty or rent exempt.
func (c BaseController) Transfer(ctx ledger.Context, db ledger.KVStore, from, to ledger.Address, amount uint64, auth Authorizer) error {
	if amount == 0 {
		return nil
	}
	if err := from.Validate(); err != nil {
		return errors.Wrap(err, "from")
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "to")
	}
	if err := auth.CanDebit(ctx, from); err != nil {
		return err
	}

	sender, err := c.bucket.GetOrEmpty(db, from)
	if err != nil {
		return err
	}
	if !sender.IsSystemOwned() {
		return errors.Wrapf(errors.ErrAccountNotSystemOwned, "from %s", from)
	}
	if sender.Lamports < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, need %d", sender.Lamports, amount)
	}
	if from.Equals(to) {
		return nil
	}

	recipient, err := c.bucket.GetOrEmpty(db, to)
	if err != nil {
		return err
	}
	if recipient.Lamports+amount < recipient.Lamports {
		return errors.Wrapf(errors.ErrOverflow, "to %s", to)
	}
	sender.Lamports -= amount
	recipient.Lamports += amount

	rent, err := loadRent(db)
	if err != nil {
		return err
	}
	if !rent.IsExempt(sender.Lamports, 0) {
		return errors.Wrapf(ErrInsufficientFundsForRent, "from %s would keep %d", from, sender.Lamports)
	}
	if !rent.IsExempt(recipient.Lamports, 0) {
		return errors.Wrapf(ErrInsufficientFundsForRent, "to %s would hold %d", to, recipient.Lamports)
	}

	if err := c.bucket.Save(db, from, sender); err != nil {
		return errors.Wrap(err, "save from")
	}
	return errors.Wrap(c.bucket.Save(db, to, recipient), "save to")
}

// Balance returns the lamports held by the address.
func (c BaseController) Balance(db ledger.ReadOnlyKVStore, addr ledger.Address) (uint64, error) {
	acct, err := c.bucket.GetOrEmpty(db, addr)
	if err != nil {
		return 0, err
	}
	return acct.Lamports, nil
}

// Account returns the account of the address. It is never nil.
func (c BaseController) Account(db ledger.ReadOnlyKVStore, addr ledger.Address) (*Account, error) {
	return c.bucket.GetOrEmpty(db, addr)
}

// MinimumBalance returns the rent exempt minimum for an account with
// dataLen bytes of data.
func (c BaseController) MinimumBalance(db ledger.ReadOnlyKVStore, dataLen uint64) (uint64, error) {
	rent, err := loadRent(db)
	if err != nil {
		return 0, err
	}
	return rent.MinimumBalance(dataLen), nil
}
