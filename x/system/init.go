package system

import (
	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/blueshift-gg/ledger/gconf"
)

const optKey = "accounts"

// GenesisAccount is used to parse the json from genesis file.
// Owner defaults to the system program.
type GenesisAccount struct {
	Address  ledger.Address `json:"address"`
	Lamports uint64         `json:"lamports"`
	Owner    ledger.Address `json:"owner,omitempty"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ ledger.Initializer = Initializer{}

// FromGenesis stores the rent configuration and the initial balances.
// Rent falls back to DefaultRent when conf.system is missing.
func (Initializer) FromGenesis(opts ledger.Options, kv ledger.KVStore) error {
	var rent Rent
	switch err := gconf.InitConfig(kv, opts, ConfigPackage, &rent); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		rent = DefaultRent()
		if err := gconf.Save(kv, ConfigPackage, &rent); err != nil {
			return errors.Wrap(err, "save default rent")
		}
	default:
		return err
	}

	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(err, "read accounts")
	}
	bucket := NewBucket()
	for i, a := range accts {
		if err := a.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		owner := a.Owner
		if owner == nil {
			owner = ProgramID
		}
		if !rent.IsExempt(a.Lamports, 0) {
			return errors.Wrapf(ErrInsufficientFundsForRent, "account %s", a.Address)
		}
		if has, err := bucket.Has(kv, a.Address); err != nil {
			return err
		} else if has {
			return errors.Wrapf(errors.ErrDuplicate, "account %s", a.Address)
		}
		acct := &Account{Lamports: a.Lamports, Owner: owner}
		if err := bucket.Save(kv, a.Address, acct); err != nil {
			return errors.Wrapf(err, "account %s", a.Address)
		}
	}
	return nil
}
