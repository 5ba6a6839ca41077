package vault

import (
	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/blueshift-gg/ledger/x/system"
)

// QueryHandler looks up the vault of a signer. The query data is the signer
// address, the result the account stored under the vault address.
type QueryHandler struct {
	accounts system.Bucket
}

var _ ledger.QueryHandler = QueryHandler{}

// NewQueryHandler returns a handler reading vault accounts.
func NewQueryHandler() QueryHandler {
	return QueryHandler{accounts: system.NewBucket()}
}

func (q QueryHandler) Query(db ledger.ReadOnlyKVStore, data []byte) ([]ledger.Model, error) {
	signer := ledger.Address(data)
	if err := signer.Validate(); err != nil {
		return nil, errors.Wrap(err, "signer")
	}
	vault, _, err := DeriveVault(signer)
	if err != nil {
		return nil, err
	}
	return q.accounts.Query(db, vault)
}
