package client

import (
	"context"

	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/app"
	"github.com/blueshift-gg/ledger/errors"
	"github.com/blueshift-gg/ledger/x/sigs"
	"github.com/blueshift-gg/ledger/x/system"
)

// query runs an abci query against the node and decodes the result sets.
func (c *Client) query(path string, data []byte) ([]ledger.Model, error) {
	res := c.Query(RequestQuery{Path: path, Data: data})
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	if len(res.Key) == 0 {
		return nil, nil
	}
	var keys, values app.ResultSet
	if err := keys.Unmarshal(res.Key); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal keys")
	}
	if err := values.Unmarshal(res.Value); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal values")
	}
	return app.JoinResults(&keys, &values)
}

func (c *Client) account(path string, addr ledger.Address) (*system.Account, error) {
	models, err := c.query(path, addr)
	if err != nil {
		return nil, err
	}
	switch len(models) {
	case 0:
		return &system.Account{Owner: system.ProgramID}, nil
	case 1:
		var acct system.Account
		if err := acct.Unmarshal(models[0].Value); err != nil {
			return nil, errors.Wrap(err, "account")
		}
		return &acct, nil
	default:
		return nil, errors.ErrInvalidState.Newf("%d accounts for one address", len(models))
	}
}

// Account returns the ledger account of addr. Accounts without a record
// are returned empty and owned by the system program.
func (c *Client) Account(ctx context.Context, addr ledger.Address) (*system.Account, error) {
	return c.account("/accounts", addr)
}

// Vault returns the vault account of the given signer.
func (c *Client) Vault(ctx context.Context, signer ledger.Address) (*system.Account, error) {
	return c.account("/vaults", signer)
}

// NextSequence returns the sequence the next signature of addr must use.
func (c *Client) NextSequence(ctx context.Context, addr ledger.Address) (int64, error) {
	models, err := c.query("/sigs", addr)
	if err != nil {
		return 0, err
	}
	if len(models) == 0 {
		return 0, nil
	}
	var user sigs.UserData
	if err := user.Unmarshal(models[0].Value); err != nil {
		return 0, errors.Wrap(err, "user data")
	}
	return user.Sequence, nil
}
