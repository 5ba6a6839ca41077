package vault

import "github.com/blueshift-gg/ledger/errors"

var (
	// ErrVaultAlreadyExists is returned when depositing into a vault that
	// still holds lamports.
	ErrVaultAlreadyExists = errors.Register(6000, "vault already exists")

	// ErrInvalidAmount is returned for deposits not above the rent exempt
	// minimum and for withdrawals from an empty vault.
	ErrInvalidAmount = errors.Register(6001, "invalid amount")
)
