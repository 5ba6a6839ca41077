package system

import "github.com/blueshift-gg/ledger/errors"

// ErrInsufficientFundsForRent is returned when a transfer leaves an
// account with a balance that is not zero but below the rent exempt
// minimum.
var ErrInsufficientFundsForRent = errors.Register(30, "insufficient funds for rent")
