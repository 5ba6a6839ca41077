package sigs

import "github.com/blueshift-gg/ledger/errors"

// ErrInvalidSequence is returned when a signature does not carry the next
// expected sequence of its signer.
var ErrInvalidSequence = errors.Register(40, "invalid sequence number")
