package utils

import (
	"context"
	"testing"

	"github.com/blueshift-gg/ledger/errors"
	"github.com/blueshift-gg/ledger/ledgertest"
	"github.com/blueshift-gg/ledger/store"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	msg := "boom"
	h := ledgertest.PanicHandler{Msg: msg}
	r := NewRecovery()
	ctx := context.Background()
	kv := store.MemStore()

	// Panic handler panics, test the test tool.
	assert.Panics(t, func() { h.Check(ctx, kv, nil) })
	assert.Panics(t, func() { h.Deliver(ctx, kv, nil) })

	// Recovery wrapped handler returns an error.
	_, err := r.Check(ctx, kv, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), msg)

	_, err = r.Deliver(ctx, kv, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), msg)
}
