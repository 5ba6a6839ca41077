package app

import (
	"fmt"

	"github.com/blueshift-gg/ledger"
	"github.com/blueshift-gg/ledger/errors"
)

// Router allows us to register many handlers with different
// program ids and then direct each instruction to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]ledger.Handler
}

var _ ledger.Registry = (*Router)(nil)
var _ ledger.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]ledger.Handler, 4),
	}
}

// Handle adds a new Handler for the given program.
// panics if another Handler was already registered
func (r *Router) Handle(program ledger.Address, h ledger.Handler) {
	if err := program.Validate(); err != nil {
		panic(fmt.Sprintf("invalid program id: %s", err))
	}
	key := string(program)
	if _, ok := r.routes[key]; ok {
		panic(fmt.Sprintf("re-registering program: %s", program))
	}
	r.routes[key] = h
}

// handler returns the registered Handler for this program
func (r *Router) handler(program ledger.Address) (ledger.Handler, error) {
	if h, ok := r.routes[string(program)]; ok {
		return h, nil
	}
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for program %s", program)
}

// Check dispatches to the program of the instruction.
func (r *Router) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	ix, err := tx.GetInstruction()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load instruction")
	}
	h, err := r.handler(ix.Program)
	if err != nil {
		return nil, err
	}
	return h.Check(ledger.WithProgramID(ctx, ix.Program), store, tx)
}

// Deliver dispatches to the program of the instruction.
func (r *Router) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	ix, err := tx.GetInstruction()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load instruction")
	}
	h, err := r.handler(ix.Program)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ledger.WithProgramID(ctx, ix.Program), store, tx)
}
