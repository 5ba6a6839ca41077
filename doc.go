/*
Package ledger defines the common interfaces that tie the ledger host and its
programs together, along with the address type and the program address
derivation rules.

A transaction carries one or more instructions. Each instruction names the
program that executes it, the accounts it touches and opaque instruction
data. The host routes every instruction to the Handler registered for its
program, inside a chain of Decorators that verify signatures, log, record
metrics and make the whole transaction atomic.

Context values are passed with context.Context between the app, decorators
and handlers. For every value of type T stored in the context there is a
pair of functions

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set, so that lower level modules
cannot overwrite it (eg. height, chain id).
*/
package ledger
