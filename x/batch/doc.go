/*
Package batch implements transactions carrying several instructions.

A batch transaction holds an ordered list of instructions, possibly for
different programs. Each instruction is passed down the stack as its own
single instruction transaction. The transaction fails if any of the
instructions fail. Signature checks and other extensions that don't rely on
instructions are only applied once per transaction, so the embedded
instructions don't hit that middleware.

Place the decorator inside a Savepoint, so that a failing instruction
discards the writes of the ones executed before it.
*/
package batch
