/*
Package x holds the authentication abstraction shared by the programs and
decorators in its sub-packages.

Sub-packages implement a Handler or a Decorator each: sigs verifies
signatures, utils carries the generic decorators, batch splits multi
instruction transactions, system owns the ledger accounts and vault is the
vault program.
*/
package x
