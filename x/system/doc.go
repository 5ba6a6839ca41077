/*
Package system implements the native accounts of the ledger.

Every address owns a balance of lamports. Accounts are created by the first
transfer into them and removed once their balance drops to zero, so an empty
account and one that never existed look the same.

Moving lamports out of an account requires proof of authority. Ordinary
accounts prove it with a transaction signature, program derived accounts
by the executing program presenting the seeds the address was derived from.
*/
package system
