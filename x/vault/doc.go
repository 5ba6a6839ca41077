/*
Package vault implements a custodial program holding native lamports on
behalf of a single signer.

Every signer has exactly one vault, a program derived address computed from
the seeds "vault" and the signer address. The vault is created by the first
deposit into it and disappears when the signer withdraws its whole balance.
A vault that holds lamports cannot be funded again.

Only the vault program can sign for the vault, and it does so only when the
signer of the transaction is the one the vault was derived for.
*/
package vault
