/*
Package client connects to a vaultd node over the tendermint rpc. It submits
transactions, waits for them to be committed and reads ledger state through
abci queries.
*/
package client
