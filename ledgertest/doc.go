/*
Package ledgertest provides mocks and helpers for testing programs and
decorators: authenticators, handlers, decorators, transactions and keys.
*/
package ledgertest
