/*
Package errors implements the error kinds shared by the ledger host and the
programs it runs.

Every error returned from a handler should wrap one of the root errors
registered with Register. The root error carries the ABCI code that is
returned to the client, so a client can tell an InvalidAmount apart from an
address constraint failure without parsing the log message.

Create errors at the point of failure with ErrXyz.New("...") or
Wrap(err, "...") so that a stack trace is attached. Only the innermost wrap
records the trace.

Formatting:

	%s is the error message
	%+v is the message followed by the stack trace
*/
package errors
