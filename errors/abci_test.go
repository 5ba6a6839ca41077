package errors

import (
	"io"
	"strings"
	"testing"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err        error
		debug      bool
		wantCode   uint32
		wantLog    string
		wantPrefix bool
	}{
		"plain registered error": {
			err:      ErrNotFound,
			wantLog:  "not found",
			wantCode: ErrNotFound.code,
		},
		"wrapped registered error": {
			err:      Wrap(Wrap(ErrConstraintSeeds, "vault"), "deposit"),
			wantLog:  "deposit: vault: a seeds constraint was violated",
			wantCode: 2006,
		},
		"nil is empty message": {
			err:      nil,
			wantLog:  "",
			wantCode: 0,
		},
		"nil registered error is not an error": {
			err:      (*Error)(nil),
			wantLog:  "",
			wantCode: 0,
		},
		"stdlib is generic message": {
			err:      io.EOF,
			wantLog:  "internal error",
			wantCode: 1,
		},
		"stdlib returns error message in debug mode": {
			err:      io.EOF,
			debug:    true,
			wantLog:  "EOF",
			wantCode: 1,
		},
		"wrapped stdlib is only a generic message": {
			err:      Wrap(io.EOF, "cannot read file"),
			wantLog:  "internal error",
			wantCode: 1,
		},
		"wrapped stdlib is a full message with trace in debug mode": {
			err:        Wrap(io.EOF, "cannot read file"),
			debug:      true,
			wantLog:    "cannot read file: EOF",
			wantPrefix: true,
			wantCode:   1,
		},
		"custom error": {
			err:      customErr{},
			wantLog:  "custom",
			wantCode: 999,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if tc.wantPrefix {
				if !strings.HasPrefix(log, tc.wantLog) {
					t.Errorf("want %q log prefix, got %q", tc.wantLog, log)
				}
			} else if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestABCIErrorRoundTrip(t *testing.T) {
	code, log := ABCIInfo(Wrap(ErrInvalidAmount, "vault is empty"), false)
	err := ABCIError(code, log)
	if !ErrInvalidAmount.Is(err) {
		t.Fatalf("want invalid amount, got %v", err)
	}

	if err := ABCIError(SuccessABCICode, ""); err != nil {
		t.Fatalf("success code must not produce an error: %v", err)
	}

	unknown := ABCIError(424242, "whatever")
	if ErrInvalidAmount.Is(unknown) || unknown == nil {
		t.Fatalf("unexpected error for unknown code: %v", unknown)
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(ErrPanic.New("stack smash"), false); ErrPanic.Is(err) {
		t.Fatal("panic must be redacted")
	}
	if err := Redact(io.EOF, false); err.Error() != internalABCILog {
		t.Fatalf("want internal error, got %q", err)
	}
	if err := Redact(ErrNotFound.New("x"), false); !ErrNotFound.Is(err) {
		t.Fatal("registered errors must be preserved")
	}
	if err := Redact(io.EOF, true); err != io.EOF {
		t.Fatal("debug mode must not redact")
	}
}

// customErr is a custom implementation of an error that provides an ABCICode
// method.
type customErr struct{}

func (customErr) ABCICode() uint32 { return 999 }

func (customErr) Error() string { return "custom" }
