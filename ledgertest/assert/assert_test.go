package assert

import (
	"testing"

	"github.com/blueshift-gg/ledger/errors"
)

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		ErrWant  error
		ErrGot   error
		WantFail bool
	}{
		"same error": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.ErrEmpty,
			WantFail: false,
		},
		"compared to nil": {
			ErrWant:  nil,
			ErrGot:   errors.ErrEmpty,
			WantFail: true,
		},
		"both nil": {
			ErrWant:  nil,
			ErrGot:   nil,
			WantFail: false,
		},
		"wrapped": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.Wrap(errors.ErrEmpty, "test"),
			WantFail: false,
		},
		"different code": {
			ErrWant:  errors.ErrConstraintSeeds,
			ErrGot:   errors.Wrap(errors.ErrConstraintMut, "test"),
			WantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			IsErr(mock, tc.ErrWant, tc.ErrGot)
			failed := mock.failcalls > 0
			if tc.WantFail != failed {
				t.Fatalf("want fail=%v, got %d fail calls", tc.WantFail, mock.failcalls)
			}
		})
	}
}

func TestNil(t *testing.T) {
	var nilPtr *int
	cases := map[string]struct {
		Value    interface{}
		WantFail bool
	}{
		"nil":       {Value: nil},
		"nil ptr":   {Value: nilPtr},
		"nil slice": {Value: []byte(nil)},
		"int":       {Value: 0, WantFail: true},
		"error":     {Value: errors.ErrEmpty, WantFail: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			Nil(mock, tc.Value)
			if failed := mock.failcalls > 0; failed != tc.WantFail {
				t.Fatalf("want fail=%v", tc.WantFail)
			}
		})
	}
}

func TestPanics(t *testing.T) {
	mock := &tmock{TB: t}
	Panics(mock, func() { panic("boom") })
	if mock.failcalls != 0 {
		t.Fatal("panic not detected")
	}

	Panics(mock, func() {})
	if mock.failcalls != 1 {
		t.Fatal("missing panic not reported")
	}
}

// tmock counts failures instead of stopping the test.
type tmock struct {
	testing.TB
	failcalls int
}

func (m *tmock) Fatalf(s string, args ...interface{}) {
	m.failcalls++
}

func (m *tmock) Fatal(args ...interface{}) {
	m.failcalls++
}
