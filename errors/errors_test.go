package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("disk full")

	cases := []struct {
		name string
		err  error
		want error
	}{
		{"registered error", ErrNotFound, ErrNotFound},
		{"wrapped once", Wrap(ErrNotFound, "listing"), ErrNotFound},
		{"wrapped stdlib error", Wrap(std, "save sale"), std},
		{"wrapped twice", Wrapf(Wrap(ErrOverflow, "fee"), "listing %d", 7), ErrOverflow},
	}
	for _, tc := range cases {
		if got := Cause(tc.err); got != tc.want {
			t.Errorf("%s: got cause %v", tc.name, got)
		}
	}
}

func TestErrorIs(t *testing.T) {
	var nilCustom *customError

	cases := []struct {
		name string
		kind *Error
		err  error
		want bool
	}{
		{"same error", ErrNotFound, ErrNotFound, true},
		{"other error", ErrNotFound, ErrModel, false},
		{"wrapped by this package", ErrAmount, Wrapf(ErrAmount, "price %d", 0), true},
		{"wrapped by pkg/errors", ErrNotFound, errors.Wrap(ErrNotFound, "asset"), true},
		{"other error wrapped", ErrNotFound, errors.Wrap(ErrOverflow, "fee"), false},
		{"stdlib error", ErrNotFound, fmt.Errorf("not found"), false},
		{"wrapped stdlib error", ErrNotFound, errors.Wrap(fmt.Errorf("not found"), "asset"), false},
		{"nil kind and nil error", nil, nil, true},
		{"nil kind and typed nil", nil, nilCustom, true},
		{"nil kind and an error", nil, ErrNotFound, false},
		{"kind and nil error", ErrNotFound, nil, false},
	}
	for _, tc := range cases {
		if got := tc.kind.Is(tc.err); got != tc.want {
			t.Errorf("%s: got %v", tc.name, got)
		}
	}
}

type customError struct{}

func (*customError) Error() string { return "custom" }

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "nothing"); err != nil {
		t.Fatal(err)
	}
	if err := Wrapf(nil, "nothing %d", 1); err != nil {
		t.Fatal(err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	Register(ErrNotFound.ABCICode(), "second not found")
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := fn()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
}

func TestFormatting(t *testing.T) {
	err := Wrap(ErrState, "listing")

	if got := fmt.Sprintf("%s", err); got != "listing: invalid state" {
		t.Fatalf("unexpected %%s format: %q", got)
	}
	if got := fmt.Sprintf("%v", err); !strings.HasPrefix(got, "listing: invalid state [") {
		t.Fatalf("unexpected %%v format: %q", got)
	}
	if got := fmt.Sprintf("%+v", err); !strings.Contains(got, "errors_test.go") {
		t.Fatalf("stack trace not found in %q", got)
	}
}
