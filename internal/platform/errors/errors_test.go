package errors

import (
	"fmt"
	"testing"

	"vajra/internal/testutil"
)

func TestWrap(t *testing.T) {
	t.Run("wraps error with context", func(t *testing.T) {
		baseErr := New("base error")
		wrapped := Wrap(baseErr, "additional context")

		testutil.AssertNotNil(t, wrapped, "wrapped error should not be nil")
		testutil.AssertTrue(t, Is(wrapped, baseErr), "should be able to unwrap to base error")
		testutil.AssertEqual(t, wrapped.Error(), "additional context: base error", "error message should include context")
	})

	t.Run("returns nil when wrapping nil", func(t *testing.T) {
		testutil.AssertTrue(t, Wrap(nil, "context") == nil, "wrapping nil should return nil")
	})

	t.Run("multiple wraps preserve chain", func(t *testing.T) {
		baseErr := New("base")
		wrapped := Wrap(Wrap(baseErr, "layer 1"), "layer 2")

		testutil.AssertTrue(t, Is(wrapped, baseErr), "should unwrap to base error")
		testutil.AssertEqual(t, wrapped.Error(), "layer 2: layer 1: base", "should show full chain")
	})
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrTimeout, "module %s after %ds", "httpx", 120)
	testutil.AssertTrue(t, IsTimeout(wrapped), "should unwrap to ErrTimeout")
	testutil.AssertEqual(t, wrapped.Error(), "module httpx after 120s: operation timed out", "formatted context")
	testutil.AssertTrue(t, Wrapf(nil, "x %d", 1) == nil, "wrapping nil should return nil")
}

func TestSentinelPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"timeout", Wrap(ErrTimeout, "nmap"), IsTimeout},
		{"not found", Wrap(ErrNotFound, "amass"), IsNotFound},
		{"canceled", Wrap(ErrCanceled, "quit"), IsCanceled},
		{"unsupported", Wrap(ErrUnsupported, "SIGSTOP"), IsUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertTrue(t, tt.pred(tt.err), "predicate should match wrapped sentinel")
			testutil.AssertFalse(t, tt.pred(New("other")), "predicate should not match unrelated error")
			testutil.AssertFalse(t, tt.pred(nil), "predicate should not match nil")
		})
	}
}

type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit %d", e.code) }

func TestAs(t *testing.T) {
	err := Wrap(&exitError{code: 3}, "subfinder")

	var target *exitError
	testutil.AssertTrue(t, As(err, &target), "As should find wrapped type")
	testutil.AssertEqual(t, target.code, 3, "exit code")
}

func TestJoin(t *testing.T) {
	joined := Join(ErrTimeout, nil, ErrMalformed)
	testutil.AssertTrue(t, IsTimeout(joined), "joined error should match timeout")
	testutil.AssertTrue(t, Is(joined, ErrMalformed), "joined error should match malformed")
	testutil.AssertTrue(t, Join(nil, nil) == nil, "joining nils should be nil")
}

func ExampleWrap() {
	err := Wrap(ErrNotFound, "whois binary")
	fmt.Println(err)
	// Output: whois binary: resource not found
}
