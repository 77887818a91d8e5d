package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCode(999), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestCodeString(t *testing.T) {
	if ErrorCodeUnavailable.String() != "unavailable" {
		t.Fatalf("String = %q", ErrorCodeUnavailable.String())
	}
	if ErrorCode(999).String() != "unknown" {
		t.Fatalf("out-of-range code should render unknown")
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrs.New("connection refused")
	err := Wrap(cause, ErrorCodeUnavailable, "query events")

	if err.Error() != "query events: connection refused" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !stderrs.Is(err, cause) {
		t.Fatalf("errors.Is lost the cause")
	}
	if !IsCode(err, ErrorCodeUnavailable) {
		t.Fatalf("CodeOf = %v", CodeOf(err))
	}
	if Root(fmt.Errorf("outer: %w", err)) != cause {
		t.Fatalf("Root did not reach the cause")
	}
	if WrapIf(nil, ErrorCodeDB, "x") != nil {
		t.Fatalf("WrapIf(nil) should be nil")
	}
	if IsCode(nil, ErrorCodeUnknown) {
		t.Fatalf("nil has no code")
	}
}

func TestWireHidesCause(t *testing.T) {
	err := Wrapf(stderrs.New("pq: secret detail"), ErrorCodeDB, "upsert %d rows", 3)
	w := WireFrom(err)
	if w.Code != ErrorCodeDB || w.Message != "upsert 3 rows" {
		t.Fatalf("wire = %+v", w)
	}

	foreign := WireFrom(stderrs.New("plain"))
	if foreign.Code != ErrorCodeUnknown || foreign.Message != "plain" {
		t.Fatalf("foreign wire = %+v", foreign)
	}
	if (WireFrom(nil) != Wire{}) {
		t.Fatalf("nil wire should be zero")
	}

	status, body := HTTP(InvalidArgf("days must be >= 1"))
	if status != http.StatusUnprocessableEntity || body.Message != "days must be >= 1" {
		t.Fatalf("HTTP = %d %+v", status, body)
	}
	if s, _ := HTTP(nil); s != http.StatusOK {
		t.Fatalf("HTTP(nil) status = %d", s)
	}
}

func TestWithFieldAndOp(t *testing.T) {
	base := New(ErrorCodeValidation, "required")
	withField := WithField(base, "user_id")
	e, ok := As(withField)
	if !ok || e.Field() != "user_id" {
		t.Fatalf("field not attached: %v", withField)
	}
	if be, _ := As(base); be.Field() != "" {
		t.Fatalf("WithField mutated the original")
	}

	foreign := WithField(stderrs.New("bad"), "days")
	if CodeOf(foreign) != ErrorCodeValidation {
		t.Fatalf("foreign WithField code = %v", CodeOf(foreign))
	}
	if WithField(nil, "x") != nil {
		t.Fatalf("WithField(nil) should be nil")
	}

	opErr := WithOp(base, "rollup.run")
	if oe, _ := As(opErr); oe.Op() != "rollup.run" {
		t.Fatalf("op not attached")
	}
	plain := stderrs.New("plain")
	if WithOp(plain, "x") != plain {
		t.Fatalf("WithOp should pass foreign errors through")
	}

	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil *Error render")
	}
}

func TestSugarCodes(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorCode
	}{
		{InvalidArgf("x"), ErrorCodeInvalidArgument},
		{NotFoundf("x"), ErrorCodeNotFound},
		{Unavailablef("x"), ErrorCodeUnavailable},
		{JSONErrf("x"), ErrorCodeJSON},
		{PanicErrf("x"), ErrorCodePanic},
	}
	for _, c := range cases {
		if CodeOf(c.err) != c.want {
			t.Fatalf("%v code = %v, want %v", c.err, CodeOf(c.err), c.want)
		}
	}
}
