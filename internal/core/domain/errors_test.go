package domain

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"
)

func TestKindOfMapsWrappedKinds(t *testing.T) {
	cases := map[error]FailureKind{
		nil: FailureNone,
		WrapError(ErrUnavailable, "check", errors.New("x")):  FailureUnavailable,
		WrapError(ErrInvalidInput, "parse", errors.New("x")): FailureInvalidInput,
		WrapError(ErrEnvironment, "mkdir", errors.New("x")):  FailureEnvironment,
		errors.New("boom"): FailureDownstream,
	}
	for err, want := range cases {
		if got := KindOf(err); got != want {
			t.Fatalf("KindOf(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestErrorKindName(t *testing.T) {
	_, statErr := os.Stat("/definitely/not/here")
	if got := ErrorKindName(fmt.Errorf("open: %w", statErr)); got != "PathError" {
		t.Fatalf("expected PathError, got %q", got)
	}
	if !errors.Is(statErr, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error")
	}
	if got := ErrorKindName(errors.New("plain")); got != "Error" {
		t.Fatalf("expected Error for plain errors, got %q", got)
	}
}

func TestErrorKindNameUsesNamedSentinels(t *testing.T) {
	malformed := &KindError{Name: "MalformedPDFError", Msg: "malformed pdf"}
	cases := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: missing EOF marker", malformed), "MalformedPDFError"},
		{WrapError(ErrDownstream, "pdf_extract", malformed), "MalformedPDFError"},
		{fmt.Errorf("open lexicon: %w", ErrResourceNotFound), "ResourceNotFoundError"},
		{&KindError{Name: "StopwordsUnavailableError", Parent: ErrResourceNotFound}, "StopwordsUnavailableError"},
	}
	for _, tc := range cases {
		if got := ErrorKindName(tc.err); got != tc.want {
			t.Fatalf("ErrorKindName(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}

	child := &KindError{Name: "StopwordsUnavailableError", Msg: "stopwords unavailable", Parent: ErrResourceNotFound}
	if !errors.Is(fmt.Errorf("%w for %q", child, "klingon"), ErrResourceNotFound) {
		t.Fatalf("expected parent to stay reachable")
	}
}

func TestAvailabilityJSONUsesNullReason(t *testing.T) {
	raw, err := Available().MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(raw) != `{"usable":true,"reason":null}` {
		t.Fatalf("unexpected json: %s", raw)
	}
	raw, _ = Unavailable("missing").MarshalJSON()
	if string(raw) != `{"usable":false,"reason":"missing"}` {
		t.Fatalf("unexpected json: %s", raw)
	}
}
