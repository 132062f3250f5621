package util

import (
	"errors"
	"strings"
	"testing"
)

func TestHashKeyDeterministic(t *testing.T) {
	a := HashKey("secret")
	b := HashKey("secret")
	if a != b {
		t.Fatalf("hash not deterministic: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected hex sha256, got %d chars", len(a))
	}
	if HashKey("other") == a {
		t.Fatalf("distinct inputs collided")
	}
}

func TestSanitizeErrorFlattensAndTruncates(t *testing.T) {
	err := errors.New("line one\nline two\r\nline three")
	got := SanitizeError(err)
	if strings.ContainsAny(got, "\n\r") {
		t.Fatalf("newlines survived: %q", got)
	}

	long := errors.New(strings.Repeat("x", 1000))
	if got := SanitizeError(long); len(got) != 500 {
		t.Fatalf("expected 500-char cap, got %d", len(got))
	}

	if SanitizeError(nil) != "" {
		t.Fatalf("nil error must sanitize to empty string")
	}
}

func TestTruncateText(t *testing.T) {
	if got := TruncateText("hello", 10); got != "hello" {
		t.Fatalf("short text must pass through, got %q", got)
	}
	if got := TruncateText("hello world", 5); got != "hello" {
		t.Fatalf("expected truncation, got %q", got)
	}
	if got := TruncateText("hello", 0); got != "hello" {
		t.Fatalf("non-positive limit must pass through, got %q", got)
	}
}
