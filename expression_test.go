package cronexpr

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParse_RoundTrip(t *testing.T) {
	e, err := Parse("*/5 9-17 1,15 * 1-5")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	again, err := Parse(e.String())
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	for pos := Minute; pos <= Weekday; pos++ {
		a, _ := e.FieldAt(pos)
		b, _ := again.FieldAt(pos)
		if a != b {
			t.Fatalf("%s: want %q, got %q", pos, a, b)
		}
	}
}

func TestParse_ShortcutEquivalence(t *testing.T) {
	cases := map[string]string{
		"@yearly":   "0 0 1 1 *",
		"@annually": "0 0 1 1 *",
		"@monthly":  "0 0 1 * *",
		"@weekly":   "0 0 * * 0",
		"@daily":    "0 0 * * *",
		"@midnight": "0 0 * * *",
		"@hourly":   "0 * * * *",
		"@Daily":    "0 0 * * *",
		"@HOURLY":   "0 * * * *",
	}
	for in, want := range cases {
		e, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got := e.String(); got != want {
			t.Fatalf("%q: want %q, got %q", in, want, got)
		}
	}
}

func TestParse_UnknownShortcut(t *testing.T) {
	_, err := Parse("@fortnightly")
	if !errors.Is(err, ErrMalformedExpression) {
		t.Fatalf("want ErrMalformedExpression, got %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	cases := []string{
		"",
		"0 0 * *",
		"* * * * * * *",
		"60 * * * *",
		"* 24 * * *",
		"* * 0 * *",
		"* * 32 * *",
		"* * * 13 *",
		"* * * * 8",
		"*/0 * * * *",
		"5-1 * * * *",
		"a * * * *",
		"* * * * * 1969",
		"* * * * * 2100",
	}
	for _, in := range cases {
		if _, err := Parse(in); !errors.Is(err, ErrMalformedExpression) {
			t.Fatalf("%q: want ErrMalformedExpression, got %v", in, err)
		}
	}
}

func TestParse_ErrorNamesTokenAndPosition(t *testing.T) {
	_, err := Parse("* * * * 8")
	if err == nil || !strings.Contains(err.Error(), `weekday field "8"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValid(t *testing.T) {
	if !Valid("0 0 * * *") {
		t.Fatalf("expected valid")
	}
	if Valid("not a cron line") {
		t.Fatalf("expected invalid")
	}
	if Valid("") {
		t.Fatalf("expected invalid")
	}
}

func TestNew_Arity(t *testing.T) {
	if _, err := New([]string{"0", "0", "1", "1"}); !errors.Is(err, ErrMalformedExpression) {
		t.Fatalf("want ErrMalformedExpression, got %v", err)
	}
	e, err := New([]string{"0", "0", "1", "1", "*", "2030"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := e.String(); got != "0 0 1 1 * 2030" {
		t.Fatalf("want %q, got %q", "0 0 1 1 * 2030", got)
	}
}

func TestWithField(t *testing.T) {
	e, err := Parse("0 0 * * *")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	mod, err := e.WithField(Hour, "6")
	if err != nil {
		t.Fatalf("with field: %v", err)
	}
	if got := mod.String(); got != "0 6 * * *" {
		t.Fatalf("want %q, got %q", "0 6 * * *", got)
	}
	if got := e.String(); got != "0 0 * * *" {
		t.Fatalf("receiver changed: %q", got)
	}

	if _, err := e.WithField(Hour, "24"); !errors.Is(err, ErrMalformedExpression) {
		t.Fatalf("want ErrMalformedExpression, got %v", err)
	}
	if got := e.String(); got != "0 0 * * *" {
		t.Fatalf("receiver changed after failed replace: %q", got)
	}

	withYear, err := e.WithField(Year, "2030")
	if err != nil {
		t.Fatalf("append year: %v", err)
	}
	if got := withYear.String(); got != "0 0 * * * 2030" {
		t.Fatalf("want %q, got %q", "0 0 * * * 2030", got)
	}
}

func TestFieldAt(t *testing.T) {
	e, err := Parse("30 6 * * 1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tok, ok := e.FieldAt(Minute); !ok || tok != "30" {
		t.Fatalf("minute: want %q, got %q (%v)", "30", tok, ok)
	}
	if _, ok := e.FieldAt(Year); ok {
		t.Fatalf("year should be absent on a 5-field expression")
	}
	if _, ok := e.FieldAt(Position(9)); ok {
		t.Fatalf("out-of-range position should be absent")
	}
}

type rejectAllField struct{}

func (rejectAllField) Validate(string) bool { return false }

func (rejectAllField) Matches(_ time.Time, _ string) bool { return false }

func (rejectAllField) Step(t time.Time, _ Direction, _ string) time.Time { return t }

type rejectAllFactory struct{}

func (rejectAllFactory) Field(Position) (FieldEvaluator, error) { return rejectAllField{}, nil }

func TestParse_CustomFieldFactory(t *testing.T) {
	if _, err := Parse("0 0 * * *", WithFieldFactory(rejectAllFactory{})); !errors.Is(err, ErrMalformedExpression) {
		t.Fatalf("want ErrMalformedExpression, got %v", err)
	}
}
