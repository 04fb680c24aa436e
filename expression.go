package cronexpr

import (
	"fmt"
	"strings"
)

const defaultMaxIterations = 1000

var shortcuts = map[string]string{
	"@yearly":   "0 0 1 1 *",
	"@annually": "0 0 1 1 *",
	"@monthly":  "0 0 1 * *",
	"@weekly":   "0 0 * * 0",
	"@daily":    "0 0 * * *",
	"@midnight": "0 0 * * *",
	"@hourly":   "0 * * * *",
}

// Expression is a validated cron schedule. It is immutable after
// construction except through SetMaxIterations; WithField returns a
// modified copy.
type Expression struct {
	fields  []string
	factory FieldFactory
	maxIter int
}

// Option configures an Expression at construction time.
type Option func(*Expression)

// WithFieldFactory substitutes an alternate field-syntax dialect.
func WithFieldFactory(f FieldFactory) Option {
	return func(e *Expression) {
		if f != nil {
			e.factory = f
		}
	}
}

// WithMaxIterations overrides the run-date search budget.
func WithMaxIterations(n int) Option {
	return func(e *Expression) { e.SetMaxIterations(n) }
}

// Parse builds an Expression from a cron line, expanding @shortcuts
// first. Shortcut matching is case-insensitive; an unrecognized @name
// falls through to normal parsing and fails there.
func Parse(expr string, opts ...Option) (*Expression, error) {
	text := strings.TrimSpace(expr)
	if alias, ok := shortcuts[strings.ToLower(text)]; ok {
		text = alias
	}
	return newExpression(strings.Fields(text), opts)
}

// New builds an Expression from individual field tokens: minute, hour,
// day, month, weekday and an optional year.
func New(fields []string, opts ...Option) (*Expression, error) {
	return newExpression(fields, opts)
}

// Valid reports whether expr parses as a cron expression. It never
// returns an error.
func Valid(expr string) bool {
	_, err := Parse(expr)
	return err == nil
}

func newExpression(fields []string, opts []Option) (*Expression, error) {
	e := &Expression{factory: DefaultFieldFactory(), maxIter: defaultMaxIterations}
	for _, opt := range opts {
		opt(e)
	}
	if len(fields) < 5 {
		return nil, fmt.Errorf("%w: expected at least 5 fields, got %d", ErrMalformedExpression, len(fields))
	}
	if len(fields) > int(Year)+1 {
		return nil, fmt.Errorf("%w: expected at most 6 fields, got %d", ErrMalformedExpression, len(fields))
	}
	e.fields = make([]string, len(fields))
	for i, tok := range fields {
		tok = strings.TrimSpace(tok)
		if err := e.checkField(Position(i), tok); err != nil {
			return nil, err
		}
		e.fields[i] = tok
	}
	return e, nil
}

func (e *Expression) checkField(pos Position, token string) error {
	if token == "" {
		return fmt.Errorf("%w: empty %s field", ErrMalformedExpression, pos)
	}
	f, err := e.factory.Field(pos)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedExpression, err)
	}
	if !f.Validate(token) {
		return fmt.Errorf("%w: invalid %s field %q", ErrMalformedExpression, pos, token)
	}
	return nil
}

// WithField returns a copy of the expression with one field replaced,
// re-validating only that field. Setting Year on a 5-field expression
// appends it. The receiver is untouched when validation fails.
func (e *Expression) WithField(pos Position, token string) (*Expression, error) {
	if pos < Minute || pos > Year {
		return nil, fmt.Errorf("%w: no field position %d", ErrMalformedExpression, int(pos))
	}
	if int(pos) > len(e.fields) {
		return nil, fmt.Errorf("%w: cannot set %s field on a %d-field expression", ErrMalformedExpression, pos, len(e.fields))
	}
	token = strings.TrimSpace(token)
	if err := e.checkField(pos, token); err != nil {
		return nil, err
	}
	dup := *e
	dup.fields = make([]string, len(e.fields), len(e.fields)+1)
	copy(dup.fields, e.fields)
	if int(pos) == len(dup.fields) {
		dup.fields = append(dup.fields, token)
	} else {
		dup.fields[pos] = token
	}
	return &dup, nil
}

// FieldAt returns the token at pos, reporting absence for positions the
// expression does not carry (the optional year of a 5-field schedule).
func (e *Expression) FieldAt(pos Position) (string, bool) {
	if pos < Minute || int(pos) >= len(e.fields) {
		return "", false
	}
	return e.fields[pos], true
}

// String returns the canonical space-joined expression.
func (e *Expression) String() string {
	return strings.Join(e.fields, " ")
}

// SetMaxIterations overrides the run-date search budget. Values <= 0
// restore the default of 1000.
func (e *Expression) SetMaxIterations(n int) {
	if n <= 0 {
		n = defaultMaxIterations
	}
	e.maxIter = n
}
