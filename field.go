package cronexpr

import (
	"fmt"
	"time"
)

// Position identifies one field slot of a cron expression.
type Position int

const (
	Minute Position = iota
	Hour
	Day
	Month
	Weekday
	Year
)

func (p Position) String() string {
	switch p {
	case Minute:
		return "minute"
	case Hour:
		return "hour"
	case Day:
		return "day"
	case Month:
		return "month"
	case Weekday:
		return "weekday"
	case Year:
		return "year"
	}
	return fmt.Sprintf("position(%d)", int(p))
}

// Direction selects which way a run-date search moves in time.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// FieldEvaluator validates and matches tokens for one time unit, and steps
// a working instant across that unit's boundaries.
//
// Matches receives a single alternative; comma lists are split by the
// engine. Step must reset every strictly lower-order unit to its range
// start when moving forward and to its range end when moving backward, and
// must advance by exactly one unit when given a wildcard token.
type FieldEvaluator interface {
	Validate(token string) bool
	Matches(t time.Time, alt string) bool
	Step(t time.Time, dir Direction, token string) time.Time
}

// FieldFactory resolves a field position to its evaluator. It is the seam
// for alternate field dialects; implementations must be safe for
// concurrent use, since searches may run in parallel.
type FieldFactory interface {
	Field(pos Position) (FieldEvaluator, error)
}

type defaultFactory struct{}

// DefaultFieldFactory returns the factory for the classic cron dialect,
// including the L, W and # day tokens.
func DefaultFieldFactory() FieldFactory { return defaultFactory{} }

func (defaultFactory) Field(pos Position) (FieldEvaluator, error) {
	switch pos {
	case Minute:
		return minuteField{}, nil
	case Hour:
		return hourField{}, nil
	case Day:
		return dayField{}, nil
	case Month:
		return monthField{}, nil
	case Weekday:
		return weekdayField{}, nil
	case Year:
		return yearField{}, nil
	}
	return nil, fmt.Errorf("no field evaluator for %s", pos)
}
