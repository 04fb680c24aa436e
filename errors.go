package cronexpr

import "errors"

var (
	// ErrMalformedExpression reports an expression with the wrong number
	// of fields or a token its field evaluator rejects.
	ErrMalformedExpression = errors.New("malformed cron expression")

	// ErrImpossibleSchedule reports a schedule that produced no run date
	// within the iteration budget, such as "0 0 30 2 *".
	ErrImpossibleSchedule = errors.New("no satisfiable run date")
)
