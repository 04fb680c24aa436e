// Package cronexpr computes run dates for standard 5- or 6-field cron
// expressions: the next or previous instants at which a schedule fires,
// whether it fires at a given minute, and ordered lists of upcoming or
// past fire times.
//
// An expression has five mandatory fields and an optional trailing year:
//
//	Field name   | Allowed values  | Allowed special characters
//	----------   | --------------  | --------------------------
//	Minute       | 0-59            | * / , -
//	Hour         | 0-23            | * / , -
//	Day of month | 1-31            | * / , - ? L W
//	Month        | 1-12 or JAN-DEC | * / , -
//	Day of week  | 0-7 or SUN-SAT  | * / , - ? L #
//	Year         | 1970-2099       | * / , -
//
// Month and day-of-week names are case-insensitive. Day-of-week 0 and 7
// both mean Sunday. When both day-of-month and day-of-week are
// constrained, an instant fires if it satisfies either one (the classic
// cron OR rule).
//
// The shortcuts @yearly, @annually, @monthly, @weekly, @daily, @midnight
// and @hourly expand to their conventional five-field forms.
//
// All operations are pure computations over a caller-supplied reference
// instant; expressions are immutable after construction and safe for
// concurrent use.
package cronexpr
