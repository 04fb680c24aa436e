package cronexpr

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// evalOrder lists field positions most-significant first. Stepping a
// higher unit resets the lower ones, so the scan must settle years before
// minutes.
var evalOrder = [...]Position{Year, Month, Day, Weekday, Hour, Minute}

// Next returns the skip-th upcoming instant at which the schedule fires,
// counting forward from the reference. A zero reference means time.Now().
// When inclusive is true, a reference instant that itself fires counts as
// a match. The search runs in loc when non-nil, otherwise in the zone
// carried by the reference; the result is returned in that zone with
// seconds zeroed.
func (e *Expression) Next(from time.Time, skip int, inclusive bool, loc *time.Location) (time.Time, error) {
	return e.findRunDate(from, skip, Forward, inclusive, loc)
}

// Prev is Next with the search running backward in time.
func (e *Expression) Prev(from time.Time, skip int, inclusive bool, loc *time.Location) (time.Time, error) {
	return e.findRunDate(from, skip, Backward, inclusive, loc)
}

// RunDates returns up to count fire times ordered away from the
// reference, truncating silently once the schedule is exhausted or
// unsatisfiable. count <= 0 yields an empty list.
func (e *Expression) RunDates(count int, from time.Time, dir Direction, inclusive bool, loc *time.Location) []time.Time {
	var out []time.Time
	for i := 0; i < count; i++ {
		t, err := e.findRunDate(from, i, dir, inclusive, loc)
		if err != nil {
			break
		}
		out = append(out, t)
	}
	return out
}

// IsDue reports whether the schedule fires at the given instant, at
// minute granularity. Search failures, including unsatisfiable schedules,
// read as not due.
func (e *Expression) IsDue(at time.Time, loc *time.Location) bool {
	ref, loc := resolveZone(at, loc)
	t, err := e.findRunDate(ref, 0, Forward, true, loc)
	return err == nil && t.Equal(ref)
}

// resolveZone picks the zone for one search (explicit loc, else the zone
// carried by the reference) and normalizes the reference into it at
// minute resolution.
func resolveZone(ref time.Time, loc *time.Location) (time.Time, *time.Location) {
	if ref.IsZero() {
		ref = time.Now()
	}
	if loc == nil {
		loc = ref.Location()
	}
	ref = ref.In(loc)
	y, mo, d := ref.Date()
	return time.Date(y, mo, d, ref.Hour(), ref.Minute(), 0, 0, loc), loc
}

type constraint struct {
	eval  FieldEvaluator
	token string
	alts  []string
}

// constrained reports whether a token restricts its field at all. The
// engine never evaluates or steps wildcarded positions.
func constrained(token string) bool {
	return token != "*" && token != "?"
}

func (e *Expression) constraints() ([]constraint, error) {
	var out []constraint
	for _, pos := range evalOrder {
		tok, ok := e.FieldAt(pos)
		if !ok || !constrained(tok) {
			continue
		}
		f, err := e.factory.Field(pos)
		if err != nil {
			return nil, err
		}
		out = append(out, constraint{eval: f, token: tok, alts: strings.Split(tok, ",")})
	}
	return out, nil
}

func matchesAny(f FieldEvaluator, t time.Time, alts []string) bool {
	for _, alt := range alts {
		if f.Matches(t, alt) {
			return true
		}
	}
	return false
}

func (e *Expression) findRunDate(from time.Time, skip int, dir Direction, inclusive bool, loc *time.Location) (time.Time, error) {
	if skip < 0 {
		return time.Time{}, fmt.Errorf("negative skip count %d", skip)
	}
	ref, loc := resolveZone(from, loc)

	dayTok, _ := e.FieldAt(Day)
	wdTok, _ := e.FieldAt(Weekday)
	if constrained(dayTok) && constrained(wdTok) {
		return e.splitDayWeekday(ref, skip, dir, inclusive, loc)
	}

	cons, err := e.constraints()
	if err != nil {
		return time.Time{}, err
	}
	minf, err := e.factory.Field(Minute)
	if err != nil {
		return time.Time{}, err
	}
	minuteTok := e.fields[Minute]

	t := ref
scan:
	for iter := 0; iter < e.maxIter; iter++ {
		for _, c := range cons {
			if !matchesAny(c.eval, t, c.alts) {
				t = c.eval.Step(t, dir, c.token)
				continue scan
			}
		}
		// Every constrained field admits t. An excluded reference match
		// is stepped past without consuming the skip count.
		if !inclusive && t.Equal(ref) {
			t = minf.Step(t, dir, minuteTok)
			continue
		}
		if skip > 0 {
			skip--
			t = minf.Step(t, dir, minuteTok)
			continue
		}
		return t, nil
	}
	return time.Time{}, e.impossible()
}

// splitDayWeekday applies the cron OR rule: when both day-of-month and
// weekday are constrained, an instant fires if it satisfies either one.
// Each reduced schedule is solved independently for skip+1 matches and
// the merged list, ordered away from the reference, is indexed by skip.
func (e *Expression) splitDayWeekday(ref time.Time, skip int, dir Direction, inclusive bool, loc *time.Location) (time.Time, error) {
	dayOnly, err := e.WithField(Weekday, "*")
	if err != nil {
		return time.Time{}, err
	}
	weekdayOnly, err := e.WithField(Day, "*")
	if err != nil {
		return time.Time{}, err
	}

	merged := append(
		dayOnly.RunDates(skip+1, ref, dir, inclusive, loc),
		weekdayOnly.RunDates(skip+1, ref, dir, inclusive, loc)...,
	)
	sort.Slice(merged, func(i, j int) bool {
		if dir == Backward {
			return merged[i].After(merged[j])
		}
		return merged[i].Before(merged[j])
	})
	if skip >= len(merged) {
		return time.Time{}, e.impossible()
	}
	return merged[skip], nil
}

func (e *Expression) impossible() error {
	return fmt.Errorf("%w: %q found no candidate within %d iterations", ErrImpossibleSchedule, e.String(), e.maxIter)
}
