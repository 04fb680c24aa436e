package cronexpr

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// unitRange expands one alternative of a field token ("5", "1-10", "*/15",
// "10-40/5", "MON-FRI") into the set of admitted values for that unit.
type unitRange struct {
	min, max int
	all      bool
	val      map[int]struct{}
}

func (r *unitRange) has(v int) bool {
	if r == nil {
		return false
	}
	if r.all {
		return true
	}
	_, ok := r.val[v]
	return ok
}

func parseRange(alt string, min, max int, names map[string]int) (*unitRange, error) {
	alt = strings.TrimSpace(alt)
	if alt == "" {
		return nil, fmt.Errorf("empty field value")
	}

	base, stepStr, hasStep := strings.Cut(alt, "/")
	step := 1
	if hasStep {
		n, err := strconv.Atoi(stepStr)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid step in %q", alt)
		}
		step = n
	}

	lo, hi := min, max
	if base != "*" && base != "?" {
		from, to, isRange := strings.Cut(base, "-")
		v, err := unitValue(from, names)
		if err != nil {
			return nil, err
		}
		lo = v
		switch {
		case isRange:
			hi, err = unitValue(to, names)
			if err != nil {
				return nil, err
			}
		case hasStep:
			// "n/s" runs from n to the top of the unit.
			hi = max
		default:
			hi = lo
		}
	}

	if lo < min || hi > max {
		return nil, fmt.Errorf("value out of range (%d-%d) in %q", min, max, alt)
	}
	if hi < lo {
		return nil, fmt.Errorf("inverted range %q", alt)
	}
	if base == "*" || base == "?" {
		if !hasStep {
			return &unitRange{min: min, max: max, all: true}, nil
		}
	}

	out := &unitRange{min: min, max: max, val: make(map[int]struct{})}
	for v := lo; v <= hi; v += step {
		out.val[v] = struct{}{}
	}
	return out, nil
}

func unitValue(s string, names map[string]int) (int, error) {
	s = strings.TrimSpace(s)
	if names != nil {
		if v, ok := names[strings.ToLower(s)]; ok {
			return v, nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", s)
	}
	return n, nil
}

func rangeValid(alt string, min, max int, names map[string]int) bool {
	_, err := parseRange(alt, min, max, names)
	return err == nil
}

func rangeMatches(alt string, v, min, max int, names map[string]int) bool {
	r, err := parseRange(alt, min, max, names)
	return err == nil && r.has(v)
}

// listValid checks a full field token, alternative by alternative. extra,
// when non-nil, accepts unit-specific tokens the range grammar does not
// cover (L, nW, a#b).
func listValid(token string, min, max int, names map[string]int, extra func(alt string) bool) bool {
	for _, alt := range strings.Split(token, ",") {
		if extra != nil && extra(strings.TrimSpace(alt)) {
			continue
		}
		if !rangeValid(alt, min, max, names) {
			return false
		}
	}
	return true
}

// tokenValues flattens a full field token into its admitted values in
// ascending order. It returns nil for wildcard or unparseable tokens;
// callers treat nil as an unconstrained unit.
func tokenValues(token string, min, max int, names map[string]int) []int {
	merged := make(map[int]struct{})
	for _, alt := range strings.Split(token, ",") {
		r, err := parseRange(alt, min, max, names)
		if err != nil || r.all {
			return nil
		}
		for v := range r.val {
			merged[v] = struct{}{}
		}
	}
	if len(merged) == 0 {
		return nil
	}
	out := make([]int, 0, len(merged))
	for v := range merged {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
