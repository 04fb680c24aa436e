package cronexpr

import (
	"strconv"
	"strings"
	"time"
)

var monthNames = map[string]int{
	"jan": 1,
	"feb": 2,
	"mar": 3,
	"apr": 4,
	"may": 5,
	"jun": 6,
	"jul": 7,
	"aug": 8,
	"sep": 9,
	"oct": 10,
	"nov": 11,
	"dec": 12,
}

var weekdayNames = map[string]int{
	"sun": 0,
	"mon": 1,
	"tue": 2,
	"wed": 3,
	"thu": 4,
	"fri": 5,
	"sat": 6,
}

type minuteField struct{}

func (minuteField) Validate(token string) bool {
	return listValid(token, 0, 59, nil, nil)
}

func (minuteField) Matches(t time.Time, alt string) bool {
	return rangeMatches(alt, t.Minute(), 0, 59, nil)
}

func (minuteField) Step(t time.Time, dir Direction, token string) time.Time {
	y, mo, d := t.Date()
	h, m := t.Hour(), t.Minute()
	vals := tokenValues(token, 0, 59, nil)
	if dir == Forward {
		if vals == nil {
			return time.Date(y, mo, d, h, m+1, 0, 0, t.Location())
		}
		for _, v := range vals {
			if v > m {
				return time.Date(y, mo, d, h, v, 0, 0, t.Location())
			}
		}
		return time.Date(y, mo, d, h+1, vals[0], 0, 0, t.Location())
	}
	if vals == nil {
		return time.Date(y, mo, d, h, m-1, 0, 0, t.Location())
	}
	for i := len(vals) - 1; i >= 0; i-- {
		if vals[i] < m {
			return time.Date(y, mo, d, h, vals[i], 0, 0, t.Location())
		}
	}
	return time.Date(y, mo, d, h-1, vals[len(vals)-1], 0, 0, t.Location())
}

type hourField struct{}

func (hourField) Validate(token string) bool {
	return listValid(token, 0, 23, nil, nil)
}

func (hourField) Matches(t time.Time, alt string) bool {
	return rangeMatches(alt, t.Hour(), 0, 23, nil)
}

func (hourField) Step(t time.Time, dir Direction, token string) time.Time {
	y, mo, d := t.Date()
	h := t.Hour()
	vals := tokenValues(token, 0, 23, nil)
	if dir == Forward {
		if vals != nil {
			for _, v := range vals {
				if v > h {
					return time.Date(y, mo, d, v, 0, 0, 0, t.Location())
				}
			}
			return time.Date(y, mo, d+1, 0, 0, 0, 0, t.Location())
		}
		return time.Date(y, mo, d, h+1, 0, 0, 0, t.Location())
	}
	if vals != nil {
		for i := len(vals) - 1; i >= 0; i-- {
			if vals[i] < h {
				return time.Date(y, mo, d, vals[i], 59, 0, 0, t.Location())
			}
		}
		return time.Date(y, mo, d-1, 23, 59, 0, 0, t.Location())
	}
	return time.Date(y, mo, d, h-1, 59, 0, 0, t.Location())
}

type dayField struct{}

func (dayField) Validate(token string) bool {
	return listValid(token, 1, 31, nil, func(alt string) bool {
		u := strings.ToUpper(alt)
		if u == "L" {
			return true
		}
		if n, ok := strings.CutSuffix(u, "W"); ok {
			d, err := strconv.Atoi(n)
			return err == nil && d >= 1 && d <= 31
		}
		return false
	})
}

func (dayField) Matches(t time.Time, alt string) bool {
	u := strings.ToUpper(strings.TrimSpace(alt))
	if u == "L" {
		return t.Day() == lastDayOfMonth(t)
	}
	if n, ok := strings.CutSuffix(u, "W"); ok {
		d, err := strconv.Atoi(n)
		if err != nil {
			return false
		}
		return t.Day() == nearestWeekday(t, d)
	}
	return rangeMatches(alt, t.Day(), 1, 31, nil)
}

func (dayField) Step(t time.Time, dir Direction, _ string) time.Time {
	return stepDay(t, dir)
}

type monthField struct{}

func (monthField) Validate(token string) bool {
	return listValid(token, 1, 12, monthNames, nil)
}

func (monthField) Matches(t time.Time, alt string) bool {
	return rangeMatches(alt, int(t.Month()), 1, 12, monthNames)
}

func (monthField) Step(t time.Time, dir Direction, _ string) time.Time {
	y, mo, _ := t.Date()
	if dir == Forward {
		return time.Date(y, mo+1, 1, 0, 0, 0, 0, t.Location())
	}
	// Day zero normalizes to the last day of the previous month.
	return time.Date(y, mo, 0, 23, 59, 0, 0, t.Location())
}

type weekdayField struct{}

func (weekdayField) Validate(token string) bool {
	return listValid(token, 0, 7, weekdayNames, func(alt string) bool {
		u := strings.ToUpper(alt)
		if wd, nth, ok := strings.Cut(u, "#"); ok {
			w, err := unitValue(wd, weekdayNames)
			if err != nil || w < 0 || w > 7 {
				return false
			}
			n, err := strconv.Atoi(nth)
			return err == nil && n >= 1 && n <= 5
		}
		if wd, ok := strings.CutSuffix(u, "L"); ok && wd != "" {
			w, err := unitValue(wd, weekdayNames)
			return err == nil && w >= 0 && w <= 7
		}
		return false
	})
}

func (weekdayField) Matches(t time.Time, alt string) bool {
	u := strings.ToUpper(strings.TrimSpace(alt))
	day := int(t.Weekday())
	if wd, nth, ok := strings.Cut(u, "#"); ok {
		w, err := unitValue(wd, weekdayNames)
		if err != nil {
			return false
		}
		n, err := strconv.Atoi(nth)
		if err != nil {
			return false
		}
		return day == w%7 && (t.Day()-1)/7+1 == n
	}
	if wd, ok := strings.CutSuffix(u, "L"); ok && wd != "" {
		w, err := unitValue(wd, weekdayNames)
		if err != nil {
			return false
		}
		return day == w%7 && t.Day() > lastDayOfMonth(t)-7
	}
	r, err := parseRange(alt, 0, 7, weekdayNames)
	if err != nil {
		return false
	}
	// 0 and 7 both mean Sunday.
	return r.has(day) || (day == 0 && r.has(7))
}

func (weekdayField) Step(t time.Time, dir Direction, _ string) time.Time {
	return stepDay(t, dir)
}

type yearField struct{}

func (yearField) Validate(token string) bool {
	return listValid(token, 1970, 2099, nil, nil)
}

func (yearField) Matches(t time.Time, alt string) bool {
	return rangeMatches(alt, t.Year(), 1970, 2099, nil)
}

func (yearField) Step(t time.Time, dir Direction, _ string) time.Time {
	y := t.Year()
	if dir == Forward {
		return time.Date(y+1, time.January, 1, 0, 0, 0, 0, t.Location())
	}
	return time.Date(y-1, time.December, 31, 23, 59, 0, 0, t.Location())
}

func stepDay(t time.Time, dir Direction) time.Time {
	y, mo, d := t.Date()
	if dir == Forward {
		return time.Date(y, mo, d+1, 0, 0, 0, 0, t.Location())
	}
	return time.Date(y, mo, d-1, 23, 59, 0, 0, t.Location())
}

func lastDayOfMonth(t time.Time) int {
	y, mo, _ := t.Date()
	return time.Date(y, mo+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// nearestWeekday returns the day of t's month closest to day n that falls
// on a weekday, never leaving the month. n is clamped to the month's
// length first, so "31W" is usable in short months.
func nearestWeekday(t time.Time, n int) int {
	y, mo, _ := t.Date()
	last := lastDayOfMonth(t)
	if n > last {
		n = last
	}
	switch time.Date(y, mo, n, 0, 0, 0, 0, t.Location()).Weekday() {
	case time.Saturday:
		if n > 1 {
			return n - 1
		}
		return n + 2
	case time.Sunday:
		if n < last {
			return n + 1
		}
		return n - 2
	}
	return n
}
