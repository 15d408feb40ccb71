package statement

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Rollover selects how the first transaction of a statement is moved into
// the following year when it falls before the anchor date.
type Rollover int

const (
	// RolloverDecemberAnchor bumps the year only when the anchor is in December.
	RolloverDecemberAnchor Rollover = iota
	// RolloverAnyAnchor bumps the year whatever month the anchor is in.
	RolloverAnyAnchor
)

var rolloverNames = map[Rollover]string{
	RolloverDecemberAnchor: "december-anchor",
	RolloverAnyAnchor:      "any-anchor",
}

func (r Rollover) String() string {
	if s, ok := rolloverNames[r]; ok {
		return s
	}
	return "rollover(" + strconv.Itoa(int(r)) + ")"
}

// ParseRollover maps a config name back to a Rollover.
func ParseRollover(s string) (Rollover, error) {
	for r, name := range rolloverNames {
		if strings.EqualFold(s, name) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown year rollover %q (want december-anchor or any-anchor)", s)
}

const anchorFormat = "01/02/2006"

var (
	// datePattern finds a MM/DD run anywhere in a token.
	datePattern = regexp.MustCompile(`\d\d/\d\d`)
	// monthDayPattern is the only shape ResolveDate accepts.
	monthDayPattern = regexp.MustCompile(`^(\d\d)/(\d\d)$`)
)

// looksLikeDate reports whether token contains something shaped like MM/DD.
func looksLikeDate(token string) bool {
	return datePattern.MatchString(token)
}

// ParseAnchor parses a full MM/DD/YYYY statement date.
func ParseAnchor(s string) (time.Time, error) {
	t, err := time.Parse(anchorFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &MalformedDateError{Token: s, Reason: "not a valid MM/DD/YYYY date"}
	}
	return t, nil
}

// ResolveDate turns a year-less MM/DD token into a calendar date.
//
// The year is taken from last (the previous transaction date) when set,
// otherwise from anchor. A December to January step moves into the next
// year. The first transaction of a statement also moves forward when it
// lands in January before the anchor; guard decides whether that needs the
// anchor to be in December.
func ResolveDate(token string, last, anchor time.Time, guard Rollover) (time.Time, error) {
	m := monthDayPattern.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return time.Time{}, &MalformedDateError{Token: token, Reason: "want MM/DD"}
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, &MalformedDateError{Token: token, Reason: "month or day out of range"}
	}

	var year int
	switch {
	case !last.IsZero():
		year = last.Year()
	case !anchor.IsZero():
		year = anchor.Year()
	default:
		return time.Time{}, &MalformedDateError{Token: token, Reason: "no statement date to take the year from"}
	}

	mon := time.Month(month)
	if !last.IsZero() {
		if last.Month() == time.December && mon == time.January {
			year++
		}
	} else if mon == time.January && time.Date(year, mon, day, 0, 0, 0, 0, time.UTC).Before(anchor) {
		if guard == RolloverAnyAnchor || anchor.Month() == time.December {
			year++
		}
	}

	d := time.Date(year, mon, day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day {
		return time.Time{}, &MalformedDateError{Token: token, Reason: fmt.Sprintf("no such day in %d", year)}
	}
	return d, nil
}
