package app

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// NormalizeDates repairs the departure/return date pair so that
// today <= departure <= return always holds, no matter how malformed the
// input was. Rules, in order:
//
//  1. departure missing, "null", unparsable, or in the past -> today + 7d
//  2. return under the same tests -> today + 14d
//  3. return still before departure -> departure + 7d
//
// Rule 3 offsets from the resolved departure date, not from today, so the
// pair stays internally consistent. Never errs.
func NormalizeDates(departure, ret string, now time.Time) (string, string) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	dep, ok := parseDate(departure, now.Location())
	if !ok || dep.Before(today) {
		dep = today.AddDate(0, 0, 7)
	}

	rd, ok := parseDate(ret, now.Location())
	if !ok || rd.Before(today) {
		rd = today.AddDate(0, 0, 14)
	}

	if rd.Before(dep) {
		rd = dep.AddDate(0, 0, 7)
	}

	return dep.Format(dateLayout), rd.Format(dateLayout)
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp, truncated
// to its date part.
func parseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.In(loc)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), true
	}
	return time.Time{}, false
}
