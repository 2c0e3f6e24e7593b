package app_test

import (
	"testing"
	"time"

	"github.com/mandatedisrael/basefly/internal/app"
)

var testNow = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func day(offset int) string {
	return testNow.AddDate(0, 0, offset).Format("2006-01-02")
}

func TestNormalizeDates_BadDepartureInputs(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"literal null", "null"},
		{"literal NULL", "NULL"},
		{"garbage", "next tuesday"},
		{"past", "2020-01-01"},
		{"yesterday", day(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dep, _ := app.NormalizeDates(tc.in, "", testNow)
			if dep != day(7) {
				t.Fatalf("departure %q -> %s, want %s", tc.in, dep, day(7))
			}
		})
	}
}

func TestNormalizeDates_BadReturnInputs(t *testing.T) {
	for _, in := range []string{"", "null", "not-a-date", "2019-12-31"} {
		_, ret := app.NormalizeDates("", in, testNow)
		if ret != day(14) {
			t.Fatalf("return %q -> %s, want %s", in, ret, day(14))
		}
	}
}

func TestNormalizeDates_ValidFutureKept(t *testing.T) {
	dep, ret := app.NormalizeDates(day(30), day(40), testNow)
	if dep != day(30) || ret != day(40) {
		t.Fatalf("future dates must be kept: got %s/%s", dep, ret)
	}
}

func TestNormalizeDates_TodayKept(t *testing.T) {
	dep, _ := app.NormalizeDates(day(0), day(40), testNow)
	if dep != day(0) {
		t.Fatalf("same-day departure must be kept: got %s", dep)
	}
}

func TestNormalizeDates_TimestampTruncated(t *testing.T) {
	dep, _ := app.NormalizeDates("2026-04-01T10:30:00Z", day(40), testNow)
	if dep != "2026-04-01" {
		t.Fatalf("timestamp should truncate to date: got %s", dep)
	}
}

func TestNormalizeDates_ReturnBeforeDeparture(t *testing.T) {
	// valid dates, wrong order: return resets to departure + 7
	dep, ret := app.NormalizeDates(day(30), day(20), testNow)
	if dep != day(30) {
		t.Fatalf("departure changed: %s", dep)
	}
	if ret != day(37) {
		t.Fatalf("return %s, want departure+7 = %s", ret, day(37))
	}
}

func TestNormalizeDates_ReplacedDepartureAfterValidReturn(t *testing.T) {
	// bad departure -> today+7; return today+3 is valid but now before
	// departure -> reset to departure+7
	dep, ret := app.NormalizeDates("garbage", day(3), testNow)
	if dep != day(7) || ret != day(14) {
		t.Fatalf("got %s/%s, want %s/%s", dep, ret, day(7), day(14))
	}
}

// Invariant: for any inputs, today <= departure <= return.
func TestNormalizeDates_InvariantHolds(t *testing.T) {
	inputs := []string{
		"", "null", "NaN", "2019-01-01", "2026-03-09", "2026-03-10",
		"2026-03-11", "2027-12-31", "2026-04-01T08:00:00Z", "soon", "0000-00-00",
	}
	today := day(0)
	for _, d := range inputs {
		for _, r := range inputs {
			dep, ret := app.NormalizeDates(d, r, testNow)
			if dep < today {
				t.Fatalf("(%q,%q): departure %s before today %s", d, r, dep, today)
			}
			if ret < dep {
				t.Fatalf("(%q,%q): return %s before departure %s", d, r, ret, dep)
			}
		}
	}
}
