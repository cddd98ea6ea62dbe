// Package report implements the budget-status and reporting engine:
// period resolution, transaction aggregation by category, and
// evaluation of spending against configured budget limits. Everything
// here is a pure function over a read snapshot of the ledger store.
package report

import (
	"fmt"
	"time"

	"github.com/awest/budgeteer/internal/common"
)

// MonthFormat is the wire format for month tokens.
const MonthFormat = "2006-01"

// Period is an inclusive calendar date range over which transactions
// are aggregated. Construct with NewPeriod or ParseMonth so the
// start ≤ end invariant holds.
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod builds a period from explicit start and end dates,
// inclusive on both ends. Time-of-day components are dropped.
func NewPeriod(start, end time.Time) (Period, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if start.After(end) {
		return Period{}, fmt.Errorf("%w: start date %s is after end date %s",
			common.ErrInvalidPeriod, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return Period{Start: start, End: end}, nil
}

// ParseMonth resolves a YYYY-MM token to the first-through-last
// calendar day of that month. Month length (28, 29, 30 or 31 days,
// leap years included) falls out of time.Date normalization.
func ParseMonth(token string) (Period, error) {
	t, err := time.Parse(MonthFormat, token)
	if err != nil {
		return Period{}, fmt.Errorf("%w: malformed month token %q", common.ErrInvalidPeriod, token)
	}

	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return Period{Start: start, End: end}, nil
}

// ParseDate parses a YYYY-MM-DD CLI argument.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: malformed date %q", common.ErrInvalidPeriod, s)
	}
	return d, nil
}

// Contains reports whether a date falls within the period.
func (p Period) Contains(d time.Time) bool {
	d = truncateToDay(d)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Days returns the number of calendar days the period covers.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// Months returns the YYYY-MM tokens the period spans, in order.
// Budget limits are defined per calendar month, so ranges must be
// evaluated month by month and never merged arithmetically.
func (p Period) Months() []string {
	var months []string
	cur := time.Date(p.Start.Year(), p.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(p.End) {
		months = append(months, cur.Format(MonthFormat))
		cur = cur.AddDate(0, 1, 0)
	}
	return months
}

func (p Period) String() string {
	return fmt.Sprintf("%s..%s", p.Start.Format(time.DateOnly), p.End.Format(time.DateOnly))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
