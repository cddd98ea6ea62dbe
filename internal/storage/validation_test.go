package storage

import (
	"testing"
	"time"
)

// A transaction dated "now" must validate in every timezone. With the
// boundary pinned to UTC, a zone whose calendar date trails UTC's
// (any western offset in the evening) rejected same-day entries as
// future-dated.
func TestValidateTransaction_TodayBehindUTC(t *testing.T) {
	// Pick an offset that puts the local calendar date one day behind
	// UTC right now, regardless of when the test runs.
	offset := -(time.Now().UTC().Hour() + 1)

	original := time.Local
	time.Local = time.FixedZone("WEST", offset*60*60)
	t.Cleanup(func() { time.Local = original })

	cat := 1
	txn := newExpense(t, "2025-03-01", "10.00", cat)
	txn.Date = time.Now()

	if err := validateTransaction(txn); err != nil {
		t.Errorf("transaction dated now rejected: %v", err)
	}
}

func TestValidateTransaction_TomorrowStillRejected(t *testing.T) {
	cat := 1
	txn := newExpense(t, "2025-03-01", "10.00", cat)
	txn.Date = time.Now().AddDate(0, 0, 1)

	if err := validateTransaction(txn); err == nil {
		t.Error("expected a future-date rejection for tomorrow")
	}
}
