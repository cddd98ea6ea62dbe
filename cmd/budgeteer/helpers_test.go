package main

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	amount, err := parseAmount("123.45")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !amount.Equal(decimal.RequireFromString("123.45")) {
		t.Errorf("amount = %s, want 123.45", amount)
	}

	if _, err := parseAmount("twelve"); err == nil {
		t.Error("expected an error for a non-numeric amount")
	}
}

func TestParseDate(t *testing.T) {
	date, err := parseDate("2025-03-15")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if date.Year() != 2025 || date.Month() != 3 || date.Day() != 15 {
		t.Errorf("parsed %v, want 2025-03-15", date)
	}

	for _, bad := range []string{"03/15/2025", "2025-3-15", "2025-03"} {
		if _, err := parseDate(bad); err == nil {
			t.Errorf("expected an error for %q", bad)
		}
	}
}

func TestCurrentMonth(t *testing.T) {
	if ok := regexp.MustCompile(`^\d{4}-\d{2}$`).MatchString(currentMonth()); !ok {
		t.Errorf("currentMonth() = %q, want YYYY-MM", currentMonth())
	}
}
