// Package export renders derived report data as CSV or JSON. It is
// pure presentation: amounts are written as exact decimal strings,
// never as binary floats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/awest/budgeteer/internal/model"
	"github.com/shopspring/decimal"
)

// Format selects an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format token.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want csv or json)", s)
	}
}

// WriteSummaryCSV writes a period summary as CSV: one row per category
// with expenses, followed by the period totals. Category names come
// from the supplied id-to-name map; an unknown id falls back to the
// numeric id.
func WriteSummaryCSV(w io.Writer, summary *model.PeriodSummary, names map[int]string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"section", "category", "amount"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, id := range sortedCategoryIDs(summary.ExpenseByCategory) {
		row := []string{"expense", categoryName(names, id), summary.ExpenseByCategory[id].String()}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	totals := [][]string{
		{"total", "income", summary.TotalIncome.String()},
		{"total", "expense", summary.TotalExpense.String()},
		{"total", "net", summary.Net.String()},
	}
	for _, row := range totals {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteStatusesCSV writes budget statuses as CSV, one row per
// category. Missing values (no limit, infinite utilization) render as
// empty cells.
func WriteStatusesCSV(w io.Writer, statuses []model.BudgetStatus) error {
	cw := csv.NewWriter(w)

	header := []string{"category", "month", "spent", "limit", "remaining", "utilization", "classification"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, st := range statuses {
		row := []string{
			st.CategoryName,
			st.Month,
			st.Spent.String(),
			optionalDecimal(st.Limit),
			optionalDecimal(st.Remaining),
			utilizationCell(st),
			string(st.Classification),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func sortedCategoryIDs(expenses map[int]decimal.Decimal) []int {
	ids := make([]int, 0, len(expenses))
	for id := range expenses {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func categoryName(names map[int]string, id int) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("category %d", id)
}

func optionalDecimal(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func utilizationCell(st model.BudgetStatus) string {
	if st.Infinite {
		return "inf"
	}
	return optionalDecimal(st.Utilization)
}
