package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/awest/budgeteer/internal/model"
)

// summaryDoc is the JSON shape for a period summary. Amounts are
// strings so the exact decimal values survive the round trip.
type summaryDoc struct {
	Start    string        `json:"start"`
	End      string        `json:"end"`
	Income   string        `json:"total_income"`
	Expense  string        `json:"total_expense"`
	Net      string        `json:"net"`
	Expenses []expenseLine `json:"expenses_by_category"`
}

type expenseLine struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

type statusDoc struct {
	Category       string `json:"category"`
	Month          string `json:"month"`
	Spent          string `json:"spent"`
	Limit          string `json:"limit,omitempty"`
	Remaining      string `json:"remaining,omitempty"`
	Utilization    string `json:"utilization,omitempty"`
	Classification string `json:"classification"`
	Infinite       bool   `json:"infinite,omitempty"`
}

// WriteSummaryJSON writes a period summary as an indented JSON
// document. Category names come from the supplied id-to-name map.
func WriteSummaryJSON(w io.Writer, summary *model.PeriodSummary, names map[int]string) error {
	doc := summaryDoc{
		Start:    summary.Start.Format(model.DateOnly),
		End:      summary.End.Format(model.DateOnly),
		Income:   summary.TotalIncome.String(),
		Expense:  summary.TotalExpense.String(),
		Net:      summary.Net.String(),
		Expenses: []expenseLine{},
	}

	for _, id := range sortedCategoryIDs(summary.ExpenseByCategory) {
		doc.Expenses = append(doc.Expenses, expenseLine{
			Category: categoryName(names, id),
			Amount:   summary.ExpenseByCategory[id].String(),
		})
	}

	return writeIndented(w, doc)
}

// WriteStatusesJSON writes budget statuses as an indented JSON array.
func WriteStatusesJSON(w io.Writer, statuses []model.BudgetStatus) error {
	docs := make([]statusDoc, 0, len(statuses))
	for _, st := range statuses {
		docs = append(docs, statusDoc{
			Category:       st.CategoryName,
			Month:          st.Month,
			Spent:          st.Spent.String(),
			Limit:          optionalDecimal(st.Limit),
			Remaining:      optionalDecimal(st.Remaining),
			Utilization:    optionalDecimal(st.Utilization),
			Classification: string(st.Classification),
			Infinite:       st.Infinite,
		})
	}

	return writeIndented(w, docs)
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
