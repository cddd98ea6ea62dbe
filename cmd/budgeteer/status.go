package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/awest/budgeteer/internal/cli"
	"github.com/awest/budgeteer/internal/export"
	"github.com/awest/budgeteer/internal/model"
	"github.com/awest/budgeteer/internal/report"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func budgetStatusCmd() *cobra.Command {
	var (
		month        string
		thresholdStr string
		exportFormat string
		outputPath   string
		warningsOnly bool
	)

	cmd := &cobra.Command{
		Use:   "budget-status",
		Short: "Compare spending against budget limits",
		Long: `Show, per category, how much of the month's budget limit has been
spent. Categories at or past the warning threshold are flagged;
spending in categories without a limit is reported as unbudgeted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if month == "" {
				month = currentMonth()
			}

			opts := report.EvaluateOptions{NearLimitThreshold: report.DefaultNearLimitThreshold}
			if thresholdStr != "" {
				threshold, err := parseThreshold(thresholdStr)
				if err != nil {
					return err
				}
				opts.NearLimitThreshold = threshold
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			statuses, err := report.ComputeBudgetStatuses(ctx, store, month, opts)
			if err != nil {
				return err
			}

			if warningsOnly {
				statuses = report.Warnings(statuses)
			}

			if exportFormat != "" {
				return exportStatuses(os.Stdout, statuses, exportFormat, outputPath)
			}

			if len(statuses) == 0 {
				fmt.Println(cli.InfoStyle.Render("Nothing to report for " + month + "."))
				return nil
			}

			fmt.Println(cli.FormatTitle("Budget status for " + month))
			printStatuses(os.Stdout, statuses)
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month YYYY-MM (default: current month)")
	cmd.Flags().BoolVar(&warningsOnly, "warnings-only", false, "show only categories near or over their limit")
	cmd.Flags().StringVar(&thresholdStr, "threshold", "", "near-limit warning threshold, above 0 and at most 1 (default: 0.8)")
	cmd.Flags().StringVar(&exportFormat, "export", "", "export format (csv, json)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the export to a file instead of stdout")

	return cmd
}

// parseThreshold parses and range-checks a --threshold value. Zero is
// rejected along with everything else outside (0, 1]: with a zero
// threshold every budgeted category would flag near_limit before any
// spending, which is never what the flag means.
func parseThreshold(s string) (decimal.Decimal, error) {
	threshold, err := parseAmount(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !threshold.IsPositive() || threshold.GreaterThan(oneDecimal) {
		return decimal.Zero, fmt.Errorf("threshold %s out of range (want above 0 and at most 1)", threshold)
	}
	return threshold, nil
}

func exportStatuses(fallback io.Writer, statuses []model.BudgetStatus, exportFormat, outputPath string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	w, closeOutput, err := outputWriter(outputPath, fallback)
	if err != nil {
		return err
	}

	switch format {
	case export.FormatCSV:
		err = export.WriteStatusesCSV(w, statuses)
	case export.FormatJSON:
		err = export.WriteStatusesJSON(w, statuses)
	}
	if cerr := closeOutput(); err == nil {
		err = cerr
	}
	return err
}

func printStatuses(out io.Writer, statuses []model.BudgetStatus) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.BoldStyle.Render("Category"),
		cli.BoldStyle.Render("Spent"),
		cli.BoldStyle.Render("Limit"),
		cli.BoldStyle.Render("Remaining"),
		cli.BoldStyle.Render("Used"),
		cli.BoldStyle.Render("Status"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 15),
		strings.Repeat("-", 10),
		strings.Repeat("-", 10),
		strings.Repeat("-", 10),
		strings.Repeat("-", 6),
		strings.Repeat("-", 10))

	for _, st := range statuses {
		limit, remaining, used := "-", "-", "-"
		if st.Limit != nil {
			limit = st.Limit.StringFixed(2)
		}
		if st.Remaining != nil {
			remaining = st.Remaining.StringFixed(2)
		}
		switch {
		case st.Infinite:
			used = "∞"
		case st.Utilization != nil:
			used = st.Utilization.Shift(2).StringFixed(1) + "%"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			st.CategoryName,
			st.Spent.StringFixed(2),
			limit,
			remaining,
			used,
			cli.StyleClassification(st.Classification))
	}
}
