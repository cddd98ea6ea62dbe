package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/awest/budgeteer/internal/cli"
	"github.com/awest/budgeteer/internal/export"
	"github.com/awest/budgeteer/internal/model"
	"github.com/awest/budgeteer/internal/report"
	"github.com/awest/budgeteer/internal/service"
	"github.com/spf13/cobra"
)

// reportFlags holds the options shared by every report subcommand.
type reportFlags struct {
	categoryName string
	exportFormat string
	outputPath   string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.categoryName, "category", "c", "", "restrict expenses to one category")
	cmd.Flags().StringVar(&f.exportFormat, "export", "", "export format (csv, json)")
	cmd.Flags().StringVarP(&f.outputPath, "output", "o", "", "write the export to a file instead of stdout")
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize income and spending over a period",
	}

	cmd.AddCommand(monthlyReportCmd())
	cmd.AddCommand(yearlyReportCmd())
	cmd.AddCommand(customReportCmd())
	cmd.AddCommand(summaryReportCmd())

	return cmd
}

func monthlyReportCmd() *cobra.Command {
	var (
		flags reportFlags
		month string
	)

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Report on a single calendar month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if month == "" {
				month = currentMonth()
			}
			period, err := report.ParseMonth(month)
			if err != nil {
				return err
			}
			return runReport(cmd.Context(), os.Stdout, "Monthly report for "+month, period, flags, true)
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month YYYY-MM (default: current month)")
	flags.register(cmd)

	return cmd
}

func yearlyReportCmd() *cobra.Command {
	var (
		flags reportFlags
		year  int
	)

	cmd := &cobra.Command{
		Use:   "yearly",
		Short: "Report on a calendar year",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if year == 0 {
				year = time.Now().Year()
			}
			start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
			end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
			period, err := report.NewPeriod(start, end)
			if err != nil {
				return err
			}
			return runReport(cmd.Context(), os.Stdout, "Yearly report for "+strconv.Itoa(year), period, flags, false)
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "year YYYY (default: current year)")
	flags.register(cmd)

	return cmd
}

func customReportCmd() *cobra.Command {
	var (
		flags    reportFlags
		startStr string
		endStr   string
	)

	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Report on an arbitrary inclusive date range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, err := report.ParseDate(startStr)
			if err != nil {
				return err
			}
			end, err := report.ParseDate(endStr)
			if err != nil {
				return err
			}
			period, err := report.NewPeriod(start, end)
			if err != nil {
				return err
			}
			return runReport(cmd.Context(), os.Stdout, "Report for "+period.String(), period, flags, true)
		},
	}

	cmd.Flags().StringVar(&startStr, "start-date", "", "range start YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&endStr, "end-date", "", "range end YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("start-date")
	_ = cmd.MarkFlagRequired("end-date")
	flags.register(cmd)

	return cmd
}

func summaryReportCmd() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Report on everything recorded so far",
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
			period, err := report.NewPeriod(start, time.Now())
			if err != nil {
				return err
			}
			return runReport(cmd.Context(), os.Stdout, "All-time summary", period, flags, false)
		},
	}

	flags.register(cmd)

	return cmd
}

// runReport computes the period summary and renders it to out. When
// withBudgets is set, a per-month budget performance section follows
// the summary: budget limits are defined per calendar month, so a
// range spanning several months gets one section per month rather
// than a merged comparison.
func runReport(ctx context.Context, out io.Writer, title string, period report.Period, flags reportFlags, withBudgets bool) error {
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var categoryFilter []int
	if flags.categoryName != "" {
		cat, err := resolveCategory(ctx, store, flags.categoryName)
		if err != nil {
			return err
		}
		categoryFilter = []int{cat.ID}
	}

	summary, err := report.ComputePeriodSummary(ctx, store, period, categoryFilter)
	if err != nil {
		return err
	}

	names, err := categoryNames(ctx, store)
	if err != nil {
		return err
	}

	if flags.exportFormat != "" {
		return exportSummary(out, summary, names, flags)
	}

	fmt.Fprintln(out, cli.FormatTitle(title))
	printSummary(out, summary, names)

	if withBudgets {
		return printBudgetPerformance(ctx, out, store, period)
	}
	return nil
}

// printBudgetPerformance renders one budget status table per calendar
// month the period touches. Months with neither spending nor limits
// are skipped.
func printBudgetPerformance(ctx context.Context, out io.Writer, store service.Storage, period report.Period) error {
	for _, month := range period.Months() {
		statuses, err := report.ComputeBudgetStatuses(ctx, store, month, report.EvaluateOptions{})
		if err != nil {
			return err
		}
		if len(statuses) == 0 {
			continue
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, cli.BoldStyle.Render("Budget performance for "+month))
		printStatuses(out, statuses)
	}
	return nil
}

func categoryNames(ctx context.Context, store service.Storage) (map[int]string, error) {
	categories, err := store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	names := make(map[int]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}
	return names, nil
}

// outputWriter resolves the export destination: the given path, or
// the fallback writer when no path is set. The returned func closes
// the file if one was opened.
func outputWriter(path string, fallback io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return fallback, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

func exportSummary(fallback io.Writer, summary *model.PeriodSummary, names map[int]string, flags reportFlags) error {
	format, err := export.ParseFormat(flags.exportFormat)
	if err != nil {
		return err
	}

	w, closeOutput, err := outputWriter(flags.outputPath, fallback)
	if err != nil {
		return err
	}

	switch format {
	case export.FormatCSV:
		err = export.WriteSummaryCSV(w, summary, names)
	case export.FormatJSON:
		err = export.WriteSummaryJSON(w, summary, names)
	}
	if cerr := closeOutput(); err == nil {
		err = cerr
	}
	return err
}

func printSummary(out io.Writer, summary *model.PeriodSummary, names map[int]string) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	fmt.Fprintf(w, "Period\t%s .. %s\n",
		summary.Start.Format(model.DateOnly),
		summary.End.Format(model.DateOnly))
	fmt.Fprintf(w, "Total income\t%s\n", summary.TotalIncome.StringFixed(2))
	fmt.Fprintf(w, "Total expenses\t%s\n", summary.TotalExpense.StringFixed(2))

	net := summary.Net.StringFixed(2)
	if summary.Net.IsNegative() {
		net = cli.ErrorStyle.Render(net)
	} else {
		net = cli.SuccessStyle.Render(net)
	}
	fmt.Fprintf(w, "Net\t%s\n", net)

	if len(summary.ExpenseByCategory) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s\t%s\n",
		cli.BoldStyle.Render("Category"),
		cli.BoldStyle.Render("Spent"))
	fmt.Fprintf(w, "%s\t%s\n",
		strings.Repeat("-", 15),
		strings.Repeat("-", 10))

	for _, line := range expenseLines(summary, names) {
		fmt.Fprintf(w, "%s\t%s\n", line.name, line.amount)
	}
}

type expenseLine struct {
	name   string
	amount string
}

// expenseLines orders the per-category breakdown by amount, largest
// first, so the biggest spending bucket leads the table.
func expenseLines(summary *model.PeriodSummary, names map[int]string) []expenseLine {
	ids := make([]int, 0, len(summary.ExpenseByCategory))
	for id := range summary.ExpenseByCategory {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := summary.ExpenseByCategory[ids[i]], summary.ExpenseByCategory[ids[j]]
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return ids[i] < ids[j]
	})

	lines := make([]expenseLine, 0, len(ids))
	for _, id := range ids {
		name := names[id]
		if name == "" {
			name = fmt.Sprintf("category %d", id)
		}
		lines = append(lines, expenseLine{
			name:   name,
			amount: summary.ExpenseByCategory[id].StringFixed(2),
		})
	}

	return lines
}
