package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/awest/budgeteer/internal/cli"
	"github.com/awest/budgeteer/internal/model"
	"github.com/spf13/cobra"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage monthly budget limits",
		Long: `Set, list, and delete monthly spending limits per category. A
category has at most one limit per month; setting it again replaces
the amount.`,
	}

	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(listBudgetsCmd())
	cmd.AddCommand(deleteBudgetCmd())

	return cmd
}

func setBudgetCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Set a monthly spending limit for a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			if month == "" {
				month = currentMonth()
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat, err := resolveCategory(ctx, store, args[0])
			if err != nil {
				return err
			}

			limit, err := store.SetBudgetLimit(ctx, &model.BudgetLimit{
				CategoryID: cat.ID,
				Month:      month,
				Amount:     amount,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Set %s budget for %q to %s", limit.Month, cat.Name, limit.Amount.StringFixed(2))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "budget month YYYY-MM (default: current month)")

	return cmd
}

func listBudgetsCmd() *cobra.Command {
	var (
		month string
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List budget limits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var limits []model.BudgetLimit
			if all {
				limits, err = store.GetAllBudgetLimits(ctx)
			} else {
				if month == "" {
					month = currentMonth()
				}
				limits, err = store.ListBudgetLimits(ctx, month)
			}
			if err != nil {
				return fmt.Errorf("failed to list budget limits: %w", err)
			}

			if len(limits) == 0 {
				fmt.Println(cli.InfoStyle.Render("No budget limits found. Use 'budgeteer budget set' to create one."))
				return nil
			}

			categories, err := store.ListCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}
			names := make(map[int]string, len(categories))
			for _, cat := range categories {
				names[cat.ID] = cat.Name
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("Month"),
				cli.BoldStyle.Render("Category"),
				cli.BoldStyle.Render("Limit"),
				cli.BoldStyle.Render("ID"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 7),
				strings.Repeat("-", 15),
				strings.Repeat("-", 10),
				strings.Repeat("-", 36))

			for _, limit := range limits {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					limit.Month,
					names[limit.CategoryID],
					limit.Amount.StringFixed(2),
					limit.ID)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "budget month YYYY-MM (default: current month)")
	cmd.Flags().BoolVar(&all, "all", false, "list limits for every month")

	return cmd
}

func deleteBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a budget limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteBudgetLimit(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted budget limit %s", args[0])))
			return nil
		},
	}
}
