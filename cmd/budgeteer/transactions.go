package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/awest/budgeteer/internal/cli"
	"github.com/awest/budgeteer/internal/model"
	"github.com/awest/budgeteer/internal/service"
	"github.com/spf13/cobra"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
		Long:  `Record, list, update, and delete income and expense transactions.`,
	}

	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(listTxCmd())
	cmd.AddCommand(updateTxCmd())
	cmd.AddCommand(deleteTxCmd())

	return cmd
}

func addTxCmd() *cobra.Command {
	var (
		amountStr    string
		description  string
		categoryName string
		dateStr      string
		notes        string
	)

	cmd := &cobra.Command{
		Use:   "add <income|expense>",
		Short: "Record a transaction",
		Long: `Record an income or expense transaction. Expenses require a
category; income entries must not carry one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kind := model.TransactionKind(args[0])
			if kind != model.KindIncome && kind != model.KindExpense {
				return fmt.Errorf("invalid kind %q (want income or expense)", args[0])
			}

			amount, err := parseAmount(amountStr)
			if err != nil {
				return err
			}

			date := time.Now()
			if dateStr != "" {
				if date, err = parseDate(dateStr); err != nil {
					return err
				}
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txn := &model.Transaction{
				Date:        date,
				Kind:        kind,
				Amount:      amount,
				Description: description,
				Notes:       notes,
			}

			if categoryName != "" {
				cat, err := resolveCategory(ctx, store, categoryName)
				if err != nil {
					return err
				}
				txn.CategoryID = &cat.ID
			}

			if err := store.CreateTransaction(ctx, txn); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s of %s (%s)", kind, amount.StringFixed(2), txn.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&amountStr, "amount", "a", "", "transaction amount (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "transaction description (required)")
	cmd.Flags().StringVarP(&categoryName, "category", "c", "", "category name (required for expenses)")
	cmd.Flags().StringVar(&dateStr, "date", "", "transaction date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func listTxCmd() *cobra.Command {
	var (
		categoryName string
		kindStr      string
		startStr     string
		endStr       string
		limit        int
		lastWeek     bool
		lastMonth    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			filter := service.TransactionFilter{Limit: limit}

			switch {
			case lastWeek:
				start := time.Now().AddDate(0, 0, -7)
				filter.StartDate = &start
			case lastMonth:
				start := time.Now().AddDate(0, -1, 0)
				filter.StartDate = &start
			}

			if startStr != "" {
				start, err := parseDate(startStr)
				if err != nil {
					return err
				}
				filter.StartDate = &start
			}
			if endStr != "" {
				end, err := parseDate(endStr)
				if err != nil {
					return err
				}
				filter.EndDate = &end
			}
			if kindStr != "" {
				kind := model.TransactionKind(kindStr)
				if kind != model.KindIncome && kind != model.KindExpense {
					return fmt.Errorf("invalid kind %q (want income or expense)", kindStr)
				}
				filter.Kind = kind
			}
			if categoryName != "" {
				cat, err := resolveCategory(ctx, store, categoryName)
				if err != nil {
					return err
				}
				filter.CategoryID = &cat.ID
			}

			transactions, err := store.GetTransactions(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			if len(transactions) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions found."))
				return nil
			}

			return printTransactions(ctx, store, transactions)
		},
	}

	cmd.Flags().StringVarP(&categoryName, "category", "c", "", "filter by category name")
	cmd.Flags().StringVar(&kindStr, "kind", "", "filter by kind (income, expense)")
	cmd.Flags().StringVar(&startStr, "start-date", "", "include transactions on or after this date")
	cmd.Flags().StringVar(&endStr, "end-date", "", "include transactions on or before this date")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of transactions to show")
	cmd.Flags().BoolVar(&lastWeek, "last-week", false, "show the last 7 days")
	cmd.Flags().BoolVar(&lastMonth, "last-month", false, "show the last month")

	return cmd
}

func printTransactions(ctx context.Context, store service.Storage, transactions []model.Transaction) error {
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

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.BoldStyle.Render("Date"),
		cli.BoldStyle.Render("Kind"),
		cli.BoldStyle.Render("Amount"),
		cli.BoldStyle.Render("Category"),
		cli.BoldStyle.Render("Description"),
		cli.BoldStyle.Render("ID"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 10),
		strings.Repeat("-", 7),
		strings.Repeat("-", 10),
		strings.Repeat("-", 15),
		strings.Repeat("-", 25),
		strings.Repeat("-", 36))

	for _, txn := range transactions {
		category := ""
		if txn.CategoryID != nil {
			category = names[*txn.CategoryID]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			txn.Date.Format(model.DateOnly),
			string(txn.Kind),
			txn.Amount.StringFixed(2),
			category,
			txn.Description,
			txn.ID)
	}

	return nil
}

func updateTxCmd() *cobra.Command {
	var (
		amountStr    string
		description  string
		categoryName string
		dateStr      string
		notes        string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txn, err := store.GetTransactionByID(ctx, args[0])
			if err != nil {
				return err
			}

			if amountStr != "" {
				if txn.Amount, err = parseAmount(amountStr); err != nil {
					return err
				}
			}
			if dateStr != "" {
				if txn.Date, err = parseDate(dateStr); err != nil {
					return err
				}
			}
			if description != "" {
				txn.Description = description
			}
			if cmd.Flags().Changed("notes") {
				txn.Notes = notes
			}
			if categoryName != "" {
				cat, err := resolveCategory(ctx, store, categoryName)
				if err != nil {
					return err
				}
				txn.CategoryID = &cat.ID
			}

			if err := store.UpdateTransaction(ctx, txn); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated transaction %s", txn.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&amountStr, "amount", "a", "", "new amount")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVarP(&categoryName, "category", "c", "", "new category name")
	cmd.Flags().StringVar(&dateStr, "date", "", "new date YYYY-MM-DD")
	cmd.Flags().StringVar(&notes, "notes", "", "new notes")

	return cmd
}

func deleteTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteTransaction(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted transaction %s", args[0])))
			return nil
		},
	}
}
