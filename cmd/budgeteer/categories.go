package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/awest/budgeteer/internal/cli"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense categories",
		Long:  `List, add, update, and delete the categories expenses are tracked under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.ListCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found. Use 'budgeteer categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Description"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 20),
				strings.Repeat("-", 40))

			for _, cat := range categories {
				desc := cat.Description
				if desc == "" {
					desc = cli.SubtleStyle.Render("(no description)")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", cat.ID, cat.Name, desc)
			}

			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var categoryDescription string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat, err := store.CreateCategory(ctx, args[0], categoryDescription)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created category %q (id %d)", cat.Name, cat.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&categoryDescription, "description", "d", "", "category description")

	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var (
		newName        string
		newDescription string
	)

	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Update a category's name or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if newName == "" && !cmd.Flags().Changed("description") {
				return fmt.Errorf("nothing to update: pass --name and/or --description")
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

			name := cat.Name
			if newName != "" {
				name = newName
			}
			description := cat.Description
			if cmd.Flags().Changed("description") {
				description = newDescription
			}

			if err := store.UpdateCategory(ctx, cat.ID, name, description); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated category %q", name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&newName, "name", "", "new category name")
	cmd.Flags().StringVarP(&newDescription, "description", "d", "", "new category description")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a category",
		Long:  `Delete a category. Deletion is refused while any transaction or budget limit still references it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat, err := resolveCategory(ctx, store, args[0])
			if err != nil {
				return err
			}

			if err := store.DeleteCategory(ctx, cat.ID); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted category %q", cat.Name)))
			return nil
		},
	}
}
