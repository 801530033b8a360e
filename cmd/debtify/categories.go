package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/debtify/debtify/internal/cli"
	"github.com/debtify/debtify/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage transaction categories",
		Long:  `List, add, update, and delete the categories used to group transactions.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var kind *model.Kind
			if kindFlag != "" {
				k, err := model.ParseKind(kindFlag)
				if err != nil {
					return fmt.Errorf("invalid --kind: %w", err)
				}
				kind = &k
			}

			categories, err := store.ListCategories(ctx, kind)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No categories found. Use 'debtify categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Kind"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 24),
				strings.Repeat("-", 8))

			for _, cat := range categories {
				fmt.Fprintf(w, "%d\t%s\t%s\n", cat.ID, cat.Name, renderKind(cat.Kind))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", "", "show only one kind (expense, income)")
	return cmd
}

func addCategoryCmd() *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kind, err := model.ParseKind(kindFlag)
			if err != nil {
				return fmt.Errorf("invalid --kind: %w", err)
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat, err := store.CreateCategory(ctx, args[0], kind)
			if err != nil {
				return fmt.Errorf("failed to add category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s category %q (id %d)", cat.Kind, cat.Name, cat.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", string(model.KindExpense), "category kind (expense, income)")
	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var (
		nameFlag string
		kindFlag string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename or re-kind a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			// Start from the stored record so unchanged fields survive.
			cat, err := store.GetCategory(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to load category: %w", err)
			}

			name := cat.Name
			if cmd.Flags().Changed("name") {
				name = nameFlag
			}
			kind := cat.Kind
			if cmd.Flags().Changed("kind") {
				kind, err = model.ParseKind(kindFlag)
				if err != nil {
					return fmt.Errorf("invalid --kind: %w", err)
				}
			}

			if err := store.UpdateCategory(ctx, id, name, kind); err != nil {
				return fmt.Errorf("failed to update category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated category %d to %s %q", id, kind, name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "", "new category name")
	cmd.Flags().StringVar(&kindFlag, "kind", "", "new category kind (expense, income)")
	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long: `Delete a category. Transactions that reference it are kept and
become uncategorized.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
				"Delete this category? Its transactions will become uncategorized.") {
				fmt.Println(cli.SubtleStyle.Render("Aborted."))
				return nil
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteCategory(ctx, id); err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted category %d", id)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// renderKind colors a kind for table output.
func renderKind(k model.Kind) string {
	if k == model.KindIncome {
		return cli.IncomeStyle.Render(string(k))
	}
	return cli.ExpenseStyle.Render(string(k))
}
