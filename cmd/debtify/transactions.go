package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/debtify/debtify/internal/cli"
	"github.com/debtify/debtify/internal/model"
	"github.com/debtify/debtify/internal/money"
	"github.com/debtify/debtify/internal/report"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
		Long:  `Add, edit, delete, and list income and expense transactions.`,
	}

	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(editTxCmd())
	cmd.AddCommand(deleteTxCmd())
	cmd.AddCommand(showTxCmd())
	cmd.AddCommand(listTxCmd())

	return cmd
}

// txFlags holds the editable transaction fields shared by add and edit.
type txFlags struct {
	date     string
	kind     string
	amount   string
	desc     string
	category int64
}

func (f *txFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.kind, "kind", "", "transaction kind (expense, income)")
	cmd.Flags().StringVar(&f.amount, "amount", "", "positive amount, '.' or ',' decimal separator")
	cmd.Flags().Int64Var(&f.category, "category", 0, "category id (0 for none)")
	cmd.Flags().StringVar(&f.desc, "desc", "", "free-text description")
}

func addTxCmd() *cobra.Command {
	flags := &txFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			kind, err := model.ParseKind(flags.kind)
			if err != nil {
				return fmt.Errorf("invalid --kind: %w", err)
			}

			amount, err := money.ParseAmount(flags.amount)
			if err != nil {
				return fmt.Errorf("invalid --amount: %w", err)
			}

			date := time.Now().UTC().Truncate(24 * time.Hour)
			if flags.date != "" {
				date, err = model.ParseDate(flags.date)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
			}

			var categoryID *int64
			if cmd.Flags().Changed("category") && flags.category != 0 {
				id := flags.category
				categoryID = &id
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txn, err := store.CreateTransaction(ctx, model.Transaction{
				Date:        date,
				Kind:        kind,
				Amount:      amount,
				CategoryID:  categoryID,
				Description: flags.desc,
			})
			if err != nil {
				return fmt.Errorf("failed to add transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s of %s on %s (id %d)",
				txn.Kind, txn.Amount, model.FormatDate(txn.Date), txn.ID)))
			return nil
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func editTxCmd() *cobra.Command {
	flags := &txFlags{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing transaction",
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
			txn, err := store.GetTransaction(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to load transaction: %w", err)
			}

			if cmd.Flags().Changed("date") {
				txn.Date, err = model.ParseDate(flags.date)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
			}
			if cmd.Flags().Changed("kind") {
				txn.Kind, err = model.ParseKind(flags.kind)
				if err != nil {
					return fmt.Errorf("invalid --kind: %w", err)
				}
			}
			if cmd.Flags().Changed("amount") {
				txn.Amount, err = money.ParseAmount(flags.amount)
				if err != nil {
					return fmt.Errorf("invalid --amount: %w", err)
				}
			}
			if cmd.Flags().Changed("category") {
				if flags.category == 0 {
					txn.CategoryID = nil
				} else {
					categoryID := flags.category
					txn.CategoryID = &categoryID
				}
			}
			if cmd.Flags().Changed("desc") {
				txn.Description = flags.desc
			}

			if err := store.UpdateTransaction(ctx, *txn); err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated transaction %d", id)))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func deleteTxCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete this transaction?") {
				fmt.Println(cli.SubtleStyle.Render("Aborted."))
				return nil
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteTransaction(ctx, id); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted transaction %d", id)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func showTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single transaction",
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

			txn, err := store.GetTransaction(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to load transaction: %w", err)
			}

			category := "-"
			if txn.CategoryID != nil {
				cat, err := store.GetCategory(ctx, *txn.CategoryID)
				if err != nil {
					return fmt.Errorf("failed to load category: %w", err)
				}
				category = cat.Name
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "ID:\t%d\n", txn.ID)
			fmt.Fprintf(w, "Date:\t%s\n", model.FormatDate(txn.Date))
			fmt.Fprintf(w, "Kind:\t%s\n", renderKind(txn.Kind))
			fmt.Fprintf(w, "Amount:\t%s\n", txn.Amount)
			fmt.Fprintf(w, "Category:\t%s\n", category)
			fmt.Fprintf(w, "Description:\t%s\n", txn.Description)
			fmt.Fprintf(w, "Created:\t%s\n", txn.CreatedAt.Format(time.RFC3339))

			return nil
		},
	}
}

func listTxCmd() *cobra.Command {
	flags := &filterFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions with optional filters",
		Long: `List transactions newest first. Date bounds are inclusive; all
filters combine with AND. A summary of balance, income, and expense
over the listed set is printed below the table.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			filter, err := flags.toFilter(cmd)
			if err != nil {
				return err
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.FindTransactions(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to find transactions: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No transactions match."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Kind"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Description"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 10),
				strings.Repeat("-", 8),
				strings.Repeat("-", 10),
				strings.Repeat("-", 16),
				strings.Repeat("-", 24))

			for _, e := range entries {
				category := e.CategoryName
				if category == "" {
					category = "-"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					e.ID,
					model.FormatDate(e.Date),
					renderKind(e.Kind),
					e.Amount,
					category,
					e.Description)
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			summary := report.Summarize(entries)
			fmt.Printf("\nBalance: %s   Income: %s   Expense: %s\n",
				summary.Balance,
				cli.IncomeStyle.Render(summary.Income.String()),
				cli.ExpenseStyle.Render(summary.Expense.String()))

			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
