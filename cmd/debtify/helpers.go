package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/debtify/debtify/internal/cli"
	"github.com/debtify/debtify/internal/common"
	"github.com/debtify/debtify/internal/config"
	"github.com/debtify/debtify/internal/model"
	"github.com/debtify/debtify/internal/storage"
)

// openStore opens the ledger database, applying pending migrations and
// seeding default categories on first use. Failures here are environment
// problems rather than bad input, so they carry a user-facing message.
func openStore(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.DatabasePath()

	store, err := storage.New(dbPath)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("cannot open the ledger at %s", dbPath), err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, common.NewUserError(fmt.Sprintf("the ledger at %s cannot be upgraded", dbPath), err)
	}

	if err := store.SeedDefaults(ctx); err != nil {
		_ = store.Close()
		return nil, common.NewUserError("failed to seed the default categories", err)
	}

	return store, nil
}

// renderError formats a command failure for the terminal. Errors carrying a
// user-facing message print it with the cause; everything else prints as is.
func renderError(err error) string {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return cli.FormatError(userErr.Error())
	}
	return cli.FormatError(err.Error())
}

// filterFlags holds the shared date-range/kind/category/search flag set.
type filterFlags struct {
	from     string
	to       string
	kind     string
	search   string
	category int64
}

// register attaches the filter flags to a command.
func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "start date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "end date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.kind, "kind", "", "filter by kind (expense, income)")
	cmd.Flags().Int64Var(&f.category, "category", 0, "filter by category id")
	cmd.Flags().StringVar(&f.search, "search", "", "substring match on description or category name")
}

// toFilter converts flag values into a transaction filter.
func (f *filterFlags) toFilter(cmd *cobra.Command) (model.TransactionFilter, error) {
	var filter model.TransactionFilter

	if f.from != "" {
		from, err := model.ParseDate(f.from)
		if err != nil {
			return filter, fmt.Errorf("invalid --from: %w", err)
		}
		filter.From = &from
	}
	if f.to != "" {
		to, err := model.ParseDate(f.to)
		if err != nil {
			return filter, fmt.Errorf("invalid --to: %w", err)
		}
		filter.To = &to
	}
	if f.kind != "" {
		kind, err := model.ParseKind(f.kind)
		if err != nil {
			return filter, fmt.Errorf("invalid --kind: %w", err)
		}
		filter.Kind = &kind
	}
	if cmd.Flags().Changed("category") {
		id := f.category
		filter.CategoryID = &id
	}
	filter.Text = f.search

	return filter, nil
}

// parseID parses a positional id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// confirm prompts for a yes/no answer on in, defaulting to no. Prompts
// guard destructive actions, so they render in the warning style.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", cli.WarningStyle.Render(prompt))

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
