package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/debtify/debtify/internal/cli"
	"github.com/debtify/debtify/internal/model"
	"github.com/debtify/debtify/internal/report"
)

const barWidth = 40

func reportCmd() *cobra.Command {
	var (
		fromFlag string
		toFlag   string
		kindFlag string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show per-category totals and the running balance",
		Long: `Render the two ledger reports for an optional date range: amounts
summed per category (as a bar chart) and the cumulative balance over
time. Uncategorized transactions appear only in the balance series.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var from, to *time.Time
			if fromFlag != "" {
				d, err := model.ParseDate(fromFlag)
				if err != nil {
					return fmt.Errorf("invalid --from: %w", err)
				}
				from = &d
			}
			if toFlag != "" {
				d, err := model.ParseDate(toFlag)
				if err != nil {
					return fmt.Errorf("invalid --to: %w", err)
				}
				to = &d
			}
			var kind *model.Kind
			if kindFlag != "" {
				k, err := model.ParseKind(kindFlag)
				if err != nil {
					return fmt.Errorf("invalid --kind: %w", err)
				}
				kind = &k
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			totals, err := store.CategoryTotals(ctx, from, to, kind)
			if err != nil {
				return fmt.Errorf("failed to compute category totals: %w", err)
			}
			renderCategoryChart(report.CategorySeries(totals))

			balance, err := store.RunningBalance(ctx, from, to)
			if err != nil {
				return fmt.Errorf("failed to compute running balance: %w", err)
			}
			renderBalanceSeries(report.BalanceSeries(balance))

			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "start date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "end date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&kindFlag, "kind", "", "restrict category totals to one kind (expense, income)")
	return cmd
}

// renderCategoryChart prints the category-name→total series as a text bar
// chart. The series arrives ordered by total descending, so the first point
// sets the scale.
func renderCategoryChart(points []report.SeriesPoint) {
	fmt.Println(cli.TitleStyle.Render("By category"))

	if len(points) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No data."))
		return
	}

	// Ratios are display-only; exactness lives in the series values.
	max := points[0].Value.Float64()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, p := range points {
		ratio := 0.0
		if max > 0 {
			ratio = p.Value.Float64() / max
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Label, p.Value, cli.Bar(ratio, barWidth))
	}
	_ = w.Flush()
}

// renderBalanceSeries prints the date→cumulative-balance series.
func renderBalanceSeries(points []report.SeriesPoint) {
	fmt.Println()
	fmt.Println(cli.TitleStyle.Render("Balance"))

	if len(points) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No data."))
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, p := range points {
		value := p.Value.String()
		if p.Value.IsPositive() {
			value = cli.IncomeStyle.Render(value)
		} else if !p.Value.IsZero() {
			value = cli.ExpenseStyle.Render(value)
		}
		fmt.Fprintf(w, "%s\t%s\n", p.Label, value)
	}
	_ = w.Flush()
}
