package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vamshi455/bank-rag-system/internal/config"
	"github.com/vamshi455/bank-rag-system/internal/query"
	"github.com/vamshi455/bank-rag-system/internal/report"
	"github.com/vamshi455/bank-rag-system/internal/store"
)

func newReportCommand() *cobra.Command {
	var dir string
	var flags querySpecFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize income, expenses, and categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, cfg, err := loadProject(dir)
			if err != nil {
				return err
			}
			return runReport(absDir, cfg, &flags)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	cmd.Flags().StringVar(&flags.from, "from", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&flags.to, "to", "", "end date (YYYY-MM-DD, inclusive)")

	return cmd
}

func runReport(projectDir string, cfg *config.Config, flags *querySpecFlags) error {
	spec, err := flags.spec()
	if err != nil {
		return err
	}

	st, err := store.Load(projectDir)
	if err != nil {
		return err
	}

	res, err := query.Run(st, spec, nil)
	if err != nil {
		return err
	}

	summary := report.Summarize(res.Matches)
	fmt.Printf("Transactions: %d\n", summary.Count)
	fmt.Printf("Income:       %s\n", summary.Income().StringFixed(2))
	fmt.Printf("Expenses:     %s\n", summary.Expenses().StringFixed(2))
	fmt.Printf("Net:          %s\n", summary.Net().StringFixed(2))
	fmt.Printf("Average:      %s\n", summary.Average().StringFixed(2))

	months := report.ByMonth(res.Matches)
	if len(months) > 0 {
		fmt.Println("\nBy month:")
		for _, m := range months {
			fmt.Printf("  %s  income %10s  expenses %10s  (%d txns)\n",
				m.Month,
				centsString(m.IncomeCents),
				centsString(m.ExpenseCents),
				m.Count)
		}
	}

	var custom []report.CategoryRule
	for _, rule := range cfg.Categories {
		custom = append(custom, report.CategoryRule{Name: rule.Name, Keywords: rule.Keywords})
	}
	cats := report.NewCategorizer(custom).ByCategory(res.Matches)
	if len(cats) > 0 {
		fmt.Println("\nBy category:")
		for _, c := range cats {
			fmt.Printf("  %-15s %10s  (%d txns)\n", c.Category, centsString(c.TotalCents), c.Count)
		}
	}
	return nil
}

func centsString(cents int64) string {
	neg := ""
	if cents < 0 {
		neg = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", neg, cents/100, cents%100)
}
