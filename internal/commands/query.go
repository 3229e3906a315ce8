package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vamshi455/bank-rag-system/internal/config"
	"github.com/vamshi455/bank-rag-system/internal/query"
	"github.com/vamshi455/bank-rag-system/internal/store"
)

func newQueryCommand() *cobra.Command {
	var dir string
	var flags querySpecFlags

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Filter the ledger and total the matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, _, err := loadProject(dir)
			if err != nil {
				return err
			}
			return runQuery(absDir, &flags)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	addSpecFlags(cmd, &flags)

	return cmd
}

func addSpecFlags(cmd *cobra.Command, flags *querySpecFlags) {
	cmd.Flags().StringVar(&flags.merchant, "merchant", "", "case-insensitive merchant substring")
	cmd.Flags().StringVar(&flags.from, "from", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&flags.to, "to", "", "end date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&flags.min, "min", "", "minimum signed amount (e.g. -100.00)")
	cmd.Flags().StringVar(&flags.max, "max", "", "maximum signed amount")
}

func runQuery(projectDir string, flags *querySpecFlags) error {
	spec, err := flags.spec()
	if err != nil {
		return err
	}

	st, err := store.Load(projectDir)
	if err != nil {
		return err
	}

	aliases, err := config.LoadAliases(filepath.Join(projectDir, config.AliasFileName))
	if err != nil {
		return err
	}

	res, err := query.Run(st, spec, aliases)
	if err != nil {
		return err
	}

	for _, txn := range res.Matches {
		fmt.Printf("%s  %10s  %s\n",
			txn.Date.Format("2006-01-02"),
			txn.Amount().StringFixed(2),
			txn.Description)
	}
	fmt.Printf("%d of %d transactions, total %s\n", res.Count, st.Len(), res.Total().StringFixed(2))
	return nil
}
