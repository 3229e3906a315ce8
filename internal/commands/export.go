package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vamshi455/bank-rag-system/internal/config"
	"github.com/vamshi455/bank-rag-system/internal/model"
	"github.com/vamshi455/bank-rag-system/internal/query"
	"github.com/vamshi455/bank-rag-system/internal/store"
)

func newExportCommand() *cobra.Command {
	var dir string
	var output string
	var flags querySpecFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export matching transactions as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, _, err := loadProject(dir)
			if err != nil {
				return err
			}
			return runExport(absDir, &flags, output)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	addSpecFlags(cmd, &flags)

	return cmd
}

func runExport(projectDir string, flags *querySpecFlags, output string) error {
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

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	if err := writeExport(w, res.Matches); err != nil {
		return err
	}

	if output != "" {
		fmt.Printf("Exported %d transactions to %s\n", res.Count, output)
	}
	return nil
}

// writeExport writes transactions back out in the input shape:
// date, original description, amount in major units. Values round-trip
// exactly even though formatting may differ from the source file.
func writeExport(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"date", "description", "amount"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		row := []string{
			txn.Date.Format("2006-01-02"),
			txn.Description,
			txn.Amount().StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
