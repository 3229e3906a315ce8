package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vamshi455/bank-rag-system/internal/auditlog"
	"github.com/vamshi455/bank-rag-system/internal/config"
	"github.com/vamshi455/bank-rag-system/internal/gitops"
	"github.com/vamshi455/bank-rag-system/internal/ingest"
	"github.com/vamshi455/bank-rag-system/internal/normalize"
	"github.com/vamshi455/bank-rag-system/internal/store"
)

func newIngestCommand() *cobra.Command {
	var dir string
	var profileName string

	cmd := &cobra.Command{
		Use:   "ingest [file]",
		Short: "Ingest a statement file, or scan the import directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, cfg, err := loadProject(dir)
			if err != nil {
				return err
			}

			file := ""
			if len(args) > 0 {
				file = args[0]
			}
			return runIngest(absDir, cfg, file, profileName)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	cmd.Flags().StringVar(&profileName, "profile", "", "bank profile (e.g. chase); default is header detection")

	return cmd
}

func runIngest(projectDir string, cfg *config.Config, file, profileName string) error {
	if profileName == "" {
		profileName = cfg.Ingest.DefaultProfile
	}

	var profile *ingest.Profile
	if profileName != "" {
		reg := ingest.DefaultRegistry()
		profile = reg.Get(profileName)
		if profile == nil {
			return fmt.Errorf("unknown bank profile %q (valid: %s)",
				profileName, strings.Join(reg.Names(), ", "))
		}
	}

	norm := normalize.New(cfg.Ingest.ExtraDateFormats...)

	// One file from the command line, or everything waiting in import/.
	type source struct {
		path    string
		name    string
		scanned bool
	}
	var sources []source
	if file != "" {
		sources = append(sources, source{path: file, name: filepath.Base(file)})
	} else {
		files, err := ingest.Scan(projectDir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println("Nothing to ingest: import/ is empty.")
			return nil
		}
		for _, fi := range files {
			sources = append(sources, source{path: fi.Path, name: fi.Name, scanned: true})
		}
	}

	st, err := store.Load(projectDir)
	if err != nil {
		return err
	}

	var logEntries []auditlog.Entry
	var ingestedNames []string
	var scannedNames []string
	var failed int

	for _, src := range sources {
		f, err := os.Open(src.path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", src.name, err)
			failed++
			continue
		}

		res, err := ingest.Ingest(f, ingest.Options{
			Profile:    profile,
			Normalizer: norm,
			SourceFile: src.name,
		})
		f.Close()
		if err != nil {
			// Structural failure: this file contributes nothing.
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", src.name, err)
			failed++
			continue
		}

		st.AppendAll(res.Transactions)
		ingestedNames = append(ingestedNames, src.name)

		// Always surface both counts; never claim success while
		// silently dropping rows.
		fmt.Printf("%s: %d transactions imported, %d rows skipped\n",
			src.name, len(res.Transactions), len(res.Errors))
		for _, rowErr := range res.Errors {
			fmt.Printf("  skipped %v\n", rowErr)
		}

		logEntries = append(logEntries, auditlog.Entry{
			Timestamp: time.Now().UTC(),
			File:      src.name,
			Imported:  len(res.Transactions),
			Skipped:   len(res.Errors),
		})

		if src.scanned {
			scannedNames = append(scannedNames, src.name)
		}
	}

	if len(ingestedNames) == 0 {
		return fmt.Errorf("no files ingested (%d failed)", failed)
	}

	if err := store.Save(projectDir, st); err != nil {
		return err
	}

	// Only a persisted ledger counts as ingested; a failed Save leaves
	// the files in import/ for the next run.
	for _, name := range scannedNames {
		if err := ingest.MarkProcessed(projectDir, name); err != nil {
			return err
		}
	}

	if cfg.Git.AutoCommit && gitops.IsRepo(projectDir) {
		hash, err := gitops.CommitAll(projectDir,
			"ingest: "+strings.Join(ingestedNames, ", "),
			cfg.Git.AuthorName, cfg.Git.AuthorEmail)
		if err != nil {
			return fmt.Errorf("committing ledger: %w", err)
		}
		for i := range logEntries {
			logEntries[i].CommitHash = hash
		}
		fmt.Printf("Committed ledger (%s)\n", hash)
	}

	if err := auditlog.Append(projectDir, logEntries); err != nil {
		return err
	}

	fmt.Printf("Ledger now holds %d transactions.\n", st.Len())
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}
