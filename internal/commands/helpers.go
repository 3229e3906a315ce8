package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/vamshi455/bank-rag-system/internal/config"
	"github.com/vamshi455/bank-rag-system/internal/normalize"
	"github.com/vamshi455/bank-rag-system/internal/query"
)

const cliDateFormat = "2006-01-02"

// loadProject resolves a ledger directory and loads its config.
func loadProject(dir string) (string, *config.Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, config.FileName))
	if err != nil {
		return "", nil, fmt.Errorf("loading %s (run 'bankstmt init'?): %w", config.FileName, err)
	}
	return absDir, cfg, nil
}

// querySpecFlags holds the raw filter flags shared by query, report,
// and export.
type querySpecFlags struct {
	merchant string
	from     string
	to       string
	min      string
	max      string
}

// spec parses the raw flags into a query.Spec. Dates are YYYY-MM-DD;
// amounts are decimal strings in major units.
func (f *querySpecFlags) spec() (query.Spec, error) {
	var q query.Spec
	q.Merchant = f.merchant

	var err error
	if f.from != "" {
		q.From, err = time.Parse(cliDateFormat, f.from)
		if err != nil {
			return query.Spec{}, fmt.Errorf("parsing --from %q: %w", f.from, err)
		}
	}
	if f.to != "" {
		q.To, err = time.Parse(cliDateFormat, f.to)
		if err != nil {
			return query.Spec{}, fmt.Errorf("parsing --to %q: %w", f.to, err)
		}
	}
	if f.min != "" {
		v, err := normalize.ParseAmountCents(f.min)
		if err != nil {
			return query.Spec{}, fmt.Errorf("parsing --min %q: %w", f.min, err)
		}
		q.MinCents = &v
	}
	if f.max != "" {
		v, err := normalize.ParseAmountCents(f.max)
		if err != nil {
			return query.Spec{}, fmt.Errorf("parsing --max %q: %w", f.max, err)
		}
		q.MaxCents = &v
	}
	return q, nil
}
