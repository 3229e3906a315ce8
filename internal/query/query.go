package query

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vamshi455/bank-rag-system/internal/model"
	"github.com/vamshi455/bank-rag-system/internal/store"
)

// ErrInvalidQuery is returned for malformed queries. A bad query is
// never silently reinterpreted.
var ErrInvalidQuery = errors.New("invalid query")

// Spec is an exact, deterministic filter. All set fields must hold
// (logical AND); zero-valued fields impose no constraint.
type Spec struct {
	// Merchant matches case-insensitive substrings of the normalized
	// description.
	Merchant string

	// Inclusive date bounds. Zero time means unbounded.
	From time.Time
	To   time.Time

	// Inclusive bounds on the signed amount in minor units.
	MinCents *int64
	MaxCents *int64
}

// Result is the outcome of running a Spec.
type Result struct {
	Matches    []model.Transaction // store order
	TotalCents int64
	Count      int
}

// Total returns the matched total as an exact decimal in major units.
func (r Result) Total() decimal.Decimal {
	return decimal.New(r.TotalCents, -2)
}

// Aliases maps a query term to merchant substrings it stands for, e.g.
// "coffee" -> ["starbucks", "dunkin"]. Expansion is pure substitution
// before substring matching; there is no fuzzy matching.
type Aliases map[string][]string

// Validate checks the query for contradictions.
func (q Spec) Validate() error {
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return fmt.Errorf("%w: from %s after to %s",
			ErrInvalidQuery, q.From.Format("2006-01-02"), q.To.Format("2006-01-02"))
	}
	if q.MinCents != nil && q.MaxCents != nil && *q.MinCents > *q.MaxCents {
		return fmt.Errorf("%w: min amount %d above max amount %d", ErrInvalidQuery, *q.MinCents, *q.MaxCents)
	}
	return nil
}

// Run evaluates the query against the store. An empty query matches
// every stored transaction; an empty match set is a valid result, not
// an error.
func Run(st *store.Store, q Spec, aliases Aliases) (Result, error) {
	if err := q.Validate(); err != nil {
		return Result{}, err
	}

	terms := expandMerchant(q.Merchant, aliases)

	var res Result
	for txn := range st.Filter(func(txn model.Transaction) bool { return matches(txn, q, terms) }) {
		res.Matches = append(res.Matches, txn)
		res.TotalCents += txn.AmountCents
	}
	res.Count = len(res.Matches)
	return res, nil
}

// expandMerchant lower-cases the term and substitutes aliases. The
// original term is kept alongside its expansions so "starbucks" still
// matches when an alias table is present.
func expandMerchant(term string, aliases Aliases) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	terms := []string{term}
	for _, sub := range aliases[term] {
		sub = strings.ToLower(strings.TrimSpace(sub))
		if sub != "" {
			terms = append(terms, sub)
		}
	}
	return terms
}

func matches(txn model.Transaction, q Spec, merchantTerms []string) bool {
	if len(merchantTerms) > 0 {
		found := false
		for _, term := range merchantTerms {
			if strings.Contains(txn.Merchant, term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if !q.From.IsZero() && txn.Date.Before(q.From) {
		return false
	}
	if !q.To.IsZero() && txn.Date.After(q.To) {
		return false
	}
	if q.MinCents != nil && txn.AmountCents < *q.MinCents {
		return false
	}
	if q.MaxCents != nil && txn.AmountCents > *q.MaxCents {
		return false
	}
	return true
}
