package report

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vamshi455/bank-rag-system/internal/model"
)

// Summary aggregates a set of transactions. Credits and debits are
// tallied separately; ExpenseCents is reported as a positive magnitude.
type Summary struct {
	Count        int
	IncomeCents  int64
	ExpenseCents int64
	NetCents     int64
}

// Income returns total income in major units.
func (s Summary) Income() decimal.Decimal { return decimal.New(s.IncomeCents, -2) }

// Expenses returns total expenses (positive) in major units.
func (s Summary) Expenses() decimal.Decimal { return decimal.New(s.ExpenseCents, -2) }

// Net returns income minus expenses in major units.
func (s Summary) Net() decimal.Decimal { return decimal.New(s.NetCents, -2) }

// Average returns the mean signed transaction amount in major units.
func (s Summary) Average() decimal.Decimal {
	if s.Count == 0 {
		return decimal.Zero
	}
	return decimal.New(s.NetCents, -2).Div(decimal.NewFromInt(int64(s.Count))).Round(2)
}

// Summarize tallies income, expenses, and net over the transactions.
func Summarize(txns []model.Transaction) Summary {
	var s Summary
	for _, txn := range txns {
		s.Count++
		if txn.AmountCents > 0 {
			s.IncomeCents += txn.AmountCents
		} else {
			s.ExpenseCents += -txn.AmountCents
		}
	}
	s.NetCents = s.IncomeCents - s.ExpenseCents
	return s
}

// MonthRow is one month's income/expense breakdown.
type MonthRow struct {
	Month        string // "2024-01"
	Count        int
	IncomeCents  int64
	ExpenseCents int64
}

// ByMonth groups transactions by calendar month, sorted ascending.
func ByMonth(txns []model.Transaction) []MonthRow {
	byMonth := make(map[string]*MonthRow)
	for _, txn := range txns {
		key := txn.Date.Format("2006-01")
		row, ok := byMonth[key]
		if !ok {
			row = &MonthRow{Month: key}
			byMonth[key] = row
		}
		row.Count++
		if txn.AmountCents > 0 {
			row.IncomeCents += txn.AmountCents
		} else {
			row.ExpenseCents += -txn.AmountCents
		}
	}

	rows := make([]MonthRow, 0, len(byMonth))
	for _, row := range byMonth {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
	return rows
}

// CategoryRule assigns a category when any keyword appears in the
// normalized merchant string. Rules are checked in order; first match
// wins.
type CategoryRule struct {
	Name     string
	Keywords []string
}

// Uncategorized is the fallback category.
const Uncategorized = "other"

// DefaultRules is the built-in keyword table for common US merchants.
var DefaultRules = []CategoryRule{
	{Name: "groceries", Keywords: []string{"grocery", "safeway", "walmart", "kroger", "trader joe", "whole foods", "wholefds", "costco", "target"}},
	{Name: "dining", Keywords: []string{"restaurant", "cafe", "starbucks", "mcdonald", "pizza", "burger", "taco", "subway", "chipotle", "dunkin"}},
	{Name: "transportation", Keywords: []string{"gas", "fuel", "chevron", "shell", "exxon", "uber", "lyft", "taxi", "parking", "transit"}},
	{Name: "shopping", Keywords: []string{"amazon", "ebay", "best buy", "home depot", "lowes", "mall"}},
	{Name: "banking", Keywords: []string{"atm", "withdrawal", "overdraft", "maintenance fee", "service fee", "interest charge"}},
	{Name: "entertainment", Keywords: []string{"netflix", "spotify", "hulu", "disney", "youtube", "subscription", "steam"}},
	{Name: "healthcare", Keywords: []string{"pharmacy", "doctor", "medical", "hospital", "cvs", "walgreens", "dental"}},
	{Name: "utilities", Keywords: []string{"electric", "utility", "phone", "internet", "cable", "water", "comcast"}},
	{Name: "income", Keywords: []string{"salary", "payroll", "deposit", "refund", "dividend"}},
	{Name: "insurance", Keywords: []string{"insurance", "premium", "policy"}},
	{Name: "education", Keywords: []string{"school", "tuition", "education", "student"}},
}

// Categorizer assigns transactions to spending categories.
type Categorizer struct {
	rules []CategoryRule
}

// NewCategorizer creates a Categorizer. Custom rules are checked
// before the built-in ones.
func NewCategorizer(custom []CategoryRule) *Categorizer {
	rules := make([]CategoryRule, 0, len(custom)+len(DefaultRules))
	rules = append(rules, custom...)
	rules = append(rules, DefaultRules...)
	return &Categorizer{rules: rules}
}

// Categorize returns the category for a normalized merchant string.
func (c *Categorizer) Categorize(merchant string) string {
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(merchant, kw) {
				return rule.Name
			}
		}
	}
	return Uncategorized
}

// CategoryRow is one category's totals.
type CategoryRow struct {
	Category   string
	Count      int
	TotalCents int64
}

// ByCategory groups transactions by category, sorted by ascending
// signed total so the biggest spend comes first.
func (c *Categorizer) ByCategory(txns []model.Transaction) []CategoryRow {
	byCat := make(map[string]*CategoryRow)
	for _, txn := range txns {
		cat := c.Categorize(txn.Merchant)
		row, ok := byCat[cat]
		if !ok {
			row = &CategoryRow{Category: cat}
			byCat[cat] = row
		}
		row.Count++
		row.TotalCents += txn.AmountCents
	}

	rows := make([]CategoryRow, 0, len(byCat))
	for _, row := range byCat {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalCents != rows[j].TotalCents {
			return rows[i].TotalCents < rows[j].TotalCents
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}
