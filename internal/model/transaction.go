package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one normalized bank statement row. Instances are
// immutable once constructed.
type Transaction struct {
	Date        time.Time
	Description string // original merchant string, unmodified
	Merchant    string // normalized description used for matching
	AmountCents int64  // signed minor units; negative = money out
	SourceLine  int    // 1-based row in the originating file
	SourceFile  string
}

// Amount returns the amount as an exact decimal in major units.
func (t Transaction) Amount() decimal.Decimal {
	return decimal.New(t.AmountCents, -2)
}

// IsCredit reports whether the transaction is money in.
func (t Transaction) IsCredit() bool {
	return t.AmountCents > 0
}
