package normalize

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/vamshi455/bank-rag-system/internal/model"
)

// Kind classifies a row-level normalization failure.
type Kind string

const (
	KindInvalidDate      Kind = "invalid-date"
	KindInvalidAmount    Kind = "invalid-amount"
	KindEmptyDescription Kind = "empty-description"
)

// RowError describes why a single row was rejected. Row errors are
// recoverable: the ingestion pipeline reports them and keeps going.
type RowError struct {
	Line  int
	Kind  Kind
	Value string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Kind, e.Value)
}

// DateFormats is the ordered list of accepted date layouts; the first
// layout that parses wins.
var DateFormats = []string{
	"01/02/2006",
	"2006-01-02",
	"02-Jan-2006",
	"01/02/06",
	"2006/01/02",
}

// Normalizer converts raw statement cells into Transactions.
type Normalizer struct {
	dateFormats []string
}

// New creates a Normalizer. Extra date layouts are tried after the
// built-in ones.
func New(extraDateFormats ...string) *Normalizer {
	formats := make([]string, 0, len(DateFormats)+len(extraDateFormats))
	formats = append(formats, DateFormats...)
	formats = append(formats, extraDateFormats...)
	return &Normalizer{dateFormats: formats}
}

// Normalize converts one raw row into a Transaction. It is a pure
// function: same inputs always produce the same output.
func (n *Normalizer) Normalize(rawDate, rawDesc, rawAmount string, line int) (model.Transaction, error) {
	date, err := n.ParseDate(rawDate)
	if err != nil {
		return model.Transaction{}, RowError{Line: line, Kind: KindInvalidDate, Value: rawDate}
	}

	cents, err := ParseAmountCents(rawAmount)
	if err != nil {
		return model.Transaction{}, RowError{Line: line, Kind: KindInvalidAmount, Value: rawAmount}
	}

	merchant := NormalizeDescription(rawDesc)
	if merchant == "" {
		return model.Transaction{}, RowError{Line: line, Kind: KindEmptyDescription, Value: rawDesc}
	}

	return model.Transaction{
		Date:        date,
		Description: rawDesc,
		Merchant:    merchant,
		AmountCents: cents,
		SourceLine:  line,
	}, nil
}

// ParseDate tries each accepted layout in order.
func (n *Normalizer) ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range n.dateFormats {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// ParseAmountCents parses a statement amount into signed integer cents.
// Currency symbols, spaces, and thousands separators are stripped;
// parentheses or a leading minus mark the amount negative.
func ParseAmountCents(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
		// "(-1.00)" is ambiguous: two negation markers.
		if strings.HasPrefix(s, "-") {
			return 0, fmt.Errorf("ambiguous sign in %q", raw)
		}
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, fmt.Errorf("no digits in %q", raw)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", raw, err)
	}

	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %q has sub-cent precision", raw)
	}

	v := cents.IntPart()
	if negative {
		v = -v
	}
	return v, nil
}

// suffixWords are trailing tokens dropped along with store codes, so
// "STARBUCKS STORE #1234" normalizes to "starbucks".
var suffixWords = map[string]bool{
	"store": true,
	"inc":   true,
	"llc":   true,
	"ltd":   true,
	"corp":  true,
	"co":    true,
}

// NormalizeDescription lower-cases, collapses whitespace, and strips
// trailing store/location codes. It never strips the description down
// to nothing: a non-empty input yields a non-empty result.
func NormalizeDescription(raw string) string {
	tokens := strings.Fields(strings.ToLower(raw))
	for len(tokens) > 1 && isStoreCode(tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

// isStoreCode reports whether a trailing token looks like a store or
// location code: "#1234", a mostly-numeric token, or a corporate
// suffix word.
func isStoreCode(token string) bool {
	if suffixWords[token] {
		return true
	}
	if strings.HasPrefix(token, "#") {
		rest := token[1:]
		return rest != "" && allDigits(rest)
	}

	digits := 0
	for _, r := range token {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits > 0 && digits*2 >= len(token)
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
