package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vamshi455/bank-rag-system/internal/model"
	"github.com/vamshi455/bank-rag-system/internal/normalize"
)

// ErrMissingRequiredColumns is returned when the date, description, or
// amount column cannot be located. It is structural: the whole
// ingestion fails and the caller's store is left untouched.
var ErrMissingRequiredColumns = errors.New("missing required columns")

// Result holds the outcome of one ingestion run. Both slices are in
// input file order.
type Result struct {
	Transactions []model.Transaction
	Errors       []normalize.RowError
}

// Options configures an ingestion run.
type Options struct {
	// Profile selects a fixed column layout, bypassing header
	// detection. Nil means detect columns from the header row.
	Profile *Profile

	// Normalizer used for row conversion. Nil means normalize.New().
	Normalizer *normalize.Normalizer

	// Comma is the field delimiter. Zero means sniff: a header line
	// containing tabs but no commas is read as TSV.
	Comma rune

	// SourceFile is recorded on each transaction for auditing.
	SourceFile string
}

// Column synonyms used for header detection, per common bank exports.
// Matching is case-insensitive substring containment.
var (
	dateColumns   = []string{"date", "transaction date", "posted date", "trans date", "posting date"}
	descColumns   = []string{"description", "desc", "memo", "transaction", "details", "payee", "merchant"}
	amountColumns = []string{"amount", "transaction amount", "value", "sum"}
)

// layout maps logical fields to column indexes. debit/credit of -1
// means a single signed amount column is used instead.
type layout struct {
	date, desc, amount int
	debit, credit      int
	skipFirstRow       bool
}

// Ingest reads one tabular statement and normalizes every data row.
// Row failures never abort the batch; they are collected in
// Result.Errors. Structural problems (unreadable input, missing
// required columns) fail the whole call.
func Ingest(r io.Reader, opts Options) (Result, error) {
	norm := opts.Normalizer
	if norm == nil {
		norm = normalize.New()
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("reading statement: %w", err)
	}

	comma := opts.Comma
	if comma == 0 {
		comma = sniffDelimiter(data)
	}

	cr := csv.NewReader(strings.NewReader(string(data)))
	cr.Comma = comma
	cr.FieldsPerRecord = -1

	// Records are read one at a time so FieldPos can record each row's
	// true line in the file; ReadAll would renumber rows after blank
	// lines and multi-line quoted fields.
	var records [][]string
	var lines []int
	for {
		rec, readErr := cr.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return Result{}, fmt.Errorf("reading statement CSV: %w", readErr)
		}
		line, _ := cr.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}
	if len(records) == 0 {
		return Result{}, fmt.Errorf("%w: empty file", ErrMissingRequiredColumns)
	}

	var lay layout
	if opts.Profile != nil {
		lay, err = opts.Profile.layout(records[0])
	} else {
		lay, err = detectLayout(records[0], norm)
	}
	if err != nil {
		return Result{}, err
	}

	var res Result
	start := 0
	if lay.skipFirstRow {
		start = 1
	}
	for i := start; i < len(records); i++ {
		rec := records[i]
		line := lines[i]
		if blankRow(rec) {
			continue
		}

		txn, rowErr := normalizeRow(rec, lay, norm, line)
		if rowErr != nil {
			res.Errors = append(res.Errors, *rowErr)
			continue
		}
		txn.SourceFile = opts.SourceFile
		res.Transactions = append(res.Transactions, txn)
	}
	return res, nil
}

// detectLayout locates required columns by header name, falling back
// to positional columns when the first row already parses as data
// (headerless export).
func detectLayout(header []string, norm *normalize.Normalizer) (layout, error) {
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.ToLower(strings.TrimSpace(h))
	}

	lay := layout{
		date:         findColumn(names, dateColumns),
		desc:         findColumn(names, descColumns),
		amount:       findColumn(names, amountColumns),
		debit:        findExact(names, "debit"),
		credit:       findExact(names, "credit"),
		skipFirstRow: true,
	}

	// Separate debit/credit columns take precedence over a single
	// amount column; amount = credit - debit.
	if lay.debit >= 0 && lay.credit >= 0 {
		lay.amount = -1
		if lay.date >= 0 && lay.desc >= 0 {
			return lay, nil
		}
	} else {
		lay.debit, lay.credit = -1, -1
		if lay.date >= 0 && lay.desc >= 0 && lay.amount >= 0 {
			return lay, nil
		}
	}

	// Position fallback: a headerless export whose first row is data.
	if looksLikeData(header, norm) {
		return layout{date: 0, desc: 1, amount: 2, debit: -1, credit: -1}, nil
	}

	var missing []string
	if lay.date < 0 {
		missing = append(missing, "date")
	}
	if lay.desc < 0 {
		missing = append(missing, "description")
	}
	if lay.amount < 0 && (lay.debit < 0 || lay.credit < 0) {
		missing = append(missing, "amount")
	}
	return layout{}, fmt.Errorf("%w: %s", ErrMissingRequiredColumns, strings.Join(missing, ", "))
}

func findColumn(names, patterns []string) int {
	for _, p := range patterns {
		for i, n := range names {
			if strings.Contains(n, p) {
				return i
			}
		}
	}
	return -1
}

func findExact(names []string, want string) int {
	for i, n := range names {
		if n == want {
			return i
		}
	}
	return -1
}

// looksLikeData reports whether a row parses positionally as
// date,description,amount.
func looksLikeData(rec []string, norm *normalize.Normalizer) bool {
	if len(rec) < 3 {
		return false
	}
	if _, err := norm.ParseDate(rec[0]); err != nil {
		return false
	}
	_, err := normalize.ParseAmountCents(rec[2])
	return err == nil
}

func normalizeRow(rec []string, lay layout, norm *normalize.Normalizer, line int) (model.Transaction, *normalize.RowError) {
	rawDate := cell(rec, lay.date)
	rawDesc := cell(rec, lay.desc)

	var rawAmount string
	if lay.debit >= 0 && lay.credit >= 0 {
		var err error
		rawAmount, err = combineDebitCredit(cell(rec, lay.debit), cell(rec, lay.credit))
		if err != nil {
			return model.Transaction{}, &normalize.RowError{
				Line:  line,
				Kind:  normalize.KindInvalidAmount,
				Value: err.Error(),
			}
		}
	} else {
		rawAmount = cell(rec, lay.amount)
	}

	txn, err := norm.Normalize(rawDate, rawDesc, rawAmount, line)
	if err != nil {
		var rowErr normalize.RowError
		if errors.As(err, &rowErr) {
			return model.Transaction{}, &rowErr
		}
		return model.Transaction{}, &normalize.RowError{
			Line:  line,
			Kind:  normalize.KindInvalidAmount,
			Value: err.Error(),
		}
	}
	return txn, nil
}

// combineDebitCredit folds split debit/credit cells into one signed
// amount string: credits positive, debits negative.
func combineDebitCredit(debit, credit string) (string, error) {
	debit = strings.TrimSpace(debit)
	credit = strings.TrimSpace(credit)

	switch {
	case debit != "" && credit != "":
		return "", fmt.Errorf("both debit %q and credit %q set", debit, credit)
	case debit != "":
		d, err := normalize.ParseAmountCents(debit)
		if err != nil {
			return "", err
		}
		if d < 0 {
			d = -d
		}
		return fmt.Sprintf("-%d.%02d", d/100, d%100), nil
	case credit != "":
		return credit, nil
	default:
		return "", fmt.Errorf("neither debit nor credit set")
	}
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}

func blankRow(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// sniffDelimiter picks tab over comma when the first line is
// tab-separated, matching .txt exports.
func sniffDelimiter(data []byte) rune {
	line := string(data)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if strings.ContainsRune(line, '\t') && !strings.ContainsRune(line, ',') {
		return '\t'
	}
	return ','
}
