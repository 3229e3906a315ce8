package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vamshi455/bank-rag-system/internal/model"
)

// LedgerFile is the name of the persisted ledger within a project dir.
const LedgerFile = "statements.csv"

// Header is the CSV header for statements.csv.
const Header = "date,description,merchant,amount_cents,source_line,source_file"

const (
	numFields     = 6
	dateFormat    = "2006-01-02"
	colDate       = 0
	colDesc       = 1
	colMerchant   = 2
	colAmount     = 3
	colSourceLine = 4
	colSourceFile = 5
)

// ReadTransactions reads all transactions from a statements.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes transactions to a statements.csv writer,
// including the header.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colDate] = txn.Date.Format(dateFormat)
	row[colDesc] = txn.Description
	row[colMerchant] = txn.Merchant
	row[colAmount] = strconv.FormatInt(txn.AmountCents, 10)
	row[colSourceLine] = strconv.Itoa(txn.SourceLine)
	row[colSourceFile] = txn.SourceFile
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	cents, err := strconv.ParseInt(record[colAmount], 10, 64)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount_cents %q: %w", record[colAmount], err)
	}

	line, err := strconv.Atoi(record[colSourceLine])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing source_line %q: %w", record[colSourceLine], err)
	}

	return model.Transaction{
		Date:        date,
		Description: record[colDesc],
		Merchant:    record[colMerchant],
		AmountCents: cents,
		SourceLine:  line,
		SourceFile:  record[colSourceFile],
	}, nil
}

// Load reads the ledger from a project dir into a new Store. A missing
// ledger file yields an empty Store.
func Load(projectDir string) (*Store, error) {
	path := filepath.Join(projectDir, LedgerFile)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}

	s := New()
	s.AppendAll(txns)
	return s, nil
}

// Save writes the full Store to the project dir's ledger file.
func Save(projectDir string, s *Store) error {
	path := filepath.Join(projectDir, LedgerFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating ledger %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteTransactions(f, s.All()); err != nil {
		return fmt.Errorf("writing ledger %s: %w", path, err)
	}
	return nil
}
