package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vamshi455/bank-rag-system/internal/ingest"
	"github.com/vamshi455/bank-rag-system/internal/model"
)

func TestWriteExport_RoundTrip(t *testing.T) {
	txns := []model.Transaction{
		{
			Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Description: "STARBUCKS STORE #1234",
			Merchant:    "starbucks",
			AmountCents: -567,
			SourceLine:  2,
		},
		{
			Date:        time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
			Description: "SALARY DEPOSIT",
			Merchant:    "salary deposit",
			AmountCents: 250000,
			SourceLine:  3,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeExport(&buf, txns))

	// Exported CSV re-ingests to the same dates, descriptions, and
	// amounts; formatting may differ, values may not.
	res, err := ingest.Ingest(&buf, ingest.Options{})
	require.NoError(t, err)
	require.Len(t, res.Transactions, 2)
	assert.Empty(t, res.Errors)

	for i := range txns {
		assert.True(t, txns[i].Date.Equal(res.Transactions[i].Date))
		assert.Equal(t, txns[i].Description, res.Transactions[i].Description)
		assert.Equal(t, txns[i].AmountCents, res.Transactions[i].AmountCents)
	}
}

func TestWriteExport_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeExport(&buf, nil))
	assert.Equal(t, "date,description,amount\n", buf.String())
}

func TestQuerySpecFlags(t *testing.T) {
	flags := querySpecFlags{
		merchant: "starbucks",
		from:     "2024-01-01",
		to:       "2024-02-01",
		min:      "-100.00",
		max:      "0",
	}

	spec, err := flags.spec()
	require.NoError(t, err)
	assert.Equal(t, "starbucks", spec.Merchant)
	assert.Equal(t, 2024, spec.From.Year())
	assert.Equal(t, time.February, spec.To.Month())
	require.NotNil(t, spec.MinCents)
	assert.Equal(t, int64(-10000), *spec.MinCents)
	require.NotNil(t, spec.MaxCents)
	assert.Equal(t, int64(0), *spec.MaxCents)
}

func TestQuerySpecFlags_BadInput(t *testing.T) {
	_, err := (&querySpecFlags{from: "01/02/2024"}).spec()
	assert.Error(t, err, "CLI dates are strictly YYYY-MM-DD")

	_, err = (&querySpecFlags{min: "abc"}).spec()
	assert.Error(t, err)
}

func TestQuerySpecFlags_Empty(t *testing.T) {
	spec, err := (&querySpecFlags{}).spec()
	require.NoError(t, err)
	assert.True(t, spec.From.IsZero())
	assert.Nil(t, spec.MinCents)
	assert.NoError(t, spec.Validate())
}
