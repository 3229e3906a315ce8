package normalize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_Formats(t *testing.T) {
	n := New()
	tests := []struct {
		input   string
		y, m, d int
	}{
		{"01/15/2024", 2024, 1, 15},
		{"2024-01-15", 2024, 1, 15},
		{"15-Jan-2024", 2024, 1, 15},
		{"1/3/2025", 2025, 1, 3},
		{"2024/01/15", 2024, 1, 15},
		{" 2024-01-15 ", 2024, 1, 15},
	}
	for _, tt := range tests {
		got, err := n.ParseDate(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.y, got.Year(), "input %q", tt.input)
		assert.Equal(t, tt.m, int(got.Month()), "input %q", tt.input)
		assert.Equal(t, tt.d, got.Day(), "input %q", tt.input)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	n := New()
	for _, input := range []string{"", "NOTADATE", "13/45/2024", "2024-15-99"} {
		_, err := n.ParseDate(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseDate_ExtraFormats(t *testing.T) {
	n := New("02.01.2006")
	got, err := n.ParseDate("15.01.2024")
	require.NoError(t, err)
	assert.Equal(t, 15, got.Day())
}

func TestParseAmountCents(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"-5.67", -567},
		{"2500.00", 250000},
		{"$1,234.56", 123456},
		{"(12.00)", -1200},
		{"($87.45)", -8745},
		{"-$40.00", -4000},
		{"$0.00", 0},
		{"0", 0},
		{"3500", 350000},
		{"-0.01", -1},
		{" 42.99 ", 4299},
	}
	for _, tt := range tests {
		got, err := ParseAmountCents(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestParseAmountCents_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"NOTANUMBER",
		"$",
		"1.2.3",
		"12.345",  // sub-cent precision
		"(-1.00)", // double negation
		"12..00",
	}
	for _, input := range inputs {
		_, err := ParseAmountCents(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestNormalizeDescription(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"STARBUCKS STORE #1234", "starbucks"},
		{"  AMAZON   MARKETPLACE ", "amazon marketplace"},
		{"WALMART 00432", "walmart"},
		{"GITHUB *PRO SUBSCRIPTION", "github *pro subscription"},
		{"ACME CO", "acme"},
		{"SHELL OIL 5744", "shell oil"},
		{"#1234", "#1234"}, // never stripped to empty
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDescription(tt.input), "input %q", tt.input)
	}
}

func TestNormalize(t *testing.T) {
	n := New()
	txn, err := n.Normalize("01/15/2024", "STARBUCKS STORE #1234", "-5.67", 2)
	require.NoError(t, err)

	assert.Equal(t, 2024, txn.Date.Year())
	assert.Equal(t, "STARBUCKS STORE #1234", txn.Description)
	assert.Equal(t, "starbucks", txn.Merchant)
	assert.Equal(t, int64(-567), txn.AmountCents)
	assert.Equal(t, 2, txn.SourceLine)
	assert.Equal(t, "-5.67", txn.Amount().StringFixed(2))
}

func TestNormalize_Deterministic(t *testing.T) {
	n := New()
	a, err := n.Normalize("2024-01-01", "SAFEWAY #0042", "$87.45", 5)
	require.NoError(t, err)
	b, err := n.Normalize("2024-01-01", "SAFEWAY #0042", "$87.45", 5)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNormalize_RowErrors(t *testing.T) {
	n := New()
	tests := []struct {
		name               string
		date, desc, amount string
		wantKind           Kind
	}{
		{"bad date", "NOPE", "COFFEE", "-1.00", KindInvalidDate},
		{"bad amount", "2024-01-01", "COFFEE", "NOPE", KindInvalidAmount},
		{"empty description", "2024-01-01", "   ", "-1.00", KindEmptyDescription},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(tt.date, tt.desc, tt.amount, 3)
			require.Error(t, err)

			var rowErr RowError
			require.True(t, errors.As(err, &rowErr))
			assert.Equal(t, tt.wantKind, rowErr.Kind)
			assert.Equal(t, 3, rowErr.Line)
		})
	}
}
