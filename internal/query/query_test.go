package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vamshi455/bank-rag-system/internal/model"
	"github.com/vamshi455/bank-rag-system/internal/store"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func cents(v int64) *int64 {
	return &v
}

func testStore() *store.Store {
	s := store.New()
	s.AppendAll([]model.Transaction{
		{Date: date(2024, 1, 1), Description: "STARBUCKS STORE #1234", Merchant: "starbucks", AmountCents: -567, SourceLine: 2},
		{Date: date(2024, 1, 2), Description: "AMAZON", Merchant: "amazon", AmountCents: -1200, SourceLine: 3},
		{Date: date(2024, 1, 10), Description: "DUNKIN #0042", Merchant: "dunkin", AmountCents: -350, SourceLine: 4},
		{Date: date(2024, 1, 15), Description: "SALARY DEPOSIT", Merchant: "salary deposit", AmountCents: 250000, SourceLine: 5},
	})
	return s
}

func TestRun_MerchantContains(t *testing.T) {
	res, err := Run(testStore(), Spec{Merchant: "starbucks"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Count)
	assert.Equal(t, int64(-567), res.TotalCents)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "STARBUCKS STORE #1234", res.Matches[0].Description)
	assert.Equal(t, "-5.67", res.Total().StringFixed(2))
}

func TestRun_MerchantCaseInsensitive(t *testing.T) {
	res, err := Run(testStore(), Spec{Merchant: "StarBucks"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
}

func TestRun_EmptySpecMatchesAll(t *testing.T) {
	res, err := Run(testStore(), Spec{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Count)
	assert.Equal(t, int64(-567-1200-350+250000), res.TotalCents)
}

func TestRun_DateBoundsInclusive(t *testing.T) {
	res, err := Run(testStore(), Spec{From: date(2024, 1, 2), To: date(2024, 1, 10)}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "amazon", res.Matches[0].Merchant)
	assert.Equal(t, "dunkin", res.Matches[1].Merchant)
}

func TestRun_AmountBoundsInclusive(t *testing.T) {
	res, err := Run(testStore(), Spec{MinCents: cents(-1200), MaxCents: cents(-350)}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
}

func TestRun_PredicatesAreANDed(t *testing.T) {
	res, err := Run(testStore(), Spec{
		Merchant: "starbucks",
		From:     date(2024, 1, 2),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count, "starbucks row is before the from date")
	assert.Equal(t, int64(0), res.TotalCents)
}

func TestRun_EmptyMatchSet(t *testing.T) {
	res, err := Run(testStore(), Spec{Merchant: "nonexistent"}, nil)
	require.NoError(t, err, "no matches is a valid result, not an error")
	assert.Equal(t, 0, res.Count)
	assert.Equal(t, int64(0), res.TotalCents)
	assert.Empty(t, res.Matches)
}

func TestRun_StoreOrderPreserved(t *testing.T) {
	res, err := Run(testStore(), Spec{MaxCents: cents(0)}, nil)
	require.NoError(t, err)

	var lines []int
	for _, txn := range res.Matches {
		lines = append(lines, txn.SourceLine)
	}
	assert.Equal(t, []int{2, 3, 4}, lines)
}

func TestRun_Aliases(t *testing.T) {
	aliases := Aliases{"coffee": {"starbucks", "dunkin"}}

	res, err := Run(testStore(), Spec{Merchant: "coffee"}, aliases)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, int64(-567-350), res.TotalCents)

	// Without the alias table "coffee" matches nothing.
	res, err = Run(testStore(), Spec{Merchant: "coffee"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
}

func TestRun_AliasKeepsLiteralTerm(t *testing.T) {
	aliases := Aliases{"starbucks": {"peets"}}
	res, err := Run(testStore(), Spec{Merchant: "starbucks"}, aliases)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
}

func TestValidate(t *testing.T) {
	err := Spec{From: date(2024, 2, 1), To: date(2024, 1, 1)}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuery)

	err = Spec{MinCents: cents(100), MaxCents: cents(-100)}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuery)

	assert.NoError(t, Spec{}.Validate())
	assert.NoError(t, Spec{From: date(2024, 1, 1), To: date(2024, 1, 1)}.Validate())
}

func TestRun_InvalidSpec(t *testing.T) {
	_, err := Run(testStore(), Spec{From: date(2024, 2, 1), To: date(2024, 1, 1)}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuery)
}
