package auditlog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRead(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	err := Append(dir, []Entry{
		{Timestamp: ts, File: "jan.csv", Imported: 42, Skipped: 3, CommitHash: "abc1234"},
	})
	require.NoError(t, err)

	// Appending again must not duplicate the header.
	err = Append(dir, []Entry{
		{Timestamp: ts.Add(time.Hour), File: "feb.csv", Imported: 10, Skipped: 0},
	})
	require.NoError(t, err)

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "jan.csv", entries[0].File)
	assert.Equal(t, 42, entries[0].Imported)
	assert.Equal(t, 3, entries[0].Skipped)
	assert.Equal(t, "abc1234", entries[0].CommitHash)
	assert.True(t, ts.Equal(entries[0].Timestamp))

	assert.Equal(t, "feb.csv", entries[1].File)
	assert.Empty(t, entries[1].CommitHash)
}

func TestRead_Missing(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestMarshalRoundTrip(t *testing.T) {
	e := Entry{
		Timestamp: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		File:      "statement.csv",
		Imported:  7,
		Skipped:   1,
	}
	got, err := UnmarshalEntry(MarshalEntry(e))
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestAppend_CreatesLogsDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{{Timestamp: time.Now(), File: "a.csv"}}))
	assert.DirExists(t, filepath.Join(dir, "logs"))
}
