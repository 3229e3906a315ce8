package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vamshi455/bank-rag-system/internal/config"
	"github.com/vamshi455/bank-rag-system/internal/gitops"
	"github.com/vamshi455/bank-rag-system/internal/store"
)

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "Household"))

	assert.FileExists(t, filepath.Join(dir, config.FileName))
	assert.FileExists(t, filepath.Join(dir, config.AliasFileName))
	assert.FileExists(t, filepath.Join(dir, store.LedgerFile))
	assert.DirExists(t, filepath.Join(dir, "import"))
	assert.DirExists(t, filepath.Join(dir, "import", "processed"))
	assert.DirExists(t, filepath.Join(dir, "logs"))
	assert.True(t, gitops.IsRepo(dir), "init should create a git repo")

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "Household", cfg.Ledger.Name)

	// The fresh ledger is empty but readable.
	s, err := store.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}
