package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// importDir is the subdirectory scanned for new statement files.
const importDir = "import"

// processedDir is where ingested statements are moved.
const processedDir = "import/processed"

// FileInfo describes a statement file awaiting ingestion.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Scan returns statement files (.csv or .txt) in <projectDir>/import/.
func Scan(projectDir string) ([]FileInfo, error) {
	dir := filepath.Join(projectDir, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".csv" && ext != ".txt" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a statement from import/ to import/processed/.
func MarkProcessed(projectDir, fileName string) error {
	src := filepath.Join(projectDir, importDir, fileName)
	dstDir := filepath.Join(projectDir, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
