package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davinci-coder-club/clubsite/internal/importers"
	"github.com/davinci-coder-club/clubsite/internal/utils"
)

// Archiver keeps a copy of every uploaded import file and its report on disk,
// named after the batch ID.
type Archiver struct {
	Dir string
}

func NewArchiver(dir string) *Archiver {
	return &Archiver{
		Dir: dir,
	}
}

// SaveUpload writes the raw upload as <batchID>.<format> and returns the filename.
// The batch ID is sanitized so it cannot escape Dir.
func (a *Archiver) SaveUpload(batchID string, format importers.Format, content []byte) (string, error) {
	if err := a.ensureDir(); err != nil {
		return "", fmt.Errorf("failed to ensure archive directory: %w", err)
	}

	filename := fmt.Sprintf("%s.%s", utils.SanitizeFilename(batchID), format)
	if err := os.WriteFile(filepath.Join(a.Dir, filename), content, 0644); err != nil {
		return "", fmt.Errorf("failed to write archived upload: %w", err)
	}
	return filename, nil
}

// SaveReport writes the import result as <batchID>.report.json.
func (a *Archiver) SaveReport(result importers.ImportResult) (string, error) {
	if err := a.ensureDir(); err != nil {
		return "", fmt.Errorf("failed to ensure archive directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal import report: %w", err)
	}

	filename := fmt.Sprintf("%s.report.json", utils.SanitizeFilename(result.BatchID))
	if err := os.WriteFile(filepath.Join(a.Dir, filename), jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write import report: %w", err)
	}
	return filename, nil
}

// ensureDir creates the archive directory if it doesn't exist
func (a *Archiver) ensureDir() error {
	if _, err := os.Stat(a.Dir); os.IsNotExist(err) {
		if err := os.MkdirAll(a.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create archive directory: %w", err)
		}
	}
	return nil
}
