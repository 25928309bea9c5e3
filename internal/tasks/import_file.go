package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/davinci-coder-club/clubsite/internal/importers"
	"github.com/davinci-coder-club/clubsite/internal/services"
)

// FileImporter imports one uploaded file.
type FileImporter interface {
	Import(req services.ImportRequest) (importers.ImportResult, error)
}

// ImportFileTask imports an uploaded file in the background. The batch ID is
// assigned when the task is queued so callers can look up the audit record.
type ImportFileTask struct {
	Content    string               `json:"content"`
	Format     importers.Format     `json:"format"`
	EntityType importers.EntityType `json:"entity_type"`
	AddedBy    string               `json:"added_by"`
	BatchID    string               `json:"batch_id"`
}

// Config returns the queue configuration for file import tasks.
// A rejected file will be rejected again, so imports are not retried.
func (t ImportFileTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "import_file",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     10 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ImportFileProcessor creates a processor function for ImportFileTask.
func ImportFileProcessor(importer FileImporter) backlite.QueueProcessor[ImportFileTask] {
	return func(ctx context.Context, task ImportFileTask) error {
		if importer == nil {
			return fmt.Errorf("file importer not configured")
		}

		result, err := importer.Import(services.ImportRequest{
			Content: []byte(task.Content),
			Format:  task.Format,
			Entity:  task.EntityType,
			AddedBy: task.AddedBy,
			BatchID: task.BatchID,
		})
		if err != nil {
			return fmt.Errorf("import batch %s: %w", task.BatchID, err)
		}

		log.Printf("[TASK] Imported batch %s: %d/%d %s rows (%d duplicates, %d errors)",
			result.BatchID, result.Processed, result.Total, task.EntityType, result.Duplicates, result.Errors)
		return nil
	}
}

// NewImportFileQueue creates a backlite queue for file import tasks.
func NewImportFileQueue(importer FileImporter) backlite.Queue {
	return backlite.NewQueue(ImportFileProcessor(importer))
}
