package services

import "github.com/davinci-coder-club/clubsite/internal/importers"

// BatchImporter runs one file through the import pipeline.
type BatchImporter interface {
	ImportBatch(content string, format importers.Format, entity importers.EntityType, meta importers.Metadata) (importers.ImportResult, error)
}

// ImportAuditor records the outcome of an import batch.
type ImportAuditor interface {
	LogImport(actor string, entity importers.EntityType, format importers.Format, result importers.ImportResult, err error)
}

// UploadArchiver keeps uploaded files and their reports on disk.
type UploadArchiver interface {
	SaveUpload(batchID string, format importers.Format, content []byte) (string, error)
	SaveReport(result importers.ImportResult) (string, error)
}
