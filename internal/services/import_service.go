package services

import (
	"log"

	"github.com/google/uuid"

	"github.com/davinci-coder-club/clubsite/internal/importers"
)

// ImportRequest describes one uploaded file.
type ImportRequest struct {
	Content []byte
	Format  importers.Format
	Entity  importers.EntityType
	AddedBy string
	BatchID string // generated when empty
}

// ImportService runs uploads through the importer and records each batch in
// the audit trail. The HTTP handlers, the import task queue and the CLI all
// import through it.
type ImportService struct {
	importer BatchImporter
	auditor  ImportAuditor
	archiver UploadArchiver
}

// NewImportService creates a new ImportService. auditor and archiver may be nil.
func NewImportService(importer BatchImporter, auditor ImportAuditor, archiver UploadArchiver) *ImportService {
	return &ImportService{
		importer: importer,
		auditor:  auditor,
		archiver: archiver,
	}
}

// Import imports req and returns the batch report. The error is non-nil only
// when the whole batch was rejected.
func (s *ImportService) Import(req ImportRequest) (importers.ImportResult, error) {
	if req.BatchID == "" {
		req.BatchID = uuid.New().String()
	}

	if s.archiver != nil {
		if _, err := s.archiver.SaveUpload(req.BatchID, req.Format, req.Content); err != nil {
			log.Printf("[IMPORT] batch %s: failed to archive upload: %v", req.BatchID, err)
		}
	}

	result, err := s.importer.ImportBatch(string(req.Content), req.Format, req.Entity, importers.Metadata{
		AddedBy: req.AddedBy,
		BatchID: req.BatchID,
	})
	if result.BatchID == "" {
		result.BatchID = req.BatchID
	}

	if s.auditor != nil {
		s.auditor.LogImport(req.AddedBy, req.Entity, req.Format, result, err)
	}

	if err == nil && s.archiver != nil {
		if _, aerr := s.archiver.SaveReport(result); aerr != nil {
			log.Printf("[IMPORT] batch %s: failed to archive report: %v", req.BatchID, aerr)
		}
	}

	return result, err
}
