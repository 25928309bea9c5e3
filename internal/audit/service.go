package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/davinci-coder-club/clubsite/internal/database/audit"
	"github.com/davinci-coder-club/clubsite/internal/entities"
	"github.com/davinci-coder-club/clubsite/internal/importers"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo    *audit.Repository
	pending sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until every LogAsync write has finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

// LogImport records the outcome of one import batch. A non-nil err marks
// a batch that was aborted before any row was processed.
func (s *Service) LogImport(actor string, entity importers.EntityType, format importers.Format, result importers.ImportResult, err error) {
	description := fmt.Sprintf("Imported %d of %d %s rows (%d duplicates, %d errors)",
		result.Processed, result.Total, entity, result.Duplicates, result.Errors)

	event := &entities.AuditEvent{
		Actor:       actor,
		EventType:   entities.AuditEventImport,
		Action:      fmt.Sprintf("%s_%s_import", entity, format),
		Description: description,
		EntityType:  string(entity),
		BatchID:     result.BatchID,
		Status:      entities.AuditStatusSuccess,
	}

	if mdBytes, e := json.Marshal(result); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.Description = truncate(fmt.Sprintf("Import of %s rows failed", entity), 500)
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogCleanup records an audit retention sweep.
func (s *Service) LogCleanup(deleted int64, err error) {
	event := &entities.AuditEvent{
		Actor:       "scheduler",
		EventType:   entities.AuditEventCleanup,
		Action:      "audit_cleanup",
		Description: fmt.Sprintf("Deleted %d audit events", deleted),
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// GetEventsByType retrieves audit events filtered by type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByType(eventType, limit, offset)
}

// GetImport retrieves the audit event recorded for an import batch.
func (s *Service) GetImport(batchID string) (*entities.AuditEvent, error) {
	return s.repo.GetEventByBatch(batchID)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
