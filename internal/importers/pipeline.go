package importers

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/davinci-coder-club/clubsite/internal/entities"
)

// ImportResult is the report for one uploaded file.
// Processed + Duplicates + Errors always equals Total.
type ImportResult struct {
	BatchID      string   `json:"batchId,omitempty"`
	Total        int      `json:"total"`
	Processed    int      `json:"processed"`
	Duplicates   int      `json:"duplicates"`
	Errors       int      `json:"errors"`
	ErrorDetails []string `json:"errorDetails"`

	// SkippedRows counts CSV lines dropped for having the wrong number of
	// fields. They are not part of Total.
	SkippedRows int `json:"skippedRows"`
}

func newImportResult(batchID string) ImportResult {
	return ImportResult{BatchID: batchID, ErrorDetails: []string{}}
}

// MemberStore is the persistence boundary for member imports.
type MemberStore interface {
	ExistingMemberEmails() ([]string, error)
	InsertMember(member *entities.Member) error
}

type ProjectStore interface {
	InsertProject(project *entities.Project) error
}

type EventStore interface {
	InsertEvent(event *entities.Event) error
}

// Store combines the writes a batch import needs.
type Store interface {
	MemberStore
	ProjectStore
	EventStore
}

// Recorder observes finished batches, e.g. to export metrics.
type Recorder interface {
	ObserveBatch(entity EntityType, result ImportResult, elapsed time.Duration, err error)
}

// Metadata is supplied by the caller and stamped onto every accepted record.
type Metadata struct {
	AddedBy string
	BatchID string // generated when empty
}

// Importer drives one uploaded file through
// parse → normalize → validate → deduplicate → persist.
//
// Member batches are serialized so two concurrent uploads cannot both accept
// the same email between reading the known set and inserting.
type Importer struct {
	store      Store
	normalizer *Normalizer
	validator  *Validator
	recorder   Recorder
	aliases    AliasTable
	now        func() time.Time

	memberMu sync.Mutex
}

// Option configures an Importer.
type Option func(*Importer)

// WithAliases replaces the built-in alias table.
func WithAliases(aliases AliasTable) Option {
	return func(i *Importer) { i.aliases = aliases }
}

// WithClock sets the time source used for date fallbacks.
func WithClock(now func() time.Time) Option {
	return func(i *Importer) { i.now = now }
}

func WithRecorder(recorder Recorder) Option {
	return func(i *Importer) { i.recorder = recorder }
}

// NewImporter creates an importer writing into store.
func NewImporter(store Store, opts ...Option) *Importer {
	i := &Importer{
		store:   store,
		aliases: DefaultAliases(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.normalizer = NewNormalizer(i.aliases, i.now)
	i.validator = NewValidator()
	return i
}

// ImportBatch imports every row of content. A file that cannot be parsed
// fails the whole batch with an empty result. Row-level problems, including
// persistence failures, are counted in the result and do not stop the batch;
// rows written before a failure stay written.
func (i *Importer) ImportBatch(content string, format Format, entity EntityType, meta Metadata) (ImportResult, error) {
	start := time.Now()
	if meta.BatchID == "" {
		meta.BatchID = uuid.New().String()
	}

	result, err := i.importBatch(content, format, entity, meta)
	if err != nil {
		log.Printf("[IMPORT] batch %s: %s %s import failed: %v", meta.BatchID, entity, format, err)
	} else {
		log.Printf("[IMPORT] batch %s: %s %s import: total=%d processed=%d duplicates=%d errors=%d skipped=%d",
			meta.BatchID, entity, format, result.Total, result.Processed, result.Duplicates, result.Errors, result.SkippedRows)
	}

	if i.recorder != nil {
		i.recorder.ObserveBatch(entity, result, time.Since(start), err)
	}
	return result, err
}

func (i *Importer) importBatch(content string, format Format, entity EntityType, meta Metadata) (ImportResult, error) {
	switch entity {
	case EntityMember, EntityProject, EntityEvent:
	default:
		return newImportResult(meta.BatchID), fmt.Errorf("%w: %q", ErrUnsupportedEntity, entity)
	}

	rows, skipped, err := parse(content, format)
	if err != nil {
		return newImportResult(meta.BatchID), err
	}

	result := newImportResult(meta.BatchID)
	result.SkippedRows = skipped

	switch entity {
	case EntityMember:
		i.memberMu.Lock()
		defer i.memberMu.Unlock()

		existing, err := i.store.ExistingMemberEmails()
		if err != nil {
			return newImportResult(meta.BatchID), fmt.Errorf("failed to load existing members: %w", err)
		}
		detector := NewDuplicateDetector(existing)
		for n, row := range rows {
			i.importMember(row, n+1, meta, detector, &result)
		}
	case EntityProject:
		for n, row := range rows {
			i.importProject(row, n+1, meta, &result)
		}
	case EntityEvent:
		for n, row := range rows {
			i.importEvent(row, n+1, meta, &result)
		}
	}

	result.Total = result.Processed + result.Duplicates + result.Errors
	return result, nil
}

func (i *Importer) importMember(row RawRow, n int, meta Metadata, detector *DuplicateDetector, result *ImportResult) {
	member := i.normalizer.Member(row)
	if err := i.validator.ValidateMember(member, n); err != nil {
		result.fail(err.Error())
		return
	}
	if detector.Check(member.Email) {
		result.Duplicates++
		return
	}

	member.AddedBy = meta.AddedBy
	member.ImportBatchID = meta.BatchID
	if err := i.store.InsertMember(member); err != nil {
		result.fail(fmt.Sprintf("Row %d: failed to save member %q: %v", n, member.Name, err))
		return
	}
	result.Processed++
}

func (i *Importer) importProject(row RawRow, n int, meta Metadata, result *ImportResult) {
	project := i.normalizer.Project(row)
	if err := i.validator.ValidateProject(project, n); err != nil {
		result.fail(err.Error())
		return
	}

	project.AddedBy = meta.AddedBy
	project.ImportBatchID = meta.BatchID
	if err := i.store.InsertProject(project); err != nil {
		result.fail(fmt.Sprintf("Row %d: failed to save project %q: %v", n, project.Title, err))
		return
	}
	result.Processed++
}

func (i *Importer) importEvent(row RawRow, n int, meta Metadata, result *ImportResult) {
	event := i.normalizer.Event(row)
	if err := i.validator.ValidateEvent(event, n); err != nil {
		result.fail(err.Error())
		return
	}

	event.AddedBy = meta.AddedBy
	event.ImportBatchID = meta.BatchID
	if err := i.store.InsertEvent(event); err != nil {
		result.fail(fmt.Sprintf("Row %d: failed to save event %q: %v", n, event.Title, err))
		return
	}
	result.Processed++
}

func (r *ImportResult) fail(detail string) {
	r.Errors++
	r.ErrorDetails = append(r.ErrorDetails, detail)
}
