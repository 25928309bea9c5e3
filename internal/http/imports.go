package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/davinci-coder-club/clubsite/internal/entities"
	"github.com/davinci-coder-club/clubsite/internal/importers"
	"github.com/davinci-coder-club/clubsite/internal/services"
	"github.com/davinci-coder-club/clubsite/internal/tasks"
)

// ImportController handles bulk uploads of members, projects and events.
type ImportController struct {
	importer       FileImporter
	queue          TaskQueue
	audit          ImportAuditReader
	maxUploadBytes int64
	defaultAddedBy string
}

// NewImportController creates a new ImportController. queue and audit may be nil.
func NewImportController(importer FileImporter, queue TaskQueue, audit ImportAuditReader, maxUploadBytes int64, defaultAddedBy string) *ImportController {
	return &ImportController{
		importer:       importer,
		queue:          queue,
		audit:          audit,
		maxUploadBytes: maxUploadBytes,
		defaultAddedBy: defaultAddedBy,
	}
}

// ImportAcceptedResponse is returned when an upload is queued.
type ImportAcceptedResponse struct {
	TaskID    string `json:"task_id"`
	BatchID   string `json:"batch_id"`
	StatusURL string `json:"status_url"`
	ImportURL string `json:"import_url"`
}

// ImportRecord is one entry of the import history.
type ImportRecord struct {
	BatchID   string                  `json:"batch_id"`
	Entity    string                  `json:"entity"`
	Action    string                  `json:"action"`
	Status    entities.AuditStatus    `json:"status"`
	Actor     string                  `json:"actor,omitempty"`
	Error     string                  `json:"error,omitempty"`
	CreatedAt string                  `json:"created_at"`
	Result    *importers.ImportResult `json:"result,omitempty"`
}

// Import handles POST /api/import/:entity
// Expects a multipart "file" field and an optional "format" field (csv or json).
// Without "format" the file extension decides, then the content itself.
func (ic *ImportController) Import(c *gin.Context) {
	req, ok := ic.readUpload(c)
	if !ok {
		return
	}

	result, err := ic.importer.Import(req)
	if err != nil {
		if isClientImportError(err) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err, "import "+string(req.Entity))
		return
	}

	c.JSON(http.StatusOK, result)
}

// ImportAsync handles POST /api/import/:entity/async
// Accepts the same input as Import and queues it as a background task.
func (ic *ImportController) ImportAsync(c *gin.Context) {
	if ic.queue == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is disabled")
		return
	}

	req, ok := ic.readUpload(c)
	if !ok {
		return
	}
	req.BatchID = uuid.New().String()

	taskID, err := ic.queue.Enqueue(tasks.ImportFileTask{
		Content:    string(req.Content),
		Format:     req.Format,
		EntityType: req.Entity,
		AddedBy:    req.AddedBy,
		BatchID:    req.BatchID,
	})
	if err != nil {
		respondInternalError(c, err, "enqueue import")
		return
	}

	log.Printf("[IMPORT] batch %s: queued %s %s import as task %s", req.BatchID, req.Entity, req.Format, taskID)

	c.JSON(http.StatusAccepted, ImportAcceptedResponse{
		TaskID:    taskID,
		BatchID:   req.BatchID,
		StatusURL: "/api/tasks/" + taskID,
		ImportURL: "/api/imports/" + req.BatchID,
	})
}

// ListImports handles GET /api/imports
// Returns the import history, most recent first.
func (ic *ImportController) ListImports(c *gin.Context) {
	if ic.audit == nil {
		respondError(c, http.StatusServiceUnavailable, "import history is not available")
		return
	}

	limit, offset, ok := parsePagination(c)
	if !ok {
		return
	}

	events, total, err := ic.audit.GetEventsByType(entities.AuditEventImport, limit, offset)
	if err != nil {
		respondInternalError(c, err, "list imports")
		return
	}

	records := make([]ImportRecord, 0, len(events))
	for i := range events {
		records = append(records, newImportRecord(&events[i]))
	}

	c.JSON(http.StatusOK, newPaginatedResponse(records, total, limit, offset))
}

// GetImport handles GET /api/imports/:batchId
// Returns the recorded outcome of one import batch.
func (ic *ImportController) GetImport(c *gin.Context) {
	if ic.audit == nil {
		respondError(c, http.StatusServiceUnavailable, "import history is not available")
		return
	}

	event, err := ic.audit.GetImport(c.Param("batchId"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "import")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get import")
		return
	}

	c.JSON(http.StatusOK, newImportRecord(event))
}

// readUpload validates the request and reads the uploaded file.
// It responds with an error and returns false when the request is unusable.
func (ic *ImportController) readUpload(c *gin.Context) (services.ImportRequest, bool) {
	entity, err := importers.ParseEntityType(c.Param("entity"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return services.ImportRequest{}, false
	}

	if ic.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ic.maxUploadBytes)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			respondError(c, http.StatusRequestEntityTooLarge, ic.tooLargeMessage())
			return services.ImportRequest{}, false
		}
		respondBadRequest(c, "No file provided")
		return services.ImportRequest{}, false
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		if isTooLarge(err) {
			respondError(c, http.StatusRequestEntityTooLarge, ic.tooLargeMessage())
			return services.ImportRequest{}, false
		}
		respondBadRequest(c, "Failed to read uploaded file")
		return services.ImportRequest{}, false
	}

	var format importers.Format
	if f := c.PostForm("format"); f != "" {
		format, err = importers.ParseFormat(f)
		if err != nil {
			respondBadRequest(c, err.Error())
			return services.ImportRequest{}, false
		}
	} else if format, err = importers.DetectFormat(header.Filename); err != nil {
		format = importers.SniffFormat(content)
	}

	addedBy := c.PostForm("added_by")
	if addedBy == "" {
		addedBy = ic.defaultAddedBy
	}

	return services.ImportRequest{
		Content: content,
		Format:  format,
		Entity:  entity,
		AddedBy: addedBy,
	}, true
}

func (ic *ImportController) tooLargeMessage() string {
	return fmt.Sprintf("upload exceeds %d bytes", ic.maxUploadBytes)
}

func newImportRecord(event *entities.AuditEvent) ImportRecord {
	record := ImportRecord{
		BatchID:   event.BatchID,
		Entity:    event.EntityType,
		Action:    event.Action,
		Status:    event.Status,
		Actor:     event.Actor,
		Error:     event.ErrorMsg,
		CreatedAt: event.CreatedAt.Format(time.RFC3339),
	}
	if event.Metadata != "" {
		var result importers.ImportResult
		if err := json.Unmarshal([]byte(event.Metadata), &result); err == nil {
			record.Result = &result
		}
	}
	return record
}

// isClientImportError reports whether err was caused by the uploaded content.
func isClientImportError(err error) bool {
	return importers.IsParseError(err) ||
		errors.Is(err, importers.ErrUnsupportedFormat) ||
		errors.Is(err, importers.ErrUnsupportedEntity)
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
