package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davinci-coder-club/clubsite/internal/audit"
	"github.com/davinci-coder-club/clubsite/internal/database"
	auditRepo "github.com/davinci-coder-club/clubsite/internal/database/audit"
	"github.com/davinci-coder-club/clubsite/internal/importers"
	"github.com/davinci-coder-club/clubsite/internal/services"
	"github.com/davinci-coder-club/clubsite/internal/tasks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeTaskQueue struct {
	mu     sync.Mutex
	tasks  []backlite.Task
	status backlite.TaskStatus
	err    error
}

func (q *fakeTaskQueue) Enqueue(task backlite.Task) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return "", q.err
	}
	q.tasks = append(q.tasks, task)
	return "task-1", nil
}

func (q *fakeTaskQueue) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	if q.err != nil {
		return 0, q.err
	}
	return q.status, nil
}

type testServer struct {
	router   *gin.Engine
	db       *database.Database
	store    *database.ImportStore
	auditSvc *audit.Service
	queue    *fakeTaskQueue
}

func setupImportServer(t *testing.T, maxUploadBytes int64) *testServer {
	t.Helper()

	dbPath := "./test_import_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	store := database.NewImportStore(db)
	auditSvc := audit.NewService(auditRepo.NewRepository(db.DB))
	importService := services.NewImportService(importers.NewImporter(store), auditSvc, nil)
	queue := &fakeTaskQueue{status: backlite.TaskStatusPending}

	t.Cleanup(func() {
		auditSvc.Wait()
		db.Close()
		os.Remove(dbPath)
	})

	router := NewRouter(RouterConfig{
		Database:       db,
		Importer:       importService,
		TaskQueue:      queue,
		Members:        store.Members,
		Projects:       store.Projects,
		Events:         store.Events,
		AuditReader:    auditSvc,
		MaxUploadBytes: maxUploadBytes,
		DefaultAddedBy: "admin",
		Version:        "test",
	})

	return &testServer{router: router, db: db, store: store, auditSvc: auditSvc, queue: queue}
}

func uploadRequest(t *testing.T, path, filename, content string, fields map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestImportController_ImportMembersCSV(t *testing.T) {
	s := setupImportServer(t, 0)

	w := s.do(uploadRequest(t, "/api/import/members", "members.csv",
		"name,email\nJack,jack@x.com\nJack Again,JACK@x.com\n,nobody@x.com\n", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(3), body["total"])
	assert.Equal(t, float64(1), body["processed"])
	assert.Equal(t, float64(1), body["duplicates"])
	assert.Equal(t, float64(1), body["errors"])
	assert.Len(t, body["errorDetails"], 1)

	members, total, err := s.store.Members.ListMembers(10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "admin", members[0].AddedBy)
}

func TestImportController_FormatResolution(t *testing.T) {
	s := setupImportServer(t, 0)

	t.Run("explicit format wins over extension", func(t *testing.T) {
		w := s.do(uploadRequest(t, "/api/import/projects", "projects.txt", `[{"title":"Site"}]`,
			map[string]string{"format": "json"}))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"processed":1`)
	})

	t.Run("sniffed when extension is unknown", func(t *testing.T) {
		w := s.do(uploadRequest(t, "/api/import/events", "upload", `{"title":"Hack Night","venue":"Lab"}`, nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"processed":1`)
	})

	t.Run("unknown explicit format", func(t *testing.T) {
		w := s.do(uploadRequest(t, "/api/import/events", "events.csv", "title\nA\n", map[string]string{"format": "xml"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestImportController_ParseErrorIsBadRequest(t *testing.T) {
	s := setupImportServer(t, 0)

	w := s.do(uploadRequest(t, "/api/import/events", "events.json", "{bad json}", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "JSON parsing error")

	w = s.do(uploadRequest(t, "/api/import/members", "members.csv", "name,email\n", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least a header and one data row")
}

func TestImportController_BadRequests(t *testing.T) {
	s := setupImportServer(t, 0)

	w := s.do(uploadRequest(t, "/api/import/sponsors", "s.csv", "name\nA\n", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(uploadRequest(t, "/api/import/members", "", "", map[string]string{"format": "csv"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No file provided")
}

func TestImportController_UploadTooLarge(t *testing.T) {
	s := setupImportServer(t, 64)

	content := "name,email\n" + strings.Repeat("Someone,someone@x.com\n", 20)
	w := s.do(uploadRequest(t, "/api/import/members", "members.csv", content, nil))

	assert.Contains(t, []int{http.StatusBadRequest, http.StatusRequestEntityTooLarge}, w.Code)
	_, total, err := s.store.Members.ListMembers(10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestImportController_ImportAsync(t *testing.T) {
	s := setupImportServer(t, 0)

	w := s.do(uploadRequest(t, "/api/import/members/async", "members.json", `[{"name":"Ana","email":"ana@x.com"}]`,
		map[string]string{"added_by": "registrar"}))

	require.Equal(t, http.StatusAccepted, w.Code)

	var resp ImportAcceptedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "task-1", resp.TaskID)
	assert.NotEmpty(t, resp.BatchID)
	assert.Equal(t, "/api/tasks/task-1", resp.StatusURL)

	require.Len(t, s.queue.tasks, 1)
	task, ok := s.queue.tasks[0].(tasks.ImportFileTask)
	require.True(t, ok)
	assert.Equal(t, importers.FormatJSON, task.Format)
	assert.Equal(t, importers.EntityMember, task.EntityType)
	assert.Equal(t, "registrar", task.AddedBy)
	assert.Equal(t, resp.BatchID, task.BatchID)
}

func TestImportController_ImportAsyncEnqueueFailure(t *testing.T) {
	s := setupImportServer(t, 0)
	s.queue.err = errors.New("queue closed")

	w := s.do(uploadRequest(t, "/api/import/projects/async", "p.csv", "title\nA\n", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestImportController_ImportHistory(t *testing.T) {
	s := setupImportServer(t, 0)

	w := s.do(uploadRequest(t, "/api/import/projects", "projects.csv", "title\nSite\nBot\n", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var result importers.ImportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotEmpty(t, result.BatchID)

	s.auditSvc.Wait()

	w = s.do(httptest.NewRequest("GET", "/api/imports", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), result.BatchID)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = s.do(httptest.NewRequest("GET", "/api/imports/"+result.BatchID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var record ImportRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, "project", record.Entity)
	assert.Equal(t, "project_csv_import", record.Action)
	require.NotNil(t, record.Result)
	assert.Equal(t, 2, record.Result.Processed)

	w = s.do(httptest.NewRequest("GET", "/api/imports/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordsController_Listings(t *testing.T) {
	s := setupImportServer(t, 0)

	s.do(uploadRequest(t, "/api/import/members", "m.csv", "name,email\nBo,bo@x.com\nAl,al@x.com\n", nil))
	s.do(uploadRequest(t, "/api/import/events", "e.json", `[{"title":"Hack Night","venue":"Lab","date":"2026-11-01"}]`, nil))

	w := s.do(httptest.NewRequest("GET", "/api/members?limit=1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Data    []map[string]any `json:"data"`
		Total   int64            `json:"total"`
		HasMore bool             `json:"has_more"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(2), page.Total)
	assert.True(t, page.HasMore)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Al", page.Data[0]["name"])

	w = s.do(httptest.NewRequest("GET", "/api/events", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hack Night")

	w = s.do(httptest.NewRequest("GET", "/api/projects?limit=bad", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTasksController_GetTaskStatus(t *testing.T) {
	s := setupImportServer(t, 0)

	w := s.do(httptest.NewRequest("GET", "/api/tasks/task-1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)

	s.queue.status = backlite.TaskStatusNotFound
	w = s.do(httptest.NewRequest("GET", "/api/tasks/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_OptionalRoutes(t *testing.T) {
	router := NewRouter(RouterConfig{Version: "test"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/tasks/x", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Metrics(t *testing.T) {
	router := NewRouter(RouterConfig{
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("clubsite_import_rows_total 0\n"))
		}),
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "clubsite_import_rows_total")
}
