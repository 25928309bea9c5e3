package audit

import (
	"errors"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	auditRepo "github.com/davinci-coder-club/clubsite/internal/database/audit"
	"github.com/davinci-coder-club/clubsite/internal/entities"
	"github.com/davinci-coder-club/clubsite/internal/importers"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	repo := auditRepo.NewRepository(db)
	svc := NewService(repo)

	return svc, db
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		Actor:       "admin",
		EventType:   entities.AuditEventImport,
		Action:      "test_import",
		Description: "Test import event",
		Status:      entities.AuditStatusSuccess,
	}

	err := svc.Log(event)
	require.NoError(t, err)

	var saved entities.AuditEvent
	err = db.First(&saved, event.ID).Error
	require.NoError(t, err)
	assert.Equal(t, "test_import", saved.Action)
}

func TestService_LogImport(t *testing.T) {
	svc, db := setupTestService(t)

	t.Run("successful import", func(t *testing.T) {
		result := importers.ImportResult{BatchID: "b-1", Total: 3, Processed: 1, Duplicates: 1, Errors: 1,
			ErrorDetails: []string{`Row 3: member (unnamed): missing required field "name"`}}
		svc.LogImport("admin", importers.EntityMember, importers.FormatCSV, result, nil)
		svc.Wait()

		var event entities.AuditEvent
		err := db.Where("action = ?", "member_csv_import").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusSuccess, event.Status)
		assert.Equal(t, "admin", event.Actor)
		assert.Equal(t, "member", event.EntityType)
		assert.Equal(t, "b-1", event.BatchID)
		assert.Equal(t, "Imported 1 of 3 member rows (1 duplicates, 1 errors)", event.Description)
		assert.Contains(t, event.Metadata, `"duplicates":1`)
		assert.Contains(t, event.Metadata, "missing required field")
	})

	t.Run("failed import", func(t *testing.T) {
		svc.LogImport("admin", importers.EntityEvent, importers.FormatJSON, importers.ImportResult{BatchID: "b-2"},
			errors.New("JSON parsing error: unexpected EOF"))
		svc.Wait()

		event, err := svc.GetImport("b-2")
		require.NoError(t, err)
		assert.Equal(t, "event_json_import", event.Action)
		assert.Equal(t, entities.AuditStatusFailed, event.Status)
		assert.Contains(t, event.ErrorMsg, "unexpected EOF")
	})
}

func TestService_LogCleanup(t *testing.T) {
	svc, _ := setupTestService(t)

	svc.LogCleanup(7, nil)
	svc.Wait()

	events, total, err := svc.GetEventsByType(entities.AuditEventCleanup, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Deleted 7 audit events", events[0].Description)
	assert.Equal(t, "scheduler", events[0].Actor)
}

func TestService_GetEvents(t *testing.T) {
	svc, _ := setupTestService(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Log(&entities.AuditEvent{
			EventType: entities.AuditEventImport,
			Action:    "test",
			Status:    entities.AuditStatusSuccess,
		}))
	}

	events, total, err := svc.GetEvents(10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, events, 5)
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, db := setupTestService(t)

	oldEvent := &entities.AuditEvent{
		EventType: entities.AuditEventImport,
		Action:    "old",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, db.Create(oldEvent).Error)

	newEvent := &entities.AuditEvent{
		EventType: entities.AuditEventCleanup,
		Action:    "new",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(newEvent).Error)

	// Delete events older than 24 hours
	deleted, err := svc.DeleteOldEvents(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var remaining []entities.AuditEvent
	db.Find(&remaining)
	assert.Len(t, remaining, 1)
	assert.Equal(t, "new", remaining[0].Action)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10c", 10, "exactly10c"},
		{"this is a very long string", 10, "this is..."},
		{"", 5, ""},
		{"Ошибка импорта", 10, "Оши..."},
		{"member 日本語の名前", 13, "member 日..."},
		{"member 日本語の名前", 12, "member ..."},
	}

	for _, tc := range tests {
		result := truncate(tc.input, tc.maxLen)
		assert.Equal(t, tc.expected, result)
		assert.True(t, utf8.ValidString(result), result)
		assert.LessOrEqual(t, len(result), tc.maxLen)
	}
}
