package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/davinci-coder-club/clubsite/internal/entities"
	"github.com/davinci-coder-club/clubsite/internal/importers"
	"github.com/davinci-coder-club/clubsite/internal/services"
)

// This file consolidates the interfaces HTTP controllers depend on.
// The database, audit, services and tasks packages provide the implementations.

// FileImporter imports an uploaded file synchronously.
type FileImporter interface {
	Import(req services.ImportRequest) (importers.ImportResult, error)
}

// TaskQueue enqueues background tasks and reports their status.
type TaskQueue interface {
	Enqueue(task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// MemberLister provides paginated read access to members.
type MemberLister interface {
	ListMembers(limit, offset int) ([]entities.Member, int64, error)
}

// ProjectLister provides paginated read access to projects.
type ProjectLister interface {
	ListProjects(limit, offset int) ([]entities.Project, int64, error)
}

// EventLister provides paginated read access to events.
type EventLister interface {
	ListEvents(limit, offset int) ([]entities.Event, int64, error)
}

// ImportAuditReader reads the import audit trail.
type ImportAuditReader interface {
	GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
	GetImport(batchID string) (*entities.AuditEvent, error)
}
