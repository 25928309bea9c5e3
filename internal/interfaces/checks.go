package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/davinci-coder-club/clubsite/internal/audit"
	"github.com/davinci-coder-club/clubsite/internal/database"
	"github.com/davinci-coder-club/clubsite/internal/database/events"
	"github.com/davinci-coder-club/clubsite/internal/database/members"
	"github.com/davinci-coder-club/clubsite/internal/database/projects"
	"github.com/davinci-coder-club/clubsite/internal/http"
	"github.com/davinci-coder-club/clubsite/internal/importers"
	"github.com/davinci-coder-club/clubsite/internal/metrics"
	"github.com/davinci-coder-club/clubsite/internal/scheduler"
	"github.com/davinci-coder-club/clubsite/internal/services"
	"github.com/davinci-coder-club/clubsite/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Import persistence
var _ importers.Store = (*database.ImportStore)(nil)
var _ importers.MemberStore = (*members.Repository)(nil)
var _ importers.ProjectStore = (*projects.Repository)(nil)
var _ importers.EventStore = (*events.Repository)(nil)

// Listings
var _ http.MemberLister = (*members.Repository)(nil)
var _ http.ProjectLister = (*projects.Repository)(nil)
var _ http.EventLister = (*events.Repository)(nil)

// =============================================================================
// Import Pipeline
// =============================================================================

var _ services.BatchImporter = (*importers.Importer)(nil)
var _ importers.Recorder = (*metrics.ImportMetrics)(nil)
var _ http.FileImporter = (*services.ImportService)(nil)
var _ tasks.FileImporter = (*services.ImportService)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

var _ services.ImportAuditor = (*audit.Service)(nil)
var _ services.UploadArchiver = (*audit.Archiver)(nil)
var _ http.ImportAuditReader = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.TaskEnqueuer = (*tasks.Client)(nil)
