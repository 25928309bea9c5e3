package http

import (
	"net/http"

	"github.com/davinci-coder-club/clubsite/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. Optional dependencies left nil disable
// the routes that need them.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Importer FileImporter

	// Background import and task status; nil when the queue is disabled
	TaskQueue TaskQueue

	// Listings
	Members  MemberLister
	Projects ProjectLister
	Events   EventLister

	// Import history
	AuditReader ImportAuditReader

	// Prometheus exposition handler; nil disables /metrics
	MetricsHandler http.Handler

	// Import limits and defaults
	MaxUploadBytes int64
	DefaultAddedBy string

	// Application info
	Version string
}
