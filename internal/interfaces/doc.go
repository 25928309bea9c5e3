// Package interfaces documents the core abstractions used throughout the application.
//
// This package consolidates interface documentation to help contributors find
// extension points and see how to implement new functionality.
//
// # Interface Categories
//
// ## Import Pipeline Interfaces
//
//   - Store: Persistence a batch import writes to (internal/importers/pipeline.go)
//   - MemberStore, ProjectStore, EventStore: Per-entity writes (internal/importers/pipeline.go)
//   - Recorder: Batch outcome observer, implemented by metrics (internal/importers/pipeline.go)
//
// ## Service Interfaces
//
//   - BatchImporter: Runs one batch import (internal/services/interfaces.go)
//   - ImportAuditor: Records finished imports (internal/services/interfaces.go)
//   - UploadArchiver: Keeps raw uploads and reports (internal/services/interfaces.go)
//
// ## HTTP Interfaces
//
//   - FileImporter: Synchronous upload import (internal/http/stores.go)
//   - TaskQueue: Background import queue and status (internal/http/stores.go)
//   - MemberLister, ProjectLister, EventLister: Listings (internal/http/stores.go)
//   - ImportAuditReader: Import history (internal/http/stores.go)
//
// ## Background Task Interfaces
//
//   - FileImporter: Import executed by a queued task (internal/tasks/import_file.go)
//   - AuditEventCleaner: Audit retention (internal/tasks/cleanup_audit.go)
//   - TaskEnqueuer: Cron-driven task producer (internal/scheduler/audit_cleanup.go)
//
// # Adding a New Entity Type
//
// To import a new kind of record (e.g., sponsors):
//
//  1. Add the entity in internal/entities/ and register it in AutoMigrate.
//
//  2. Add an EntityType constant and its alias table in internal/importers/aliases.go.
//
//  3. Add a Normalizer method and a Validator method, then a store interface:
//
//     type SponsorStore interface {
//         InsertSponsor(sponsor *entities.Sponsor) error
//     }
//
//  4. Create the repository in internal/database/sponsors/ and delegate to it
//     from database.ImportStore.
//
//  5. Add the compile-time check:
//
//     var _ importers.SponsorStore = (*sponsors.Repository)(nil)
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/sponsors/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Implement interface methods
//
//  4. Add compile-time check in checks.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
