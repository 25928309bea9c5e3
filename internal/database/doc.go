// Package database provides the data access layer for the club site.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, ImportStore
//	├── members/         # Member inserts, identity lookups and listing
//	├── projects/        # Project inserts and listing
//	├── events/          # Event inserts and listing
//	└── audit/           # Import audit trail
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./clubsite.db")
//
//	membersRepo := members.NewRepository(db.DB)
//	emails, err := membersRepo.ExistingMemberEmails()
//
// ImportStore bundles the members, projects and events repositories behind
// the importers.Store interface:
//
//	importer := importers.NewImporter(database.NewImportStore(db))
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/sponsors/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Add the entity to the AutoMigrate list in NewDatabase
//  5. Add a compile-time interface check in internal/interfaces
package database
