package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/davinci-coder-club/clubsite/internal/database/events"
	"github.com/davinci-coder-club/clubsite/internal/database/members"
	"github.com/davinci-coder-club/clubsite/internal/database/projects"
	"github.com/davinci-coder-club/clubsite/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	// Audit events are written from background goroutines while imports run.
	dsn := dbPath
	if !strings.Contains(dsn, "?") {
		dsn += "?_busy_timeout=5000"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.Member{},
		&entities.Project{},
		&entities.Event{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection is usable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// ImportStore is the write side used by the bulk importer. Inserts are
// plain appends; the members table's unique email index rejects a second
// record for the same identity key.
type ImportStore struct {
	Members  *members.Repository
	Projects *projects.Repository
	Events   *events.Repository
}

// NewImportStore builds an ImportStore over the database's repositories.
func NewImportStore(d *Database) *ImportStore {
	return &ImportStore{
		Members:  members.NewRepository(d.DB),
		Projects: projects.NewRepository(d.DB),
		Events:   events.NewRepository(d.DB),
	}
}

func (s *ImportStore) ExistingMemberEmails() ([]string, error) {
	return s.Members.ExistingMemberEmails()
}

func (s *ImportStore) InsertMember(member *entities.Member) error {
	return s.Members.InsertMember(member)
}

func (s *ImportStore) InsertProject(project *entities.Project) error {
	return s.Projects.InsertProject(project)
}

func (s *ImportStore) InsertEvent(event *entities.Event) error {
	return s.Events.InsertEvent(event)
}
