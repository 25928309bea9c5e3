package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-runewidth"

	"github.com/davinci-coder-club/clubsite/internal/audit"
	"github.com/davinci-coder-club/clubsite/internal/config"
	"github.com/davinci-coder-club/clubsite/internal/database"
	auditrepo "github.com/davinci-coder-club/clubsite/internal/database/audit"
	"github.com/davinci-coder-club/clubsite/internal/entities"
	"github.com/davinci-coder-club/clubsite/internal/importers"
	"github.com/davinci-coder-club/clubsite/internal/services"
)

// maxDetailWidth is the terminal width row errors are cut to when not verbose.
const maxDetailWidth = 100

// ImportFileCommand imports a CSV or JSON file of members, projects or events.
type ImportFileCommand struct {
	FilePath     string
	Entity       string
	Format       string
	DatabasePath string
	AliasesFile  string
	AddedBy      string
	Verbose      bool
	DryRun       bool

	// Out receives the report; defaults to stdout.
	Out io.Writer
}

func NewImportFileCommand() *ImportFileCommand {
	return &ImportFileCommand{Out: os.Stdout}
}

func (cmd *ImportFileCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the CSV or JSON file to import (required)")
	fs.StringVar(&cmd.Entity, "entity", "", "Record type: member, project or event (required)")
	fs.StringVar(&cmd.Format, "format", "", "File format: csv or json (detected from the extension when omitted)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.AliasesFile, "aliases", "", "Optional YAML file with extra field aliases")
	fs.StringVar(&cmd.AddedBy, "added-by", "admin", "Who is recorded as having added the records")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every row error in full")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Validate and report without writing to the database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import -file <path> -entity <type> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Bulk import club members, projects or events from a CSV or JSON file.\n\n")
		fmt.Fprintf(os.Stderr, "CSV files need a header row; JSON files hold an array of objects or a\n")
		fmt.Fprintf(os.Stderr, "single object. Members are deduplicated by email.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Import the member roster:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file members.csv -entity member\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Check an events export without saving anything:\n")
		fmt.Fprintf(os.Stderr, "  %s import -file events.json -entity event -dry-run -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		fs.Usage()
		return fmt.Errorf("-file is required")
	}
	if cmd.Entity == "" {
		fs.Usage()
		return fmt.Errorf("-entity is required")
	}

	return nil
}

func (cmd *ImportFileCommand) Run() error {
	if cmd.Out == nil {
		cmd.Out = os.Stdout
	}

	entity, err := importers.ParseEntityType(cmd.Entity)
	if err != nil {
		return err
	}

	format, err := cmd.resolveFormat()
	if err != nil {
		return err
	}

	content, err := os.ReadFile(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.FilePath, err)
	}

	aliases := importers.DefaultAliases()
	if cmd.AliasesFile != "" {
		overrides, err := importers.LoadAliasOverrides(cmd.AliasesFile)
		if err != nil {
			return err
		}
		if err := aliases.Merge(overrides); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.Out, "Club Import")
	fmt.Fprintln(cmd.Out, "===========")
	fmt.Fprintf(cmd.Out, "File: %s (%s, %s)\n", cmd.FilePath, format, entity)

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	cmd.DatabasePath = absDBPath

	var result importers.ImportResult
	if cmd.DryRun {
		fmt.Fprintln(cmd.Out, "\n*** DRY RUN MODE - nothing will be saved ***")
		store, err := newDryRunStore(cmd.DatabasePath)
		if err != nil {
			return err
		}
		importer := importers.NewImporter(store, importers.WithAliases(aliases))
		result, err = importer.ImportBatch(string(content), format, entity, importers.Metadata{AddedBy: cmd.AddedBy})
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
	} else {
		fmt.Fprintf(cmd.Out, "Database: %s\n", cmd.DatabasePath)
		db, err := database.NewDatabase(cmd.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		// Imports run through the service so they show up in the audit trail
		auditService := audit.NewService(auditrepo.NewRepository(db.DB))
		importer := importers.NewImporter(database.NewImportStore(db), importers.WithAliases(aliases))
		service := services.NewImportService(importer, auditService, nil)

		result, err = service.Import(services.ImportRequest{
			Content: content,
			Format:  format,
			Entity:  entity,
			AddedBy: cmd.AddedBy,
		})
		auditService.Wait()
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
	}

	cmd.printResult(result)

	if cmd.DryRun {
		fmt.Fprintln(cmd.Out, "\nDry run complete. Use without -dry-run to import.")
		return nil
	}

	fmt.Fprintln(cmd.Out, "\nImport complete!")
	return nil
}

func (cmd *ImportFileCommand) resolveFormat() (importers.Format, error) {
	if cmd.Format != "" {
		return importers.ParseFormat(cmd.Format)
	}
	return importers.DetectFormat(cmd.FilePath)
}

func (cmd *ImportFileCommand) printResult(result importers.ImportResult) {
	fmt.Fprintln(cmd.Out, "\n=== Import Summary ===")
	fmt.Fprintf(cmd.Out, "Batch:       %s\n", result.BatchID)
	fmt.Fprintf(cmd.Out, "Rows:        %d\n", result.Total)
	fmt.Fprintf(cmd.Out, "Imported:    %d\n", result.Processed)
	fmt.Fprintf(cmd.Out, "Duplicates:  %d\n", result.Duplicates)
	fmt.Fprintf(cmd.Out, "Errors:      %d\n", result.Errors)
	if result.SkippedRows > 0 {
		fmt.Fprintf(cmd.Out, "Skipped:     %d (malformed line or wrong column count)\n", result.SkippedRows)
	}

	if len(result.ErrorDetails) == 0 {
		return
	}

	fmt.Fprintf(cmd.Out, "\n%d rows failed:\n", len(result.ErrorDetails))
	for _, detail := range result.ErrorDetails {
		if !cmd.Verbose {
			detail = runewidth.Truncate(detail, maxDetailWidth, "...")
		}
		fmt.Fprintf(cmd.Out, "  [ERROR] %s\n", detail)
	}
}

// dryRunStore reports the emails already in the database, if there is one,
// and discards every insert.
type dryRunStore struct {
	existing []string
}

func newDryRunStore(dbPath string) (*dryRunStore, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return &dryRunStore{}, nil
	}

	db, err := database.NewDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	existing, err := database.NewImportStore(db).ExistingMemberEmails()
	if err != nil {
		return nil, err
	}
	return &dryRunStore{existing: existing}, nil
}

func (s *dryRunStore) ExistingMemberEmails() ([]string, error) {
	return s.existing, nil
}

func (s *dryRunStore) InsertMember(*entities.Member) error   { return nil }
func (s *dryRunStore) InsertProject(*entities.Project) error { return nil }
func (s *dryRunStore) InsertEvent(*entities.Event) error     { return nil }
