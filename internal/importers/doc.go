// Package importers implements bulk import of club members, projects and
// events from uploaded CSV or JSON files.
//
// # Architecture
//
// One uploaded file flows through:
//
//	content → Format Parser → []RawRow → Normalizer → Validator → DuplicateDetector → Store
//
// ParseDelimitedText and ParseJSONText turn text into RawRows. The Normalizer
// maps each row onto an entities.Member, entities.Project or entities.Event
// using an explicit AliasTable, coercing arrays, booleans, dates and integers
// and filling defaults. The Validator enforces required fields and email
// shape. For member imports the DuplicateDetector compares lower-cased emails
// against storage and against earlier rows of the same batch. Accepted rows
// are inserted one at a time and the Importer assembles an ImportResult.
//
// # Failure Modes
//
// A file that cannot be read in its declared format (ErrEmptyInput,
// *MalformedJSONError, ErrInvalidJSONRoot) aborts the batch and nothing is
// written. A CSV line with broken quoting only drops that line. Everything
// else is per row: validation failures and persistence failures increment
// Errors, duplicates increment Duplicates, and the batch continues. Imports are not transactional.
//
// # Example Usage
//
//	importer := importers.NewImporter(store)
//	result, err := importer.ImportBatch(content, importers.FormatCSV, importers.EntityMember,
//		importers.Metadata{AddedBy: "admin"})
package importers
