package postgres

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aqlanhadi/pokertrack/analysis"
	"github.com/aqlanhadi/pokertrack/extractor"
	"github.com/aqlanhadi/pokertrack/extractor/common"
)

// ImportResult tracks the outcome of an import operation
type ImportResult struct {
	Processed int
	Skipped   int
	Failed    int
	Errors    []string
}

// ImportOptions configures the import behavior
type ImportOptions struct {
	Force     bool                 // Replace tournaments that already exist
	Verbose   bool                 // Enable verbose logging
	Processor *extractor.Processor // Defaults to the built-in currency table
}

func (opts ImportOptions) processor() *extractor.Processor {
	if opts.Processor != nil {
		return opts.Processor
	}
	return extractor.NewProcessor(nil)
}

// parseFiles reads every file into a row. Files that cannot be read or carry
// no tournament id are counted as failures.
func parseFiles(files []string, opts ImportOptions, result *ImportResult) []analysis.Row {
	processor := opts.processor()

	var rows []analysis.Row
	for _, filePath := range files {
		report, err := processor.ProcessFile(filePath)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		if report.TournamentID == common.Unknown {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: no tournament id extracted", report.Source))
			continue
		}
		rows = append(rows, analysis.Derive(report))
	}

	if opts.Verbose {
		for _, errMsg := range result.Errors {
			log.Printf("FAIL %s", errMsg)
		}
	}
	return rows
}

// store writes rows, replacing existing tournaments when forced. Deletes and
// inserts share one transaction so a failed insert keeps the old rows.
func (db *DB) store(ctx context.Context, rows []analysis.Row, opts ImportOptions, result *ImportResult) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if opts.Force {
		for _, row := range rows {
			exists, id, err := tournamentExists(ctx, tx, row.TournamentID)
			if err != nil {
				return err
			}
			if !exists {
				continue
			}
			if err := deleteTournament(ctx, tx, id); err != nil {
				return err
			}
			if opts.Verbose {
				log.Printf("REPLACE %s [%s]", row.Source, row.TournamentID)
			}
		}
	}

	inserted, err := createTournaments(ctx, tx, rows)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	result.Processed += inserted
	result.Skipped += len(rows) - inserted
	if opts.Verbose {
		log.Printf("OK   %d tournaments stored, %d already present", inserted, len(rows)-inserted)
	}
	return nil
}

func (db *DB) importFiles(ctx context.Context, files []string, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}
	rows := parseFiles(files, opts, result)
	if err := db.store(ctx, rows, opts, result); err != nil {
		return nil, err
	}
	return result, nil
}

// ImportFile parses a single summary file and stores it in the database
func (db *DB) ImportFile(ctx context.Context, filePath string, opts ImportOptions) (*ImportResult, error) {
	return db.importFiles(ctx, []string{filePath}, opts)
}

// ImportDirectory processes all summary files in a directory
func (db *DB) ImportDirectory(ctx context.Context, dirPath string, opts ImportOptions) (*ImportResult, error) {
	files, err := extractor.ReportFiles(dirPath)
	if err != nil {
		return nil, err
	}

	log.Printf("Scanning: %s", dirPath)
	log.Printf("Found %d files (%s)\n", len(files), extractor.ReportExtension)

	return db.importFiles(ctx, files, opts)
}

// Import handles both file and directory imports
func (db *DB) Import(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	if info.IsDir() {
		return db.ImportDirectory(ctx, path, opts)
	}

	return db.ImportFile(ctx, path, opts)
}
