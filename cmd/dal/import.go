// Package main is the entry point for the dal calendar application.
// This file contains the import subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dal/internal/config"
	"dal/internal/importer"
)

// importHelpText is the help message for the import subcommand.
const importHelpText = `dal import - Import events from calendar files

USAGE:
    dal import [OPTIONS] <file>

OPTIONS:
    --format FMT   File format, inferred from the extension by default
    --dry-run      Preview import without making changes
    --file PATH    Use PATH as the event file
    -h, --help     Show this help message

FORMATS:
    ics            iCalendar file (RFC 5545), as exported by Google
                   Calendar, Apple Calendar, and most other tools

DESCRIPTION:
    Reads VEVENT entries from an iCalendar file and adds one event per
    entry on its start date. All-day and timed entries both map to the
    day they start on. Entries whose title already exists on that day
    are skipped, so importing the same file twice is safe. Imported
    events carry no alarms.

EXAMPLES:
    # Import a calendar export
    dal import ~/Downloads/calendar.ics

    # Preview before importing
    dal import --dry-run calendar.ics
`

// runImport handles the "dal import" subcommand.
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	formatFlag := fs.String("format", "", "file format")
	dryRunFlag := fs.Bool("dry-run", false, "preview import without making changes")
	fileFlag := fs.String("file", "", "path to the event file")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, importHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(importHelpText)
		os.Exit(0)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: missing file argument\n\n")
		fmt.Fprintf(os.Stderr, "Usage: dal import <file>\n")
		fmt.Fprintf(os.Stderr, "Formats: %s\n", strings.Join(importer.SupportedFormats(), ", "))
		fmt.Fprintf(os.Stderr, "\nRun 'dal import --help' for more information.\n")
		os.Exit(1)
	}

	filePath := fs.Arg(0)
	format := strings.ToLower(*formatFlag)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), ".")
	}

	imp := importer.GetImporter(format)
	if imp == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", format)
		fmt.Fprintf(os.Stderr, "Supported formats: %s\n", strings.Join(importer.SupportedFormats(), ", "))
		os.Exit(1)
	}

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if *dryRunFlag {
		runImportDryRun(imp, file)
	} else {
		runImportActual(imp, file, *fileFlag)
	}
}

// runImportDryRun previews the import without making changes.
func runImportDryRun(imp importer.Importer, file *os.File) {
	events, err := imp.Preview(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing file: %v\n", err)
		os.Exit(1)
	}

	if len(events) == 0 {
		fmt.Println("No events found to import.")
		os.Exit(0)
	}

	fmt.Printf("Preview: %d events to import\n", len(events))
	fmt.Println("────────────────────────────")

	// Show first 20 events
	showCount := len(events)
	if showCount > 20 {
		showCount = 20
	}

	for i := 0; i < showCount; i++ {
		ev := events[i]
		fmt.Printf("  %s  %s\n", ev.Date, ev.Title)
	}

	if len(events) > 20 {
		fmt.Printf("  ... and %d more\n", len(events)-20)
	}

	fmt.Println()
	fmt.Println("Run without --dry-run to import.")
}

// runImportActual performs the actual import.
func runImportActual(imp importer.Importer, file *os.File, override string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store := openStore(cfg, override)

	result, err := imp.Import(file, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Import complete!\n")
	fmt.Printf("  Added:   %d events\n", result.Added)
	if result.Skipped > 0 {
		fmt.Printf("  Skipped: %d duplicates\n", result.Skipped)
	}
	if len(result.Errors) > 0 {
		fmt.Printf("  Errors:  %d\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("    - %s\n", e)
		}
	}
}
