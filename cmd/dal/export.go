// Package main is the entry point for the dal calendar application.
// This file contains the export subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dal/internal/config"
	"dal/internal/fsutil"
	"dal/internal/reports"
)

// exportHelpText is the help message for the export subcommand.
const exportHelpText = `dal export - Generate month reports

USAGE:
    dal export [OPTIONS] [MONTH]

OPTIONS:
    -m, --month MONTH  Month to report on (YYYY-MM)
    -f, --format FMT   Output format: markdown (default) or json
    -o, --output FILE  Write to file instead of stdout
    --file PATH        Use PATH as the event file
    -h, --help         Show this help message

ARGUMENTS:
    MONTH              Same as --month. Defaults to the current month.

DESCRIPTION:
    Generates a report listing every day of the month that carries
    events or holidays, with totals at the end. Reports can be output
    as Markdown (human-readable) or JSON (machine-readable).

EXAMPLES:
    # This month's report in Markdown
    dal export

    # A specific month
    dal export --month 2026-03

    # JSON format
    dal export --format json

    # Save to file
    dal export --output march.md
`

// runExport handles the "dal export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	monthFlag := fs.String("month", "", "month to report on (YYYY-MM)")
	fs.StringVar(monthFlag, "m", "", "month to report on (shorthand)")

	formatFlag := fs.String("format", "markdown", "output format: markdown or json")
	fs.StringVar(formatFlag, "f", "markdown", "output format (shorthand)")

	outputFlag := fs.String("output", "", "write to file instead of stdout")
	fs.StringVar(outputFlag, "o", "", "write to file (shorthand)")

	fileFlag := fs.String("file", "", "path to the event file")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, exportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(exportHelpText)
		os.Exit(0)
	}

	// Validate format
	format := *formatFlag
	if format != "markdown" && format != "json" && format != "md" {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q. Use 'markdown' or 'json'.\n", format)
		os.Exit(1)
	}
	if format == "md" {
		format = "markdown"
	}

	// Parse month flag or argument
	monthArg := *monthFlag
	if monthArg == "" && fs.NArg() > 0 {
		monthArg = fs.Arg(0)
	}
	month := time.Now()
	if monthArg != "" {
		parsed, err := time.ParseInLocation("2006-01", monthArg, time.Local)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid month %q. Use YYYY-MM format.\n", monthArg)
			os.Exit(1)
		}
		month = parsed
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store := openStore(cfg, *fileFlag)
	report := reports.NewGenerator(store).GenerateMonth(month.Year(), month.Month())

	var output []byte
	if format == "json" {
		output, err = reports.FormatMonthJSON(report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting JSON: %v\n", err)
			os.Exit(1)
		}
	} else {
		output = reports.FormatMonthMarkdown(report)
	}

	// Write output
	if *outputFlag != "" {
		if err := os.MkdirAll(filepath.Dir(*outputFlag), 0700); err != nil && filepath.Dir(*outputFlag) != "." {
			fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
			os.Exit(1)
		}
		if err := fsutil.WriteFileAtomic(*outputFlag, output, 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Report written to %s\n", *outputFlag)
	} else {
		os.Stdout.Write(output)
	}
}
