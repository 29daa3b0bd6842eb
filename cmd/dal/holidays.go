// Package main is the entry point for the dal calendar application.
// This file contains the holidays subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"dal/internal/holiday"
	"dal/internal/storage"
)

// holidaysHelpText is the help message for the holidays subcommand.
const holidaysHelpText = `dal holidays - List Korean national holidays

USAGE:
    dal holidays [OPTIONS] [YEAR]

OPTIONS:
    -h, --help     Show this help message

ARGUMENTS:
    YEAR           Year to list (e.g., 2026). Defaults to the current year.

DESCRIPTION:
    Prints every Korean national holiday of the year in date order.
    Fixed-date holidays are known for any year; the lunar ones (Seollal,
    Buddha's Birthday, Chuseok) come from a built-in table covering
    recent years, and a note is printed for years outside it.

EXAMPLES:
    # This year's holidays
    dal holidays

    # A specific year
    dal holidays 2026
`

// runHolidays handles the "dal holidays" subcommand.
func runHolidays(args []string) {
	fs := flag.NewFlagSet("holidays", flag.ExitOnError)

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, holidaysHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(holidaysHelpText)
		os.Exit(0)
	}

	year := time.Now().Year()
	if fs.NArg() > 0 {
		parsed, err := strconv.Atoi(fs.Arg(0))
		if err != nil || parsed < 1 || parsed > 9999 {
			fmt.Fprintf(os.Stderr, "Error: invalid year %q\n", fs.Arg(0))
			os.Exit(1)
		}
		year = parsed
	}

	holidays := holiday.Korean{}.Lookup(year)

	dates := make([]string, 0, len(holidays))
	for date := range holidays {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	fmt.Printf("Korean national holidays in %d:\n", year)
	for _, date := range dates {
		day, err := time.Parse(storage.DateLayout, date)
		if err != nil {
			continue
		}
		fmt.Printf("  %s  %s  %s\n", date, day.Format("Mon"), holidays[date])
	}

	if !holiday.Covered(year) {
		fmt.Println()
		fmt.Printf("Note: %d is outside the built-in lunar table, so Seollal,\n", year)
		fmt.Println("Buddha's Birthday, and Chuseok are not listed.")
	}
}
