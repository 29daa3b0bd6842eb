// Package main is the entry point for the dal calendar application.
// It loads configuration, opens the event store, and starts the TUI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"dal/internal/alarm"
	"dal/internal/config"
	"dal/internal/holiday"
	"dal/internal/notify"
	"dal/internal/storage"
	"dal/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `dal - A terminal calendar with Korean holidays and alarms

USAGE:
    dal [OPTIONS]
    dal <command> [ARGS]

COMMANDS:
    backup           Create a backup of the event file
    backup --list    List available backups
    restore NAME     Restore from a specific backup
    restore --latest Restore from the most recent backup
    export           Generate a month report (Markdown)
    export -f json   Output report as JSON
    import FILE.ics  Import events from an iCalendar file
    holidays [YEAR]  List Korean national holidays for a year

OPTIONS:
    --file PATH      Use PATH as the event file
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    dal is a keyboard-driven month calendar. It keeps per-day events with
    optional alarms, marks Korean national holidays, and fires desktop
    notifications when an alarm comes due while the app is running.

KEYBINDINGS:
    h j k l, arrows  Move the selected day
    [ / ]            Previous / next month
    t                Jump to today
    a                Add an event on the selected day
    Enter            Edit the selected event
    x                Delete the selected event
    J / K            Select the next / previous event of the day
    Ctrl+R           Remove every event
    ?                Show help overlay
    q                Quit

DATA STORAGE:
    Events and materialized holidays live in a single JSON file,
    ~/.dal/events.json by default. Backups go to a backups/ directory
    next to it.

CONFIGURATION:
    Optional config file: ~/.config/dal/config.yaml
    Theme colors, key bindings, notifications, and the data file path
    can all be changed there.

EXAMPLES:
    # Start the app
    dal

    # Use a separate calendar file
    dal --file ~/work/calendar.json

    # Create a backup
    dal backup

    # This month's report as JSON
    dal export -f json

    # Import an exported calendar
    dal import holidays.ics

    # Holidays for a given year
    dal holidays 2026

    # Show version
    dal --version
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		case "holidays":
			runHolidays(os.Args[2:])
			return
		}
	}

	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	fileFlag := flag.String("file", "", "path to the event file")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("dal version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	// Reject unknown arguments
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store := openStore(cfg, *fileFlag)

	// The alarm checker runs beside the TUI and stops with it.
	var cancelAlarms context.CancelFunc
	if cfg.Notifications.Enabled {
		notifier := notify.New()
		checker := alarm.New(store, notifier)
		checker.SetSound(cfg.Notifications.Sound)

		var ctx context.Context
		ctx, cancelAlarms = context.WithCancel(context.Background())
		go func() {
			if err := checker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				fmt.Fprintf(os.Stderr, "Warning: alarm checker stopped: %v\n", err)
			}
		}()
	}

	var src holiday.Source
	if cfg.Holidays.Enabled {
		src = holiday.Korean{}
	}

	styles := ui.NewStylesFromTheme(&cfg.Theme)

	appCfg := &ui.AppConfig{
		Keys:                  &cfg.Keys,
		ConfirmDeletions:      cfg.UX.ConfirmDeletions,
		HolidaysEnabled:       cfg.Holidays.Enabled,
		NarrowLayoutThreshold: cfg.UX.NarrowLayoutThreshold,
	}

	runErr := ui.Run(store, styles, src, appCfg)
	if cancelAlarms != nil {
		cancelAlarms()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", runErr)
		os.Exit(1)
	}
}

// openStore opens the event file, preferring the --file override. A
// corrupt file that was rebuilt from its .bak copy is a warning; one
// that was not is fatal.
func openStore(cfg *config.Config, override string) *storage.Store {
	path := cfg.GetDataFile()
	if override != "" {
		path = override
	}

	store, err := storage.Open(path)
	if err != nil {
		var ce *storage.CorruptError
		if errors.As(err, &ce) && ce.Recovered {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			return store
		}
		fmt.Fprintf(os.Stderr, "Error opening event file: %v\n", err)
		fmt.Fprintln(os.Stderr, "If you have backups, try 'dal restore --latest'.")
		os.Exit(1)
	}
	return store
}
