// Package main is the entry point for the dal calendar application.
// This file contains the backup subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"dal/internal/backup"
	"dal/internal/config"
)

// backupHelpText is the help message for the backup subcommand.
const backupHelpText = `dal backup - Create and manage backups

USAGE:
    dal backup [OPTIONS]

OPTIONS:
    -l, --list     List available backups
    --prune N      Keep the N newest backups and delete the rest
    --file PATH    Use PATH as the event file
    -h, --help     Show this help message

DESCRIPTION:
    Creates a timestamped backup of the event file. Backups are stored
    in a backups/ directory next to it and can be restored later.

EXAMPLES:
    # Create a new backup
    dal backup

    # List all available backups
    dal backup --list

    # Keep only the 10 newest backups
    dal backup --prune 10
`

// runBackup handles the "dal backup" subcommand.
func runBackup(args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)

	listFlag := fs.Bool("list", false, "list available backups")
	fs.BoolVar(listFlag, "l", false, "list available backups (shorthand)")

	pruneFlag := fs.Int("prune", 0, "keep the N newest backups")
	fileFlag := fs.String("file", "", "path to the event file")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, backupHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(backupHelpText)
		os.Exit(0)
	}

	manager := newBackupManager(*fileFlag)

	switch {
	case *listFlag:
		listBackups(manager)
	case *pruneFlag > 0:
		pruneBackups(manager, *pruneFlag)
	default:
		createBackup(manager)
	}
}

// newBackupManager builds a backup manager from the configured event
// file, honoring the --file override.
func newBackupManager(override string) *backup.Manager {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	path := cfg.GetDataFile()
	if override != "" {
		path = override
	}
	return backup.NewManager(path, version)
}

// createBackup creates a new backup and displays the result.
func createBackup(manager *backup.Manager) {
	name, err := manager.Create()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating backup: %v\n", err)
		os.Exit(1)
	}

	info, err := findBackup(manager, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading backup info: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Backup created: %s\n", name)
	fmt.Printf("  Events: %d, Holidays: %d\n", info.Stats["events"], info.Stats["holidays"])
	fmt.Printf("  Location: %s\n", info.Path)
}

// listBackups lists all available backups.
func listBackups(manager *backup.Manager) {
	backups, err := manager.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing backups: %v\n", err)
		os.Exit(1)
	}

	if len(backups) == 0 {
		fmt.Println("No backups available.")
		fmt.Println("Run 'dal backup' to create one.")
		return
	}

	fmt.Println("Available backups:")
	for _, b := range backups {
		age := formatAge(b.CreatedAt)
		fmt.Printf("  %s  (%s)   Events: %d, Holidays: %d\n",
			b.Name, age, b.Stats["events"], b.Stats["holidays"])
	}
}

// pruneBackups deletes all but the newest keepCount backups.
func pruneBackups(manager *backup.Manager, keepCount int) {
	deleted, err := manager.Prune(keepCount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error pruning backups: %v\n", err)
		os.Exit(1)
	}
	if deleted == 0 {
		fmt.Printf("Nothing to prune, %d or fewer backups on disk.\n", keepCount)
		return
	}
	fmt.Printf("✓ Deleted %d old backup(s), kept the newest %d.\n", deleted, keepCount)
}

// findBackup looks up one backup by name.
func findBackup(manager *backup.Manager, name string) (*backup.Info, error) {
	backups, err := manager.List()
	if err != nil {
		return nil, err
	}
	for i := range backups {
		if backups[i].Name == name {
			return &backups[i], nil
		}
	}
	return nil, fmt.Errorf("backup %q not found", name)
}

// formatAge returns a human-readable age string.
func formatAge(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case d < 24*time.Hour:
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	}
}
