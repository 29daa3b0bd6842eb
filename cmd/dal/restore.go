// Package main is the entry point for the dal calendar application.
// This file contains the restore subcommand handler.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
)

// restoreHelpText is the help message for the restore subcommand.
const restoreHelpText = `dal restore - Restore the event file from a backup

USAGE:
    dal restore [OPTIONS] [BACKUP_NAME]

OPTIONS:
    --latest       Restore from the most recent backup
    --force, -f    Skip confirmation prompt
    --file PATH    Use PATH as the event file
    -h, --help     Show this help message

ARGUMENTS:
    BACKUP_NAME    Name of the backup to restore (e.g., 2026-08-15_143022_000)
                   Use 'dal backup --list' to see available backups.

DESCRIPTION:
    Replaces the event file with the copy in the named backup. A safety
    backup of the current file is created first.

EXAMPLES:
    # Restore from a specific backup
    dal restore 2026-08-15_143022_000

    # Restore from the most recent backup
    dal restore --latest

    # Restore without confirmation prompt
    dal restore --force 2026-08-15_143022_000
`

// runRestore handles the "dal restore" subcommand.
func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)

	latestFlag := fs.Bool("latest", false, "restore from most recent backup")
	forceFlag := fs.Bool("force", false, "skip confirmation prompt")
	fs.BoolVar(forceFlag, "f", false, "skip confirmation prompt (shorthand)")

	fileFlag := fs.String("file", "", "path to the event file")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, restoreHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(restoreHelpText)
		os.Exit(0)
	}

	manager := newBackupManager(*fileFlag)

	// Determine which backup to restore
	var backupName string
	if *latestFlag {
		backups, err := manager.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing backups: %v\n", err)
			os.Exit(1)
		}
		if len(backups) == 0 {
			fmt.Fprintln(os.Stderr, "No backups available.")
			os.Exit(1)
		}
		backupName = backups[0].Name
	} else if fs.NArg() > 0 {
		backupName = fs.Arg(0)
	} else {
		fmt.Fprintln(os.Stderr, "Error: no backup specified")
		fmt.Fprintln(os.Stderr, "Use 'dal restore BACKUP_NAME' or 'dal restore --latest'")
		fmt.Fprintln(os.Stderr, "Run 'dal backup --list' to see available backups.")
		os.Exit(1)
	}

	info, err := findBackup(manager, backupName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Restoring from backup: %s\n", info.Name)
	fmt.Printf("  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Events: %d, Holidays: %d\n", info.Stats["events"], info.Stats["holidays"])
	fmt.Println()

	// Confirm unless --force is set
	if !*forceFlag {
		fmt.Println("⚠ This will overwrite your current events.")
		fmt.Print("Continue? [y/N] ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			os.Exit(1)
		}

		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Restore cancelled.")
			os.Exit(0)
		}
	}

	fmt.Println("✓ Creating safety backup first...")
	if err := manager.Restore(backupName); err != nil {
		fmt.Fprintf(os.Stderr, "Error restoring backup: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Restored successfully from %s\n", backupName)
}
