// Package cli implements the logchecker command-line entry point.
//
// There is a single Cobra root command with no subcommands and no flags.
// Running it:
//
//  1. Checks that stdout is a terminal
//  2. Loads .logchecker.yaml (or the global config), falling back to defaults
//  3. Opens the diagnostic log file (the terminal belongs to the dashboard)
//  4. Opens the SQLite store read-only
//  5. Wires the dashboard.Orchestrator to a monitor.Model and runs it
//
// The command returns when the user presses q. Store failures after startup
// never end the program; they show up in the dashboard's status line.
package cli
