// Package cmd implements the command-line interface for clinicdesk.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing the clinic scheduling tools
//   - auth: Run the interactive OAuth consent flow for the clinic's calendar
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
