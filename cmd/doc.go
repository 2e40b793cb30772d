// Package cmd implements the command-line interface for hawk.
//
// This package provides the following commands:
//   - analyze: Run the full communication analysis for one project
//   - chat: Interactive questions over the loaded project data
//   - version: Display version information
package cmd
