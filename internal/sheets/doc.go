// Package sheets provides the agent's tabular data source: a read-only
// Google Sheets client where each worksheet tab is one project and each
// row is one prospect record. API failures surface as empty data rather
// than errors, so a broken spreadsheet degrades the analysis instead of
// aborting it.
package sheets
