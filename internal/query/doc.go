// Package query contains the chat interface's intent-routing
// heuristics: extracting candidate entity names from free text and
// classifying what kind of answer a query wants.
package query
