// Package llm wraps an OpenAI-compatible inference endpoint behind a
// client that never fails: any transport or model error degrades to a
// fixed fallback string so analysis runs complete with whatever data is
// available.
package llm
