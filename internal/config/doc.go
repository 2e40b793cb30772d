// Package config loads agent configuration from a YAML file with
// environment variable overrides, layered over built-in defaults.
//
// Credentials are wrapped in the Secret type so accidental logging or
// serialization never leaks them. Validation errors carry remediation
// hints and are non-fatal: a run degrades to whatever data sources
// remain usable.
package config
