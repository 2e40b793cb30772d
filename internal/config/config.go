package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/mzafir/hawk-ai-agent/internal/thread"
)

// envPrefix is the prefix for all environment overrides,
// e.g. HAWK_MAIL_HOST -> mail.host.
const envPrefix = "HAWK_"

// ErrMissingCredentials indicates a required credential is absent.
// Callers surface it with a remediation hint and degrade where
// feasible instead of aborting the whole run.
var ErrMissingCredentials = errors.New("missing credentials")

// Config is the full agent configuration. All knobs are explicit here;
// nothing is read from package-level state at analysis time.
type Config struct {
	Sheets   SheetsConfig   `koanf:"sheets"`
	Mail     MailConfig     `koanf:"mail"`
	LLM      LLMConfig      `koanf:"llm"`
	Analysis AnalysisConfig `koanf:"analysis"`
	Memory   MemoryConfig   `koanf:"memory"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

// SheetsConfig locates the project tracking spreadsheet.
type SheetsConfig struct {
	// SpreadsheetID is the Google Sheets document ID.
	SpreadsheetID string `koanf:"spreadsheet_id"`

	// CredentialsFile is the path to a service account JSON key.
	CredentialsFile string `koanf:"credentials_file"`
}

// MailConfig configures the IMAP message source.
type MailConfig struct {
	Host               string `koanf:"host"`
	Port               int    `koanf:"port"`
	Username           string `koanf:"username"`
	Password           Secret `koanf:"password"`
	UseTLS             bool   `koanf:"use_tls"`
	InsecureSkipVerify bool   `koanf:"insecure_skip_verify"`
	Mailbox            string `koanf:"mailbox"`

	// SinceDays bounds searches to messages newer than this many days.
	SinceDays int `koanf:"since_days"`

	// Limit caps how many messages a single search fetches.
	Limit int `koanf:"limit"`

	// Timeout bounds the whole search round trip.
	Timeout time.Duration `koanf:"timeout"`
}

// LLMConfig configures the inference endpoint. Any OpenAI-compatible
// endpoint works; BaseURL selects the provider.
type LLMConfig struct {
	BaseURL   string        `koanf:"base_url"`
	Model     string        `koanf:"model"`
	APIKey    Secret        `koanf:"api_key"`
	MaxTokens int           `koanf:"max_tokens"`
	Timeout   time.Duration `koanf:"timeout"`
}

// AnalysisConfig tunes the thread staleness heuristics.
type AnalysisConfig struct {
	// InternalDomains are sender domains counted as the internal team.
	InternalDomains []string `koanf:"internal_domains"`

	// PendingIndicators override the default needs-response substrings.
	PendingIndicators []string `koanf:"pending_indicators"`

	// StaleThresholdDays is the age past which a pending thread is
	// reported stale.
	StaleThresholdDays int `koanf:"stale_threshold_days"`

	// BroadTerms are always added to mailbox searches alongside the
	// project name.
	BroadTerms []string `koanf:"broad_terms"`
}

// MemoryConfig locates the conversation memory log.
type MemoryConfig struct {
	Path string `koanf:"path"`
}

// MetricsConfig controls the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Sheets: SheetsConfig{
			CredentialsFile: filepath.Join(home, ".config", "hawk", "credentials.json"),
		},
		Mail: MailConfig{
			Host:      "imap.gmail.com",
			Port:      993,
			UseTLS:    true,
			Mailbox:   "INBOX",
			SinceDays: 90,
			Limit:     100,
			Timeout:   60 * time.Second,
		},
		LLM: LLMConfig{
			BaseURL:   "https://api.openai.com/v1",
			Model:     "gpt-4o-mini",
			MaxTokens: 1000,
			Timeout:   60 * time.Second,
		},
		Analysis: AnalysisConfig{
			InternalDomains:    nil,
			PendingIndicators:  thread.DefaultIndicators,
			StaleThresholdDays: thread.DefaultStaleThresholdDays,
			BroadTerms:         []string{"K12", "school", "district", "education"},
		},
		Memory: MemoryConfig{
			Path: filepath.Join(home, ".local", "share", "hawk", "memory.jsonl"),
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
		},
	}
}

// Load reads configuration from an optional YAML file, then applies
// environment overrides on top of the defaults.
//
// Precedence (highest first): environment variables, YAML file,
// defaults. Environment variables map section_field to section.field:
// HAWK_MAIL_HOST -> mail.host, HAWK_LLM_BASE_URL -> llm.base_url.
// List-valued settings are YAML-only.
func Load(configPath string) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			configPath = filepath.Join(home, ".config", "hawk", "config.yaml")
		}
	}

	if configPath != "" {
		content, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// No file is fine; defaults plus env apply.
		case err != nil:
			return Config{}, fmt.Errorf("read config file %s: %w", configPath, err)
		default:
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("parse config file %s: %w", configPath, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return Config{}, fmt.Errorf("load environment overrides: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

// envTransform maps HAWK_SECTION_FIELD_NAME to section.field_name:
// only the first underscore after the prefix becomes a separator.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.Replace(s, "_", ".", 1)
}

// ValidateSheets checks the spreadsheet configuration, returning a
// remediation hint wrapped around ErrMissingCredentials when it is
// unusable. The caller may continue in mailbox-only mode.
func (c Config) ValidateSheets() error {
	if c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("%w: sheets.spreadsheet_id is not set; set HAWK_SHEETS_SPREADSHEET_ID or add it to the config file", ErrMissingCredentials)
	}
	if _, err := os.Stat(c.Sheets.CredentialsFile); err != nil {
		return fmt.Errorf("%w: service account key %s not readable; download a key for the sheet's service account", ErrMissingCredentials, c.Sheets.CredentialsFile)
	}
	return nil
}

// ValidateMail checks the mailbox configuration. The caller may
// continue in spreadsheet-only mode when it fails.
func (c Config) ValidateMail() error {
	if c.Mail.Host == "" {
		return fmt.Errorf("%w: mail.host is not set", ErrMissingCredentials)
	}
	if c.Mail.Username == "" || !c.Mail.Password.IsSet() {
		return fmt.Errorf("%w: set HAWK_MAIL_USERNAME and HAWK_MAIL_PASSWORD (use an app password for Gmail)", ErrMissingCredentials)
	}
	if c.Mail.Port <= 0 || c.Mail.Port > 65535 {
		return fmt.Errorf("mail.port must be between 1 and 65535, got %d", c.Mail.Port)
	}
	return nil
}
