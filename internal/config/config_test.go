package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "imap.gmail.com", cfg.Mail.Host)
	assert.Equal(t, 993, cfg.Mail.Port)
	assert.True(t, cfg.Mail.UseTLS)
	assert.Equal(t, 3, cfg.Analysis.StaleThresholdDays)
	assert.NotEmpty(t, cfg.Analysis.PendingIndicators)
	assert.Contains(t, cfg.Analysis.BroadTerms, "district")
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_YAMLOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
mail:
  host: mail.example.com
  port: 143
  use_tls: false
  timeout: 30s
analysis:
  internal_domains:
    - company.com
  stale_threshold_days: 7
llm:
  model: test-model
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "mail.example.com", cfg.Mail.Host)
	assert.Equal(t, 143, cfg.Mail.Port)
	assert.False(t, cfg.Mail.UseTLS)
	assert.Equal(t, 30*time.Second, cfg.Mail.Timeout)
	assert.Equal(t, []string{"company.com"}, cfg.Analysis.InternalDomains)
	assert.Equal(t, 7, cfg.Analysis.StaleThresholdDays)
	assert.Equal(t, "test-model", cfg.LLM.Model)
	// Untouched settings keep their defaults.
	assert.Equal(t, "INBOX", cfg.Mail.Mailbox)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HAWK_MAIL_HOST", "imap.env.example")
	t.Setenv("HAWK_LLM_MODEL", "env-model")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "imap.env.example", cfg.Mail.Host)
	assert.Equal(t, "env-model", cfg.LLM.Model)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, Default().Mail.Host, cfg.Mail.Host)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mail: [unclosed"), 0o600))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"HAWK_MAIL_HOST", "mail.host"},
		{"HAWK_LLM_BASE_URL", "llm.base_url"},
		{"HAWK_ANALYSIS_STALE_THRESHOLD_DAYS", "analysis.stale_threshold_days"},
		{"HAWK_MEMORY_PATH", "memory.path"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, envTransform(tt.in))
		})
	}
}

func TestValidateMail(t *testing.T) {
	cfg := Default()
	err := cfg.ValidateMail()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCredentials)

	cfg.Mail.Username = "hawk@example.com"
	cfg.Mail.Password = "app-password"
	assert.NoError(t, cfg.ValidateMail())

	cfg.Mail.Port = 0
	assert.Error(t, cfg.ValidateMail())
}

func TestValidateSheets(t *testing.T) {
	cfg := Default()
	cfg.Sheets.SpreadsheetID = ""
	assert.ErrorIs(t, cfg.ValidateSheets(), ErrMissingCredentials)

	dir := t.TempDir()
	keyPath := filepath.Join(dir, "credentials.json")
	require.NoError(t, os.WriteFile(keyPath, []byte("{}"), 0o600))

	cfg.Sheets.SpreadsheetID = "sheet-id"
	cfg.Sheets.CredentialsFile = keyPath
	assert.NoError(t, cfg.ValidateSheets())

	cfg.Sheets.CredentialsFile = filepath.Join(dir, "missing.json")
	assert.ErrorIs(t, cfg.ValidateSheets(), ErrMissingCredentials)
}

func TestSecret_Redaction(t *testing.T) {
	s := Secret("hunter2")

	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", s))
	assert.Equal(t, "hunter2", s.Value())
	assert.True(t, s.IsSet())

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `"[REDACTED]"`, string(data))

	assert.False(t, Secret("").IsSet())
	assert.Equal(t, "", Secret("").String())
}
