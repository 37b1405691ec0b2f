package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("MEETING_OUTPUT_DIR", filepath.Join(dir, "out"))
	for _, key := range []string{
		"ASSEMBLYAI_API_KEY", "OPENAI_API_KEY", "OPENAI_MODEL", "OLLAMA_MODEL", "OLLAMA_URL",
		"MEETING_POLL_INTERVAL_SECONDS", "EMAIL_SMTP_SERVER", "EMAIL_SMTP_PORT",
		"EMAIL_USERNAME", "EMAIL_PASSWORD", "EMAIL_FROM_ADDRESS", "EMAIL_TO_ADDRESS",
		"EMAIL_USE_TLS", "LOG_LEVEL", "MEETING_SUMMARY_PROMPT",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "out"), cfg.OutputDir)
	assert.DirExists(t, cfg.OutputDir)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 3*time.Second, cfg.PollInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Email.UseTLS)
	assert.False(t, cfg.Email.IsConfigured())
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("ASSEMBLYAI_API_KEY", "aai-key")
	t.Setenv("OPENAI_API_KEY", "oai-key")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("MEETING_POLL_INTERVAL_SECONDS", "7")
	t.Setenv("EMAIL_USE_TLS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "aai-key", cfg.AssemblyAIKey)
	assert.Equal(t, "oai-key", cfg.OpenAIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, 7*time.Second, cfg.PollInterval)
	assert.False(t, cfg.Email.UseTLS)
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	configDir := filepath.Join(dir, "config", "meetingrecorder")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(`
assemblyai_api_key = "file-key"
ollama_model = "llama3"
poll_interval_seconds = 5

[email]
smtp_server = "smtp.example.com"
smtp_port = 587
username = "bot"
password = "secret"
from_address = "bot@example.com"
to_address = "team@example.com"
`), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.AssemblyAIKey)
	assert.Equal(t, "llama3", cfg.OllamaModel)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.True(t, cfg.Email.IsConfigured())
	assert.Equal(t, "team@example.com", cfg.Email.To)
}

func TestEnvWinsOverFile(t *testing.T) {
	dir := isolate(t)
	configDir := filepath.Join(dir, "config", "meetingrecorder")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"),
		[]byte(`assemblyai_api_key = "file-key"`), 0o644))
	t.Setenv("ASSEMBLYAI_API_KEY", "env-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.AssemblyAIKey)
}

func TestEmailConfigIsConfigured(t *testing.T) {
	full := EmailConfig{
		SMTPHost: "smtp.example.com", SMTPPort: 587,
		Username: "u", Password: "p",
		From: "a@example.com", To: "b@example.com",
	}
	assert.True(t, full.IsConfigured())

	missingPort := full
	missingPort.SMTPPort = 0
	assert.False(t, missingPort.IsConfigured())
}
