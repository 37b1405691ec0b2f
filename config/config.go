package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config is the immutable application configuration, assembled once at
// process start from an optional TOML file, an optional .env file and
// environment variables. Environment variables win.
type Config struct {
	OutputDir     string
	AssemblyAIKey string
	OpenAIKey     string
	OpenAIModel   string
	OllamaModel   string
	OllamaURL     string
	SummaryPrompt string
	PollInterval  time.Duration
	LogLevel      string
	Email         EmailConfig
}

// EmailConfig holds the SMTP settings for summary delivery.
type EmailConfig struct {
	SMTPHost string
	SMTPPort int
	Username string
	Password string
	From     string
	To       string
	UseTLS   bool
}

// IsConfigured reports whether every field required to send mail is set.
func (e EmailConfig) IsConfigured() bool {
	return e.SMTPHost != "" && e.SMTPPort > 0 &&
		e.Username != "" && e.Password != "" &&
		e.From != "" && e.To != ""
}

type fileConfig struct {
	OutputDir           string `toml:"output_dir"`
	AssemblyAIKey       string `toml:"assemblyai_api_key"`
	OpenAIKey           string `toml:"openai_api_key"`
	OpenAIModel         string `toml:"openai_model"`
	OllamaModel         string `toml:"ollama_model"`
	OllamaURL           string `toml:"ollama_url"`
	SummaryPrompt       string `toml:"summary_prompt"`
	PollIntervalSeconds int    `toml:"poll_interval_seconds"`
	LogLevel            string `toml:"log_level"`
	Email               struct {
		SMTPServer string `toml:"smtp_server"`
		SMTPPort   int    `toml:"smtp_port"`
		Username   string `toml:"username"`
		Password   string `toml:"password"`
		From       string `toml:"from_address"`
		To         string `toml:"to_address"`
		UseTLS     *bool  `toml:"use_tls"`
	} `toml:"email"`
}

func Load() (*Config, error) {
	// A local .env is a convenience for development; missing is fine.
	_ = godotenv.Load()

	cfg := &Config{
		OutputDir:    defaultOutputDir(),
		OpenAIModel:  "gpt-4o-mini",
		PollInterval: 3 * time.Second,
		LogLevel:     "info",
		Email:        EmailConfig{UseTLS: true},
	}

	if configPath := configFilePath(); configPath != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(configPath, &fc); err == nil {
			applyFile(cfg, &fc)
		}
	}

	applyEnvOverrides(cfg)

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, fc *fileConfig) {
	if fc.OutputDir != "" {
		cfg.OutputDir = expandTilde(fc.OutputDir)
	}
	cfg.AssemblyAIKey = fc.AssemblyAIKey
	cfg.OpenAIKey = fc.OpenAIKey
	if fc.OpenAIModel != "" {
		cfg.OpenAIModel = fc.OpenAIModel
	}
	cfg.OllamaModel = fc.OllamaModel
	cfg.OllamaURL = fc.OllamaURL
	if fc.SummaryPrompt != "" {
		cfg.SummaryPrompt = fc.SummaryPrompt
	}
	if fc.PollIntervalSeconds > 0 {
		cfg.PollInterval = time.Duration(fc.PollIntervalSeconds) * time.Second
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	cfg.Email.SMTPHost = fc.Email.SMTPServer
	cfg.Email.SMTPPort = fc.Email.SMTPPort
	cfg.Email.Username = fc.Email.Username
	cfg.Email.Password = fc.Email.Password
	cfg.Email.From = fc.Email.From
	cfg.Email.To = fc.Email.To
	if fc.Email.UseTLS != nil {
		cfg.Email.UseTLS = *fc.Email.UseTLS
	}
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.AssemblyAIKey, "ASSEMBLYAI_API_KEY")
	setString(&cfg.OpenAIKey, "OPENAI_API_KEY")
	setString(&cfg.OpenAIModel, "OPENAI_MODEL")
	setString(&cfg.OllamaModel, "OLLAMA_MODEL")
	setString(&cfg.OllamaURL, "OLLAMA_URL")
	setString(&cfg.SummaryPrompt, "MEETING_SUMMARY_PROMPT")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	if v := os.Getenv("MEETING_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = expandTilde(v)
	}
	if v := os.Getenv("MEETING_POLL_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PollInterval = time.Duration(n) * time.Second
		}
	}

	setString(&cfg.Email.SMTPHost, "EMAIL_SMTP_SERVER")
	if v := os.Getenv("EMAIL_SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Email.SMTPPort = n
		}
	}
	setString(&cfg.Email.Username, "EMAIL_USERNAME")
	setString(&cfg.Email.Password, "EMAIL_PASSWORD")
	setString(&cfg.Email.From, "EMAIL_FROM_ADDRESS")
	setString(&cfg.Email.To, "EMAIL_TO_ADDRESS")
	if v := os.Getenv("EMAIL_USE_TLS"); v != "" {
		cfg.Email.UseTLS = strings.ToLower(v) != "false"
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func configFilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "meetingrecorder")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "meetingrecorder")
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func defaultOutputDir() string {
	if v := os.Getenv("MEETING_OUTPUT_DIR"); v != "" {
		return expandTilde(v)
	}
	return filepath.Join(".", "meeting_outputs")
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
