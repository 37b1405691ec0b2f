package app

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/nikivanstein/MeetingRecorder/config"
	"github.com/nikivanstein/MeetingRecorder/internal/audio"
	"github.com/nikivanstein/MeetingRecorder/internal/domain/meeting/usecases"
	"github.com/nikivanstein/MeetingRecorder/internal/mail"
	"github.com/nikivanstein/MeetingRecorder/internal/storage"
)

type App struct {
	Audio      *audio.Store
	Transcribe *usecases.Transcribe
	Summarize  *usecases.Summarize
	Artifacts  *storage.Store
	Mailer     *mail.Mailer
	Log        zerolog.Logger
}

func New(cfg *config.Config) (*App, error) {
	log := newLogger(cfg.LogLevel)

	transcribe := &usecases.Transcribe{
		APIKey:       cfg.AssemblyAIKey,
		PollInterval: cfg.PollInterval,
		Log:          log.With().Str("component", "transcribe").Logger(),
	}

	summarize := &usecases.Summarize{
		OpenAIKey:    cfg.OpenAIKey,
		OpenAIModel:  cfg.OpenAIModel,
		OllamaModel:  cfg.OllamaModel,
		OllamaURL:    cfg.OllamaURL,
		SystemPrompt: cfg.SummaryPrompt,
		Log:          log.With().Str("component", "summarize").Logger(),
	}

	mailer := &mail.Mailer{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
		To:       cfg.Email.To,
		UseTLS:   cfg.Email.UseTLS,
	}

	return &App{
		Audio:      audio.NewStore(cfg.OutputDir),
		Transcribe: transcribe,
		Summarize:  summarize,
		Artifacts:  storage.New(cfg.OutputDir),
		Mailer:     mailer,
		Log:        log,
	}, nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()
}
