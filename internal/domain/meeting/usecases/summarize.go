package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"

	"github.com/nikivanstein/MeetingRecorder/internal/domain/meeting"
)

const (
	defaultOpenAIModel = "gpt-4o-mini"
	defaultOllamaURL   = "http://localhost:11434"
)

// DefaultSystemPrompt instructs the model how to shape its response. The
// response is parsed leniently, so a model ignoring the JSON instruction
// still yields a usable summary.
const DefaultSystemPrompt = "You are a professional meeting assistant. " +
	"Summarise business meetings concisely and extract clear action items."

// Summarize turns a transcript into a structured summary using either
// OpenAI or a local Ollama model. The call is a single blocking request;
// transport failures propagate immediately and are never retried.
type Summarize struct {
	OpenAIKey    string
	OpenAIModel  string // defaults to gpt-4o-mini
	OllamaModel  string
	OllamaURL    string // defaults to the local Ollama daemon
	SystemPrompt string
	Log          zerolog.Logger

	client *resty.Client
}

// Execute summarises the transcript and extracts action items.
func (s *Summarize) Execute(ctx context.Context, transcript string) (meeting.MeetingSummary, error) {
	if strings.TrimSpace(transcript) == "" {
		return meeting.MeetingSummary{}, fmt.Errorf("transcript is empty; cannot summarise an empty meeting")
	}

	var (
		raw string
		err error
	)
	switch {
	case s.OpenAIKey != "":
		raw, err = s.completeOpenAI(ctx, transcript)
	case s.OllamaModel != "":
		raw, err = s.completeOllama(ctx, transcript)
	default:
		return meeting.MeetingSummary{}, &meeting.ConfigurationError{
			Msg: "no LLM configured: set OPENAI_API_KEY or OLLAMA_MODEL",
		}
	}
	if err != nil {
		return meeting.MeetingSummary{}, err
	}

	s.Log.Debug().Int("response_bytes", len(raw)).Msg("summary response received")
	return meeting.ParseSummaryResponse(raw), nil
}

func (s *Summarize) completeOpenAI(ctx context.Context, transcript string) (string, error) {
	client := openai.NewClient(option.WithAPIKey(s.OpenAIKey))
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.openAIModel()),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(s.systemPrompt()),
			openai.UserMessage(summaryPrompt(transcript)),
		},
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return "", fmt.Errorf("calling OpenAI API: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("OpenAI response did not include any content")
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *Summarize) completeOllama(ctx context.Context, transcript string) (string, error) {
	var out struct {
		Response string `json:"response"`
	}
	resp, err := s.http().R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model":  s.OllamaModel,
			"prompt": s.systemPrompt() + "\n\n" + summaryPrompt(transcript),
			"stream": false,
		}).
		SetResult(&out).
		Post(s.ollamaURL() + "/api/generate")
	if err != nil {
		return "", fmt.Errorf("calling Ollama: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("ollama error (HTTP %d): %s", resp.StatusCode(), resp.String())
	}
	if strings.TrimSpace(out.Response) == "" {
		return "", fmt.Errorf("ollama did not return any content")
	}
	return out.Response, nil
}

// summaryPrompt builds the user prompt. The JSON contract matches what
// meeting.ParseSummaryResponse expects.
func summaryPrompt(transcript string) string {
	return "Summarise the following meeting transcript and list clear action items. " +
		"Respond in JSON with keys 'summary' (string) and 'action_items' (array of strings).\n\n" +
		"Transcript:\n" + strings.TrimSpace(transcript)
}

func (s *Summarize) http() *resty.Client {
	if s.client == nil {
		s.client = resty.New()
	}
	return s.client
}

func (s *Summarize) openAIModel() string {
	if s.OpenAIModel != "" {
		return s.OpenAIModel
	}
	return defaultOpenAIModel
}

func (s *Summarize) ollamaURL() string {
	if s.OllamaURL != "" {
		return strings.TrimSuffix(s.OllamaURL, "/")
	}
	return defaultOllamaURL
}

func (s *Summarize) systemPrompt() string {
	if s.SystemPrompt != "" {
		return s.SystemPrompt
	}
	return DefaultSystemPrompt
}
