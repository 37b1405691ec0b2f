package usecases

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/nikivanstein/MeetingRecorder/internal/domain/meeting"
)

const (
	defaultTranscribeBaseURL = "https://api.assemblyai.com/v2"
	defaultPollInterval      = 3 * time.Second

	// Upload reads are buffered in ~5 MiB chunks and streamed; the file
	// is never held in memory whole.
	uploadChunkSize = 5 << 20

	statusCompleted = "completed"
	statusError     = "error"

	// fallbackSpeaker labels sentence-split segments when the service
	// returned no utterances.
	fallbackSpeaker = "Speaker 1"
)

// Transcribe drives an asynchronous diarising transcription job against
// AssemblyAI: upload the audio, create the job, poll it to a terminal
// state and normalize the utterances.
type Transcribe struct {
	APIKey       string
	BaseURL      string        // defaults to the AssemblyAI v2 API
	PollInterval time.Duration // defaults to 3s
	Log          zerolog.Logger

	client *resty.Client
}

// transcriptPayload matches the AssemblyAI transcript resource.
type transcriptPayload struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	Text       string `json:"text"`
	Error      string `json:"error"`
	Utterances []struct {
		Speaker string  `json:"speaker"`
		Text    string  `json:"text"`
		Start   float64 `json:"start"`
		End     float64 `json:"end"`
	} `json:"utterances"`
}

// Execute transcribes one audio file with speaker diarisation enabled.
// Polling is unbounded; ctx is the only way to abandon a running job.
func (t *Transcribe) Execute(ctx context.Context, audioPath string) (*meeting.TranscriptionResult, error) {
	if t.APIKey == "" {
		return nil, &meeting.ConfigurationError{
			Msg: "AssemblyAI API key is not configured: set ASSEMBLYAI_API_KEY or add assemblyai_api_key to config",
		}
	}

	uploadURL, err := t.upload(ctx, audioPath)
	if err != nil {
		return nil, err
	}
	t.Log.Debug().Str("audio", audioPath).Msg("audio uploaded")

	jobID, err := t.createJob(ctx, uploadURL)
	if err != nil {
		return nil, err
	}
	t.Log.Debug().Str("job_id", jobID).Msg("transcription job created")

	payload, err := t.poll(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return normalizeTranscript(payload), nil
}

// upload streams the raw audio bytes and returns the opaque upload URL.
// It uses the plain HTTP client underneath resty so the body is streamed
// instead of buffered.
func (t *Transcribe) upload(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", &meeting.SubmissionError{Op: "opening audio file", Err: err}
	}
	defer f.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL()+"/upload",
		bufio.NewReaderSize(f, uploadChunkSize))
	if err != nil {
		return "", &meeting.SubmissionError{Op: "building upload request", Err: err}
	}
	req.Header.Set("Authorization", t.APIKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := t.http().GetClient().Do(req)
	if err != nil {
		return "", &meeting.SubmissionError{Op: "uploading audio", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &meeting.SubmissionError{Op: "reading upload response", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &meeting.SubmissionError{
			Op:  "uploading audio",
			Err: fmt.Errorf("HTTP %d: %s", resp.StatusCode, body),
		}
	}

	var out struct {
		UploadURL string `json:"upload_url"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", &meeting.SubmissionError{Op: "parsing upload response", Err: err}
	}
	if out.UploadURL == "" {
		return "", &meeting.SubmissionError{Op: "uploading audio", Err: fmt.Errorf("no upload_url in response")}
	}
	return out.UploadURL, nil
}

func (t *Transcribe) createJob(ctx context.Context, uploadURL string) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	resp, err := t.http().R().
		SetContext(ctx).
		SetBody(map[string]any{
			"audio_url":      uploadURL,
			"speaker_labels": true,
		}).
		SetResult(&out).
		Post("/transcript")
	if err != nil {
		return "", &meeting.SubmissionError{Op: "creating transcription job", Err: err}
	}
	if resp.IsError() {
		return "", &meeting.SubmissionError{
			Op:  "creating transcription job",
			Err: fmt.Errorf("HTTP %d: %s", resp.StatusCode(), resp.String()),
		}
	}
	if out.ID == "" {
		return "", &meeting.SubmissionError{Op: "creating transcription job", Err: fmt.Errorf("no job id in response")}
	}
	return out.ID, nil
}

// poll queries the job at a fixed interval until it reaches a terminal
// state. Transport failures while polling are terminal, not retried.
func (t *Transcribe) poll(ctx context.Context, jobID string) (*transcriptPayload, error) {
	for {
		var payload transcriptPayload
		resp, err := t.http().R().
			SetContext(ctx).
			SetResult(&payload).
			Get("/transcript/" + jobID)
		if err != nil {
			return nil, &meeting.TranscriptionError{Detail: fmt.Sprintf("polling job %s: %v", jobID, err)}
		}
		if resp.IsError() {
			return nil, &meeting.TranscriptionError{
				Detail: fmt.Sprintf("polling job %s: HTTP %d: %s", jobID, resp.StatusCode(), resp.String()),
			}
		}

		switch payload.Status {
		case statusCompleted:
			return &payload, nil
		case statusError:
			detail := payload.Error
			if detail == "" {
				detail = "unknown error during transcription"
			}
			return nil, &meeting.TranscriptionError{Detail: detail}
		}

		t.Log.Debug().Str("job_id", jobID).Str("status", payload.Status).Msg("transcription still running")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(t.interval()):
		}
	}
}

// normalizeTranscript converts the service payload into utterances with
// second-based timestamps. When diarisation produced nothing, the flat
// text is split on sentence boundaries under a single synthetic speaker
// with zero timestamps.
func normalizeTranscript(payload *transcriptPayload) *meeting.TranscriptionResult {
	result := &meeting.TranscriptionResult{Text: payload.Text}
	for _, u := range payload.Utterances {
		text := strings.TrimSpace(u.Text)
		if text == "" {
			continue
		}
		speaker := u.Speaker
		if speaker == "" {
			speaker = "Speaker"
		}
		result.Utterances = append(result.Utterances, meeting.Utterance{
			SpeakerID: speaker,
			Text:      text,
			Start:     u.Start / 1000,
			End:       u.End / 1000,
		})
	}
	if len(result.Utterances) == 0 {
		for _, chunk := range strings.Split(payload.Text, ". ") {
			chunk = strings.TrimSpace(chunk)
			if chunk == "" {
				continue
			}
			result.Utterances = append(result.Utterances, meeting.Utterance{
				SpeakerID: fallbackSpeaker,
				Text:      chunk,
			})
		}
	}
	return result
}

func (t *Transcribe) http() *resty.Client {
	if t.client == nil {
		t.client = resty.New().
			SetBaseURL(t.baseURL()).
			SetHeader("Authorization", t.APIKey).
			SetHeader("Content-Type", "application/json")
	}
	return t.client
}

func (t *Transcribe) baseURL() string {
	if t.BaseURL != "" {
		return strings.TrimSuffix(t.BaseURL, "/")
	}
	return defaultTranscribeBaseURL
}

func (t *Transcribe) interval() time.Duration {
	if t.PollInterval > 0 {
		return t.PollInterval
	}
	return defaultPollInterval
}
