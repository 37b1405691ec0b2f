package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikivanstein/MeetingRecorder/config"
	"github.com/nikivanstein/MeetingRecorder/internal/app"
	"github.com/nikivanstein/MeetingRecorder/internal/domain/meeting"
)

func writeWAV(t *testing.T, path string, frames int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, 16000, 16, 1, 1)
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: 16000},
		Data:           make([]int, frames),
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

func frameCount(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	buf, err := wav.NewDecoder(f).FullPCMBuffer()
	require.NoError(t, err)
	return len(buf.Data) / buf.Format.NumChannels
}

func newTranscriptionStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.example/u/1"})
	})
	mux.HandleFunc("POST /transcript", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": "job-1", "status": "queued"})
	})
	mux.HandleFunc("GET /transcript/job-1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "job-1",
			"status": "completed",
			"text":   "Hello there. General greeting.",
			"utterances": []map[string]any{
				{"speaker": "A", "text": "Hello there.", "start": 0, "end": 1500},
				{"speaker": "B", "text": "General greeting.", "start": 1500, "end": 3000},
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newSummaryStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/generate", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"response": `{"summary":"Quick sync.","action_items":["send notes"]}`,
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestProcessCommandEndToEnd(t *testing.T) {
	outDir := t.TempDir()
	cfg := &config.Config{
		OutputDir:     outDir,
		AssemblyAIKey: "test-key",
		OllamaModel:   "llama3",
		PollInterval:  time.Millisecond,
		LogLevel:      "disabled",
	}

	application, err := app.New(cfg)
	require.NoError(t, err)
	application.Transcribe.BaseURL = newTranscriptionStub(t).URL
	application.Summarize.OllamaURL = newSummaryStub(t).URL

	takes := t.TempDir()
	first := filepath.Join(takes, "take1.wav")
	second := filepath.Join(takes, "take2.wav")
	writeWAV(t, first, 16000)
	writeWAV(t, second, 16000)

	root := NewRootCmd(&Dependencies{App: application, Config: cfg})
	root.SetArgs([]string{"process", first, second, "-s", "A=Alice"})
	require.NoError(t, root.Execute())

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)

	var notePath, recordingPath string
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasPrefix(name, "meeting_") && strings.HasSuffix(name, ".md"):
			notePath = filepath.Join(outDir, name)
		case strings.HasPrefix(name, "recording_") && strings.HasSuffix(name, ".wav"):
			recordingPath = filepath.Join(outDir, name)
		}
	}
	require.NotEmpty(t, notePath, "meeting notes were not saved")
	require.NotEmpty(t, recordingPath, "merged recording was not saved")

	// Two 16000-frame takes merge into one 32000-frame recording.
	assert.Equal(t, 32000, frameCount(t, recordingPath))

	content, err := os.ReadFile(notePath)
	require.NoError(t, err)
	doc := string(content)

	assert.Contains(t, doc, "Quick sync.")
	assert.Contains(t, doc, "- send notes")
	assert.Contains(t, doc, "[00:00] Alice: Hello there.")
	assert.Contains(t, doc, "[00:01] Speaker 2: General greeting.")
}

func TestParseSpeakerFlags(t *testing.T) {
	overrides, err := parseSpeakerFlags([]string{"A=Alice", " b = Bob "})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "Alice", "b": "Bob"}, overrides)

	_, err = parseSpeakerFlags([]string{"no-equals"})
	assert.Error(t, err)

	_, err = parseSpeakerFlags([]string{"=Label"})
	assert.Error(t, err)

	overrides, err = parseSpeakerFlags(nil)
	require.NoError(t, err)
	assert.Nil(t, overrides)
}

func TestEmailBody(t *testing.T) {
	body := emailBody(meeting.MeetingSummary{
		Summary: "Recap.",
		ActionItems: []meeting.ActionItem{
			{Description: "ship", Owner: "Dana"},
			{Description: "notes"},
		},
	})
	assert.Contains(t, body, "Summary:\nRecap.")
	assert.Contains(t, body, "- ship (Owner: Dana)")
	assert.Contains(t, body, "- notes")

	empty := emailBody(meeting.MeetingSummary{})
	assert.Contains(t, empty, "Not available")
}
