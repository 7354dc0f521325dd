package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
)

// Transcriber converts a recorded utterance into text. An empty string means
// no speech was detected; failures must not propagate past the pipeline.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// WhisperClient talks to a whisper-style HTTP transcription service that
// accepts a multipart file upload and returns timed segments.
type WhisperClient struct {
	URL    string
	client *http.Client
}

func NewWhisperClient(url string) *WhisperClient {
	return &WhisperClient{URL: url, client: &http.Client{Timeout: 60 * time.Second}}
}

type transcriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type whisperResponse struct {
	Segments []transcriptSegment `json:"segments"`
	Language string              `json:"language"`
}

func (w *WhisperClient) Transcribe(ctx context.Context, audioPath string) (string, error) {
	var b bytes.Buffer
	mw := multipart.NewWriter(&b)

	fw, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", err
	}
	fd, err := os.Open(audioPath)
	if err != nil {
		return "", err
	}
	defer fd.Close()

	if _, err = io.Copy(fw, fd); err != nil {
		return "", err
	}
	if err = mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL+"/transcribe", &b)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := w.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("transcription %s: %s", resp.Status, string(body))
	}

	var out whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("transcription decode: %w", err)
	}

	parts := make([]string, 0, len(out.Segments))
	for _, seg := range out.Segments {
		if t := strings.TrimSpace(seg.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " "), nil
}

// GeminiTranscriber sends the raw recording to the Gemini model with a
// transcription prompt. Useful when no whisper service is deployed.
type GeminiTranscriber struct{}

var audioMimeTypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mp3",
	".m4a":  "audio/mp4",
	".mp4":  "audio/mp4",
	".ogg":  "audio/ogg",
	".webm": "audio/webm",
	".flac": "audio/flac",
}

func (GeminiTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if geminiClient == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", err
	}

	mime, ok := audioMimeTypes[strings.ToLower(filepath.Ext(audioPath))]
	if !ok {
		mime = "audio/webm"
	}

	text, err := generateModelText(ctx,
		genai.Blob{MIMEType: mime, Data: data},
		genai.Text("Transcribe the speech in this recording. Return only the spoken words, with no commentary. Return an empty response if no speech is present."),
	)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}
	return strings.TrimSpace(text), nil
}
