// Package transcribe converts recorded speech audio into text through a local
// whisper-server endpoint.
package transcribe

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

// A Status qualifies the outcome of a transcription.
type Status string

const (
	// StatusOK means speech was recognized.
	StatusOK Status = "ok"
	// StatusNoAudio means no recording was provided.
	StatusNoAudio Status = "no-audio"
	// StatusNoSpeech means the recording contains no recognizable speech.
	StatusNoSpeech Status = "no-speech"
	// StatusError means the recognizer failed.
	StatusError Status = "error"
)

// A Result carries the transcribed text and its status.
type Result struct {
	Text    string `json:"text"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// A Service transcribes audio files. The recognizer endpoint is injected at
// construction so its lifecycle is owned by the process.
type Service struct {
	endpoint string
	language string
	client   *http.Client
}

// NewService returns a service backed by a whisper-server endpoint.
// The recognizer call carries no timeout of its own, the request context bounds it.
func NewService(endpoint string) *Service {
	return &Service{
		endpoint: endpoint,
		language: "en",
		client:   &http.Client{},
	}
}

// Transcribe recognizes the speech of the audio file at path.
// An empty path reports StatusNoAudio without touching the recognizer.
// Failures are reported through the result status, never as an error.
// The audio file is read only, never modified nor removed.
func (s *Service) Transcribe(ctx context.Context, path string) Result {
	if path == "" {
		return Result{Status: StatusNoAudio, Message: "No audio recorded."}
	}

	text, err := s.recognize(ctx, path)
	if err != nil {
		logrus.WithError(err).Error("could not transcribe audio")
		return Result{Status: StatusError, Message: err.Error()}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Status: StatusNoSpeech, Message: "No speech detected."}
	}
	return Result{Text: text, Status: StatusOK}
}

// recognize uploads the file to the recognizer and returns the raw text field.
func (s *Service) recognize(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "could not open audio file")
	}
	defer f.Close()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", errors.Wrap(err, "could not build upload form")
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", errors.Wrap(err, "could not read audio file")
	}

	if err := form.WriteField("language", s.language); err != nil {
		return "", errors.Wrap(err, "could not build upload form")
	}
	if err := form.WriteField("response_format", "json"); err != nil {
		return "", errors.Wrap(err, "could not build upload form")
	}
	if err := form.Close(); err != nil {
		return "", errors.Wrap(err, "could not finalize upload form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, &body)
	if err != nil {
		return "", errors.Wrap(err, "could not build recognizer request")
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "could not reach recognizer")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("recognizer returned %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "could not read recognizer response")
	}

	v, err := fastjson.ParseBytes(payload)
	if err != nil {
		return "", errors.Wrap(err, "could not parse recognizer response")
	}
	return string(v.GetStringBytes("text")), nil
}
