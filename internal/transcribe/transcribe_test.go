package transcribe_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listkeeper/internal/transcribe"
)

func TestTranscribeNoAudio(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	s := transcribe.NewService(ts.URL)
	result := s.Transcribe(context.Background(), "")

	assert.Equal(t, transcribe.StatusNoAudio, result.Status)
	assert.Empty(t, result.Text)
	assert.False(t, called, "recognizer must not be invoked without audio")
}

func TestTranscribeSuccess(t *testing.T) {
	ts := recognizerStub(t, "  milk eggs and bread  ")
	defer ts.Close()

	s := transcribe.NewService(ts.URL)
	result := s.Transcribe(context.Background(), audioFile(t))

	assert.Equal(t, transcribe.StatusOK, result.Status)
	assert.Equal(t, "milk eggs and bread", result.Text)
}

func TestTranscribeNoSpeech(t *testing.T) {
	ts := recognizerStub(t, "   ")
	defer ts.Close()

	s := transcribe.NewService(ts.URL)
	result := s.Transcribe(context.Background(), audioFile(t))

	assert.Equal(t, transcribe.StatusNoSpeech, result.Status)
	assert.Empty(t, result.Text)
}

func TestTranscribeRecognizerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	s := transcribe.NewService(ts.URL)
	result := s.Transcribe(context.Background(), audioFile(t))

	assert.Equal(t, transcribe.StatusError, result.Status)
	assert.Empty(t, result.Text)
	assert.NotEmpty(t, result.Message)
}

func TestTranscribeMissingFile(t *testing.T) {
	s := transcribe.NewService("http://127.0.0.1:1")
	result := s.Transcribe(context.Background(), "/nonexistent/audio.wav")

	assert.Equal(t, transcribe.StatusError, result.Status)
}

func TestTranscribeKeepsAudioFile(t *testing.T) {
	ts := recognizerStub(t, "hello")
	defer ts.Close()

	path := audioFile(t)
	s := transcribe.NewService(ts.URL)
	s.Transcribe(context.Background(), path)

	_, err := os.Stat(path)
	assert.NoError(t, err, "audio file must not be removed")
}

// recognizerStub fakes a whisper-server inference endpoint.
func recognizerStub(t *testing.T, text string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "en", r.FormValue("language"))

		_, _, err := r.FormFile("file")
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"text": text})
	}))
}

func audioFile(t *testing.T) string {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "clip-*.wav")
	require.NoError(t, err)
	_, err = f.WriteString("RIFF....WAVE")
	require.NoError(t, err)
	f.Close()

	return f.Name()
}
