// Package extract turns free-form text into a sequence of discrete item names.
// It asks a local language model first and falls back to a deterministic
// splitter so the caller always gets at least one item for non-empty input.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

// DefaultTimeout bounds the model round trip.
const DefaultTimeout = 30 * time.Second

const promptTemplate = `Extract individual grocery/task items from this text. Return ONLY a JSON array of strings, nothing else.

Text: "%s"

Rules:
- Extract each distinct item as a separate string
- Clean up the text (proper capitalization, remove filler words)
- If quantities are mentioned, include them with the item
- Return valid JSON array only, no explanation

Example input: "need milk eggs and oh yeah we're out of bread also bananas"
Example output: ["Milk", "Eggs", "Bread", "Bananas"]

Your response (JSON array only):`

// A Service extracts item names from free-form text.
type Service struct {
	endpoint string
	model    string
	timeout  time.Duration
	client   *http.Client
}

// NewService returns a service backed by an Ollama-style generation endpoint.
// A non-positive timeout falls back to DefaultTimeout.
func NewService(endpoint, model string, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Service{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		model:    model,
		timeout:  timeout,
		client:   &http.Client{Timeout: timeout},
	}
}

// Extract returns the ordered item names found in text.
// It never fails: any model error degrades to the fallback splitter.
// Blank input yields an empty result.
func (s *Service) Extract(ctx context.Context, text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	items, err := s.generate(ctx, text)
	if err != nil {
		logrus.WithError(err).Debug("model extraction failed, using fallback splitter")
		return Fallback(text)
	}
	if len(items) == 0 {
		return Fallback(text)
	}
	return items
}

// generate performs the model round trip and parses the returned JSON array.
func (s *Service) generate(ctx context.Context, text string) ([]string, error) {
	payload, err := json.Marshal(map[string]any{
		"model":  s.model,
		"prompt": fmt.Sprintf(promptTemplate, text),
		"stream": false,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not marshal generation request")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "could not build generation request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "could not reach model endpoint")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("model endpoint returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "could not read model response")
	}

	v, err := fastjson.ParseBytes(body)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse model response")
	}

	return parseItems(string(v.GetStringBytes("response")))
}

// parseItems locates the first JSON array in the model output and stringifies its elements.
func parseItems(response string) ([]string, error) {
	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start == -1 || end <= start {
		return nil, errors.New("no JSON array in model response")
	}

	v, err := fastjson.Parse(response[start : end+1])
	if err != nil {
		return nil, errors.Wrap(err, "could not parse model items")
	}

	values, err := v.Array()
	if err != nil {
		return nil, errors.Wrap(err, "model response is not an array")
	}

	items := make([]string, 0, len(values))
	for _, value := range values {
		var item string
		if value.Type() == fastjson.TypeString {
			item = string(value.GetStringBytes())
		} else {
			item = value.String()
		}

		item = strings.TrimSpace(item)
		if item == "" || item == "null" || item == "false" {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Fallback splits text on the first matching delimiter among comma, " and " and newline.
// Without any delimiter the whole trimmed text is returned as a single item.
func Fallback(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var items []string
	for _, delimiter := range []string{",", " and ", "\n"} {
		if !strings.Contains(text, delimiter) {
			continue
		}

		for _, part := range strings.Split(text, delimiter) {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		break
	}

	if len(items) == 0 {
		items = []string{text}
	}
	return items
}
