package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/AnaLarisa/nutriWave-api/utils"

	log "github.com/sirupsen/logrus"
)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
	claudeModel          = "claude-3-5-haiku-20241022"

	// Anthropic signals overload with a dedicated status code; it is the
	// only API failure worth retrying.
	statusOverloaded = 529
)

// ClaudeService calls the Anthropic messages API for the ingestion
// pipeline's extraction, post-processing and analysis steps.
type ClaudeService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	retry   utils.RetryPolicy
}

func NewClaudeService() *ClaudeService {
	return &ClaudeService{
		client:  &http.Client{Timeout: 120 * time.Second},
		baseURL: anthropicMessagesURL,
		apiKey:  os.Getenv("ANTHROPIC_API_KEY"),
		model:   claudeModel,
		retry:   utils.DefaultRetryPolicy,
	}
}

type claudeAPIError struct {
	StatusCode int
	Body       string
}

func (e *claudeAPIError) Error() string {
	return fmt.Sprintf("anthropic api error (%d): %s", e.StatusCode, e.Body)
}

func (e *claudeAPIError) Retryable() bool {
	return e.StatusCode == statusOverloaded
}

// transientError wraps transport-level failures so the retry policy treats
// them like an overload.
type transientError struct{ err error }

func (e *transientError) Error() string   { return e.err.Error() }
func (e *transientError) Unwrap() error   { return e.err }
func (e *transientError) Retryable() bool { return true }

// Message sends a text-only prompt and returns the model's text output.
func (s *ClaudeService) Message(ctx context.Context, prompt string, maxTokens int) (string, error) {
	content := []map[string]any{{"type": "text", "text": prompt}}
	return s.send(ctx, content, maxTokens)
}

// MessageWithImage sends an image plus instructions and returns the model's
// text output. The image is inlined base64; PNG and JPEG are supported.
func (s *ClaudeService) MessageWithImage(ctx context.Context, imagePath, prompt string, maxTokens int) (string, error) {
	imageBytes, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image %s: %w", imagePath, err)
	}

	mediaType := "image/jpeg"
	if strings.HasSuffix(imagePath, ".png") {
		mediaType = "image/png"
	}

	content := []map[string]any{
		{
			"type": "image",
			"source": map[string]any{
				"type":       "base64",
				"media_type": mediaType,
				"data":       base64.StdEncoding.EncodeToString(imageBytes),
			},
		},
		{"type": "text", "text": prompt},
	}
	return s.send(ctx, content, maxTokens)
}

func (s *ClaudeService) send(ctx context.Context, content any, maxTokens int) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("ANTHROPIC_API_KEY not set")
	}

	payload := map[string]any{
		"model":      s.model,
		"max_tokens": maxTokens,
		"messages": []map[string]any{
			{"role": "user", "content": content},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	var text string
	attempt := 0
	err = s.retry.Do(ctx, func() error {
		attempt++
		out, callErr := s.sendOnce(ctx, body)
		if callErr != nil {
			log.WithError(callErr).WithField("attempt", attempt).Warn("anthropic call failed")
			return callErr
		}
		text = out
		return nil
	})
	return text, err
}

func (s *ClaudeService) sendOnce(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &transientError{err: err}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &transientError{err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &claudeAPIError{StatusCode: resp.StatusCode, Body: string(respBytes)}
	}

	var parsed struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("empty anthropic response")
	}
	return parsed.Content[0].Text, nil
}
