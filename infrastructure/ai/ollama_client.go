package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"taskpilot/domain/entities"
	"taskpilot/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "mistral"
	DefaultTimeout = 30 * time.Second
)

// OllamaClient talks to an Ollama server's /api/generate endpoint. Each
// call is a single request/response; there is no session state.
type OllamaClient struct {
	baseURL string
	model   string
	client  *http.Client
	logger  *logrus.Logger
}

func NewOllamaClient(baseURL, model string, timeout time.Duration, logger *logrus.Logger) *OllamaClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OllamaClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Complete sends one prompt and returns the model's free-text completion.
// Transport failures, timeouts, non-200 statuses and empty completions are
// all reported as ErrOracleUnavailable so the caller can fall back.
func (c *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{Model: c.model, Prompt: prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entities.ErrOracleUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", entities.ErrOracleUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{"status": resp.Status, "model": c.model}).Warn("ollama request failed")
		return "", fmt.Errorf("%w: %s: %s", entities.ErrOracleUnavailable, resp.Status, strings.TrimSpace(string(body)))
	}

	var gen generateResponse
	if err := json.Unmarshal(body, &gen); err != nil {
		return "", fmt.Errorf("%w: malformed response: %v", entities.ErrOracleUnavailable, err)
	}
	if strings.TrimSpace(gen.Response) == "" {
		return "", fmt.Errorf("%w: empty completion", entities.ErrOracleUnavailable)
	}
	return gen.Response, nil
}

var _ interfaces.TextCompleter = (*OllamaClient)(nil)
