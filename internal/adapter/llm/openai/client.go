package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	llmhttp "github.com/aqibansari2/code-review-automated/internal/adapter/llm/http"
	"github.com/aqibansari2/code-review-automated/internal/usecase/review"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultTimeout = 60 * time.Second

	providerName = "openai"
)

// Client is an HTTP client for the OpenAI Chat Completion API. Failures
// propagate as typed errors without retries.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  llmhttp.Logger
	metrics llmhttp.Metrics
}

var _ review.Provider = (*Client)(nil)

// NewClient creates a new OpenAI client for the given model.
func NewClient(apiKey, model string, logger llmhttp.Logger, metrics llmhttp.Metrics) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  logger,
		metrics: metrics,
	}
}

// SetBaseURL sets a custom base URL (for testing).
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// SetTimeout sets the HTTP timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// ModelName returns the configured model identifier.
func (c *Client) ModelName() string {
	return c.model
}

// Complete makes one chat completion request and returns the message text.
func (c *Client) Complete(ctx context.Context, req review.ProviderRequest) (string, error) {
	reqBody := ChatCompletionRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.Prompt},
		},
		Temperature: 0.0,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.LogRequest(ctx, llmhttp.RequestLog{
		Provider:    providerName,
		Model:       c.model,
		Timestamp:   time.Now(),
		PromptChars: len(req.Prompt),
		APIKey:      c.apiKey,
	})
	c.metrics.RecordRequest(providerName, c.model)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		callErr := llmhttp.NewTimeoutError(providerName, llmhttp.RedactURLSecrets(err.Error()))
		c.recordError(ctx, callErr, time.Since(start))
		return "", callErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	duration := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		callErr := c.handleErrorResponse(resp.StatusCode, body)
		c.recordError(ctx, callErr, duration)
		return "", callErr
	}

	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", llmhttp.NewInvalidRequestError(providerName, "no choices in response")
	}

	c.logger.LogResponse(ctx, llmhttp.ResponseLog{
		Provider:     providerName,
		Model:        c.model,
		Timestamp:    time.Now(),
		Duration:     duration,
		TokensIn:     chatResp.Usage.PromptTokens,
		TokensOut:    chatResp.Usage.CompletionTokens,
		StatusCode:   resp.StatusCode,
		FinishReason: chatResp.Choices[0].FinishReason,
	})
	c.metrics.RecordDuration(providerName, c.model, duration)
	c.metrics.RecordTokens(providerName, c.model, chatResp.Usage.PromptTokens, chatResp.Usage.CompletionTokens)

	return chatResp.Choices[0].Message.Content, nil
}

// handleErrorResponse converts HTTP error responses to typed errors.
func (c *Client) handleErrorResponse(statusCode int, body []byte) *llmhttp.Error {
	message := fmt.Sprintf("HTTP %d", statusCode)

	// Prefer the structured OpenAI error message when the body carries one.
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	} else if len(body) > 0 {
		message = llmhttp.TruncateForLogging(string(body))
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return llmhttp.NewAuthenticationError(providerName, message)
	case http.StatusTooManyRequests:
		return llmhttp.NewRateLimitError(providerName, message)
	case http.StatusBadRequest:
		return llmhttp.NewInvalidRequestError(providerName, message)
	case http.StatusNotFound:
		return llmhttp.NewModelNotFoundError(providerName, message)
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return llmhttp.NewServiceUnavailableError(providerName, message)
	default:
		return &llmhttp.Error{
			Type:       llmhttp.ErrTypeUnknown,
			Message:    message,
			StatusCode: statusCode,
			Provider:   providerName,
		}
	}
}

func (c *Client) recordError(ctx context.Context, err *llmhttp.Error, duration time.Duration) {
	c.logger.LogError(ctx, llmhttp.ErrorLog{
		Provider:   providerName,
		Model:      c.model,
		Timestamp:  time.Now(),
		Duration:   duration,
		Error:      err,
		ErrorType:  err.Type,
		StatusCode: err.StatusCode,
	})
	c.metrics.RecordError(providerName, c.model, err.Type)
}
