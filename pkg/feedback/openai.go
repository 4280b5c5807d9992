package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
)

// OpenAIClient calls an OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

// OpenAIConfig holds configuration for the completion client.
type OpenAIConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	// Timeout bounds each HTTP round trip. The Service applies its own
	// deadline on top.
	Timeout time.Duration
}

// NewOpenAIClient creates a client. Blank fields get the service defaults.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	url := strings.TrimRight(cfg.BaseURL, "/")
	if url == "" {
		url = "https://api.openai.com/v1"
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	temp := cfg.Temperature
	if temp == 0 {
		temp = 0.7
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &OpenAIClient{
		baseURL:     url,
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: temp,
		maxTokens:   maxTokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *OpenAIClient) Name() string  { return "openai" }
func (c *OpenAIClient) Model() string { return c.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Generate implements Provider.
func (c *OpenAIClient) Generate(ctx context.Context, req Request) (*Feedback, error) {
	if c.apiKey == "" {
		return nil, rerrors.Feedback(rerrors.ErrFeedbackNoCredentials, "no API key configured for the feedback service")
	}

	chatReq := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: UserPrompt(req)},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	if req.Variant != VariantNarrative {
		chatReq.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(chatReq)
	if err != nil {
		return nil, rerrors.FeedbackWrap(err, rerrors.ErrFeedbackRequestFailed, "failed to encode completion request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, rerrors.FeedbackWrap(err, rerrors.ErrFeedbackRequestFailed, "failed to build completion request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, rerrors.FeedbackWrap(err, rerrors.ErrFeedbackTimeout, "feedback service timed out")
		}
		return nil, rerrors.FeedbackWrap(err, rerrors.ErrFeedbackRequestFailed, "feedback request failed").
			WithContext("url", c.baseURL)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, rerrors.FeedbackWrap(err, rerrors.ErrFeedbackRequestFailed, "failed to read feedback response")
	}

	var chatResp chatResponse
	decodeErr := json.Unmarshal(respBody, &chatResp)

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(respBody))
		if decodeErr == nil && chatResp.Error != nil && chatResp.Error.Message != "" {
			msg = chatResp.Error.Message
		}
		return nil, rerrors.Feedback(rerrors.ErrFeedbackAPIError,
			fmt.Sprintf("feedback service returned status %d: %s", resp.StatusCode, msg)).
			WithContext("status", fmt.Sprintf("%d", resp.StatusCode))
	}
	if decodeErr != nil {
		return nil, rerrors.FeedbackWrap(decodeErr, rerrors.ErrFeedbackMalformed, "feedback response is not valid JSON")
	}
	if len(chatResp.Choices) == 0 {
		return nil, rerrors.Feedback(rerrors.ErrFeedbackMalformed, "feedback response has no choices")
	}

	fb, err := Parse(req.Variant, chatResp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	fb.Model = chatResp.Model
	if fb.Model == "" {
		fb.Model = c.model
	}
	return fb, nil
}
