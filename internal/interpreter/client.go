// Package interpreter turns natural language editing requests into plan
// documents by prompting an LLM with the operation catalog and the current
// context snapshot. Its output is always parsed and schema-checked; raw
// model text never leaves this package.
package interpreter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/decocereus/magic-agent/internal/plan"
	"github.com/decocereus/magic-agent/internal/resolve"
)

const (
	defaultAnthropicURL  = "https://api.anthropic.com"
	defaultOpenAIURL     = "https://api.openai.com/v1"
	defaultOpenRouterURL = "https://openrouter.ai/api/v1"
	anthropicVersion     = "2023-06-01"
	defaultMaxTokens     = 4096
)

// Options configures a Client. Provider is one of anthropic, openai,
// openrouter or custom; custom requires a BaseURL speaking the OpenAI chat
// completions shape (LM Studio, Ollama and similar).
type Options struct {
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
	Logger    *log.Logger
}

// Client is the LLM-facing half of the engine.
type Client struct {
	opts   Options
	http   *http.Client
	logger *log.Logger
}

// NewClient builds a client. The API key may be empty for local endpoints.
func NewClient(opts Options) (*Client, error) {
	switch opts.Provider {
	case "anthropic", "openai", "openrouter", "custom":
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", opts.Provider)
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("no model configured for provider %s", opts.Provider)
	}
	if opts.Provider == "custom" && opts.BaseURL == "" {
		return nil, fmt.Errorf("custom provider requires a base URL")
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 120 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "[INTERPRETER] ", log.LstdFlags)
	}
	return &Client{
		opts:   opts,
		http:   &http.Client{Timeout: opts.Timeout},
		logger: logger,
	}, nil
}

// Interpret sends the request plus snapshot to the model and parses the
// reply into exactly one of the two document variants.
func (c *Client) Interpret(ctx context.Context, request string, snapshot *resolve.Context) (*plan.Plan, *plan.Declined, error) {
	prompt := BuildPrompt(snapshot, request)
	c.logger.Printf("interpreting request (%d prompt bytes, model %s)", len(prompt), c.opts.Model)

	text, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, nil, err
	}
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, nil, fmt.Errorf("model reply: %w", err)
	}
	p, declined, err := plan.Parse([]byte(raw))
	if err != nil {
		return nil, nil, fmt.Errorf("model reply: %w", err)
	}
	if declined != nil {
		c.logger.Printf("request declined: %s", declined.Error)
	} else {
		c.logger.Printf("plan produced with %d operations", len(p.Operations))
	}
	return p, declined, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if c.opts.Provider == "anthropic" {
		return c.completeAnthropic(ctx, prompt)
	}
	return c.completeOpenAI(ctx, prompt)
}

func (c *Client) baseURL() string {
	if c.opts.BaseURL != "" {
		return strings.TrimRight(c.opts.BaseURL, "/")
	}
	switch c.opts.Provider {
	case "anthropic":
		return defaultAnthropicURL
	case "openrouter":
		return defaultOpenRouterURL
	default:
		return defaultOpenAIURL
	}
}

func (c *Client) completeAnthropic(ctx context.Context, prompt string) (string, error) {
	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	body, err := json.Marshal(struct {
		Model     string    `json:"model"`
		MaxTokens int       `json:"max_tokens"`
		Messages  []message `json:"messages"`
	}{
		Model:     c.opts.Model,
		MaxTokens: c.opts.MaxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL()+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.opts.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	var out struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if len(out.Content) == 0 || out.Content[0].Text == "" {
		return "", resolve.NewOpError(resolve.CodeAPIError, "empty response from anthropic")
	}
	return out.Content[0].Text, nil
}

func (c *Client) completeOpenAI(ctx context.Context, prompt string) (string, error) {
	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	body, err := json.Marshal(struct {
		Model     string    `json:"model"`
		Messages  []message `json:"messages"`
		MaxTokens int       `json:"max_tokens,omitempty"`
	}{
		Model:     c.opts.Model,
		Messages:  []message{{Role: "user", Content: prompt}},
		MaxTokens: c.opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL()+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// Local endpoints run without auth.
	if c.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", resolve.NewOpError(resolve.CodeAPIError, "empty response from %s", c.opts.Provider)
	}
	return out.Choices[0].Message.Content, nil
}

// ListModels fetches the model identifiers the provider advertises. Only
// the OpenAI-compatible listing shape is supported.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL()+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	}
	var out struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	models := make([]string, 0, len(out.Data))
	for _, entry := range out.Data {
		models = append(models, entry.ID)
	}
	return models, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return resolve.NewOpError(resolve.CodeAPIError, "%s request failed: %v", c.opts.Provider, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return resolve.NewOpError(resolve.CodeAPIError, "%s returned %s: %s", c.opts.Provider, resp.Status, strings.TrimSpace(string(detail)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resolve.NewOpError(resolve.CodeAPIError, "decode %s response: %v", c.opts.Provider, err)
	}
	return nil
}
