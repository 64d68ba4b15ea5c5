// Package mistral is a small client for the parts of the Mistral agents API
// the bot needs: agents, conversations and file download.
package mistral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const DefaultBaseURL = "https://api.mistral.ai"

const maxErrorBody = 4096

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mistral api error: status=%d, body=%s", e.StatusCode, e.Body)
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) CreateAgent(ctx context.Context, req AgentRequest) (Agent, error) {
	var agent Agent
	if err := c.postJSON(ctx, "/v1/agents", req, &agent); err != nil {
		return Agent{}, fmt.Errorf("failed to create agent: %w", err)
	}
	return agent, nil
}

func (c *Client) StartConversation(ctx context.Context, req ConversationRequest) (ConversationResponse, error) {
	var resp ConversationResponse
	if err := c.postJSON(ctx, "/v1/conversations", req, &resp); err != nil {
		return ConversationResponse{}, fmt.Errorf("failed to start conversation: %w", err)
	}
	return resp, nil
}

// DownloadFile returns the raw content of a file produced by a tool.
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	endpoint, err := url.JoinPath(c.baseURL, "/v1/files", fileID, "content")
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}
	return content, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if len(b) == 0 {
			b = []byte(resp.Status)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(b))}
	}
	return resp, nil
}
