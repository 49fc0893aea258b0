package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"job-research/internal/httpx"
)

const defaultBaseURL = "https://serpapi.com/search.json"

// Client is a minimal SerpAPI client for the google_jobs engine. Responses
// are decoded into untyped maps on purpose: the result shape varies per
// search and the pipeline probes it defensively.
type Client struct {
	apiKey  string
	baseURL string
	http    *httpx.Client
}

func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("serpapi: api key is required")
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    httpx.NewClient("job-research/1.0"),
	}, nil
}

// WithBaseURL overrides the endpoint. Used in tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = strings.TrimSuffix(base, "/")
	return c
}

// Search performs one google_jobs query and returns the raw decoded payload.
func (c *Client) Search(ctx context.Context, params url.Values) (map[string]any, error) {
	values := url.Values{}
	for key, vals := range params {
		for _, v := range vals {
			values.Add(key, v)
		}
	}
	values.Set("engine", "google_jobs")
	values.Set("api_key", c.apiKey)

	req, err := httpx.NewRequest(ctx, http.MethodGet, c.baseURL+"?"+values.Encode())
	if err != nil {
		return nil, fmt.Errorf("serpapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("serpapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("serpapi: API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("serpapi: decode failed: %w", err)
	}

	return payload, nil
}
